package validator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Method    string `json:"method" validate:"omitempty,oneof=creditcard paypal applepay"`
	Quantity  int    `json:"quantity" validate:"gte=0"`
}

func TestValidate_Valid(t *testing.T) {
	req := sampleRequest{ProductID: "p1", Method: "paypal", Quantity: 2}
	assert.NoError(t, Validate(req))
}

func TestValidate_MissingRequired(t *testing.T) {
	req := sampleRequest{Method: "paypal"}

	err := Validate(req)
	require.Error(t, err)

	var valErr *ValidationError
	require.True(t, errors.As(err, &valErr))

	fields := valErr.Fields()
	assert.Contains(t, fields, "ProductID")
	assert.Equal(t, "is required", fields["ProductID"])
}

func TestValidate_OneOf(t *testing.T) {
	req := sampleRequest{ProductID: "p1", Method: "bitcoin"}

	err := Validate(req)
	require.Error(t, err)

	var valErr *ValidationError
	require.True(t, errors.As(err, &valErr))
	assert.Contains(t, valErr.Fields()["Method"], "must be one of")
}

func TestValidate_Gte(t *testing.T) {
	req := sampleRequest{ProductID: "p1", Quantity: -1}

	err := Validate(req)
	require.Error(t, err)

	var valErr *ValidationError
	require.True(t, errors.As(err, &valErr))
	assert.Contains(t, valErr.Fields()["Quantity"], "greater than or equal to 0")
}

func TestValidationError_ErrorString(t *testing.T) {
	err := Validate(sampleRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ProductID")
	assert.Contains(t, err.Error(), "is required")
}
