package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Email    string `validate:"required,email"`
	Quantity int    `validate:"required,gt=0"`
}

func TestValidate_Passes(t *testing.T) {
	err := Validate(&sampleRequest{Email: "shopper@example.com", Quantity: 2})
	assert.NoError(t, err)
}

func TestValidate_CollectsFieldErrors(t *testing.T) {
	err := Validate(&sampleRequest{Email: "nope", Quantity: 0})
	require.Error(t, err)

	valErr, ok := err.(*ValidationError)
	require.True(t, ok)

	fields := valErr.Fields()
	assert.Contains(t, fields, "Email")
	assert.Contains(t, fields, "Quantity")
	assert.Equal(t, "must be a valid email address", fields["Email"])
}

func TestValidationError_Message(t *testing.T) {
	err := Validate(&sampleRequest{Email: "", Quantity: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Email")
	assert.Contains(t, err.Error(), "is required")
}
