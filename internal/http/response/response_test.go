package response

import (
	"testing"

	"github.com/go-playground/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOKWithData(t *testing.T) {
	data := map[string]string{"key": "value"}
	resp := OKWithData(data)

	assert.Equal(t, StatusOK, resp.Status)
	assert.Empty(t, resp.Error)
	assert.Equal(t, data, resp.Data)
}

func TestError(t *testing.T) {
	resp := Error("something went wrong")

	assert.Equal(t, StatusError, resp.Status)
	assert.Equal(t, "something went wrong", resp.Error)
}

func TestValidationError(t *testing.T) {
	type TestStruct struct {
		Email    string `validate:"required,email"`
		Username string `validate:"required,alphanum,min=3"`
		Type     string `validate:"oneof=blog ad"`
		Position int    `validate:"gte=0"`
		Missing  string `validate:"required"`
	}

	err := validator.New().Struct(TestStruct{
		Email:    "not-an-email",
		Username: "ab",
		Type:     "poem",
		Position: -1,
	})
	require.Error(t, err)

	resp := ValidationError(err.(validator.ValidationErrors))

	assert.Equal(t, StatusError, resp.Status)
	assert.Contains(t, resp.Error, "field Email must be a valid email address")
	assert.Contains(t, resp.Error, "field Username must be at least 3 characters long")
	assert.Contains(t, resp.Error, "field Type must be one of: blog ad")
	assert.Contains(t, resp.Error, "field Position must be greater than or equal to 0")
	assert.Contains(t, resp.Error, "field Missing is a required field")
}
