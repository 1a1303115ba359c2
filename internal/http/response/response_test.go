package response

import (
	"testing"

	"github.com/go-playground/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusOKWithData(t *testing.T) {
	resp := StatusOKWithData(map[string]string{"key": "value"})

	assert.Equal(t, StatusOK, resp.Status)
	assert.Empty(t, resp.Error)
	assert.Equal(t, map[string]string{"key": "value"}, resp.Data)
}

func TestError(t *testing.T) {
	resp := Error("invalid request body")

	assert.Equal(t, StatusError, resp.Status)
	assert.Equal(t, "invalid request body", resp.Error)
}

func TestValidationError(t *testing.T) {
	type form struct {
		Email    string `validate:"required,email"`
		Password string `validate:"required,min=8"`
		Title    string `validate:"max=200"`
		ID       string `validate:"omitempty,uuid"`
	}

	tests := []struct {
		name  string
		input form
		want  string
	}{
		{
			name:  "пустые обязательные поля",
			input: form{},
			want:  "field Email is a required field, field Password is a required field",
		},
		{
			name:  "невалидный email",
			input: form{Email: "not-an-email", Password: "password123"},
			want:  "field Email must be a valid email",
		},
		{
			name:  "слишком короткий пароль",
			input: form{Email: "a@b.com", Password: "short"},
			want:  "field Password is too short",
		},
		{
			name:  "не uuid",
			input: form{Email: "a@b.com", Password: "password123", ID: "abc"},
			want:  "field ID can contain only uuid",
		},
	}

	validate := validator.New()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validate.Struct(tt.input)
			require.Error(t, err)

			var validErrs validator.ValidationErrors
			require.ErrorAs(t, err, &validErrs)

			resp := ValidationError(validErrs)
			assert.Equal(t, StatusError, resp.Status)
			assert.Equal(t, tt.want, resp.Error)
		})
	}
}
