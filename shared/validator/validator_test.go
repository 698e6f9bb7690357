package validator_test

import (
	"strings"
	"testing"

	"eduspace/shared/failure"
	"eduspace/shared/validator"

	"github.com/stretchr/testify/assert"
)

type sampleRequest struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name"  validate:"required,max=10"`
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{
			name:    "valid body",
			body:    `{"email":"a@b.com","name":"tester"}`,
			wantErr: false,
		},
		{
			name:    "malformed json",
			body:    `{"email":`,
			wantErr: true,
		},
		{
			name:    "missing required field",
			body:    `{"email":"a@b.com"}`,
			wantErr: true,
		},
		{
			name:    "invalid email",
			body:    `{"email":"not-an-email","name":"tester"}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := sampleRequest{}
			err := validator.Validate(strings.NewReader(tt.body), &req)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, 400, failure.GetCode(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateVar(t *testing.T) {
	assert.NoError(t, validator.ValidateVar("a@b.com", "required,email"))
	assert.Error(t, validator.ValidateVar("", "required"))
}
