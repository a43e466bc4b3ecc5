package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sampleInput struct {
	Name    string `validate:"required"`
	Email   string `validate:"required,email"`
	Phone   string `validate:"required,phone"`
	Pincode string `validate:"required,pincode"`
}

func validSample() sampleInput {
	return sampleInput{Name: "Jane", Email: "jane@example.com", Phone: "9876543210", Pincode: "400001"}
}

func TestStruct(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*sampleInput)
		wantErr error
		wantMsg string
	}{
		{name: "valid", mutate: func(*sampleInput) {}},
		{name: "missing name", mutate: func(s *sampleInput) { s.Name = "" }, wantErr: ErrMissing},
		{name: "short phone", mutate: func(s *sampleInput) { s.Phone = "12345" }, wantErr: ErrPhone},
		{name: "eleven digit phone", mutate: func(s *sampleInput) { s.Phone = "98765432101" }, wantErr: ErrPhone},
		{name: "phone with leading zero", mutate: func(s *sampleInput) { s.Phone = "0123456789" }},
		{name: "letters in pincode", mutate: func(s *sampleInput) { s.Pincode = "40000a" }, wantErr: ErrPincode},
		{name: "bad email", mutate: func(s *sampleInput) { s.Email = "nope" }, wantMsg: "Invalid email format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validSample()
			tt.mutate(&in)
			err := Struct(in)
			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.wantMsg != "":
				assert.EqualError(t, err, tt.wantMsg)
			default:
				assert.NoError(t, err)
			}
		})
	}
}

func TestIsPincode(t *testing.T) {
	assert.True(t, IsPincode("560001"))
	assert.False(t, IsPincode("5600011"))
}
