package application

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRequest() SubmitRequest {
	return SubmitRequest{
		JobID:     "job-1",
		Name:      "Kim Minji",
		Phone:     "010-1234-5678",
		Email:     "minji@example.com",
		BirthDate: "19950817",
	}
}

func TestValidatePhone(t *testing.T) {
	assert.NoError(t, ValidatePhone("010-1234-5678"))
	assert.NoError(t, ValidatePhone("01012345678"))
	assert.NoError(t, ValidatePhone("010 1234 5678"))

	assert.Error(t, ValidatePhone(""))
	assert.Error(t, ValidatePhone("---"))
	assert.Error(t, ValidatePhone("010-123-5678"))
	assert.Error(t, ValidatePhone("010-1234-56789"))
	assert.Error(t, ValidatePhone("011-1234-5678"))
}

func TestValidateBirthDate(t *testing.T) {
	v := NewValidator()
	v.now = func() time.Time { return time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC) }

	valid := []string{"19950817", "20000229", "19000101", "20251231"}
	invalid := []string{"", "1995-08-17", "1995081", "199508170", "abcdefgh", "18991231", "20260101", "19950230", "19951301", "19950800", "19990229"}

	for _, d := range valid {
		assert.NoError(t, v.ValidateBirthDate(d), d)
	}
	for _, d := range invalid {
		assert.Error(t, v.ValidateBirthDate(d), d)
	}
}

func TestFormatPhone(t *testing.T) {
	tests := map[string]string{
		"":                "",
		"010":             "010",
		"0101234":         "010-1234",
		"01012345678":     "010-1234-5678",
		"010-1234-5678":   "010-1234-5678",
		"0101234567899":   "010-1234-5678",
		"(010) 1234 5678": "010-1234-5678",
	}
	for in, want := range tests {
		assert.Equal(t, want, FormatPhone(in), in)
	}
}

func TestValidator_Struct(t *testing.T) {
	v := NewValidator()
	req := validRequest()
	require.NoError(t, v.Struct(&req))

	bad := SubmitRequest{Phone: "011-1234-5678", Email: "not-an-email", BirthDate: "19950230"}
	err := v.Struct(&bad)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "is required", verr.Fields["jobId"])
	assert.Equal(t, "is required", verr.Fields["name"])
	assert.Equal(t, "phone number must start with 010", verr.Fields["phone"])
	assert.Equal(t, "must be a valid email address", verr.Fields["email"])
	assert.Equal(t, "birth date is not a valid date", verr.Fields["birthDate"])
	assert.Contains(t, err.Error(), "birthDate: birth date is not a valid date")
}
