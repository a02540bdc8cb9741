package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, IsEmpty(c.input), "IsEmpty(%q)", c.input)
	}
}

func TestIsValidUUID(t *testing.T) {
	valid := []string{
		"0188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b", // v7
		"123e4567-e89b-42d3-a456-426614174000", // v4
		"123E4567-E89B-42D3-A456-426614174000", // uppercase
	}
	invalid := []string{
		"0188d0f27b8c7b4a8a2b6b8b8b8b8b8b",         // missing dashes
		"{0188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b}",   // braces
		"urn:uuid:0188d0f2-7b8c-7b4a-8a2b-6b8b8b8b", // urn form
		"g188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b",     // invalid hex
		"not-a-uuid",
		"",
	}
	for _, s := range valid {
		assert.True(t, IsValidUUID(s), "IsValidUUID(%q)", s)
	}
	for _, s := range invalid {
		assert.False(t, IsValidUUID(s), "IsValidUUID(%q)", s)
	}
}

func TestValidationErrors(t *testing.T) {
	errs := ValidationErrors{
		{Field: "employeeId", Message: "employee id is required"},
		{Field: "period", Message: "unknown period"},
	}

	assert.Equal(t, "employeeId: employee id is required; period: unknown period", errs.Error())
	assert.Equal(t, map[string]string{
		"employeeId": "employee id is required",
		"period":     "unknown period",
	}, errs.ToMap())
}
