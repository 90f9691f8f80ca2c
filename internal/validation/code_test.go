package validation_test

import (
	"testing"

	"github.com/Sibiraj15/url-shortener/internal/validation"
)

func TestIsValidCode(t *testing.T) {
	tests := []struct {
		name string
		code string
		want bool
	}{
		{"six alphanumeric", "abc123", true},
		{"seven alphanumeric", "abcd123", true},
		{"eight alphanumeric", "abcde123", true},
		{"mixed case", "AbCdEf", true},
		{"digits only", "123456", true},

		{"empty", "", false},
		{"too short", "abc", false},
		{"five chars", "abcde", false},
		{"too long", "abcdefghi", false},
		{"special character", "ab*def", false},
		{"hyphen", "abc-de", false},
		{"space inside", "abc de1", false},
		{"leading space", " abc123", false},
		{"trailing space", "abc123 ", false},
		{"unicode", "abcdé1", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := validation.IsValidCode(tt.code); got != tt.want {
				t.Errorf("IsValidCode(%q) = %v, want %v", tt.code, got, tt.want)
			}
		})
	}
}

func TestLinkValidator_ValidateCode(t *testing.T) {
	v := validation.NewLinkValidator(2048, false)

	if err := v.ValidateCode("abc123"); err != nil {
		t.Errorf("ValidateCode(valid) = %v, want nil", err)
	}
	if err := v.ValidateCode("ab*def"); err != validation.ErrInvalidCodeFormat {
		t.Errorf("ValidateCode(invalid) = %v, want %v", err, validation.ErrInvalidCodeFormat)
	}
}
