package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidRegistrationNumber(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"2025-1-0001", true},
		{"1999-2-9999", true},
		{"2025-3-0001", false}, // term must be 1 or 2
		{"25-1-0001", false},   // two-digit year
		{"2025-1-001", false},  // three-digit sequence
		{"2025101234", false},  // missing dashes
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidRegistrationNumber(tt.value))
		})
	}
}

func TestIsValidCPF(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"123.456.789-00", true},
		{"000.000.000-00", true},
		{"12345678900", false},     // digits only
		{"123.456.789-0", false},   // one check digit
		{"123-456-789.00", false},  // wrong separators
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidCPF(tt.value))
		})
	}
}

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("aluno@example.edu.br"))
	assert.True(t, IsValidEmail("a.b+c@sub.example.com"))
	assert.False(t, IsValidEmail("not-an-email"))
	assert.False(t, IsValidEmail("upper@Example.com"))
}

func TestEntryBounds(t *testing.T) {
	assert.True(t, IsValidEntryYear(2025))
	assert.False(t, IsValidEntryYear(1899))
	assert.False(t, IsValidEntryYear(2101))

	assert.True(t, IsValidEntryTerm(1))
	assert.True(t, IsValidEntryTerm(2))
	assert.False(t, IsValidEntryTerm(0))
	assert.False(t, IsValidEntryTerm(3))
}

func TestIsValidPhone(t *testing.T) {
	assert.True(t, IsValidPhone("(11) 98765-4321"))
	assert.True(t, IsValidPhone("+55 11 98765 4321"))
	assert.False(t, IsValidPhone("abc"))
	assert.False(t, IsValidPhone("123"))
}
