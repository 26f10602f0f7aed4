package validation

import (
	"regexp"
)

// Validation rule patterns
var (
	// Email validation pattern
	EmailPattern = `^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,4}$`

	// Registration number (matrícula) pattern: entry year, entry term,
	// four-digit sequence, e.g. 2025-1-0042
	RegistrationNumberPattern = `^\d{4}-[12]-\d{4}$`

	// CPF pattern: 000.000.000-00
	CPFPattern = `^\d{3}\.\d{3}\.\d{3}-\d{2}$`

	// Phone pattern: optional, digits with separators, 8-20 chars
	PhonePattern = `^[0-9()+\- ]{8,20}$`

	// Password min length
	PasswordMinLength = 8

	// Name validation min/max length
	NameMinLength = 2
	NameMaxLength = 150

	// Entry year bounds
	EntryYearMin = 1900
	EntryYearMax = 2100
)

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	Email              *regexp.Regexp
	RegistrationNumber *regexp.Regexp
	CPF                *regexp.Regexp
	Phone              *regexp.Regexp
}{
	Email:              regexp.MustCompile(EmailPattern),
	RegistrationNumber: regexp.MustCompile(RegistrationNumberPattern),
	CPF:                regexp.MustCompile(CPFPattern),
	Phone:              regexp.MustCompile(PhonePattern),
}

// IsValidEmail reports whether the value matches the email pattern
func IsValidEmail(value string) bool {
	return CompiledPatterns.Email.MatchString(value)
}

// IsValidRegistrationNumber reports whether the value matches the
// matrícula pattern
func IsValidRegistrationNumber(value string) bool {
	return CompiledPatterns.RegistrationNumber.MatchString(value)
}

// IsValidCPF reports whether the value matches the CPF pattern
func IsValidCPF(value string) bool {
	return CompiledPatterns.CPF.MatchString(value)
}

// IsValidPhone reports whether the value matches the phone pattern
func IsValidPhone(value string) bool {
	return CompiledPatterns.Phone.MatchString(value)
}

// IsValidEntryYear reports whether the year is in the accepted range
func IsValidEntryYear(year int) bool {
	return year >= EntryYearMin && year <= EntryYearMax
}

// IsValidEntryTerm reports whether the term is 1 or 2
func IsValidEntryTerm(term int) bool {
	return term == 1 || term == 2
}
