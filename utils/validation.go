// utils/validation.go
package utils

import (
	"regexp"
	"strings"
)

// ValidatePhone checks if a phone number is in a valid international format
func ValidatePhone(phone string) bool {
	// Clean the phone number
	cleaned := strings.ReplaceAll(phone, " ", "")
	cleaned = strings.ReplaceAll(cleaned, "-", "")
	cleaned = strings.ReplaceAll(cleaned, "(", "")
	cleaned = strings.ReplaceAll(cleaned, ")", "")

	// Regular expression for international phone numbers
	// Allows + prefix followed by 7-15 digits
	regex := `^\+?[1-9]\d{1,14}$`
	match, _ := regexp.MatchString(regex, cleaned)
	return match
}

// ValidateRUC checks a Peruvian tax id: 11 digits starting with 10 or 20.
// Gates factura issuance; see Customer.HasTaxID.
func ValidateRUC(ruc string) bool {
	match, _ := regexp.MatchString(`^(10|20)\d{9}$`, strings.TrimSpace(ruc))
	return match
}
