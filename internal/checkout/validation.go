package checkout

import (
	"regexp"
	"strings"
)

var (
	emailPattern  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	expiryPattern = regexp.MustCompile(`^(0[1-9]|1[0-2])/?([0-9]{2})$`)
	digitsOnly    = regexp.MustCompile(`[^0-9]`)
	cvcPattern    = regexp.MustCompile(`^[0-9]{3,4}$`)
)

// ValidateShipping checks the shipping fields. The returned map holds one
// message per invalid field, keyed by field name; an empty map means valid.
func ValidateShipping(f Form) map[string]string {
	errs := make(map[string]string)
	if strings.TrimSpace(f.Name) == "" {
		errs["name"] = "Full name is required"
	}
	if !emailPattern.MatchString(f.Email) {
		errs["email"] = "Valid email is required"
	}
	if strings.TrimSpace(f.Address) == "" {
		errs["address"] = "Address is required"
	}
	if f.Phone != "" && len(f.Phone) < 10 {
		errs["phone"] = "Valid phone number is required"
	}
	return errs
}

// ValidateCard checks the card fields. It is only meaningful when the
// payment method is card; callers skip it otherwise. Card numbers are
// stripped of non-digits before the length check.
func ValidateCard(f Form) map[string]string {
	errs := make(map[string]string)
	if len(digitsOnly.ReplaceAllString(f.CardNumber, "")) != 16 {
		errs["cardNumber"] = "Enter 16-digit card number"
	}
	if !expiryPattern.MatchString(f.CardExpiry) {
		errs["cardExpiry"] = "Use MM/YY format"
	}
	if !cvcPattern.MatchString(f.CardCVC) {
		errs["cardCvc"] = "CVC must be 3-4 digits"
	}
	return errs
}

// ValidateForm runs shipping validation and, for card payments, card
// validation, collecting one message per invalid field.
func ValidateForm(f Form) map[string]string {
	errs := ValidateShipping(f)
	if f.PaymentMethod == MethodCard {
		for field, msg := range ValidateCard(f) {
			errs[field] = msg
		}
	}
	return errs
}
