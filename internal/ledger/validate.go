package ledger

import (
	"fmt"
	"strconv"
	"strings"
)

// Field validators return nil on success and a user-facing English error
// otherwise. Emptiness is always checked before format or range, and only
// the first failing check is reported.

// ValidateRequired fails when value is empty or all-whitespace.
func ValidateRequired(value, label string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s is required", label)
	}
	return nil
}

// ValidateMobileNumber checks a 10-15 digit ASCII mobile number.
func ValidateMobileNumber(value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return fmt.Errorf("Mobile Number is required")
	}
	for _, ch := range value {
		if ch < '0' || ch > '9' {
			return fmt.Errorf("Mobile Number must contain only digits")
		}
	}
	if len(value) < 10 || len(value) > 15 {
		return fmt.Errorf("Mobile Number must be between 10 and 15 digits")
	}
	return nil
}

// ValidateAmount checks a positive numeric amount given as a string.
func ValidateAmount(value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return fmt.Errorf("Amount is required")
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fmt.Errorf("Amount must be a valid number")
	}
	if f <= 0 {
		return fmt.Errorf("Amount must be greater than 0")
	}
	return nil
}
