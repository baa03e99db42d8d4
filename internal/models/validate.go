package models

import (
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"golang.org/x/text/unicode/norm"
)

const (
	NameMaxLength     = 30
	UsernameMaxLength = 50

	valueMaxDigits        = 8
	valueMaxDecimalPlaces = 2
)

var validate = validator.New()

// validateEmail checks the format of an already normalized email address.
func validateEmail(field, email string) error {
	if email == "" {
		return validationError(field, CodeBlank, "this field may not be blank")
	}

	if validate.Var(email, "email") != nil {
		return validationError(field, CodeInvalid, "enter a valid email address")
	}

	return nil
}

// normalizeName trims surrounding whitespace and composes the string to NFC so that
// the length limit is applied to what a user perceives as characters.
func normalizeName(name string) string {
	return norm.NFC.String(strings.TrimSpace(name))
}

// validateName checks an already normalized name.
func validateName(field, name string, maxLength int) error {
	if name == "" {
		return validationError(field, CodeBlank, "this field may not be blank")
	}

	if utf8.RuneCountInString(name) > maxLength {
		return validationError(field, CodeMaxLength, "ensure this field has no more than %d characters", maxLength)
	}

	return nil
}

// validateValue checks a monetary value. Values are non-negative with at most
// 8 digits in total, 2 of them after the decimal point.
func validateValue(field string, value decimal.Decimal) error {
	if value.IsNegative() {
		return validationError(field, CodeMinValue, "ensure this value is greater than or equal to 0")
	}

	digits, decimals := digitCount(value)
	wholeDigits := digits - decimals

	if digits > valueMaxDigits {
		return validationError(field, CodeMaxDigits, "ensure that there are no more than %d digits in total", valueMaxDigits)
	}

	if decimals > valueMaxDecimalPlaces {
		return validationError(field, CodeMaxDecimalPlaces, "ensure that there are no more than %d decimal places", valueMaxDecimalPlaces)
	}

	if wholeDigits > valueMaxDigits-valueMaxDecimalPlaces {
		return validationError(field, CodeMaxWholeDigits, "ensure that there are no more than %d digits before the decimal point", valueMaxDigits-valueMaxDecimalPlaces)
	}

	return nil
}

// digitCount returns the number of significant digits and the number of
// decimal places of a value as it was written, e.g. 10.50 has 4 digits
// and 2 decimal places.
func digitCount(value decimal.Decimal) (digits, decimals int) {
	coefficient := value.Coefficient()
	coefficient.Abs(coefficient)
	length := len(coefficient.String())
	exponent := int(value.Exponent())

	if exponent >= 0 {
		if coefficient.Sign() == 0 {
			return length, 0
		}
		return length + exponent, 0
	}

	decimals = -exponent
	if decimals > length {
		return decimals, decimals
	}

	return length, decimals
}
