package kernel

import (
	"fmt"
	"strings"
	"unicode"

	"storefront/internal/pkg/errs"
)

// ErrPhoneIsNotConstructed indicates that a Phone was not created through NewPhone.
var ErrPhoneIsNotConstructed = errs.NewValueIsRequiredError("Phone must be created via NewPhone")

const (
	// phoneLocalDigits is the digit count the carrier APIs require.
	phoneLocalDigits = 11

	// phoneCountryPrefix is stripped from international-format numbers
	// when doing so yields a number of the expected local length.
	phoneCountryPrefix = "88"

	// phoneLocalLead is the mandatory leading sequence of a local mobile number.
	phoneLocalLead = "01"
)

// Phone is a customer phone number normalized to the local carrier digit
// format: exactly 11 digits starting with "01". Input may contain spaces,
// dashes, a leading "+" or the "88" country prefix; all are removed during
// construction. The zero value is invalid.
type Phone struct {
	digits string
}

// NewPhone normalizes and validates a raw phone number.
// Normalization strips every non-digit character, then strips the country
// prefix when the remainder has the expected local digit count.
func NewPhone(raw string) (Phone, error) {
	var b strings.Builder
	for _, r := range raw {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	digits := b.String()

	if len(digits) == phoneLocalDigits+len(phoneCountryPrefix) &&
		strings.HasPrefix(digits, phoneCountryPrefix) {
		digits = digits[len(phoneCountryPrefix):]
	}

	if len(digits) != phoneLocalDigits {
		return Phone{}, errs.NewValueIsInvalidErrorWithCause("phone",
			fmt.Errorf("%q does not normalize to %d digits", raw, phoneLocalDigits))
	}
	if !strings.HasPrefix(digits, phoneLocalLead) {
		return Phone{}, errs.NewValueIsInvalidErrorWithCause("phone",
			fmt.Errorf("%q does not start with %q after normalization", raw, phoneLocalLead))
	}

	return Phone{digits: digits}, nil
}

// String returns the normalized local-format digits.
func (p Phone) String() string {
	return p.digits
}

// IsEqual reports whether two phones normalize to the same number.
func (p Phone) IsEqual(other Phone) bool {
	return p.digits == other.digits
}

// Validate returns ErrPhoneIsNotConstructed for the zero value.
func (p Phone) Validate() error {
	if p.digits == "" {
		return ErrPhoneIsNotConstructed
	}
	return nil
}
