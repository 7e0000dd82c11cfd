package validate

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	reEmail  = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	reSearch = regexp.MustCompile(`^[A-Za-z0-9 _'\-]{1,50}$`)
	reID     = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)
	reDisc   = regexp.MustCompile(`^(fixed|percentage)$`)
	reMethod = regexp.MustCompile(`^(cash|bank|mobile-wallet)$`)
)

// ID validates a simple resource identifier (product/warehouse/customer ids,
// account codes, batch numbers).
func ID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reID.MatchString(s)
}

// Search validates catalog search text: trims, enforces allowed characters and max length.
func Search(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	if len(s) > 50 {
		s = s[:50]
	}
	return s, reSearch.MatchString(s)
}

// Quantity parses a line quantity. Zero is allowed (it removes the line);
// negatives and garbage are rejected, and an upper bound keeps abuse out.
func Quantity(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 || n > 9999 {
		return 0, false
	}
	return n, true
}

// Money parses a non-negative decimal amount from query or form input.
func Money(s string) (decimal.Decimal, bool) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil || d.IsNegative() {
		return decimal.Zero, false
	}
	return d, true
}

// DiscountType validates the discount type enum.
func DiscountType(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reDisc.MatchString(s)
}

// PaymentMethod validates the payment method enum.
func PaymentMethod(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reMethod.MatchString(s)
}

func Email(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 0 || len(s) > 50 {
		return "", false
	}
	return s, reEmail.MatchString(s)
}

// Password enforces a simple complexity window for login checks.
func Password(s string) bool {
	l := len(s)
	if l < 8 || l > 20 {
		return false
	}
	var hasLower, hasUpper, hasDigit, hasSymbol bool
	for _, r := range s {
		switch {
		case 'a' <= r && r <= 'z':
			hasLower = true
		case 'A' <= r && r <= 'Z':
			hasUpper = true
		case '0' <= r && r <= '9':
			hasDigit = true
		default:
			hasSymbol = true
		}
	}
	return hasLower && hasUpper && hasDigit && hasSymbol
}
