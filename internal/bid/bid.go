package bid

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrInvalidAmount = errors.New("invalid amount")

// Bid is a single auction record keyed by ID.
// The zero value is the "not found" sentinel.
type Bid struct {
	ID     string
	Title  string
	Fund   string
	Amount decimal.Decimal
}

// Empty returns the sentinel bid.
func Empty() Bid {
	return Bid{}
}

// IsEmpty reports whether b is the sentinel.
func (b Bid) IsEmpty() bool {
	return b.ID == ""
}

func (b Bid) String() string {
	return fmt.Sprintf("%s: %s | %s | %s", b.ID, b.Title, b.Amount.String(), b.Fund)
}

// ParseAmount parses a dollar amount such as "$1,234.50".
// The currency sign and thousands separators are ignored. On error the
// returned amount is zero so callers can keep the record.
func ParseAmount(s string) (decimal.Decimal, error) {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case '$', ',', ' ':
			return -1
		}
		return r
	}, s)

	if cleaned == "" {
		return decimal.Zero, nil
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w %q: %w", ErrInvalidAmount, s, err)
	}

	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w %q: negative", ErrInvalidAmount, s)
	}

	return d, nil
}

// MustParseAmount is ParseAmount for literals known to be valid.
func MustParseAmount(s string) decimal.Decimal {
	d, err := ParseAmount(s)
	if err != nil {
		panic(err)
	}
	return d
}
