package ventas

import (
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money represents a monetary value in a single currency.
type Money struct {
	value decimal.Decimal // as major unit value
	cur   string
}

// M builds a Money from any numeric value and a currency code.
func M[T float32 | float64 | int | int32 | int64 | decimal.Decimal](value T, currency string) Money {
	return Money{value: newDecimal(value), cur: currency}
}

func newDecimal(value any) decimal.Decimal {
	switch v := value.(type) {
	case decimal.Decimal:
		return v
	case float32:
		return decimal.NewFromFloat32(v)
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int32:
		return decimal.NewFromInt32(v)
	case int64:
		return decimal.NewFromInt(v)
	default:
		panic(fmt.Sprintf("unsupported numeric type %T", value))
	}
}

// MXN builds a Money in the ledger's local currency.
func MXN[T float32 | float64 | int | int32 | int64 | decimal.Decimal](value T) Money {
	return M(value, "MXN")
}

// USD builds a Money in the sourcing currency.
func USD[T float32 | float64 | int | int32 | int64 | decimal.Decimal](value T) Money {
	return M(value, "USD")
}

// currency returns the go-money currency for formatting purposes.
func (m Money) currency() money.Currency {
	// the Money constructor guarantees a non-nil currency even for unknown codes.
	return *money.New(0, m.cur).Currency()
}

// String renders the amount with its currency symbol and thousands separators.
func (m Money) String() string {
	cur := m.currency()
	dec := m.value.Round(int32(cur.Fraction)).Shift(int32(cur.Fraction))
	return cur.Formatter().Format(dec.IntPart())
}

func (m Money) Currency() string                { return m.cur }
func (m Money) Decimal() decimal.Decimal        { return m.value }
func (m Money) Equal(n Money) bool              { return m.value.Equal(n.value) && m.cur == n.cur }
func (m Money) IsZero() bool                    { return m.value.IsZero() }
func (m Money) IsPositive() bool                { return m.value.IsPositive() }
func (m Money) IsNegative() bool                { return m.value.IsNegative() }
func (m Money) LessThan(n Money) bool           { return m.value.LessThan(n.value) }
func (m Money) LessThanOrEqual(n Money) bool    { return m.value.LessThanOrEqual(n.value) }
func (m Money) GreaterThan(n Money) bool        { return m.value.GreaterThan(n.value) }
func (m Money) GreaterThanOrEqual(n Money) bool { return m.value.GreaterThanOrEqual(n.value) }
func (m Money) Neg() Money                      { return Money{value: m.value.Neg(), cur: m.cur} }

// binary operators.
func (m Money) Add(n Money) Money { return Money{value: m.value.Add(n.value), cur: cur(m, n)} }
func (m Money) Sub(n Money) Money { return Money{value: m.value.Sub(n.value), cur: cur(m, n)} }

// Mul scales the amount by a dimensionless factor.
func (m Money) Mul(factor decimal.Decimal) Money {
	return Money{value: m.value.Mul(factor), cur: m.cur}
}

// cur makes the "" currency totally weak, so the zero Money combines with anything.
func cur(a, b Money) string {
	if a.cur == "" {
		return b.cur
	}
	if b.cur == "" {
		return a.cur
	}
	if a.cur != b.cur {
		panic("currency mismatch " + a.cur + " != " + b.cur)
	}
	return a.cur
}

// ParseDecimal parses user-entered numeric text strictly. It tolerates the
// decorations people type into amount fields, a leading currency symbol
// and thousands separators, but rejects anything that is not a number.
func ParseDecimal(text string) (decimal.Decimal, error) {
	clean := strings.TrimSpace(text)
	clean = strings.TrimPrefix(clean, "$")
	clean = strings.ReplaceAll(clean, ",", "")
	clean = strings.TrimSpace(clean)
	if clean == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", text, err)
	}
	return d, nil
}

// LenientDecimal parses user-entered numeric text, coercing anything
// unreadable to zero. Blank input is zero. This keeps a form always
// computable, at the price of turning typos into silent zeros; callers
// that can talk to a user should prefer ParseAmount and surface the
// warning it returns.
func LenientDecimal(text string) decimal.Decimal {
	d, err := ParseDecimal(text)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// ParseMode selects between the strict and lenient numeric input policies.
type ParseMode int

const (
	// Lenient coerces malformed input to zero and reports a warning.
	Lenient ParseMode = iota
	// Strict rejects malformed input with an error.
	Strict
)

// ParseParseMode parses a mode name from configuration.
func ParseParseMode(s string) (ParseMode, error) {
	switch strings.ToLower(s) {
	case "", "lenient":
		return Lenient, nil
	case "strict":
		return Strict, nil
	default:
		return Lenient, fmt.Errorf("unknown parse mode %q", s)
	}
}

func (p ParseMode) String() string {
	if p == Strict {
		return "strict"
	}
	return "lenient"
}

// ParseAmount parses an amount field under the given mode. In Lenient mode
// err is always nil and warning carries a human-readable note whenever a
// non-blank input was coerced to zero.
func ParseAmount(mode ParseMode, field, text string) (d decimal.Decimal, warning string, err error) {
	d, err = ParseDecimal(text)
	if err == nil {
		return d, "", nil
	}
	if mode == Strict {
		return decimal.Zero, "", fmt.Errorf("%s: %w", field, err)
	}
	return decimal.Zero, fmt.Sprintf("%s: could not read %q, using 0", field, text), nil
}
