package ventas

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ArmandoRuiz13/RegistroMom/date"
)

// PaymentStatus tracks how much of a sale has been collected.
type PaymentStatus int

const (
	// Unpaid means nothing has been received yet.
	Unpaid PaymentStatus = iota
	// PartiallyPaid means something, but less than the sale price, has been received.
	PartiallyPaid
	// Paid means the full sale price has been received.
	Paid
)

func (s PaymentStatus) String() string {
	switch s {
	case Unpaid:
		return "debe"
	case PartiallyPaid:
		return "abonado"
	case Paid:
		return "pagado"
	default:
		return "unknown"
	}
}

// ParsePaymentStatus parses a status label. It accepts the canonical labels
// and the decorated ones found in legacy sheets ("🔴 Debe", "🟡 Abonado",
// "🟢 Pagado").
func ParsePaymentStatus(s string) (PaymentStatus, error) {
	clean := strings.ToLower(strings.TrimSpace(s))
	// legacy sheets prefix the label with a colored dot.
	for _, dot := range []string{"🔴", "🟡", "🟢"} {
		clean = strings.TrimSpace(strings.TrimPrefix(clean, dot))
	}
	switch clean {
	case "debe", "unpaid":
		return Unpaid, nil
	case "abonado", "partial":
		return PartiallyPaid, nil
	case "pagado", "paid":
		return Paid, nil
	default:
		return Unpaid, fmt.Errorf("unknown payment status %q", s)
	}
}

// StatusFor derives the payment status from an amount received against a
// sale price: nothing received is Unpaid, the full price (or more) is
// Paid, anything in between is PartiallyPaid.
func StatusFor(received, price Money) PaymentStatus {
	switch {
	case !received.IsPositive():
		return Unpaid
	case received.GreaterThanOrEqual(price):
		return Paid
	default:
		return PartiallyPaid
	}
}

// Record is one resale transaction in the ledger.
//
// Derived monetary fields (commission, total cost, profit) are computed
// once at creation from the pricing policy and never edited afterwards.
// Only Status and Received change during the record's life, through the
// reconciliation path.
type Record struct {
	ID           string    // surrogate key assigned at creation, stable across reordering
	RegisteredAt time.Time // creation instant, immutable
	Product      string
	Seller       string
	Buyer        string // optional, name or phone
	Store        string // sourcing store, market-rate deployments only

	CostUSD       Money           // cost in the sourcing currency
	CostUSDTaxed  Money           // cost with sales tax, market-rate deployments only
	RateUsed      decimal.Decimal // MXN per USD applied at creation
	CommissionMXN Money
	TotalCostMXN  Money
	SalePriceMXN  Money
	ProfitMXN     Money
	USDEquivalent Money // total cost converted back to USD, market-rate deployments only

	Week     string // week label stamped at creation, matched by equality forever after
	Status   PaymentStatus
	Received Money // amount received so far, in MXN
}

// Pending returns how much of the sale price is still owed. It is derived
// for display only and is never persisted.
func (r Record) Pending() Money { return r.SalePriceMXN.Sub(r.Received) }

// RecordInput is the raw user input of a new sale.
type RecordInput struct {
	Product  string
	Seller   string
	Buyer    string
	Store    string
	CostUSD  decimal.Decimal
	Price    decimal.Decimal
	Received decimal.Decimal // initial amount received, usually zero
}

// Validate refuses inputs that must not reach the store: an empty product
// name, a non-positive cost, or an empty seller.
func (in RecordInput) Validate() error {
	var errs []error
	if strings.TrimSpace(in.Product) == "" {
		errs = append(errs, errors.New("product name is missing"))
	}
	if !in.CostUSD.IsPositive() {
		errs = append(errs, fmt.Errorf("cost must be positive, got %s", in.CostUSD))
	}
	if strings.TrimSpace(in.Seller) == "" {
		errs = append(errs, errors.New("seller name is missing"))
	}
	return errors.Join(errs...)
}

// NewRecord builds a record from user input: it validates the input,
// prices it under the given policy and market rate, stamps the current
// week, and derives the initial payment status from the received amount.
func NewRecord(now time.Time, policy PricingPolicy, marketRate decimal.Decimal, in RecordInput) (Record, error) {
	if err := in.Validate(); err != nil {
		return Record{}, fmt.Errorf("invalid record: %w", err)
	}

	q := policy.Quote(in.CostUSD, in.Price, marketRate)
	received := MXN(in.Received)

	return Record{
		ID:            uuid.NewString(),
		RegisteredAt:  now,
		Product:       strings.TrimSpace(in.Product),
		Seller:        strings.TrimSpace(in.Seller),
		Buyer:         strings.TrimSpace(in.Buyer),
		Store:         strings.TrimSpace(in.Store),
		CostUSD:       USD(in.CostUSD),
		CostUSDTaxed:  q.CostWithTax,
		RateUsed:      q.RateUsed,
		CommissionMXN: q.Commission,
		TotalCostMXN:  q.TotalCost,
		SalePriceMXN:  MXN(in.Price),
		ProfitMXN:     q.Profit,
		USDEquivalent: q.USDEquivalent,
		Week:          date.WeekOf(date.Of(now)).Label(),
		Status:        StatusFor(received, MXN(in.Price)),
		Received:      received,
	}, nil
}
