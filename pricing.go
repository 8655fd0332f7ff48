package ventas

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Quote is the result of pricing a sale. All amounts derive from the raw
// inputs and the policy constants alone: quoting the same inputs twice
// yields identical quotes.
type Quote struct {
	CostWithTax   Money           // cost with sales tax applied, USD (market policy only)
	Commission    Money           // commission embedded in the cost, MXN
	TotalCost     Money           // full cost in MXN
	Profit        Money           // sale price minus total cost, MXN; may be negative
	USDEquivalent Money           // total cost converted back to USD (market policy only)
	RateUsed      decimal.Decimal // MXN per USD actually applied
}

// PricingPolicy derives commission, total cost, and profit from the raw
// cost and sale price. Two incompatible formulas exist across deployments;
// a deployment picks exactly one at configuration time.
type PricingPolicy interface {
	// Quote prices a sale. marketRate is the current MXN-per-USD rate and
	// is ignored by policies carrying their own fixed rate.
	Quote(costUSD, salePrice, marketRate decimal.Decimal) Quote
	// Name identifies the policy variant in configuration and reports.
	Name() string
}

// FixedRate prices with a deployment-constant exchange rate. The
// commission is the markup embedded in that rate over a baseline rate.
type FixedRate struct {
	Rate     decimal.Decimal // MXN per USD charged, e.g. 27.40
	BaseRate decimal.Decimal // baseline MXN per USD, e.g. 20.00
}

// NewFixedRate returns the fixed-rate policy with its historical defaults.
func NewFixedRate() FixedRate {
	return FixedRate{
		Rate:     decimal.RequireFromString("27.40"),
		BaseRate: decimal.RequireFromString("20.00"),
	}
}

func (p FixedRate) Name() string { return "fixed" }

func (p FixedRate) Quote(costUSD, salePrice, _ decimal.Decimal) Quote {
	totalCost := costUSD.Mul(p.Rate)
	return Quote{
		Commission: MXN(costUSD.Mul(p.Rate.Sub(p.BaseRate))),
		TotalCost:  MXN(totalCost),
		Profit:     MXN(salePrice.Sub(totalCost)),
		RateUsed:   p.Rate,
	}
}

// MarketRate prices with the current market exchange rate, adding sales
// tax on the USD cost and a commission converted across currencies.
type MarketRate struct {
	TaxFactor            decimal.Decimal // e.g. 1.0825
	CommissionRate       decimal.Decimal // e.g. 0.12
	CommissionConversion decimal.Decimal // cross-currency conversion of the commission, e.g. 19.5
}

// NewMarketRate returns the market-rate policy with its historical defaults.
func NewMarketRate() MarketRate {
	return MarketRate{
		TaxFactor:            decimal.RequireFromString("1.0825"),
		CommissionRate:       decimal.RequireFromString("0.12"),
		CommissionConversion: decimal.RequireFromString("19.5"),
	}
}

func (p MarketRate) Name() string { return "market" }

func (p MarketRate) Quote(costUSD, salePrice, marketRate decimal.Decimal) Quote {
	costWithTax := costUSD.Mul(p.TaxFactor)
	commission := costWithTax.Mul(p.CommissionRate).Mul(p.CommissionConversion)
	totalCost := costWithTax.Mul(marketRate).Add(commission)

	// an unknown rate must not blow up the quote, the USD equivalent just degrades to zero.
	usdEquivalent := decimal.Zero
	if marketRate.IsPositive() {
		usdEquivalent = totalCost.Div(marketRate)
	}

	return Quote{
		CostWithTax:   USD(costWithTax),
		Commission:    MXN(commission),
		TotalCost:     MXN(totalCost),
		Profit:        MXN(salePrice.Sub(totalCost)),
		USDEquivalent: USD(usdEquivalent),
		RateUsed:      marketRate,
	}
}

// ParsePricingPolicy returns the named policy with its default constants.
func ParsePricingPolicy(name string) (PricingPolicy, error) {
	switch name {
	case "", "fixed":
		return NewFixedRate(), nil
	case "market":
		return NewMarketRate(), nil
	default:
		return nil, fmt.Errorf("unknown pricing policy %q", name)
	}
}
