package ventas

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// jsonRecord is the persisted shape of a Record, one JSON object per line.
// The derived pending amount is display-only and deliberately has no
// field here.
type jsonRecord struct {
	ID            string          `json:"id"`
	RegisteredAt  time.Time       `json:"registeredAt"`
	Product       string          `json:"product"`
	Seller        string          `json:"seller"`
	Buyer         string          `json:"buyer,omitempty"`
	Store         string          `json:"store,omitempty"`
	CostUSD       decimal.Decimal `json:"costUsd"`
	CostUSDTaxed  decimal.Decimal `json:"costUsdTaxed"`
	RateUsed      decimal.Decimal `json:"rateUsed"`
	CommissionMXN decimal.Decimal `json:"commissionMxn"`
	TotalCostMXN  decimal.Decimal `json:"totalCostMxn"`
	SalePriceMXN  decimal.Decimal `json:"salePriceMxn"`
	ProfitMXN     decimal.Decimal `json:"profitMxn"`
	USDEquivalent decimal.Decimal `json:"usdEquivalent"`
	Week          string          `json:"week"`
	Status        string          `json:"status"`
	ReceivedMXN   decimal.Decimal `json:"receivedMxn"`
}

func toJSONRecord(r Record) jsonRecord {
	return jsonRecord{
		ID:            r.ID,
		RegisteredAt:  r.RegisteredAt,
		Product:       r.Product,
		Seller:        r.Seller,
		Buyer:         r.Buyer,
		Store:         r.Store,
		CostUSD:       r.CostUSD.Decimal(),
		CostUSDTaxed:  r.CostUSDTaxed.Decimal(),
		RateUsed:      r.RateUsed,
		CommissionMXN: r.CommissionMXN.Decimal(),
		TotalCostMXN:  r.TotalCostMXN.Decimal(),
		SalePriceMXN:  r.SalePriceMXN.Decimal(),
		ProfitMXN:     r.ProfitMXN.Decimal(),
		USDEquivalent: r.USDEquivalent.Decimal(),
		Week:          r.Week,
		Status:        r.Status.String(),
		ReceivedMXN:   r.Received.Decimal(),
	}
}

func (j jsonRecord) Record() (Record, error) {
	status, err := ParsePaymentStatus(j.Status)
	if err != nil {
		return Record{}, err
	}
	return Record{
		ID:            j.ID,
		RegisteredAt:  j.RegisteredAt,
		Product:       j.Product,
		Seller:        j.Seller,
		Buyer:         j.Buyer,
		Store:         j.Store,
		CostUSD:       USD(j.CostUSD),
		CostUSDTaxed:  USD(j.CostUSDTaxed),
		RateUsed:      j.RateUsed,
		CommissionMXN: MXN(j.CommissionMXN),
		TotalCostMXN:  MXN(j.TotalCostMXN),
		SalePriceMXN:  MXN(j.SalePriceMXN),
		ProfitMXN:     MXN(j.ProfitMXN),
		USDEquivalent: USD(j.USDEquivalent),
		Week:          j.Week,
		Status:        status,
		Received:      MXN(j.ReceivedMXN),
	}, nil
}

// EncodeRecord writes one record as a JSON line.
func EncodeRecord(w io.Writer, r Record) error {
	data, err := json.Marshal(toJSONRecord(r))
	if err != nil {
		return fmt.Errorf("cannot marshal record %q: %w", r.ID, err)
	}
	_, err = w.Write(append(data, '\n'))
	return err
}

// EncodeLedger writes the whole ledger as JSONL, in table order.
func EncodeLedger(w io.Writer, l *Ledger) error {
	for _, r := range l.Records() {
		if err := EncodeRecord(w, r); err != nil {
			return err
		}
	}
	return nil
}

// DecodeLedger reads a JSONL stream of records into a ledger, preserving
// line order. Empty lines are skipped.
func DecodeLedger(r io.Reader) (*Ledger, error) {
	ledger := NewLedger()
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var jr jsonRecord
		if err := json.Unmarshal(line, &jr); err != nil {
			return nil, fmt.Errorf("cannot parse ledger line %q: %w", string(line), err)
		}
		rec, err := jr.Record()
		if err != nil {
			return nil, fmt.Errorf("cannot parse ledger line %q: %w", string(line), err)
		}
		ledger.Append(rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("cannot read ledger: %w", err)
	}
	return ledger, nil
}
