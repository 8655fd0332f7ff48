package ventas

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestStatusFor(t *testing.T) {
	price := MXN(1500)

	testCases := []struct {
		name     string
		received string
		want     PaymentStatus
	}{
		{name: "nothing received", received: "0", want: Unpaid},
		{name: "negative amount", received: "-10", want: Unpaid},
		{name: "one peso", received: "1", want: PartiallyPaid},
		{name: "almost there", received: "1499.99", want: PartiallyPaid},
		{name: "exactly the price", received: "1500", want: Paid},
		{name: "overpaid", received: "2000", want: Paid},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := StatusFor(MXN(d(tc.received)), price)
			if got != tc.want {
				t.Errorf("StatusFor(%s, 1500) = %v, want %v", tc.received, got, tc.want)
			}
		})
	}
}

func TestParsePaymentStatus(t *testing.T) {
	testCases := []struct {
		in      string
		want    PaymentStatus
		wantErr bool
	}{
		{in: "debe", want: Unpaid},
		{in: "abonado", want: PartiallyPaid},
		{in: "pagado", want: Paid},
		{in: "Pagado", want: Paid},
		{in: "🔴 Debe", want: Unpaid},
		{in: "🟡 Abonado", want: PartiallyPaid},
		{in: "🟢 Pagado", want: Paid},
		{in: "paid", want: Paid},
		{in: "whatever", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tc := range testCases {
		got, err := ParsePaymentStatus(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParsePaymentStatus(%q) = %v, want error", tc.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParsePaymentStatus(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParsePaymentStatus(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestRecordInput_Validate(t *testing.T) {
	valid := RecordInput{Product: "Tenis Jordan", Seller: "Fer", CostUSD: d("24"), Price: d("1500")}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid input refused: %v", err)
	}

	testCases := []struct {
		name   string
		mutate func(*RecordInput)
	}{
		{name: "empty product", mutate: func(in *RecordInput) { in.Product = "" }},
		{name: "blank product", mutate: func(in *RecordInput) { in.Product = "   " }},
		{name: "zero cost", mutate: func(in *RecordInput) { in.CostUSD = decimal.Zero }},
		{name: "negative cost", mutate: func(in *RecordInput) { in.CostUSD = d("-5") }},
		{name: "empty seller", mutate: func(in *RecordInput) { in.Seller = "" }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			in := valid
			tc.mutate(&in)
			if err := in.Validate(); err == nil {
				t.Errorf("invalid input accepted: %+v", in)
			}
		})
	}
}

func TestNewRecord(t *testing.T) {
	now := time.Date(2025, 11, 19, 10, 30, 0, 0, time.UTC) // a Wednesday

	rec, err := NewRecord(now, NewFixedRate(), decimal.Zero, RecordInput{
		Product: "Tenis Jordan",
		Seller:  "Fer",
		Buyer:   "555-0199",
		CostUSD: d("24"),
		Price:   d("1500"),
	})
	if err != nil {
		t.Fatalf("NewRecord: %v", err)
	}

	if rec.ID == "" {
		t.Errorf("record has no ID")
	}
	if !rec.TotalCostMXN.Equal(MXN(d("657.6"))) {
		t.Errorf("TotalCostMXN = %s, want 657.6", rec.TotalCostMXN.Decimal())
	}
	if !rec.CommissionMXN.Equal(MXN(d("177.6"))) {
		t.Errorf("CommissionMXN = %s, want 177.6", rec.CommissionMXN.Decimal())
	}
	if !rec.ProfitMXN.Equal(MXN(d("842.4"))) {
		t.Errorf("ProfitMXN = %s, want 842.4", rec.ProfitMXN.Decimal())
	}
	if rec.Status != Unpaid {
		t.Errorf("Status = %v, want Unpaid", rec.Status)
	}
	if !rec.Received.IsZero() {
		t.Errorf("Received = %s, want 0", rec.Received.Decimal())
	}
	if want := "17/11/25 al 23/11/25"; rec.Week != want {
		t.Errorf("Week = %q, want %q", rec.Week, want)
	}
	if !rec.Pending().Equal(MXN(1500)) {
		t.Errorf("Pending = %s, want 1500", rec.Pending().Decimal())
	}
}

func TestNewRecord_InitialReceived(t *testing.T) {
	now := time.Date(2025, 11, 19, 10, 30, 0, 0, time.UTC)
	in := RecordInput{Product: "Bolsa", Seller: "Dany", CostUSD: d("10"), Price: d("500")}

	in.Received = d("200")
	rec, err := NewRecord(now, NewFixedRate(), decimal.Zero, in)
	if err != nil {
		t.Fatalf("NewRecord: %v", err)
	}
	if rec.Status != PartiallyPaid {
		t.Errorf("Status = %v, want PartiallyPaid", rec.Status)
	}

	in.Received = d("500")
	rec, err = NewRecord(now, NewFixedRate(), decimal.Zero, in)
	if err != nil {
		t.Fatalf("NewRecord: %v", err)
	}
	if rec.Status != Paid {
		t.Errorf("Status = %v, want Paid", rec.Status)
	}
}

func TestNewRecord_RefusesInvalid(t *testing.T) {
	_, err := NewRecord(time.Now(), NewFixedRate(), decimal.Zero, RecordInput{Product: "", Seller: "Fer", CostUSD: d("24")})
	if err == nil {
		t.Fatalf("NewRecord accepted an invalid input")
	}
}
