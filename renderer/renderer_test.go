package renderer

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	ventas "github.com/ArmandoRuiz13/RegistroMom"
)

func sale(t *testing.T, product, seller string, cost, price, received float64) ventas.Record {
	t.Helper()
	now := time.Date(2025, 11, 19, 10, 30, 0, 0, time.UTC)
	r, err := ventas.NewRecord(now, ventas.NewFixedRate(), decimal.Zero, ventas.RecordInput{
		Product:  product,
		Seller:   seller,
		CostUSD:  decimal.NewFromFloat(cost),
		Price:    decimal.NewFromFloat(price),
		Received: decimal.NewFromFloat(received),
	})
	if err != nil {
		t.Fatalf("NewRecord() error = %v", err)
	}
	return r
}

func TestRecordsMarkdown(t *testing.T) {
	l := ventas.NewLedger()
	l.Append(sale(t, "Perfume", "Fer", 24, 1500, 0))
	l.Append(sale(t, "Bolsa", "Dany", 30, 1800, 1800))

	got := RecordsMarkdown("Sales", l.Records())

	for _, want := range []string{
		"# Sales",
		"Perfume",
		"Bolsa",
		"Fer",
		"🔴 debe",
		"🟢 pagado",
		"19/11/2025",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("RecordsMarkdown() missing %q in:\n%s", want, got)
		}
	}
}

func TestRecordsMarkdown_Empty(t *testing.T) {
	l := ventas.NewLedger()
	got := RecordsMarkdown("Sales", l.Records())
	if !strings.Contains(got, "No records.") {
		t.Errorf("RecordsMarkdown() = %q, want empty notice", got)
	}
}

func TestSummaryMarkdown(t *testing.T) {
	l := ventas.NewLedger()
	l.Append(sale(t, "Perfume", "Fer", 24, 1500, 500))
	l.Append(sale(t, "Bolsa", "Dany", 30, 1800, 1800))

	got := SummaryMarkdown("Summary", ventas.Summarize(l.Records()))

	for _, want := range []string{
		"# Summary",
		"2 sales",
		"$3,300.00", // total sales
		"$2,300.00", // received
		"$1,000.00", // pending
	} {
		if !strings.Contains(got, want) {
			t.Errorf("SummaryMarkdown() missing %q in:\n%s", want, got)
		}
	}
}

func TestSellersMarkdown(t *testing.T) {
	l := ventas.NewLedger()
	l.Append(sale(t, "Perfume", "Fer", 24, 1500, 0))
	l.Append(sale(t, "Bolsa", "Dany", 30, 1800, 0))
	l.Append(sale(t, "Crema", "Fer", 10, 400, 0))

	got := SellersMarkdown("Sellers", ventas.GroupBySeller(l.Records()))

	// Fer sold more in total and comes first.
	fer := strings.Index(got, "Fer")
	dany := strings.Index(got, "Dany")
	if fer < 0 || dany < 0 || fer > dany {
		t.Errorf("SellersMarkdown() order wrong:\n%s", got)
	}
}

func TestRecord(t *testing.T) {
	r := sale(t, "Perfume", "Fer", 24, 1500, 500)
	got := Record(r)
	for _, want := range []string{"Perfume", "Fer", "$1,500.00", "abonado", "$1,000.00 pending"} {
		if !strings.Contains(got, want) {
			t.Errorf("Record() = %q, missing %q", got, want)
		}
	}
}

func TestWeeksMarkdown(t *testing.T) {
	got := WeeksMarkdown([]string{"10/11/25 al 16/11/25", "17/11/25 al 23/11/25"})
	if !strings.Contains(got, "1. 10/11/25 al 16/11/25") {
		t.Errorf("WeeksMarkdown() =\n%s", got)
	}
}

func TestSellerListMarkdown(t *testing.T) {
	got := SellerListMarkdown([]string{"Fer", "Dany"})
	if !strings.Contains(got, "- Fer") || !strings.Contains(got, "- Dany") {
		t.Errorf("SellerListMarkdown() =\n%s", got)
	}
	if got := SellerListMarkdown(nil); !strings.Contains(got, "No records.") {
		t.Errorf("SellerListMarkdown(nil) =\n%s", got)
	}
}
