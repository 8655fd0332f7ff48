package ventas

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadSettings_Defaults(t *testing.T) {
	s, err := LoadSettings(filepath.Join(t.TempDir(), "no-such-file.yaml"))
	if err != nil {
		t.Fatalf("LoadSettings on a missing file: %v", err)
	}
	if s.Pricing.Variant != "fixed" {
		t.Errorf("default variant = %q", s.Pricing.Variant)
	}
	if len(s.Sellers) == 0 {
		t.Errorf("no default sellers")
	}
	if s.Rates.TTL != Duration(time.Hour) {
		t.Errorf("default rates TTL = %v", time.Duration(s.Rates.TTL))
	}

	policy, err := s.Policy()
	if err != nil {
		t.Fatalf("Policy: %v", err)
	}
	fixed, ok := policy.(FixedRate)
	if !ok {
		t.Fatalf("default policy is %T", policy)
	}
	if !fixed.Rate.Equal(d("27.40")) || !fixed.BaseRate.Equal(d("20")) {
		t.Errorf("default constants = %s / %s", fixed.Rate, fixed.BaseRate)
	}

	mode, err := s.ParseMode()
	if err != nil || mode != Lenient {
		t.Errorf("default parse mode = %v, %v", mode, err)
	}
}

func TestLoadSettings_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	content := `
pricing:
  variant: market
  tax_factor: "1.10"
sellers: [Fer, Dany]
numbers: strict
store:
  sqlite_path: ventas.db
rates:
  fallback: "18.0"
  ttl: 90m
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	s, err := LoadSettings(path)
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}

	policy, err := s.Policy()
	if err != nil {
		t.Fatalf("Policy: %v", err)
	}
	market, ok := policy.(MarketRate)
	if !ok {
		t.Fatalf("policy is %T, want MarketRate", policy)
	}
	if !market.TaxFactor.Equal(d("1.10")) {
		t.Errorf("TaxFactor = %s", market.TaxFactor)
	}
	// constants not named in the file keep their defaults.
	if !market.CommissionRate.Equal(d("0.12")) {
		t.Errorf("CommissionRate = %s", market.CommissionRate)
	}

	if mode, _ := s.ParseMode(); mode != Strict {
		t.Errorf("parse mode = %v, want Strict", mode)
	}
	if s.Store.SQLitePath != "ventas.db" {
		t.Errorf("SQLitePath = %q", s.Store.SQLitePath)
	}
	if fb, err := s.RateFallback(); err != nil || !fb.Equal(d("18")) {
		t.Errorf("RateFallback = %s, %v", fb, err)
	}
	if len(s.Sellers) != 2 {
		t.Errorf("Sellers = %v", s.Sellers)
	}
	if got := time.Duration(s.Rates.TTL); got != 90*time.Minute {
		t.Errorf("TTL = %v, want 90m", got)
	}
}

func TestLoadSettings_BadTTL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	if err := os.WriteFile(path, []byte("rates:\n  ttl: soon\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSettings(path); err == nil {
		t.Errorf("LoadSettings accepted ttl %q", "soon")
	}
}

func TestSettings_KnownSeller(t *testing.T) {
	s, err := LoadSettings(filepath.Join(t.TempDir(), "none.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if !s.KnownSeller("Fer") {
		t.Errorf("KnownSeller(Fer) = false with the default roster")
	}
	if s.KnownSeller("Nadie") {
		t.Errorf("KnownSeller(Nadie) = true")
	}
}

func TestLoadSettings_EnvOverride(t *testing.T) {
	t.Setenv("VENTAS_PRICING", "market")
	t.Setenv("VENTAS_LEDGER_FILE", "other.jsonl")

	s, err := LoadSettings(filepath.Join(t.TempDir(), "none.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if s.Pricing.Variant != "market" {
		t.Errorf("env override lost: variant = %q", s.Pricing.Variant)
	}
	if s.Store.LedgerFile != "other.jsonl" {
		t.Errorf("env override lost: ledger file = %q", s.Store.LedgerFile)
	}
}

func TestLoadSettings_BadPolicy(t *testing.T) {
	s := &Settings{}
	s.Pricing.Variant = "blended"
	if _, err := s.Policy(); err == nil {
		t.Errorf("Policy accepted an unknown variant")
	}
}
