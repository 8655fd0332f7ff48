package ventas

import (
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// DefaultSellers is the historical roster of the original deployment,
// used when the settings file names none. It is advisory: free-text
// sellers are accepted everywhere.
var DefaultSellers = []string{
	"Fer", "Dany", "Barby", "Marta", "Eriberto", "Elena", "Julio", "Jaz", "Eli", "Viri", "Kari",
}

// Duration is a time.Duration that unmarshals from YAML strings like
// "90m" or "1h30m".
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", value.Value, err)
	}
	*d = Duration(parsed)
	return nil
}

// Settings holds all deployment configuration.
type Settings struct {
	Pricing struct {
		Variant              string `yaml:"variant"` // "fixed" or "market"
		FixedRate            string `yaml:"fixed_rate"`
		BaseRate             string `yaml:"base_rate"`
		TaxFactor            string `yaml:"tax_factor"`
		CommissionRate       string `yaml:"commission_rate"`
		CommissionConversion string `yaml:"commission_conversion"`
	} `yaml:"pricing"`
	Sellers []string `yaml:"sellers"`
	Numbers string   `yaml:"numbers"` // "lenient" or "strict"
	Store   struct {
		LedgerFile string `yaml:"ledger_file"`
		SQLitePath string `yaml:"sqlite_path"` // when set, takes precedence over ledger_file
	} `yaml:"store"`
	Rates struct {
		URL      string        `yaml:"url"`
		JSONPath string        `yaml:"jsonpath"`
		Fallback string   `yaml:"fallback"`
		TTL      Duration `yaml:"ttl"`
	} `yaml:"rates"`
}

// LoadSettings reads settings from a YAML file, then applies environment
// variable overrides and defaults. A missing file yields pure defaults.
func LoadSettings(path string) (*Settings, error) {
	s := &Settings{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read settings: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, s); err != nil {
			return nil, fmt.Errorf("parse settings: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("VENTAS_LEDGER_FILE"); v != "" {
		s.Store.LedgerFile = v
	}
	if v := os.Getenv("VENTAS_SQLITE_PATH"); v != "" {
		s.Store.SQLitePath = v
	}
	if v := os.Getenv("VENTAS_PRICING"); v != "" {
		s.Pricing.Variant = v
	}
	if v := os.Getenv("VENTAS_RATES_URL"); v != "" {
		s.Rates.URL = v
	}
	if v := os.Getenv("VENTAS_NUMBERS"); v != "" {
		s.Numbers = v
	}

	// Defaults
	if s.Pricing.Variant == "" {
		s.Pricing.Variant = "fixed"
	}
	if len(s.Sellers) == 0 {
		s.Sellers = DefaultSellers
	}
	if s.Store.LedgerFile == "" {
		s.Store.LedgerFile = "ventas.jsonl"
	}
	if s.Rates.URL == "" {
		s.Rates.URL = "https://open.er-api.com/v6/latest/USD"
	}
	if s.Rates.JSONPath == "" {
		s.Rates.JSONPath = "$.rates.MXN"
	}
	if s.Rates.Fallback == "" {
		s.Rates.Fallback = "19.5"
	}
	if s.Rates.TTL == 0 {
		s.Rates.TTL = Duration(time.Hour)
	}

	return s, nil
}

// overridden decimal constant, or the default when the setting is blank.
func decimalOr(setting string, def decimal.Decimal) (decimal.Decimal, error) {
	if setting == "" {
		return def, nil
	}
	return decimal.NewFromString(setting)
}

// Policy builds the configured pricing policy. A deployment runs exactly
// one variant; the constants of the other are ignored.
func (s *Settings) Policy() (PricingPolicy, error) {
	switch s.Pricing.Variant {
	case "", "fixed":
		p := NewFixedRate()
		var err error
		if p.Rate, err = decimalOr(s.Pricing.FixedRate, p.Rate); err != nil {
			return nil, fmt.Errorf("invalid fixed_rate: %w", err)
		}
		if p.BaseRate, err = decimalOr(s.Pricing.BaseRate, p.BaseRate); err != nil {
			return nil, fmt.Errorf("invalid base_rate: %w", err)
		}
		return p, nil
	case "market":
		p := NewMarketRate()
		var err error
		if p.TaxFactor, err = decimalOr(s.Pricing.TaxFactor, p.TaxFactor); err != nil {
			return nil, fmt.Errorf("invalid tax_factor: %w", err)
		}
		if p.CommissionRate, err = decimalOr(s.Pricing.CommissionRate, p.CommissionRate); err != nil {
			return nil, fmt.Errorf("invalid commission_rate: %w", err)
		}
		if p.CommissionConversion, err = decimalOr(s.Pricing.CommissionConversion, p.CommissionConversion); err != nil {
			return nil, fmt.Errorf("invalid commission_conversion: %w", err)
		}
		return p, nil
	default:
		return nil, fmt.Errorf("unknown pricing variant %q", s.Pricing.Variant)
	}
}

// KnownSeller reports whether name is in the configured roster. The
// roster is advisory: unknown sellers are recorded anyway, callers only
// use this to warn.
func (s *Settings) KnownSeller(name string) bool {
	for _, seller := range s.Sellers {
		if seller == name {
			return true
		}
	}
	return false
}

// ParseMode returns the configured numeric input policy.
func (s *Settings) ParseMode() (ParseMode, error) {
	return ParseParseMode(s.Numbers)
}

// RateFallback returns the configured fallback exchange rate.
func (s *Settings) RateFallback() (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s.Rates.Fallback)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid rates fallback %q: %w", s.Rates.Fallback, err)
	}
	return d, nil
}
