package cmd

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"

	ventas "github.com/ArmandoRuiz13/RegistroMom"
	"github.com/ArmandoRuiz13/RegistroMom/renderer"
)

type addCmd struct {
	product  string
	seller   string
	buyer    string
	store    string
	cost     string
	price    string
	received string
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "register a new sale in the ledger" }
func (*addCmd) Usage() string {
	return `lola add -product <name> -seller <name> -cost <usd> -price <mxn> [-buyer <name>] [-received <mxn>]

  Registers a sale. The commission, total cost and profit are computed
  from the cost under the configured pricing variant and frozen on the
  record. The record is stamped with the current week.

Usage Examples:
$ lola add -product "Perfume" -seller Fer -cost 24 -price 1500
$ lola add -product "Bolsa" -seller Dany -cost 30 -price 1800 -received 500
`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.product, "product", "", "Product sold.")
	f.StringVar(&c.seller, "seller", "", "Seller who made the sale.")
	f.StringVar(&c.buyer, "buyer", "", "Buyer name or phone, optional.")
	f.StringVar(&c.store, "store", "", "Sourcing store, optional.")
	f.StringVar(&c.cost, "cost", "", "Cost in USD.")
	f.StringVar(&c.price, "price", "", "Sale price in MXN.")
	f.StringVar(&c.received, "received", "", "Amount already received in MXN, defaults to 0.")
}

func (c *addCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	settings, err := loadSettings()
	if err != nil {
		return fail(err)
	}
	policy, err := settings.Policy()
	if err != nil {
		return fail(err)
	}
	mode, err := settings.ParseMode()
	if err != nil {
		return fail(err)
	}

	if c.seller != "" && !settings.KnownSeller(c.seller) {
		fmt.Fprintf(stderr, "Warning: seller %q is not in the configured roster, recording anyway\n", c.seller)
	}

	in := ventas.RecordInput{
		Product: c.product,
		Seller:  c.seller,
		Buyer:   c.buyer,
		Store:   c.store,
	}
	for _, amount := range []struct {
		field string
		text  string
		dst   *decimal.Decimal
	}{
		{"cost", c.cost, &in.CostUSD},
		{"price", c.price, &in.Price},
		{"received", c.received, &in.Received},
	} {
		d, warning, err := ventas.ParseAmount(mode, amount.field, amount.text)
		if err != nil {
			return fail(err)
		}
		if warning != "" {
			fmt.Fprintln(stderr, "Warning:", warning)
		}
		*amount.dst = d
	}

	marketRate := decimal.Zero
	if policy.Name() == "market" {
		source, err := rateSource(settings)
		if err != nil {
			return fail(err)
		}
		marketRate = source.Rate()
	}

	rec, err := ventas.NewRecord(time.Now(), policy, marketRate, in)
	if err != nil {
		return fail(err)
	}

	book, closeStore, err := openBook(settings)
	if err != nil {
		return fail(err)
	}
	defer closeStore()

	if err := book.Save(ctx, rec); err != nil {
		return fail(err)
	}
	fmt.Printf("Registered %s\n  id: %s\n  week: %s\n", renderer.Record(rec), rec.ID, rec.Week)
	return subcommands.ExitSuccess
}
