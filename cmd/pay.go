package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	ventas "github.com/ArmandoRuiz13/RegistroMom"
	"github.com/ArmandoRuiz13/RegistroMom/renderer"
)

type payCmd struct {
	id       string
	received string
	status   string
}

func (*payCmd) Name() string     { return "pay" }
func (*payCmd) Synopsis() string { return "record a payment against a sale" }
func (*payCmd) Usage() string {
	return `lola pay -id <record-id> [-received <mxn>] [-status <debe|abonado|pagado>]

  Records a payment. Without -status the status is derived from the new
  received amount. Marking a record pagado forces the received amount to
  the sale price on write.

Usage Examples:
$ lola pay -id 3f2a... -received 500
$ lola pay -id 3f2a... -status pagado
`
}

func (c *payCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Record to update, see 'lola list -ids'.")
	f.StringVar(&c.received, "received", "", "Total amount received so far in MXN.")
	f.StringVar(&c.status, "status", "", "Force a payment status instead of deriving it.")
}

func (c *payCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.id == "" {
		fmt.Fprintln(os.Stderr, "Error: -id is required")
		return subcommands.ExitUsageError
	}
	settings, err := loadSettings()
	if err != nil {
		return fail(err)
	}
	mode, err := settings.ParseMode()
	if err != nil {
		return fail(err)
	}

	book, closeStore, err := openBook(settings)
	if err != nil {
		return fail(err)
	}
	defer closeStore()

	l := book.Load(ctx)
	rec, ok := l.Find(c.id)
	if !ok {
		return fail(fmt.Errorf("no record with id %q", c.id))
	}

	edit := ventas.PaymentEdit{ID: c.id, Received: rec.Received.Decimal(), Status: rec.Status}
	if c.received != "" {
		d, warning, err := ventas.ParseAmount(mode, "received", c.received)
		if err != nil {
			return fail(err)
		}
		if warning != "" {
			fmt.Fprintln(stderr, "Warning:", warning)
		}
		edit.Received = d
	}
	if c.status != "" {
		status, err := ventas.ParsePaymentStatus(c.status)
		if err != nil {
			return fail(err)
		}
		edit.Status = status
	} else {
		edit.Status = ventas.StatusFor(ventas.MXN(edit.Received), rec.SalePriceMXN)
	}

	if err := book.Reconcile(ctx, edit); err != nil {
		return fail(err)
	}

	updated, _ := book.Load(ctx).Find(c.id)
	fmt.Println("Updated", renderer.Record(updated))
	return subcommands.ExitSuccess
}

type reconcileCmd struct{}

func (*reconcileCmd) Name() string     { return "reconcile" }
func (*reconcileCmd) Synopsis() string { return "normalize paid records across the ledger" }
func (*reconcileCmd) Usage() string {
	return `lola reconcile

  Walks the whole ledger and forces the received amount of every record
  marked pagado to its sale price. Partially paid and unpaid records are
  never touched. Running it twice changes nothing the second time.
`
}

func (*reconcileCmd) SetFlags(f *flag.FlagSet) {}

func (c *reconcileCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	settings, err := loadSettings()
	if err != nil {
		return fail(err)
	}
	book, closeStore, err := openBook(settings)
	if err != nil {
		return fail(err)
	}
	defer closeStore()

	changed, err := book.Normalize(ctx)
	if err != nil {
		return fail(err)
	}
	if changed == 0 {
		fmt.Println("Ledger already consistent.")
	} else {
		fmt.Printf("Normalized %d record(s).\n", changed)
	}
	return subcommands.ExitSuccess
}
