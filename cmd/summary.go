package cmd

import (
	"context"
	"flag"
	"strings"

	"github.com/google/subcommands"

	ventas "github.com/ArmandoRuiz13/RegistroMom"
	"github.com/ArmandoRuiz13/RegistroMom/date"
	"github.com/ArmandoRuiz13/RegistroMom/renderer"
)

type summaryCmd struct {
	week     string
	current  bool
	bySeller bool
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "totals for a week or for the whole ledger" }
func (*summaryCmd) Usage() string {
	return `lola summary [-week <label or day> | -current] [-by-seller]

  Sums sales, commissions, profit, received and pending over the
  selected records. With -by-seller, adds a per-seller ranking.

Usage Examples:
$ lola summary -current
$ lola summary -week "17/11/25 al 23/11/25" -by-seller
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.week, "week", "", "Summarize this week only, by label or by a day in it.")
	f.BoolVar(&c.current, "current", false, "Summarize the week containing today.")
	f.BoolVar(&c.bySeller, "by-seller", false, "Add the per-seller breakdown.")
}

func (c *summaryCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	settings, err := loadSettings()
	if err != nil {
		return fail(err)
	}
	book, closeStore, err := openBook(settings)
	if err != nil {
		return fail(err)
	}
	defer closeStore()

	l := book.Load(ctx)

	week, err := resolveWeek(l, c.week)
	if err != nil {
		return fail(err)
	}
	if c.current {
		week = date.ThisWeek().Label()
	}

	var filters []func(ventas.Record) bool
	title := "Summary"
	if week != "" {
		filters = append(filters, ventas.ByWeek(week))
		title = "Summary " + week
	}

	var b strings.Builder
	b.WriteString(renderer.SummaryMarkdown(title, ventas.Summarize(l.Records(filters...))))
	if c.bySeller {
		b.WriteString("\n")
		b.WriteString(renderer.SellersMarkdown("Sellers", ventas.GroupBySeller(l.Records(filters...))))
	}
	printMarkdown(b.String())
	return subcommands.ExitSuccess
}

type weeksCmd struct{}

func (*weeksCmd) Name() string     { return "weeks" }
func (*weeksCmd) Synopsis() string { return "list the weeks with recorded sales" }
func (*weeksCmd) Usage() string {
	return `lola weeks

  Lists every distinct week label in the ledger, oldest first. Labels
  are what -week flags expect.
`
}

func (*weeksCmd) SetFlags(f *flag.FlagSet) {}

func (c *weeksCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	settings, err := loadSettings()
	if err != nil {
		return fail(err)
	}
	book, closeStore, err := openBook(settings)
	if err != nil {
		return fail(err)
	}
	defer closeStore()

	printMarkdown(renderer.WeeksMarkdown(book.Load(ctx).Weeks()))
	return subcommands.ExitSuccess
}
