package cmd

import (
	"context"
	"flag"

	"github.com/google/subcommands"

	ventas "github.com/ArmandoRuiz13/RegistroMom"
	"github.com/ArmandoRuiz13/RegistroMom/date"
	"github.com/ArmandoRuiz13/RegistroMom/renderer"
)

type listCmd struct {
	week    string
	current bool
	seller  string
	ids     bool
}

func (*listCmd) Name() string     { return "list" }
func (*listCmd) Synopsis() string { return "list the sale records" }
func (*listCmd) Usage() string {
	return `lola list [-week <label or day> | -current] [-seller <name>] [-ids]

  Lists sale records, optionally restricted to one week or one seller.
  Week labels look like "17/11/25 al 23/11/25"; see 'lola weeks'. A day
  like 2025-11-19 selects the week containing it.

Usage Examples:
$ lola list
$ lola list -current
$ lola list -week "17/11/25 al 23/11/25" -seller Fer
$ lola list -week 2025-11-19
`
}

func (c *listCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.week, "week", "", "Only records of this week, by label or by a day in it.")
	f.BoolVar(&c.current, "current", false, "Only records of the week containing today.")
	f.StringVar(&c.seller, "seller", "", "Only records of this seller.")
	f.BoolVar(&c.ids, "ids", false, "Also print record IDs, for pay and delete.")
}

func (c *listCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	title := "Sales"
	selection := l.Records()
	switch {
	case week != "" && c.seller != "":
		// both filters must hold, so filter twice.
		filtered := ventas.NewLedger()
		for _, r := range l.Records(ventas.ByWeek(week)) {
			if r.Seller == c.seller {
				filtered.Append(r)
			}
		}
		selection = filtered.Records()
		title = "Sales " + week + " by " + c.seller
	case week != "":
		selection = l.Records(ventas.ByWeek(week))
		title = "Sales " + week
	case c.seller != "":
		selection = l.Records(ventas.BySeller(c.seller))
		title = "Sales by " + c.seller
	}

	printMarkdown(renderer.RecordsMarkdown(title, selection))

	if c.ids {
		for _, r := range selection {
			printMarkdown("- `" + r.ID + "` " + renderer.Record(r))
		}
	}
	return subcommands.ExitSuccess
}
