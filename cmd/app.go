// Package cmd implements the CLI application that keeps the sales book.
package cmd

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"

	ventas "github.com/ArmandoRuiz13/RegistroMom"
	"github.com/ArmandoRuiz13/RegistroMom/date"
	"github.com/ArmandoRuiz13/RegistroMom/rates"
	"github.com/ArmandoRuiz13/RegistroMom/sqlstore"
)

// Register the subcommands.
// A main package calls Register() and then Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&addCmd{}, "ledger")
	c.Register(&listCmd{}, "ledger")
	c.Register(&deleteCmd{}, "ledger")

	c.Register(&payCmd{}, "payments")
	c.Register(&reconcileCmd{}, "payments")

	c.Register(&summaryCmd{}, "reports")
	c.Register(&weeksCmd{}, "reports")
	c.Register(&rateCmd{}, "reports")

	c.Register(&exportCmd{}, "interchange")
	c.Register(&importCmd{}, "interchange")

	c.Register(&topicCmd{}, "documentation")
	c.Register(&assistCmd{}, "documentation")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configFile = flag.String("config", "lola.yaml", "Path to the settings file")
var ledgerFile = flag.String("ledger-file", "", "Path to the ledger file, overrides the settings")

func loadSettings() (*ventas.Settings, error) {
	s, err := ventas.LoadSettings(*configFile)
	if err != nil {
		return nil, err
	}
	if *ledgerFile != "" {
		s.Store.LedgerFile = *ledgerFile
		s.Store.SQLitePath = ""
	}
	return s, nil
}

// openBook opens the configured store and wraps it in a book. The
// returned close function is a no-op for the file store.
func openBook(s *ventas.Settings) (*ventas.Book, func() error, error) {
	if s.Store.SQLitePath != "" {
		store, err := sqlstore.Open(s.Store.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("could not open ledger database %q: %w", s.Store.SQLitePath, err)
		}
		return ventas.NewBook(store), store.Close, nil
	}
	store := ventas.NewFileStore(s.Store.LedgerFile)
	return ventas.NewBook(store), func() error { return nil }, nil
}

// rateSource builds the configured exchange rate source. With the fixed
// pricing variant the source is never queried; its fallback still serves
// as the stored rate.
func rateSource(s *ventas.Settings) (*rates.Source, error) {
	fallback, err := s.RateFallback()
	if err != nil {
		return nil, err
	}
	return rates.New(s.Rates.URL, s.Rates.JSONPath, fallback, time.Duration(s.Rates.TTL)), nil
}

// resolveWeek turns a -week argument into a week label. The argument is
// either a full label or a single day inside the wanted week. Records
// group by the label stamped at creation, so a day is matched against
// the ledger's existing labels before falling back to the computed one.
func resolveWeek(l *ventas.Ledger, arg string) (string, error) {
	if arg == "" {
		return "", nil
	}
	if w, err := date.ParseWeekLabel(arg); err == nil {
		return w.Label(), nil
	}
	day, err := date.Parse(arg)
	if err != nil {
		return "", fmt.Errorf("invalid week %q: want a label like \"17/11/25 al 23/11/25\" or a day like 2025-11-19", arg)
	}
	for _, label := range l.Weeks() {
		w, err := date.ParseWeekLabel(label)
		if err != nil {
			continue
		}
		if w.Contains(day) {
			return label, nil
		}
	}
	return date.WeekOf(day).Label(), nil
}

// printMarkdown renders markdown for the terminal, falling back to the
// raw text when rendering fails.
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		fmt.Println(md)
		return
	}
	fmt.Print(out)
}

// fail prints an error and returns the failure exit status.
func fail(err error) subcommands.ExitStatus {
	fmt.Fprintln(os.Stderr, "Error:", err)
	return subcommands.ExitFailure
}

// stdin and stderr are swapped in tests, to feed confirmation answers
// and to observe warnings.
var stdin io.Reader = os.Stdin
var stderr io.Writer = os.Stderr
