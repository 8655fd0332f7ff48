package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	ventas "github.com/ArmandoRuiz13/RegistroMom"
)

type exportCmd struct {
	output string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export the ledger as CSV" }
func (*exportCmd) Usage() string {
	return `lola export [-o <file>]

  Writes the ledger as CSV with the historical Spanish column headers,
  ready for a spreadsheet. Without -o the CSV goes to stdout.

Usage Examples:
$ lola export -o ventas.csv
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "", "Write to this file instead of stdout.")
}

func (c *exportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	out := os.Stdout
	if c.output != "" {
		out, err = os.Create(c.output)
		if err != nil {
			return fail(fmt.Errorf("could not create %q: %w", c.output, err))
		}
		defer out.Close()
	}
	if err := ventas.ExportCSV(out, l); err != nil {
		return fail(err)
	}
	if c.output != "" {
		fmt.Printf("Exported %d record(s) to %s\n", l.Len(), c.output)
	}
	return subcommands.ExitSuccess
}

type importCmd struct {
	input string
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "replace the ledger with a CSV file" }
func (*importCmd) Usage() string {
	return `lola import -i <file>

  Reads a CSV with the historical Spanish column headers and replaces
  the whole ledger with it. Columns are matched by name, so their order
  does not matter; rows without an ID get a fresh one. Export first if
  you want a backup.

Usage Examples:
$ lola import -i ventas.csv
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.input, "i", "", "CSV file to import.")
}

func (c *importCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.input == "" {
		fmt.Fprintln(os.Stderr, "Error: -i is required")
		return subcommands.ExitUsageError
	}
	settings, err := loadSettings()
	if err != nil {
		return fail(err)
	}

	in, err := os.Open(c.input)
	if err != nil {
		return fail(fmt.Errorf("could not open %q: %w", c.input, err))
	}
	defer in.Close()

	imported, err := ventas.ImportCSV(in)
	if err != nil {
		return fail(err)
	}

	book, closeStore, err := openBook(settings)
	if err != nil {
		return fail(err)
	}
	defer closeStore()

	// the import replaces whatever is stored; read first so the write
	// carries the current revision.
	current := book.Load(ctx)
	imported.SetRevision(current.Revision())
	if err := book.Replace(ctx, imported); err != nil {
		return fail(err)
	}
	fmt.Printf("Imported %d record(s) from %s\n", imported.Len(), c.input)
	return subcommands.ExitSuccess
}
