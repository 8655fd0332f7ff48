package cmd

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"

	ventas "github.com/ArmandoRuiz13/RegistroMom"
	"github.com/ArmandoRuiz13/RegistroMom/renderer"
)

type deleteCmd struct {
	id  string
	yes bool
}

func (*deleteCmd) Name() string     { return "delete" }
func (*deleteCmd) Synopsis() string { return "delete a sale record, with confirmation" }
func (*deleteCmd) Usage() string {
	return `lola delete -id <record-id> [-yes]

  Deletes one record. The record is shown and a confirmation is asked
  first; -yes skips the question. The record is addressed by ID, so a
  concurrent edit of the ledger cannot shift the deletion onto another
  row.

Usage Examples:
$ lola delete -id 3f2a...
$ lola delete -id 3f2a... -yes
`
}

func (c *deleteCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Record to delete, see 'lola list -ids'.")
	f.BoolVar(&c.yes, "yes", false, "Delete without asking.")
}

func (c *deleteCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.id == "" {
		fmt.Fprintln(os.Stderr, "Error: -id is required")
		return subcommands.ExitUsageError
	}
	settings, err := loadSettings()
	if err != nil {
		return fail(err)
	}
	book, closeStore, err := openBook(settings)
	if err != nil {
		return fail(err)
	}
	defer closeStore()

	rec, ok := book.Load(ctx).Find(c.id)
	if !ok {
		return fail(fmt.Errorf("no record with id %q", c.id))
	}

	session := ventas.NewDeleteSession(book)
	session.Request(c.id)

	if !c.yes {
		fmt.Printf("Delete %s? [y/N] ", renderer.Record(rec))
		answer, _ := bufio.NewReader(stdin).ReadString('\n')
		if !strings.EqualFold(strings.TrimSpace(answer), "y") {
			session.Cancel()
			fmt.Println("Not deleted.")
			return subcommands.ExitSuccess
		}
	}

	if err := session.Confirm(ctx); err != nil {
		return fail(err)
	}
	fmt.Println("Deleted", renderer.Record(rec))
	return subcommands.ExitSuccess
}
