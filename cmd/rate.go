package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
)

type rateCmd struct{}

func (*rateCmd) Name() string     { return "rate" }
func (*rateCmd) Synopsis() string { return "show the current USD/MXN exchange rate" }
func (*rateCmd) Usage() string {
	return `lola rate

  Shows the exchange rate the market pricing variant would apply right
  now. When the rate service is unreachable the configured fallback is
  shown instead.
`
}

func (*rateCmd) SetFlags(f *flag.FlagSet) {}

func (c *rateCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	settings, err := loadSettings()
	if err != nil {
		return fail(err)
	}
	source, err := rateSource(settings)
	if err != nil {
		return fail(err)
	}
	fmt.Printf("1 USD = %s MXN\n", source.Rate())
	return subcommands.ExitSuccess
}
