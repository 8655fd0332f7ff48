// Command lola keeps the books of a small resale business: sales
// registered in a ledger, payments collected over time, weekly totals.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/joho/godotenv"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"

	ventas "github.com/ArmandoRuiz13/RegistroMom"
	"github.com/ArmandoRuiz13/RegistroMom/cmd"
)

// sellerRoster returns the configured sellers for completion.
// Completion runs before flag parsing, so only the default settings
// path is read; a broken file falls back to the built-in roster.
func sellerRoster() []string {
	s, err := ventas.LoadSettings("lola.yaml")
	if err != nil {
		return ventas.DefaultSellers
	}
	return s.Sellers
}

// completion describes the CLI for shell completion. It exits the
// process when invoked by the shell.
func completion(name string) {
	sellers := predict.Set(sellerRoster())
	weekFlags := map[string]complete.Predictor{
		"week":    predict.Nothing,
		"current": predict.Nothing,
	}
	c := &complete.Command{
		Sub: map[string]*complete.Command{
			"add": {Flags: map[string]complete.Predictor{
				"product": predict.Nothing, "seller": sellers, "buyer": predict.Nothing,
				"store": predict.Nothing, "cost": predict.Nothing, "price": predict.Nothing,
				"received": predict.Nothing,
			}},
			"list": {Flags: map[string]complete.Predictor{
				"week": predict.Nothing, "current": predict.Nothing,
				"seller": sellers, "ids": predict.Nothing,
			}},
			"pay":       {Flags: map[string]complete.Predictor{"id": predict.Nothing, "received": predict.Nothing, "status": predict.Set{"debe", "abonado", "pagado"}}},
			"reconcile": {},
			"delete":    {Flags: map[string]complete.Predictor{"id": predict.Nothing, "yes": predict.Nothing}},
			"summary":   {Flags: weekFlags},
			"weeks":     {},
			"rate":      {},
			"export":    {Flags: map[string]complete.Predictor{"o": predict.Files("*.csv")}},
			"import":    {Flags: map[string]complete.Predictor{"i": predict.Files("*.csv")}},
			"topic":     {Args: predict.Set{"ledger", "pricing", "payments", "weeks", "stores", "importing", "*"}},
			"assist":    {},
		},
		Flags: map[string]complete.Predictor{
			"config":      predict.Files("*.yaml"),
			"ledger-file": predict.Files("*.jsonl"),
		},
	}
	c.Complete(name)
}

func main() {
	// a .env in the working directory may hold the Gemini API key.
	godotenv.Load()

	name := path.Base(os.Args[0])
	completion(name)

	commander := subcommands.NewCommander(flag.CommandLine, name)
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
