package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/fekuna/omnipos-ledger/internal/ledger"
	"github.com/google/subcommands"
)

type initCmd struct {
	app *app
}

func (*initCmd) Name() string     { return "init" }
func (*initCmd) Synopsis() string { return "create the store file and its tables" }
func (*initCmd) Usage() string {
	return `ledger init

  Opens or creates the store file and makes sure every table exists. Safe to
  run on a populated store.
`
}
func (*initCmd) SetFlags(*flag.FlagSet) {}

func (c *initCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.app.run(ctx, func(ctx context.Context, e *ledger.Engine) error {
		if err := e.Initialize(ctx); err != nil {
			return err
		}
		fmt.Fprintf(c.app.out, "Store ready at %s\n", e.StorePath())
		return nil
	})
}

type resetCmd struct {
	app *app
	yes bool
}

func (*resetCmd) Name() string     { return "reset" }
func (*resetCmd) Synopsis() string { return "delete every row of every table" }
func (*resetCmd) Usage() string {
	return `ledger reset -yes

  Deletes all sales, purchases, products and categories. This cannot be
  undone, so -yes is required.
`
}

func (c *resetCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.yes, "yes", false, "Confirm that all data should be deleted.")
}

func (c *resetCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if !c.yes {
		return c.app.usage("reset deletes all data; pass -yes to confirm")
	}
	return c.app.run(ctx, func(ctx context.Context, e *ledger.Engine) error {
		if err := e.ResetAll(ctx); err != nil {
			return err
		}
		fmt.Fprintln(c.app.out, "All data deleted.")
		return nil
	})
}
