package main

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/fekuna/omnipos-ledger/internal/form"
	"github.com/fekuna/omnipos-ledger/internal/ledger"
	"github.com/fekuna/omnipos-ledger/internal/model"
	"github.com/google/subcommands"
)

type summaryCmd struct {
	app *app
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "sales, purchases and profit per day" }
func (*summaryCmd) Usage() string {
	return `ledger summary
`
}
func (*summaryCmd) SetFlags(*flag.FlagSet) {}

func (c *summaryCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.app.run(ctx, func(ctx context.Context, e *ledger.Engine) error {
		days, err := e.DailySummary(ctx)
		if err != nil {
			return err
		}
		return c.app.print(days, func() string { return c.app.summaryMarkdown(days) })
	})
}

type totalsCmd struct {
	app *app
}

func (*totalsCmd) Name() string     { return "totals" }
func (*totalsCmd) Synopsis() string { return "all-time sales, purchases and profit" }
func (*totalsCmd) Usage() string {
	return `ledger totals
`
}
func (*totalsCmd) SetFlags(*flag.FlagSet) {}

func (c *totalsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.app.run(ctx, func(ctx context.Context, e *ledger.Engine) error {
		t, err := e.Totals(ctx)
		if err != nil {
			return err
		}
		return c.app.print(t, func() string { return c.app.totalsMarkdown(t) })
	})
}

type lowStockCmd struct {
	app       *app
	threshold int64
}

func (*lowStockCmd) Name() string     { return "low-stock" }
func (*lowStockCmd) Synopsis() string { return "products at or below a stock threshold" }
func (*lowStockCmd) Usage() string {
	return `ledger low-stock [-threshold <units>]
`
}

func (c *lowStockCmd) SetFlags(f *flag.FlagSet) {
	f.Int64Var(&c.threshold, "threshold", c.app.cfg.Ledger.LowStockThreshold, "Stock level to report at or below.")
}

func (c *lowStockCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.app.run(ctx, func(ctx context.Context, e *ledger.Engine) error {
		products, err := e.ListLowStock(ctx, c.threshold)
		if err != nil {
			return err
		}
		return c.app.print(products, func() string { return c.app.productsMarkdown(products) })
	})
}

type movementsCmd struct {
	app *app
}

func (*movementsCmd) Name() string     { return "movements" }
func (*movementsCmd) Synopsis() string { return "stock history of one product" }
func (*movementsCmd) Usage() string {
	return `ledger movements <product id>
`
}
func (*movementsCmd) SetFlags(*flag.FlagSet) {}

func (c *movementsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return c.app.usage("movements takes exactly one product id")
	}
	id, err := form.PositiveInt("id", f.Arg(0))
	if err != nil {
		return c.app.fail(err)
	}
	return c.app.run(ctx, func(ctx context.Context, e *ledger.Engine) error {
		movements, err := e.ListMovements(ctx, id)
		if err != nil {
			return err
		}
		return c.app.print(movements, func() string { return movementsMarkdown(movements) })
	})
}

func (a *app) summaryMarkdown(days []model.DailySummary) string {
	if len(days) == 0 {
		return "No transactions.\n"
	}
	var b strings.Builder
	b.WriteString("| Date | Sales | Purchases | Profit |\n|---|---:|---:|---:|\n")
	for _, d := range days {
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n",
			d.Date, a.money(d.TotalSales), a.money(d.TotalPurchases), a.money(d.Profit))
	}
	return b.String()
}

func (a *app) totalsMarkdown(t *model.Totals) string {
	var b strings.Builder
	b.WriteString("| Sales | Purchases | Profit |\n|---:|---:|---:|\n")
	fmt.Fprintf(&b, "| %s | %s | %s |\n",
		a.money(t.TotalSales), a.money(t.TotalPurchases), a.money(t.Profit))
	return b.String()
}

func movementsMarkdown(movements []model.StockMovement) string {
	if len(movements) == 0 {
		return "No stock movements.\n"
	}
	var b strings.Builder
	b.WriteString("| Date | Type | Change | Before | After | Notes |\n|---|---|---:|---:|---:|---|\n")
	for _, m := range movements {
		fmt.Fprintf(&b, "| %s | %s | %+d | %d | %d | %s |\n",
			m.CreatedAt, m.MovementType, m.QuantityChange, m.QuantityBefore, m.QuantityAfter, cell(m.Notes))
	}
	return b.String()
}
