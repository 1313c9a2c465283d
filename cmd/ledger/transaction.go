package main

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/fekuna/omnipos-ledger/internal/ledger"
	"github.com/fekuna/omnipos-ledger/internal/model"
	txDTO "github.com/fekuna/omnipos-ledger/internal/transaction/dto"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

// transactionCmd records a purchase or a sale depending on kind.
type transactionCmd struct {
	app  *app
	kind string

	productID int64
	quantity  string
	price     string
	note      string
}

func (c *transactionCmd) Name() string {
	if c.kind == "sale" {
		return "sell"
	}
	return "purchase"
}

func (c *transactionCmd) Synopsis() string {
	if c.kind == "sale" {
		return "record a sale and take units out of stock"
	}
	return "record a purchase and add units to stock"
}

func (c *transactionCmd) Usage() string {
	if c.kind == "sale" {
		return `ledger sell -product <id> -qty <units> -price <unit price> [-customer <name>]
`
	}
	return `ledger purchase -product <id> -qty <units> -price <unit price> [-supplier <name>]
`
}

func (c *transactionCmd) SetFlags(f *flag.FlagSet) {
	f.Int64Var(&c.productID, "product", 0, "Product id.")
	f.StringVar(&c.quantity, "qty", "", "Units, greater than zero.")
	f.StringVar(&c.price, "price", "", "Unit price.")
	if c.kind == "sale" {
		f.StringVar(&c.note, "customer", "", "Customer name.")
	} else {
		f.StringVar(&c.note, "supplier", "", "Supplier name.")
	}
}

func (c *transactionCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.app.run(ctx, func(ctx context.Context, e *ledger.Engine) error {
		rec, err := e.RecordTransaction(ctx, &txDTO.RecordTransactionInput{
			Kind:      c.kind,
			ProductID: c.productID,
			Quantity:  c.quantity,
			UnitPrice: c.price,
			Note:      c.note,
		})
		if err != nil {
			return err
		}
		return c.app.print(rec, func() string {
			return fmt.Sprintf("Recorded %s %d: %d x %s = %s. Stock is now %d.\n",
				rec.Kind, rec.ID, rec.Quantity, c.app.money(rec.UnitPrice),
				c.app.money(rec.UnitPrice.Mul(decimal.NewFromInt(rec.Quantity))), rec.StockAfter)
		})
	})
}

type purchasesCmd struct {
	app *app
}

func (*purchasesCmd) Name() string     { return "purchases" }
func (*purchasesCmd) Synopsis() string { return "list purchases, newest first" }
func (*purchasesCmd) Usage() string {
	return `ledger purchases
`
}
func (*purchasesCmd) SetFlags(*flag.FlagSet) {}

func (c *purchasesCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.app.run(ctx, func(ctx context.Context, e *ledger.Engine) error {
		entries, err := e.ListPurchases(ctx)
		if err != nil {
			return err
		}
		return c.app.print(entries, func() string { return c.app.purchasesMarkdown(entries) })
	})
}

type salesCmd struct {
	app *app
}

func (*salesCmd) Name() string     { return "sales" }
func (*salesCmd) Synopsis() string { return "list sales, newest first" }
func (*salesCmd) Usage() string {
	return `ledger sales
`
}
func (*salesCmd) SetFlags(*flag.FlagSet) {}

func (c *salesCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.app.run(ctx, func(ctx context.Context, e *ledger.Engine) error {
		entries, err := e.ListSales(ctx)
		if err != nil {
			return err
		}
		return c.app.print(entries, func() string { return c.app.salesMarkdown(entries) })
	})
}

func (a *app) purchasesMarkdown(entries []model.PurchaseEntry) string {
	if len(entries) == 0 {
		return "No purchases.\n"
	}
	var b strings.Builder
	b.WriteString("| ID | Date | Product | Qty | Unit price | Amount | Supplier |\n")
	b.WriteString("|---:|---|---|---:|---:|---:|---|\n")
	for _, p := range entries {
		fmt.Fprintf(&b, "| %d | %s | %s | %d | %s | %s | %s |\n",
			p.ID, p.Timestamp, cell(p.ProductCode+" "+p.ProductName), p.Quantity,
			a.money(p.UnitPrice), a.money(p.Amount()), cell(p.Supplier))
	}
	return b.String()
}

func (a *app) salesMarkdown(entries []model.SaleEntry) string {
	if len(entries) == 0 {
		return "No sales.\n"
	}
	var b strings.Builder
	b.WriteString("| ID | Date | Product | Qty | Unit price | Amount | Customer |\n")
	b.WriteString("|---:|---|---|---:|---:|---:|---|\n")
	for _, s := range entries {
		fmt.Fprintf(&b, "| %d | %s | %s | %d | %s | %s | %s |\n",
			s.ID, s.Timestamp, cell(s.ProductCode+" "+s.ProductName), s.Quantity,
			a.money(s.UnitPrice), a.money(s.Amount()), cell(s.Customer))
	}
	return b.String()
}
