package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/charmbracelet/glamour"
	"github.com/fekuna/omnipos-ledger/config"
	"github.com/fekuna/omnipos-ledger/internal/apperror"
	"github.com/fekuna/omnipos-ledger/internal/ledger"
	"github.com/fekuna/omnipos-ledger/internal/logger"
	"github.com/google/subcommands"
	jsoniter "github.com/json-iterator/go"
	"github.com/shopspring/decimal"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// app holds what every command needs. A CLI run is short lived, so one
// instance is built in main and shared by the commands.
type app struct {
	cfg    *config.Config
	logger logger.ZapLogger
	out    io.Writer
	errOut io.Writer
	json   bool
	// plain skips terminal rendering of markdown tables.
	plain bool
}

func newApp(cfg *config.Config, log logger.ZapLogger, out io.Writer) *app {
	return &app{
		cfg:    cfg,
		logger: log,
		out:    out,
		errOut: os.Stderr,
	}
}

func register(c *subcommands.Commander, a *app) {
	c.Register(&initCmd{app: a}, "store")
	c.Register(&resetCmd{app: a}, "store")

	c.Register(&addCategoryCmd{app: a}, "categories")
	c.Register(&categoriesCmd{app: a}, "categories")
	c.Register(&renameCategoryCmd{app: a}, "categories")
	c.Register(&deleteCategoryCmd{app: a}, "categories")

	c.Register(&addProductCmd{app: a}, "products")
	c.Register(&productsCmd{app: a}, "products")
	c.Register(&productCmd{app: a}, "products")
	c.Register(&searchCmd{app: a}, "products")
	c.Register(&editProductCmd{app: a}, "products")
	c.Register(&deleteProductCmd{app: a}, "products")
	c.Register(&adjustStockCmd{app: a}, "products")

	c.Register(&transactionCmd{app: a, kind: "purchase"}, "transactions")
	c.Register(&transactionCmd{app: a, kind: "sale"}, "transactions")
	c.Register(&purchasesCmd{app: a}, "transactions")
	c.Register(&salesCmd{app: a}, "transactions")

	c.Register(&summaryCmd{app: a}, "reports")
	c.Register(&totalsCmd{app: a}, "reports")
	c.Register(&lowStockCmd{app: a}, "reports")
	c.Register(&movementsCmd{app: a}, "reports")
}

// run opens the engine, calls fn and closes the engine again.
func (a *app) run(ctx context.Context, fn func(ctx context.Context, e *ledger.Engine) error) subcommands.ExitStatus {
	e, err := ledger.Open(ctx, a.cfg, a.logger)
	if err != nil {
		return a.fail(err)
	}

	runErr := fn(ctx, e)
	return a.finish(runErr, e.Close())
}

// finish reports the command error first and a failed close after it.
func (a *app) finish(runErr, closeErr error) subcommands.ExitStatus {
	if err := multierr.Combine(runErr, closeErr); err != nil {
		return a.fail(err)
	}
	return subcommands.ExitSuccess
}

func (a *app) fail(err error) subcommands.ExitStatus {
	if apperror.IsFatal(err) {
		a.logger.Error("fatal store error", zap.Error(err))
	}
	fmt.Fprintf(a.errOut, "Error: %v\n", err)
	return subcommands.ExitFailure
}

func (a *app) usage(msg string) subcommands.ExitStatus {
	fmt.Fprintf(a.errOut, "Error: %s\n", msg)
	return subcommands.ExitUsageError
}

// print writes v as JSON with -json, otherwise the markdown built by md.
func (a *app) print(v interface{}, md func() string) error {
	if a.json {
		enc := jsoniter.ConfigCompatibleWithStandardLibrary.NewEncoder(a.out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	return a.printMarkdown(md())
}

func (a *app) printMarkdown(md string) error {
	if a.plain {
		_, err := io.WriteString(a.out, md)
		return err
	}
	out, err := glamour.Render(md, "auto")
	if err != nil {
		return err
	}
	_, err = io.WriteString(a.out, out)
	return err
}

func (a *app) money(d decimal.Decimal) string {
	return formatMoney(d, a.cfg.Ledger.Currency)
}

// formatMoney renders an amount in the currency's own notation, rounded to
// the currency's minor unit.
func formatMoney(d decimal.Decimal, currency string) string {
	cur := money.GetCurrency(currency)
	if cur == nil {
		return d.StringFixed(2) + " " + currency
	}
	minor := d.Shift(int32(cur.Fraction)).Round(0).IntPart()
	return money.New(minor, cur.Code).Display()
}

// cell escapes text for a markdown table cell.
func cell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
