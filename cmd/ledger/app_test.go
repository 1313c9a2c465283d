package main

import (
	"bytes"
	"context"
	"flag"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fekuna/omnipos-ledger/config"
	"github.com/fekuna/omnipos-ledger/internal/apperror"
	"github.com/fekuna/omnipos-ledger/internal/logger"
	"github.com/fekuna/omnipos-ledger/internal/model"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		currency string
		want     string
	}{
		{"whole", "200", "USD", "$200.00"},
		{"negative", "-125", "USD", "-$125.00"},
		{"thousands", "1234.5", "USD", "$1,234.50"},
		{"unknown currency", "12.5", "ZZZ", "12.50 ZZZ"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := formatMoney(decimal.RequireFromString(tt.amount), tt.currency)
			if got != tt.want {
				t.Errorf("formatMoney(%s, %s) = %q, want %q", tt.amount, tt.currency, got, tt.want)
			}
		})
	}
}

func TestCategoriesMarkdown(t *testing.T) {
	if got := categoriesMarkdown(nil); got != "No categories.\n" {
		t.Errorf("empty = %q", got)
	}

	got := categoriesMarkdown([]model.Category{{ID: 1, Name: "Tools"}, {ID: 2, Name: "A|B"}})
	want := "| ID | Name |\n|---:|---|\n| 1 | Tools |\n| 2 | A\\|B |\n"
	if got != want {
		t.Errorf("categoriesMarkdown() = %q, want %q", got, want)
	}
}

func TestMovementsMarkdown_SignedChange(t *testing.T) {
	got := movementsMarkdown([]model.StockMovement{
		{MovementType: model.MovementSale, QuantityChange: -3, QuantityBefore: 10, QuantityAfter: 7},
		{MovementType: model.MovementPurchase, QuantityChange: 10, QuantityBefore: 0, QuantityAfter: 10},
	})
	if !strings.Contains(got, "| sale | -3 | 10 | 7 |") {
		t.Errorf("sale row missing in %q", got)
	}
	if !strings.Contains(got, "| purchase | +10 | 0 | 10 |") {
		t.Errorf("purchase row missing in %q", got)
	}
}

func TestFinish(t *testing.T) {
	runErr := apperror.InsufficientStock(3)
	closeErr := apperror.StoreIO(apperror.OpClose, io.ErrUnexpectedEOF)

	testCases := []struct {
		name      string
		runErr    error
		closeErr  error
		want      subcommands.ExitStatus
		wantOut   []string
		wantFatal bool
	}{
		{"success", nil, nil, subcommands.ExitSuccess, nil, false},
		{"command fails", runErr, nil, subcommands.ExitFailure, []string{"available: 3"}, false},
		{"close fails", nil, closeErr, subcommands.ExitFailure, []string{"unexpected EOF"}, true},
		{"both fail", runErr, closeErr, subcommands.ExitFailure, []string{"available: 3", "unexpected EOF"}, true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			core, logs := observer.New(zapcore.ErrorLevel)
			var out, errOut bytes.Buffer
			a := newApp(config.Default(), logger.Wrap(zap.New(core)), &out)
			a.errOut = &errOut

			if got := a.finish(tc.runErr, tc.closeErr); got != tc.want {
				t.Fatalf("finish() = %d, want %d", got, tc.want)
			}
			msg := errOut.String()
			last := -1
			for _, want := range tc.wantOut {
				i := strings.Index(msg, want)
				if i < 0 {
					t.Fatalf("stderr %q is missing %q", msg, want)
				}
				if i < last {
					t.Errorf("stderr %q reports %q out of order", msg, want)
				}
				last = i
			}
			if gotFatal := logs.FilterMessage("fatal store error").Len() == 1; gotFatal != tc.wantFatal {
				t.Errorf("fatal logged = %v, want %v", gotFatal, tc.wantFatal)
			}
		})
	}
}

type cliHarness struct {
	t   *testing.T
	cfg *config.Config
	out bytes.Buffer
	err bytes.Buffer
}

func newCLIHarness(t *testing.T) *cliHarness {
	t.Helper()
	cfg := config.Default()
	cfg.Store.Path = filepath.Join(t.TempDir(), "inventory.db")
	cfg.Store.RetryBackoffMS = 1
	return &cliHarness{t: t, cfg: cfg}
}

// exec runs one command line the way main does, with a fresh commander.
func (h *cliHarness) exec(json bool, args ...string) subcommands.ExitStatus {
	h.t.Helper()
	h.out.Reset()
	h.err.Reset()

	a := newApp(h.cfg, logger.NewNop(), &h.out)
	a.errOut = &h.err
	a.plain = true
	a.json = json

	fs := flag.NewFlagSet("ledger", flag.ContinueOnError)
	fs.SetOutput(&h.err)
	cdr := subcommands.NewCommander(fs, "ledger")
	register(cdr, a)
	if err := fs.Parse(args); err != nil {
		h.t.Fatalf("parse %v: %v", args, err)
	}
	return cdr.Execute(context.Background())
}

func (h *cliHarness) mustExec(args ...string) string {
	h.t.Helper()
	if status := h.exec(false, args...); status != subcommands.ExitSuccess {
		h.t.Fatalf("%v exited %d: %s", args, status, h.err.String())
	}
	return h.out.String()
}

func TestCLI_RoundTrip(t *testing.T) {
	h := newCLIHarness(t)

	h.mustExec("init")
	h.mustExec("add-category", "Electronics")
	h.mustExec("add-product", "-code", "P1", "-name", "Widget", "-category", "Electronics",
		"-purchase-price", "10.00", "-sale-price", "15.00", "-stock", "0")

	if out := h.mustExec("purchase", "-product", "1", "-qty", "20", "-price", "10.00", "-supplier", "Acme"); !strings.Contains(out, "Stock is now 20") {
		t.Errorf("purchase output = %q", out)
	}
	if out := h.mustExec("sell", "-product", "1", "-qty", "5", "-price", "15.00"); !strings.Contains(out, "Stock is now 15") {
		t.Errorf("sell output = %q", out)
	}

	if status := h.exec(false, "sell", "-product", "1", "-qty", "16", "-price", "15.00"); status != subcommands.ExitFailure {
		t.Errorf("overselling exited %d, want failure", status)
	}
	if !strings.Contains(h.err.String(), "available: 15") {
		t.Errorf("insufficient stock error should report available units, got %q", h.err.String())
	}

	out := h.mustExec("totals")
	for _, want := range []string{"$75.00", "$200.00", "-$125.00"} {
		if !strings.Contains(out, want) {
			t.Errorf("totals output missing %s: %q", want, out)
		}
	}

	out = h.mustExec("products")
	if !strings.Contains(out, "| 1 | P1 | Widget | Electronics | $10.00 | $15.00 | 15 |") {
		t.Errorf("products output = %q", out)
	}

	h.mustExec("edit-product", "-name", "Gadget", "1")
	out = h.mustExec("product", "1")
	if !strings.Contains(out, "| 1 | P1 | Gadget | Electronics | $10.00 | $15.00 | 15 |") {
		t.Errorf("edit should only change the name, got %q", out)
	}

	out = h.mustExec("sales")
	if !strings.Contains(out, "P1 Gadget") {
		t.Errorf("sales should show the current product name, got %q", out)
	}
}

func TestCLI_Errors(t *testing.T) {
	h := newCLIHarness(t)
	h.mustExec("add-category", "Tools")

	tests := []struct {
		name string
		args []string
		want subcommands.ExitStatus
	}{
		{"duplicate category", []string{"add-category", "Tools"}, subcommands.ExitFailure},
		{"missing name", []string{"add-category"}, subcommands.ExitUsageError},
		{"bad id", []string{"delete-category", "abc"}, subcommands.ExitFailure},
		{"unknown product", []string{"product", "42"}, subcommands.ExitFailure},
		{"short search", []string{"search", "a"}, subcommands.ExitUsageError},
		{"reset without confirmation", []string{"reset"}, subcommands.ExitUsageError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := h.exec(false, tt.args...); got != tt.want {
				t.Errorf("%v exited %d, want %d (stderr %q)", tt.args, got, tt.want, h.err.String())
			}
		})
	}
}

func TestCLI_JSONOutput(t *testing.T) {
	h := newCLIHarness(t)
	h.mustExec("add-category", "Tools")

	if status := h.exec(true, "categories"); status != subcommands.ExitSuccess {
		t.Fatalf("categories exited %d: %s", status, h.err.String())
	}
	if !strings.Contains(h.out.String(), `"name": "Tools"`) {
		t.Errorf("json output = %q", h.out.String())
	}
}

func TestCLI_ResetDeletesEverything(t *testing.T) {
	h := newCLIHarness(t)
	h.mustExec("add-category", "Tools")
	h.mustExec("reset", "-yes")

	if out := h.mustExec("categories"); out != "No categories.\n" {
		t.Errorf("categories after reset = %q", out)
	}
}
