package main

import (
	"context"
	"flag"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/fekuna/omnipos-ledger/internal/form"
	"github.com/fekuna/omnipos-ledger/internal/ledger"
	"github.com/fekuna/omnipos-ledger/internal/model"
	prodDTO "github.com/fekuna/omnipos-ledger/internal/product/dto"
	"github.com/google/subcommands"
)

// minSearchLength keeps one-character queries from matching most of the
// inventory.
const minSearchLength = 2

// productFlags are the editable product fields. Values stay as text so the
// engine reports validation errors with field names.
type productFlags struct {
	code          string
	name          string
	category      string
	purchasePrice string
	salePrice     string
	stock         string
}

func (p *productFlags) register(f *flag.FlagSet) {
	f.StringVar(&p.code, "code", "", "Product code, unique.")
	f.StringVar(&p.name, "name", "", "Product name.")
	f.StringVar(&p.category, "category", "", "Category name.")
	f.StringVar(&p.purchasePrice, "purchase-price", "", "Default purchase price.")
	f.StringVar(&p.salePrice, "sale-price", "", "Default sale price.")
	f.StringVar(&p.stock, "stock", "", "Units on hand.")
}

type addProductCmd struct {
	app *app
	productFlags
}

func (*addProductCmd) Name() string     { return "add-product" }
func (*addProductCmd) Synopsis() string { return "register a new product" }
func (*addProductCmd) Usage() string {
	return `ledger add-product -code <code> -name <name> -category <category>
    -purchase-price <price> -sale-price <price> -stock <units>
`
}

func (c *addProductCmd) SetFlags(f *flag.FlagSet) {
	c.productFlags.register(f)
}

func (c *addProductCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.app.run(ctx, func(ctx context.Context, e *ledger.Engine) error {
		p, err := e.AddProduct(ctx, &prodDTO.AddProductInput{
			Code:          c.code,
			Name:          c.name,
			Category:      c.category,
			PurchasePrice: c.purchasePrice,
			SalePrice:     c.salePrice,
			Stock:         c.stock,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(c.app.out, "Product %d %q registered.\n", p.ID, p.Code)
		return nil
	})
}

type productsCmd struct {
	app *app
}

func (*productsCmd) Name() string     { return "products" }
func (*productsCmd) Synopsis() string { return "list the whole inventory" }
func (*productsCmd) Usage() string {
	return `ledger products
`
}
func (*productsCmd) SetFlags(*flag.FlagSet) {}

func (c *productsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.app.run(ctx, func(ctx context.Context, e *ledger.Engine) error {
		products, err := e.ListProducts(ctx)
		if err != nil {
			return err
		}
		return c.app.print(products, func() string { return c.app.productsMarkdown(products) })
	})
}

type productCmd struct {
	app *app
}

func (*productCmd) Name() string     { return "product" }
func (*productCmd) Synopsis() string { return "show one product" }
func (*productCmd) Usage() string {
	return `ledger product <id>
`
}
func (*productCmd) SetFlags(*flag.FlagSet) {}

func (c *productCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return c.app.usage("product takes exactly one id")
	}
	id, err := form.PositiveInt("id", f.Arg(0))
	if err != nil {
		return c.app.fail(err)
	}
	return c.app.run(ctx, func(ctx context.Context, e *ledger.Engine) error {
		p, err := e.GetProduct(ctx, id)
		if err != nil {
			return err
		}
		return c.app.print(p, func() string { return c.app.productsMarkdown([]model.Product{*p}) })
	})
}

type searchCmd struct {
	app *app
}

func (*searchCmd) Name() string     { return "search" }
func (*searchCmd) Synopsis() string { return "find products by code, name or id" }
func (*searchCmd) Usage() string {
	return `ledger search <query>

  Matches code or name as a case-sensitive substring, or the id exactly.
`
}
func (*searchCmd) SetFlags(*flag.FlagSet) {}

func (c *searchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	query := strings.Join(f.Args(), " ")
	if utf8.RuneCountInString(strings.TrimSpace(query)) < minSearchLength {
		return c.app.usage(fmt.Sprintf("search needs at least %d characters", minSearchLength))
	}
	return c.app.run(ctx, func(ctx context.Context, e *ledger.Engine) error {
		products, err := e.SearchProducts(ctx, query)
		if err != nil {
			return err
		}
		return c.app.print(products, func() string { return c.app.productsMarkdown(products) })
	})
}

type editProductCmd struct {
	app *app
	productFlags
}

func (*editProductCmd) Name() string     { return "edit-product" }
func (*editProductCmd) Synopsis() string { return "change fields of a product" }
func (*editProductCmd) Usage() string {
	return `ledger edit-product [flags] <id>

  Only the fields given as flags change; the rest keep their current value.
`
}

func (c *editProductCmd) SetFlags(f *flag.FlagSet) {
	c.productFlags.register(f)
}

func (c *editProductCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return c.app.usage("edit-product takes exactly one id")
	}
	id, err := form.PositiveInt("id", f.Arg(0))
	if err != nil {
		return c.app.fail(err)
	}
	set := map[string]bool{}
	f.Visit(func(fl *flag.Flag) { set[fl.Name] = true })

	return c.app.run(ctx, func(ctx context.Context, e *ledger.Engine) error {
		current, err := e.GetProduct(ctx, id)
		if err != nil {
			return err
		}
		input := editInputFrom(current)
		if set["code"] {
			input.Code = c.code
		}
		if set["name"] {
			input.Name = c.name
		}
		if set["category"] {
			input.Category = c.category
		}
		if set["purchase-price"] {
			input.PurchasePrice = c.purchasePrice
		}
		if set["sale-price"] {
			input.SalePrice = c.salePrice
		}
		if set["stock"] {
			input.Stock = c.stock
		}

		p, err := e.EditProduct(ctx, input)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.app.out, "Product %d %q updated.\n", p.ID, p.Code)
		return nil
	})
}

func editInputFrom(p *model.Product) *prodDTO.EditProductInput {
	return &prodDTO.EditProductInput{
		ID:            p.ID,
		Code:          p.Code,
		Name:          p.Name,
		Category:      p.Category,
		PurchasePrice: p.PurchasePrice,
		SalePrice:     p.SalePrice,
		Stock:         p.Stock,
	}
}

type deleteProductCmd struct {
	app *app
}

func (*deleteProductCmd) Name() string     { return "delete-product" }
func (*deleteProductCmd) Synopsis() string { return "delete a product with no transactions" }
func (*deleteProductCmd) Usage() string {
	return `ledger delete-product <id>
`
}
func (*deleteProductCmd) SetFlags(*flag.FlagSet) {}

func (c *deleteProductCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return c.app.usage("delete-product takes exactly one id")
	}
	id, err := form.PositiveInt("id", f.Arg(0))
	if err != nil {
		return c.app.fail(err)
	}
	return c.app.run(ctx, func(ctx context.Context, e *ledger.Engine) error {
		if err := e.DeleteProduct(ctx, id); err != nil {
			return err
		}
		fmt.Fprintf(c.app.out, "Product %d deleted.\n", id)
		return nil
	})
}

type adjustStockCmd struct {
	app   *app
	notes string
}

func (*adjustStockCmd) Name() string     { return "adjust-stock" }
func (*adjustStockCmd) Synopsis() string { return "set a product's stock after a count" }
func (*adjustStockCmd) Usage() string {
	return `ledger adjust-stock [-notes <text>] <id> <stock>
`
}

func (c *adjustStockCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.notes, "notes", "", "Reason for the adjustment.")
}

func (c *adjustStockCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		return c.app.usage("adjust-stock takes an id and the new stock")
	}
	id, err := form.PositiveInt("id", f.Arg(0))
	if err != nil {
		return c.app.fail(err)
	}
	return c.app.run(ctx, func(ctx context.Context, e *ledger.Engine) error {
		p, err := e.AdjustStock(ctx, id, f.Arg(1), c.notes)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.app.out, "Product %d %q now has %d in stock.\n", p.ID, p.Code, p.Stock)
		return nil
	})
}

func (a *app) productsMarkdown(products []model.Product) string {
	if len(products) == 0 {
		return "No products.\n"
	}
	var b strings.Builder
	b.WriteString("| ID | Code | Name | Category | Purchase price | Sale price | Stock |\n")
	b.WriteString("|---:|---|---|---|---:|---:|---:|\n")
	for _, p := range products {
		fmt.Fprintf(&b, "| %d | %s | %s | %s | %s | %s | %d |\n",
			p.ID, cell(p.Code), cell(p.Name), cell(p.Category),
			a.money(p.PurchasePrice), a.money(p.SalePrice), p.Stock)
	}
	return b.String()
}
