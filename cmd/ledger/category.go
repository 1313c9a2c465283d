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

type addCategoryCmd struct {
	app *app
}

func (*addCategoryCmd) Name() string     { return "add-category" }
func (*addCategoryCmd) Synopsis() string { return "register a new category" }
func (*addCategoryCmd) Usage() string {
	return `ledger add-category <name>
`
}
func (*addCategoryCmd) SetFlags(*flag.FlagSet) {}

func (c *addCategoryCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return c.app.usage("add-category takes exactly one name")
	}
	return c.app.run(ctx, func(ctx context.Context, e *ledger.Engine) error {
		cat, err := e.AddCategory(ctx, f.Arg(0))
		if err != nil {
			return err
		}
		fmt.Fprintf(c.app.out, "Category %d %q registered.\n", cat.ID, cat.Name)
		return nil
	})
}

type categoriesCmd struct {
	app *app
}

func (*categoriesCmd) Name() string     { return "categories" }
func (*categoriesCmd) Synopsis() string { return "list all categories" }
func (*categoriesCmd) Usage() string {
	return `ledger categories
`
}
func (*categoriesCmd) SetFlags(*flag.FlagSet) {}

func (c *categoriesCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.app.run(ctx, func(ctx context.Context, e *ledger.Engine) error {
		cats, err := e.ListCategories(ctx)
		if err != nil {
			return err
		}
		return c.app.print(cats, func() string { return categoriesMarkdown(cats) })
	})
}

type renameCategoryCmd struct {
	app *app
}

func (*renameCategoryCmd) Name() string     { return "rename-category" }
func (*renameCategoryCmd) Synopsis() string { return "rename a category" }
func (*renameCategoryCmd) Usage() string {
	return `ledger rename-category <id> <new name>

  Products keep the category name they were saved with.
`
}
func (*renameCategoryCmd) SetFlags(*flag.FlagSet) {}

func (c *renameCategoryCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		return c.app.usage("rename-category takes an id and a new name")
	}
	id, err := form.PositiveInt("id", f.Arg(0))
	if err != nil {
		return c.app.fail(err)
	}
	return c.app.run(ctx, func(ctx context.Context, e *ledger.Engine) error {
		cat, err := e.RenameCategory(ctx, id, f.Arg(1))
		if err != nil {
			return err
		}
		fmt.Fprintf(c.app.out, "Category %d renamed to %q.\n", cat.ID, cat.Name)
		return nil
	})
}

type deleteCategoryCmd struct {
	app *app
}

func (*deleteCategoryCmd) Name() string     { return "delete-category" }
func (*deleteCategoryCmd) Synopsis() string { return "delete a category no product uses" }
func (*deleteCategoryCmd) Usage() string {
	return `ledger delete-category <id>
`
}
func (*deleteCategoryCmd) SetFlags(*flag.FlagSet) {}

func (c *deleteCategoryCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return c.app.usage("delete-category takes exactly one id")
	}
	id, err := form.PositiveInt("id", f.Arg(0))
	if err != nil {
		return c.app.fail(err)
	}
	return c.app.run(ctx, func(ctx context.Context, e *ledger.Engine) error {
		if err := e.DeleteCategory(ctx, id); err != nil {
			return err
		}
		fmt.Fprintf(c.app.out, "Category %d deleted.\n", id)
		return nil
	})
}

func categoriesMarkdown(cats []model.Category) string {
	if len(cats) == 0 {
		return "No categories.\n"
	}
	var b strings.Builder
	b.WriteString("| ID | Name |\n|---:|---|\n")
	for _, cat := range cats {
		fmt.Fprintf(&b, "| %d | %s |\n", cat.ID, cell(cat.Name))
	}
	return b.String()
}
