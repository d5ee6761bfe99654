package cli

import "fmt"

type CategoryCmd struct {
	List   CategoryListCmd   `cmd:"" help:"List habit categories." default:"1"`
	Add    CategoryAddCmd    `cmd:"" help:"Add a category."`
	Remove CategoryRemoveCmd `cmd:"" help:"Remove a category."`
	Rename CategoryRenameCmd `cmd:"" help:"Rename a category."`
}

type CategoryListCmd struct{}

func (c *CategoryListCmd) Run(ctx *Context) error {
	for _, cat := range ctx.DB.Categories() {
		count := 0
		for _, h := range ctx.DB.Habits() {
			if h.Category == cat {
				count++
			}
		}
		fmt.Printf("%-15s (%d habits)\n", cat, count)
	}
	return nil
}

type CategoryAddCmd struct {
	Name string `arg:"" help:"Category name."`
}

func (c *CategoryAddCmd) Run(ctx *Context) error {
	categories := ctx.DB.Categories()
	for _, cat := range categories {
		if cat == c.Name {
			return fmt.Errorf("category %q already exists", c.Name)
		}
	}

	if err := ctx.DB.SaveCategories(append(categories, c.Name)); err != nil {
		return err
	}
	fmt.Printf("Added category: %s\n", c.Name)
	return nil
}

type CategoryRemoveCmd struct {
	Name string `arg:"" help:"Category name to remove."`
}

func (c *CategoryRemoveCmd) Run(ctx *Context) error {
	for _, h := range ctx.DB.Habits() {
		if h.Category == c.Name {
			return fmt.Errorf("category %q is still used by habit %q", c.Name, h.Name)
		}
	}

	categories := ctx.DB.Categories()
	kept := categories[:0]
	found := false
	for _, cat := range categories {
		if cat == c.Name {
			found = true
			continue
		}
		kept = append(kept, cat)
	}
	if !found {
		return fmt.Errorf("category %q not found", c.Name)
	}

	if err := ctx.DB.SaveCategories(kept); err != nil {
		return err
	}
	fmt.Printf("Removed category: %s\n", c.Name)
	return nil
}

type CategoryRenameCmd struct {
	From string `arg:"" help:"Current category name."`
	To   string `arg:"" help:"New category name."`
}

func (c *CategoryRenameCmd) Run(ctx *Context) error {
	categories := ctx.DB.Categories()
	found := false
	for i, cat := range categories {
		if cat == c.From {
			categories[i] = c.To
			found = true
		}
	}
	if !found {
		return fmt.Errorf("category %q not found", c.From)
	}

	if err := ctx.DB.SaveCategories(categories); err != nil {
		return err
	}

	// Re-point habits at the renamed category.
	for _, h := range ctx.DB.Habits() {
		if h.Category == c.From {
			h.Category = c.To
			if err := ctx.DB.SaveHabit(h); err != nil {
				return err
			}
		}
	}

	fmt.Printf("Renamed category %q to %q\n", c.From, c.To)
	return nil
}
