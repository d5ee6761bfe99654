package cli

import "fmt"

type InitCmd struct {
	Force bool `help:"Reinitialize even if storage already exists."`
}

func (c *InitCmd) Run(ctx *Context) error {
	if err := ctx.DB.Provider().Init(); err != nil {
		if !c.Force {
			return err
		}
		// Reinitialize in place: load whatever is there and wipe it.
		if err := ctx.DB.Provider().Load(); err != nil {
			return err
		}
		if err := ctx.DB.ClearAll(); err != nil {
			return err
		}
	}
	fmt.Printf("Initialized cripes storage at: %s\n", ctx.DB.Provider().GetConfigPath())
	return nil
}
