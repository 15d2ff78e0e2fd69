package main

import (
	"fmt"

	"github.com/fwojciec/krpcdocs"
)

// Run executes the reindex command.
func (c *ReindexCmd) Run(deps *Dependencies) error {
	res, err := deps.Service.Reindex(deps.Ctx, c.Force)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", krpcdocs.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, res.Message)
	return nil
}
