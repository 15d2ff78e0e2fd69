package main

import (
	"fmt"

	"github.com/fwojciec/krpcdocs"
)

// Run executes the page command.
func (c *PageCmd) Run(deps *Dependencies) error {
	page, err := deps.Service.Page(deps.Ctx, c.SlugOrURL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", krpcdocs.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "%s\n%s\nindexed %s\n\n", page.Title, page.URL, page.IndexedAt.Format("2006-01-02 15:04 MST"))
	fmt.Fprintln(deps.Stdout, page.Content)

	return nil
}
