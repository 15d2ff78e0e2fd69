package main

import (
	"fmt"

	"github.com/fwojciec/krpcdocs"
)

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	res, err := deps.Service.Search(deps.Ctx, c.Query, c.Limit)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", krpcdocs.ErrorMessage(err))
		return err
	}

	if len(res.Results) == 0 {
		fmt.Fprintf(deps.Stdout, "No results for %q.\n", c.Query)
		return nil
	}

	for _, hit := range res.Results {
		fmt.Fprintf(deps.Stdout, "%3d  %s  (%s)\n", hit.Score, hit.Title, hit.Slug)
		if hit.Snippet != "" {
			fmt.Fprintf(deps.Stdout, "     %s\n", hit.Snippet)
		}
	}

	return nil
}
