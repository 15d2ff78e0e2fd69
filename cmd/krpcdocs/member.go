package main

import (
	"fmt"

	"github.com/fwojciec/krpcdocs"
)

// Run executes the member command.
func (c *MemberCmd) Run(deps *Dependencies) error {
	res, err := deps.Service.Member(deps.Ctx, c.Service, c.Class, c.Member)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", krpcdocs.ErrorMessage(err))
		return err
	}

	best := res.BestMatch
	fmt.Fprintf(deps.Stdout, "%s\n%s\n", best.ID, best.URL)
	if best.Signature != "" {
		fmt.Fprintf(deps.Stdout, "signature: %s\n", best.Signature)
	}
	if best.Description != "" {
		fmt.Fprintf(deps.Stdout, "%s\n", best.Description)
	}

	if len(res.Alternatives) > 0 {
		fmt.Fprintln(deps.Stdout, "\nAlternatives:")
		for _, alt := range res.Alternatives {
			fmt.Fprintf(deps.Stdout, "  %s  %s\n", alt.ID, alt.URL)
		}
	}

	return nil
}
