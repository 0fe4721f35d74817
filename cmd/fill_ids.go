package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/happyhood"
	"github.com/google/subcommands"
)

// fillIDsCmd implements the "fill-ids" command.
type fillIDsCmd struct {
	workers int
}

func (*fillIDsCmd) Name() string     { return "fill-ids" }
func (*fillIDsCmd) Synopsis() string { return "search the missing zpids on zillow" }
func (*fillIDsCmd) Usage() string {
	return `happyhood fill-ids [-workers n]

  Searches the zpid of every house that has none, and saves the ones found.
  Failed searches are logged and do not stop the batch.

  Requires the ZILLOW_API_KEY environment variable to be set or passed as a flag.
`
}

func (c *fillIDsCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.workers, "workers", 1, "Number of concurrent searches")
}

func (c *fillIDsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	res, err := resolver()
	if err != nil {
		return fail(subcommands.ExitUsageError, "%v", err)
	}
	s, err := OpenStore()
	if err != nil {
		return fail(subcommands.ExitFailure, "%v", err)
	}
	defer s.Close()

	houses, err := s.HousesMissingExternalID(ctx)
	if err != nil {
		return fail(subcommands.ExitFailure, "%v", err)
	}
	r := &happyhood.Reconciler{Resolver: res, Store: s, Workers: c.workers}
	fmt.Fprintln(stdout, r.FillMissing(ctx, houses))
	return subcommands.ExitSuccess
}
