package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/happyhood"
	"github.com/etnz/happyhood/date"
	"github.com/etnz/happyhood/renderer"
	"github.com/google/subcommands"
)

// valuationCmd implements the "valuation" command.
type valuationCmd struct {
	hood   string
	date   string
	before bool
}

func (*valuationCmd) Name() string     { return "valuation" }
func (*valuationCmd) Synopsis() string { return "display the valuation of a hood" }
func (*valuationCmd) Usage() string {
	return `happyhood valuation -hood <name> [-d <date>] [-before]

  Displays the total valuation of a hood as of a day, that is the sum of the
  house valuations recorded on the most covered day up to that day.
`
}

func (c *valuationCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.hood, "hood", "", "Name of the hood")
	f.StringVar(&c.date, "d", "0d", "Day of the valuation")
	f.BoolVar(&c.before, "before", false, "Only use valuations strictly before the day")
}

func (c *valuationCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	if c.hood == "" {
		return fail(subcommands.ExitUsageError, "-hood is required")
	}
	on, err := date.Parse(c.date)
	if err != nil {
		return fail(subcommands.ExitUsageError, "%v", err)
	}
	s, err := OpenStore()
	if err != nil {
		return fail(subcommands.ExitFailure, "%v", err)
	}
	defer s.Close()

	hood, err := s.Hood(ctx, c.hood)
	if err != nil {
		return fail(subcommands.ExitFailure, "%v", err)
	}
	var snap happyhood.Snapshot
	if c.before {
		snap = hood.ValuationBefore(on)
	} else {
		snap = hood.ValuationOnOrBefore(on)
	}
	fmt.Fprintln(stdout, renderer.Snapshot(hood, snap))
	return subcommands.ExitSuccess
}
