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

// diffCmd implements the "diff" command.
type diffCmd struct {
	start string
	end   string
	hood  string
}

func (*diffCmd) Name() string     { return "diff" }
func (*diffCmd) Synopsis() string { return "display hood valuation changes over a period" }
func (*diffCmd) Usage() string {
	return `happyhood diff [-start <date>] [-d <date>] [-hood <name>]

  Displays, for each hood, the valuation change between two days.
  Hoods that did not change, or that have no valuation on either day, are not displayed.
`
}

func (c *diffCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.start, "start", "-1m", "Start of the period")
	f.StringVar(&c.end, "d", "0d", "End of the period")
	f.StringVar(&c.hood, "hood", "", "Only display this hood")
}

func (c *diffCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	start, err := date.Parse(c.start)
	if err != nil {
		return fail(subcommands.ExitUsageError, "invalid -start: %v", err)
	}
	end, err := date.Parse(c.end)
	if err != nil {
		return fail(subcommands.ExitUsageError, "invalid -d: %v", err)
	}
	r := date.NewRange(start, end)

	s, err := OpenStore()
	if err != nil {
		return fail(subcommands.ExitFailure, "%v", err)
	}
	defer s.Close()

	var hoods []*happyhood.Hood
	if c.hood != "" {
		hood, err := s.Hood(ctx, c.hood)
		if err != nil {
			return fail(subcommands.ExitFailure, "%v", err)
		}
		hoods = append(hoods, hood)
	} else if hoods, err = s.Hoods(ctx); err != nil {
		return fail(subcommands.ExitFailure, "%v", err)
	}

	lines := renderer.Differences(happyhood.Differences(hoods, r))
	printMarkdown(renderer.SummaryMarkdown(fmt.Sprintf("Changes from %s to %s", r.From, r.To), lines))
	return subcommands.ExitSuccess
}
