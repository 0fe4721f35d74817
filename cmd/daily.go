package cmd

import (
	"context"
	"flag"

	"github.com/etnz/happyhood"
	"github.com/etnz/happyhood/date"
	"github.com/etnz/happyhood/notify"
	"github.com/google/subcommands"
)

// reportCmd holds what daily and monthly reports share.
type reportCmd struct {
	date string
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "0d", "Day of the report")
}

// send computes the report message with message and delivers it to the configured channel.
func (c *reportCmd) send(ctx context.Context, message func([]*happyhood.Hood, date.Date) string) subcommands.ExitStatus {
	today, err := date.Parse(c.date)
	if err != nil {
		return fail(subcommands.ExitUsageError, "%v", err)
	}
	s, err := OpenStore()
	if err != nil {
		return fail(subcommands.ExitFailure, "%v", err)
	}
	defer s.Close()

	hoods, err := s.Hoods(ctx)
	if err != nil {
		return fail(subcommands.ExitFailure, "%v", err)
	}
	notify.Deliver(ctx, sink(), channel(), message(hoods, today))
	return subcommands.ExitSuccess
}

// dailyCmd implements the "daily" command.
type dailyCmd struct {
	reportCmd
}

func (*dailyCmd) Name() string     { return "daily" }
func (*dailyCmd) Synopsis() string { return "send the hood valuation changes since yesterday" }
func (*dailyCmd) Usage() string {
	return `happyhood daily [-d <date>]

  Sends one line per hood whose valuation changed since the day before.
  Sends "` + notify.NoDailyChanges + `" when nothing changed.
`
}

func (c *dailyCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	return c.send(ctx, notify.DailyMessage)
}

// monthlyCmd implements the "monthly" command.
type monthlyCmd struct {
	reportCmd
}

func (*monthlyCmd) Name() string     { return "monthly" }
func (*monthlyCmd) Synopsis() string { return "send the hood valuation changes over the last month" }
func (*monthlyCmd) Usage() string {
	return `happyhood monthly [-d <date>]

  Sends one line per hood whose valuation changed since the same day last month.
  Sends "` + notify.NoMonthlyDifferences + `" when nothing changed.
`
}

func (c *monthlyCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	return c.send(ctx, notify.MonthlyMessage)
}
