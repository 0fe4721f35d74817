package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/happyhood"
	"github.com/etnz/happyhood/date"
	"github.com/etnz/happyhood/renderer"
	"github.com/google/subcommands"
	"github.com/google/uuid"
)

// addHoodCmd implements the "add-hood" command.
type addHoodCmd struct{}

func (*addHoodCmd) Name() string     { return "add-hood" }
func (*addHoodCmd) Synopsis() string { return "create a new hood" }
func (*addHoodCmd) Usage() string {
	return `happyhood add-hood <name>

  Creates a new empty hood. Hood names are unique.
`
}
func (*addHoodCmd) SetFlags(*flag.FlagSet) {}

func (*addHoodCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return fail(subcommands.ExitUsageError, "add-hood takes exactly one hood name")
	}
	s, err := OpenStore()
	if err != nil {
		return fail(subcommands.ExitFailure, "%v", err)
	}
	defer s.Close()

	hood, err := s.CreateHood(ctx, f.Arg(0))
	if err != nil {
		return fail(subcommands.ExitFailure, "%v", err)
	}
	fmt.Fprintln(stdout, hood.ID)
	return subcommands.ExitSuccess
}

// addressFlags binds the fields of an address to flags.
func addressFlags(f *flag.FlagSet, a *happyhood.Address) {
	f.StringVar(&a.StreetAddress, "street", "", "Street address, like '123 Main St'")
	f.StringVar(&a.City, "city", "", "City")
	f.StringVar(&a.State, "state", "", "State")
	f.StringVar(&a.ZipCode, "zip", "", "Zip code")
}

// addHouseCmd implements the "add-house" command.
type addHouseCmd struct {
	hood    string
	address happyhood.Address
	zpid    string
}

func (*addHouseCmd) Name() string     { return "add-house" }
func (*addHouseCmd) Synopsis() string { return "add a house to a hood" }
func (*addHouseCmd) Usage() string {
	return `happyhood add-house -hood <name> [-street <street>] [-city <city>] [-state <state>] [-zip <zip>] [-zpid <zpid>]

  Adds a house to a hood and prints its ID.
  Without -zpid, the zpid can be searched later with 'fill-ids'.
`
}

func (c *addHouseCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.hood, "hood", "", "Name of the hood")
	addressFlags(f, &c.address)
	f.StringVar(&c.zpid, "zpid", "", "Zillow ID of the house, if known")
}

func (c *addHouseCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	if c.hood == "" {
		return fail(subcommands.ExitUsageError, "-hood is required")
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
	house, err := s.AddHouse(ctx, hood, c.address)
	if err != nil {
		return fail(subcommands.ExitFailure, "%v", err)
	}
	if c.zpid != "" {
		house.SetExternalID(c.zpid)
		if err := s.SaveExternalID(ctx, house); err != nil {
			return fail(subcommands.ExitFailure, "%v", err)
		}
	}
	fmt.Fprintln(stdout, house.ID)
	return subcommands.ExitSuccess
}

// valuateCmd implements the "valuate" command.
type valuateCmd struct {
	house string
	date  string
	value string
}

func (*valuateCmd) Name() string     { return "valuate" }
func (*valuateCmd) Synopsis() string { return "record the valuation of a house" }
func (*valuateCmd) Usage() string {
	return `happyhood valuate -house <id> -v <amount> [-d <date>]

  Records the valuation of a house on a day. An existing valuation on that day is replaced.
`
}

func (c *valuateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.house, "house", "", "ID of the house")
	f.StringVar(&c.date, "d", "0d", "Day of the valuation")
	f.StringVar(&c.value, "v", "", "Valuation amount, in the -currency")
}

func (c *valuateCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	id, err := uuid.Parse(c.house)
	if err != nil {
		return fail(subcommands.ExitUsageError, "invalid house ID %q: %v", c.house, err)
	}
	on, err := date.Parse(c.date)
	if err != nil {
		return fail(subcommands.ExitUsageError, "%v", err)
	}
	amount, err := happyhood.ParseMoney(c.value, currency())
	if err != nil {
		return fail(subcommands.ExitUsageError, "%v", err)
	}

	s, err := OpenStore()
	if err != nil {
		return fail(subcommands.ExitFailure, "%v", err)
	}
	defer s.Close()

	house, err := s.House(ctx, id)
	if err != nil {
		return fail(subcommands.ExitFailure, "%v", err)
	}
	if err := s.SaveValuations(ctx, house.AddValuation(on, amount)); err != nil {
		return fail(subcommands.ExitFailure, "%v", err)
	}
	fmt.Fprintf(stdout, "%s valued %s on %s\n", house, amount, on)
	return subcommands.ExitSuccess
}

// housesCmd implements the "houses" command.
type housesCmd struct {
	filter happyhood.Address
}

func (*housesCmd) Name() string     { return "houses" }
func (*housesCmd) Synopsis() string { return "search houses by address" }
func (*housesCmd) Usage() string {
	return `happyhood houses [-street <street>] [-city <city>] [-state <state>] [-zip <zip>]

  Lists the houses matching every given address field, all houses when none is given.
`
}

func (c *housesCmd) SetFlags(f *flag.FlagSet) { addressFlags(f, &c.filter) }

func (c *housesCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	s, err := OpenStore()
	if err != nil {
		return fail(subcommands.ExitFailure, "%v", err)
	}
	defer s.Close()

	houses, err := s.FindHouses(ctx, c.filter)
	if err != nil {
		return fail(subcommands.ExitFailure, "%v", err)
	}
	lines := make([]string, 0, len(houses))
	for _, h := range houses {
		line := fmt.Sprintf("%s `%s`", h, h.ID)
		if zpid, ok := h.ExternalID(); ok {
			line += fmt.Sprintf(" zpid %s", zpid)
		}
		if on, v := h.LatestValuation(); !on.IsZero() {
			line += fmt.Sprintf(", valued %s on %s", v, on)
		}
		lines = append(lines, line)
	}
	printMarkdown(renderer.SummaryMarkdown("Houses", lines))
	return subcommands.ExitSuccess
}
