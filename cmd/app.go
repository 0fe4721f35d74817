// Package cmd implements the CLI application to track hood valuations.
package cmd

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/etnz/happyhood"
	"github.com/etnz/happyhood/notify"
	"github.com/etnz/happyhood/renderer"
	"github.com/etnz/happyhood/store"
	"github.com/etnz/happyhood/zillow"
	"github.com/google/subcommands"
)

// Environment variables used when the matching global flag is not set.
const (
	EnvDB           = "HAPPYHOOD_DB"
	EnvCurrency     = "HAPPYHOOD_CURRENCY"
	EnvChannel      = "HAPPYHOOD_CHANNEL"
	EnvZillowAPIKey = "ZILLOW_API_KEY"
	EnvZillowURL    = "ZILLOW_URL"
	EnvSlackToken   = "SLACK_TOKEN"
)

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	dbFlag         = flag.String("db", "", "Database: a sqlite file or a postgres DSN. Defaults to $"+EnvDB+" or happyhood.db")
	currencyFlag   = flag.String("currency", "", "Currency of valuations. Defaults to $"+EnvCurrency+" or USD")
	channelFlag    = flag.String("channel", "", "Channel receiving daily and monthly reports. Defaults to $"+EnvChannel+" or "+notify.DefaultChannel)
	zillowKeyFlag  = flag.String("zillow-api-key", "", "Zillow Web Services ID. This flag takes precedence over the "+EnvZillowAPIKey+" environment variable")
	zillowURLFlag  = flag.String("zillow-url", "", "Zillow search endpoint. Defaults to $"+EnvZillowURL+" or "+zillow.DefaultURL)
	slackTokenFlag = flag.String("slack-token", "", "Slack bot token. Reports are printed to the terminal when there is none. This flag takes precedence over the "+EnvSlackToken+" environment variable")
	styleFlag      = flag.String("style", "", "glamour style used to print markdown (dark, light, notty). Detected from the terminal when empty")
)

// stdout receives the output of commands.
var stdout io.Writer = os.Stdout

// cacheDir holds the zillow answers of the day.
var cacheDir = os.TempDir()

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(c.HelpCommand(), "")
	c.Register(c.FlagsCommand(), "")
	c.Register(c.CommandsCommand(), "")
	c.Register(&topicCmd{}, "")

	c.Register(&dailyCmd{}, "reports")
	c.Register(&monthlyCmd{}, "reports")
	c.Register(&diffCmd{}, "reports")
	c.Register(&valuationCmd{}, "reports")

	c.Register(&addHoodCmd{}, "records")
	c.Register(&addHouseCmd{}, "records")
	c.Register(&valuateCmd{}, "records")
	c.Register(&housesCmd{}, "records")

	c.Register(&fillIDsCmd{}, "zillow")

	c.Register(&serveCmd{}, "server")
}

// setting returns the flag value, or the environment variable, or the default value.
func setting(flagValue, env, def string) string {
	if flagValue != "" {
		return flagValue
	}
	if v := os.Getenv(env); v != "" {
		return v
	}
	return def
}

func dsn() string      { return setting(*dbFlag, EnvDB, "happyhood.db") }
func currency() string { return setting(*currencyFlag, EnvCurrency, "USD") }
func channel() string  { return setting(*channelFlag, EnvChannel, notify.DefaultChannel) }

// OpenStore is the central function to open the record store.
func OpenStore() (*store.Store, error) {
	return store.Open(dsn())
}

// resolver returns the zillow client configured by the global flags.
func resolver() (happyhood.Resolver, error) {
	key := setting(*zillowKeyFlag, EnvZillowAPIKey, "")
	if key == "" {
		return nil, fmt.Errorf("zillow API key is not set. Use -zillow-api-key flag or %s environment variable", EnvZillowAPIKey)
	}
	client := zillow.NewClient(setting(*zillowURLFlag, EnvZillowURL, ""), key)
	client.HTTP = zillow.DailyCachingClient(cacheDir)
	return client, nil
}

// sink returns slack when a token is configured, the terminal otherwise.
func sink() notify.Sink {
	if token := setting(*slackTokenFlag, EnvSlackToken, ""); token != "" {
		return notify.NewSlack(token)
	}
	return &notify.Terminal{W: stdout, Style: *styleFlag}
}

// printMarkdown renders md for the terminal, or prints it raw if it cannot be rendered.
func printMarkdown(md string) {
	out, err := renderer.Terminal(md, *styleFlag)
	if err != nil {
		fmt.Fprint(stdout, md)
		return
	}
	fmt.Fprint(stdout, out)
}

// fail prints err on stderr and returns the failure status.
func fail(status subcommands.ExitStatus, format string, args ...any) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	return status
}
