package cmd

import (
	"context"
	"flag"

	"github.com/etnz/happyhood/docs"
	"github.com/google/subcommands"
)

type topicCmd struct{}

func (*topicCmd) Name() string     { return "topic" }
func (*topicCmd) Synopsis() string { return "show documentation" }
func (*topicCmd) Usage() string {
	return `happyhood topic [<topic>...]

  Shows the documentation of topics, or the list of topics.
`
}

func (*topicCmd) SetFlags(*flag.FlagSet) {}

func (*topicCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	topics := f.Args()
	if len(topics) == 0 {
		topics = []string{docs.Index}
	}
	doc, err := docs.Topics(topics...)
	if err != nil {
		return fail(subcommands.ExitFailure, "%v", err)
	}
	printMarkdown(doc)
	return subcommands.ExitSuccess
}
