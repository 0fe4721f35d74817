// Package notify delivers valuation summaries to chat channels.
package notify

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/etnz/happyhood"
	"github.com/etnz/happyhood/date"
	"github.com/etnz/happyhood/renderer"
	"github.com/slack-go/slack"
)

const (
	DefaultChannel   = "#happy-hood"
	DefaultIconEmoji = ":house_buildings:"

	// Messages sent when there is nothing to report.
	NoDailyChanges       = "No changes for any Hood"
	NoMonthlyDifferences = "Could not calculate monthly difference"
)

// Sink receives a text message for a channel.
type Sink interface {
	Send(ctx context.Context, channel, text string) error
}

// DailyMessage summarizes the changes of hoods since yesterday.
func DailyMessage(hoods []*happyhood.Hood, today date.Date) string {
	return Message(hoods, date.Daily(today), NoDailyChanges)
}

// MonthlyMessage summarizes the changes of hoods over the last month.
func MonthlyMessage(hoods []*happyhood.Hood, today date.Date) string {
	return Message(hoods, date.Monthly(today), NoMonthlyDifferences)
}

// Message summarizes the changes of hoods over r, one line per hood, or returns fallback if none changed.
func Message(hoods []*happyhood.Hood, r date.Range, fallback string) string {
	lines := renderer.Differences(happyhood.Differences(hoods, r))
	if len(lines) == 0 {
		return fallback
	}
	return strings.Join(lines, "\n")
}

// Deliver sends text to channel. Failures are logged, not returned.
func Deliver(ctx context.Context, sink Sink, channel, text string) {
	if err := sink.Send(ctx, channel, text); err != nil {
		log.Printf("warning: cannot deliver message to %s: %v", channel, err)
	}
}

// Slack posts messages to Slack channels.
type Slack struct {
	client *slack.Client
	Icon   string // emoji used as the bot icon
}

// NewSlack returns a Slack sink authenticated with a bot token.
func NewSlack(token string, options ...slack.Option) *Slack {
	return &Slack{client: slack.New(token, options...), Icon: DefaultIconEmoji}
}

func (s *Slack) Send(ctx context.Context, channel, text string) error {
	_, _, err := s.client.PostMessageContext(ctx, channel,
		slack.MsgOptionText(text, false),
		slack.MsgOptionIconEmoji(s.Icon),
	)
	if err != nil {
		return fmt.Errorf("slack chat.postMessage: %w", err)
	}
	return nil
}

// Terminal prints messages as markdown to a writer.
type Terminal struct {
	W     io.Writer
	Style string // glamour style, auto detected when empty
}

func (t *Terminal) Send(_ context.Context, channel, text string) error {
	md := renderer.SummaryMarkdown(channel, strings.Split(text, "\n"))
	out, err := renderer.Terminal(md, t.Style)
	if err != nil {
		return err
	}
	_, err = io.WriteString(t.W, out)
	return err
}
