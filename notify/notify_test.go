package notify

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/etnz/happyhood"
	"github.com/etnz/happyhood/date"
	"github.com/slack-go/slack"
)

func TestDailyMessage(t *testing.T) {
	today := date.New(2025, 10, 18)

	if got := DailyMessage(nil, today); got != NoDailyChanges {
		t.Errorf("DailyMessage(nil) = %q want %q", got, NoDailyChanges)
	}

	hood := happyhood.NewHood("Maple Grove")
	hood.AddHouse(happyhood.NewHouse(happyhood.Address{})).
		AddValuation(today.Add(-1), happyhood.M(100, "USD")).
		AddValuation(today, happyhood.M(110, "USD"))
	flat := happyhood.NewHood("Flat")
	flat.AddHouse(happyhood.NewHouse(happyhood.Address{})).
		AddValuation(today.Add(-1), happyhood.M(100, "USD")).
		AddValuation(today, happyhood.M(100, "USD"))

	got := DailyMessage([]*happyhood.Hood{hood, flat}, today)
	want := "Maple Grove went up $10.00 (+10.00%), from $100.00 on 2025-10-17 to $110.00 on 2025-10-18"
	if got != want {
		t.Errorf("DailyMessage() = %q want %q", got, want)
	}
}

func TestMonthlyMessage(t *testing.T) {
	today := date.New(2025, 10, 18)

	// Valuations only exist after the start of the month: nothing to compare.
	fresh := happyhood.NewHood("Fresh")
	fresh.AddHouse(happyhood.NewHouse(happyhood.Address{})).AddValuation(today.Add(-3), happyhood.M(100, "USD"))
	if got := MonthlyMessage([]*happyhood.Hood{fresh}, today); got != NoMonthlyDifferences {
		t.Errorf("MonthlyMessage() = %q want %q", got, NoMonthlyDifferences)
	}

	old := happyhood.NewHood("Old Town")
	old.AddHouse(happyhood.NewHouse(happyhood.Address{})).
		AddValuation(date.New(2025, 9, 1), happyhood.M(200, "USD")).
		AddValuation(today.Add(-3), happyhood.M(150, "USD"))
	got := MonthlyMessage([]*happyhood.Hood{fresh, old}, today)
	want := "Old Town went down $50.00 (-25.00%), from $200.00 on 2025-09-01 to $150.00 on 2025-10-15"
	if got != want {
		t.Errorf("MonthlyMessage() = %q want %q", got, want)
	}
}

type failingSink struct{ calls int }

func (f *failingSink) Send(context.Context, string, string) error {
	f.calls++
	return errors.New("network is down")
}

func TestDeliverIsFireAndForget(t *testing.T) {
	sink := new(failingSink)
	Deliver(context.Background(), sink, DefaultChannel, "hello")
	if sink.calls != 1 {
		t.Errorf("sink called %d times want 1", sink.calls)
	}
}

func TestSlack(t *testing.T) {
	var form map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "chat.postMessage") {
			http.NotFound(w, r)
			return
		}
		r.ParseForm()
		form = map[string]string{
			"channel":    r.FormValue("channel"),
			"text":       r.FormValue("text"),
			"icon_emoji": r.FormValue("icon_emoji"),
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"ok":true,"channel":"C123","ts":"1700000000.000100"}`)
	}))
	defer server.Close()

	sink := NewSlack("xoxb-test", slack.OptionAPIURL(server.URL+"/"))
	if err := sink.Send(context.Background(), DefaultChannel, NoDailyChanges); err != nil {
		t.Fatalf("Send() error: %v", err)
	}
	want := map[string]string{"channel": DefaultChannel, "text": NoDailyChanges, "icon_emoji": DefaultIconEmoji}
	for k, v := range want {
		if form[k] != v {
			t.Errorf("posted %s = %q want %q", k, form[k], v)
		}
	}
}

func TestSlackError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"ok":false,"error":"channel_not_found"}`)
	}))
	defer server.Close()

	sink := NewSlack("xoxb-test", slack.OptionAPIURL(server.URL+"/"))
	if err := sink.Send(context.Background(), "#nowhere", "hello"); err == nil {
		t.Errorf("Send() want an error")
	}
}

func TestTerminal(t *testing.T) {
	var buf bytes.Buffer
	sink := &Terminal{W: &buf, Style: "notty"}
	if err := sink.Send(context.Background(), "Daily", "Maple Grove went up\nOak Park went down"); err != nil {
		t.Fatalf("Send() error: %v", err)
	}
	for _, want := range []string{"Daily", "Maple Grove", "Oak Park"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("Send() printed %q want it to contain %q", buf.String(), want)
		}
	}
}
