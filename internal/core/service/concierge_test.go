package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/emarabot/plaza-os/internal/core/domain"
)

func TestConcierge_Greeting(t *testing.T) {
	c := newConcierge("s1", "Yassin", testDeps(&stubGateway{}))

	msgs := c.Messages()
	if len(msgs) != 1 {
		t.Fatalf("expected a single greeting, got %d messages", len(msgs))
	}
	want := "Good evening, Yassin. The Plaza OS is online. How may I assist you tonight?"
	if msgs[0].Role != domain.AuthorModel || msgs[0].Text != want {
		t.Fatalf("unexpected greeting %+v", msgs[0])
	}
}

func TestConcierge_SendAppendsInOrder(t *testing.T) {
	var gotHistory []domain.ChatMessage
	gw := &stubGateway{conciergeFn: func(_ context.Context, message string, history []domain.ChatMessage) (string, error) {
		gotHistory = history
		return "The gym opens at 6.", nil
	}}
	c := newConcierge("s1", "Yassin", testDeps(gw))

	reply, err := c.Send(context.Background(), "When does the gym open?")
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if reply.Text != "The gym opens at 6." || reply.Role != domain.AuthorModel {
		t.Fatalf("unexpected reply %+v", reply)
	}
	if len(gotHistory) != 1 {
		t.Fatalf("expected prior history only (greeting), got %d", len(gotHistory))
	}

	msgs := c.Messages()
	if len(msgs) != 3 {
		t.Fatalf("expected greeting, question and answer, got %d", len(msgs))
	}
	if msgs[1].Role != domain.AuthorUser || msgs[1].Text != "When does the gym open?" {
		t.Fatalf("unexpected user message %+v", msgs[1])
	}
	if msgs[2].ID != reply.ID {
		t.Fatal("expected reply to be the last message")
	}
	if !msgs[2].Timestamp.Equal(fixedNow) {
		t.Fatalf("unexpected timestamp %v", msgs[2].Timestamp)
	}
}

func TestConcierge_Fallbacks(t *testing.T) {
	cases := []struct {
		name  string
		reply string
		err   error
		want  string
	}{
		{"transport", "", fmt.Errorf("concierge: %w: reset", domain.ErrTransport), conciergeUnavailable},
		{"empty", "", nil, conciergeNoAnswer},
		{"blank", "  \n", nil, conciergeNoAnswer},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gw := &stubGateway{conciergeFn: func(context.Context, string, []domain.ChatMessage) (string, error) {
				return tc.reply, tc.err
			}}
			c := newConcierge("s1", "Yassin", testDeps(gw))

			reply, err := c.Send(context.Background(), "Hello")
			if err != nil {
				t.Fatalf("expected fallback, got error %v", err)
			}
			if reply.Text != tc.want {
				t.Fatalf("reply = %q, want %q", reply.Text, tc.want)
			}
			if n := len(c.Messages()); n != 3 {
				t.Fatalf("expected 3 messages, got %d", n)
			}
		})
	}
}

func TestConcierge_ConfigurationErrorPropagates(t *testing.T) {
	gw := &stubGateway{conciergeFn: func(context.Context, string, []domain.ChatMessage) (string, error) {
		return "", domain.ErrConfiguration
	}}
	c := newConcierge("s1", "Yassin", testDeps(gw))

	if _, err := c.Send(context.Background(), "Hello"); !errors.Is(err, domain.ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration, got %v", err)
	}
}

func TestConcierge_RejectsBlankMessage(t *testing.T) {
	called := false
	gw := &stubGateway{conciergeFn: func(context.Context, string, []domain.ChatMessage) (string, error) {
		called = true
		return "", nil
	}}
	c := newConcierge("s1", "Yassin", testDeps(gw))

	if _, err := c.Send(context.Background(), "   "); !errors.Is(err, domain.ErrEmptyMessage) {
		t.Fatalf("expected ErrEmptyMessage, got %v", err)
	}
	if called || len(c.Messages()) != 1 {
		t.Fatal("blank message must not reach the gateway or the history")
	}
}

func TestConcierge_RefusesResubmissionWhileInFlight(t *testing.T) {
	entered := make(chan struct{})
	unblock := make(chan struct{})
	gw := &stubGateway{conciergeFn: func(context.Context, string, []domain.ChatMessage) (string, error) {
		close(entered)
		<-unblock
		return "Done.", nil
	}}
	c := newConcierge("s1", "Yassin", testDeps(gw))

	done := make(chan error, 1)
	go func() {
		_, err := c.Send(context.Background(), "First")
		done <- err
	}()
	<-entered

	if _, err := c.Send(context.Background(), "Second"); !errors.Is(err, domain.ErrRequestPending) {
		t.Fatalf("expected ErrRequestPending, got %v", err)
	}
	close(unblock)
	if err := <-done; err != nil {
		t.Fatalf("first send: %v", err)
	}

	msgs := c.Messages()
	if len(msgs) != 3 || msgs[1].Text != "First" || msgs[2].Text != "Done." {
		t.Fatalf("unexpected history %+v", msgs)
	}
}

func TestConcierge_GuardBackendFailureProceeds(t *testing.T) {
	deps := testDeps(&stubGateway{conciergeFn: func(context.Context, string, []domain.ChatMessage) (string, error) {
		return "Hi.", nil
	}})
	guard := newStubGuard()
	guard.err = errors.New("redis down")
	deps.guard = guard
	c := newConcierge("s1", "Yassin", deps)

	if _, err := c.Send(context.Background(), "Hello"); err != nil {
		t.Fatalf("expected send to proceed unguarded, got %v", err)
	}
}
