package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/emarabot/plaza-os/internal/core/domain"
)

func TestDashboard_Overview(t *testing.T) {
	d := newDashboard("s1", domain.SeedTickets(), testDeps(&stubGateway{}))

	o := d.Overview()
	if o.Mood != 87 {
		t.Fatalf("expected starting mood 87, got %d", o.Mood)
	}
	if len(o.Tickets) != 3 || o.Tickets[0].ID != "T-101" {
		t.Fatalf("unexpected tickets %+v", o.Tickets)
	}
	if o.Diplomat.Input != "Pool closed, cleaning." || o.Diplomat.Output != "" {
		t.Fatalf("unexpected diplomat %+v", o.Diplomat)
	}
}

func TestDashboard_Polish(t *testing.T) {
	cases := []struct {
		name  string
		reply string
		err   error
		want  string
	}{
		{"polished", "Dear residents, the pool is closed for cleaning.", nil, "Dear residents, the pool is closed for cleaning."},
		{"transport failure", "", fmt.Errorf("polish: %w: eof", domain.ErrTransport), "Gym broken"},
		{"empty answer", "", nil, "Gym broken"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gw := &stubGateway{polishFn: func(context.Context, string) (string, error) { return tc.reply, tc.err }}
			d := newDashboard("s1", nil, testDeps(gw))

			got, err := d.Polish(context.Background(), "Gym broken")
			if err != nil {
				t.Fatalf("Polish: %v", err)
			}
			if got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
			o := d.Overview().Diplomat
			if o.Input != "Gym broken" || o.Output != tc.want {
				t.Fatalf("unexpected diplomat state %+v", o)
			}
		})
	}
}

func TestDashboard_PolishErrors(t *testing.T) {
	gw := &stubGateway{polishFn: func(context.Context, string) (string, error) { return "", domain.ErrConfiguration }}
	d := newDashboard("s1", nil, testDeps(gw))

	if _, err := d.Polish(context.Background(), ""); !errors.Is(err, domain.ErrEmptyMessage) {
		t.Fatalf("expected ErrEmptyMessage, got %v", err)
	}
	if _, err := d.Polish(context.Background(), "Gym broken"); !errors.Is(err, domain.ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration, got %v", err)
	}
}

func TestMood_StaysInBounds(t *testing.T) {
	m := NewMood(rand.NewPCG(3, 4))
	if m.Value() != 87 {
		t.Fatalf("expected 87, got %d", m.Value())
	}
	prev := m.Value()
	for range 5000 {
		v := m.Step()
		if v < 80 || v > 95 {
			t.Fatalf("mood %d out of [80, 95]", v)
		}
		if d := v - prev; d > 1 || d < -1 {
			t.Fatalf("mood moved by %d", d)
		}
		prev = v
	}
}

func TestMood_RunStopsWithContext(t *testing.T) {
	m := NewMood(rand.NewPCG(1, 1))
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		m.Run(ctx, time.Millisecond)
		close(done)
	}()
	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}

func TestParkingGuide_View(t *testing.T) {
	g := NewParkingGuide(domain.SeedSpots(), "105")

	resident := g.View(domain.RoleResident)
	if resident.Visitor || resident.Guiding || resident.AssignedSpot != "" || resident.Directions != "" {
		t.Fatalf("resident should see the plain map, got %+v", resident)
	}
	if resident.Level != "L1" || len(resident.Spots) != 8 {
		t.Fatalf("unexpected layout %+v", resident)
	}

	guest := g.View(domain.RoleGuest)
	if !guest.Visitor || !guest.Guiding || guest.AssignedSpot != "105" {
		t.Fatalf("guest should be guided to 105, got %+v", guest)
	}
	if guest.Directions == "" {
		t.Fatal("expected directions for guests")
	}
}
