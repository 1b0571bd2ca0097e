package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/emarabot/plaza-os/internal/core/domain"
)

func newTestBoard(gw *stubGateway) *CommunityBoard {
	return newCommunityBoard("s1", "You (Unit 404)", domain.SeedPosts(), testDeps(gw))
}

func TestCommunityBoard_SeededPosts(t *testing.T) {
	posts := newTestBoard(&stubGateway{}).Posts()
	if len(posts) != 3 || posts[0].ID != "P-1" || posts[2].Type != domain.PostAnnouncement {
		t.Fatalf("unexpected seed %+v", posts)
	}
}

func TestCommunityBoard_PublishUsesDraft(t *testing.T) {
	gw := &stubGateway{draftFn: func(_ context.Context, item, details string) (string, error) {
		return "A rare " + item + ". " + details, nil
	}}
	b := newTestBoard(gw)

	draft, err := b.Draft(context.Background(), "Eames Chair", "Walnut")
	if err != nil {
		t.Fatalf("Draft: %v", err)
	}
	if draft != "A rare Eames Chair. Walnut" {
		t.Fatalf("unexpected draft %q", draft)
	}

	post, err := b.Publish("Eames Chair", "$900", "Walnut")
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if post.Title != "Selling: Eames Chair" || post.Content != draft || post.Author != "You (Unit 404)" {
		t.Fatalf("unexpected post %+v", post)
	}
	if post.Type != domain.PostSale || post.Likes != 0 || post.ID == "" {
		t.Fatalf("unexpected post metadata %+v", post)
	}

	posts := b.Posts()
	if len(posts) != 4 || posts[0].ID != post.ID {
		t.Fatal("expected new post on top")
	}

	second, _ := b.Publish("Lamp", "$20", "Brass")
	if second.Content != "Brass" {
		t.Fatalf("expected draft to be consumed, got content %q", second.Content)
	}
}

func TestCommunityBoard_DraftFallback(t *testing.T) {
	for name, fn := range map[string]func(context.Context, string, string) (string, error){
		"transport": func(context.Context, string, string) (string, error) {
			return "", fmt.Errorf("draft: %w: 503", domain.ErrTransport)
		},
		"empty": func(context.Context, string, string) (string, error) { return "", nil },
	} {
		t.Run(name, func(t *testing.T) {
			b := newTestBoard(&stubGateway{draftFn: fn})
			draft, err := b.Draft(context.Background(), "Sofa", "")
			if err != nil {
				t.Fatalf("expected fallback, got %v", err)
			}
			if draft != "Contact for details." {
				t.Fatalf("unexpected fallback %q", draft)
			}
		})
	}
}

func TestCommunityBoard_Validation(t *testing.T) {
	b := newTestBoard(&stubGateway{})

	if _, err := b.Draft(context.Background(), " ", "x"); !errors.Is(err, domain.ErrEmptyItem) {
		t.Fatalf("expected ErrEmptyItem from Draft, got %v", err)
	}
	if _, err := b.Publish("", "$1", "x"); !errors.Is(err, domain.ErrEmptyItem) {
		t.Fatalf("expected ErrEmptyItem from Publish, got %v", err)
	}
	if _, err := b.Like("P-404"); !errors.Is(err, domain.ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound, got %v", err)
	}
}

func TestCommunityBoard_Like(t *testing.T) {
	b := newTestBoard(&stubGateway{})
	post, err := b.Like("P-2")
	if err != nil {
		t.Fatalf("Like: %v", err)
	}
	if post.Likes != 46 {
		t.Fatalf("expected 46 likes, got %d", post.Likes)
	}
	if b.Posts()[1].Likes != 46 {
		t.Fatal("expected like to be stored")
	}
	if domain.SeedPosts()[1].Likes != 45 {
		t.Fatal("seed data must not be mutated")
	}
}
