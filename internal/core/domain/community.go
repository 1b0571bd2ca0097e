package domain

// PostType classifies a bulletin board entry.
type PostType string

const (
	PostSale         PostType = "SALE"
	PostEvent        PostType = "EVENT"
	PostAnnouncement PostType = "ANNOUNCEMENT"
)

// CommunityPost is one bulletin board entry.
type CommunityPost struct {
	ID      string   `json:"id"`
	Author  string   `json:"author"`
	Title   string   `json:"title"`
	Price   string   `json:"price,omitempty"`
	Content string   `json:"content"`
	Type    PostType `json:"type"`
	Likes   int      `json:"likes"`
}

// SeedPosts returns the board's initial entries.
func SeedPosts() []CommunityPost {
	return []CommunityPost{
		{
			ID:      "P-1",
			Author:  "Unit 402",
			Title:   "Selling: Eames Lounge Replica",
			Price:   "$800",
			Content: "Beautiful walnut finish, barely used. Moving to Paris next month so everything must go.",
			Type:    PostSale,
			Likes:   12,
		},
		{
			ID:      "P-2",
			Author:  "Plaza Management",
			Title:   "Sunset Yoga on the Roof",
			Content: "Join us this Thursday at 7PM for a complimentary session with instructor Sarah.",
			Type:    PostEvent,
			Likes:   45,
		},
		{
			ID:      "P-3",
			Author:  "Unit 705",
			Title:   "Kids Playdate: Central Garden",
			Content: "Looking for other parents with toddlers for a Saturday morning meetup!",
			Type:    PostAnnouncement,
			Likes:   8,
		},
	}
}
