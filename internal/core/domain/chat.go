package domain

import "time"

// ChatAuthor identifies who wrote a concierge message.
type ChatAuthor string

const (
	AuthorUser  ChatAuthor = "user"
	AuthorModel ChatAuthor = "model"
)

// ChatMessage is one entry of a concierge conversation.
type ChatMessage struct {
	ID        string     `json:"id"`
	Role      ChatAuthor `json:"role"`
	Text      string     `json:"text"`
	Timestamp time.Time  `json:"timestamp"`
}
