package models

import (
	"time"

	"github.com/google/uuid"
)

// ChatMessage is one entry of a chat transcript. Messages are never edited.
type ChatMessage struct {
	ID        uuid.UUID `json:"id"`
	Text      string    `json:"text"`
	FromBot   bool      `json:"isBot"`
	Timestamp time.Time `json:"timestamp"`
}
