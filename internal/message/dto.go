package message

import (
	"time"

	"github.com/google/uuid"
)

// Input command
type SendCommand struct {
	Text     string `json:"text,omitempty"`
	ImageURL string `json:"imageUrl,omitempty"`
}

// Output DTO doubles as the push-event payload, so field names are wire names.
type MessageDTO struct {
	ID          uuid.UUID  `json:"id"`
	SenderID    uuid.UUID  `json:"senderId"`
	RecipientID *uuid.UUID `json:"recipientId,omitempty"`
	GroupID     *uuid.UUID `json:"groupId,omitempty"`
	Text        string     `json:"text,omitempty"`
	ImageURL    string     `json:"imageUrl,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}
