package model

import (
	"time"

	user "github.com/emonshikder007/chat-app/internal/user/model"
	"github.com/google/uuid"
)

// Message is either private (RecipientID set) or a group message (GroupID set),
// never both. Text and ImageURL may not both be empty; the usecase rejects that.
type Message struct {
	ID uuid.UUID `bun:",pk,type:uuid,default:gen_random_uuid()"`

	SenderID uuid.UUID  `bun:",notnull,type:uuid"`
	Sender   *user.User `bun:"rel:belongs-to,join:sender_id=id"`

	RecipientID *uuid.UUID `bun:",nullzero,type:uuid"`
	GroupID     *uuid.UUID `bun:",nullzero,type:uuid"`

	Text     string `bun:",nullzero"`
	ImageURL string `bun:",nullzero"`

	CreatedAt time.Time `bun:",nullzero,notnull,default:current_timestamp"`
}
