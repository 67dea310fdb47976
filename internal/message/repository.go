package message

import (
	"context"

	Message "github.com/emonshikder007/chat-app/internal/message/model"
	"github.com/google/uuid"
)

type MessageRepository interface {
	InsertMessage(ctx context.Context, msg *Message.Message) error

	// PrivateHistory returns the symmetric conversation between a and b,
	// both directions, in chronological order (created_at, id).
	PrivateHistory(ctx context.Context, a, b uuid.UUID) ([]*Message.Message, error)

	// GroupHistory returns a group's messages in chronological order.
	GroupHistory(ctx context.Context, groupID uuid.UUID) ([]*Message.Message, error)
}
