package message

import (
	"context"

	"github.com/google/uuid"
)

type MessageUsecase interface {
	// History between the authenticated caller and peer. The pairing key is
	// the (caller, peer) pair; the caller id never comes from the request body.
	PrivateHistory(ctx context.Context, caller, peer uuid.UUID) ([]*MessageDTO, error)

	// SendPrivate persists the message and pushes a newMessage event.
	// Returns the stored message, the authoritative echo the client appends.
	SendPrivate(ctx context.Context, caller, peer uuid.UUID, cmd SendCommand) (*MessageDTO, error)

	// Group history/send require membership.
	GroupHistory(ctx context.Context, caller, groupID uuid.UUID) ([]*MessageDTO, error)
	SendGroup(ctx context.Context, caller, groupID uuid.UUID, cmd SendCommand) (*MessageDTO, error)
}
