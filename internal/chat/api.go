package chat

import (
	"context"

	"github.com/emonshikder007/chat-app/internal/group"
	"github.com/emonshikder007/chat-app/internal/message"
	"github.com/emonshikder007/chat-app/internal/user"
	"github.com/google/uuid"
)

// API is the REST surface the store consumes. Implemented over net/http by
// Client; tests swap in a fake.
type API interface {
	PrivateHistory(ctx context.Context, peerID uuid.UUID) ([]message.MessageDTO, error)
	GroupHistory(ctx context.Context, groupID uuid.UUID) ([]message.MessageDTO, error)
	SendPrivate(ctx context.Context, peerID uuid.UUID, cmd message.SendCommand) (*message.MessageDTO, error)
	SendGroup(ctx context.Context, groupID uuid.UUID, cmd message.SendCommand) (*message.MessageDTO, error)

	ListUsers(ctx context.Context) ([]user.UserDTO, error)
	ListGroups(ctx context.Context) ([]group.GroupDTO, error)
	CreateGroup(ctx context.Context, name string, members []uuid.UUID) (*group.GroupDTO, error)
	AddMember(ctx context.Context, groupID, userID uuid.UUID) (*group.GroupDTO, error)
	KickMember(ctx context.Context, groupID, memberID uuid.UUID) (*group.GroupDTO, error)
	DeleteGroup(ctx context.Context, groupID uuid.UUID) error
}

// Socket is the live-event channel. At most one handler per event name:
// On replaces, Off removes, and removing an absent handler is fine.
type Socket interface {
	On(event string, h func(message.MessageDTO))
	Off(event string)
}
