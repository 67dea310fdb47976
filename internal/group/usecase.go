package group

import (
	"context"

	"github.com/google/uuid"
)

type GroupUsecase interface {
	// Create makes actor the admin and always puts them in the member set.
	Create(ctx context.Context, actor uuid.UUID, cmd CreateGroupCommand) (*GroupDTO, error)

	// Admin-only. Adding a present member is a no-op, not an error.
	AddMember(ctx context.Context, actor, groupID, userID uuid.UUID) (*GroupDTO, error)

	// Admin-only. Removing an absent member is a no-op, not an error.
	RemoveMember(ctx context.Context, actor, groupID, memberID uuid.UUID) (*GroupDTO, error)

	// Admin-only. Deletes the group and all of its messages.
	Delete(ctx context.Context, actor, groupID uuid.UUID) error

	// Groups whose member set contains actor.
	ListForUser(ctx context.Context, actor uuid.UUID) ([]*GroupDTO, error)

	IsMember(ctx context.Context, groupID, userID uuid.UUID) (bool, error)
}
