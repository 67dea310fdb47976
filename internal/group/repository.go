package group

import (
	"context"

	Group "github.com/emonshikder007/chat-app/internal/group/model"
	"github.com/google/uuid"
)

type GroupRepository interface {
	CreateGroup(ctx context.Context, group *Group.Group) error
	GetGroupByID(ctx context.Context, id uuid.UUID) (*Group.Group, error)

	// AddMember / RemoveMember lock the group row for the duration of the
	// update so concurrent mutations on the same group cannot lose writes.
	// Both are idempotent at the storage level.
	AddMember(ctx context.Context, groupID, userID uuid.UUID) (*Group.Group, error)
	RemoveMember(ctx context.Context, groupID, memberID uuid.UUID) (*Group.Group, error)

	// DeleteGroupCascade removes the group and every message carrying its id
	// in one transaction; either both go or neither does.
	DeleteGroupCascade(ctx context.Context, groupID uuid.UUID) error

	ListGroupsForUser(ctx context.Context, userID uuid.UUID) ([]*Group.Group, error)
}
