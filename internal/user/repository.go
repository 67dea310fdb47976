package user

import (
	"context"

	User "github.com/emonshikder007/chat-app/internal/user/model"
	"github.com/google/uuid"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *User.User) error
	GetUserByID(ctx context.Context, id uuid.UUID) (*User.User, error)
	GetUserByUsername(ctx context.Context, username string) (*User.User, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	UpdateUserDisplayName(ctx context.Context, userID uuid.UUID, newName string) error

	// Everyone except the given user, for the contact sidebar
	ListUsers(ctx context.Context, exclude uuid.UUID) ([]*User.User, error)
}
