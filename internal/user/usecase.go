package user

import (
	"context"

	"github.com/google/uuid"
)

type UserUsecase interface {
	// Register new user with username + display name + password
	Register(ctx context.Context, cmd RegisterCommand) (*UserDTO, error)

	// Login verifies the password and mints an access token
	Login(ctx context.Context, cmd LoginCommand) (*LoginResponse, error)

	// Update display name only (username is immutable)
	UpdateDisplayName(ctx context.Context, userID uuid.UUID, newName string) error

	GetUserProfile(ctx context.Context, userID uuid.UUID) (*UserDTO, error)

	// Contact list: every user except the caller
	ListUsers(ctx context.Context, caller uuid.UUID) ([]*UserDTO, error)
}
