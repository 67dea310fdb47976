package usecase

import (
	"context"
	"regexp"

	"golang.org/x/crypto/bcrypt"

	"github.com/emonshikder007/chat-app/config"
	"github.com/emonshikder007/chat-app/internal/user"
	models "github.com/emonshikder007/chat-app/internal/user/model"
	"github.com/emonshikder007/chat-app/pkg/errors"
	"github.com/emonshikder007/chat-app/pkg/logger"
	"github.com/emonshikder007/chat-app/pkg/utils"

	"github.com/google/uuid"
)

type UserUsecase struct {
	repo   user.UserRepository
	logger logger.Logger
	config config.Config
}

func NewUserUsecase(repo user.UserRepository, logger logger.Logger, config config.Config) *UserUsecase {
	return &UserUsecase{repo: repo, logger: logger, config: config}
}

var usernameRegex = regexp.MustCompile(`^[a-z0-9_]{3,32}$`)

func validateUsername(username string) error {
	if !usernameRegex.MatchString(username) {
		return errors.ErrInvalidUsername
	}
	return nil
}

func (uc *UserUsecase) Register(ctx context.Context, cmd user.RegisterCommand) (*user.UserDTO, error) {
	if err := validateUsername(cmd.Username); err != nil {
		return nil, err
	}
	if cmd.DisplayName == "" {
		return nil, errors.ErrInvalidDisplayName
	}
	if len(cmd.Password) < 6 {
		return nil, errors.InvalidArg("password must be at least 6 characters")
	}

	if exists, err := uc.repo.UsernameExists(ctx, cmd.Username); err != nil {
		uc.logger.Error("database error checking username", "err", err)
		return nil, errors.Internal("internal server error")
	} else if exists {
		return nil, errors.ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cmd.Password), bcrypt.DefaultCost)
	if err != nil {
		uc.logger.Error("bcrypt failed", "err", err)
		return nil, errors.Internal("internal server error")
	}

	u := &models.User{
		Username:     cmd.Username,
		Name:         cmd.DisplayName,
		PasswordHash: string(hash),
		ProfilePic:   cmd.ProfilePic,
	}
	if err := uc.repo.CreateUser(ctx, u); err != nil {
		uc.logger.Errorf("error while saving user in db: %v", err)
		return nil, errors.Internal("registration failed")
	}

	return toDTO(u), nil
}

func (uc *UserUsecase) Login(ctx context.Context, cmd user.LoginCommand) (*user.LoginResponse, error) {
	u, err := uc.repo.GetUserByUsername(ctx, cmd.Username)
	if err != nil || u == nil {
		uc.logger.Warn("login attempt for unknown username", "username", cmd.Username)
		return nil, errors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(cmd.Password)); err != nil {
		return nil, errors.ErrInvalidCredentials
	}

	token, err := utils.GenerateJWTToken(u.ID, uc.config)
	if err != nil {
		uc.logger.Error("failed to mint token", "err", err)
		return nil, errors.Internal("error while creating token")
	}

	expiresIn := uc.config.JWT.ExpiredIn * 3600
	if expiresIn <= 0 {
		expiresIn = 24 * 3600
	}

	return &user.LoginResponse{
		AccessToken: token,
		ExpiresIn:   expiresIn,
		TokenType:   "Bearer",
		User:        toDTO(u),
	}, nil
}

func (uc *UserUsecase) UpdateDisplayName(ctx context.Context, userID uuid.UUID, newName string) error {
	if newName == "" {
		return errors.ErrInvalidDisplayName
	}
	err := uc.repo.UpdateUserDisplayName(ctx, userID, newName)
	if err != nil {
		uc.logger.Errorf("error while updating display name in db: %v", err)
		return errors.Internal("error while updating display name in db")
	}
	return nil
}

func (uc *UserUsecase) GetUserProfile(ctx context.Context, userID uuid.UUID) (*user.UserDTO, error) {
	u, err := uc.repo.GetUserByID(ctx, userID)
	if err != nil || u == nil {
		return nil, errors.ErrUserNotFound
	}
	return toDTO(u), nil
}

func (uc *UserUsecase) ListUsers(ctx context.Context, caller uuid.UUID) ([]*user.UserDTO, error) {
	users, err := uc.repo.ListUsers(ctx, caller)
	if err != nil {
		uc.logger.Error("failed to list users", "err", err)
		return nil, errors.Internal("failed to list users")
	}
	dtos := make([]*user.UserDTO, 0, len(users))
	for _, u := range users {
		dtos = append(dtos, toDTO(u))
	}
	return dtos, nil
}

func toDTO(u *models.User) *user.UserDTO {
	return &user.UserDTO{
		ID:          u.ID,
		Username:    u.Username,
		DisplayName: u.Name,
		ProfilePic:  u.ProfilePic,
	}
}
