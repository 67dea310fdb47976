package usecase

import (
	"context"

	"github.com/emonshikder007/chat-app/internal/group"
	models "github.com/emonshikder007/chat-app/internal/group/model"
	"github.com/emonshikder007/chat-app/internal/group/repository"
	"github.com/emonshikder007/chat-app/pkg/errors"
	"github.com/emonshikder007/chat-app/pkg/logger"

	"github.com/google/uuid"
)

type GroupUsecase struct {
	repo   group.GroupRepository
	logger logger.Logger
}

func NewGroupUsecase(repo group.GroupRepository, logger logger.Logger) *GroupUsecase {
	return &GroupUsecase{repo: repo, logger: logger}
}

func (uc *GroupUsecase) Create(ctx context.Context, actor uuid.UUID, cmd group.CreateGroupCommand) (*group.GroupDTO, error) {
	if cmd.Name == "" {
		return nil, errors.ErrGroupNameRequired
	}

	// Admin always leads the member set; duplicates are dropped here so the
	// stored set never needs fixing later.
	members := make([]uuid.UUID, 0, len(cmd.Members)+1)
	seen := map[uuid.UUID]bool{actor: true}
	members = append(members, actor)
	for _, m := range cmd.Members {
		if seen[m] {
			continue
		}
		seen[m] = true
		members = append(members, m)
	}

	g := &models.Group{
		Name:    cmd.Name,
		AdminID: actor,
		Members: members,
	}
	if err := uc.repo.CreateGroup(ctx, g); err != nil {
		uc.logger.Errorf("error while creating group: %v", err)
		return nil, errors.Internal("failed to create group")
	}

	return toDTO(g), nil
}

func (uc *GroupUsecase) AddMember(ctx context.Context, actor, groupID, userID uuid.UUID) (*group.GroupDTO, error) {
	g, err := uc.loadForAdmin(ctx, actor, groupID)
	if err != nil {
		return nil, err
	}

	if g.HasMember(userID) {
		return toDTO(g), nil
	}

	updated, err := uc.repo.AddMember(ctx, groupID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrGroupNotFound) {
			return nil, errors.ErrGroupNotFound
		}
		uc.logger.Errorf("error while adding member: %v", err)
		return nil, errors.Internal("failed to add member")
	}
	return toDTO(updated), nil
}

func (uc *GroupUsecase) RemoveMember(ctx context.Context, actor, groupID, memberID uuid.UUID) (*group.GroupDTO, error) {
	if _, err := uc.loadForAdmin(ctx, actor, groupID); err != nil {
		return nil, err
	}

	// Removal is unconditional, including the admin removing themselves.
	// An admin-less group is the caller's problem to recognize; nothing is
	// silently promoted here.
	updated, err := uc.repo.RemoveMember(ctx, groupID, memberID)
	if err != nil {
		if errors.Is(err, repository.ErrGroupNotFound) {
			return nil, errors.ErrGroupNotFound
		}
		uc.logger.Errorf("error while removing member: %v", err)
		return nil, errors.Internal("failed to remove member")
	}
	return toDTO(updated), nil
}

func (uc *GroupUsecase) Delete(ctx context.Context, actor, groupID uuid.UUID) error {
	if _, err := uc.loadForAdmin(ctx, actor, groupID); err != nil {
		return err
	}

	if err := uc.repo.DeleteGroupCascade(ctx, groupID); err != nil {
		if errors.Is(err, repository.ErrGroupNotFound) {
			return errors.ErrGroupNotFound
		}
		uc.logger.Errorf("error while deleting group: %v", err)
		return errors.ErrGroupDeleteFailed(err)
	}
	return nil
}

func (uc *GroupUsecase) ListForUser(ctx context.Context, actor uuid.UUID) ([]*group.GroupDTO, error) {
	groups, err := uc.repo.ListGroupsForUser(ctx, actor)
	if err != nil {
		uc.logger.Error("failed to list groups", "err", err)
		return nil, errors.Internal("failed to list groups")
	}
	dtos := make([]*group.GroupDTO, 0, len(groups))
	for _, g := range groups {
		dtos = append(dtos, toDTO(g))
	}
	return dtos, nil
}

func (uc *GroupUsecase) IsMember(ctx context.Context, groupID, userID uuid.UUID) (bool, error) {
	g, err := uc.repo.GetGroupByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, repository.ErrGroupNotFound) {
			return false, errors.ErrGroupNotFound
		}
		return false, errors.Internal("failed to load group")
	}
	return g.HasMember(userID), nil
}

func (uc *GroupUsecase) loadForAdmin(ctx context.Context, actor, groupID uuid.UUID) (*models.Group, error) {
	g, err := uc.repo.GetGroupByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, repository.ErrGroupNotFound) {
			return nil, errors.ErrGroupNotFound
		}
		uc.logger.Error("failed to load group", "group_id", groupID, "err", err)
		return nil, errors.Internal("failed to load group")
	}
	if g.AdminID != actor {
		return nil, errors.ErrNotGroupAdmin
	}
	return g, nil
}

func toDTO(g *models.Group) *group.GroupDTO {
	return &group.GroupDTO{
		ID:        g.ID,
		Name:      g.Name,
		AdminID:   g.AdminID,
		Members:   g.Members,
		CreatedAt: g.CreatedAt,
	}
}
