package repository

import (
	"context"
	"database/sql"

	Group "github.com/emonshikder007/chat-app/internal/group/model"
	Message "github.com/emonshikder007/chat-app/internal/message/model"
	"github.com/emonshikder007/chat-app/pkg/logger"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

type GroupRepository struct {
	db     *bun.DB
	logger *logger.Logger
}

var ErrGroupNotFound = errors.New("group not found")

func NewGroupRepository(db *bun.DB, logger logger.Logger) *GroupRepository {
	return &GroupRepository{
		db:     db,
		logger: &logger,
	}
}

func (r *GroupRepository) CreateGroup(ctx context.Context, group *Group.Group) error {

	_, err := r.db.NewInsert().Model(group).Returning("*").Exec(ctx)
	if err != nil {
		return errors.Wrap(err, "groupRepo.CreateGroup.Insert: ")
	}
	return nil
}

func (r *GroupRepository) GetGroupByID(ctx context.Context, id uuid.UUID) (*Group.Group, error) {

	group := new(Group.Group)
	err := r.db.NewSelect().Model(group).Where("id = ?", id).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGroupNotFound
		}
		return nil, errors.Wrap(err, "groupRepo.GetGroupByID.Scan: ")
	}
	return group, nil
}

// AddMember re-reads the member set under a row lock so two concurrent adds
// on the same group cannot clobber each other.
func (r *GroupRepository) AddMember(ctx context.Context, groupID, userID uuid.UUID) (*Group.Group, error) {
	group := new(Group.Group)

	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		err := tx.NewSelect().
			Model(group).
			Where("id = ?", groupID).
			For("UPDATE").
			Scan(ctx)
		if err != nil {
			return err
		}

		if group.HasMember(userID) {
			return nil
		}

		group.Members = append(group.Members, userID)
		_, err = tx.NewUpdate().
			Model(group).
			Column("members").
			Set("updated_at = current_timestamp").
			WherePK().
			Exec(ctx)
		if err != nil {
			return errors.Wrap(err, "groupRepo.AddMember.Update: ")
		}
		return nil
	})

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGroupNotFound
		}
		return nil, err
	}
	return group, nil
}

func (r *GroupRepository) RemoveMember(ctx context.Context, groupID, memberID uuid.UUID) (*Group.Group, error) {
	group := new(Group.Group)

	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		err := tx.NewSelect().
			Model(group).
			Where("id = ?", groupID).
			For("UPDATE").
			Scan(ctx)
		if err != nil {
			return err
		}

		kept := group.Members[:0]
		for _, m := range group.Members {
			if m != memberID {
				kept = append(kept, m)
			}
		}
		group.Members = kept

		_, err = tx.NewUpdate().
			Model(group).
			Column("members").
			Set("updated_at = current_timestamp").
			WherePK().
			Exec(ctx)
		if err != nil {
			return errors.Wrap(err, "groupRepo.RemoveMember.Update: ")
		}
		return nil
	})

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGroupNotFound
		}
		return nil, err
	}
	return group, nil
}

// DeleteGroupCascade deletes the group's messages and the group row in one
// transaction. No orphaned messages, no half-deleted group.
func (r *GroupRepository) DeleteGroupCascade(ctx context.Context, groupID uuid.UUID) error {
	return r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		group := new(Group.Group)
		err := tx.NewSelect().
			Model(group).
			Where("id = ?", groupID).
			For("UPDATE").
			Scan(ctx)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrGroupNotFound
			}
			return errors.Wrap(err, "groupRepo.DeleteGroupCascade.Select: ")
		}

		_, err = tx.NewDelete().
			Model((*Message.Message)(nil)).
			Where("group_id = ?", groupID).
			Exec(ctx)
		if err != nil {
			return errors.Wrap(err, "groupRepo.DeleteGroupCascade.DeleteMessages: ")
		}

		_, err = tx.NewDelete().
			Model(group).
			WherePK().
			Exec(ctx)
		if err != nil {
			return errors.Wrap(err, "groupRepo.DeleteGroupCascade.DeleteGroup: ")
		}
		return nil
	})
}

func (r *GroupRepository) ListGroupsForUser(ctx context.Context, userID uuid.UUID) ([]*Group.Group, error) {
	var groups []*Group.Group
	err := r.db.NewSelect().
		Model(&groups).
		Where("? = ANY (members)", userID).
		Scan(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "groupRepo.ListGroupsForUser.Scan: ")
	}
	return groups, nil
}
