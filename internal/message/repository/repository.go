package repository

import (
	"context"

	Message "github.com/emonshikder007/chat-app/internal/message/model"
	"github.com/emonshikder007/chat-app/pkg/logger"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

type MessageRepository struct {
	db     *bun.DB
	logger *logger.Logger
}

func NewMessageRepository(db *bun.DB, logger logger.Logger) *MessageRepository {
	return &MessageRepository{
		db:     db,
		logger: &logger,
	}
}

func (r *MessageRepository) InsertMessage(ctx context.Context, msg *Message.Message) error {

	_, err := r.db.NewInsert().Model(msg).Returning("*").Exec(ctx)
	if err != nil {
		return errors.Wrap(err, "messageRepo.InsertMessage.Insert: ")
	}
	return nil
}

func (r *MessageRepository) PrivateHistory(ctx context.Context, a, b uuid.UUID) ([]*Message.Message, error) {
	var msgs []*Message.Message
	err := r.db.NewSelect().
		Model(&msgs).
		Where("group_id IS NULL").
		Where("(sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?)", a, b, b, a).
		Order("created_at ASC", "id ASC").
		Scan(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "messageRepo.PrivateHistory.Scan: ")
	}
	return msgs, nil
}

func (r *MessageRepository) GroupHistory(ctx context.Context, groupID uuid.UUID) ([]*Message.Message, error) {
	var msgs []*Message.Message
	err := r.db.NewSelect().
		Model(&msgs).
		Where("group_id = ?", groupID).
		Order("created_at ASC", "id ASC").
		Scan(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "messageRepo.GroupHistory.Scan: ")
	}
	return msgs, nil
}
