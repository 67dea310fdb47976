package usecase

import (
	"context"

	"github.com/emonshikder007/chat-app/internal/events"
	"github.com/emonshikder007/chat-app/internal/group"
	groupRepo "github.com/emonshikder007/chat-app/internal/group/repository"
	"github.com/emonshikder007/chat-app/internal/message"
	models "github.com/emonshikder007/chat-app/internal/message/model"
	"github.com/emonshikder007/chat-app/pkg/errors"
	"github.com/emonshikder007/chat-app/pkg/logger"

	"github.com/google/uuid"
)

type MessageUsecase struct {
	repo   message.MessageRepository
	groups group.GroupRepository
	bus    events.Bus
	logger logger.Logger
}

func NewMessageUsecase(repo message.MessageRepository, groups group.GroupRepository, bus events.Bus, logger logger.Logger) *MessageUsecase {
	return &MessageUsecase{repo: repo, groups: groups, bus: bus, logger: logger}
}

func (uc *MessageUsecase) PrivateHistory(ctx context.Context, caller, peer uuid.UUID) ([]*message.MessageDTO, error) {
	msgs, err := uc.repo.PrivateHistory(ctx, caller, peer)
	if err != nil {
		uc.logger.Error("failed to load private history", "peer", peer, "err", err)
		return nil, errors.Internal("failed to load messages")
	}
	return toDTOs(msgs), nil
}

func (uc *MessageUsecase) SendPrivate(ctx context.Context, caller, peer uuid.UUID, cmd message.SendCommand) (*message.MessageDTO, error) {
	if cmd.Text == "" && cmd.ImageURL == "" {
		return nil, errors.ErrEmptyMessage
	}

	msg := &models.Message{
		SenderID:    caller,
		RecipientID: &peer,
		Text:        cmd.Text,
		ImageURL:    cmd.ImageURL,
	}
	if err := uc.repo.InsertMessage(ctx, msg); err != nil {
		uc.logger.Errorf("error while saving private message: %v", err)
		return nil, errors.ErrSendFailed(err)
	}

	dto := toDTO(msg)
	uc.publish(ctx, events.SubjectNewMessage, events.Event{Name: events.NewMessage, Message: *dto})
	return dto, nil
}

func (uc *MessageUsecase) GroupHistory(ctx context.Context, caller, groupID uuid.UUID) ([]*message.MessageDTO, error) {
	if err := uc.requireMember(ctx, caller, groupID); err != nil {
		return nil, err
	}

	msgs, err := uc.repo.GroupHistory(ctx, groupID)
	if err != nil {
		uc.logger.Error("failed to load group history", "group_id", groupID, "err", err)
		return nil, errors.Internal("failed to load messages")
	}
	return toDTOs(msgs), nil
}

func (uc *MessageUsecase) SendGroup(ctx context.Context, caller, groupID uuid.UUID, cmd message.SendCommand) (*message.MessageDTO, error) {
	if cmd.Text == "" && cmd.ImageURL == "" {
		return nil, errors.ErrEmptyMessage
	}
	if err := uc.requireMember(ctx, caller, groupID); err != nil {
		return nil, err
	}

	msg := &models.Message{
		SenderID: caller,
		GroupID:  &groupID,
		Text:     cmd.Text,
		ImageURL: cmd.ImageURL,
	}
	if err := uc.repo.InsertMessage(ctx, msg); err != nil {
		uc.logger.Errorf("error while saving group message: %v", err)
		return nil, errors.ErrSendFailed(err)
	}

	dto := toDTO(msg)
	uc.publish(ctx, events.SubjectNewGroupMessage, events.Event{Name: events.NewGroupMessage, Message: *dto})
	return dto, nil
}

func (uc *MessageUsecase) requireMember(ctx context.Context, caller, groupID uuid.UUID) error {
	g, err := uc.groups.GetGroupByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, groupRepo.ErrGroupNotFound) {
			return errors.ErrGroupNotFound
		}
		uc.logger.Error("failed to load group", "group_id", groupID, "err", err)
		return errors.Internal("failed to load group")
	}
	if !g.HasMember(caller) {
		return errors.ErrNotGroupMember
	}
	return nil
}

// publish never fails the send: the message is already persisted and the
// client gets it back as the REST response either way.
func (uc *MessageUsecase) publish(ctx context.Context, subject string, ev events.Event) {
	if uc.bus == nil {
		return
	}
	if err := uc.bus.Publish(ctx, subject, ev); err != nil {
		uc.logger.Warn("failed to publish event", "subject", subject, "err", err)
	}
}

func toDTO(m *models.Message) *message.MessageDTO {
	return &message.MessageDTO{
		ID:          m.ID,
		SenderID:    m.SenderID,
		RecipientID: m.RecipientID,
		GroupID:     m.GroupID,
		Text:        m.Text,
		ImageURL:    m.ImageURL,
		CreatedAt:   m.CreatedAt,
	}
}

func toDTOs(msgs []*models.Message) []*message.MessageDTO {
	dtos := make([]*message.MessageDTO, 0, len(msgs))
	for _, m := range msgs {
		dtos = append(dtos, toDTO(m))
	}
	return dtos
}
