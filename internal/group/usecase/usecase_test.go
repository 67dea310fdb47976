package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/emonshikder007/chat-app/config"
	"github.com/emonshikder007/chat-app/internal/group"
	"github.com/emonshikder007/chat-app/internal/group/mocks"
	models "github.com/emonshikder007/chat-app/internal/group/model"
	"github.com/emonshikder007/chat-app/internal/group/repository"
	appErrors "github.com/emonshikder007/chat-app/pkg/errors"
	"github.com/emonshikder007/chat-app/pkg/logger"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Create(t *testing.T) {
	admin := uuid.New()
	member := uuid.New()

	cfg := config.Config{}
	logger, _ := logger.NewLogger(&cfg)

	t.Run("happy path- admin leads members, duplicates dropped", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockRepo := mocks.NewMockGroupRepository(ctrl)

		uc := NewGroupUsecase(mockRepo, *logger)

		g := mockRepo.EXPECT()
		g.CreateGroup(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, grp *models.Group) error {
				grp.ID = uuid.New()
				return nil
			})

		cmd := group.CreateGroupCommand{
			Name:    "Team",
			Members: []uuid.UUID{member, member, admin},
		}
		dto, err := uc.Create(context.Background(), admin, cmd)
		require.NoError(t, err)
		require.NotNil(t, dto)
		assert.Equal(t, dto.AdminID, admin)
		require.Len(t, dto.Members, 2)
		assert.Equal(t, dto.Members[0], admin)
		assert.Equal(t, dto.Members[1], member)
	})

	t.Run("sad path- empty name", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockRepo := mocks.NewMockGroupRepository(ctrl)

		uc := NewGroupUsecase(mockRepo, *logger)

		dto, err := uc.Create(context.Background(), admin, group.CreateGroupCommand{Name: ""})
		require.Error(t, err)
		assert.Equal(t, err, appErrors.ErrGroupNameRequired)
		assert.Nil(t, dto)
	})

	t.Run("sad path- db down", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockRepo := mocks.NewMockGroupRepository(ctrl)

		uc := NewGroupUsecase(mockRepo, *logger)

		g := mockRepo.EXPECT()
		g.CreateGroup(gomock.Any(), gomock.Any()).Return(errors.New("db down"))

		dto, err := uc.Create(context.Background(), admin, group.CreateGroupCommand{Name: "Team"})
		require.Error(t, err)
		assert.Nil(t, dto)
	})
}

func Test_AddMember(t *testing.T) {
	admin := uuid.New()
	stranger := uuid.New()
	newcomer := uuid.New()
	groupID := uuid.New()

	existing := &models.Group{
		ID:      groupID,
		Name:    "Team",
		AdminID: admin,
		Members: []uuid.UUID{admin},
	}

	cfg := config.Config{}
	logger, _ := logger.NewLogger(&cfg)

	t.Run("happy path- member added", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockRepo := mocks.NewMockGroupRepository(ctrl)

		uc := NewGroupUsecase(mockRepo, *logger)

		updated := &models.Group{
			ID:      groupID,
			Name:    "Team",
			AdminID: admin,
			Members: []uuid.UUID{admin, newcomer},
		}

		g := mockRepo.EXPECT()
		g.GetGroupByID(gomock.Any(), groupID).Return(existing, nil)
		g.AddMember(gomock.Any(), groupID, newcomer).Return(updated, nil)

		dto, err := uc.AddMember(context.Background(), admin, groupID, newcomer)
		require.NoError(t, err)
		assert.Contains(t, dto.Members, newcomer)
	})

	t.Run("happy path- adding an existing member is a no-op", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockRepo := mocks.NewMockGroupRepository(ctrl)

		uc := NewGroupUsecase(mockRepo, *logger)

		// No AddMember expectation: the repo must not be written to.
		g := mockRepo.EXPECT()
		g.GetGroupByID(gomock.Any(), groupID).Return(existing, nil)

		dto, err := uc.AddMember(context.Background(), admin, groupID, admin)
		require.NoError(t, err)
		assert.Contains(t, dto.Members, admin)
	})

	t.Run("sad path- non-admin actor", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockRepo := mocks.NewMockGroupRepository(ctrl)

		uc := NewGroupUsecase(mockRepo, *logger)

		g := mockRepo.EXPECT()
		g.GetGroupByID(gomock.Any(), groupID).Return(existing, nil)

		dto, err := uc.AddMember(context.Background(), stranger, groupID, newcomer)
		require.Error(t, err)
		assert.Equal(t, err, appErrors.ErrNotGroupAdmin)
		assert.Nil(t, dto)
	})

	t.Run("sad path- group not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockRepo := mocks.NewMockGroupRepository(ctrl)

		uc := NewGroupUsecase(mockRepo, *logger)

		g := mockRepo.EXPECT()
		g.GetGroupByID(gomock.Any(), groupID).Return(nil, repository.ErrGroupNotFound)

		dto, err := uc.AddMember(context.Background(), admin, groupID, newcomer)
		require.Error(t, err)
		assert.Equal(t, err, appErrors.ErrGroupNotFound)
		assert.Nil(t, dto)
	})
}

func Test_RemoveMember(t *testing.T) {
	admin := uuid.New()
	member := uuid.New()
	groupID := uuid.New()

	existing := &models.Group{
		ID:      groupID,
		Name:    "Team",
		AdminID: admin,
		Members: []uuid.UUID{admin, member},
	}

	cfg := config.Config{}
	logger, _ := logger.NewLogger(&cfg)

	t.Run("happy path- member removed", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockRepo := mocks.NewMockGroupRepository(ctrl)

		uc := NewGroupUsecase(mockRepo, *logger)

		updated := &models.Group{
			ID:      groupID,
			Name:    "Team",
			AdminID: admin,
			Members: []uuid.UUID{admin},
		}

		g := mockRepo.EXPECT()
		g.GetGroupByID(gomock.Any(), groupID).Return(existing, nil)
		g.RemoveMember(gomock.Any(), groupID, member).Return(updated, nil)

		dto, err := uc.RemoveMember(context.Background(), admin, groupID, member)
		require.NoError(t, err)
		assert.NotContains(t, dto.Members, member)
	})

	t.Run("happy path- removing a non-member still succeeds", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockRepo := mocks.NewMockGroupRepository(ctrl)

		uc := NewGroupUsecase(mockRepo, *logger)

		outsider := uuid.New()
		g := mockRepo.EXPECT()
		g.GetGroupByID(gomock.Any(), groupID).Return(existing, nil)
		g.RemoveMember(gomock.Any(), groupID, outsider).Return(existing, nil)

		dto, err := uc.RemoveMember(context.Background(), admin, groupID, outsider)
		require.NoError(t, err)
		assert.NotNil(t, dto)
	})

	t.Run("happy path- admin may remove themselves", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockRepo := mocks.NewMockGroupRepository(ctrl)

		uc := NewGroupUsecase(mockRepo, *logger)

		updated := &models.Group{
			ID:      groupID,
			Name:    "Team",
			AdminID: admin,
			Members: []uuid.UUID{member},
		}

		g := mockRepo.EXPECT()
		g.GetGroupByID(gomock.Any(), groupID).Return(existing, nil)
		g.RemoveMember(gomock.Any(), groupID, admin).Return(updated, nil)

		dto, err := uc.RemoveMember(context.Background(), admin, groupID, admin)
		require.NoError(t, err)
		assert.NotContains(t, dto.Members, admin)
	})

	t.Run("sad path- non-admin actor", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockRepo := mocks.NewMockGroupRepository(ctrl)

		uc := NewGroupUsecase(mockRepo, *logger)

		g := mockRepo.EXPECT()
		g.GetGroupByID(gomock.Any(), groupID).Return(existing, nil)

		dto, err := uc.RemoveMember(context.Background(), member, groupID, admin)
		require.Error(t, err)
		assert.Equal(t, err, appErrors.ErrNotGroupAdmin)
		assert.Nil(t, dto)
	})
}

func Test_Delete(t *testing.T) {
	admin := uuid.New()
	member := uuid.New()
	groupID := uuid.New()

	existing := &models.Group{
		ID:      groupID,
		Name:    "Team",
		AdminID: admin,
		Members: []uuid.UUID{admin, member},
	}

	cfg := config.Config{}
	logger, _ := logger.NewLogger(&cfg)

	t.Run("happy path- admin deletes group", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockRepo := mocks.NewMockGroupRepository(ctrl)

		uc := NewGroupUsecase(mockRepo, *logger)

		g := mockRepo.EXPECT()
		g.GetGroupByID(gomock.Any(), groupID).Return(existing, nil)
		g.DeleteGroupCascade(gomock.Any(), groupID).Return(nil)

		require.NoError(t, uc.Delete(context.Background(), admin, groupID))
	})

	t.Run("sad path- non-admin actor", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockRepo := mocks.NewMockGroupRepository(ctrl)

		uc := NewGroupUsecase(mockRepo, *logger)

		g := mockRepo.EXPECT()
		g.GetGroupByID(gomock.Any(), groupID).Return(existing, nil)

		err := uc.Delete(context.Background(), member, groupID)
		require.Error(t, err)
		assert.Equal(t, err, appErrors.ErrNotGroupAdmin)
	})

	t.Run("sad path- group not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockRepo := mocks.NewMockGroupRepository(ctrl)

		uc := NewGroupUsecase(mockRepo, *logger)

		g := mockRepo.EXPECT()
		g.GetGroupByID(gomock.Any(), groupID).Return(nil, repository.ErrGroupNotFound)

		err := uc.Delete(context.Background(), admin, groupID)
		require.Error(t, err)
		assert.Equal(t, err, appErrors.ErrGroupNotFound)
	})

	t.Run("sad path- cascade fails", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockRepo := mocks.NewMockGroupRepository(ctrl)

		uc := NewGroupUsecase(mockRepo, *logger)

		g := mockRepo.EXPECT()
		g.GetGroupByID(gomock.Any(), groupID).Return(existing, nil)
		g.DeleteGroupCascade(gomock.Any(), groupID).Return(errors.New("db down"))

		err := uc.Delete(context.Background(), admin, groupID)
		require.Error(t, err)
		assert.Equal(t, appErrors.CodeOf(err), appErrors.CodeInternal)
	})
}

func Test_IsMember(t *testing.T) {
	admin := uuid.New()
	member := uuid.New()
	groupID := uuid.New()

	existing := &models.Group{
		ID:      groupID,
		AdminID: admin,
		Members: []uuid.UUID{admin, member},
	}

	cfg := config.Config{}
	logger, _ := logger.NewLogger(&cfg)

	ctrl := gomock.NewController(t)
	mockRepo := mocks.NewMockGroupRepository(ctrl)

	uc := NewGroupUsecase(mockRepo, *logger)

	g := mockRepo.EXPECT()
	g.GetGroupByID(gomock.Any(), groupID).Return(existing, nil).Times(2)

	ok, err := uc.IsMember(context.Background(), groupID, member)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = uc.IsMember(context.Background(), groupID, uuid.New())
	require.NoError(t, err)
	assert.False(t, ok)
}
