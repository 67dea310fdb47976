package repository

import (
	"context"
	"database/sql"
	"log"
	"os"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	"testing"

	models "github.com/emonshikder007/chat-app/internal/group/model"
	msgmodels "github.com/emonshikder007/chat-app/internal/message/model"
	usermodels "github.com/emonshikder007/chat-app/internal/user/model"
	"github.com/emonshikder007/chat-app/pkg/logger"

	"github.com/google/uuid"
)

var testDB *bun.DB

func TestMain(m *testing.M) {
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("chatapp"),
		postgres.WithUsername("chatapp"),
		postgres.WithPassword("password"),
		postgres.BasicWaitStrategies(),
	)
	if err != nil {
		log.Printf("failed to start container: %s", err)
		return
	}

	defer func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			log.Printf("failed to terminate container: %s", err)
		}
	}()

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable", "application_name=test")
	if err != nil {
		log.Printf("failed to get connections string, %v", err)
	}

	connector := pgdriver.NewConnector(pgdriver.WithDSN(connStr))
	sqlDB := sql.OpenDB(connector)
	testDB = bun.NewDB(sqlDB, pgdialect.New())

	if err := sqlDB.PingContext(ctx); err != nil {
		log.Fatalf("failed to ping db: %v", err)
	}

	tables := []any{
		(*usermodels.User)(nil),
		(*models.Group)(nil),
		(*msgmodels.Message)(nil),
	}

	for _, t := range tables {
		if _, err := testDB.NewCreateTable().Model(t).IfNotExists().Exec(ctx); err != nil {
			testDB.Close()
			log.Fatalf("failed to create table for %T: %v", t, err)
		}
	}

	code := m.Run()

	testDB.Close()

	os.Exit(code)
}

func truncateAll(t *testing.T) {
	t.Cleanup(func() {
		for _, table := range []string{"messages", "groups", "users"} {
			_, err := testDB.ExecContext(context.Background(), `TRUNCATE TABLE `+table+` RESTART IDENTITY CASCADE`)
			require.NoError(t, err)
		}
	})
}

func seedGroup(t *testing.T, repo *GroupRepository, members ...uuid.UUID) *models.Group {
	g := &models.Group{
		Name:    "Team",
		AdminID: members[0],
		Members: members,
	}
	require.NoError(t, repo.CreateGroup(context.Background(), g))
	return g
}

func Test_CreateGroup(t *testing.T) {
	truncateAll(t)

	repo := NewGroupRepository(testDB, logger.Logger{})
	admin := uuid.New()

	g := seedGroup(t, repo, admin)
	assert.NotEqual(t, uuid.Nil, g.ID)
	assert.False(t, g.CreatedAt.IsZero())

	fetched, err := repo.GetGroupByID(context.Background(), g.ID)
	require.NoError(t, err)
	assert.Equal(t, g.Name, fetched.Name)
	assert.Equal(t, admin, fetched.AdminID)
	assert.Equal(t, []uuid.UUID{admin}, fetched.Members)
}

func Test_GetGroupByID_NotFound(t *testing.T) {
	repo := NewGroupRepository(testDB, logger.Logger{})

	_, err := repo.GetGroupByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrGroupNotFound)
}

func Test_AddMember(t *testing.T) {
	truncateAll(t)

	repo := NewGroupRepository(testDB, logger.Logger{})
	admin := uuid.New()
	newcomer := uuid.New()

	g := seedGroup(t, repo, admin)

	updated, err := repo.AddMember(context.Background(), g.ID, newcomer)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{admin, newcomer}, updated.Members)

	// Adding again must not duplicate the entry.
	updated, err = repo.AddMember(context.Background(), g.ID, newcomer)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{admin, newcomer}, updated.Members)

	_, err = repo.AddMember(context.Background(), uuid.New(), newcomer)
	assert.ErrorIs(t, err, ErrGroupNotFound)
}

func Test_RemoveMember(t *testing.T) {
	truncateAll(t)

	repo := NewGroupRepository(testDB, logger.Logger{})
	admin := uuid.New()
	member := uuid.New()

	g := seedGroup(t, repo, admin, member)

	updated, err := repo.RemoveMember(context.Background(), g.ID, member)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{admin}, updated.Members)

	// Removing someone who is not a member succeeds and changes nothing.
	updated, err = repo.RemoveMember(context.Background(), g.ID, member)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{admin}, updated.Members)

	_, err = repo.RemoveMember(context.Background(), uuid.New(), member)
	assert.ErrorIs(t, err, ErrGroupNotFound)
}

func Test_DeleteGroupCascade(t *testing.T) {
	truncateAll(t)

	repo := NewGroupRepository(testDB, logger.Logger{})

	sender := &usermodels.User{Username: "emon", Name: "Emon", PasswordHash: "x"}
	_, err := testDB.NewInsert().Model(sender).Returning("*").Exec(context.Background())
	require.NoError(t, err)

	g := seedGroup(t, repo, sender.ID)
	other := seedGroup(t, repo, sender.ID)

	msgs := []*msgmodels.Message{
		{SenderID: sender.ID, GroupID: &g.ID, Text: "one"},
		{SenderID: sender.ID, GroupID: &g.ID, Text: "two"},
		{SenderID: sender.ID, GroupID: &other.ID, Text: "keep me"},
	}
	for _, m := range msgs {
		_, err := testDB.NewInsert().Model(m).Exec(context.Background())
		require.NoError(t, err)
	}

	require.NoError(t, repo.DeleteGroupCascade(context.Background(), g.ID))

	_, err = repo.GetGroupByID(context.Background(), g.ID)
	assert.ErrorIs(t, err, ErrGroupNotFound)

	count, err := testDB.NewSelect().
		Model((*msgmodels.Message)(nil)).
		Where("group_id = ?", g.ID).
		Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)

	// The other group's messages survive.
	count, err = testDB.NewSelect().
		Model((*msgmodels.Message)(nil)).
		Where("group_id = ?", other.ID).
		Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	assert.ErrorIs(t, repo.DeleteGroupCascade(context.Background(), g.ID), ErrGroupNotFound)
}

func Test_ListGroupsForUser(t *testing.T) {
	truncateAll(t)

	repo := NewGroupRepository(testDB, logger.Logger{})
	admin := uuid.New()
	member := uuid.New()

	withMember := seedGroup(t, repo, admin, member)
	seedGroup(t, repo, admin)

	groups, err := repo.ListGroupsForUser(context.Background(), member)
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, withMember.ID, groups[0].ID)

	groups, err = repo.ListGroupsForUser(context.Background(), admin)
	require.NoError(t, err)
	assert.Len(t, groups, 2)

	groups, err = repo.ListGroupsForUser(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Empty(t, groups)
}
