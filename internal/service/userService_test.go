package service

import (
	"context"
	"testing"

	"github.com/ds124wfegd/eventhub/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserCreate_HashesPassword(t *testing.T) {
	repo := newFakeUserRepo()
	notifier := newFakeNotifier()
	users := NewUserService(repo, notifier)

	user, err := users.Create(context.Background(), &CreateUserRequest{
		Name:     "Ivan",
		Email:    "ivan@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.RoleAttendee, user.Role)
	assert.NotEmpty(t, user.PasswordHash)
	assert.NotEqual(t, "secret123", user.PasswordHash)
	assert.True(t, CheckPassword(user.PasswordHash, "secret123"))
	assert.False(t, CheckPassword(user.PasswordHash, "wrong"))

	stored, err := repo.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", stored.PasswordHash)

	require.Len(t, notifier.welcomes, 1)
	assert.Equal(t, "ivan@example.com", notifier.welcomes[0].To)
}

func TestUserCreate_InvalidRole(t *testing.T) {
	users := NewUserService(newFakeUserRepo(), newFakeNotifier())

	_, err := users.Create(context.Background(), &CreateUserRequest{
		Name:     "Ivan",
		Email:    "ivan@example.com",
		Password: "secret123",
		Role:     "superuser",
	})
	require.ErrorIs(t, err, entity.ErrInvalidRole)
}

func TestUserCreate_DuplicateEmail(t *testing.T) {
	users := NewUserService(newFakeUserRepo(), newFakeNotifier())

	req := &CreateUserRequest{Name: "Ivan", Email: "ivan@example.com", Password: "secret123"}
	_, err := users.Create(context.Background(), req)
	require.NoError(t, err)

	_, err = users.Create(context.Background(), req)
	require.ErrorIs(t, err, entity.ErrEmailTaken)
}

func TestUserCreate_WelcomeMailFailureIsNotFatal(t *testing.T) {
	notifier := newFakeNotifier()
	notifier.setFail("ivan@example.com")
	users := NewUserService(newFakeUserRepo(), notifier)

	user, err := users.Create(context.Background(), &CreateUserRequest{
		Name:     "Ivan",
		Email:    "ivan@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
}

func TestUserUpdate_RehashesPassword(t *testing.T) {
	repo := newFakeUserRepo()
	users := NewUserService(repo, newFakeNotifier())

	user, err := users.Create(context.Background(), &CreateUserRequest{
		Name:     "Ivan",
		Email:    "ivan@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	newPassword := "evenmoresecret"
	newName := "Ivan Petrov"
	updated, err := users.Update(context.Background(), user.ID, &UpdateUserRequest{
		Name:     &newName,
		Password: &newPassword,
	})
	require.NoError(t, err)

	assert.Equal(t, newName, updated.Name)
	assert.NotEqual(t, newPassword, updated.PasswordHash)
	assert.True(t, CheckPassword(updated.PasswordHash, newPassword))
	assert.False(t, CheckPassword(updated.PasswordHash, "secret123"))
}

func TestUserGetByEmail_NotFound(t *testing.T) {
	users := NewUserService(newFakeUserRepo(), newFakeNotifier())

	_, err := users.GetByEmail(context.Background(), "nobody@example.com")
	require.ErrorIs(t, err, entity.ErrUserNotFound)
}
