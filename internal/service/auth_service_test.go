package service

import (
	"context"
	"testing"
	"time"

	"vidtube-go/internal/api/dto"
	"vidtube-go/internal/repository"
	"vidtube-go/internal/testutil"
	"vidtube-go/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthService_RegisterLoginLogout(t *testing.T) {
	db := testutil.NewDB(t)
	tokens := utils.NewTokenManager("secret", time.Hour, "vidtube-go")
	revoker := newFakeRevoker()
	svc := NewAuthService(repository.NewUserRepository(db), tokens, revoker)

	user, err := svc.Register(&dto.RegisterRequest{
		Username: "Alice", Email: "Alice@Example.com", FullName: "Alice A", Password: "password1",
	})
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "alice@example.com", user.Email)

	_, err = svc.Register(&dto.RegisterRequest{
		Username: "alice", Email: "other@example.com", FullName: "x", Password: "password1",
	})
	assert.ErrorIs(t, err, ErrUserExists)

	_, err = svc.Login(&dto.LoginRequest{Login: "alice", Password: "wrong-pass"})
	assert.ErrorIs(t, err, ErrInvalidCredential)

	_, err = svc.Login(&dto.LoginRequest{Login: "nobody", Password: "password1"})
	assert.ErrorIs(t, err, ErrInvalidCredential)

	data, err := svc.Login(&dto.LoginRequest{Login: "ALICE@example.com", Password: "password1"})
	require.NoError(t, err)
	assert.Equal(t, "bearer", data.TokenType)
	assert.Equal(t, 3600, data.ExpiresIn)

	claims, err := tokens.Parse(data.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)

	require.NoError(t, svc.Logout(context.Background(), claims))
	revoked, err := revoker.IsRevoked(context.Background(), claims.ID)
	require.NoError(t, err)
	assert.True(t, revoked)

	me, err := svc.GetCurrentUser(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice A", me.FullName)

	_, err = svc.GetCurrentUser(999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserService_GetChannelProfile(t *testing.T) {
	db := testutil.NewDB(t)
	subRepo := repository.NewSubscriptionRepository(db)
	svc := NewUserService(repository.NewUserRepository(db), subRepo)

	alice := testutil.CreateUser(t, db, "alice")
	bob := testutil.CreateUser(t, db, "bob")
	_, err := subRepo.Toggle(bob.ID, alice.ID)
	require.NoError(t, err)

	profile, err := svc.GetChannelProfile(alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), profile.SubscribersCount)
	assert.Equal(t, int64(0), profile.SubscribedToCount)
	assert.True(t, profile.IsSubscribed)

	profile, err = svc.GetChannelProfile(alice.ID, 0)
	require.NoError(t, err)
	assert.False(t, profile.IsSubscribed)

	_, err = svc.GetChannelProfile(404, 0)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
