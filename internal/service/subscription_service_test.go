package service

import (
	"testing"

	"vidtube-go/internal/api/dto"
	"vidtube-go/internal/repository"
	"vidtube-go/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscriptionService(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewSubscriptionService(repository.NewSubscriptionRepository(db), repository.NewUserRepository(db))

	alice := testutil.CreateUser(t, db, "alice")
	bob := testutil.CreateUser(t, db, "bob")

	_, err := svc.Toggle(alice.ID, alice.ID)
	assert.ErrorIs(t, err, ErrSelfSubscribe)

	_, err = svc.Toggle(alice.ID, 999)
	assert.ErrorIs(t, err, ErrChannelNotFound)

	data, err := svc.Toggle(bob.ID, alice.ID)
	require.NoError(t, err)
	assert.True(t, data.Subscribed)
	assert.Equal(t, int64(1), data.SubscribersCount)

	subs, err := svc.Subscribers(alice.ID, dto.PageQuery{})
	require.NoError(t, err)
	require.Len(t, subs.Users, 1)
	assert.Equal(t, "bob", subs.Users[0].Username)

	channels, err := svc.SubscribedChannels(bob.ID, dto.PageQuery{})
	require.NoError(t, err)
	require.Len(t, channels.Users, 1)
	assert.Equal(t, "alice", channels.Users[0].Username)

	data, err = svc.Toggle(bob.ID, alice.ID)
	require.NoError(t, err)
	assert.False(t, data.Subscribed)
	assert.Equal(t, int64(0), data.SubscribersCount)

	_, err = svc.Subscribers(999, dto.PageQuery{})
	assert.ErrorIs(t, err, ErrChannelNotFound)
}
