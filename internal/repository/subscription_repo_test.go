package repository

import (
	"testing"

	"vidtube-go/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscriptionRepository_ToggleAndList(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewSubscriptionRepository(db)

	alice := testutil.CreateUser(t, db, "alice")
	bob := testutil.CreateUser(t, db, "bob")
	carol := testutil.CreateUser(t, db, "carol")

	subscribed, err := repo.Toggle(bob.ID, alice.ID)
	require.NoError(t, err)
	assert.True(t, subscribed)
	subscribed, err = repo.Toggle(carol.ID, alice.ID)
	require.NoError(t, err)
	assert.True(t, subscribed)
	subscribed, err = repo.Toggle(bob.ID, carol.ID)
	require.NoError(t, err)
	assert.True(t, subscribed)

	subscribers, total, err := repo.ListSubscribers(alice.ID, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	names := []string{subscribers[0].Username, subscribers[1].Username}
	assert.ElementsMatch(t, []string{"bob", "carol"}, names)

	channels, total, err := repo.ListChannels(bob.ID, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, channels, 2)

	subscribed, err = repo.Toggle(bob.ID, alice.ID)
	require.NoError(t, err)
	assert.False(t, subscribed)

	count, err := repo.CountSubscribers(alice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	ok, err := repo.IsSubscribed(bob.ID, alice.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}
