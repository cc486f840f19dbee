package app

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	idb "scan_review_notifier/internal/infra/database"
)

// fakeTokenRepo records merge-writes; lookups are unused by AccountService.
type fakeTokenRepo struct {
	fakeAccountRepo
	setTokenErr error
	setPrefErr  error
	tokensSet   map[string]string
	prefsSet    map[string]bool
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{
		tokensSet: make(map[string]string),
		prefsSet:  make(map[string]bool),
	}
}

func (r *fakeTokenRepo) SetFCMToken(_ context.Context, id string, token string) error {
	if r.setTokenErr != nil {
		return r.setTokenErr
	}
	r.tokensSet[id] = token
	return nil
}

func (r *fakeTokenRepo) SetNotificationsEnabled(_ context.Context, id string, enabled bool) error {
	if r.setPrefErr != nil {
		return r.setPrefErr
	}
	r.prefsSet[id] = enabled
	return nil
}

func TestRegisterDevice(t *testing.T) {
	t.Parallel()

	t.Run("stores the token", func(t *testing.T) {
		t.Parallel()
		repo := newFakeTokenRepo()
		svc := NewAccountService(repo, discardLogger())

		require.NoError(t, svc.RegisterDevice(context.Background(), "u1", "tok1"))
		assert.Equal(t, "tok1", repo.tokensSet["u1"])
	})

	t.Run("rejects an empty token", func(t *testing.T) {
		t.Parallel()
		repo := newFakeTokenRepo()
		svc := NewAccountService(repo, discardLogger())

		err := svc.RegisterDevice(context.Background(), "u1", "")
		assert.ErrorIs(t, err, ErrTokenRequired)
		assert.Empty(t, repo.tokensSet)
	})

	t.Run("propagates account-not-found from the store", func(t *testing.T) {
		t.Parallel()
		repo := newFakeTokenRepo()
		repo.setTokenErr = idb.ErrAccountNotFound
		svc := NewAccountService(repo, discardLogger())

		err := svc.RegisterDevice(context.Background(), "ghost", "tok1")
		assert.True(t, errors.Is(err, idb.ErrAccountNotFound))
	})
}

func TestSetNotificationPreference(t *testing.T) {
	t.Parallel()

	repo := newFakeTokenRepo()
	svc := NewAccountService(repo, discardLogger())

	require.NoError(t, svc.SetNotificationPreference(context.Background(), "u1", false))
	enabled, ok := repo.prefsSet["u1"]
	require.True(t, ok)
	assert.False(t, enabled)
}
