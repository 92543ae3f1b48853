package session_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adcheck/internal/domain"
	"adcheck/internal/session"
)

func TestStore_CreateAndGet(t *testing.T) {
	store := session.NewStore()
	sess := store.Create(domain.TrackChecklist)

	require.NotEqual(t, uuid.Nil, sess.ID)
	assert.Equal(t, domain.StageInitial, sess.Stage)
	assert.Equal(t, domain.TrackChecklist, sess.Track)

	got, err := store.Get(sess.ID)
	require.NoError(t, err)
	assert.Same(t, sess, got)
}

func TestStore_GetUnknownID(t *testing.T) {
	store := session.NewStore()
	_, err := store.Get(uuid.New())
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestStore_Delete(t *testing.T) {
	store := session.NewStore()
	sess := store.Create(domain.TrackScene)

	store.Delete(sess.ID)

	_, err := store.Get(sess.ID)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}
