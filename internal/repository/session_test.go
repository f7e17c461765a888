package repository

import (
	"testing"
	"time"

	"github.com/rocketscienceinc/tictactoe-solo/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-solo/internal/entity"
	"github.com/rocketscienceinc/tictactoe-solo/testing/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSnapshot(id string) *entity.Snapshot {
	return &entity.Snapshot{
		ID: id,
		Board: [entity.CellCount]entity.Cell{
			entity.PlayerMark, entity.EmptyCell, entity.EmptyCell,
			entity.EmptyCell, entity.OpponentMark, entity.EmptyCell,
			entity.EmptyCell, entity.EmptyCell, entity.EmptyCell,
		},
		Started: true,
		Active:  true,
		Outcome: entity.OutcomeInProgress,
	}
}

func TestSessionRepository_CreateOrUpdate(t *testing.T) {
	ctx, st := suite.New(t)

	sessionRepo := NewSessionRepository(st.Storage, time.Hour)

	// Given: a snapshot of a game in progress
	snapshot := newSnapshot("123")

	// When: CreateOrUpdate is called
	err := sessionRepo.CreateOrUpdate(ctx, snapshot)

	// Then: no error should be returned and the key expires
	require.NoError(t, err)

	ttl, err := st.Storage.TTL(ctx, "session:123").Result()
	require.NoError(t, err)
	assert.Positive(t, ttl)
}

func TestSessionRepository_GetByID(t *testing.T) {
	t.Run("GetByID_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		sessionRepo := NewSessionRepository(st.Storage, 0)

		// Given: a stored snapshot
		snapshot := newSnapshot("123")
		require.NoError(t, sessionRepo.CreateOrUpdate(ctx, snapshot))

		// When: GetByID is called with existing ID
		retrieved, err := sessionRepo.GetByID(ctx, snapshot.ID)

		// Then: the retrieved snapshot should match the saved one
		require.NoError(t, err)
		assert.Equal(t, snapshot, retrieved)
	})

	t.Run("GetByID_NotFound", func(t *testing.T) {
		ctx, st := suite.New(t)

		sessionRepo := NewSessionRepository(st.Storage, 0)

		// When: GetByID is called with non-existent ID
		retrieved, err := sessionRepo.GetByID(ctx, "9999999")

		// Then: an ErrSessionNotFound error should be returned
		require.ErrorIs(t, err, apperror.ErrSessionNotFound)
		assert.Nil(t, retrieved)
	})

	t.Run("GetByID_Corrupt", func(t *testing.T) {
		ctx, st := suite.New(t)

		sessionRepo := NewSessionRepository(st.Storage, 0)

		// Given: a stored value with an unknown mark
		require.NoError(t, st.Storage.Set(ctx, "session:bad", `{"id":"bad","board":["Z"]}`, 0).Err())

		// When: GetByID is called
		_, err := sessionRepo.GetByID(ctx, "bad")

		// Then: the decoding error is returned
		require.ErrorIs(t, err, apperror.ErrInvalidMark)
	})
}

func TestSessionRepository_DeleteByID(t *testing.T) {
	t.Run("DeleteByID_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		sessionRepo := NewSessionRepository(st.Storage, 0)

		// Given: a stored snapshot
		snapshot := newSnapshot("123")
		require.NoError(t, sessionRepo.CreateOrUpdate(ctx, snapshot))

		// When: DeleteByID is called with existing ID
		err := sessionRepo.DeleteByID(ctx, snapshot.ID)

		// Then: no error should be returned and the snapshot is gone
		require.NoError(t, err)

		_, err = sessionRepo.GetByID(ctx, snapshot.ID)
		require.ErrorIs(t, err, apperror.ErrSessionNotFound)
	})

	t.Run("DeleteByID_NotFound", func(t *testing.T) {
		ctx, st := suite.New(t)

		sessionRepo := NewSessionRepository(st.Storage, 0)

		// When: DeleteByID is called with non-existent ID
		err := sessionRepo.DeleteByID(ctx, "9999999")

		// Then: an ErrSessionNotFound error should be returned
		require.ErrorIs(t, err, apperror.ErrSessionNotFound)
	})
}
