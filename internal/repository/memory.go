package repository

import (
	"context"
	"sync"

	"github.com/rocketscienceinc/tictactoe-solo/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-solo/internal/entity"
)

// memorySession keeps snapshots for the lifetime of the process.
type memorySession struct {
	mu        sync.RWMutex
	snapshots map[string]entity.Snapshot
}

func NewMemorySessionRepository() SessionRepository {
	return &memorySession{
		snapshots: make(map[string]entity.Snapshot),
	}
}

func (that *memorySession) CreateOrUpdate(_ context.Context, snapshot *entity.Snapshot) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.snapshots[snapshot.ID] = *snapshot

	return nil
}

func (that *memorySession) GetByID(_ context.Context, id string) (*entity.Snapshot, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	snapshot, ok := that.snapshots[id]
	if !ok {
		return nil, apperror.ErrSessionNotFound
	}

	return &snapshot, nil
}

func (that *memorySession) DeleteByID(_ context.Context, id string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.snapshots[id]; !ok {
		return apperror.ErrSessionNotFound
	}

	delete(that.snapshots, id)

	return nil
}
