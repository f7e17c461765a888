package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/rocketscienceinc/tictactoe-solo/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-solo/internal/entity"
)

type sessionRepo interface {
	CreateOrUpdate(ctx context.Context, snapshot *entity.Snapshot) error
	GetByID(ctx context.Context, id string) (*entity.Snapshot, error)
	DeleteByID(ctx context.Context, id string) error
}

// OpponentFactory gives every session its own random source.
type OpponentFactory func() Opponent

// SessionManager hosts independent sessions and keeps the snapshot of every unfinished game
// in the repository so a restarted host can resume it.
type SessionManager struct {
	logger      *slog.Logger
	sessionRepo sessionRepo
	newOpponent OpponentFactory

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewSessionManager(logger *slog.Logger, sessionRepo sessionRepo, newOpponent OpponentFactory) *SessionManager {
	return &SessionManager{
		logger: logger.With("component", "session_manager"),

		sessionRepo: sessionRepo,
		newOpponent: newOpponent,
		sessions:    make(map[string]*Session),
	}
}

// StartSession creates a session with a fresh id and starts its first game.
func (that *SessionManager) StartSession(ctx context.Context) (string, *Session, error) {
	id := uuid.NewString()

	session := NewSession(that.newOpponent())
	session.Start()

	if err := that.saveSession(ctx, id, session); err != nil {
		return "", nil, fmt.Errorf("failed to start session: %w", err)
	}

	that.mu.Lock()
	that.sessions[id] = session
	that.mu.Unlock()

	that.logger.Info("session started", "sessionID", id)

	return id, session, nil
}

// Restart begins a new game in an existing session.
func (that *SessionManager) Restart(ctx context.Context, id string) (*Session, error) {
	session, err := that.GetSession(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	session.Start()

	if err = that.saveSession(ctx, id, session); err != nil {
		return nil, fmt.Errorf("failed to restart session: %w", err)
	}

	that.logger.Info("game restarted", "sessionID", id)

	return session, nil
}

// GetSession returns a live session, restoring it from the repository when it is not in memory.
func (that *SessionManager) GetSession(ctx context.Context, id string) (*Session, error) {
	that.mu.Lock()
	session, ok := that.sessions[id]
	that.mu.Unlock()

	if ok {
		return session, nil
	}

	snapshot, err := that.sessionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}

	session = NewSession(that.newOpponent())
	if err = session.Restore(snapshot); err != nil {
		return nil, fmt.Errorf("failed to restore session %s: %w", id, err)
	}

	that.mu.Lock()
	that.sessions[id] = session
	that.mu.Unlock()

	that.logger.Info("session resumed", "sessionID", id, "state", session.State().String())

	return session, nil
}

// SubmitMove plays a move in the session. The snapshot is dropped once the game ends.
func (that *SessionManager) SubmitMove(ctx context.Context, id string, pos entity.Position) (entity.MoveResult, error) {
	session, err := that.GetSession(ctx, id)
	if err != nil {
		return entity.MoveResult{}, fmt.Errorf("failed to get session: %w", err)
	}

	result, err := session.Play(pos)
	if err != nil {
		return result, fmt.Errorf("failed to play move: %w", err)
	}

	if !result.Applied() {
		return result, nil
	}

	if result.Outcome.IsFinal() {
		that.logger.Info("game finished", "sessionID", id, "outcome", result.Outcome.String())
		that.deleteSnapshot(ctx, id)

		return result, nil
	}

	if err = that.saveSession(ctx, id, session); err != nil {
		return result, fmt.Errorf("failed to save session: %w", err)
	}

	return result, nil
}

// CloseSession forgets the session and its snapshot.
func (that *SessionManager) CloseSession(ctx context.Context, id string) {
	that.mu.Lock()
	delete(that.sessions, id)
	that.mu.Unlock()

	that.deleteSnapshot(ctx, id)

	that.logger.Info("session closed", "sessionID", id)
}

func (that *SessionManager) saveSession(ctx context.Context, id string, session *Session) error {
	if err := that.sessionRepo.CreateOrUpdate(ctx, session.Snapshot(id)); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}

	return nil
}

func (that *SessionManager) deleteSnapshot(ctx context.Context, id string) {
	log := that.logger.With("method", "deleteSnapshot", "sessionID", id)

	err := that.sessionRepo.DeleteByID(ctx, id)
	if err != nil && !errors.Is(err, apperror.ErrSessionNotFound) {
		log.Error("failed to delete snapshot", "error", err)
	}
}
