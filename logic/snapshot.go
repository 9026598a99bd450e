package logic

import (
	"context"
	"fmt"

	"github.com/USBABC1/v60/models"
)

// SnapshotStore is the saved-conversation collaborator consumed by the manager.
type SnapshotStore interface {
	Create(ctx context.Context, sc *models.SavedConversation) error
	ListByUser(ctx context.Context, userID uint64) ([]models.SavedConversation, error)
	GetByID(ctx context.Context, id, userID uint64) (*models.SavedConversation, error)
	FindByUserSession(ctx context.Context, userID uint64, sessionID string) (*models.SavedConversation, error)
	FindByUserName(ctx context.Context, userID uint64, name string) (*models.SavedConversation, error)
	Delete(ctx context.Context, id, userID uint64) (bool, error)
	DeleteBySession(ctx context.Context, sessionID string) error
}

// SnapshotLogic handles saved-conversation business logic
type SnapshotLogic struct {
	snapshots SnapshotStore
}

func NewSnapshotLogic(snapshots SnapshotStore) *SnapshotLogic {
	return &SnapshotLogic{snapshots: snapshots}
}

// Save snapshots a session under a user-chosen name. Conflicts distinguish a
// reused name from an already-saved session.
func (l *SnapshotLogic) Save(ctx context.Context, userID uint64, sessionID, name string) (*models.SavedConversation, error) {
	existing, err := l.snapshots.FindByUserName(ctx, userID, name)
	if err != nil {
		return nil, &StorageError{Op: "read", Err: err}
	}
	if existing != nil {
		return nil, &ConflictError{
			Kind:    ConflictName,
			Message: fmt.Sprintf("Já existe uma conversa salva com o nome \"%s\".", name),
		}
	}

	existing, err = l.snapshots.FindByUserSession(ctx, userID, sessionID)
	if err != nil {
		return nil, &StorageError{Op: "read", Err: err}
	}
	if existing != nil {
		return nil, &ConflictError{
			Kind:    ConflictSession,
			Message: fmt.Sprintf("Esta conversa (Session ID: %s) já foi salva.", sessionID),
		}
	}

	sc := &models.SavedConversation{
		UserID:    userID,
		SessionID: sessionID,
		Name:      name,
	}
	if err := l.snapshots.Create(ctx, sc); err != nil {
		return nil, &StorageError{Op: "create", Err: err}
	}
	return sc, nil
}

// List retrieves a user's snapshots, newest first
func (l *SnapshotLogic) List(ctx context.Context, userID uint64) ([]models.SavedConversation, error) {
	convos, err := l.snapshots.ListByUser(ctx, userID)
	if err != nil {
		return nil, &StorageError{Op: "read", Err: err}
	}
	return convos, nil
}

// Get retrieves one snapshot, verifying ownership
func (l *SnapshotLogic) Get(ctx context.Context, userID, id uint64) (*models.SavedConversation, error) {
	sc, err := l.snapshots.GetByID(ctx, id, userID)
	if err != nil {
		return nil, &StorageError{Op: "read", Err: err}
	}
	if sc == nil {
		return nil, &NotFoundError{
			Resource: "saved_conversation",
			Message:  "Conversa salva não encontrada ou não pertence ao usuário.",
		}
	}
	return sc, nil
}

// Load resolves a snapshot to the session id the caller should switch to
func (l *SnapshotLogic) Load(ctx context.Context, userID, id uint64) (string, error) {
	sc, err := l.Get(ctx, userID, id)
	if err != nil {
		return "", err
	}
	return sc.SessionID, nil
}

// Delete removes a snapshot after an ownership check. It reports whether the
// snapshot referenced the caller's active session; starting a new session
// stays the caller's decision.
func (l *SnapshotLogic) Delete(ctx context.Context, userID, id uint64, activeSessionID string) (bool, error) {
	sc, err := l.snapshots.GetByID(ctx, id, userID)
	if err != nil {
		return false, &StorageError{Op: "read", Err: err}
	}
	if sc == nil {
		return false, &NotFoundError{
			Resource: "saved_conversation",
			Message:  "Conversa salva não encontrada ou não pertence ao usuário.",
		}
	}

	deleted, err := l.snapshots.Delete(ctx, id, userID)
	if err != nil {
		return false, &StorageError{Op: "delete", Err: err}
	}
	if !deleted {
		return false, &NotFoundError{
			Resource: "saved_conversation",
			Message:  "Conversa salva não encontrada ou não pertence ao usuário.",
		}
	}

	wasActive := activeSessionID != "" && sc.SessionID == activeSessionID
	return wasActive, nil
}
