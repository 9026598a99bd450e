package logic

import (
	"context"
	"log/slog"

	"github.com/USBABC1/v60/models"
)

// HistoryLogic handles session history reads and clearing
type HistoryLogic struct {
	messages  MessageStore
	snapshots SnapshotStore
	logger    *slog.Logger
}

func NewHistoryLogic(messages MessageStore, snapshots SnapshotStore, logger *slog.Logger) *HistoryLogic {
	return &HistoryLogic{messages: messages, snapshots: snapshots, logger: logger}
}

// GetSessionMessages retrieves the full ordered history of a session
func (l *HistoryLogic) GetSessionMessages(ctx context.Context, sessionID string) ([]models.Message, error) {
	messages, err := l.messages.GetAll(ctx, sessionID)
	if err != nil {
		return nil, &StorageError{Op: "read", Err: err}
	}
	return messages, nil
}

// ClearSession removes a session's history and any snapshots pointing at it
func (l *HistoryLogic) ClearSession(ctx context.Context, sessionID string) error {
	if err := l.messages.DeleteBySession(ctx, sessionID); err != nil {
		return &StorageError{Op: "delete", Err: err}
	}
	// A snapshot of an emptied session would reload a blank conversation
	if err := l.snapshots.DeleteBySession(ctx, sessionID); err != nil {
		l.logger.Error("failed to delete snapshots of cleared session",
			"session_id", sessionID, "error", err)
	}
	return nil
}
