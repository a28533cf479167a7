package service

import (
	"context"

	"github.com/alexanderramin/focusd/internal/domain"
)

type HistoryService interface {
	RecordSession(ctx context.Context, sess *domain.Session) error
	GetBySessionID(ctx context.Context, sessionID string) (*domain.HistoryEntry, error)
	ListRecent(ctx context.Context, days int) ([]*domain.HistoryEntry, error)
	Stats(ctx context.Context) (*domain.HistoryStats, error)
	Delete(ctx context.Context, sessionID string) error
}
