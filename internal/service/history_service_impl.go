package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/focusd/internal/domain"
	"github.com/alexanderramin/focusd/internal/repository"
)

type historyService struct {
	history repository.HistoryRepo
}

func NewHistoryService(history repository.HistoryRepo) HistoryService {
	return &historyService{history: history}
}

// RecordSession flattens a completed session into the history index.
// Active sessions are rejected; the index only holds finished work.
func (s *historyService) RecordSession(ctx context.Context, sess *domain.Session) error {
	if sess.Status != domain.SessionCompleted {
		return fmt.Errorf("session %s is not completed", sess.ID)
	}
	entry := domain.HistoryFromSession(sess)
	entry.RecordedAt = time.Now().UTC()
	return s.history.Record(ctx, &entry)
}

func (s *historyService) GetBySessionID(ctx context.Context, sessionID string) (*domain.HistoryEntry, error) {
	return s.history.GetBySessionID(ctx, sessionID)
}

func (s *historyService) ListRecent(ctx context.Context, days int) ([]*domain.HistoryEntry, error) {
	return s.history.ListRecent(ctx, days)
}

func (s *historyService) Stats(ctx context.Context) (*domain.HistoryStats, error) {
	return s.history.Stats(ctx)
}

func (s *historyService) Delete(ctx context.Context, sessionID string) error {
	return s.history.Delete(ctx, sessionID)
}
