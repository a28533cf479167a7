package store

import (
	"github.com/alexanderramin/focusd/internal/domain"
)

// Store persists full session documents and per-classification archives.
// Save has overwrite semantics: the last write wins, documents are never
// merged.
type Store interface {
	Save(sess *domain.Session) error
	Load(id string) (*domain.Session, error)
	List(limit int) ([]*domain.Session, error)
	Delete(id string) (bool, error)
	ArchiveClassification(sessionID string, res *domain.ClassificationResult) error
}
