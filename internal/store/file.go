package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/alexanderramin/focusd/internal/domain"
)

const (
	sessionFileName = "session.json"
	analysisDirName = "analysis"
	capturesDirName = "captures"
)

// FileStore implements Store with one directory per session under root:
//
//	<root>/<session_id>/session.json
//	<root>/<session_id>/analysis/analysis_<timestamp>.json
//	<root>/<session_id>/captures/
type FileStore struct {
	root string
}

// NewFileStore creates a FileStore rooted at dir. The directory itself is
// created lazily on first save.
func NewFileStore(dir string) *FileStore {
	return &FileStore{root: dir}
}

func (s *FileStore) sessionDir(id string) string {
	return filepath.Join(s.root, id)
}

// CapturesDir returns the screenshot directory for a session, creating it
// if necessary.
func (s *FileStore) CapturesDir(id string) (string, error) {
	dir := filepath.Join(s.sessionDir(id), capturesDirName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating captures directory: %w", err)
	}
	return dir, nil
}

func (s *FileStore) Save(sess *domain.Session) error {
	dir := s.sessionDir(sess.ID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating session directory: %w", err)
	}
	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding session document: %w", err)
	}
	return writeAtomic(filepath.Join(dir, sessionFileName), data)
}

func (s *FileStore) Load(id string) (*domain.Session, error) {
	data, err := os.ReadFile(filepath.Join(s.sessionDir(id), sessionFileName))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("session %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("reading session document: %w", err)
	}
	var sess domain.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("decoding session document: %w", err)
	}
	return &sess, nil
}

// List returns up to limit stored sessions, newest first. Session IDs are
// timestamp-derived, so lexicographic order is chronological. Entries whose
// document is missing or unreadable are skipped.
func (s *FileStore) List(limit int) ([]*domain.Session, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading session root: %w", err)
	}

	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			ids = append(ids, e.Name())
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(ids)))

	var sessions []*domain.Session
	for _, id := range ids {
		if limit > 0 && len(sessions) >= limit {
			break
		}
		sess, err := s.Load(id)
		if err != nil {
			continue
		}
		sessions = append(sessions, sess)
	}
	return sessions, nil
}

// LatestActive returns the most recent session still in active status, or
// ErrNotFound if none exists.
func (s *FileStore) LatestActive() (*domain.Session, error) {
	sessions, err := s.List(0)
	if err != nil {
		return nil, err
	}
	for _, sess := range sessions {
		if sess.Status == domain.SessionActive {
			return sess, nil
		}
	}
	return nil, fmt.Errorf("active session: %w", ErrNotFound)
}

// Delete removes all storage for the session. Returns false, not an error,
// when the session does not exist.
func (s *FileStore) Delete(id string) (bool, error) {
	dir := s.sessionDir(id)
	if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err := os.RemoveAll(dir); err != nil {
		return false, fmt.Errorf("deleting session %s: %w", id, err)
	}
	return true, nil
}

// ArchiveClassification stores the raw classification payload for
// audit/replay, one document per event, named by capture timestamp.
func (s *FileStore) ArchiveClassification(sessionID string, res *domain.ClassificationResult) error {
	dir := filepath.Join(s.sessionDir(sessionID), analysisDirName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating analysis directory: %w", err)
	}
	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding classification result: %w", err)
	}
	name := fmt.Sprintf("analysis_%s.json", res.Timestamp.Format(domain.SessionIDLayout))
	return writeAtomic(filepath.Join(dir, name), data)
}

// writeAtomic writes data to path via a temp file and rename so readers
// never observe a partial document.
func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("writing document: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replacing document: %w", err)
	}
	return nil
}
