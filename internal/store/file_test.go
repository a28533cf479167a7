package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alexanderramin/focusd/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	return NewFileStore(filepath.Join(t.TempDir(), "sessions"))
}

func newTestSession(id string, start time.Time) *domain.Session {
	sess := domain.NewSession(id, start)
	sess.Tags = append(sess.Tags, "test")
	return sess
}

func TestFileStore_SaveAndLoad(t *testing.T) {
	s := newTestStore(t)
	start := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	sess := newTestSession("", start)
	sess.FocusPeriods = append(sess.FocusPeriods, domain.Interval{
		Start:    start,
		End:      start.Add(40 * time.Second),
		Duration: 40,
	})
	require.NoError(t, s.Save(sess))

	loaded, err := s.Load(sess.ID)
	require.NoError(t, err)
	assert.Equal(t, sess.ID, loaded.ID)
	assert.Equal(t, domain.SessionActive, loaded.Status)
	assert.Len(t, loaded.FocusPeriods, 1)
	assert.Equal(t, 40.0, loaded.FocusPeriods[0].Duration)
	assert.True(t, loaded.StartTime.Equal(start))
	assert.Nil(t, loaded.EndTime)
}

func TestFileStore_Load_NotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Load("nonexistent")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileStore_RoundTripIsStable(t *testing.T) {
	s := newTestStore(t)
	start := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	sess := newTestSession("stable", start)
	sess.CheckIns = append(sess.CheckIns, domain.CheckIn{
		Timestamp: start.Add(time.Minute),
		Kind:      domain.CheckInManual,
		Question:  "How's progress?",
		Response:  "good",
	})
	sess.AppendNote(start.Add(2*time.Minute), "note one")
	require.NoError(t, s.Save(sess))

	// save(load(id)) twice must not mutate the persisted document.
	first, err := s.Load("stable")
	require.NoError(t, err)
	require.NoError(t, s.Save(first))
	bytesOne, err := os.ReadFile(filepath.Join(s.root, "stable", sessionFileName))
	require.NoError(t, err)

	second, err := s.Load("stable")
	require.NoError(t, err)
	require.NoError(t, s.Save(second))
	bytesTwo, err := os.ReadFile(filepath.Join(s.root, "stable", sessionFileName))
	require.NoError(t, err)

	assert.Equal(t, bytesOne, bytesTwo)
}

func TestFileStore_ListNewestFirstWithLimit(t *testing.T) {
	s := newTestStore(t)
	base := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 4; i++ {
		require.NoError(t, s.Save(newTestSession("", base.Add(time.Duration(i)*time.Hour))))
	}

	sessions, err := s.List(3)
	require.NoError(t, err)
	require.Len(t, sessions, 3)
	assert.Equal(t, "20250601_120000", sessions[0].ID)
	assert.Equal(t, "20250601_110000", sessions[1].ID)
	assert.Equal(t, "20250601_100000", sessions[2].ID)
}

func TestFileStore_List_EmptyRoot(t *testing.T) {
	s := newTestStore(t)
	sessions, err := s.List(10)
	require.NoError(t, err)
	assert.Empty(t, sessions)
}

func TestFileStore_LatestActive(t *testing.T) {
	s := newTestStore(t)
	base := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	done := newTestSession("", base.Add(2*time.Hour))
	done.Status = domain.SessionCompleted
	require.NoError(t, s.Save(done))

	active := newTestSession("", base)
	require.NoError(t, s.Save(active))

	latest, err := s.LatestActive()
	require.NoError(t, err)
	assert.Equal(t, active.ID, latest.ID)
}

func TestFileStore_LatestActive_NoneActive(t *testing.T) {
	s := newTestStore(t)
	done := newTestSession("done", time.Now())
	done.Status = domain.SessionCompleted
	require.NoError(t, s.Save(done))

	_, err := s.LatestActive()
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileStore_Delete(t *testing.T) {
	s := newTestStore(t)
	sess := newTestSession("gone", time.Now())
	require.NoError(t, s.Save(sess))

	ok, err := s.Delete("gone")
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = s.Load("gone")
	assert.ErrorIs(t, err, ErrNotFound)

	ok, err = s.Delete("gone")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFileStore_ArchiveClassification(t *testing.T) {
	s := newTestStore(t)
	sess := newTestSession("arch", time.Now())
	require.NoError(t, s.Save(sess))

	ts := time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)
	res := &domain.ClassificationResult{
		Content:      "The user is coding in an editor",
		Timestamp:    ts,
		ImagePath:    "screen_1.jpg",
		IsProductive: true,
		DetectedApps: []string{"VS Code"},
		AutoCapture:  true,
	}
	require.NoError(t, s.ArchiveClassification("arch", res))

	path := filepath.Join(s.root, "arch", analysisDirName, "analysis_20250601_093000.json")
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded domain.ClassificationResult
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, decoded.IsProductive)
	assert.Equal(t, []string{"VS Code"}, decoded.DetectedApps)
}
