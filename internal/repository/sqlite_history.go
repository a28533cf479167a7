package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/focusd/internal/domain"
)

// SQLiteHistoryRepo implements HistoryRepo using a SQLite database.
type SQLiteHistoryRepo struct {
	db *sql.DB
}

// NewSQLiteHistoryRepo creates a new SQLiteHistoryRepo.
func NewSQLiteHistoryRepo(db *sql.DB) *SQLiteHistoryRepo {
	return &SQLiteHistoryRepo{db: db}
}

// Record upserts the entry keyed by session id; re-recording a session
// replaces its row.
func (r *SQLiteHistoryRepo) Record(ctx context.Context, e *domain.HistoryEntry) error {
	query := `INSERT INTO session_history
		(session_id, start_time, end_time, duration_seconds, focus_seconds,
		 distraction_seconds, productivity_score, check_in_count, tags, summary, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(session_id) DO UPDATE SET
		 end_time = excluded.end_time,
		 duration_seconds = excluded.duration_seconds,
		 focus_seconds = excluded.focus_seconds,
		 distraction_seconds = excluded.distraction_seconds,
		 productivity_score = excluded.productivity_score,
		 check_in_count = excluded.check_in_count,
		 tags = excluded.tags,
		 summary = excluded.summary,
		 recorded_at = excluded.recorded_at`
	recordedAt := e.RecordedAt
	if recordedAt.IsZero() {
		recordedAt = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx, query,
		e.SessionID,
		e.StartTime.UTC().Format(time.RFC3339),
		e.EndTime.UTC().Format(time.RFC3339),
		e.DurationSeconds,
		e.FocusSeconds,
		e.DistractionSeconds,
		e.ProductivityScore,
		e.CheckInCount,
		strings.Join(e.Tags, ","),
		e.Summary,
		recordedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting history entry: %w", err)
	}
	return nil
}

func (r *SQLiteHistoryRepo) GetBySessionID(ctx context.Context, sessionID string) (*domain.HistoryEntry, error) {
	query := selectColumns + ` FROM session_history WHERE session_id = ?`
	row := r.db.QueryRowContext(ctx, query, sessionID)
	return scanEntry(row)
}

func (r *SQLiteHistoryRepo) ListRecent(ctx context.Context, days int) ([]*domain.HistoryEntry, error) {
	cutoff := time.Now().UTC().AddDate(0, 0, -days).Format(time.RFC3339)
	query := selectColumns + ` FROM session_history
		WHERE start_time >= ? ORDER BY start_time DESC`
	rows, err := r.db.QueryContext(ctx, query, cutoff)
	if err != nil {
		return nil, fmt.Errorf("listing recent history: %w", err)
	}
	defer rows.Close()

	var entries []*domain.HistoryEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *SQLiteHistoryRepo) Stats(ctx context.Context) (*domain.HistoryStats, error) {
	query := `SELECT COUNT(*),
		COALESCE(SUM(focus_seconds), 0),
		COALESCE(SUM(distraction_seconds), 0),
		COALESCE(AVG(productivity_score), 0)
		FROM session_history`
	var stats domain.HistoryStats
	err := r.db.QueryRowContext(ctx, query).Scan(
		&stats.TotalSessions,
		&stats.TotalFocusSeconds,
		&stats.TotalDistraction,
		&stats.AverageScore,
	)
	if err != nil {
		return nil, fmt.Errorf("computing history stats: %w", err)
	}
	if total := stats.TotalFocusSeconds + stats.TotalDistraction; total > 0 {
		stats.AverageFocusShare = stats.TotalFocusSeconds / total * 100
	}
	return &stats, nil
}

func (r *SQLiteHistoryRepo) Delete(ctx context.Context, sessionID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM session_history WHERE session_id = ?`, sessionID)
	if err != nil {
		return fmt.Errorf("deleting history entry: %w", err)
	}
	return nil
}

const selectColumns = `SELECT session_id, start_time, end_time, duration_seconds,
	focus_seconds, distraction_seconds, productivity_score, check_in_count,
	tags, summary, recorded_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (*domain.HistoryEntry, error) {
	var e domain.HistoryEntry
	var start, end, recorded, tags string
	err := row.Scan(
		&e.SessionID, &start, &end, &e.DurationSeconds,
		&e.FocusSeconds, &e.DistractionSeconds, &e.ProductivityScore,
		&e.CheckInCount, &tags, &e.Summary, &recorded,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("history entry: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning history entry: %w", err)
	}

	if e.StartTime, err = time.Parse(time.RFC3339, start); err != nil {
		return nil, fmt.Errorf("parsing start time: %w", err)
	}
	if e.EndTime, err = time.Parse(time.RFC3339, end); err != nil {
		return nil, fmt.Errorf("parsing end time: %w", err)
	}
	if e.RecordedAt, err = time.Parse(time.RFC3339, recorded); err != nil {
		return nil, fmt.Errorf("parsing recorded time: %w", err)
	}
	if tags != "" {
		e.Tags = strings.Split(tags, ",")
	}
	return &e, nil
}
