package domain

import (
	"fmt"
	"time"
)

// SessionIDLayout is the timestamp layout used for generated session IDs.
// Lexicographic order of generated IDs matches chronological order.
const SessionIDLayout = "20060102_150405"

// Session is the full persisted state of one focus session. Field tags
// match the on-disk session document schema.
type Session struct {
	ID                 string        `json:"session_id"`
	StartTime          time.Time     `json:"start_time"`
	EndTime            *time.Time    `json:"end_time"`
	Duration           float64       `json:"duration"`
	Status             SessionStatus `json:"status"`
	ProductivityScore  int           `json:"productivity_score"`
	FocusPeriods       []Interval    `json:"focus_periods"`
	DistractionPeriods []Interval    `json:"distraction_periods"`
	CheckIns           []CheckIn     `json:"check_ins"`
	Summary            string        `json:"summary"`
	Tags               []string      `json:"tags"`
	Notes              string        `json:"notes"`
}

// Interval is a closed focus or distraction period. Immutable once appended.
type Interval struct {
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Duration float64   `json:"duration"`
}

// CheckIn records one prompt/response event. Append-only, arrival order.
type CheckIn struct {
	ID        string      `json:"id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Kind      CheckInKind `json:"kind"`
	Question  string      `json:"question"`
	Response  string      `json:"response"`
}

// ClassificationResult is the external verdict for one capture. It is not
// part of the session document; it is archived separately per event.
type ClassificationResult struct {
	Content            string    `json:"content"`
	Timestamp          time.Time `json:"timestamp"`
	ImagePath          string    `json:"image_path"`
	IsProductive       bool      `json:"is_productive"`
	DetectedApps       []string  `json:"detected_apps"`
	DetectedActivities []string  `json:"detected_activities"`
	AutoCapture        bool      `json:"auto_capture"`
}

// NewSession creates an active session starting at start. If id is empty a
// timestamp-derived ID is generated from start.
func NewSession(id string, start time.Time) *Session {
	if id == "" {
		id = start.Format(SessionIDLayout)
	}
	return &Session{
		ID:                 id,
		StartTime:          start,
		Status:             SessionActive,
		FocusPeriods:       []Interval{},
		DistractionPeriods: []Interval{},
		CheckIns:           []CheckIn{},
		Tags:               []string{},
	}
}

// HasTag reports whether tag is already present.
func (s *Session) HasTag(tag string) bool {
	for _, t := range s.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// AppendNote appends a timestamp-prefixed note line.
func (s *Session) AppendNote(ts time.Time, text string) {
	line := fmt.Sprintf("[%s] %s", ts.Format(time.RFC3339), text)
	if s.Notes != "" {
		s.Notes += "\n" + line
	} else {
		s.Notes = line
	}
}

// Clone returns a deep copy, safe to read without holding the owner's lock.
func (s *Session) Clone() *Session {
	out := *s
	if s.EndTime != nil {
		end := *s.EndTime
		out.EndTime = &end
	}
	out.FocusPeriods = append([]Interval(nil), s.FocusPeriods...)
	out.DistractionPeriods = append([]Interval(nil), s.DistractionPeriods...)
	out.CheckIns = append([]CheckIn(nil), s.CheckIns...)
	out.Tags = append([]string(nil), s.Tags...)
	return &out
}
