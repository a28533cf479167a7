package testutil

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/alexanderramin/focusd/internal/domain"
	"github.com/alexanderramin/focusd/internal/store"
)

// FailingStore wraps a Store and injects failures on demand, enabling
// rollback and archive-failure tests.
type FailingStore struct {
	store.Store
	FailSave    bool
	FailArchive bool
}

func (f *FailingStore) Save(sess *domain.Session) error {
	if f.FailSave {
		return errors.New("injected save failure")
	}
	return f.Store.Save(sess)
}

func (f *FailingStore) ArchiveClassification(sessionID string, res *domain.ClassificationResult) error {
	if f.FailArchive {
		return errors.New("injected archive failure")
	}
	return f.Store.ArchiveClassification(sessionID, res)
}

// FakeProvider is a capture.Provider returning a scripted sequence of
// image paths. An empty string in the sequence means "no image"; Err, when
// set, is returned instead.
type FakeProvider struct {
	mu    sync.Mutex
	Paths []string
	Err   error
	Calls int
}

func (p *FakeProvider) Capture(ctx context.Context, force bool) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Calls++
	if p.Err != nil {
		return "", p.Err
	}
	if len(p.Paths) == 0 {
		return "", nil
	}
	path := p.Paths[0]
	p.Paths = p.Paths[1:]
	return path, nil
}

// FakeClassifier is a vision.Classifier returning a scripted sequence of
// results. When the sequence is exhausted the last result repeats. Err,
// when set, is returned instead.
type FakeClassifier struct {
	mu      sync.Mutex
	Results []*domain.ClassificationResult
	Err     error
	Calls   int
}

func (c *FakeClassifier) Classify(ctx context.Context, imagePath string) (*domain.ClassificationResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Calls++
	if c.Err != nil {
		return nil, c.Err
	}
	if len(c.Results) == 0 {
		return &domain.ClassificationResult{IsProductive: true, ImagePath: imagePath}, nil
	}
	res := c.Results[0]
	if len(c.Results) > 1 {
		c.Results = c.Results[1:]
	}
	out := *res
	out.ImagePath = imagePath
	return &out, nil
}

func (c *FakeClassifier) Available(ctx context.Context) bool { return c.Err == nil }

// NewTestResult builds a classification result with the given verdict and
// timestamp.
func NewTestResult(productive bool, ts time.Time) *domain.ClassificationResult {
	content := "The user is coding in an editor."
	if !productive {
		content = "The user is watching a video, a distraction."
	}
	return &domain.ClassificationResult{
		Content:      content,
		Timestamp:    ts,
		IsProductive: productive,
		AutoCapture:  true,
	}
}
