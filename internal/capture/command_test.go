package capture

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandProvider_IntervalGate(t *testing.T) {
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	dir := t.TempDir()
	// "true" succeeds without producing a file; good enough to exercise the
	// gating logic.
	p := NewCommandProvider(dir, 10*time.Second, "true", clock)

	path, err := p.Capture(context.Background(), true)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "screen_20250601_090000.png"), path)

	// Unforced call within the interval returns no image and no error.
	now = now.Add(5 * time.Second)
	path, err = p.Capture(context.Background(), false)
	require.NoError(t, err)
	assert.Empty(t, path)

	// Forced call ignores the interval.
	path, err = p.Capture(context.Background(), true)
	require.NoError(t, err)
	assert.NotEmpty(t, path)

	// Once the interval elapses an unforced call captures again.
	now = now.Add(10 * time.Second)
	path, err = p.Capture(context.Background(), false)
	require.NoError(t, err)
	assert.NotEmpty(t, path)
}

func TestCommandProvider_CommandFailure(t *testing.T) {
	p := NewCommandProvider(t.TempDir(), 0, "false", nil)
	_, err := p.Capture(context.Background(), true)
	assert.Error(t, err)
}

func TestCommandProvider_CommandPathPlaceholder(t *testing.T) {
	dir := t.TempDir()
	p := NewCommandProvider(dir, 0, "touch {path}", nil)

	path, err := p.Capture(context.Background(), true)
	require.NoError(t, err)

	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestStaticProvider(t *testing.T) {
	p := &StaticProvider{Path: "/tmp/fixed.png"}
	path, err := p.Capture(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/fixed.png", path)
}
