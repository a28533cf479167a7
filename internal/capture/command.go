package capture

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"
)

// timestampLayout names capture files so directory order is chronological.
const timestampLayout = "20060102_150405"

// CommandProvider shells out to the platform screenshot tool and writes
// images under dir. It rate-limits itself to one capture per minInterval
// unless forced.
type CommandProvider struct {
	dir         string
	minInterval time.Duration
	command     string // optional override, "{path}" is replaced
	now         func() time.Time

	lastCapture time.Time
}

// NewCommandProvider creates a provider writing screenshots to dir. An
// empty command selects the platform default tool. A nil clock uses
// time.Now.
func NewCommandProvider(dir string, minInterval time.Duration, command string, now func() time.Time) *CommandProvider {
	if now == nil {
		now = time.Now
	}
	return &CommandProvider{dir: dir, minInterval: minInterval, command: command, now: now}
}

func (p *CommandProvider) Capture(ctx context.Context, force bool) (string, error) {
	current := p.now()
	if !force && current.Sub(p.lastCapture) < p.minInterval {
		return "", nil
	}

	path := filepath.Join(p.dir, fmt.Sprintf("screen_%s.png", current.Format(timestampLayout)))
	if err := p.run(ctx, path); err != nil {
		return "", err
	}

	p.lastCapture = current
	return path, nil
}

func (p *CommandProvider) run(ctx context.Context, path string) error {
	if p.command != "" {
		parts := strings.Fields(strings.ReplaceAll(p.command, "{path}", path))
		if len(parts) == 0 {
			return fmt.Errorf("empty capture command")
		}
		if out, err := exec.CommandContext(ctx, parts[0], parts[1:]...).CombinedOutput(); err != nil {
			return fmt.Errorf("capture command failed: %v: %s", err, out)
		}
		return nil
	}

	var attempts [][]string
	switch runtime.GOOS {
	case "darwin":
		attempts = [][]string{{"screencapture", "-x", path}}
	case "linux":
		attempts = [][]string{
			{"gnome-screenshot", "-f", path},
			{"scrot", path},
			{"import", "-window", "root", path},
		}
	default:
		return fmt.Errorf("no screenshot tool for %s", runtime.GOOS)
	}

	var lastErr error
	for _, argv := range attempts {
		if _, err := exec.LookPath(argv[0]); err != nil {
			lastErr = err
			continue
		}
		if out, err := exec.CommandContext(ctx, argv[0], argv[1:]...).CombinedOutput(); err != nil {
			lastErr = fmt.Errorf("%s failed: %v: %s", argv[0], err, out)
			continue
		}
		return nil
	}
	return fmt.Errorf("capturing screen: %w", lastErr)
}

// StaticProvider always returns the same image path. Useful for tests and
// headless runs where a fixed image stands in for the screen.
type StaticProvider struct {
	Path string
}

func (p *StaticProvider) Capture(ctx context.Context, force bool) (string, error) {
	return p.Path, nil
}
