// Package capture obtains screenshots for classification. The mechanism is
// deliberately thin: the tracking core only needs zero-or-one new image
// handle per request.
package capture

import "context"

// Provider captures the screen on demand. A ("", nil) return means no new
// image is due; it must be safe to call when nothing is due. When force is
// false the provider honors its minimum capture interval.
type Provider interface {
	Capture(ctx context.Context, force bool) (string, error)
}
