package browser

import (
	"context"
	"fmt"
)

const (
	BackendPlaywright = "playwright"
	BackendChromedp   = "chromedp"
	BackendSnapshot   = "snapshot"
)

// Options selects and configures a backend.
type Options struct {
	Backend      string
	Headless     bool
	SnapshotPath string
}

// Open starts a session for the configured backend. The caller owns the
// returned driver and must Close it.
func Open(ctx context.Context, opts Options) (Driver, error) {
	switch opts.Backend {
	case "", BackendPlaywright:
		return OpenPlaywright(ctx, opts.Headless)
	case BackendChromedp:
		return OpenChrome(ctx, opts.Headless)
	case BackendSnapshot:
		if opts.SnapshotPath == "" {
			return nil, fmt.Errorf("snapshot backend needs a snapshot path")
		}
		return OpenSnapshot(opts.SnapshotPath)
	default:
		return nil, fmt.Errorf("unknown browser backend %q", opts.Backend)
	}
}
