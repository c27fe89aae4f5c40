// Driver boundary shared by every browser backend.
// Scraper code only talks to these interfaces so that a backend can be
// swapped without touching page logic.

package browser

import (
	"context"
	"errors"
)

var (
	// ErrNotFound means no element matched the selector.
	ErrNotFound = errors.New("element not found")

	// ErrStale means a previously located element is no longer attached to the document.
	ErrStale = errors.New("stale element reference")

	// ErrTimeout means the driver gave up waiting on an operation.
	ErrTimeout = errors.New("timeout")
)

// Driver is the capability set the scraper needs from a browser session.
type Driver interface {
	//Navigate loads url in the current tab
	Navigate(ctx context.Context, url string) error

	//FindElement returns the first match for selector or ErrNotFound
	FindElement(ctx context.Context, selector string) (Element, error)

	//FindElements returns every match for selector, possibly none
	FindElements(ctx context.Context, selector string) ([]Element, error)

	//Close releases the session
	Close() error
}

// Element is a handle to one node of the current document.
type Element interface {
	Text(ctx context.Context) (string, error)
	Visible(ctx context.Context) (bool, error)
	Clear(ctx context.Context) error
	Type(ctx context.Context, text string) error
	Press(ctx context.Context, key string) error
	Click(ctx context.Context) error

	//FindElement searches below this element
	FindElement(ctx context.Context, selector string) (Element, error)
}

// Screenshotter is implemented by sessions that can capture the page.
type Screenshotter interface {
	Screenshot(path string) error
}

// KeyEnter is the key name used to submit an input.
const KeyEnter = "Enter"
