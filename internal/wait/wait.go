// Bounded polling on DOM conditions.
// A wait either yields an element or fails with ErrTimeout once its budget is spent.

package wait

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go-jobsearch-automation/internal/browser"
)

// DefaultInterval is how often a condition is re-checked.
const DefaultInterval = 500 * time.Millisecond

// ErrTimeout is matched by every TimeoutError.
var ErrTimeout = errors.New("wait timed out")

// TimeoutError reports which condition did not hold in time.
type TimeoutError struct {
	Condition string
	Timeout   time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("timed out after %v waiting for %s", e.Timeout, e.Condition)
}

func (e *TimeoutError) Is(target error) bool {
	return target == ErrTimeout || target == browser.ErrTimeout
}

// Condition is checked on every poll. It returns a nil element while the
// condition does not hold yet.
type Condition interface {
	Check(ctx context.Context, d browser.Driver) (browser.Element, error)
	String() string
}

// Poller runs conditions against one driver.
type Poller struct {
	driver   browser.Driver
	interval time.Duration
}

func NewPoller(d browser.Driver, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Poller{driver: d, interval: interval}
}

// Await blocks until cond yields an element or timeout elapses.
// ErrNotFound and ErrStale from the condition keep the poll going; any other
// error ends the wait immediately.
func (p *Poller) Await(ctx context.Context, cond Condition, timeout time.Duration) (browser.Element, error) {
	waitCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		el, err := cond.Check(waitCtx, p.driver)
		switch {
		case err == nil && el != nil:
			return el, nil
		case err == nil, errors.Is(err, browser.ErrNotFound), errors.Is(err, browser.ErrStale):
			//not yet
		case waitCtx.Err() != nil:
			//the driver call was cut short by the deadline, handled below
		default:
			return nil, fmt.Errorf("waiting for %s: %w", cond, err)
		}

		select {
		case <-waitCtx.Done():
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			return nil, &TimeoutError{Condition: cond.String(), Timeout: timeout}
		case <-ticker.C:
		}
	}
}

type presence struct {
	selector string
}

// PresenceOf holds once selector matches an element in the document.
func PresenceOf(selector string) Condition {
	return presence{selector: selector}
}

func (c presence) Check(ctx context.Context, d browser.Driver) (browser.Element, error) {
	return d.FindElement(ctx, c.selector)
}

func (c presence) String() string {
	return fmt.Sprintf("presence of %q", c.selector)
}

type visibility struct {
	selector string
}

// VisibilityOf holds once the first match of selector is rendered visible.
func VisibilityOf(selector string) Condition {
	return visibility{selector: selector}
}

func (c visibility) Check(ctx context.Context, d browser.Driver) (browser.Element, error) {
	el, err := d.FindElement(ctx, c.selector)
	if err != nil {
		return nil, err
	}
	visible, err := el.Visible(ctx)
	if err != nil {
		return nil, err
	}
	if !visible {
		return nil, nil
	}
	return el, nil
}

func (c visibility) String() string {
	return fmt.Sprintf("visibility of %q", c.selector)
}
