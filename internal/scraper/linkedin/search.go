package linkedin

import (
	"context"
	"errors"
	"log"
	"time"

	"go-jobsearch-automation/internal/browser"
	"go-jobsearch-automation/internal/wait"
)

// SearchController types a term into the jobs search box and submits it with Enter.
type SearchController struct {
	poller  *wait.Poller
	locator Locator
	timeout time.Duration
}

func NewSearchController(poller *wait.Poller, locator Locator, timeout time.Duration) *SearchController {
	return &SearchController{poller: poller, locator: locator, timeout: timeout}
}

// Submit is best effort: failures are logged and reported as false, never returned.
func (c *SearchController) Submit(ctx context.Context, term string) bool {
	input, err := c.poller.Await(ctx, wait.PresenceOf(c.locator.SearchInput()), c.timeout)
	if err != nil {
		if errors.Is(err, wait.ErrTimeout) {
			log.Println("⚠️ Could not find the search input.")
		} else {
			log.Printf("⚠️ Error waiting for the search input: %v", err)
		}
		return false
	}

	if err := c.fill(ctx, input, term); err != nil {
		log.Printf("⚠️ Error submitting the search: %v", err)
		return false
	}

	log.Printf("🔍 Search submitted: %q", term)
	return true
}

func (c *SearchController) fill(ctx context.Context, input browser.Element, term string) error {
	if err := input.Clear(ctx); err != nil {
		return err
	}
	if err := input.Type(ctx, term); err != nil {
		return err
	}
	return input.Press(ctx, browser.KeyEnter)
}
