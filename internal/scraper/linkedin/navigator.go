package linkedin

import (
	"context"
	"fmt"
	"log"

	"go-jobsearch-automation/internal/browser"
)

// Navigator loads the two pages the workflow visits.
type Navigator struct {
	driver  browser.Driver
	locator Locator
}

func NewNavigator(d browser.Driver, locator Locator) *Navigator {
	return &Navigator{driver: d, locator: locator}
}

func (n *Navigator) OpenLanding(ctx context.Context) error {
	log.Printf("🏠 Opening %s", n.locator.LandingPage())
	if err := n.driver.Navigate(ctx, n.locator.LandingPage()); err != nil {
		return fmt.Errorf("failed to open landing page: %w", err)
	}
	return nil
}

func (n *Navigator) OpenJobsListing(ctx context.Context) error {
	log.Printf("💼 Opening %s", n.locator.JobsPage())
	if err := n.driver.Navigate(ctx, n.locator.JobsPage()); err != nil {
		return fmt.Errorf("failed to open jobs page: %w", err)
	}
	return nil
}
