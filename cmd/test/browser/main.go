package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"go-jobsearch-automation/internal/browser"
	"go-jobsearch-automation/internal/config"
	"go-jobsearch-automation/internal/scraper/linkedin"
	"go-jobsearch-automation/internal/wait"
)

func main() {
	fmt.Println("🌐 Testing browser session...")
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	d, err := browser.Open(ctx, browser.Options{
		Backend:      cfg.Browser.Driver,
		Headless:     cfg.Browser.Headless,
		SnapshotPath: cfg.Browser.SnapshotPath,
	})
	if err != nil {
		log.Fatalf("Failed to open %s session: %v", cfg.Browser.Driver, err)
	}
	defer d.Close()
	fmt.Printf("✅ %s session started\n", cfg.Browser.Driver)

	locator := linkedin.DefaultLocator().WithURLs(cfg.LandingURL, cfg.JobsURL)
	fmt.Printf("🔍 Navigating to %s...\n", locator.LandingPage())
	if err := d.Navigate(ctx, locator.LandingPage()); err != nil {
		log.Fatalf("Failed to navigate: %v", err)
	}

	//check the login form rendered
	poller := wait.NewPoller(d, cfg.Timeouts.PollInterval)
	if _, err := poller.Await(ctx, wait.VisibilityOf(locator.IdentifierInput()), cfg.Timeouts.Wait); err != nil {
		fmt.Printf("⚠️ Login form not visible: %v\n", err)
	} else {
		fmt.Println("✅ Login form visible")
	}

	//take screenshot
	path, err := browser.NewScreenShotDebugger(cfg.ScreenshotDir).CaptureAndLog(d, "browser-test", "Smoke test screenshot")
	if err != nil {
		log.Printf("Failed to take screenshot: %v", err)
	} else if path != "" {
		fmt.Printf("📸 Screenshot saved: %s\n", path)
	}
	fmt.Println("✨ Test complete!")
}
