// Sequences one scraping run over a single browser session:
// landing -> login -> post-login landmark -> jobs page -> search -> count -> scrape.

package workflow

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"go-jobsearch-automation/internal/browser"
	"go-jobsearch-automation/internal/config"
	"go-jobsearch-automation/internal/scraper"
	"go-jobsearch-automation/internal/scraper/linkedin"
	"go-jobsearch-automation/internal/wait"

	"github.com/google/uuid"
)

// SessionOpener acquires a browser session. The workflow always closes it.
type SessionOpener func(ctx context.Context) (browser.Driver, error)

// Result is everything one run produced.
type Result struct {
	RunID           string                `json:"run_id"`
	Term            string                `json:"term"`
	StartedAt       time.Time             `json:"started_at"`
	FinishedAt      time.Time             `json:"finished_at"`
	LoggedIn        bool                  `json:"logged_in"`
	SearchSubmitted bool                  `json:"search_submitted"`
	Count           *scraper.ResultCount  `json:"count,omitempty"`
	Report          *scraper.ScrapeReport `json:"report,omitempty"`
	Screenshot      string                `json:"screenshot,omitempty"`
}

// Jobs returns the extracted records, or nil if extraction never ran.
func (r *Result) Jobs() []scraper.JobRecord {
	if r == nil || r.Report == nil {
		return nil
	}
	return r.Report.Jobs
}

type Options struct {
	Credentials          config.Credentials
	Locator              linkedin.Locator
	Scraper              linkedin.Options
	LoginLandmarkTimeout time.Duration
	ScreenshotDir        string
}

// OptionsFromConfig maps the loaded configuration onto workflow options.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Credentials: cfg.Credentials(),
		Locator:     linkedin.DefaultLocator().WithURLs(cfg.LandingURL, cfg.JobsURL),
		Scraper: linkedin.Options{
			WaitTimeout:  cfg.Timeouts.Wait,
			PollInterval: cfg.Timeouts.PollInterval,
			MaxAttempts:  cfg.MaxAttempts,
			StaleBackoff: cfg.Timeouts.StaleBackoff,
		},
		LoginLandmarkTimeout: cfg.Timeouts.LoginLandmark,
		ScreenshotDir:        cfg.ScreenshotDir,
	}
}

type Workflow struct {
	open SessionOpener
	opts Options
	now  func() time.Time
}

func New(open SessionOpener, opts Options) *Workflow {
	if opts.LoginLandmarkTimeout <= 0 {
		opts.LoginLandmarkTimeout = 15 * time.Second
	}
	if opts.Locator == (linkedin.Locator{}) {
		opts.Locator = linkedin.DefaultLocator()
	}
	return &Workflow{open: open, opts: opts, now: time.Now}
}

// Run executes the full pipeline for term. The returned result is never nil;
// on a fatal error it holds whatever was collected before the failure.
func (w *Workflow) Run(ctx context.Context, term string) (*Result, error) {
	result := w.newResult(term)
	log.Printf("🚀 Run %s started for %q", result.RunID, term)

	err := w.withSession(ctx, result, func(s *linkedin.LinkedInScraper) error {
		if err := s.Navigator.OpenLanding(ctx); err != nil {
			return err
		}
		if err := s.Auth.Login(ctx, w.opts.Credentials); err != nil {
			return fmt.Errorf("login failed: %w", err)
		}
		result.LoggedIn = w.awaitLogin(ctx, s)
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := s.Navigator.OpenJobsListing(ctx); err != nil {
			return err
		}
		result.SearchSubmitted = s.Search.Submit(ctx, term)
		return w.collect(ctx, s, result)
	})

	return w.finish(result, err)
}

// Replay reads the count and rows from the session's current document.
// It is used with saved pages to check selectors without logging in.
func (w *Workflow) Replay(ctx context.Context, term string) (*Result, error) {
	result := w.newResult(term)
	log.Printf("🔁 Replay %s started", result.RunID)

	err := w.withSession(ctx, result, func(s *linkedin.LinkedInScraper) error {
		return w.collect(ctx, s, result)
	})

	return w.finish(result, err)
}

func (w *Workflow) newResult(term string) *Result {
	return &Result{
		RunID:     uuid.NewString(),
		Term:      term,
		StartedAt: w.now(),
	}
}

func (w *Workflow) finish(result *Result, err error) (*Result, error) {
	result.FinishedAt = w.now()
	if err != nil {
		log.Printf("❌ Run %s failed: %v", result.RunID, err)
		return result, err
	}
	log.Printf("🏁 Run %s finished in %v.", result.RunID, result.FinishedAt.Sub(result.StartedAt).Round(time.Millisecond))
	return result, nil
}

// withSession acquires the session, runs fn and releases the session on every path.
func (w *Workflow) withSession(ctx context.Context, result *Result, fn func(*linkedin.LinkedInScraper) error) (err error) {
	d, err := w.open(ctx)
	if err != nil {
		return fmt.Errorf("failed to open browser session: %w", err)
	}
	defer func() {
		if closeErr := d.Close(); closeErr != nil {
			log.Printf("⚠️ Failed to close browser session: %v", closeErr)
			err = errors.Join(err, closeErr)
		}
	}()

	s := linkedin.NewLinkedInScraper(d, w.opts.Locator, w.opts.Scraper)
	if err := fn(s); err != nil {
		if ctx.Err() == nil {
			shot, _ := browser.NewScreenShotDebugger(w.opts.ScreenshotDir).CaptureAndLog(d, "run-"+result.RunID, "Capturing page after failure")
			result.Screenshot = shot
		}
		return err
	}
	return nil
}

// awaitLogin waits for the signed-in navigation bar instead of sleeping.
// A timeout is not fatal: the member may still be finishing a 2FA prompt.
func (w *Workflow) awaitLogin(ctx context.Context, s *linkedin.LinkedInScraper) bool {
	_, err := s.Poller.Await(ctx, wait.VisibilityOf(s.Locator.PostLoginLandmark()), w.opts.LoginLandmarkTimeout)
	if err != nil {
		if errors.Is(err, wait.ErrTimeout) {
			log.Printf("⚠️ Login not confirmed after %v, continuing anyway.", w.opts.LoginLandmarkTimeout)
		} else {
			log.Printf("⚠️ Error confirming login: %v", err)
		}
		return false
	}
	log.Println("✅ Login confirmed.")
	return true
}

func (w *Workflow) collect(ctx context.Context, s *linkedin.LinkedInScraper, result *Result) error {
	if count, ok := s.Counter.Read(ctx); ok {
		result.Count = &count
	}

	report, err := s.Extractor.Scrape(ctx)
	result.Report = report
	if err != nil {
		return fmt.Errorf("scrape failed: %w", err)
	}
	return nil
}
