package linkedin

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"go-jobsearch-automation/internal/browser"
	"go-jobsearch-automation/internal/scraper"
	"go-jobsearch-automation/internal/wait"
)

const (
	DefaultMaxAttempts  = 3
	DefaultStaleBackoff = time.Second
)

// JobExtractor reads title, company and location from every row of the results list.
type JobExtractor struct {
	driver       browser.Driver
	poller       *wait.Poller
	locator      Locator
	timeout      time.Duration
	maxAttempts  int
	staleBackoff time.Duration
}

func NewJobExtractor(d browser.Driver, poller *wait.Poller, locator Locator, opts Options) *JobExtractor {
	opts = opts.withDefaults()
	return &JobExtractor{
		driver:       d,
		poller:       poller,
		locator:      locator,
		timeout:      opts.WaitTimeout,
		maxAttempts:  opts.MaxAttempts,
		staleBackoff: opts.StaleBackoff,
	}
}

// Scrape fails only when the list container never shows up or ctx ends.
// Rows that cannot be read are reported in the outcome list and skipped.
func (e *JobExtractor) Scrape(ctx context.Context) (*scraper.ScrapeReport, error) {
	if _, err := e.poller.Await(ctx, wait.VisibilityOf(e.locator.ResultsList()), e.timeout); err != nil {
		return nil, fmt.Errorf("results list not available: %w", err)
	}

	rows, err := e.driver.FindElements(ctx, e.locator.ResultRows())
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate result rows: %w", err)
	}

	report := &scraper.ScrapeReport{Enumerated: len(rows)}
	log.Printf("📄 Found %d job rows.", len(rows))

	for i := range rows {
		job, outcome, err := e.extractRow(ctx, i)
		if err != nil {
			return report, err
		}
		report.Rows = append(report.Rows, outcome)
		if outcome.Status == scraper.RowExtracted {
			report.Jobs = append(report.Jobs, job)
		}
	}

	if skipped := report.Skipped(); len(skipped) > 0 {
		log.Printf("⚠️ Extracted %d/%d rows, %d skipped.", len(report.Jobs), report.Enumerated, len(skipped))
	} else {
		log.Printf("✅ Extracted %d/%d rows.", len(report.Jobs), report.Enumerated)
	}
	return report, nil
}

// extractRow retries stale reads and gives up on anything else.
// The returned error is only set when ctx is done.
func (e *JobExtractor) extractRow(ctx context.Context, index int) (scraper.JobRecord, scraper.RowOutcome, error) {
	outcome := scraper.RowOutcome{Index: index}

	for attempt := 1; attempt <= e.maxAttempts; attempt++ {
		outcome.Attempts = attempt

		job, err := e.readRow(ctx, index)
		if err == nil {
			outcome.Status = scraper.RowExtracted
			return job, outcome, nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return scraper.JobRecord{}, outcome, ctxErr
		}

		outcome.Err = err.Error()
		if !errors.Is(err, browser.ErrStale) {
			log.Printf("    ⚠️ Row %d: error extracting job data: %v", index, err)
			outcome.Status = scraper.RowSkipped
			outcome.Reason = scraper.ReasonExtractionError
			return scraper.JobRecord{}, outcome, nil
		}

		log.Printf("    🔁 Row %d attempt %d: stale element reference.", index, attempt)
		if attempt == e.maxAttempts {
			break
		}
		if err := sleep(ctx, e.staleBackoff); err != nil {
			return scraper.JobRecord{}, outcome, err
		}
	}

	log.Printf("    ⚠️ Row %d: gave up after %d stale attempts.", index, e.maxAttempts)
	outcome.Status = scraper.RowSkipped
	outcome.Reason = scraper.ReasonStaleExhausted
	return scraper.JobRecord{}, outcome, nil
}

// readRow re-resolves the rows so it never holds a reference from a previous attempt.
func (e *JobExtractor) readRow(ctx context.Context, index int) (scraper.JobRecord, error) {
	rows, err := e.driver.FindElements(ctx, e.locator.ResultRows())
	if err != nil {
		return scraper.JobRecord{}, err
	}
	if index >= len(rows) {
		return scraper.JobRecord{}, fmt.Errorf("row %d out of range, list has %d rows", index, len(rows))
	}
	row := rows[index]

	title, err := fieldText(ctx, row, e.locator.RowTitle())
	if err != nil {
		return scraper.JobRecord{}, fmt.Errorf("title: %w", err)
	}
	company, err := fieldText(ctx, row, e.locator.RowCompany())
	if err != nil {
		return scraper.JobRecord{}, fmt.Errorf("company: %w", err)
	}
	location, err := fieldText(ctx, row, e.locator.RowLocation())
	if err != nil {
		return scraper.JobRecord{}, fmt.Errorf("location: %w", err)
	}

	return scraper.JobRecord{Title: title, Company: company, Location: location}, nil
}

func fieldText(ctx context.Context, row browser.Element, selector string) (string, error) {
	el, err := row.FindElement(ctx, selector)
	if err != nil {
		return "", err
	}
	return el.Text(ctx)
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
