package linkedin

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"go-jobsearch-automation/internal/browser"
	"go-jobsearch-automation/internal/scraper"

	"github.com/stretchr/testify/require"
)

const landingPage = `<html><body>
<form class="login">
  <input id="session_key" name="session_key">
  <input id="session_password" name="session_password" type="password">
  <button type="submit">Sign in</button>
</form>
<nav id="global-nav">Home</nav>
</body></html>`

func resultsPage(label string, jobs ...scraper.JobRecord) string {
	var b strings.Builder
	b.WriteString(`<html><body>
<div class="jobs-search-box"><input class="jobs-search-box__text-input" value="previous search"></div>
<div class="jobs-search-results-list__subtitle"><span>` + label + `</span></div>
<ul class="scaffold-layout__list-container">`)
	for _, job := range jobs {
		fmt.Fprintf(&b, `<li><div class="job-card-container"><a href="#"><strong>%s</strong></a>`+
			`<span class="job-card-container__primary-description">%s</span>`+
			`<ul class="job-card-container__metadata-wrapper"><li class="job-card-container__metadata-item">%s</li></ul></div></li>`,
			job.Title, job.Company, job.Location)
	}
	b.WriteString(`</ul></body></html>`)
	return b.String()
}

var twoJobs = []scraper.JobRecord{
	{Title: "Backend Engineer", Company: "Acme Co", Location: "Remote"},
	{Title: "Fullstack Dev", Company: "Beta Inc", Location: "São Paulo"},
}

func fastOptions() Options {
	return Options{
		WaitTimeout:  100 * time.Millisecond,
		PollInterval: 5 * time.Millisecond,
		MaxAttempts:  3,
		StaleBackoff: time.Millisecond,
	}
}

// openPage returns a snapshot driver already showing html.
func openPage(t *testing.T, html string) *browser.SnapshotDriver {
	t.Helper()
	d := browser.NewSnapshotDriver(nil, html)
	require.NoError(t, d.Navigate(context.Background(), JobsListingURL))
	return d
}

// faultyDriver injects errors into the title lookup of selected rows.
// faults[i][n] is returned on the n-th attempt of row i; a nil entry succeeds.
type faultyDriver struct {
	*browser.SnapshotDriver
	mu       sync.Mutex
	faults   map[int][]error
	attempts map[int]int
}

func newFaultyDriver(d *browser.SnapshotDriver, faults map[int][]error) *faultyDriver {
	return &faultyDriver{SnapshotDriver: d, faults: faults, attempts: map[int]int{}}
}

func (d *faultyDriver) FindElements(ctx context.Context, selector string) ([]browser.Element, error) {
	elements, err := d.SnapshotDriver.FindElements(ctx, selector)
	if err != nil || selector != SelectorResultRow {
		return elements, err
	}
	for i := range elements {
		elements[i] = &faultyRow{Element: elements[i], driver: d, index: i}
	}
	return elements, nil
}

func (d *faultyDriver) attemptsFor(index int) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.attempts[index]
}

func (d *faultyDriver) next(index int) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	n := d.attempts[index]
	d.attempts[index]++
	if faults := d.faults[index]; n < len(faults) {
		return faults[n]
	}
	return nil
}

type faultyRow struct {
	browser.Element
	driver *faultyDriver
	index  int
}

func (r *faultyRow) FindElement(ctx context.Context, selector string) (browser.Element, error) {
	if selector == SelectorRowTitle {
		if err := r.driver.next(r.index); err != nil {
			return nil, err
		}
	}
	return r.Element.FindElement(ctx, selector)
}

func stale(n int) []error {
	errs := make([]error, n)
	for i := range errs {
		errs[i] = fmt.Errorf("row detached: %w", browser.ErrStale)
	}
	return errs
}
