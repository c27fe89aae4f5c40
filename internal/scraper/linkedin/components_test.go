package linkedin

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-jobsearch-automation/internal/browser"
	"go-jobsearch-automation/internal/config"
	"go-jobsearch-automation/internal/wait"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNavigator_OpensBothPages(t *testing.T) {
	d := browser.NewSnapshotDriver(map[string]string{
		"https://landing.test": landingPage,
		"https://jobs.test":    resultsPage("0 results"),
	}, "")
	nav := NewNavigator(d, DefaultLocator().WithURLs("https://landing.test", "https://jobs.test"))

	require.NoError(t, nav.OpenLanding(context.Background()))
	assert.Equal(t, "https://landing.test", d.URL())

	require.NoError(t, nav.OpenJobsListing(context.Background()))
	assert.Equal(t, "https://jobs.test", d.URL())
}

func TestNavigator_PropagatesNavigationErrors(t *testing.T) {
	d := browser.NewSnapshotDriver(nil, "")
	nav := NewNavigator(d, DefaultLocator())

	assert.Error(t, nav.OpenLanding(context.Background()))
	assert.Error(t, nav.OpenJobsListing(context.Background()))
}

func TestAuthenticator_FillsAndSubmits(t *testing.T) {
	d := openPage(t, landingPage)
	auth := NewAuthenticator(d, DefaultLocator())

	err := auth.Login(context.Background(), config.Credentials{Identifier: "someone@example.com", Secret: "hunter2"})

	require.NoError(t, err)
	doc := d.Document()
	assert.Equal(t, "someone@example.com", doc.Find("#session_key").AttrOr("value", ""))
	assert.Equal(t, "hunter2", doc.Find("#session_password").AttrOr("value", ""))
	assert.Contains(t, d.Actions(), "click button")
}

func TestAuthenticator_MissingFieldIsFatal(t *testing.T) {
	tests := []struct {
		name    string
		locator func(Locator) Locator
		field   string
	}{
		{name: "identifier", locator: func(l Locator) Locator { l.IdentifierField = "#nope"; return l }, field: "identifier"},
		{name: "secret", locator: func(l Locator) Locator { l.SecretField = "#nope"; return l }, field: "secret"},
		{name: "submit", locator: func(l Locator) Locator { l.SubmitControl = "button.nope"; return l }, field: "submit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := openPage(t, landingPage)
			auth := NewAuthenticator(d, tt.locator(DefaultLocator()))

			err := auth.Login(context.Background(), config.Credentials{Identifier: "a", Secret: "hunter2"})

			assert.ErrorIs(t, err, browser.ErrNotFound)
			assert.Contains(t, err.Error(), tt.field)
			assert.NotContains(t, err.Error(), "hunter2")
		})
	}
}

func newSearch(d browser.Driver) *SearchController {
	opts := fastOptions()
	return NewSearchController(wait.NewPoller(d, opts.PollInterval), DefaultLocator(), opts.WaitTimeout)
}

func TestSearchController_ClearsTypesAndPressesEnter(t *testing.T) {
	d := openPage(t, resultsPage("0 results"))

	ok := newSearch(d).Submit(context.Background(), "fullstack javascript")

	assert.True(t, ok)
	assert.Equal(t, "fullstack javascript", d.Document().Find(SelectorSearchInput).AttrOr("value", ""))
	assert.Contains(t, d.Actions(), "press Enter input.jobs-search-box__text-input")
}

func TestSearchController_MissingInputIsAbsorbed(t *testing.T) {
	d := openPage(t, landingPage)

	start := time.Now()
	ok := newSearch(d).Submit(context.Background(), "fullstack javascript")

	assert.False(t, ok)
	assert.Less(t, time.Since(start), time.Second)
}

// brokenInput fails on Clear, like an input that is replaced mid-interaction.
type brokenInputDriver struct {
	*browser.SnapshotDriver
}

type brokenInput struct {
	browser.Element
}

func (brokenInput) Clear(context.Context) error { return errors.New("element is not editable") }

func (d brokenInputDriver) FindElement(ctx context.Context, selector string) (browser.Element, error) {
	el, err := d.SnapshotDriver.FindElement(ctx, selector)
	if err != nil {
		return nil, err
	}
	return brokenInput{Element: el}, nil
}

func TestSearchController_GenericErrorIsAbsorbed(t *testing.T) {
	d := brokenInputDriver{SnapshotDriver: openPage(t, resultsPage("0 results"))}

	var ok bool
	assert.NotPanics(t, func() {
		ok = newSearch(d).Submit(context.Background(), "fullstack javascript")
	})
	assert.False(t, ok)
}

func newCounter(d browser.Driver) *ResultsCounter {
	opts := fastOptions()
	return NewResultsCounter(wait.NewPoller(d, opts.PollInterval), DefaultLocator(), opts.WaitTimeout)
}

func TestResultsCounter_ReadsLabel(t *testing.T) {
	d := openPage(t, resultsPage("1.234 resultados", twoJobs...))

	count, ok := newCounter(d).Read(context.Background())

	require.True(t, ok)
	assert.Equal(t, "1.234 resultados", count.Label)
	assert.True(t, count.Parsed)
	assert.Equal(t, 1234, count.Value)
}

func TestResultsCounter_HiddenLabelIsAbsorbed(t *testing.T) {
	html := `<html><body><div class="jobs-search-results-list__subtitle" hidden><span>2 results</span></div></body></html>`
	d := openPage(t, html)

	count, ok := newCounter(d).Read(context.Background())

	assert.False(t, ok)
	assert.Empty(t, count.Label)
}

func TestParseCount(t *testing.T) {
	tests := []struct {
		label  string
		value  int
		parsed bool
	}{
		{label: "2 resultados", value: 2, parsed: true},
		{label: "1.234 resultados", value: 1234, parsed: true},
		{label: "Over 1,000 results", value: 1000, parsed: true},
		{label: "12 345 résultats", value: 12345, parsed: true},
		{label: "１２ results", value: 12, parsed: true},
		{label: "3 results in 2 cities", value: 3, parsed: true},
		{label: "No results", value: 0, parsed: false},
		{label: "", value: 0, parsed: false},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			value, parsed := ParseCount(tt.label)
			assert.Equal(t, tt.parsed, parsed)
			assert.Equal(t, tt.value, value)
		})
	}
}

func TestDefaultLocator_WithURLs(t *testing.T) {
	l := DefaultLocator()
	assert.Equal(t, LandingURL, l.LandingPage())
	assert.Equal(t, SelectorResultRow, l.ResultRows())

	custom := l.WithURLs("https://landing.test", "")
	assert.Equal(t, "https://landing.test", custom.LandingPage())
	assert.Equal(t, JobsListingURL, custom.JobsPage())
	assert.Equal(t, LandingURL, l.LandingPage())
}
