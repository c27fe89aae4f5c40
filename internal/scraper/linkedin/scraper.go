package linkedin

import (
	"time"

	"go-jobsearch-automation/internal/browser"
	"go-jobsearch-automation/internal/wait"
)

const DefaultWaitTimeout = 10 * time.Second

// Options tunes waits and retries. Zero values fall back to the defaults.
type Options struct {
	WaitTimeout  time.Duration
	PollInterval time.Duration
	MaxAttempts  int
	StaleBackoff time.Duration
}

func (o Options) withDefaults() Options {
	if o.WaitTimeout <= 0 {
		o.WaitTimeout = DefaultWaitTimeout
	}
	if o.PollInterval <= 0 {
		o.PollInterval = wait.DefaultInterval
	}
	if o.MaxAttempts <= 0 {
		o.MaxAttempts = DefaultMaxAttempts
	}
	if o.StaleBackoff <= 0 {
		o.StaleBackoff = DefaultStaleBackoff
	}
	return o
}

// LinkedInScraper wires every page component to one browser session.
type LinkedInScraper struct {
	Navigator *Navigator
	Auth      *Authenticator
	Search    *SearchController
	Counter   *ResultsCounter
	Extractor *JobExtractor
	Poller    *wait.Poller
	Locator   Locator
}

func NewLinkedInScraper(d browser.Driver, locator Locator, opts Options) *LinkedInScraper {
	opts = opts.withDefaults()
	poller := wait.NewPoller(d, opts.PollInterval)
	return &LinkedInScraper{
		Navigator: NewNavigator(d, locator),
		Auth:      NewAuthenticator(d, locator),
		Search:    NewSearchController(poller, locator, opts.WaitTimeout),
		Counter:   NewResultsCounter(poller, locator, opts.WaitTimeout),
		Extractor: NewJobExtractor(d, poller, locator, opts),
		Poller:    poller,
		Locator:   locator,
	}
}

func (s *LinkedInScraper) Name() string {
	return "LinkedIn"
}
