package linkedin

import (
	"context"
	"errors"
	"log"
	"strconv"
	"strings"
	"time"
	"unicode"

	"go-jobsearch-automation/internal/scraper"
	"go-jobsearch-automation/internal/wait"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ResultsCounter reads the "N results" label above the list.
type ResultsCounter struct {
	poller  *wait.Poller
	locator Locator
	timeout time.Duration
}

func NewResultsCounter(poller *wait.Poller, locator Locator, timeout time.Duration) *ResultsCounter {
	return &ResultsCounter{poller: poller, locator: locator, timeout: timeout}
}

// Read waits once for the label. Failures are logged and reported as false.
func (c *ResultsCounter) Read(ctx context.Context) (scraper.ResultCount, bool) {
	label, err := c.poller.Await(ctx, wait.VisibilityOf(c.locator.ResultCount()), c.timeout)
	if err != nil {
		if errors.Is(err, wait.ErrTimeout) {
			log.Println("⚠️ Could not find the results count label.")
		} else {
			log.Printf("⚠️ Error reading the results count: %v", err)
		}
		return scraper.ResultCount{}, false
	}

	text, err := label.Text(ctx)
	if err != nil {
		log.Printf("⚠️ Error reading the results count: %v", err)
		return scraper.ResultCount{}, false
	}

	log.Printf("📊 Results: %s", text)
	count := scraper.ResultCount{Label: text}
	count.Value, count.Parsed = ParseCount(text)
	return count, true
}

// ParseCount extracts the first number from a label such as
// "1.234 resultados" or "Over 1,000 results". Thousands separators are dropped.
func ParseCount(label string) (int, bool) {
	t := transform.Chain(norm.NFKC, runes.Remove(runes.In(unicode.Mn)))
	normalized, _, err := transform.String(t, label)
	if err != nil {
		normalized = label
	}

	var digits strings.Builder
	rs := []rune(normalized)
	for i, r := range rs {
		switch {
		case unicode.IsDigit(r) && r < unicode.MaxASCII:
			digits.WriteRune(r)
		case digits.Len() > 0 && isGroupSeparator(r) && i+1 < len(rs) && unicode.IsDigit(rs[i+1]):
			//thousands separator inside the number
		case digits.Len() > 0:
			return toInt(digits.String())
		}
	}
	return toInt(digits.String())
}

func isGroupSeparator(r rune) bool {
	return r == '.' || r == ',' || r == ' ' || r == '\''
}

func toInt(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}
