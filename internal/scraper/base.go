// Data shared by the scraping pipeline and its reporters

package scraper

// JobRecord is one row of the results list as rendered at extraction time.
// Fields are raw text, nothing is trimmed or validated.
type JobRecord struct {
	Title    string `json:"title"`
	Company  string `json:"company"`
	Location string `json:"location"`
}

type RowStatus string

const (
	RowExtracted RowStatus = "extracted"
	RowSkipped   RowStatus = "skipped"
)

type SkipReason string

const (
	ReasonNone            SkipReason = ""
	ReasonStaleExhausted  SkipReason = "stale_exhausted"
	ReasonExtractionError SkipReason = "extraction_error"
)

// RowOutcome records what happened to one enumerated row.
type RowOutcome struct {
	Index    int        `json:"index"`
	Status   RowStatus  `json:"status"`
	Reason   SkipReason `json:"reason,omitempty"`
	Attempts int        `json:"attempts"`
	Err      string     `json:"error,omitempty"`
}

// ScrapeReport is the result of one pass over the results list.
type ScrapeReport struct {
	Enumerated int          `json:"enumerated"`
	Jobs       []JobRecord  `json:"jobs"`
	Rows       []RowOutcome `json:"rows"`
}

// Skipped returns the rows that produced no record.
func (r *ScrapeReport) Skipped() []RowOutcome {
	var skipped []RowOutcome
	for _, row := range r.Rows {
		if row.Status == RowSkipped {
			skipped = append(skipped, row)
		}
	}
	return skipped
}

// Complete is true when every enumerated row produced a record.
func (r *ScrapeReport) Complete() bool {
	return len(r.Jobs) == r.Enumerated
}

// ResultCount is the results label next to the list.
// Value is only meaningful when Parsed is true.
type ResultCount struct {
	Label  string `json:"label"`
	Value  int    `json:"value"`
	Parsed bool   `json:"parsed"`
}
