package linkedin

// LinkedIn selectors and URLs.
// These WILL break when LinkedIn changes its markup; this is the only place to update them.
const (
	LandingURL     = "https://br.linkedin.com"
	JobsListingURL = "https://www.linkedin.com/jobs/"

	// Login form on the public landing page.
	SelectorIdentifierInput = "#session_key"
	SelectorSecretInput     = "#session_password"
	SelectorSubmitButton    = "button[type='submit']"

	// Top navigation bar, only rendered for signed-in members.
	SelectorGlobalNav = "#global-nav"

	SelectorSearchInput = "input.jobs-search-box__text-input"
	SelectorResultCount = "div.jobs-search-results-list__subtitle span"
	SelectorResultsList = "ul.scaffold-layout__list-container"
	SelectorResultRow   = "ul.scaffold-layout__list-container > li"

	// Inside a result row.
	SelectorRowTitle    = "strong"
	SelectorRowCompany  = "span.job-card-container__primary-description"
	SelectorRowLocation = "li.job-card-container__metadata-item"
)

// Locator gives page components named access to selectors and URLs.
// Tests and alternative markups override individual fields.
type Locator struct {
	Landing         string
	JobsListing     string
	IdentifierField string
	SecretField     string
	SubmitControl   string
	LoggedInMarker  string
	Search          string
	Count           string
	List            string
	Row             string
	Title           string
	Company         string
	Location        string
}

func DefaultLocator() Locator {
	return Locator{
		Landing:         LandingURL,
		JobsListing:     JobsListingURL,
		IdentifierField: SelectorIdentifierInput,
		SecretField:     SelectorSecretInput,
		SubmitControl:   SelectorSubmitButton,
		LoggedInMarker:  SelectorGlobalNav,
		Search:          SelectorSearchInput,
		Count:           SelectorResultCount,
		List:            SelectorResultsList,
		Row:             SelectorResultRow,
		Title:           SelectorRowTitle,
		Company:         SelectorRowCompany,
		Location:        SelectorRowLocation,
	}
}

// WithURLs returns a copy pointing at other landing and jobs pages.
// Empty values keep the current URL.
func (l Locator) WithURLs(landing, jobs string) Locator {
	if landing != "" {
		l.Landing = landing
	}
	if jobs != "" {
		l.JobsListing = jobs
	}
	return l
}

func (l Locator) LandingPage() string     { return l.Landing }
func (l Locator) JobsPage() string        { return l.JobsListing }
func (l Locator) IdentifierInput() string { return l.IdentifierField }
func (l Locator) SecretInput() string     { return l.SecretField }
func (l Locator) SubmitButton() string    { return l.SubmitControl }
func (l Locator) PostLoginLandmark() string {
	return l.LoggedInMarker
}
func (l Locator) SearchInput() string { return l.Search }
func (l Locator) ResultCount() string { return l.Count }
func (l Locator) ResultsList() string { return l.List }
func (l Locator) ResultRows() string  { return l.Row }
func (l Locator) RowTitle() string    { return l.Title }
func (l Locator) RowCompany() string  { return l.Company }
func (l Locator) RowLocation() string { return l.Location }
