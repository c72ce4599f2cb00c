package search

// CrawlResult records the outcome of one fetch attempt within a session.
// It is built through NewSuccessResult or NewFailureResult only.
type CrawlResult struct {
	page      *Page
	sequence  int
	matched   bool
	errMsg    string
	succeeded bool
}

// NewSuccessResult records a page that was fetched and tested for the keyword.
func NewSuccessResult(page *Page, sequence int, matched bool) CrawlResult {
	return CrawlResult{
		page:      page,
		sequence:  sequence,
		matched:   matched,
		succeeded: true,
	}
}

// NewFailureResult records a page whose fetch or processing failed.
func NewFailureResult(page *Page, sequence int, message string) CrawlResult {
	return CrawlResult{
		page:     page,
		sequence: sequence,
		errMsg:   message,
	}
}

// Page returns the visited page.
func (r CrawlResult) Page() *Page { return r.page }

// Sequence returns the attempt number, starting at 1.
func (r CrawlResult) Sequence() int { return r.sequence }

// Matched reports whether the page content contained the keyword.
func (r CrawlResult) Matched() bool { return r.matched }

// Error returns the failure message, empty for successful fetches.
func (r CrawlResult) Error() string { return r.errMsg }

// FetchSucceeded reports whether the page was fetched, whether or not it matched.
func (r CrawlResult) FetchSucceeded() bool { return r.succeeded }
