package dto

import "time"

// NewsItem is one news entry returned by a market data provider.
type NewsItem struct {
	Title       string    `json:"title"`
	Link        string    `json:"link"`
	Publisher   string    `json:"publisher,omitempty"`
	PublishedAt time.Time `json:"published_at,omitempty"`
}

// Article is the extracted content of a news page.
type Article struct {
	URL   string `json:"url"`
	Title string `json:"title"`
	Text  string `json:"text"`
}

// ArticleResult is the per-ticker outcome: either Title and Summary, or Error.
type ArticleResult struct {
	Title   string `json:"title,omitempty"`
	Summary string `json:"summary,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Failed reports whether the result carries an error instead of a summary.
func (r ArticleResult) Failed() bool {
	return r.Error != ""
}

// NewSummaryResult builds a successful result.
func NewSummaryResult(title, summary string) ArticleResult {
	return ArticleResult{Title: title, Summary: summary}
}

// NewErrorResult builds a failed result.
func NewErrorResult(message string) ArticleResult {
	return ArticleResult{Error: message}
}

// TickerList is the resolved set of tickers for one request and where it came from.
type TickerList struct {
	Tickers []string
	Source  string
}

// NewsResponse is the success envelope of the news endpoint.
type NewsResponse struct {
	Status  string                   `json:"status"`
	Source  string                   `json:"source"`
	Tickers []string                 `json:"tickers"`
	Data    map[string]ArticleResult `json:"data"`
}

// ErrorResponse is the failure envelope of the news endpoint.
type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
