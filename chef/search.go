package chef

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// DefaultSearchRows is the row limit used when SearchOptions.Rows is 0.
const DefaultSearchRows = 9999

// SearchOptions tunes a Search call. The zero value asks for the first
// DefaultSearchRows results unsorted.
type SearchOptions struct {
	// Rows caps the number of results. Defaults to DefaultSearchRows.
	Rows int

	// Start is the offset of the first result. Omitted from the request
	// when not positive.
	Start int

	// SortBy, when non-empty, sorts the returned rows client-side by the
	// first occurrence of this field anywhere in each row. The server
	// does not support arbitrary-field sorting in this protocol version.
	SortBy string
}

// SearchResult is one page of search results. Rows holds the matching
// documents; Meta carries every other top-level response field (such as
// "total" and "start") unchanged.
type SearchResult struct {
	Rows []any
	Meta map[string]any
}

// SearchIndexes lists the search indexes the server exposes.
func (c *Client) SearchIndexes(ctx context.Context) (any, error) {
	return c.Do(ctx, http.MethodGet, "/search", "", nil)
}

// Search runs a query against one search index.
func (c *Client) Search(ctx context.Context, index, query string, opts SearchOptions) (*SearchResult, error) {
	doc, err := c.Do(ctx, http.MethodGet, "/search/"+url.PathEscape(index), searchQuery(query, opts), nil)
	if err != nil {
		return nil, err
	}

	result := newSearchResult(doc)

	if opts.SortBy != "" {
		SortRows(result.Rows, opts.SortBy)
	}

	return result, nil
}

// searchQuery builds the encoded query string for a search request.
func searchQuery(query string, opts SearchOptions) string {
	rows := opts.Rows
	if rows <= 0 {
		rows = DefaultSearchRows
	}

	values := url.Values{}
	values.Set("q", query)
	values.Set("rows", strconv.Itoa(rows))

	if opts.Start > 0 {
		values.Set("start", strconv.Itoa(opts.Start))
	}

	return values.Encode()
}

// newSearchResult splits a decoded search response into rows and
// pass-through metadata. Anything that is not a JSON object (a nil
// result included) yields an empty SearchResult.
func newSearchResult(doc any) *SearchResult {
	result := &SearchResult{}

	obj, ok := doc.(map[string]any)
	if !ok {
		return result
	}

	for k, v := range obj {
		if k == "rows" {
			if rows, ok := v.([]any); ok {
				result.Rows = rows
				continue
			}
		}

		if result.Meta == nil {
			result.Meta = make(map[string]any)
		}

		result.Meta[k] = v
	}

	return result
}
