package risika

import (
	"context"
	"fmt"
	"net/http"
)

// SearchMode controls how much of each company the company search returns.
type SearchMode string

// SearchModeFull is the default search mode.
const SearchModeFull SearchMode = "full"

// SearchCompanyRequest is the body of a company search.
type SearchCompanyRequest struct {
	Mode    SearchMode    `json:"mode"`
	Filters SearchFilters `json:"filters"`
}

// SearchFilters narrows a company search.
type SearchFilters struct {
	FreeSearch string `json:"free_search"`
}

// SearchPersonRequest is the body of a person search.
type SearchPersonRequest struct {
	Query string `json:"query"`
}

type searchResponse struct {
	SearchResult *[]Document `json:"search_result"`
}

// Search runs a free text company search. An empty mode means [SearchModeFull].
func (c *Client) Search(ctx context.Context, locale Locale, query string, mode SearchMode) ([]Document, error) {
	if mode == "" {
		mode = SearchModeFull
	}

	return c.search(ctx, c.apiPath(locale, "/search/company"), SearchCompanyRequest{
		Mode:    mode,
		Filters: SearchFilters{FreeSearch: query},
	})
}

// SearchPerson runs a free text person search.
func (c *Client) SearchPerson(ctx context.Context, locale Locale, query string) ([]Document, error) {
	return c.search(ctx, c.apiPath(locale, "/search/person"), SearchPersonRequest{Query: query})
}

func (c *Client) search(ctx context.Context, path string, body any) ([]Document, error) {
	req, err := c.newRequest(ctx, http.MethodPost, path, body)
	if err != nil {
		return nil, err
	}

	var result searchResponse
	if _, err := c.doJSON(req, &result); err != nil {
		return nil, err
	}

	if result.SearchResult == nil {
		return nil, fmt.Errorf("%w: search_result", ErrMissingField)
	}

	return *result.SearchResult, nil
}
