package risika

import (
	"context"
	"encoding/json"
)

// The financial endpoints return the API payload undecoded. Its shape
// depends on the locale and the accounts filed by the company.

// FinancialRatios retrieves the key ratios of a company's filed accounts.
func (c *Client) FinancialRatios(ctx context.Context, locale Locale, companyID string) (json.RawMessage, error) {
	return c.financial(ctx, locale, "/financial/ratios/%s", companyID)
}

// FinancialStats retrieves the figures of a company's filed accounts.
func (c *Client) FinancialStats(ctx context.Context, locale Locale, companyID string) (json.RawMessage, error) {
	return c.financial(ctx, locale, "/financial/stats/%s", companyID)
}

// FinancialPerformance retrieves a company's performance compared to its industry.
func (c *Client) FinancialPerformance(ctx context.Context, locale Locale, companyID string) (json.RawMessage, error) {
	return c.financial(ctx, locale, "/financial/performance/%s", companyID)
}

func (c *Client) financial(ctx context.Context, locale Locale, format, companyID string) (json.RawMessage, error) {
	var raw json.RawMessage
	if err := c.get(ctx, c.apiPath(locale, format, companyID), &raw); err != nil {
		return nil, err
	}

	return raw, nil
}
