package risika

import (
	"context"
	"fmt"
	"net/http"
)

// get issues an authenticated GET for a locale scoped path and decodes the
// JSON response into v.
func (c *Client) get(ctx context.Context, path string, v any) error {
	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}

	_, err = c.doJSON(req, v)
	return err
}

// BasicCompanyInfo retrieves the basic registration data of a company.
func (c *Client) BasicCompanyInfo(ctx context.Context, locale Locale, companyID string) (Document, error) {
	var doc Document
	if err := c.get(ctx, c.apiPath(locale, "/company/basics/%s", companyID), &doc); err != nil {
		return nil, err
	}

	return doc, nil
}

// CompanyStatus retrieves the registration status of a company, e.g. ACTIVE.
func (c *Client) CompanyStatus(ctx context.Context, locale Locale, companyID string) (string, error) {
	return c.basicsField(ctx, locale, companyID, "status")
}

// CompanyPowerToBind retrieves the rule describing who can sign for a company.
func (c *Client) CompanyPowerToBind(ctx context.Context, locale Locale, companyID string) (string, error) {
	return c.basicsField(ctx, locale, companyID, "powers_to_bind")
}

func (c *Client) basicsField(ctx context.Context, locale Locale, companyID, field string) (string, error) {
	doc, err := c.BasicCompanyInfo(ctx, locale, companyID)
	if err != nil {
		return "", err
	}

	var v string
	if err := doc.Field(field, &v); err != nil {
		return "", err
	}

	return v, nil
}

// CompanyHighlight retrieves the highlights of a company.
func (c *Client) CompanyHighlight(ctx context.Context, locale Locale, companyID string) (Document, error) {
	var doc Document
	if err := c.get(ctx, c.apiPath(locale, "/highlights/%s", companyID), &doc); err != nil {
		return nil, err
	}

	return doc, nil
}

type relationsResponse struct {
	Relations *Relations `json:"relations"`
}

// CompanyRelations retrieves everyone linked to a company through a function.
func (c *Client) CompanyRelations(ctx context.Context, locale Locale, companyID string) (Relations, error) {
	var result relationsResponse
	if err := c.get(ctx, c.apiPath(locale, "/company/relations/%s", companyID), &result); err != nil {
		return nil, err
	}

	if result.Relations == nil {
		return nil, fmt.Errorf("%w: relations", ErrMissingField)
	}

	return *result.Relations, nil
}

// relationList fetches the relations of a company and applies derive to them.
func (c *Client) relationList(
	ctx context.Context,
	locale Locale,
	companyID string,
	derive func(Relations) []string,
) ([]string, error) {
	relations, err := c.CompanyRelations(ctx, locale, companyID)
	if err != nil {
		return nil, err
	}

	return derive(relations), nil
}

// CurrentLegalOwners retrieves the names of the company's active legal owners.
func (c *Client) CurrentLegalOwners(ctx context.Context, locale Locale, companyID string) ([]string, error) {
	return c.relationList(ctx, locale, companyID, Relations.CurrentLegalOwners)
}

// CurrentRealOwners retrieves the names of the company's active beneficial owners.
func (c *Client) CurrentRealOwners(ctx context.Context, locale Locale, companyID string) ([]string, error) {
	return c.relationList(ctx, locale, companyID, Relations.CurrentRealOwners)
}

// CurrentRealOwnersOver25Shares retrieves the names of the company's active
// beneficial owners holding at least 25% of the shares.
func (c *Client) CurrentRealOwnersOver25Shares(ctx context.Context, locale Locale, companyID string) ([]string, error) {
	return c.relationList(ctx, locale, companyID, Relations.CurrentRealOwnersOver25Shares)
}

// Directors retrieves the names of the company's active management and CEOs.
func (c *Client) Directors(ctx context.Context, locale Locale, companyID string) ([]string, error) {
	return c.relationList(ctx, locale, companyID, Relations.Directors)
}

// Founders retrieves the names of the company's founders still registered as active.
func (c *Client) Founders(ctx context.Context, locale Locale, companyID string) ([]string, error) {
	return c.relationList(ctx, locale, companyID, Relations.Founders)
}

// CEO retrieves the name of the company's CEO.
// It returns [ErrNotFound] when the company has no active CEO.
func (c *Client) CEO(ctx context.Context, locale Locale, companyID string) (string, error) {
	relations, err := c.CompanyRelations(ctx, locale, companyID)
	if err != nil {
		return "", err
	}

	name, ok := relations.CEO()
	if !ok {
		return "", fmt.Errorf("%w: company %s has no CEO", ErrNotFound, companyID)
	}

	return name, nil
}

// CEOOrDirector retrieves the name of the company's CEO or, without one,
// its first director. It returns [ErrNotFound] when there is neither.
func (c *Client) CEOOrDirector(ctx context.Context, locale Locale, companyID string) (string, error) {
	relations, err := c.CompanyRelations(ctx, locale, companyID)
	if err != nil {
		return "", err
	}

	name, ok := relations.CEOOrDirector()
	if !ok {
		return "", fmt.Errorf("%w: company %s has no CEO or director", ErrNotFound, companyID)
	}

	return name, nil
}

// CEOOrDirectorInfo retrieves the personal IDs of the company's CEOs or,
// without one, of its first director. It returns [ErrNotFound] when there is neither.
func (c *Client) CEOOrDirectorInfo(ctx context.Context, locale Locale, companyID string) ([]string, error) {
	relations, err := c.CompanyRelations(ctx, locale, companyID)
	if err != nil {
		return nil, err
	}

	ids, ok := relations.CEOOrDirectorInfo()
	if !ok {
		return nil, fmt.Errorf("%w: company %s has no CEO or director", ErrNotFound, companyID)
	}

	return ids, nil
}
