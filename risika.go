// Package risika provides a client for the Risika company data API:
// https://api.risika.dk/
//
// Features:
// - Lazy access token refresh from a long-lived refresh token.
// - Typed accessors for company basics, relations, highlights, financials and search.
// - Owner, director, founder and CEO derivations over company relations.
package risika
