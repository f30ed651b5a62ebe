package risika

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// expiryMargin is subtracted from the token's exp claim so that a token is
// never sent in the last seconds of its lifetime.
const expiryMargin = 20 * time.Second

// credentials holds the refresh token and the current access token.
// The mutex guards field access only; it is never held across a refresh.
type credentials struct {
	sync.Mutex

	refreshToken string
	accessToken  string
	expires      time.Time
}

// valid reports whether the access token may still be used at now.
func (cr *credentials) valid(now time.Time) (string, bool) {
	cr.Lock()
	defer cr.Unlock()

	if cr.accessToken == "" {
		return "", false
	}

	return cr.accessToken, now.Before(cr.expires)
}

func (cr *credentials) update(token string, expires time.Time) {
	cr.Lock()
	defer cr.Unlock()

	cr.accessToken = token
	cr.expires = expires
}

func (cr *credentials) refreshCredential() string {
	cr.Lock()
	defer cr.Unlock()

	return cr.refreshToken
}

// RefreshTokenResponse is returned by the access/refresh_token endpoint.
type RefreshTokenResponse struct {
	Token string `json:"token"`
}

// Refresh exchanges the refresh token for a new access token.
// All failures are reported as [*AuthError].
func (c *Client) Refresh(ctx context.Context) error {
	token, expires, err := c.fetchToken(ctx)
	if err != nil {
		return &AuthError{Err: err}
	}

	c.auth.update(token, expires)
	c.logger.Debug("access token refreshed", zap.Time("expires", expires))

	return nil
}

// Token returns a valid access token, refreshing it first when the cached
// one has passed its expiry watermark.
func (c *Client) Token(ctx context.Context) (string, error) {
	if token, ok := c.auth.valid(c.now()); ok {
		return token, nil
	}

	if err := c.Refresh(ctx); err != nil {
		return "", err
	}

	token, _ := c.auth.valid(c.now())
	return token, nil
}

func (c *Client) fetchToken(ctx context.Context) (string, time.Time, error) {
	refreshToken := c.auth.refreshCredential()
	if refreshToken == "" {
		return "", time.Time{}, ErrNoRefreshToken
	}

	req, err := c.newRequest(ctx, http.MethodGet, c.version+"/access/refresh_token", nil)
	if err != nil {
		return "", time.Time{}, err
	}
	req.Header.Set("Authorization", refreshToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", time.Time{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", time.Time{}, newAPIError(resp)
	}

	var tokenResp RefreshTokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return "", time.Time{}, fmt.Errorf("decode token response: %w", err)
	}

	expires, err := c.expiry(tokenResp.Token)
	if err != nil {
		return "", time.Time{}, err
	}

	return tokenResp.Token, expires, nil
}

// expiry decodes the payload segment of the token without verifying it
// and returns its exp claim minus expiryMargin.
func (c *Client) expiry(tokenString string) (time.Time, error) {
	parts := strings.Split(tokenString, ".")
	if len(parts) < 2 {
		return time.Time{}, fmt.Errorf("unable to parse token: %w", jwt.ErrTokenMalformed)
	}

	payload, err := c.parser.DecodeSegment(parts[1])
	if err != nil {
		return time.Time{}, fmt.Errorf("unable to parse token: %w", err)
	}

	var claims jwt.RegisteredClaims
	if err := json.Unmarshal(payload, &claims); err != nil {
		return time.Time{}, fmt.Errorf("unable to parse token: %w", err)
	}

	if claims.ExpiresAt == nil {
		return time.Time{}, ErrMissingExpiry
	}

	return claims.ExpiresAt.Add(-expiryMargin), nil
}
