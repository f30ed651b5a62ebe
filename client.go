package risika

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"runtime"
	"runtime/debug"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

const (
	// ProductionURL is the official production endpoint.
	ProductionURL = "https://api.risika.dk/"

	modulePath = "thde.io/risika"
)

var (
	// ErrStatus is returned when the API returns an unexpected status code.
	ErrStatus = errors.New("unexpected status code")
	// ErrNoRefreshToken is returned when no refresh token is available.
	ErrNoRefreshToken = errors.New("no refresh token available")
	// ErrMissingExpiry is returned when an access token carries no exp claim.
	ErrMissingExpiry = errors.New("token has no expiry")
	// ErrRateLimit is returned when the rate limit is exceeded.
	ErrRateLimit = errors.New("rate limit exceeded")
	// ErrMissingField is returned when a response lacks an expected field.
	ErrMissingField = errors.New("missing field")
	// ErrNotFound is returned when no relation holds the requested role.
	ErrNotFound = errors.New("no matching relation")
)

// Locale selects the country register queried.
type Locale string

const (
	LocaleDK Locale = "dk"
	LocaleSE Locale = "se"
	LocaleNO Locale = "no"
)

// Client holds configuration needed to call the Risika API.
// Use [New] to create a new client.
//
// A Client may be shared between goroutines. Checking and refreshing the
// access token is not atomic, so concurrent callers that observe an expired
// token at the same time may each trigger a refresh.
type Client struct {
	baseURL *url.URL

	version    string
	lang       string
	httpClient *http.Client
	userAgent  string
	logger     *zap.Logger
	now        func() time.Time

	auth   *credentials
	parser *jwt.Parser

	retryAfterMU sync.Mutex
	retryAfter   time.Time
}

// ClientOption configures a Client before use.
type ClientOption func(*Client)

// WithBaseURL sets a custom base URL.
func WithBaseURL(baseURL *url.URL) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithTimeout sets the timeout of the underlying HTTP client.
// Apply it after [WithHTTPClient] when both are used.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		base := c.httpClient
		if base == nil {
			base = http.DefaultClient
		}
		hc := *base
		hc.Timeout = timeout
		c.httpClient = &hc
	}
}

// WithJWTParser configures the parser used to read access token claims.
func WithJWTParser(parser *jwt.Parser) ClientOption {
	return func(c *Client) {
		c.parser = parser
	}
}

// WithUserAgent sets a custom User-Agent header for API requests.
func WithUserAgent(userAgent string) ClientOption {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithLogger sets the logger used for debug output. The client is silent by default.
func WithLogger(logger *zap.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithClock replaces the clock used to check token expiry.
func WithClock(now func() time.Time) ClientOption {
	return func(c *Client) {
		c.now = now
	}
}

// New creates a Risika API client.
// The refresh token is exchanged for access tokens lazily, on the first
// request that needs one. version is the API version path segment (e.g.
// "v1.2") and lang is sent as Accept-Language.
func New(refreshToken, version, lang string, opts ...ClientOption) *Client {
	productionURL, _ := url.Parse(ProductionURL)

	c := &Client{
		baseURL: productionURL,
		version: version,
		lang:    lang,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: zap.NewNop(),
		now:    time.Now,
		auth:   &credentials{refreshToken: refreshToken},
		parser: jwt.NewParser(jwt.WithPaddingAllowed()),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.httpClient == nil {
		c.httpClient = http.DefaultClient
	}

	if c.userAgent == "" {
		c.userAgent = userAgent()
	}

	return c
}

// version returns the module version of the risika package.
// It returns "devel" if built without module version information.
func version() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "devel"
	}

	for _, dep := range info.Deps {
		if dep.Path == modulePath {
			if dep.Version == "(devel)" {
				return "devel"
			}

			return dep.Version
		}
	}

	if info.Main.Path == modulePath {
		if info.Main.Version != "(devel)" {
			return info.Main.Version
		}
		for _, setting := range info.Settings {
			if setting.Key == "vcs.revision" && len(setting.Value) >= 7 {
				return "devel+" + setting.Value[:7]
			}
		}
	}

	return "devel"
}

// userAgent returns the default User-Agent string for this package.
func userAgent() string {
	return fmt.Sprintf("go-risika/%s (%s; %s/%s)", version(), runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
