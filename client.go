package zoominfo

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"runtime"
	"runtime/debug"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// ProductionURL is the official API endpoint.
	ProductionURL = "https://api.zoominfo.com/"

	modulePath = "thde.io/zoominfo"
)

var (
	// ErrStatus is returned when the API returns an unexpected status code.
	ErrStatus = errors.New("unexpected status code")
	// ErrUnauthorized matches every authorization failure, local or remote.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrNotAuthenticated is returned when a search is made before [Client.Authenticate].
	ErrNotAuthenticated = fmt.Errorf("not authenticated: %w", ErrUnauthorized)
	// ErrNoToken is returned when the authentication response carries no JWT.
	ErrNoToken = errors.New("JWT token not found in authentication response")
)

// Client holds configuration needed to call the ZoomInfo API.
// Use [New] to create a new client.
type Client struct {
	baseURL *url.URL

	httpClient *http.Client
	userAgent  string
	logger     *slog.Logger

	autoAuth bool

	auth *tokenStore
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

// WithUserAgent sets a custom User-Agent header for API requests.
func WithUserAgent(userAgent string) ClientOption {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithLogger sets the logger used for debug output. Credentials are never logged.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithAutoAuthenticate lets search calls obtain a token on demand when none is
// cached or the cached one has expired.
// Without it, searching before [Client.Authenticate] returns [ErrNotAuthenticated].
func WithAutoAuthenticate() ClientOption {
	return func(c *Client) {
		c.autoAuth = true
	}
}

// WithPrivateKey switches authentication to PKI mode: instead of sending the
// password, the client signs a short-lived assertion for clientID with key.
func WithPrivateKey(clientID string, key *rsa.PrivateKey) ClientOption {
	return func(c *Client) {
		c.auth.clientID = clientID
		c.auth.privateKey = key
	}
}

// New creates a ZoomInfo API client for the given credentials.
// The client defaults to the production endpoint and applies any
// provided options.
func New(username, password string, opts ...ClientOption) *Client {
	productionURL, _ := url.Parse(ProductionURL)

	c := &Client{
		baseURL: productionURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		auth: &tokenStore{
			username: username,
			password: password,
			parser:   jwt.NewParser(),
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.userAgent == "" {
		c.userAgent = userAgent()
	}
	if c.logger == nil {
		c.logger = slog.New(slog.DiscardHandler)
	}

	return c
}

// version returns the module version of the zoominfo package.
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

	if info.Main.Path == modulePath && info.Main.Version != "(devel)" {
		return info.Main.Version
	}

	return "devel"
}

func userAgent() string {
	return fmt.Sprintf("go-zoominfo/%s (%s; %s/%s)",
		version(), runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
