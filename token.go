package zoominfo

import (
	"context"
	"crypto/rsa"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// assertionAudience and assertionIssuer identify PKI client assertions.
	assertionAudience = "enterprise_api"
	assertionIssuer   = "api-client@zoominfo.com"
	assertionLifetime = 5 * time.Minute

	// expiryLeeway makes a token count as expired slightly before its exp claim.
	expiryLeeway = 2 * time.Minute
)

type tokenStore struct {
	sync.Mutex

	username string
	password string

	clientID   string
	privateKey *rsa.PrivateKey

	token     string
	expiresAt time.Time

	parser *jwt.Parser
}

// assertionClaims are signed by the client in PKI mode.
type assertionClaims struct {
	Username string `json:"username"`
	ClientID string `json:"client_id"`
	jwt.RegisteredClaims
}

type AuthenticateRequest struct {
	Username string `json:"username"`
	Password string `json:"password,omitempty"`
}

type AuthenticateResponse struct {
	JWT string `json:"jwt"`
}

// Authenticate exchanges the client's credentials for a JWT, caches it for
// subsequent searches and returns it.
func (c *Client) Authenticate(ctx context.Context) (string, error) {
	c.auth.Lock()
	defer c.auth.Unlock()

	return c.authenticateLocked(ctx)
}

func (c *Client) authenticateLocked(ctx context.Context) (string, error) {
	body := AuthenticateRequest{Username: c.auth.username}
	if c.auth.privateKey == nil {
		body.Password = c.auth.password
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/authenticate", body)
	if err != nil {
		return "", err
	}

	if c.auth.privateKey != nil {
		assertion, err := c.auth.signAssertion(time.Now())
		if err != nil {
			return "", err
		}
		req.Header.Set("Authorization", "Bearer "+assertion)
	}

	c.logger.DebugContext(ctx, "authenticating",
		slog.String("username", c.auth.username),
		slog.Bool("pki", c.auth.privateKey != nil),
	)

	var authResp AuthenticateResponse
	if _, err := c.doJSON(req, &authResp); err != nil {
		return "", err
	}

	if authResp.JWT == "" {
		return "", ErrNoToken
	}

	c.auth.updateToken(authResp.JWT)

	c.logger.DebugContext(ctx, "authenticated", slog.Time("expires_at", c.auth.expiresAt))

	return c.auth.token, nil
}

// Token returns the cached token, or an empty string before authentication.
func (c *Client) Token() string {
	c.auth.Lock()
	defer c.auth.Unlock()

	return c.auth.token
}

// TokenExpiresAt returns the expiry of the cached token.
// ok is false when no token is cached or the token carries no exp claim.
func (c *Client) TokenExpiresAt() (t time.Time, ok bool) {
	c.auth.Lock()
	defer c.auth.Unlock()

	if c.auth.token == "" || c.auth.expiresAt.IsZero() {
		return time.Time{}, false
	}

	return c.auth.expiresAt, true
}

// bearer returns the token to send with a search, authenticating first when
// the client is allowed to.
func (c *Client) bearer(ctx context.Context) (string, error) {
	c.auth.Lock()
	defer c.auth.Unlock()

	if !c.autoAuth {
		if c.auth.token == "" {
			return "", ErrNotAuthenticated
		}
		return c.auth.token, nil
	}

	if !c.auth.expired(time.Now()) {
		return c.auth.token, nil
	}

	return c.authenticateLocked(ctx)
}

// expired reports whether a new token is needed. Tokens without a known
// expiry are trusted until replaced.
func (ts *tokenStore) expired(now time.Time) bool {
	if ts == nil || ts.token == "" {
		return true
	}
	if ts.expiresAt.IsZero() {
		return false
	}

	return now.Add(expiryLeeway).After(ts.expiresAt)
}

// updateToken stores token and records its expiry if it can be read.
func (ts *tokenStore) updateToken(token string) {
	ts.token = token
	ts.expiresAt = ts.readExpiry(token)
}

// readExpiry extracts the exp claim without verifying the signature; the
// client never holds the key the API signs with.
func (ts *tokenStore) readExpiry(token string) time.Time {
	claims := jwt.RegisteredClaims{}
	if _, _, err := ts.parser.ParseUnverified(token, &claims); err != nil {
		return time.Time{}
	}
	if claims.ExpiresAt == nil {
		return time.Time{}
	}

	return claims.ExpiresAt.Time
}

// signAssertion builds the RS256 client assertion used for PKI authentication.
func (ts *tokenStore) signAssertion(now time.Time) (string, error) {
	claims := assertionClaims{
		Username: ts.username,
		ClientID: ts.clientID,
		RegisteredClaims: jwt.RegisteredClaims{
			Audience:  jwt.ClaimStrings{assertionAudience},
			Issuer:    assertionIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(assertionLifetime)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(ts.privateKey)
	if err != nil {
		return "", fmt.Errorf("sign client assertion: %w", err)
	}

	return signed, nil
}
