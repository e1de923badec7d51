package taiga

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/riordanpawley/melia/internal/domain"
)

// expirySkew refreshes the token slightly before its exp claim so calls
// issued right at the boundary don't bounce off a 401 first.
const expirySkew = 30 * time.Second

type loginRequest struct {
	Type     string `json:"type"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	AuthToken string `json:"auth_token"`
	Refresh   string `json:"refresh"`
	ID        int    `json:"id"`
	Username  string `json:"username"`
	FullName  string `json:"full_name"`
}

type refreshRequest struct {
	Refresh string `json:"refresh"`
}

type refreshResponse struct {
	AuthToken string `json:"auth_token"`
	Refresh   string `json:"refresh"`
}

// Login authenticates with username/password, stores the issued token
// pair and returns the logged-in user.
func (c *Client) Login(ctx context.Context, username, password string) (*domain.User, error) {
	c.logger.Info("logging in", "username", username)

	status, body, err := c.send(ctx, http.MethodPost, "/auth", loginRequest{
		Type:     "normal",
		Username: username,
		Password: password,
	}, nil, false)
	if err != nil {
		return nil, newTransportError("login", 0, err)
	}
	if status < 200 || status >= 300 {
		return nil, newRemoteError("login", 0, status, body)
	}

	var resp loginResponse
	if err := decode(body, &resp); err != nil {
		return nil, newTransportError("login", 0, err)
	}

	creds := Credentials{AuthToken: resp.AuthToken, RefreshToken: resp.Refresh}
	c.setCredentials(creds)
	if c.store != nil {
		if err := c.store.SaveCredentials(creds); err != nil {
			c.logger.Warn("failed to persist credentials", "error", err)
		}
	}

	return c.Me(ctx)
}

// Logout discards the token pair locally. The service keeps no session
// state beyond the tokens.
func (c *Client) Logout() {
	c.logger.Info("logging out")
	c.clearCredentials()
}

// Me fetches the logged-in user.
func (c *Client) Me(ctx context.Context) (*domain.User, error) {
	var user domain.User
	if err := c.request(ctx, "me", http.MethodGet, "/users/me", nil, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// refreshAuthToken exchanges the refresh token for a new auth token.
// Failure here is terminal: credentials are cleared and an AuthError is
// returned so the caller forces a logout instead of retrying.
func (c *Client) refreshAuthToken(ctx context.Context) error {
	refresh := c.Credentials().RefreshToken
	if refresh == "" {
		c.clearCredentials()
		return newAuthError(errors.New("no refresh token available"))
	}

	status, body, err := c.send(ctx, http.MethodPost, "/auth/refresh", refreshRequest{Refresh: refresh}, nil, false)
	if err != nil {
		c.clearCredentials()
		return newAuthError(err)
	}
	if status < 200 || status >= 300 {
		c.clearCredentials()
		return newAuthError(fmt.Errorf("refresh rejected with HTTP %d", status))
	}

	var resp refreshResponse
	if err := decode(body, &resp); err != nil {
		c.clearCredentials()
		return newAuthError(err)
	}

	creds := Credentials{AuthToken: resp.AuthToken, RefreshToken: refresh}
	if resp.Refresh != "" {
		creds.RefreshToken = resp.Refresh
	}
	c.setCredentials(creds)
	if c.store != nil {
		if err := c.store.SaveCredentials(creds); err != nil {
			c.logger.Warn("failed to persist refreshed credentials", "error", err)
		}
	}

	c.logger.Debug("auth token refreshed")
	return nil
}

// refreshIfExpiring proactively refreshes when the auth token's exp
// claim is inside the skew window. Best effort: a token that is not a
// parseable JWT, or a failed refresh, falls back to the reactive 401
// path.
func (c *Client) refreshIfExpiring(ctx context.Context) {
	token := c.Credentials().AuthToken
	if token == "" {
		return
	}

	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return
	}
	if claims.ExpiresAt == nil {
		return
	}
	if c.now().Add(expirySkew).Before(claims.ExpiresAt.Time) {
		return
	}

	c.logger.Debug("auth token near expiry, refreshing proactively")
	if err := c.refreshAuthToken(ctx); err != nil {
		c.logger.Debug("proactive refresh failed", "error", err)
	}
}
