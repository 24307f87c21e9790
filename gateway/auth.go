package gateway

import (
	"context"
	"net/http"
	"strings"
)

// AuthUser is the identity payload the upstream returns at login.
type AuthUser struct {
	ID        int    `json:"id"`
	Name      string `json:"name,omitempty"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Email     string `json:"email"`
	Role      string `json:"role"`
}

func (u AuthUser) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

type authResponse struct {
	User AuthUser `json:"user"`
}

// Login authenticates against the upstream. An identifier containing
// "@" is sent as `email`, anything else as `username`; the upstream
// accepts either field.
func (c *Client) Login(ctx context.Context, identifier, password string) (AuthUser, error) {
	payload := map[string]string{"password": password}
	if strings.Contains(identifier, "@") {
		payload["email"] = identifier
	} else {
		payload["username"] = identifier
	}

	var res authResponse
	if err := c.Request(ctx, http.MethodPost, "/auth/login/", nil, payload, &res); err != nil {
		return AuthUser{}, err
	}
	return res.User, nil
}

func (c *Client) Logout(ctx context.Context) error {
	return c.Request(ctx, http.MethodPost, "/auth/logout/", nil, nil, nil)
}

func (c *Client) CurrentUser(ctx context.Context) (AuthUser, error) {
	var res authResponse
	if err := c.Request(ctx, http.MethodGet, "/auth/me/", nil, nil, &res); err != nil {
		return AuthUser{}, err
	}
	return res.User, nil
}
