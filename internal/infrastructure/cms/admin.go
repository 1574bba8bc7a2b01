package cms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
)

// AdminUser is the administrator identity returned by the CMS session
// introspection endpoint
type AdminUser struct {
	ID       int    `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username,omitempty"`
}

// AdminLogin exchanges administrator credentials for a CMS session token.
// The token is what the storefront stores in the admin session cookie; the
// service never mints its own sessions.
func (c *Client) AdminLogin(ctx context.Context, email, password string) (string, error) {
	payload, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		return "", fmt.Errorf("cms: failed to marshal login request: %w", err)
	}

	respBody, err := c.doRaw(ctx, "POST", "/admin/login", nil, "application/json", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}

	var resp struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return "", fmt.Errorf("cms: failed to decode login response: %w", err)
	}
	if resp.Data.Token == "" {
		return "", fmt.Errorf("cms: login response carried no token")
	}
	return resp.Data.Token, nil
}

// Me introspects an administrator session token against the CMS. The token
// comes from the session cookie, not from the client's configured API token.
func (c *Client) Me(ctx context.Context, token string) (*AdminUser, error) {
	headers := map[string]string{"Authorization": "Bearer " + token}
	respBody, err := c.doRaw(ctx, "GET", "/admin/users/me", headers, "", nil)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Data AdminUser `json:"data"`
	}
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("cms: failed to decode session response: %w", err)
	}
	return &resp.Data, nil
}
