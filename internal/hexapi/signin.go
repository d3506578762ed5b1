// ABOUTME: Sign-in and session verification calls
// ABOUTME: POST /admin/signin and POST /api/user/check

package hexapi

import (
	"context"
	"net/http"
)

// SignIn posts credentials and returns the session token with its declared
// expiry. Credential and validation failures come back as *APIError.
func (c *Client) SignIn(ctx context.Context, username, password string) (SignInResult, error) {
	body := map[string]string{
		"username": username,
		"password": password,
	}

	var res SignInResult
	if err := c.doJSON(ctx, http.MethodPost, c.base+"/admin/signin", body, &res); err != nil {
		return SignInResult{}, err
	}
	return res, nil
}

// CheckSession verifies the current authorization slot against the API.
// A 401/403 means the session is no longer valid.
func (c *Client) CheckSession(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodPost, c.base+"/api/user/check", nil, nil)
}
