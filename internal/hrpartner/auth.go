package hrpartner

import (
	"context"
	"net/http"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates against the backend. The response shape has drifted
// over time (several token field names, sometimes a bare token body), so the
// raw decoded payload is returned for the session store to interpret.
func (c *Client) Login(ctx context.Context, email, password string) (any, error) {
	var raw any
	if err := c.sendJSON(ctx, http.MethodPost, "/auth/login", loginRequest{Email: email, Password: password}, &raw); err != nil {
		return nil, err
	}

	return raw, nil
}

// Register creates a new backend account. It never logs the user in.
func (c *Client) Register(ctx context.Context, username, email, password string) error {
	return c.sendJSON(ctx, http.MethodPost, "/auth/register", registerRequest{
		Username: username,
		Email:    email,
		Password: password,
	}, nil)
}
