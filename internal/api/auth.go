package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/thenoetrevino/agency/internal/models"
)

// TokenResponse is the body of a successful login
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Login exchanges credentials for a bearer token. The backend uses the OAuth2
// password form, with the employee ID as the username.
func (c *Client) Login(ctx context.Context, empID, password string) (*TokenResponse, error) {
	form := url.Values{}
	form.Set("username", empID)
	form.Set("password", password)

	var tok TokenResponse
	if err := c.do(ctx, http.MethodPost, "/login/access-token", form, &tok, false); err != nil {
		return nil, err
	}
	return &tok, nil
}

// Me returns the user the current token belongs to
func (c *Client) Me(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := c.get(ctx, "/users/me", &user); err != nil {
		return nil, err
	}
	return &user, nil
}
