package api

import (
	"context"
	"net/http"
)

type sessionResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

type userResponse struct {
	User *User `json:"user"`
}

// Register creates an account and keeps the issued token for later calls.
func (c *Client) Register(ctx context.Context, name, email, password string) (*User, error) {
	var out sessionResponse
	body := map[string]string{"name": name, "email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/auth/register", body, &out); err != nil {
		return nil, err
	}
	c.SetToken(out.Token)
	return out.User, nil
}

// Login authenticates and keeps the issued token for later calls.
func (c *Client) Login(ctx context.Context, email, password string) (*User, error) {
	var out sessionResponse
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/auth/login", body, &out); err != nil {
		return nil, err
	}
	c.SetToken(out.Token)
	return out.User, nil
}

func (c *Client) Me(ctx context.Context) (*User, error) {
	var out userResponse
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, &out); err != nil {
		return nil, err
	}
	return out.User, nil
}

func (c *Client) UpdateProfile(ctx context.Context, name, email *string) (*User, error) {
	body := struct {
		Name  *string `json:"name,omitempty"`
		Email *string `json:"email,omitempty"`
	}{name, email}

	var out userResponse
	if err := c.do(ctx, http.MethodPut, "/auth/update", body, &out); err != nil {
		return nil, err
	}
	return out.User, nil
}

// Logout asks the server to revoke the token and forgets it locally even
// when the server call fails.
func (c *Client) Logout(ctx context.Context) error {
	err := c.do(ctx, http.MethodPost, "/auth/logout", nil, nil)
	c.SetToken("")
	return err
}

func (c *Client) RequestAvatarUpload(ctx context.Context, contentType string) (*AvatarUpload, error) {
	var out struct {
		Upload *AvatarUpload `json:"upload"`
	}
	body := map[string]string{"contentType": contentType}
	if err := c.do(ctx, http.MethodPost, "/auth/avatar", body, &out); err != nil {
		return nil, err
	}
	return out.Upload, nil
}
