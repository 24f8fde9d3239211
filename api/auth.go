package api

import (
	"context"
	"net/http"

	"nightshift/model"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse はログイン結果です。
type LoginResponse struct {
	Organization *model.Organization `json:"organization"`
	Employee     *model.Employee     `json:"employee"`
	Message      string              `json:"message"`
}

type CurrentUserResponse struct {
	Employee *model.Employee `json:"employee"`
	Message  string          `json:"message"`
}

// Login stores the session cookie in the client's jar.
func (c *Client) Login(ctx context.Context, email, password string) (LoginResponse, error) {
	var out LoginResponse
	err := c.request(ctx, http.MethodPost, "/auth/login", LoginRequest{Email: email, Password: password}, &out)
	return out, err
}

func (c *Client) Logout(ctx context.Context) error {
	return c.request(ctx, http.MethodPost, "/auth/logout", struct{}{}, nil)
}

// CurrentUser returns nil when the session is not logged in.
func (c *Client) CurrentUser(ctx context.Context) (*model.Employee, error) {
	var out CurrentUserResponse
	if err := c.request(ctx, http.MethodGet, "/auth/current", nil, &out); err != nil {
		return nil, err
	}
	return out.Employee, nil
}

// ChangePassword は現在のユーザーのパスワードを変更します。
func (c *Client) ChangePassword(ctx context.Context, password string) error {
	in := map[string]string{"password": password, "confirmPassword": password}
	return c.request(ctx, http.MethodPost, "/auth/change-password", in, nil)
}

func (c *Client) Organization(ctx context.Context, id string) (model.Organization, error) {
	var out model.Organization
	err := c.request(ctx, http.MethodGet, "/organizations/"+id, nil, &out)
	return out, err
}
