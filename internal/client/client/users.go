package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/nutricare/nutricare-client/internal/client/models"
)

func (c *HTTPClient) Register(ctx context.Context, req models.SignupRequest) error {
	return c.sendJSON(ctx, http.MethodPost, pathUsers, req, nil)
}

// Login posts the credentials as form parameters. A null body means the
// credentials were rejected.
func (c *HTTPClient) Login(ctx context.Context, email, password string) (*models.LoginResponse, error) {
	form := url.Values{}
	form.Set("email", email)
	form.Set("password", password)

	var resp *models.LoginResponse
	if _, err := c.do(ctx, formCall(http.MethodPost, pathLogin, form), &resp); err != nil {
		return nil, err
	}
	if resp == nil || resp.Token == "" {
		return nil, fmt.Errorf("%w: invalid email or password", ErrUnauthorized)
	}
	return resp, nil
}

func (c *HTTPClient) Me(ctx context.Context) (*models.UserDetail, error) {
	var resp *models.UserDetail
	if err := c.get(ctx, pathMe, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *HTTPClient) UpdateMyInfo(ctx context.Context, req models.UserUpdate) error {
	return c.sendJSON(ctx, http.MethodPatch, pathMe+"/info", req, nil)
}

func (c *HTTPClient) UpdateMyPassword(ctx context.Context, req models.PasswordUpdate) error {
	return c.sendJSON(ctx, http.MethodPatch, pathMe+"/password", req, nil)
}

func (c *HTTPClient) DeleteMe(ctx context.Context) error {
	return c.delete(ctx, pathMe)
}
