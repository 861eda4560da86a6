package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/goowi/internal/client/models"
)

func (c *HTTPClient) Login(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	var out models.AuthResponse
	in := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, "login", http.MethodPost, "/auth/login", nil, in, into(&out)); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	var out models.AuthResponse
	if err := c.do(ctx, "register", http.MethodPost, "/auth/register", nil, req, into(&out)); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Me(ctx context.Context) (*models.MeResponse, error) {
	var out models.MeResponse
	if err := c.do(ctx, "me", http.MethodGet, "/auth/me", nil, nil, into(&out)); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) VerifyEmail(ctx context.Context, token string) error {
	q := url.Values{"token": {token}}
	return c.do(ctx, "verify email", http.MethodGet, "/auth/verify-email", q, nil, nil)
}

func (c *HTTPClient) ResendVerificationEmail(ctx context.Context) error {
	return c.do(ctx, "resend verification email", http.MethodGet, "/auth/resent-verify-email", nil, nil, nil)
}
