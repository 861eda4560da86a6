package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/goowi/internal/client/models"
)

func (c *HTTPClient) CreateProfile(ctx context.Context, payload any) error {
	return c.do(ctx, "create profile", http.MethodPost, "/profiles", nil, payload, nil)
}

func (c *HTTPClient) UpdateProfile(ctx context.Context, profileID string, payload any) error {
	return c.do(ctx, "update profile", http.MethodPut, "/profiles/"+url.PathEscape(profileID), nil, payload, nil)
}

func (c *HTTPClient) MyProfile(ctx context.Context) (*models.Profile, error) {
	var out models.Profile
	if err := c.do(ctx, "get profile", http.MethodGet, "/profiles/me", nil, nil, into(&out)); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Charities(ctx context.Context) ([]models.Profile, error) {
	var out []models.Profile
	if err := c.do(ctx, "list charities", http.MethodGet, "/profiles/all/charities", nil, nil, into(&out)); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) UserMetrics(ctx context.Context, profileID string) (models.UserMetrics, error) {
	out := models.UserMetrics{}
	if err := c.do(ctx, "get metrics", http.MethodGet, "/profiles/metrics/"+url.PathEscape(profileID), nil, nil, decodeMetrics(out)); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) ProfileBySlug(ctx context.Context, slug string) (*models.Profile, error) {
	var out models.Profile
	if err := c.do(ctx, "get profile by slug", http.MethodGet, "/profiles/slug/"+url.PathEscape(slug), nil, nil, into(&out)); err != nil {
		return nil, err
	}
	return &out, nil
}
