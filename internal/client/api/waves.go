package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dmitrijs2005/goowi/internal/client/models"
	"github.com/tidwall/gjson"
)

func (c *HTTPClient) CreateWave(ctx context.Context, payload any) error {
	return c.do(ctx, "create wave", http.MethodPost, "/waves", nil, payload, nil)
}

func (c *HTTPClient) UpdateWave(ctx context.Context, waveID string, payload any) error {
	return c.do(ctx, "update wave", http.MethodPatch, "/waves/"+url.PathEscape(waveID), nil, payload, nil)
}

func (c *HTTPClient) DeleteWave(ctx context.Context, waveID string) error {
	return c.do(ctx, "delete wave", http.MethodDelete, "/waves/"+url.PathEscape(waveID), nil, nil, nil)
}

func (c *HTTPClient) WavesByCreator(ctx context.Context, creatorID string) ([]models.Wave, error) {
	return c.waveList(ctx, "list creator waves", "/waves/creator/"+url.PathEscape(creatorID))
}

func (c *HTTPClient) WavesByCharity(ctx context.Context, charityID string) ([]models.Wave, error) {
	return c.waveList(ctx, "list charity waves", "/waves/charity/"+url.PathEscape(charityID))
}

func (c *HTTPClient) MyParticipations(ctx context.Context) ([]models.Wave, error) {
	return c.waveList(ctx, "list participations", "/waves/participant/part/users")
}

func (c *HTTPClient) ParticipationsOf(ctx context.Context, userID string) ([]models.Wave, error) {
	return c.waveList(ctx, "list participations", "/waves/participant/part/users/"+url.PathEscape(userID))
}

func (c *HTTPClient) SetCharityApproval(ctx context.Context, waveID string, status models.ApprovalStatus) error {
	in := map[string]models.ApprovalStatus{"status": status}
	return c.do(ctx, "set charity approval", http.MethodPatch, "/waves/"+url.PathEscape(waveID)+"/charity-approval", nil, in, nil)
}

func (c *HTTPClient) Participate(ctx context.Context, waveID string) error {
	return c.do(ctx, "participate", http.MethodPost, "/waves/part/"+url.PathEscape(waveID)+"/participants", nil, nil, nil)
}

func (c *HTTPClient) Hashtags(ctx context.Context) ([]string, error) {
	var out []string
	if err := c.do(ctx, "list hashtags", http.MethodGet, "/waves/all/hashtags", nil, nil, decodeHashtags(&out)); err != nil {
		return nil, err
	}
	return out, nil
}

// Waves fetches a page of the filtered listing. Hashtags are sent in the
// bracketed array form the backend parses: hashtags[]=a&hashtags[]=b.
func (c *HTTPClient) Waves(ctx context.Context, q WaveQuery) (*models.WavePage, error) {
	page, limit := q.Page, q.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	params := url.Values{
		"page":  {strconv.Itoa(page)},
		"limit": {strconv.Itoa(limit)},
	}
	for _, h := range q.Hashtags {
		params.Add("hashtags[]", h)
	}
	if q.Title != "" {
		params.Set("title", q.Title)
	}

	out := &models.WavePage{Page: page}
	if err := c.do(ctx, "list waves", http.MethodGet, "/waves/all/filter", params, nil, decodeWavePage(out)); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) waveList(ctx context.Context, op, path string) ([]models.Wave, error) {
	page := &models.WavePage{}
	if err := c.do(ctx, op, http.MethodGet, path, nil, nil, decodeWavePage(page)); err != nil {
		return nil, err
	}
	return page.Waves, nil
}

// decodeWavePage accepts a bare array of waves or an envelope holding the
// array under "waves" or "data", with optional paging counters.
func decodeWavePage(out *models.WavePage) func([]byte) error {
	return func(b []byte) error {
		root := gjson.ParseBytes(b)
		list := root
		if !root.IsArray() {
			list = root.Get("waves")
			if !list.Exists() {
				list = root.Get("data")
			}
			out.Total = int(root.Get("total").Int())
			if p := root.Get("totalPages"); p.Exists() {
				out.Pages = int(p.Int())
			}
			if p := root.Get("page"); p.Exists() {
				out.Page = int(p.Int())
			}
		}
		if !list.IsArray() {
			out.Waves = nil
			return nil
		}
		var waves []models.Wave
		if err := json.Unmarshal([]byte(list.Raw), &waves); err != nil {
			return err
		}
		out.Waves = waves
		if out.Total == 0 {
			out.Total = len(waves)
		}
		return nil
	}
}

// decodeHashtags accepts ["a","b"] as well as [{"hashtag":"a"}] or
// [{"_id":"a","count":3}], dropping blanks.
func decodeHashtags(out *[]string) func([]byte) error {
	return func(b []byte) error {
		root := gjson.ParseBytes(b)
		if !root.IsArray() {
			root = root.Get("hashtags")
		}
		tags := make([]string, 0)
		root.ForEach(func(_, v gjson.Result) bool {
			var tag string
			switch {
			case v.Type == gjson.String:
				tag = v.String()
			case v.Get("hashtag").Exists():
				tag = v.Get("hashtag").String()
			case v.Get("_id").Exists():
				tag = v.Get("_id").String()
			case v.Get("name").Exists():
				tag = v.Get("name").String()
			}
			if tag != "" {
				tags = append(tags, tag)
			}
			return true
		})
		*out = tags
		return nil
	}
}

func decodeMetrics(out models.UserMetrics) func([]byte) error {
	return func(b []byte) error {
		root := gjson.ParseBytes(b)
		if m := root.Get("metrics"); m.IsObject() {
			root = m
		}
		root.ForEach(func(k, v gjson.Result) bool {
			if v.Type == gjson.Number {
				out[k.String()] = v.Float()
			}
			return true
		})
		return nil
	}
}
