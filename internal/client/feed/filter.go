// Package feed is the home listing of waves: paged loading, filtering by
// title and hashtags, and optimistic participation.
package feed

import (
	"slices"
	"strings"

	"github.com/dmitrijs2005/goowi/internal/client/models"
)

// Filter narrows the listing. Title is a case-insensitive substring of the
// wave title; Tags is a set the wave's hashtag must belong to. Both
// conditions must hold. The zero Filter matches every wave.
type Filter struct {
	Title string
	Tags  []string
}

func (f Filter) IsZero() bool {
	return strings.TrimSpace(f.Title) == "" && len(f.Tags) == 0
}

func (f Filter) Match(w models.Wave) bool {
	if t := strings.TrimSpace(f.Title); t != "" {
		if !strings.Contains(strings.ToLower(w.Title), strings.ToLower(t)) {
			return false
		}
	}
	if len(f.Tags) > 0 {
		tag := normalizeTag(w.Hashtag)
		if !slices.ContainsFunc(f.Tags, func(s string) bool { return normalizeTag(s) == tag }) {
			return false
		}
	}
	return true
}

// Apply returns the waves matching f, in order.
func (f Filter) Apply(waves []models.Wave) []models.Wave {
	if f.IsZero() {
		return slices.Clone(waves)
	}
	out := make([]models.Wave, 0, len(waves))
	for _, w := range waves {
		if f.Match(w) {
			out = append(out, w)
		}
	}
	return out
}

func normalizeTag(s string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), "#"))
}
