package models

import (
	"regexp"
	"strings"
)

// Profile is the public identity of an account. Fields that only exist for
// some roles are left empty for the others.
type Profile struct {
	ID     string `json:"_id,omitempty"`
	UserID Ref    `json:"userId,omitzero"`
	Role   Role   `json:"role,omitempty"`
	Slug   string `json:"slug,omitempty"`

	Name             string   `json:"name"`
	ShortDescription string   `json:"shortDescription,omitempty"`
	Overview         string   `json:"overview,omitempty"`
	Location         string   `json:"location,omitempty"`
	Phone            string   `json:"phone,omitempty"`
	LogoImage        string   `json:"logoImage,omitempty"`
	BannerImage      string   `json:"bannerImage,omitempty"`
	SocialMediaLinks []string `json:"socialMediaLinks,omitempty"`
	Values           []string `json:"values,omitempty"`
	SupportTypes     []string `json:"supportTypes,omitempty"`
	CausesSupported  []string `json:"causesSupported,omitempty"`

	// company and charity
	Industry       string   `json:"industry,omitempty"`
	Website        string   `json:"website,omitempty"`
	Address        string   `json:"address,omitempty"`
	Certifications []string `json:"certifications,omitempty"`

	// charity
	ImpactMetrics string `json:"impactMetrics,omitempty"`
}

var whitespace = regexp.MustCompile(`\s+`)

// Slugify derives the public lookup key from a profile name: lower case with
// whitespace runs replaced by a single dash.
func Slugify(name string) string {
	return whitespace.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "-")
}

// UserMetrics holds the social counters shown on a profile page. The backend
// returns a flat object of numbers; unknown keys are kept.
type UserMetrics map[string]float64
