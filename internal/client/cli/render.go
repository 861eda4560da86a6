package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dmitrijs2005/goowi/internal/client/models"
	"github.com/dmitrijs2005/goowi/internal/client/services"
)

// cardActions lists what the viewer may do with a wave.
func cardActions(w models.Wave, d *models.UserDetails) []string {
	if d == nil || d.ProfileID == "" {
		return nil
	}
	own := w.CreatorID.ID == d.ProfileID
	var out []string
	if own {
		out = append(out, "editwave", "deletewave")
	} else if !w.HasParticipant(d.ProfileID) {
		out = append(out, "participate")
	}
	if !own && w.CharityID.ID == d.ProfileID && w.CharityApprovalStatus == models.ApprovalPending {
		out = append(out, "approve", "reject")
	}
	return out
}

func statusLabel(s models.ApprovalStatus) string {
	switch s {
	case models.ApprovalApproved:
		return "approved"
	case models.ApprovalRejected:
		return "rejected"
	case models.ApprovalPending:
		return "awaiting charity approval"
	}
	return "unknown"
}

// renderCard formats a wave as a numbered card.
func renderCard(n int, w models.Wave, d *models.UserDetails) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d. %s", n, w.Title)
	if w.Hashtag != "" {
		fmt.Fprintf(&b, "  #%s", strings.TrimPrefix(w.Hashtag, "#"))
	}
	b.WriteString("\n")
	if w.ShortDescription != "" {
		fmt.Fprintf(&b, "   %s\n", w.ShortDescription)
	}
	if w.CreatorID.ID != "" {
		fmt.Fprintf(&b, "   by %s", w.CreatorID.Display())
		if w.CharityID.ID != "" {
			fmt.Fprintf(&b, " for %s", w.CharityID.Display())
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "   cause: %s | status: %s | participants: %d", w.CauseName, statusLabel(w.CharityApprovalStatus), len(w.Participants))
	if n := w.ApprovedComments(); n > 0 {
		fmt.Fprintf(&b, " | comments: %d", n)
	}
	b.WriteString("\n")
	if len(w.SupportTypes) > 0 {
		fmt.Fprintf(&b, "   support: %s\n", strings.Join(w.SupportTypes, ", "))
	}
	if len(w.Tags) > 0 {
		fmt.Fprintf(&b, "   tags: %s\n", strings.Join(w.Tags, ", "))
	}
	if w.EventLink != "" {
		fmt.Fprintf(&b, "   event: %s\n", w.EventLink)
	}
	if d != nil && w.HasParticipant(d.ProfileID) {
		b.WriteString("   you participate\n")
	}
	if acts := cardActions(w, d); len(acts) > 0 {
		fmt.Fprintf(&b, "   actions: %s %d\n", strings.Join(acts, fmt.Sprintf(" %d, ", n)), n)
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderWaves(waves []models.Wave, d *models.UserDetails) string {
	if len(waves) == 0 {
		return "No waves found."
	}
	cards := make([]string, len(waves))
	for i, w := range waves {
		cards[i] = renderCard(i+1, w, d)
	}
	return strings.Join(cards, "\n\n")
}

func renderProfile(p models.Profile) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s", p.Name)
	if p.Role != "" {
		fmt.Fprintf(&b, " (%s)", p.Role)
	}
	b.WriteString("\n")
	line := func(label, v string) {
		if v != "" {
			fmt.Fprintf(&b, "  %s: %s\n", label, v)
		}
	}
	list := func(label string, v []string) {
		if len(v) > 0 {
			fmt.Fprintf(&b, "  %s: %s\n", label, strings.Join(v, ", "))
		}
	}
	line("About", p.ShortDescription)
	line("Overview", p.Overview)
	line("Industry", p.Industry)
	line("Location", p.Location)
	line("Address", p.Address)
	line("Phone", p.Phone)
	line("Website", p.Website)
	list("Social media", p.SocialMediaLinks)
	list("Values", p.Values)
	list("Causes", p.CausesSupported)
	list("Support types", p.SupportTypes)
	list("Certifications", p.Certifications)
	line("Impact", p.ImpactMetrics)
	line("Profile", p.Slug)
	return strings.TrimRight(b.String(), "\n")
}

func renderMetrics(m models.UserMetrics) string {
	if len(m) == 0 {
		return ""
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s: %g", k, m[k])
	}
	return "  " + strings.Join(parts, " | ")
}

func renderPublic(pp *services.PublicProfile) string {
	var b strings.Builder
	b.WriteString(renderProfile(pp.Profile))
	if m := renderMetrics(pp.Metrics); m != "" {
		b.WriteString("\n" + m)
	}
	section := func(title string, ws []models.Wave) {
		if len(ws) == 0 {
			return
		}
		fmt.Fprintf(&b, "\n%s:", title)
		for _, w := range ws {
			fmt.Fprintf(&b, "\n  - %s [%s]", w.Title, statusLabel(w.CharityApprovalStatus))
		}
	}
	section("Waves created", pp.Created)
	section("Waves for this charity", pp.ForCharity)
	section("Participating in", pp.Participated)
	return b.String()
}
