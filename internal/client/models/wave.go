package models

import (
	"bytes"
	"encoding/json"
)

// ApprovalStatus is the charity's verdict on a wave created on its behalf.
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

// Valid reports whether s is one of the three known statuses.
func (s ApprovalStatus) Valid() bool {
	return s == ApprovalPending || s == ApprovalApproved || s == ApprovalRejected
}

// MaxWaveImages caps Wave.ImageURLs.
const MaxWaveImages = 3

// Wave is a cause-based campaign.
type Wave struct {
	ID                    string         `json:"_id,omitempty"`
	Title                 string         `json:"title"`
	ShortDescription      string         `json:"shortDescription"`
	LongDescription       string         `json:"longDescription,omitempty"`
	CauseName             string         `json:"causeName"`
	CharityID             Ref            `json:"charityId,omitzero"`
	SupportTypes          []string       `json:"supportTypes"`
	Location              string         `json:"location,omitempty"`
	EventLink             string         `json:"eventLink,omitempty"`
	ImageURLs             []string       `json:"imageUrls,omitempty"`
	Tags                  []string       `json:"tags,omitempty"`
	Hashtag               string         `json:"hashtag,omitempty"`
	AllowComments         bool           `json:"allowComments,omitempty"`
	Participants          []Ref          `json:"participants,omitempty"`
	CharityApprovalStatus ApprovalStatus `json:"charityApprovalStatus,omitempty"`
	CreatorID             Ref            `json:"creatorId,omitzero"`
	Comments              []Comment      `json:"comments,omitempty"`
}

// HasParticipant reports whether profileID is already in the participant list.
func (w *Wave) HasParticipant(profileID string) bool {
	if profileID == "" {
		return false
	}
	for _, p := range w.Participants {
		if p.ID == profileID {
			return true
		}
	}
	return false
}

// ApprovedComments counts comments a moderator has let through.
func (w *Wave) ApprovedComments() int {
	n := 0
	for _, c := range w.Comments {
		if c.IsApproved {
			n++
		}
	}
	return n
}

// Comment is a remark left on a wave.
type Comment struct {
	ID         string `json:"_id,omitempty"`
	Text       string `json:"text"`
	IsApproved bool   `json:"isApproved"`
}

// Ref points at another entity. The backend sends references either as a
// bare id string or as a populated object; both decode into Ref and a Ref
// always encodes back as the bare id.
type Ref struct {
	ID   string
	Name string
	Slug string
}

// RefTo builds an unpopulated reference.
func RefTo(id string) Ref { return Ref{ID: id} }

// IsZero lets omitempty-aware encoders skip empty references.
func (r Ref) IsZero() bool { return r.ID == "" }

// MarshalJSON encodes the reference as its id; an empty reference is null.
func (r Ref) MarshalJSON() ([]byte, error) {
	if r.ID == "" {
		return []byte("null"), nil
	}
	return json.Marshal(r.ID)
}

// UnmarshalJSON accepts "id", {"_id": ...} and null.
func (r *Ref) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*r = Ref{}
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var id string
		if err := json.Unmarshal(b, &id); err != nil {
			return err
		}
		*r = Ref{ID: id}
		return nil
	}
	var obj struct {
		ID        string `json:"_id"`
		Name      string `json:"name"`
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
		Slug      string `json:"slug"`
	}
	if err := json.Unmarshal(b, &obj); err != nil {
		return err
	}
	name := obj.Name
	if name == "" && (obj.FirstName != "" || obj.LastName != "") {
		name = obj.FirstName + " " + obj.LastName
	}
	*r = Ref{ID: obj.ID, Name: name, Slug: obj.Slug}
	return nil
}

// Display is the name when populated, otherwise the id.
func (r Ref) Display() string {
	if r.Name != "" {
		return r.Name
	}
	return r.ID
}

// WavePage is one page of the filtered wave listing.
type WavePage struct {
	Waves []Wave `json:"waves"`
	Total int    `json:"total"`
	Page  int    `json:"page"`
	Pages int    `json:"totalPages"`
}
