package models

import "time"

// Session is the identity carried by the bearer credential.
type Session struct {
	Email     string
	Role      Role
	ExpiresAt time.Time
}

// User is the account as returned by the auth endpoints.
type User struct {
	ID         string `json:"_id"`
	Email      string `json:"email"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Role       Role   `json:"role"`
	IsVerified bool   `json:"isVerified"`
}

// UserDetails is the denormalised projection of the account used by every
// protected view: account fields, the id of the profile (if any) and whether
// onboarding has been completed.
type UserDetails struct {
	UserID         string
	ProfileID      string
	Email          string
	FirstName      string
	LastName       string
	Role           Role
	IsVerified     bool
	ProfileExists  bool
	ProfilePicture string
}

// MeResponse is the wire shape of GET /auth/me.
type MeResponse struct {
	User           User   `json:"user"`
	ProfileID      string `json:"profileId"`
	ProfileExists  bool   `json:"profileExists"`
	ProfilePicture string `json:"profilePicture"`
}

// Details flattens the response into UserDetails.
func (m MeResponse) Details() UserDetails {
	return UserDetails{
		UserID:         m.User.ID,
		ProfileID:      m.ProfileID,
		Email:          m.User.Email,
		FirstName:      m.User.FirstName,
		LastName:       m.User.LastName,
		Role:           m.User.Role,
		IsVerified:     m.User.IsVerified,
		ProfileExists:  m.ProfileExists,
		ProfilePicture: m.ProfilePicture,
	}
}

// AuthResponse is returned by login and registration.
type AuthResponse struct {
	AccessToken string `json:"accessToken"`
	User        User   `json:"user"`
}

// RegisterRequest is the registration form.
type RegisterRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Role      Role   `json:"role"`
}
