package session

import "github.com/dmitrijs2005/goowi/internal/client/models"

type EventKind int

const (
	// EventLoggedIn follows a successful login or registration.
	EventLoggedIn EventKind = iota + 1
	// EventLoggedOut follows an explicit logout or a failed restore.
	EventLoggedOut
	// EventUnauthorized follows a teardown caused by a 401.
	EventUnauthorized
	// EventDetailsChanged follows every change of the account details.
	EventDetailsChanged
)

func (k EventKind) String() string {
	switch k {
	case EventLoggedIn:
		return "logged-in"
	case EventLoggedOut:
		return "logged-out"
	case EventUnauthorized:
		return "unauthorized"
	case EventDetailsChanged:
		return "details-changed"
	}
	return "unknown"
}

// Event carries a snapshot of the state right after the change.
type Event struct {
	Kind    EventKind
	Session *models.Session
	Details *models.UserDetails
}
