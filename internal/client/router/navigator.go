package router

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/goowi/internal/client/models"
	"github.com/dmitrijs2005/goowi/internal/client/session"
	"github.com/dmitrijs2005/goowi/internal/logging"
)

// SessionSource is the part of session.Store the navigator depends on.
type SessionSource interface {
	Session() *models.Session
	Details() *models.UserDetails
	Subscribe(fn func(session.Event)) func()
}

// Navigator owns the current location. Every move goes through the guard of
// the target route, and session events move the location on their own.
type Navigator struct {
	sessions SessionSource
	log      logging.Logger

	mu       sync.Mutex
	current  Match
	onChange func(Match)

	unsubscribe func()
}

// maxRedirects bounds guard chains; the table never needs more than two.
const maxRedirects = 4

func NewNavigator(s SessionSource, log logging.Logger) *Navigator {
	if log == nil {
		log = logging.Discard()
	}
	n := &Navigator{sessions: s, log: log}
	n.unsubscribe = s.Subscribe(n.handle)
	return n
}

// OnChange registers fn to be called with every new location.
func (n *Navigator) OnChange(fn func(Match)) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.onChange = fn
}

// Current returns the current location.
func (n *Navigator) Current() Match {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current
}

// Navigate moves to path, following guard redirects, and returns where it
// ended up.
func (n *Navigator) Navigate(path string) Match {
	m := n.resolve(path)

	n.mu.Lock()
	changed := m.Path != n.current.Path
	n.current = m
	fn := n.onChange
	n.mu.Unlock()

	if changed {
		n.log.Debug(context.Background(), "navigate", "requested", path, "path", m.Path)
	}
	if fn != nil {
		fn(m)
	}
	return m
}

func (n *Navigator) resolve(path string) Match {
	m := Resolve(path)
	for i := 0; i < maxRedirects; i++ {
		target := m.Route.Guard.Check(n.sessions.Session() != nil)
		if target == "" {
			target = n.onboarding(m)
		}
		if target == "" || target == m.Path {
			return m
		}
		m = Resolve(target)
	}
	return m
}

// onboarding sends accounts without a profile from the home page to the
// profile completion page.
func (n *Navigator) onboarding(m Match) string {
	if m.Route.Pattern != PathHome {
		return ""
	}
	d := n.sessions.Details()
	if d != nil && !d.ProfileExists {
		return PathCompleteRegistration
	}
	return ""
}

func (n *Navigator) handle(e session.Event) {
	switch e.Kind {
	case session.EventUnauthorized, session.EventLoggedOut:
		n.Navigate(PathLogin)
	case session.EventLoggedIn:
		n.Navigate(PathHome)
	case session.EventDetailsChanged:
		if n.Current().Route.Pattern == PathHome {
			n.Navigate(PathHome)
		}
	}
}

// Close stops following session events.
func (n *Navigator) Close() {
	if n.unsubscribe != nil {
		n.unsubscribe()
	}
}
