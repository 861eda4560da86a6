// Package router maps locations to views and decides, from the session,
// whether a location may be shown or where to redirect instead.
package router

import "strings"

const (
	PathLogin                = "/login"
	PathRegister             = "/register"
	PathVerifyEmail          = "/verify-email/:token"
	PathHome                 = "/home"
	PathNewWave              = "/new-wave"
	PathProfile              = "/profile"
	PathPublicProfile        = "/profile/:slug"
	PathCompleteRegistration = "/complete-registration"
)

// Guard is the access policy of a route.
type Guard int

const (
	// Open routes are reachable in any state.
	Open Guard = iota
	// RequireAuth routes redirect to the login page without a session.
	RequireAuth
	// RequireAnonymous routes redirect to the home page with a session.
	RequireAnonymous
)

func (g Guard) String() string {
	switch g {
	case RequireAuth:
		return "auth"
	case RequireAnonymous:
		return "anonymous"
	}
	return "open"
}

// Check returns the redirect target for the given state, or "" when the
// route may be shown.
func (g Guard) Check(authenticated bool) string {
	switch {
	case g == RequireAuth && !authenticated:
		return PathLogin
	case g == RequireAnonymous && authenticated:
		return PathHome
	}
	return ""
}

type Route struct {
	Pattern string
	Guard   Guard
}

// Routes is the routing table in match order.
var Routes = []Route{
	{Pattern: PathLogin, Guard: RequireAnonymous},
	{Pattern: PathRegister, Guard: RequireAnonymous},
	{Pattern: PathVerifyEmail, Guard: Open},
	{Pattern: PathHome, Guard: RequireAuth},
	{Pattern: PathNewWave, Guard: RequireAuth},
	{Pattern: PathProfile, Guard: RequireAuth},
	{Pattern: PathPublicProfile, Guard: Open},
	{Pattern: PathCompleteRegistration, Guard: RequireAuth},
}

// Match is a resolved location.
type Match struct {
	Route  Route
	Path   string
	Params map[string]string
}

// Param returns the value of a ":name" segment, or "".
func (m Match) Param(name string) string {
	return m.Params[name]
}

// Resolve matches path against the table. Unknown paths resolve to the login
// route.
func Resolve(path string) Match {
	path = normalize(path)
	for _, r := range Routes {
		if params, ok := match(r.Pattern, path); ok {
			return Match{Route: r, Path: path, Params: params}
		}
	}
	return Resolve(PathLogin)
}

func normalize(path string) string {
	path = strings.TrimSpace(path)
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	path = "/" + strings.Trim(path, "/")
	return path
}

func match(pattern, path string) (map[string]string, bool) {
	ps := strings.Split(strings.Trim(pattern, "/"), "/")
	xs := strings.Split(strings.Trim(path, "/"), "/")
	if len(ps) != len(xs) {
		return nil, false
	}

	params := map[string]string{}
	for i, p := range ps {
		if name, ok := strings.CutPrefix(p, ":"); ok {
			if xs[i] == "" {
				return nil, false
			}
			params[name] = xs[i]
			continue
		}
		if p != xs[i] {
			return nil, false
		}
	}
	return params, true
}

// Build fills the ":name" segments of pattern.
//
//	router.Build(router.PathPublicProfile, "slug", "green-earth") // "/profile/green-earth"
func Build(pattern string, kv ...string) string {
	out := pattern
	for i := 0; i+1 < len(kv); i += 2 {
		out = strings.Replace(out, ":"+kv[i], kv[i+1], 1)
	}
	return out
}
