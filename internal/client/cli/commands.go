package cli

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/goowi/internal/client/api"
	"github.com/dmitrijs2005/goowi/internal/client/feed"
	"github.com/dmitrijs2005/goowi/internal/client/form"
	"github.com/dmitrijs2005/goowi/internal/client/media"
	"github.com/dmitrijs2005/goowi/internal/client/router"
	"github.com/dmitrijs2005/goowi/internal/client/services"
	"github.com/dmitrijs2005/goowi/internal/common"
)

var (
	errUnknownCommand = errors.New("unknown command")
	errRedirected     = errors.New("redirected")
	errUsage          = errors.New("usage")
	errNoSuchItem     = errors.New("no such item in the last listing")
)

// command is a REPL verb. When route is set the command first navigates
// there and only runs if the navigator lands on that route.
type command struct {
	name  string
	usage string
	help  string
	route func(args []string) string
	run   func(a *App, ctx context.Context, args []string) error
}

func at(path string) func([]string) string {
	return func([]string) string { return path }
}

var commands = []command{
	{name: "login", help: "log in", route: at(router.PathLogin), run: (*App).login},
	{name: "register", help: "create an account", route: at(router.PathRegister), run: (*App).register},
	{name: "verify", usage: "verify <token>", help: "verify your email address",
		route: func(args []string) string { return router.Build(router.PathVerifyEmail, "token", first(args)) },
		run:   (*App).verify},
	{name: "resend", help: "resend the verification email", route: at(router.PathProfile), run: (*App).resend},
	{name: "logout", help: "log out", run: (*App).logout},

	{name: "home", help: "show the wave feed", route: at(router.PathHome), run: (*App).home},
	{name: "filter", usage: "filter [title=<text>] [tags=<a,b>] | filter clear", help: "filter the feed",
		route: at(router.PathHome), run: (*App).filter},
	{name: "more", help: "load the next page of the feed", route: at(router.PathHome), run: (*App).more},
	{name: "participate", usage: "participate <n>", help: "join wave n of the last listing",
		route: at(router.PathHome), run: (*App).participate},
	{name: "charities", usage: "charities [name]", help: "list charities", route: at(router.PathHome), run: (*App).charities},

	{name: "newwave", help: "create a wave", route: at(router.PathNewWave), run: (*App).newWave},
	{name: "mywaves", help: "list your waves", route: at(router.PathProfile), run: (*App).myWaves},
	{name: "joined", help: "list waves you participate in", route: at(router.PathProfile), run: (*App).joined},
	{name: "requests", help: "list waves created for your charity", route: at(router.PathProfile), run: (*App).requests},
	{name: "editwave", usage: "editwave <n>", help: "edit wave n of the last listing",
		route: at(router.PathProfile), run: (*App).editWave},
	{name: "deletewave", usage: "deletewave <n>", help: "delete wave n of the last listing",
		route: at(router.PathProfile), run: (*App).deleteWave},
	{name: "approve", usage: "approve <n>", help: "approve wave n as its charity",
		route: at(router.PathProfile), run: (*App).approve},
	{name: "reject", usage: "reject <n>", help: "reject wave n as its charity",
		route: at(router.PathProfile), run: (*App).reject},

	{name: "profile", help: "show your profile", route: at(router.PathProfile), run: (*App).profile},
	{name: "editprofile", help: "edit your profile", route: at(router.PathProfile), run: (*App).editProfile},
	{name: "complete", help: "complete your registration", route: at(router.PathCompleteRegistration), run: (*App).complete},
	{name: "show", usage: "show <slug>", help: "show a public profile",
		route: func(args []string) string { return router.Build(router.PathPublicProfile, "slug", first(args)) },
		run:   (*App).show},
}

// pages maps each route to the command rendering it, for "go".
var pages = map[string]string{
	router.PathLogin:                "login",
	router.PathRegister:             "register",
	router.PathVerifyEmail:          "verify",
	router.PathHome:                 "home",
	router.PathNewWave:              "newwave",
	router.PathProfile:              "profile",
	router.PathPublicProfile:        "show",
	router.PathCompleteRegistration: "complete",
}

func lookup(name string) (command, bool) {
	i := slices.IndexFunc(commands, func(c command) bool { return c.name == name })
	if i < 0 {
		return command{}, false
	}
	return commands[i], true
}

func first(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

func (a *App) help() string {
	var b strings.Builder
	b.WriteString("Available commands:\n")
	for _, c := range commands {
		if c.route != nil {
			want := router.Resolve(c.route([]string{"x"}))
			if want.Route.Guard.Check(a.isLoggedIn()) != "" {
				continue
			}
		}
		u := c.usage
		if u == "" {
			u = c.name
		}
		fmt.Fprintf(&b, "  %-52s %s\n", u, c.help)
	}
	fmt.Fprintf(&b, "  %-52s %s\n", "go <path>", "open a page by path")
	b.WriteString("  help, exit")
	return b.String()
}

func (a *App) dispatch(ctx context.Context, name string, args []string) error {
	if name == "go" {
		return a.goTo(ctx, args)
	}
	c, ok := lookup(name)
	if !ok {
		return errUnknownCommand
	}
	if c.route != nil {
		path := c.route(args)
		want := router.Resolve(path)
		got := a.nav.Navigate(path)
		if got.Route.Pattern != want.Route.Pattern {
			a.redirected(got)
			return errRedirected
		}
	}
	return c.run(a, ctx, args)
}

func (a *App) redirected(m router.Match) {
	switch m.Route.Pattern {
	case router.PathLogin:
		a.println("Please log in first (login or register).")
	case router.PathCompleteRegistration:
		a.println("Please complete your profile first (complete).")
	case router.PathHome:
		a.println("You are already logged in.")
	default:
		a.printf("Redirected to %s.\n", m.Path)
	}
}

// goTo navigates to path and renders whatever page the navigator settles on.
func (a *App) goTo(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: go <path>", errUsage)
	}
	m := a.nav.Navigate(args[0])
	name, ok := pages[m.Route.Pattern]
	if !ok {
		return errUnknownCommand
	}
	var pageArgs []string
	switch m.Route.Pattern {
	case router.PathVerifyEmail:
		pageArgs = []string{m.Param("token")}
	case router.PathPublicProfile:
		pageArgs = []string{m.Param("slug")}
	}
	c, _ := lookup(name)
	return c.run(a, ctx, pageArgs)
}

// index parses a 1-based position in the last listing.
func (a *App) index(args []string) (int, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("%w: <n>", errUsage)
	}
	n, err := strconv.Atoi(args[0])
	a.mu.Lock()
	size := len(a.listed)
	a.mu.Unlock()
	if err != nil || n < 1 || n > size {
		return 0, fmt.Errorf("%w: %s", errNoSuchItem, args[0])
	}
	return n - 1, nil
}

func (a *App) println(args ...any) { fmt.Fprintln(a.out, args...) }

func (a *App) printf(format string, args ...any) { fmt.Fprintf(a.out, format, args...) }

// userMessage turns an error into the line shown to the user. Server and
// network failures get a generic text; the details go to the log.
func userMessage(err error) string {
	var verrs form.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		return verrs.Error()
	case errors.Is(err, errRedirected):
		return "not available here"
	case errors.Is(err, api.ErrUnauthorized), errors.Is(err, common.ErrorUnauthorized):
		return "you need to log in"
	case errors.Is(err, api.ErrUnavailable):
		return "the server is unavailable, please try again later"
	case errors.Is(err, feed.ErrAlreadyParticipant):
		return "you already participate in this wave"
	case errors.Is(err, feed.ErrOwnWave):
		return "you cannot participate in your own wave"
	case errors.Is(err, services.ErrNotWaveCharity):
		return "only the wave's charity can approve or reject it"
	case errors.Is(err, services.ErrNoProfile):
		return "complete your profile first"
	case errors.Is(err, media.ErrNotImage):
		return "the file is not an image"
	case errors.Is(err, media.ErrImageTooLarge):
		return "the image dimensions are too large"
	case errors.Is(err, media.ErrTooManyImages):
		return "too many images"
	case errors.Is(err, api.ErrNotFound):
		return "not found"
	}
	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Message != "" {
			return apiErr.Message
		}
		return apiErr.Op + " failed"
	}
	return err.Error()
}
