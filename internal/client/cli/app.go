package cli

import (
	"bufio"
	"context"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/goowi/internal/client/api"
	"github.com/dmitrijs2005/goowi/internal/client/feed"
	"github.com/dmitrijs2005/goowi/internal/client/media"
	"github.com/dmitrijs2005/goowi/internal/client/models"
	"github.com/dmitrijs2005/goowi/internal/client/router"
	"github.com/dmitrijs2005/goowi/internal/client/services"
	"github.com/dmitrijs2005/goowi/internal/client/session"
	"github.com/dmitrijs2005/goowi/internal/logging"
)

// maxImageBytes caps files read from disk for upload.
const maxImageBytes = 10 << 20

// Deps are the collaborators an App is built from.
type Deps struct {
	API      api.Client
	Store    *session.Store
	Nav      *router.Navigator
	Feed     *feed.Feed
	Profiles services.ProfileService
	Waves    services.WaveService
	Media    media.Host
	Log      logging.Logger
}

type App struct {
	api      api.Client
	store    *session.Store
	nav      *router.Navigator
	feed     *feed.Feed
	profiles services.ProfileService
	waves    services.WaveService
	media    media.Host
	log      logging.Logger

	reader *bufio.Reader
	out    io.Writer

	mu     sync.Mutex
	listed []models.Wave
	loaded bool
	unsub  func()
}

func NewApp(d Deps) *App {
	if d.Log == nil {
		d.Log = logging.Discard()
	}
	a := &App{
		api:      d.API,
		store:    d.Store,
		nav:      d.Nav,
		feed:     d.Feed,
		profiles: d.Profiles,
		waves:    d.Waves,
		media:    d.Media,
		log:      d.Log,
		reader:   bufio.NewReader(os.Stdin),
		out:      os.Stdout,
	}
	a.unsub = a.store.Subscribe(a.onSession)
	return a
}

// WithIO replaces stdin/stdout, for tests and scripted use.
func (a *App) WithIO(r io.Reader, w io.Writer) *App {
	a.reader = bufio.NewReader(r)
	a.out = w
	return a
}

func (a *App) onSession(e session.Event) {
	switch e.Kind {
	case session.EventUnauthorized:
		a.println("Your session has expired, please log in again.")
		a.forget()
	case session.EventLoggedOut:
		a.forget()
	}
}

func (a *App) forget() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.listed = nil
	a.loaded = false
}

func (a *App) isLoggedIn() bool {
	return a.store.Session() != nil
}

func (a *App) status() string {
	s := a.nav.Current().Path
	if sess := a.store.Session(); sess != nil {
		s = sess.Email + " " + s
	}
	return "(" + s + ")"
}

// Run starts the REPL on the app's input and blocks until the user exits or
// ctx is done.
func (a *App) Run(ctx context.Context, reconcileEvery time.Duration) {
	defer a.Close()

	a.println("Welcome to Goowi CLI (type 'help' for commands)")
	a.nav.Navigate(a.nav.Current().Path)

	if reconcileEvery > 0 {
		go a.StartReconciler(ctx, reconcileEvery)
	}
	runREPL(ctx, a, a.status, &readerLines{r: a.reader}, a.out)
}

func (a *App) Close() {
	if a.unsub != nil {
		a.unsub()
	}
	a.feed.Close()
	a.nav.Close()
}

// StartReconciler refreshes a loaded feed in the background so optimistic
// participations do not linger.
func (a *App) StartReconciler(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.mu.Lock()
			loaded := a.loaded
			a.mu.Unlock()
			if !loaded || !a.isLoggedIn() {
				continue
			}
			cctx, cancel := context.WithTimeout(ctx, 10*time.Second)
			if _, err := a.feed.Reconcile(cctx); err != nil {
				a.log.Warn(cctx, "background reconcile", "error", err)
			}
			cancel()

		case <-ctx.Done():
			return
		}
	}
}
