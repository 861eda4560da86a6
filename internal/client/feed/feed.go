package feed

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/goowi/internal/client/api"
	"github.com/dmitrijs2005/goowi/internal/client/models"
	"github.com/dmitrijs2005/goowi/internal/common"
	"github.com/dmitrijs2005/goowi/internal/logging"
	"golang.org/x/sync/errgroup"
)

var (
	ErrWaveNotFound       = errors.New("wave is not in the feed")
	ErrAlreadyParticipant = errors.New("already participating")
	ErrOwnWave            = errors.New("cannot participate in your own wave")
	ErrClosed             = errors.New("feed closed")
)

// Identity provides the caller's account details.
type Identity interface {
	Details() *models.UserDetails
}

type Options struct {
	// PageSize is the number of waves requested per page.
	PageSize int
	// ReconcileAfter is the age after which the listing is refetched.
	ReconcileAfter time.Duration
	// ReconcileEvery forces a refetch after that many optimistic updates.
	ReconcileEvery int
}

func (o *Options) defaults() {
	if o.PageSize <= 0 {
		o.PageSize = 10
	}
	if o.ReconcileAfter <= 0 {
		o.ReconcileAfter = 2 * time.Minute
	}
	if o.ReconcileEvery <= 0 {
		o.ReconcileEvery = 5
	}
}

// Feed holds the loaded listing. Results of a fetch are applied only if no
// newer Load, filter change or Close happened while it was in flight.
type Feed struct {
	api  api.Client
	who  Identity
	log  logging.Logger
	opts Options
	now  func() time.Time

	mu         sync.Mutex
	gen        uint64
	closed     bool
	filter     Filter
	waves      []models.Wave
	hashtags   []string
	page       int
	hasMore    bool
	fetchedAt  time.Time
	dirty      bool
	optimistic int
}

func New(client api.Client, who Identity, opts Options, log logging.Logger) *Feed {
	opts.defaults()
	if log == nil {
		log = logging.Discard()
	}
	return &Feed{api: client, who: who, log: log, opts: opts, now: time.Now}
}

// Load fetches the first page and the hashtag list concurrently and
// replaces the listing.
func (f *Feed) Load(ctx context.Context) error {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return ErrClosed
	}
	f.gen++
	gen, filter := f.gen, f.filter
	f.mu.Unlock()

	var (
		page *models.WavePage
		tags []string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		page, err = f.api.Waves(gctx, f.query(filter, 1))
		return err
	})
	g.Go(func() error {
		var err error
		tags, err = f.api.Hashtags(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed || f.gen != gen {
		f.log.Debug(ctx, "dropping stale feed result", "generation", gen)
		return nil
	}
	f.waves = page.Waves
	f.hashtags = tags
	f.page = 1
	f.hasMore = f.more(page, 1)
	f.fetchedAt = f.now()
	f.dirty = false
	f.optimistic = 0
	return nil
}

// LoadMore appends the next page. It is a no-op once HasMore is false.
func (f *Feed) LoadMore(ctx context.Context) error {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return ErrClosed
	}
	if !f.hasMore {
		f.mu.Unlock()
		return nil
	}
	gen, filter, next := f.gen, f.filter, f.page+1
	f.mu.Unlock()

	page, err := f.api.Waves(ctx, f.query(filter, next))
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed || f.gen != gen || f.page+1 != next {
		return nil
	}
	seen := make(map[string]bool, len(f.waves))
	for _, w := range f.waves {
		seen[w.ID] = true
	}
	for _, w := range page.Waves {
		if !seen[w.ID] {
			f.waves = append(f.waves, w)
		}
	}
	f.page = next
	f.hasMore = f.more(page, next)
	return nil
}

func (f *Feed) query(filter Filter, page int) api.WaveQuery {
	return api.WaveQuery{
		Hashtags: filter.Tags,
		Title:    strings.TrimSpace(filter.Title),
		Page:     page,
		Limit:    f.opts.PageSize,
	}
}

// more decides whether another page exists: from the page count when the
// backend reports one, otherwise from whether the page came back full.
func (f *Feed) more(p *models.WavePage, page int) bool {
	if p.Pages > 0 {
		return page < p.Pages
	}
	return len(p.Waves) >= f.opts.PageSize
}

func (f *Feed) HasMore() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hasMore
}

// SetFilter changes the filter and reloads.
func (f *Feed) SetFilter(ctx context.Context, filter Filter) error {
	f.mu.Lock()
	f.filter = Filter{Title: strings.TrimSpace(filter.Title), Tags: slices.Clone(filter.Tags)}
	f.mu.Unlock()
	return f.Load(ctx)
}

func (f *Feed) Filter() Filter {
	f.mu.Lock()
	defer f.mu.Unlock()
	return Filter{Title: f.filter.Title, Tags: slices.Clone(f.filter.Tags)}
}

// Waves returns the loaded waves that match the current filter.
func (f *Feed) Waves() []models.Wave {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.filter.Apply(f.waves)
}

// Hashtags returns the hashtags offered for filtering.
func (f *Feed) Hashtags() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.hashtags)
}

// Wave looks a loaded wave up by id.
func (f *Feed) Wave(id string) (models.Wave, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	i := slices.IndexFunc(f.waves, func(w models.Wave) bool { return w.ID == id })
	if i < 0 {
		return models.Wave{}, false
	}
	return f.waves[i], true
}

// Participate joins the caller to a wave and records the participation
// locally without refetching. Every ReconcileEvery optimistic updates the
// listing is reloaded.
func (f *Feed) Participate(ctx context.Context, waveID string) error {
	d := f.who.Details()
	if d == nil || d.ProfileID == "" {
		return common.ErrorUnauthorized
	}

	w, ok := f.Wave(waveID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrWaveNotFound, waveID)
	}
	if w.CreatorID.ID != "" && w.CreatorID.ID == d.ProfileID {
		return ErrOwnWave
	}
	if w.HasParticipant(d.ProfileID) {
		return ErrAlreadyParticipant
	}

	if err := f.api.Participate(ctx, waveID); err != nil {
		return err
	}

	f.mu.Lock()
	reconcile := false
	if i := slices.IndexFunc(f.waves, func(w models.Wave) bool { return w.ID == waveID }); i >= 0 {
		if !f.waves[i].HasParticipant(d.ProfileID) {
			f.waves[i].Participants = append(slices.Clone(f.waves[i].Participants), models.RefTo(d.ProfileID))
		}
		f.dirty = true
		f.optimistic++
		reconcile = f.optimistic >= f.opts.ReconcileEvery
	}
	f.mu.Unlock()

	if reconcile {
		if err := f.Load(ctx); err != nil {
			f.log.Warn(ctx, "reconcile feed", "error", err)
		}
	}
	return nil
}

// Reconcile reloads the listing if it holds optimistic updates or is older
// than ReconcileAfter. It reports whether a reload happened.
func (f *Feed) Reconcile(ctx context.Context) (bool, error) {
	f.mu.Lock()
	stale := f.dirty || f.fetchedAt.IsZero() || f.now().Sub(f.fetchedAt) >= f.opts.ReconcileAfter
	f.mu.Unlock()
	if !stale {
		return false, nil
	}
	return true, f.Load(ctx)
}

// Dirty reports whether the listing holds optimistic updates.
func (f *Feed) Dirty() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.dirty
}

// Close stops the feed; in-flight results are discarded.
func (f *Feed) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	f.gen++
}

// Charities lists charity profiles whose name contains nameFilter, case
// insensitively.
func (f *Feed) Charities(ctx context.Context, nameFilter string) ([]models.Profile, error) {
	all, err := f.api.Charities(ctx)
	if err != nil {
		return nil, err
	}
	q := strings.ToLower(strings.TrimSpace(nameFilter))
	if q == "" {
		return all, nil
	}
	out := make([]models.Profile, 0, len(all))
	for _, p := range all {
		if strings.Contains(strings.ToLower(p.Name), q) {
			out = append(out, p)
		}
	}
	return out, nil
}
