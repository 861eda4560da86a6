package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/goowi/internal/client/feed"
	"github.com/dmitrijs2005/goowi/internal/client/models"
	"github.com/dmitrijs2005/goowi/internal/common"
)

func (a *App) showListing(waves []models.Wave) {
	a.mu.Lock()
	a.listed = waves
	a.mu.Unlock()
	a.println(renderWaves(waves, a.store.Details()))
}

func (a *App) wave(args []string) (models.Wave, error) {
	i, err := a.index(args)
	if err != nil {
		return models.Wave{}, err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.listed[i], nil
}

func (a *App) showFeed() {
	f := a.feed.Filter()
	if !f.IsZero() {
		a.printf("Filter: title=%q tags=%s\n", f.Title, strings.Join(f.Tags, ","))
	}
	a.showListing(a.feed.Waves())
	if tags := a.feed.Hashtags(); len(tags) > 0 {
		a.println("Hashtags:", strings.Join(tags, ", "))
	}
	if a.feed.HasMore() {
		a.println("Type 'more' for the next page.")
	}
}

// home loads the feed on first use and afterwards only reconciles it.
func (a *App) home(ctx context.Context, _ []string) error {
	a.mu.Lock()
	loaded := a.loaded
	a.mu.Unlock()

	if loaded {
		if _, err := a.feed.Reconcile(ctx); err != nil {
			return err
		}
	} else {
		if err := a.feed.Load(ctx); err != nil {
			return err
		}
		a.mu.Lock()
		a.loaded = true
		a.mu.Unlock()
	}
	a.showFeed()
	return nil
}

// parseFilter reads "title=<text>" and "tags=<a,b>" arguments. Title words
// after the first are joined back with spaces.
func parseFilter(args []string) (feed.Filter, error) {
	var f feed.Filter
	key := ""
	for _, arg := range args {
		k, v, ok := strings.Cut(arg, "=")
		switch {
		case ok && k == "title":
			key = "title"
			f.Title = v
		case ok && k == "tags":
			key = "tags"
			f.Tags = append(f.Tags, common.SplitList(v)...)
		case !ok && key == "title":
			f.Title += " " + arg
		default:
			return feed.Filter{}, fmt.Errorf("%w: filter [title=<text>] [tags=<a,b>] | filter clear", errUsage)
		}
	}
	f.Title = strings.TrimSpace(f.Title)
	return f, nil
}

func (a *App) filter(ctx context.Context, args []string) error {
	var f feed.Filter
	if !(len(args) == 1 && args[0] == "clear") {
		var err error
		if f, err = parseFilter(args); err != nil {
			return err
		}
	}
	if err := a.feed.SetFilter(ctx, f); err != nil {
		return err
	}
	a.mu.Lock()
	a.loaded = true
	a.mu.Unlock()
	a.showFeed()
	return nil
}

func (a *App) more(ctx context.Context, _ []string) error {
	if !a.feed.HasMore() {
		a.println("No more waves.")
		return nil
	}
	if err := a.feed.LoadMore(ctx); err != nil {
		return err
	}
	a.showFeed()
	return nil
}

func (a *App) participate(ctx context.Context, args []string) error {
	w, err := a.wave(args)
	if err != nil {
		return err
	}
	if err := a.feed.Participate(ctx, w.ID); err != nil {
		return err
	}
	a.printf("You now participate in %q.\n", w.Title)
	a.mu.Lock()
	for i := range a.listed {
		if updated, ok := a.feed.Wave(a.listed[i].ID); ok {
			a.listed[i] = updated
		}
	}
	a.mu.Unlock()
	return nil
}

func (a *App) charities(ctx context.Context, args []string) error {
	list, err := a.feed.Charities(ctx, strings.Join(args, " "))
	if err != nil {
		return err
	}
	if len(list) == 0 {
		a.println("No charities found.")
		return nil
	}
	for i, c := range list {
		a.printf("%d. %s", i+1, c.Name)
		if c.Slug != "" {
			a.printf("  (show %s)", c.Slug)
		}
		a.println()
		if c.ShortDescription != "" {
			a.println("   " + c.ShortDescription)
		}
	}
	return nil
}
