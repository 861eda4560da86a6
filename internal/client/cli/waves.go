package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/goowi/internal/client/form"
	"github.com/dmitrijs2005/goowi/internal/client/models"
	"github.com/dmitrijs2005/goowi/internal/client/services"
)

// waveForm builds the wave form for the caller's role. Non-charities pick
// the charity from the live charity list.
func (a *App) waveForm(ctx context.Context, submit form.SubmitFunc, opts ...form.Option) (*form.Form, optionLabels, error) {
	d := a.store.Details()
	if d == nil {
		return nil, nil, errRedirected
	}
	labels := optionLabels{}
	if d.Role != models.RoleCharity {
		list, err := a.feed.Charities(ctx, "")
		if err != nil {
			return nil, nil, fmt.Errorf("load charities: %w", err)
		}
		ids := make([]string, 0, len(list))
		for _, c := range list {
			ids = append(ids, c.ID)
			labels[c.ID] = c.Name
		}
		opts = append(opts, form.WithOptions("charityId", ids))
	}
	return form.New(form.WaveSchema(d.Role), submit, opts...), labels, nil
}

func (a *App) newWave(ctx context.Context, _ []string) error {
	f, labels, err := a.waveForm(ctx, func(ctx context.Context, p form.Payload) error {
		return a.waves.Create(ctx, p)
	})
	if err != nil {
		return err
	}
	if err := a.fillForm(ctx, f, labels); err != nil {
		return err
	}
	a.println("Your wave has been published.")
	a.mu.Lock()
	a.loaded = false
	a.mu.Unlock()
	return nil
}

func (a *App) listWith(ctx context.Context, fetch func(context.Context) ([]models.Wave, error), empty string) error {
	ws, err := fetch(ctx)
	if err != nil {
		return err
	}
	if len(ws) == 0 {
		a.mu.Lock()
		a.listed = nil
		a.mu.Unlock()
		a.println(empty)
		return nil
	}
	a.showListing(ws)
	return nil
}

func (a *App) myWaves(ctx context.Context, _ []string) error {
	return a.listWith(ctx, a.waves.Mine, "You have not created any waves yet.")
}

func (a *App) joined(ctx context.Context, _ []string) error {
	return a.listWith(ctx, a.waves.Participated, "You do not participate in any waves yet.")
}

func (a *App) requests(ctx context.Context, _ []string) error {
	if d := a.store.Details(); d == nil || d.Role != models.RoleCharity {
		a.println("Only charities receive wave requests.")
		return nil
	}
	return a.listWith(ctx, a.waves.ForCharity, "No waves were created for your charity yet.")
}

func (a *App) ownWave(args []string) (models.Wave, error) {
	w, err := a.wave(args)
	if err != nil {
		return w, err
	}
	if d := a.store.Details(); d == nil || w.CreatorID.ID != d.ProfileID {
		return w, services.ErrNotWaveOwner
	}
	return w, nil
}

func (a *App) editWave(ctx context.Context, args []string) error {
	w, err := a.ownWave(args)
	if err != nil {
		return err
	}
	initial, err := form.ValuesOf(w)
	if err != nil {
		return err
	}
	f, labels, err := a.waveForm(ctx, func(ctx context.Context, p form.Payload) error {
		return a.waves.Update(ctx, w.ID, p)
	}, form.WithMode(form.ModeUpdate), form.WithInitial(initial), form.WithoutSteps())
	if err != nil {
		return err
	}
	if err := a.fillForm(ctx, f, labels); err != nil {
		return err
	}
	a.println("Wave updated.")
	return nil
}

func (a *App) deleteWave(ctx context.Context, args []string) error {
	w, err := a.ownWave(args)
	if err != nil {
		return err
	}
	ok, err := Confirm(a.reader, fmt.Sprintf("Delete %q?", w.Title), a.out)
	if err != nil || !ok {
		return err
	}
	if err := a.waves.Delete(ctx, w.ID); err != nil {
		return err
	}
	a.println("Wave deleted.")
	a.dropListed(w.ID)
	return nil
}

func (a *App) dropListed(id string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := a.listed[:0]
	for _, w := range a.listed {
		if w.ID != id {
			out = append(out, w)
		}
	}
	a.listed = out
}

func (a *App) decide(ctx context.Context, args []string, status models.ApprovalStatus) error {
	w, err := a.wave(args)
	if err != nil {
		return err
	}
	if w.CharityApprovalStatus != models.ApprovalPending {
		return fmt.Errorf("wave is already %s", statusLabel(w.CharityApprovalStatus))
	}
	if err := a.waves.SetApproval(ctx, w, status); err != nil {
		if errors.Is(err, services.ErrNotWaveCharity) {
			return err
		}
		return fmt.Errorf("could not update the wave: %w", err)
	}
	a.mu.Lock()
	for i := range a.listed {
		if a.listed[i].ID == w.ID {
			a.listed[i].CharityApprovalStatus = status
		}
	}
	a.mu.Unlock()
	a.printf("Wave %q %s.\n", w.Title, status)
	return nil
}

func (a *App) approve(ctx context.Context, args []string) error {
	return a.decide(ctx, args, models.ApprovalApproved)
}

func (a *App) reject(ctx context.Context, args []string) error {
	return a.decide(ctx, args, models.ApprovalRejected)
}
