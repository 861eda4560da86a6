package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/goowi/internal/client/form"
	"github.com/dmitrijs2005/goowi/internal/client/router"
)

func (a *App) profile(ctx context.Context, _ []string) error {
	d := a.store.Details()
	if d != nil && !d.ProfileExists {
		a.println("Your profile is not complete yet. Run 'complete' to set it up.")
		return nil
	}
	p, err := a.profiles.Mine(ctx)
	if err != nil {
		return err
	}
	if p.Slug == "" {
		a.println(renderProfile(*p))
		return nil
	}
	pp, err := a.profiles.Public(ctx, p.Slug)
	if err != nil {
		return err
	}
	a.println(renderPublic(pp))
	if d != nil && !d.IsVerified {
		a.println("Your email is not verified yet (resend).")
	}
	return nil
}

func (a *App) show(ctx context.Context, args []string) error {
	slug := first(args)
	if slug == "" {
		return fmt.Errorf("%w: show <slug>", errUsage)
	}
	pp, err := a.profiles.Public(ctx, slug)
	if err != nil {
		return err
	}
	a.println(renderPublic(pp))
	return nil
}

// complete runs the onboarding form for the caller's role.
func (a *App) complete(ctx context.Context, _ []string) error {
	d := a.store.Details()
	if d == nil {
		return errRedirected
	}
	if d.ProfileExists {
		a.println("Your profile is already complete (editprofile to change it).")
		return nil
	}
	f := form.New(form.ProfileSchema(d.Role), func(ctx context.Context, p form.Payload) error {
		return a.profiles.Complete(ctx, d.Role, p)
	})
	if err := a.fillForm(ctx, f, nil); err != nil {
		return err
	}
	a.println("Your profile is complete.")
	if err := a.store.RefreshDetails(ctx); err != nil {
		a.log.Warn(ctx, "refresh details after onboarding", "error", err)
	}
	a.nav.Navigate(router.PathHome)
	return a.home(ctx, nil)
}

func (a *App) editProfile(ctx context.Context, _ []string) error {
	d := a.store.Details()
	if d == nil {
		return errRedirected
	}
	p, err := a.profiles.Mine(ctx)
	if err != nil {
		return err
	}
	initial, err := form.ValuesOf(p)
	if err != nil {
		return err
	}
	f := form.New(form.ProfileSchema(d.Role), func(ctx context.Context, p form.Payload) error {
		return a.profiles.Update(ctx, p)
	}, form.WithMode(form.ModeUpdate), form.WithInitial(initial), form.WithoutSteps())
	if err := a.fillForm(ctx, f, nil); err != nil {
		return err
	}
	a.println("Profile updated.")
	return nil
}
