package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/goowi/internal/client/api"
	"github.com/dmitrijs2005/goowi/internal/client/form"
	"github.com/dmitrijs2005/goowi/internal/client/models"
	"github.com/dmitrijs2005/goowi/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

const msgBadCredentials = "Invalid email or password"

// credentialErrors attaches a rejected login to both credential fields.
func credentialErrors(err error) error {
	if errors.Is(err, api.ErrUnauthorized) || errors.Is(err, api.ErrValidation) ||
		errors.Is(err, api.ErrNotFound) || errors.Is(err, common.ErrInvalidToken) {
		return form.ValidationErrors{"email": msgBadCredentials, "password": msgBadCredentials}
	}
	return err
}

// login prompts for email and password and opens a session. The navigator
// moves to the home page on success.
func (a *App) login(ctx context.Context, _ []string) error {
	f := form.New(form.LoginSchema(), func(ctx context.Context, p form.Payload) error {
		email, _ := p["email"].(string)
		password, _ := p["password"].(string)
		return credentialErrors(a.store.Login(ctx, email, password))
	}, form.WithoutSteps())

	prompt := "Enter email"
	last := a.store.LastEmail(ctx)
	if last != "" {
		prompt += " [" + last + "]"
	}
	email, err := getSimpleText(a.reader, prompt, a.out)
	if err != nil {
		return err
	}
	if email == "" {
		email = last
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}

	if err := f.Set("email", email); err != nil {
		return err
	}
	if err := f.Set("password", string(password)); err != nil {
		return err
	}
	if err := f.Submit(ctx); err != nil {
		a.printErrors(f, err)
		return nil
	}

	a.printf("Welcome, %s!\n", a.displayName())
	a.afterLogin(ctx)
	return nil
}

// register walks the registration form and opens a session for the new
// account.
func (a *App) register(ctx context.Context, _ []string) error {
	f := form.New(form.RegisterSchema(), func(ctx context.Context, p form.Payload) error {
		var req models.RegisterRequest
		if err := p.Decode(&req); err != nil {
			return err
		}
		err := a.store.Register(ctx, req)
		if errors.Is(err, api.ErrConflict) || errors.Is(err, api.ErrValidation) {
			return form.ValidationErrors{"email": api.Message(err)}
		}
		return err
	}, form.WithoutSteps())

	if err := a.fillForm(ctx, f, nil); err != nil {
		return err
	}
	a.println("Account created. Check your inbox to verify your email address.")
	a.afterLogin(ctx)
	return nil
}

func (a *App) afterLogin(ctx context.Context) {
	if d := a.store.Details(); d != nil && !d.ProfileExists {
		a.println("Your profile is not complete yet. Run 'complete' to set it up.")
		return
	}
	if err := a.home(ctx, nil); err != nil {
		a.println("Error:", userMessage(err))
	}
}

func (a *App) verify(ctx context.Context, args []string) error {
	token := strings.TrimSpace(first(args))
	if token == "" {
		return fmt.Errorf("%w: verify <token>", errUsage)
	}
	if err := a.api.VerifyEmail(ctx, token); err != nil {
		a.println("Email verification failed:", userMessage(err))
		return nil
	}
	a.println("Your email has been verified.")
	if a.isLoggedIn() {
		if err := a.store.RefreshDetails(ctx); err != nil {
			a.log.Warn(ctx, "refresh details after verification", "error", err)
		}
	}
	return nil
}

func (a *App) resend(ctx context.Context, _ []string) error {
	if d := a.store.Details(); d != nil && d.IsVerified {
		a.println("Your email is already verified.")
		return nil
	}
	if err := a.store.ResendVerificationEmail(ctx); err != nil {
		return err
	}
	a.println("Verification email sent.")
	return nil
}

func (a *App) logout(ctx context.Context, _ []string) error {
	if !a.isLoggedIn() {
		a.println("You are not logged in.")
		return nil
	}
	if err := a.store.Logout(ctx); err != nil {
		return err
	}
	a.println("Logged out.")
	return nil
}

func (a *App) displayName() string {
	if d := a.store.Details(); d != nil && d.FirstName != "" {
		return d.FirstName
	}
	if s := a.store.Session(); s != nil {
		return s.Email
	}
	return "guest"
}
