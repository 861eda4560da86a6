package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/goowi/internal/client/api"
	"github.com/dmitrijs2005/goowi/internal/client/models"
	"github.com/dmitrijs2005/goowi/internal/logging"
	"golang.org/x/sync/errgroup"
)

// ProfileService covers onboarding and the profile pages.
type ProfileService interface {
	Complete(ctx context.Context, role models.Role, payload map[string]any) error
	Update(ctx context.Context, payload map[string]any) error
	Mine(ctx context.Context) (*models.Profile, error)
	BySlug(ctx context.Context, slug string) (*models.Profile, error)
	Metrics(ctx context.Context, profileID string) (models.UserMetrics, error)
	Charities(ctx context.Context) ([]models.Profile, error)
	Public(ctx context.Context, slug string) (*PublicProfile, error)
}

// PublicProfile is everything shown on a profile page.
type PublicProfile struct {
	Profile      models.Profile
	Metrics      models.UserMetrics
	Created      []models.Wave
	ForCharity   []models.Wave
	Participated []models.Wave
}

type profileService struct {
	api     api.Client
	account Account
	log     logging.Logger
}

func NewProfileService(client api.Client, account Account, log logging.Logger) ProfileService {
	if log == nil {
		log = logging.Discard()
	}
	return &profileService{api: client, account: account, log: log}
}

// Complete creates the caller's profile. The slug is derived from the name
// and the owning user and role are attached before the call; on success the
// session is told the profile now exists.
func (s *profileService) Complete(ctx context.Context, role models.Role, payload map[string]any) error {
	d, err := currentDetails(s.account)
	if err != nil {
		return err
	}
	if role == "" {
		role = d.Role
	}

	body := clonePayload(payload)
	name, _ := body["name"].(string)
	body["slug"] = models.Slugify(name)
	body["userId"] = d.UserID
	body["role"] = role

	if err := s.api.CreateProfile(ctx, body); err != nil {
		return fmt.Errorf("create profile: %w", err)
	}
	s.account.UpdateProfileExists(true)
	s.log.Info(ctx, "profile completed", "role", role, "slug", body["slug"])
	return nil
}

func (s *profileService) Update(ctx context.Context, payload map[string]any) error {
	d, err := requireProfile(s.account)
	if err != nil {
		return err
	}
	body := clonePayload(payload)
	if name, ok := body["name"].(string); ok && strings.TrimSpace(name) != "" {
		body["slug"] = models.Slugify(name)
	}
	if err := s.api.UpdateProfile(ctx, d.ProfileID, body); err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	return nil
}

func (s *profileService) Mine(ctx context.Context) (*models.Profile, error) {
	return s.api.MyProfile(ctx)
}

func (s *profileService) BySlug(ctx context.Context, slug string) (*models.Profile, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, fmt.Errorf("%w: slug", ErrMissingID)
	}
	return s.api.ProfileBySlug(ctx, slug)
}

func (s *profileService) Metrics(ctx context.Context, profileID string) (models.UserMetrics, error) {
	if profileID == "" {
		return nil, fmt.Errorf("%w: profile", ErrMissingID)
	}
	return s.api.UserMetrics(ctx, profileID)
}

func (s *profileService) Charities(ctx context.Context) ([]models.Profile, error) {
	return s.api.Charities(ctx)
}

// Public loads a profile page: the profile first, then its metrics and wave
// lists concurrently. Waves for the charity are only fetched for charities.
func (s *profileService) Public(ctx context.Context, slug string) (*PublicProfile, error) {
	p, err := s.BySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	out := &PublicProfile{Profile: *p}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		m, err := s.api.UserMetrics(gctx, p.ID)
		if err != nil {
			return fmt.Errorf("metrics: %w", err)
		}
		out.Metrics = m
		return nil
	})
	g.Go(func() error {
		ws, err := s.api.WavesByCreator(gctx, p.ID)
		if err != nil {
			return fmt.Errorf("created waves: %w", err)
		}
		out.Created = ws
		return nil
	})
	if p.Role == models.RoleCharity {
		g.Go(func() error {
			ws, err := s.api.WavesByCharity(gctx, p.ID)
			if err != nil {
				return fmt.Errorf("charity waves: %w", err)
			}
			out.ForCharity = ws
			return nil
		})
	}
	if p.UserID.ID != "" {
		g.Go(func() error {
			ws, err := s.api.ParticipationsOf(gctx, p.UserID.ID)
			if err != nil {
				return fmt.Errorf("participations: %w", err)
			}
			out.Participated = ws
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
