// Package apitest provides an in-memory api.Client for tests of the packages
// built on top of the gateway.
package apitest

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/goowi/internal/client/api"
	"github.com/dmitrijs2005/goowi/internal/client/models"
)

// Fake implements api.Client. Each method delegates to the matching Func
// field when set and otherwise returns the zero value. Every call is
// recorded by name.
type Fake struct {
	LoginFunc                   func(ctx context.Context, email, password string) (*models.AuthResponse, error)
	RegisterFunc                func(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error)
	MeFunc                      func(ctx context.Context) (*models.MeResponse, error)
	VerifyEmailFunc             func(ctx context.Context, token string) error
	ResendVerificationEmailFunc func(ctx context.Context) error

	CreateProfileFunc func(ctx context.Context, payload any) error
	UpdateProfileFunc func(ctx context.Context, profileID string, payload any) error
	MyProfileFunc     func(ctx context.Context) (*models.Profile, error)
	CharitiesFunc     func(ctx context.Context) ([]models.Profile, error)
	UserMetricsFunc   func(ctx context.Context, profileID string) (models.UserMetrics, error)
	ProfileBySlugFunc func(ctx context.Context, slug string) (*models.Profile, error)

	CreateWaveFunc         func(ctx context.Context, payload any) error
	UpdateWaveFunc         func(ctx context.Context, waveID string, payload any) error
	DeleteWaveFunc         func(ctx context.Context, waveID string) error
	WavesByCreatorFunc     func(ctx context.Context, creatorID string) ([]models.Wave, error)
	WavesByCharityFunc     func(ctx context.Context, charityID string) ([]models.Wave, error)
	SetCharityApprovalFunc func(ctx context.Context, waveID string, status models.ApprovalStatus) error
	HashtagsFunc           func(ctx context.Context) ([]string, error)
	ParticipateFunc        func(ctx context.Context, waveID string) error
	MyParticipationsFunc   func(ctx context.Context) ([]models.Wave, error)
	ParticipationsOfFunc   func(ctx context.Context, userID string) ([]models.Wave, error)
	WavesFunc              func(ctx context.Context, q api.WaveQuery) (*models.WavePage, error)

	mu    sync.Mutex
	calls []string
}

var _ api.Client = (*Fake)(nil)

func (f *Fake) record(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, name)
}

// Calls returns the recorded method names in call order.
func (f *Fake) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

// Count returns how many times the named method was called.
func (f *Fake) Count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c == name {
			n++
		}
	}
	return n
}

func (f *Fake) Login(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	f.record("Login")
	if f.LoginFunc == nil {
		return &models.AuthResponse{}, nil
	}
	return f.LoginFunc(ctx, email, password)
}

func (f *Fake) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	f.record("Register")
	if f.RegisterFunc == nil {
		return &models.AuthResponse{}, nil
	}
	return f.RegisterFunc(ctx, req)
}

func (f *Fake) Me(ctx context.Context) (*models.MeResponse, error) {
	f.record("Me")
	if f.MeFunc == nil {
		return &models.MeResponse{}, nil
	}
	return f.MeFunc(ctx)
}

func (f *Fake) VerifyEmail(ctx context.Context, token string) error {
	f.record("VerifyEmail")
	if f.VerifyEmailFunc == nil {
		return nil
	}
	return f.VerifyEmailFunc(ctx, token)
}

func (f *Fake) ResendVerificationEmail(ctx context.Context) error {
	f.record("ResendVerificationEmail")
	if f.ResendVerificationEmailFunc == nil {
		return nil
	}
	return f.ResendVerificationEmailFunc(ctx)
}

func (f *Fake) CreateProfile(ctx context.Context, payload any) error {
	f.record("CreateProfile")
	if f.CreateProfileFunc == nil {
		return nil
	}
	return f.CreateProfileFunc(ctx, payload)
}

func (f *Fake) UpdateProfile(ctx context.Context, profileID string, payload any) error {
	f.record("UpdateProfile")
	if f.UpdateProfileFunc == nil {
		return nil
	}
	return f.UpdateProfileFunc(ctx, profileID, payload)
}

func (f *Fake) MyProfile(ctx context.Context) (*models.Profile, error) {
	f.record("MyProfile")
	if f.MyProfileFunc == nil {
		return &models.Profile{}, nil
	}
	return f.MyProfileFunc(ctx)
}

func (f *Fake) Charities(ctx context.Context) ([]models.Profile, error) {
	f.record("Charities")
	if f.CharitiesFunc == nil {
		return nil, nil
	}
	return f.CharitiesFunc(ctx)
}

func (f *Fake) UserMetrics(ctx context.Context, profileID string) (models.UserMetrics, error) {
	f.record("UserMetrics")
	if f.UserMetricsFunc == nil {
		return models.UserMetrics{}, nil
	}
	return f.UserMetricsFunc(ctx, profileID)
}

func (f *Fake) ProfileBySlug(ctx context.Context, slug string) (*models.Profile, error) {
	f.record("ProfileBySlug")
	if f.ProfileBySlugFunc == nil {
		return &models.Profile{}, nil
	}
	return f.ProfileBySlugFunc(ctx, slug)
}

func (f *Fake) CreateWave(ctx context.Context, payload any) error {
	f.record("CreateWave")
	if f.CreateWaveFunc == nil {
		return nil
	}
	return f.CreateWaveFunc(ctx, payload)
}

func (f *Fake) UpdateWave(ctx context.Context, waveID string, payload any) error {
	f.record("UpdateWave")
	if f.UpdateWaveFunc == nil {
		return nil
	}
	return f.UpdateWaveFunc(ctx, waveID, payload)
}

func (f *Fake) DeleteWave(ctx context.Context, waveID string) error {
	f.record("DeleteWave")
	if f.DeleteWaveFunc == nil {
		return nil
	}
	return f.DeleteWaveFunc(ctx, waveID)
}

func (f *Fake) WavesByCreator(ctx context.Context, creatorID string) ([]models.Wave, error) {
	f.record("WavesByCreator")
	if f.WavesByCreatorFunc == nil {
		return nil, nil
	}
	return f.WavesByCreatorFunc(ctx, creatorID)
}

func (f *Fake) WavesByCharity(ctx context.Context, charityID string) ([]models.Wave, error) {
	f.record("WavesByCharity")
	if f.WavesByCharityFunc == nil {
		return nil, nil
	}
	return f.WavesByCharityFunc(ctx, charityID)
}

func (f *Fake) SetCharityApproval(ctx context.Context, waveID string, status models.ApprovalStatus) error {
	f.record("SetCharityApproval")
	if f.SetCharityApprovalFunc == nil {
		return nil
	}
	return f.SetCharityApprovalFunc(ctx, waveID, status)
}

func (f *Fake) Hashtags(ctx context.Context) ([]string, error) {
	f.record("Hashtags")
	if f.HashtagsFunc == nil {
		return nil, nil
	}
	return f.HashtagsFunc(ctx)
}

func (f *Fake) Participate(ctx context.Context, waveID string) error {
	f.record("Participate")
	if f.ParticipateFunc == nil {
		return nil
	}
	return f.ParticipateFunc(ctx, waveID)
}

func (f *Fake) MyParticipations(ctx context.Context) ([]models.Wave, error) {
	f.record("MyParticipations")
	if f.MyParticipationsFunc == nil {
		return nil, nil
	}
	return f.MyParticipationsFunc(ctx)
}

func (f *Fake) ParticipationsOf(ctx context.Context, userID string) ([]models.Wave, error) {
	f.record("ParticipationsOf")
	if f.ParticipationsOfFunc == nil {
		return nil, nil
	}
	return f.ParticipationsOfFunc(ctx, userID)
}

func (f *Fake) Waves(ctx context.Context, q api.WaveQuery) (*models.WavePage, error) {
	f.record("Waves")
	if f.WavesFunc == nil {
		return &models.WavePage{Page: q.Page}, nil
	}
	return f.WavesFunc(ctx, q)
}
