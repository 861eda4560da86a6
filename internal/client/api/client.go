package api

import (
	"context"

	"github.com/dmitrijs2005/goowi/internal/client/models"
)

// WaveQuery selects a page of the filtered wave listing. Empty Hashtags and
// Title mean "no filter".
type WaveQuery struct {
	Hashtags []string
	Title    string
	Page     int
	Limit    int
}

// Client is the transport-agnostic contract of the Goowi backend.
type Client interface {
	Login(ctx context.Context, email, password string) (*models.AuthResponse, error)
	Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error)
	Me(ctx context.Context) (*models.MeResponse, error)
	VerifyEmail(ctx context.Context, token string) error
	ResendVerificationEmail(ctx context.Context) error

	CreateProfile(ctx context.Context, payload any) error
	UpdateProfile(ctx context.Context, profileID string, payload any) error
	MyProfile(ctx context.Context) (*models.Profile, error)
	Charities(ctx context.Context) ([]models.Profile, error)
	UserMetrics(ctx context.Context, profileID string) (models.UserMetrics, error)
	ProfileBySlug(ctx context.Context, slug string) (*models.Profile, error)

	CreateWave(ctx context.Context, payload any) error
	UpdateWave(ctx context.Context, waveID string, payload any) error
	DeleteWave(ctx context.Context, waveID string) error
	WavesByCreator(ctx context.Context, creatorID string) ([]models.Wave, error)
	WavesByCharity(ctx context.Context, charityID string) ([]models.Wave, error)
	SetCharityApproval(ctx context.Context, waveID string, status models.ApprovalStatus) error
	Hashtags(ctx context.Context) ([]string, error)
	Participate(ctx context.Context, waveID string) error
	MyParticipations(ctx context.Context) ([]models.Wave, error)
	ParticipationsOf(ctx context.Context, userID string) ([]models.Wave, error)
	Waves(ctx context.Context, q WaveQuery) (*models.WavePage, error)
}
