package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/goowi/internal/client/api"
	"github.com/dmitrijs2005/goowi/internal/client/models"
	"github.com/dmitrijs2005/goowi/internal/logging"
)

// WaveService covers the caller's own waves and the charity approval flow.
type WaveService interface {
	Create(ctx context.Context, payload map[string]any) error
	Update(ctx context.Context, waveID string, payload map[string]any) error
	Delete(ctx context.Context, waveID string) error
	Mine(ctx context.Context) ([]models.Wave, error)
	SetApproval(ctx context.Context, wave models.Wave, status models.ApprovalStatus) error
	ForCharity(ctx context.Context) ([]models.Wave, error)
	Participated(ctx context.Context) ([]models.Wave, error)
}

type waveService struct {
	api     api.Client
	account Account
	log     logging.Logger
}

func NewWaveService(client api.Client, account Account, log logging.Logger) WaveService {
	if log == nil {
		log = logging.Discard()
	}
	return &waveService{api: client, account: account, log: log}
}

// Create publishes a wave. A charity creates waves for itself, so its waves
// carry its own profile as the charity and start approved; everyone else's
// start pending until the chosen charity decides.
func (s *waveService) Create(ctx context.Context, payload map[string]any) error {
	d, err := requireProfile(s.account)
	if err != nil {
		return err
	}
	body := clonePayload(payload)
	if d.Role == models.RoleCharity {
		body["charityId"] = d.ProfileID
		body["charityApprovalStatus"] = models.ApprovalApproved
	} else {
		body["charityApprovalStatus"] = models.ApprovalPending
	}
	if err := s.api.CreateWave(ctx, body); err != nil {
		return fmt.Errorf("create wave: %w", err)
	}
	s.log.Info(ctx, "wave created", "title", body["title"])
	return nil
}

func (s *waveService) Update(ctx context.Context, waveID string, payload map[string]any) error {
	if waveID == "" {
		return fmt.Errorf("%w: wave", ErrMissingID)
	}
	if _, err := requireProfile(s.account); err != nil {
		return err
	}
	if err := s.api.UpdateWave(ctx, waveID, clonePayload(payload)); err != nil {
		return fmt.Errorf("update wave: %w", err)
	}
	return nil
}

func (s *waveService) Delete(ctx context.Context, waveID string) error {
	if waveID == "" {
		return fmt.Errorf("%w: wave", ErrMissingID)
	}
	if err := s.api.DeleteWave(ctx, waveID); err != nil {
		return fmt.Errorf("delete wave: %w", err)
	}
	return nil
}

func (s *waveService) Mine(ctx context.Context) ([]models.Wave, error) {
	d, err := requireProfile(s.account)
	if err != nil {
		return nil, err
	}
	return s.api.WavesByCreator(ctx, d.ProfileID)
}

// SetApproval records the charity's verdict. Only the charity the wave was
// created for may call it, and only pending waves change.
func (s *waveService) SetApproval(ctx context.Context, wave models.Wave, status models.ApprovalStatus) error {
	if !status.Valid() || status == models.ApprovalPending {
		return fmt.Errorf("invalid approval status %q", status)
	}
	d, err := requireProfile(s.account)
	if err != nil {
		return err
	}
	if wave.CharityID.ID == "" || wave.CharityID.ID != d.ProfileID || wave.CreatorID.ID == d.ProfileID {
		return ErrNotWaveCharity
	}
	if err := s.api.SetCharityApproval(ctx, wave.ID, status); err != nil {
		return fmt.Errorf("set approval: %w", err)
	}
	s.log.Info(ctx, "wave approval changed", "wave", wave.ID, "status", status)
	return nil
}

func (s *waveService) ForCharity(ctx context.Context) ([]models.Wave, error) {
	d, err := requireProfile(s.account)
	if err != nil {
		return nil, err
	}
	if d.Role != models.RoleCharity {
		return nil, nil
	}
	return s.api.WavesByCharity(ctx, d.ProfileID)
}

func (s *waveService) Participated(ctx context.Context) ([]models.Wave, error) {
	return s.api.MyParticipations(ctx)
}
