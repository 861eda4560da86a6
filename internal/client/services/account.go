package services

import (
	"errors"

	"github.com/dmitrijs2005/goowi/internal/client/models"
	"github.com/dmitrijs2005/goowi/internal/common"
)

var (
	ErrNoProfile      = errors.New("profile not completed")
	ErrNotWaveCharity = errors.New("only the wave's charity can change its approval")
	ErrNotWaveOwner   = errors.New("only the creator can change a wave")
	ErrMissingID      = errors.New("missing id")
)

// Account is the part of the session store the services need.
type Account interface {
	Details() *models.UserDetails
	UpdateProfileExists(exists bool)
}

func currentDetails(a Account) (*models.UserDetails, error) {
	d := a.Details()
	if d == nil {
		return nil, common.ErrorUnauthorized
	}
	return d, nil
}

func requireProfile(a Account) (*models.UserDetails, error) {
	d, err := currentDetails(a)
	if err != nil {
		return nil, err
	}
	if d.ProfileID == "" {
		return nil, ErrNoProfile
	}
	return d, nil
}

func clonePayload(p map[string]any) map[string]any {
	out := make(map[string]any, len(p)+3)
	for k, v := range p {
		out[k] = v
	}
	return out
}
