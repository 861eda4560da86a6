package session

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/goowi/internal/client/models"
	"github.com/dmitrijs2005/goowi/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// claims is the payload the backend puts into its access tokens.
type claims struct {
	jwt.RegisteredClaims
	Email string      `json:"email"`
	Role  models.Role `json:"role"`
}

// decodeToken reads the identity out of a bearer token without checking the
// signature; the backend remains the authority on validity. A token whose
// exp lies before now yields common.ErrTokenExpired. A token without exp
// never expires locally.
func decodeToken(token string, now time.Time) (*models.Session, error) {
	var c claims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &c); err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrInvalidToken, err)
	}

	s := &models.Session{Email: c.Email, Role: c.Role}
	if c.ExpiresAt != nil {
		s.ExpiresAt = c.ExpiresAt.Time
		if s.ExpiresAt.Before(now) {
			return nil, common.ErrTokenExpired
		}
	}
	return s, nil
}
