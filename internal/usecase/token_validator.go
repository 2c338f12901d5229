package usecase

import (
	"fmt"

	"staybook/internal/domain/booking"
	"staybook/internal/pkg/jwt"

	"github.com/google/uuid"
)

// TokenValidator provides token validation for middleware
type TokenValidator interface {
	ValidateToken(tokenString string) (uuid.UUID, booking.Role, error)
}

type tokenValidatorImpl struct {
	jwtService *jwt.Service
}

func NewTokenValidator(jwtService *jwt.Service) TokenValidator {
	return &tokenValidatorImpl{
		jwtService: jwtService,
	}
}

func (t *tokenValidatorImpl) ValidateToken(tokenString string) (uuid.UUID, booking.Role, error) {
	claims, err := t.jwtService.ValidateToken(tokenString)
	if err != nil {
		return uuid.Nil, "", err
	}

	role := booking.Role(claims.Role)
	if !role.IsValid() {
		return uuid.Nil, "", fmt.Errorf("%w: unknown role %q", jwt.ErrInvalidToken, claims.Role)
	}

	return claims.UserID, role, nil
}
