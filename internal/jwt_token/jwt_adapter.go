package jwttoken

import (
	"github.com/chiboi241-boop/EduScience/internal/platform/middleware"
)

// JWTServiceAdapter exposes JWTService through the middleware's validator
// interface.
type JWTServiceAdapter struct {
	service *JWTService
}

func NewJWTServiceAdapter(service *JWTService) *JWTServiceAdapter {
	return &JWTServiceAdapter{service: service}
}

func (a *JWTServiceAdapter) ValidateToken(tokenString string) (*middleware.JWTClaims, error) {
	claims, err := a.service.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	principal, err := claims.Principal()
	if err != nil {
		return nil, err
	}
	return &middleware.JWTClaims{Principal: principal, JTI: claims.ID}, nil
}
