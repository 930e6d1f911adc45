package service

import (
	"context"
	"errors"
	"fmt"

	"exam-worksheet/internal/config"
	"exam-worksheet/internal/dto"
	"exam-worksheet/internal/logger"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrInvalidJWTToken is returned for any token that fails verification
var ErrInvalidJWTToken = errors.New("invalid JWT token")

// AuthService verifies access tokens issued by Supabase Auth.
// Sign-in flows live outside this service.
type AuthService interface {
	ValidateJWT(ctx context.Context, tokenString string) (*dto.AuthClaims, error)
}

type authServiceImpl struct {
	secret   []byte
	audience string
}

// NewAuthService creates a token verifier from the auth config
func NewAuthService(cfg config.AuthConfig) (AuthService, error) {
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("auth JWT secret cannot be empty")
	}
	return &authServiceImpl{secret: []byte(cfg.JWTSecret), audience: cfg.Audience}, nil
}

func tokenSnippet(token string) string {
	return token[:min(len(token), 20)] + "..."
}

// ValidateJWT implements AuthService. The sub claim must be a UUID and is returned normalized.
func (s *authServiceImpl) ValidateJWT(ctx context.Context, tokenString string) (*dto.AuthClaims, error) {
	appLogger := logger.Get()

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if s.audience != "" {
		opts = append(opts, jwt.WithAudience(s.audience))
	}

	token, err := jwt.ParseWithClaims(tokenString, &dto.AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			appLogger.Warn("JWT token expired", zap.Error(err), zap.String("token_snippet", tokenSnippet(tokenString)))
		} else {
			appLogger.Warn("JWT validation failed", zap.Error(err), zap.String("token_snippet", tokenSnippet(tokenString)))
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidJWTToken, err)
	}

	claims, ok := token.Claims.(*dto.AuthClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidJWTToken
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("%w: sub is not a UUID", ErrInvalidJWTToken)
	}
	claims.Subject = userID.String()
	return claims, nil
}
