package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"exam-worksheet/internal/config"
	"exam-worksheet/internal/dto"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "testsecretkeydontuseinproduction32bytes!"

func signToken(t *testing.T, method jwt.SigningMethod, secret string, claims *dto.AuthClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func validClaims() *dto.AuthClaims {
	return &dto.AuthClaims{
		Email: "author@example.com",
		Role:  "authenticated",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "6F1C2D3E-4A5B-4C6D-8E7F-9A0B1C2D3E4F",
			Audience:  jwt.ClaimStrings{"authenticated"},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
}

func TestNewAuthService_RequiresSecret(t *testing.T) {
	_, err := NewAuthService(config.AuthConfig{})
	assert.Error(t, err)
}

func TestAuthService_ValidateJWT(t *testing.T) {
	svc, err := NewAuthService(config.AuthConfig{JWTSecret: testJWTSecret, Audience: "authenticated"})
	require.NoError(t, err)

	tests := []struct {
		name    string
		token   func(t *testing.T) string
		wantErr bool
	}{
		{
			name:  "valid token",
			token: func(t *testing.T) string { return signToken(t, jwt.SigningMethodHS256, testJWTSecret, validClaims()) },
		},
		{
			name: "expired",
			token: func(t *testing.T) string {
				c := validClaims()
				c.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))
				return signToken(t, jwt.SigningMethodHS256, testJWTSecret, c)
			},
			wantErr: true,
		},
		{
			name:    "wrong secret",
			token:   func(t *testing.T) string { return signToken(t, jwt.SigningMethodHS256, "another-secret", validClaims()) },
			wantErr: true,
		},
		{
			name:    "unexpected algorithm",
			token:   func(t *testing.T) string { return signToken(t, jwt.SigningMethodHS512, testJWTSecret, validClaims()) },
			wantErr: true,
		},
		{
			name: "no expiry",
			token: func(t *testing.T) string {
				c := validClaims()
				c.ExpiresAt = nil
				return signToken(t, jwt.SigningMethodHS256, testJWTSecret, c)
			},
			wantErr: true,
		},
		{
			name: "wrong audience",
			token: func(t *testing.T) string {
				c := validClaims()
				c.Audience = jwt.ClaimStrings{"anon"}
				return signToken(t, jwt.SigningMethodHS256, testJWTSecret, c)
			},
			wantErr: true,
		},
		{
			name: "subject is not a uuid",
			token: func(t *testing.T) string {
				c := validClaims()
				c.Subject = "user-42"
				return signToken(t, jwt.SigningMethodHS256, testJWTSecret, c)
			},
			wantErr: true,
		},
		{
			name:    "garbage",
			token:   func(t *testing.T) string { return "not.a.jwt" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := svc.ValidateJWT(context.Background(), tt.token(t))
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidJWTToken))
				assert.Nil(t, claims)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "6f1c2d3e-4a5b-4c6d-8e7f-9a0b1c2d3e4f", claims.Subject)
			assert.Equal(t, "author@example.com", claims.Email)
		})
	}
}
