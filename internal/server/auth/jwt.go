// Package auth issues and verifies the stateless bearer tokens that bind a
// request to a user, and optionally tracks revoked tokens.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/khonsu303/estudio/internal/common"
)

// Claims carries the registered claims plus the owning user id.
// RegisteredClaims.ID is a unique token id used for revocation.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"uid"`
}

// TokenService signs tokens with a process-wide HMAC secret.
type TokenService struct {
	secretKey        []byte
	validityDuration time.Duration
	now              func() time.Time
}

func NewTokenService(secretKey string, validityDuration time.Duration) *TokenService {
	return &TokenService{
		secretKey:        []byte(secretKey),
		validityDuration: validityDuration,
		now:              time.Now,
	}
}

// Issue returns a signed HS256 token for userID expiring after the
// configured validity.
func (s *TokenService) Issue(userID string) (string, error) {
	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.validityDuration)),
		},
		UserID: userID,
	})

	return token.SignedString(s.secretKey)
}

// Verify checks signature, algorithm and expiry. It returns
// common.ErrTokenExpired for expired tokens and common.ErrInvalidToken for
// everything else.
func (s *TokenService) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return s.secretKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrInvalidToken
	}

	if !token.Valid || claims.UserID == "" {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}
