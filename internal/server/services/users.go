package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/khonsu303/estudio/internal/common"
	"github.com/khonsu303/estudio/internal/cryptox"
	"github.com/khonsu303/estudio/internal/server/activity"
	"github.com/khonsu303/estudio/internal/server/auth"
	"github.com/khonsu303/estudio/internal/server/models"
	"github.com/khonsu303/estudio/internal/server/storage"
)

type RegisterInput struct {
	Name     string `json:"name" validate:"required,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateProfileInput struct {
	Name  *string `json:"name" validate:"omitempty,min=1,max=50"`
	Email *string `json:"email" validate:"omitempty,email"`
}

type AvatarInput struct {
	ContentType string `json:"contentType" validate:"required,oneof=image/png image/jpeg image/webp image/gif"`
}

// Session is the outcome of a successful register or login.
type Session struct {
	User  *models.User
	Token string
}

// DefaultAvatarURL derives the generated avatar for a display name.
func DefaultAvatarURL(name string) string {
	escaped := strings.ReplaceAll(url.QueryEscape(name), "+", "%20")
	return "https://ui-avatars.com/api/?name=" + escaped + "&background=7c3aed&color=fff"
}

// UserService is the credential store: registration, login, token
// verification for the auth gate, and profile changes.
type UserService struct {
	Deps
	tokens  *auth.TokenService
	hasher  *cryptox.PasswordHasher
	revoker auth.Revoker
	avatars storage.AvatarStore
}

// NewUserService wires the credential store. A nil revoker or avatar store
// disables the corresponding feature.
func NewUserService(d Deps, tokens *auth.TokenService, hasher *cryptox.PasswordHasher,
	revoker auth.Revoker, avatars storage.AvatarStore) *UserService {
	if revoker == nil {
		revoker = auth.NoopRevoker{}
	}
	if avatars == nil {
		avatars = storage.Disabled{}
	}
	return &UserService{
		Deps:    d.withDefaults(),
		tokens:  tokens,
		hasher:  hasher,
		revoker: revoker,
		avatars: avatars,
	}
}

// Register validates and stores a new user and issues its first token.
// An email already in use yields common.ErrDuplicate.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*Session, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if err := s.Validator.Struct(in); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	repo := s.Repomanager.Users(s.DB)
	user, err := repo.Create(ctx, &models.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		Avatar:       DefaultAvatarURL(in.Name),
	})
	if err != nil {
		return nil, err
	}
	user.PasswordHash = ""

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	s.Log.Info(ctx, "user registered", "user_id", user.ID)
	s.publish(ctx, activity.UserRegistered, user.ID, user.ID)

	return &Session{User: user, Token: token}, nil
}

// Login returns common.ErrInvalidCredentials for an unknown email and for a
// wrong password alike.
func (s *UserService) Login(ctx context.Context, in LoginInput) (*Session, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if err := s.Validator.Struct(in); err != nil {
		return nil, err
	}

	repo := s.Repomanager.Users(s.DB)
	user, err := repo.GetByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.hasher.Verify(user.PasswordHash, in.Password) {
		return nil, common.ErrInvalidCredentials
	}
	user.PasswordHash = ""

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	return &Session{User: user, Token: token}, nil
}

// Authenticate resolves a bearer token to its user. Every failure other than
// a store error is common.ErrorUnauthorized.
func (s *UserService) Authenticate(ctx context.Context, token string) (*models.User, *auth.Claims, error) {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", common.ErrorUnauthorized, err)
	}

	if claims.ID != "" {
		revoked, err := s.revoker.IsRevoked(ctx, claims.ID)
		if err != nil {
			return nil, nil, fmt.Errorf("revocation check: %w", err)
		}
		if revoked {
			return nil, nil, fmt.Errorf("%w: %w", common.ErrorUnauthorized, common.ErrTokenRevoked)
		}
	}

	user, err := s.Repomanager.Users(s.DB).GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, nil, common.ErrorUnauthorized
		}
		return nil, nil, err
	}

	return user, claims, nil
}

func (s *UserService) Me(ctx context.Context, userID string) (*models.User, error) {
	return s.Repomanager.Users(s.DB).GetByID(ctx, userID)
}

// UpdateProfile changes name and/or email. Email is normalised like at
// registration; one held by another user yields common.ErrDuplicate.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, in UpdateProfileInput) (*models.User, error) {
	trimPtr(in.Name)
	if in.Email != nil {
		e := strings.ToLower(strings.TrimSpace(*in.Email))
		in.Email = &e
	}
	if err := s.Validator.Struct(in); err != nil {
		return nil, err
	}

	user, err := s.Repomanager.Users(s.DB).Update(ctx, userID, in.Name, in.Email)
	if err != nil {
		return nil, err
	}

	s.Log.Info(ctx, "user updated", "user_id", userID)
	s.publish(ctx, activity.UserUpdated, userID, userID)

	return user, nil
}

// Logout revokes the presented token until it would have expired anyway.
// Without a revocation backend this is a no-op.
func (s *UserService) Logout(ctx context.Context, claims *auth.Claims) error {
	if claims == nil || claims.ID == "" {
		return nil
	}

	until := time.Now()
	if claims.ExpiresAt != nil {
		until = claims.ExpiresAt.Time
	}

	if err := s.revoker.Revoke(ctx, claims.ID, until); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

// RequestAvatarUpload presigns an upload and stores the resulting public URL
// as the user's avatar.
func (s *UserService) RequestAvatarUpload(ctx context.Context, userID string, in AvatarInput) (*storage.AvatarUpload, error) {
	in.ContentType = strings.ToLower(strings.TrimSpace(in.ContentType))
	if err := s.Validator.Struct(in); err != nil {
		return nil, err
	}

	up, err := s.avatars.PresignAvatarUpload(ctx, userID, in.ContentType)
	if err != nil {
		return nil, err
	}

	if err := s.Repomanager.Users(s.DB).SetAvatar(ctx, userID, up.PublicURL); err != nil {
		return nil, err
	}

	s.publish(ctx, activity.UserUpdated, userID, userID)

	return up, nil
}
