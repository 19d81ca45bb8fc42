package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gdugdh24/insightsphere-backend/internal/domain"
	"github.com/gdugdh24/insightsphere-backend/internal/logging"
	"github.com/gdugdh24/insightsphere-backend/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

// ExternalIdentity is what a sign-in provider vouches for.
type ExternalIdentity struct {
	Email          string
	ProviderUserID string
}

// IdentityVerifier turns a provider credential (ID token, OAuth code) into an identity.
// Invalid credentials must be reported as domain.ErrInvalidToken.
type IdentityVerifier interface {
	Verify(ctx context.Context, credential string) (*ExternalIdentity, error)
}

type AuthUseCase struct {
	userRepo  repository.UserRepository
	tokens    *TokenManager
	verifiers map[domain.AuthProvider]IdentityVerifier
}

func NewAuthUseCase(userRepo repository.UserRepository, tokens *TokenManager, verifiers map[domain.AuthProvider]IdentityVerifier) *AuthUseCase {
	return &AuthUseCase{
		userRepo:  userRepo,
		tokens:    tokens,
		verifiers: verifiers,
	}
}

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse represents the authentication response
type AuthResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      *domain.User `json:"user"`
	IsNewUser bool         `json:"is_new_user"`
}

func (uc *AuthUseCase) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	hashed := string(hash)

	user := &domain.User{
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: &hashed,
		Provider:     domain.ProviderLocal,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return uc.issue(user, true)
}

func (uc *AuthUseCase) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	user, err := uc.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if user.PasswordHash == nil {
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return uc.issue(user, false)
}

// LoginWithProvider signs in through Google or GitHub, creating the user on first sight.
// An existing account with the same email is reused.
func (uc *AuthUseCase) LoginWithProvider(ctx context.Context, provider domain.AuthProvider, credential string) (*AuthResponse, error) {
	verifier, ok := uc.verifiers[provider]
	if !ok || verifier == nil {
		return nil, domain.NewError(domain.KindValidation, fmt.Sprintf("%s sign-in is not configured", provider))
	}

	identity, err := verifier.Verify(ctx, credential)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidToken) {
			return nil, err
		}
		logging.Ctx(ctx).Error().Err(err).Str("provider", string(provider)).Msg("[AUTH] Identity provider call failed")
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}

	user, err := uc.userRepo.GetByProvider(ctx, provider, identity.ProviderUserID)
	if err == nil {
		return uc.issue(user, false)
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(identity.Email))
	if email == "" {
		return nil, domain.NewError(domain.KindValidation, "provider account has no verified email")
	}
	user, err = uc.userRepo.GetByEmail(ctx, email)
	if err == nil {
		return uc.issue(user, false)
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	providerUserID := identity.ProviderUserID
	user = &domain.User{
		Email:          email,
		Provider:       provider,
		ProviderUserID: &providerUserID,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	logging.Ctx(ctx).Info().Int("user_id", user.ID).Str("provider", string(provider)).Msg("[AUTH] New user created")
	return uc.issue(user, true)
}

func (uc *AuthUseCase) issue(user *domain.User, isNew bool) (*AuthResponse, error) {
	token, expiresAt, err := uc.tokens.Generate(user.ID)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{Token: token, ExpiresAt: expiresAt, User: user, IsNewUser: isNew}, nil
}

// VerifyToken returns the user id for a bearer token.
func (uc *AuthUseCase) VerifyToken(ctx context.Context, token string) (int, error) {
	return uc.tokens.Verify(token)
}

func (uc *AuthUseCase) Me(ctx context.Context, userID int) (*domain.User, error) {
	return uc.userRepo.GetByID(ctx, userID)
}

type UpdatePhoneRequest struct {
	PhoneNumber string `json:"phone_number" binding:"required,e164"`
}

func (uc *AuthUseCase) UpdatePhone(ctx context.Context, userID int, req *UpdatePhoneRequest) (*domain.User, error) {
	if err := uc.userRepo.UpdatePhone(ctx, userID, req.PhoneNumber); err != nil {
		return nil, err
	}
	return uc.userRepo.GetByID(ctx, userID)
}
