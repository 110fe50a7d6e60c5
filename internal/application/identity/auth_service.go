package identity

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/invoiceflow/backend/internal/domain/identity"
	"github.com/invoiceflow/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// PasswordHasher hashes and verifies passwords
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(hash, password string) bool
}

// TokenIssuer issues and refreshes access tokens
type TokenIssuer interface {
	IssueTokenPair(userID, tenantID uuid.UUID, email string) (access, refresh string, expiresIn int64, err error)
	RefreshAccessToken(refreshToken string) (access string, expiresIn int64, err error)
}

// LoginRequest carries login credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest carries a refresh token
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// TokenResponse carries issued tokens
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

// AuthService authenticates users and issues tokens
type AuthService struct {
	users  identity.UserRepository
	hasher PasswordHasher
	tokens TokenIssuer
	logger *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(users identity.UserRepository, hasher PasswordHasher, tokens TokenIssuer, logger *zap.Logger) *AuthService {
	return &AuthService{
		users:  users,
		hasher: hasher,
		tokens: tokens,
		logger: logger,
	}
}

// Login verifies credentials and issues a token pair. Credential failures are
// indistinguishable from unknown accounts in the returned error.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*TokenResponse, error) {
	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		s.logger.Info("login rejected", zap.String("email", req.Email))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
	}
	if !user.IsActive() {
		return nil, shared.NewDomainError("ACCOUNT_DISABLED", "This account has been disabled")
	}
	if !s.hasher.Verify(user.PasswordHash, req.Password) {
		s.logger.Info("login rejected", zap.String("email", req.Email))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
	}

	access, refresh, expiresIn, err := s.tokens.IssueTokenPair(user.ID, user.TenantID, user.Email)
	if err != nil {
		return nil, err
	}

	user.RecordLogin(time.Now())
	if err := s.users.Save(ctx, user); err != nil {
		s.logger.Warn("failed to record login time", zap.Error(err))
	}

	return &TokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "Bearer",
		ExpiresIn:    expiresIn,
	}, nil
}

// Refresh exchanges a refresh token for a new access token
func (s *AuthService) Refresh(_ context.Context, req RefreshRequest) (*TokenResponse, error) {
	access, expiresIn, err := s.tokens.RefreshAccessToken(req.RefreshToken)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_TOKEN", "Refresh token is invalid or expired")
	}
	return &TokenResponse{
		AccessToken: access,
		TokenType:   "Bearer",
		ExpiresIn:   expiresIn,
	}, nil
}
