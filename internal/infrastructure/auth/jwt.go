package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenType distinguishes access tokens from refresh tokens
type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

// Claims carries the identity embedded in a token
type Claims struct {
	UserID   uuid.UUID `json:"user_id"`
	TenantID uuid.UUID `json:"tenant_id"`
	Email    string    `json:"email"`
	Type     TokenType `json:"type"`
	jwt.RegisteredClaims
}

// JWTManager signs and verifies HS256 tokens
type JWTManager struct {
	secret            []byte
	accessExpiration  time.Duration
	refreshExpiration time.Duration
	issuer            string
}

// NewJWTManager creates a new JWT manager
func NewJWTManager(secret string, accessExpiration, refreshExpiration time.Duration, issuer string) *JWTManager {
	return &JWTManager{
		secret:            []byte(secret),
		accessExpiration:  accessExpiration,
		refreshExpiration: refreshExpiration,
		issuer:            issuer,
	}
}

// IssueTokenPair issues an access and refresh token for the user
func (m *JWTManager) IssueTokenPair(userID, tenantID uuid.UUID, email string) (string, string, int64, error) {
	access, err := m.sign(userID, tenantID, email, TokenTypeAccess, m.accessExpiration)
	if err != nil {
		return "", "", 0, err
	}
	refresh, err := m.sign(userID, tenantID, email, TokenTypeRefresh, m.refreshExpiration)
	if err != nil {
		return "", "", 0, err
	}
	return access, refresh, int64(m.accessExpiration.Seconds()), nil
}

// RefreshAccessToken verifies a refresh token and issues a new access token
func (m *JWTManager) RefreshAccessToken(refreshToken string) (string, int64, error) {
	claims, err := m.Verify(refreshToken)
	if err != nil {
		return "", 0, err
	}
	if claims.Type != TokenTypeRefresh {
		return "", 0, fmt.Errorf("token is not a refresh token")
	}

	access, err := m.sign(claims.UserID, claims.TenantID, claims.Email, TokenTypeAccess, m.accessExpiration)
	if err != nil {
		return "", 0, err
	}
	return access, int64(m.accessExpiration.Seconds()), nil
}

// Verify parses and validates a token, returning its claims
func (m *JWTManager) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}
	return claims, nil
}

func (m *JWTManager) sign(userID, tenantID uuid.UUID, email string, tokenType TokenType, expiration time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:   userID,
		TenantID: tenantID,
		Email:    email,
		Type:     tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.issuer,
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiration)),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}
