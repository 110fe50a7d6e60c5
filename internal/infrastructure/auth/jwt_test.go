package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTManager_IssueAndVerify(t *testing.T) {
	manager := NewJWTManager("test-secret-0123456789abcdefghij", 15*time.Minute, 7*24*time.Hour, "invoiceflow")
	userID := uuid.New()
	tenantID := uuid.New()

	access, refresh, expiresIn, err := manager.IssueTokenPair(userID, tenantID, "ops@example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(900), expiresIn)

	claims, err := manager.Verify(access)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, tenantID, claims.TenantID)
	assert.Equal(t, "ops@example.com", claims.Email)
	assert.Equal(t, TokenTypeAccess, claims.Type)

	refreshClaims, err := manager.Verify(refresh)
	require.NoError(t, err)
	assert.Equal(t, TokenTypeRefresh, refreshClaims.Type)
}

func TestJWTManager_RefreshAccessToken(t *testing.T) {
	manager := NewJWTManager("test-secret-0123456789abcdefghij", 15*time.Minute, 7*24*time.Hour, "invoiceflow")
	userID := uuid.New()

	access, refresh, _, err := manager.IssueTokenPair(userID, uuid.New(), "ops@example.com")
	require.NoError(t, err)

	newAccess, expiresIn, err := manager.RefreshAccessToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, int64(900), expiresIn)

	claims, err := manager.Verify(newAccess)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, TokenTypeAccess, claims.Type)

	// Access tokens cannot be used for refresh.
	_, _, err = manager.RefreshAccessToken(access)
	assert.Error(t, err)
}

func TestJWTManager_Verify_Failures(t *testing.T) {
	manager := NewJWTManager("test-secret-0123456789abcdefghij", 15*time.Minute, time.Hour, "invoiceflow")

	_, err := manager.Verify("not-a-token")
	assert.Error(t, err)

	// Token signed with a different secret.
	other := NewJWTManager("another-secret-0123456789abcdefgh", 15*time.Minute, time.Hour, "invoiceflow")
	access, _, _, err := other.IssueTokenPair(uuid.New(), uuid.New(), "ops@example.com")
	require.NoError(t, err)
	_, err = manager.Verify(access)
	assert.Error(t, err)

	// Expired token.
	expired := NewJWTManager("test-secret-0123456789abcdefghij", -time.Minute, time.Hour, "invoiceflow")
	access, _, _, err = expired.IssueTokenPair(uuid.New(), uuid.New(), "ops@example.com")
	require.NoError(t, err)
	_, err = manager.Verify(access)
	assert.Error(t, err)
}

func TestBcryptHasher(t *testing.T) {
	hasher := NewBcryptHasher(bcryptMinCostForTests)

	hash, err := hasher.Hash("correct horse battery staple")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery staple", hash)

	assert.True(t, hasher.Verify(hash, "correct horse battery staple"))
	assert.False(t, hasher.Verify(hash, "wrong password"))
}

// bcrypt.MinCost keeps the test fast.
const bcryptMinCostForTests = 4
