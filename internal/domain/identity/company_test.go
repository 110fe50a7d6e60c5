package identity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/invoiceflow/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCompany(t *testing.T) {
	company, err := NewCompany("Acme Steel Works", "1234567-8",
		[]string{"Manufacturing", "Exporter"}, []string{"Steel"})
	require.NoError(t, err)

	assert.Equal(t, "Acme Steel Works", company.Name)
	assert.Equal(t, CompanyStatusActive, company.Status)
	assert.Equal(t, []string{"Manufacturing", "Exporter"}, company.ActivityList())
	assert.Equal(t, []string{"Steel"}, company.SectorList())
	assert.NotEqual(t, uuid.Nil, company.ID)
}

func TestNewCompany_Validation(t *testing.T) {
	tests := []struct {
		name       string
		company    string
		taxNumber  string
		activities []string
		sectors    []string
		code       string
	}{
		{"empty name", "", "123", []string{"Manufacturing"}, []string{"Steel"}, "INVALID_NAME"},
		{"empty tax number", "Acme", "", []string{"Manufacturing"}, []string{"Steel"}, "INVALID_TAX_NUMBER"},
		{"unknown activity", "Acme", "123", []string{"Smuggling"}, []string{"Steel"}, "INVALID_ACTIVITY"},
		{"unknown sector", "Acme", "123", []string{"Manufacturing"}, []string{"Narnia"}, "INVALID_SECTOR"},
		{"no activities", "Acme", "123", nil, []string{"Steel"}, "INVALID_COMBINATION"},
		{"no sectors", "Acme", "123", []string{"Manufacturing"}, nil, "INVALID_COMBINATION"},
		{"inapplicable combination", "Acme", "123", []string{"Service Provider"}, []string{"Steel"}, "INVALID_COMBINATION"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCompany(tt.company, tt.taxNumber, tt.activities, tt.sectors)
			require.Error(t, err)
			domainErr, ok := err.(*shared.DomainError)
			require.True(t, ok)
			assert.Equal(t, tt.code, domainErr.Code)
		})
	}
}

func TestNewCompany_DeduplicatesDeclaration(t *testing.T) {
	company, err := NewCompany("Acme", "123",
		[]string{"Manufacturing", "Manufacturing"}, []string{"Steel", " Steel "})
	require.NoError(t, err)
	assert.Equal(t, []string{"Manufacturing"}, company.ActivityList())
	assert.Equal(t, []string{"Steel"}, company.SectorList())
}

func TestCompany_DeclareActivities(t *testing.T) {
	company, err := NewCompany("Acme", "123", []string{"Manufacturing"}, []string{"Steel"})
	require.NoError(t, err)
	version := company.Version

	err = company.DeclareActivities([]string{"Retailer"}, []string{"FMCG", "Pharmaceuticals"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Retailer"}, company.ActivityList())
	assert.Equal(t, []string{"FMCG", "Pharmaceuticals"}, company.SectorList())
	assert.Equal(t, version+1, company.Version)

	// Rejected declarations leave the company untouched.
	err = company.DeclareActivities([]string{"Service Provider"}, []string{"Steel"})
	require.Error(t, err)
	assert.Equal(t, []string{"Retailer"}, company.ActivityList())
}

func TestCompany_SuspendActivate(t *testing.T) {
	company, err := NewCompany("Acme", "123", []string{"Manufacturing"}, []string{"Steel"})
	require.NoError(t, err)

	require.NoError(t, company.Suspend())
	assert.False(t, company.IsActive())
	assert.Error(t, company.Suspend())

	require.NoError(t, company.Activate())
	assert.True(t, company.IsActive())
	assert.Error(t, company.Activate())
}

func TestNewUser(t *testing.T) {
	tenantID := uuid.New()
	user, err := NewUser(tenantID, "  Ops@Example.COM ", "Ops Lead", "$2a$10$hash")
	require.NoError(t, err)

	assert.Equal(t, tenantID, user.TenantID)
	assert.Equal(t, "ops@example.com", user.Email)
	assert.True(t, user.IsActive())
}

func TestNewUser_Validation(t *testing.T) {
	tenantID := uuid.New()

	tests := []struct {
		name  string
		email string
		user  string
		hash  string
	}{
		{"empty email", "", "Ops", "h"},
		{"missing at sign", "ops.example.com", "Ops", "h"},
		{"missing domain dot", "ops@example", "Ops", "h"},
		{"empty name", "ops@example.com", "", "h"},
		{"empty hash", "ops@example.com", "Ops", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewUser(tenantID, tt.email, tt.user, tt.hash)
			assert.Error(t, err)
		})
	}
}

func TestUser_DisableEnable(t *testing.T) {
	user, err := NewUser(uuid.New(), "ops@example.com", "Ops", "h")
	require.NoError(t, err)

	require.NoError(t, user.Disable())
	assert.False(t, user.IsActive())
	assert.Error(t, user.Disable())

	require.NoError(t, user.Enable())
	assert.True(t, user.IsActive())
}
