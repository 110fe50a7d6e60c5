package compliance

import (
	"context"
	"errors"
	"testing"

	domaincompliance "github.com/invoiceflow/backend/internal/domain/compliance"
	"github.com/invoiceflow/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockMappingRepo struct {
	mock.Mock
}

func (m *mockMappingRepo) FindCodes(ctx context.Context, activities, sectors []string) ([]string, error) {
	args := m.Called(ctx, activities, sectors)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *mockMappingRepo) FindAllActive(ctx context.Context) ([]domaincompliance.ScenarioMapping, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domaincompliance.ScenarioMapping), args.Error(1)
}

func (m *mockMappingRepo) ReplaceAll(ctx context.Context, rows []domaincompliance.ScenarioMapping) error {
	args := m.Called(ctx, rows)
	return args.Error(0)
}

type mapCache struct {
	entries map[string][]string
}

func newMapCache() *mapCache {
	return &mapCache{entries: make(map[string][]string)}
}

func (c *mapCache) Get(_ context.Context, key string) ([]string, bool) {
	codes, ok := c.entries[key]
	return codes, ok
}

func (c *mapCache) Set(_ context.Context, key string, codes []string) {
	c.entries[key] = codes
}

func TestScenarioService_Lookup(t *testing.T) {
	repo := new(mockMappingRepo)
	service := NewScenarioService(repo, nil, zap.NewNop(), false)

	repo.On("FindCodes", mock.Anything, []string{"Manufacturing"}, []string{"Steel"}).
		Return([]string{"SN003,SN004,SN011"}, nil)

	resp, err := service.Lookup(context.Background(), LookupRequest{
		BusinessActivities: []string{"Manufacturing"},
		Sectors:            []string{"Steel"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"SN003", "SN004", "SN011"}, resp.ScenarioCodes)
	assert.False(t, resp.Degraded)
	repo.AssertExpectations(t)
}

func TestScenarioService_Lookup_UnionsAndSorts(t *testing.T) {
	repo := new(mockMappingRepo)
	service := NewScenarioService(repo, nil, zap.NewNop(), false)

	// Overlapping code lists from two rows collapse into one sorted set.
	repo.On("FindCodes", mock.Anything, mock.Anything, mock.Anything).
		Return([]string{"SN026,SN027,SN028", "SN025,SN026"}, nil)

	resp, err := service.Lookup(context.Background(), LookupRequest{
		BusinessActivities: []string{"Retailer"},
		Sectors:            []string{"Steel", "Pharmaceuticals"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"SN025", "SN026", "SN027", "SN028"}, resp.ScenarioCodes)
}

func TestScenarioService_Lookup_EmptySelection(t *testing.T) {
	repo := new(mockMappingRepo)
	service := NewScenarioService(repo, nil, zap.NewNop(), false)

	resp, err := service.Lookup(context.Background(), LookupRequest{Sectors: []string{"Steel"}})
	require.NoError(t, err)
	assert.NotNil(t, resp.ScenarioCodes)
	assert.Empty(t, resp.ScenarioCodes)

	resp, err = service.Lookup(context.Background(), LookupRequest{BusinessActivities: []string{"Manufacturing"}})
	require.NoError(t, err)
	assert.Empty(t, resp.ScenarioCodes)

	// The store is never consulted for empty selections.
	repo.AssertNotCalled(t, "FindCodes", mock.Anything, mock.Anything, mock.Anything)
}

func TestScenarioService_Lookup_StoreDown(t *testing.T) {
	repo := new(mockMappingRepo)
	service := NewScenarioService(repo, nil, zap.NewNop(), false)

	repo.On("FindCodes", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("connection refused"))

	_, err := service.Lookup(context.Background(), LookupRequest{
		BusinessActivities: []string{"Manufacturing"},
		Sectors:            []string{"Steel"},
	})
	require.Error(t, err)
	domainErr, ok := err.(*shared.DomainError)
	require.True(t, ok)
	assert.Equal(t, "DEPENDENCY_UNAVAILABLE", domainErr.Code)
}

func TestScenarioService_Lookup_LegacyFallback(t *testing.T) {
	repo := new(mockMappingRepo)
	service := NewScenarioService(repo, nil, zap.NewNop(), true)

	repo.On("FindCodes", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("connection refused"))

	resp, err := service.Lookup(context.Background(), LookupRequest{
		BusinessActivities: []string{"Manufacturing"},
		Sectors:            []string{"Steel"},
	})
	require.NoError(t, err)
	assert.True(t, resp.Degraded)
	assert.Equal(t, []string{"SN001", "SN002", "SN005"}, resp.ScenarioCodes)
}

func TestScenarioService_Lookup_CacheHit(t *testing.T) {
	repo := new(mockMappingRepo)
	cache := newMapCache()
	service := NewScenarioService(repo, cache, zap.NewNop(), false)

	repo.On("FindCodes", mock.Anything, mock.Anything, mock.Anything).
		Return([]string{"SN003,SN004,SN011"}, nil).Once()

	req := LookupRequest{BusinessActivities: []string{"Manufacturing"}, Sectors: []string{"Steel"}}
	first, err := service.Lookup(context.Background(), req)
	require.NoError(t, err)

	// Permutations and duplicates share the cache entry, so the store is hit
	// exactly once across all three calls.
	second, err := service.Lookup(context.Background(), req)
	require.NoError(t, err)
	third, err := service.Lookup(context.Background(), LookupRequest{
		BusinessActivities: []string{"Manufacturing", "Manufacturing"},
		Sectors:            []string{"Steel"},
	})
	require.NoError(t, err)

	assert.Equal(t, first.ScenarioCodes, second.ScenarioCodes)
	assert.Equal(t, first.ScenarioCodes, third.ScenarioCodes)
	repo.AssertNumberOfCalls(t, "FindCodes", 1)
}

func TestScenarioService_Validate(t *testing.T) {
	repo := new(mockMappingRepo)
	service := NewScenarioService(repo, nil, zap.NewNop(), false)

	repo.On("FindCodes", mock.Anything, []string{"Manufacturing"}, []string{"Steel"}).
		Return([]string{"SN003,SN004,SN011"}, nil)
	repo.On("FindCodes", mock.Anything, []string{"Service Provider"}, []string{"Steel"}).
		Return([]string{}, nil)

	resp, err := service.Validate(context.Background(), ValidateRequest{
		BusinessActivities: []string{"Manufacturing"},
		Sectors:            []string{"Steel"},
	})
	require.NoError(t, err)
	assert.True(t, resp.Valid)
	assert.Empty(t, resp.Reason)

	resp, err = service.Validate(context.Background(), ValidateRequest{
		BusinessActivities: []string{"Service Provider"},
		Sectors:            []string{"Steel"},
	})
	require.NoError(t, err)
	assert.False(t, resp.Valid)
	assert.Equal(t, domaincompliance.ReasonNoScenarios, resp.Reason)
}

func TestScenarioService_Validate_OrderedReasons(t *testing.T) {
	repo := new(mockMappingRepo)
	service := NewScenarioService(repo, nil, zap.NewNop(), false)

	resp, err := service.Validate(context.Background(), ValidateRequest{Sectors: []string{"Steel"}})
	require.NoError(t, err)
	assert.Equal(t, domaincompliance.ReasonNoActivity, resp.Reason)

	resp, err = service.Validate(context.Background(), ValidateRequest{BusinessActivities: []string{"Manufacturing"}})
	require.NoError(t, err)
	assert.Equal(t, domaincompliance.ReasonNoSector, resp.Reason)

	// Activity reason wins when both selections are empty.
	resp, err = service.Validate(context.Background(), ValidateRequest{})
	require.NoError(t, err)
	assert.Equal(t, domaincompliance.ReasonNoActivity, resp.Reason)
}

func TestScenarioService_Validate_DegradedAcceptsAll(t *testing.T) {
	repo := new(mockMappingRepo)
	service := NewScenarioService(repo, nil, zap.NewNop(), true)

	repo.On("FindCodes", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("connection refused"))

	resp, err := service.Validate(context.Background(), ValidateRequest{
		BusinessActivities: []string{"Service Provider"},
		Sectors:            []string{"Steel"},
	})
	require.NoError(t, err)
	assert.True(t, resp.Valid)
	assert.True(t, resp.Degraded)
}

func TestScenarioService_Enumerations(t *testing.T) {
	service := NewScenarioService(nil, nil, zap.NewNop(), false)

	assert.Len(t, service.Activities(), 8)
	assert.Contains(t, service.Activities(), "Service Provider")
	assert.Len(t, service.Sectors(), 13)
	assert.Contains(t, service.Sectors(), "Wholesale/Retails")
}

func TestScenarioService_VerifyAgainstStore(t *testing.T) {
	authored := domaincompliance.AuthoredMappings()

	rows := make([]domaincompliance.ScenarioMapping, 0, len(authored))
	for _, m := range authored {
		codes := make([]string, len(m.Codes))
		for i, c := range m.Codes {
			codes[i] = string(c)
		}
		rows = append(rows, domaincompliance.ScenarioMapping{
			BusinessActivity: string(m.Activity),
			Sector:           string(m.Sector),
			ScenarioCodes:    joinCodes(codes),
			IsActive:         true,
		})
	}

	repo := new(mockMappingRepo)
	repo.On("FindAllActive", mock.Anything).Return(rows, nil).Once()
	service := NewScenarioService(repo, nil, zap.NewNop(), false)

	drift, err := service.VerifyAgainstStore(context.Background())
	require.NoError(t, err)
	assert.Empty(t, drift)

	// Drop one row and corrupt another.
	tampered := append([]domaincompliance.ScenarioMapping{}, rows[1:]...)
	tampered[0].ScenarioCodes = "SN999"
	repo.On("FindAllActive", mock.Anything).Return(tampered, nil).Once()

	drift, err = service.VerifyAgainstStore(context.Background())
	require.NoError(t, err)
	assert.Len(t, drift, 2)
}

func joinCodes(codes []string) string {
	out := ""
	for i, c := range codes {
		if i > 0 {
			out += ","
		}
		out += c
	}
	return out
}
