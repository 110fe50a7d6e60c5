package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	appcompliance "github.com/invoiceflow/backend/internal/application/compliance"
	domaincompliance "github.com/invoiceflow/backend/internal/domain/compliance"
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

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func newScenarioRouter(repo *mockMappingRepo, legacyFallback bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	service := appcompliance.NewScenarioService(repo, nil, zap.NewNop(), legacyFallback)
	handler := NewScenarioHandler(service)

	engine := gin.New()
	handler.RegisterRoutes(engine.Group("/api/v1"))
	return engine
}

func postJSON(t *testing.T, engine *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func TestScenarioHandler_Lookup(t *testing.T) {
	repo := new(mockMappingRepo)
	repo.On("FindCodes", mock.Anything, []string{"Manufacturing"}, []string{"Steel"}).
		Return([]string{"SN003,SN004,SN011"}, nil)
	engine := newScenarioRouter(repo, false)

	rec := postJSON(t, engine, "/api/v1/scenarios/lookup", gin.H{
		"business_activities": []string{"Manufacturing"},
		"sectors":             []string{"Steel"},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	require.True(t, env.Success)

	var data appcompliance.LookupResponse
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, []string{"SN003", "SN004", "SN011"}, data.ScenarioCodes)
	assert.False(t, data.Degraded)
}

func TestScenarioHandler_Lookup_EmptySelection(t *testing.T) {
	engine := newScenarioRouter(new(mockMappingRepo), false)

	rec := postJSON(t, engine, "/api/v1/scenarios/lookup", gin.H{
		"business_activities": []string{},
		"sectors":             []string{"Steel"},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	var data appcompliance.LookupResponse
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.NotNil(t, data.ScenarioCodes)
	assert.Empty(t, data.ScenarioCodes)
}

func TestScenarioHandler_Lookup_StoreDown(t *testing.T) {
	repo := new(mockMappingRepo)
	repo.On("FindCodes", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("connection refused"))
	engine := newScenarioRouter(repo, false)

	rec := postJSON(t, engine, "/api/v1/scenarios/lookup", gin.H{
		"business_activities": []string{"Manufacturing"},
		"sectors":             []string{"Steel"},
	})
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	require.NotNil(t, env.Error)
	assert.Equal(t, "DEPENDENCY_UNAVAILABLE", env.Error.Code)
}

func TestScenarioHandler_Lookup_DegradedMode(t *testing.T) {
	repo := new(mockMappingRepo)
	repo.On("FindCodes", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("connection refused"))
	engine := newScenarioRouter(repo, true)

	rec := postJSON(t, engine, "/api/v1/scenarios/lookup", gin.H{
		"business_activities": []string{"Manufacturing"},
		"sectors":             []string{"Steel"},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	var data appcompliance.LookupResponse
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.True(t, data.Degraded)
	assert.Equal(t, []string{"SN001", "SN002", "SN005"}, data.ScenarioCodes)
}

func TestScenarioHandler_Validate(t *testing.T) {
	repo := new(mockMappingRepo)
	repo.On("FindCodes", mock.Anything, []string{"Service Provider"}, []string{"Steel"}).
		Return([]string{}, nil)
	engine := newScenarioRouter(repo, false)

	rec := postJSON(t, engine, "/api/v1/scenarios/validate", gin.H{
		"business_activities": []string{"Service Provider"},
		"sectors":             []string{"Steel"},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	var data appcompliance.ValidateResponse
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.False(t, data.Valid)
	assert.Equal(t, "no applicable scenarios for this combination", data.Reason)
}

func TestScenarioHandler_Lookup_MissingField(t *testing.T) {
	engine := newScenarioRouter(new(mockMappingRepo), false)

	// Absent key, not an empty array. Must be rejected before resolution.
	rec := postJSON(t, engine, "/api/v1/scenarios/lookup", gin.H{
		"sectors": []string{"Steel"},
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	require.NotNil(t, env.Error)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
}

func TestScenarioHandler_Validate_MissingField(t *testing.T) {
	engine := newScenarioRouter(new(mockMappingRepo), false)

	rec := postJSON(t, engine, "/api/v1/scenarios/validate", gin.H{
		"business_activities": []string{"Manufacturing"},
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	require.NotNil(t, env.Error)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
}

func TestScenarioHandler_Validate_EmptySelections(t *testing.T) {
	engine := newScenarioRouter(new(mockMappingRepo), false)

	// Fields present but empty: not a binding error, an invalid combination.
	rec := postJSON(t, engine, "/api/v1/scenarios/validate", gin.H{
		"business_activities": []string{},
		"sectors":             []string{"Steel"},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	var data appcompliance.ValidateResponse
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.False(t, data.Valid)
	assert.Equal(t, "at least one business activity required", data.Reason)
}

func TestScenarioHandler_Enumerations(t *testing.T) {
	engine := newScenarioRouter(new(mockMappingRepo), false)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/scenarios/activities", nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Service Provider")

	req = httptest.NewRequest(http.MethodGet, "/api/v1/scenarios/sectors", nil)
	rec = httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Wholesale/Retails")
}

func TestScenarioHandler_Lookup_MalformedBody(t *testing.T) {
	engine := newScenarioRouter(new(mockMappingRepo), false)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/scenarios/lookup", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	require.NotNil(t, env.Error)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
}
