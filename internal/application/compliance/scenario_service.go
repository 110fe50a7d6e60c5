package compliance

import (
	"context"
	"sort"
	"strings"

	"github.com/invoiceflow/backend/internal/domain/compliance"
	"github.com/invoiceflow/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// Fallback values served when the mapping store is unreachable and legacy
// fallback mode is enabled. These match the historical stub responses so
// integrations built against the old behavior keep working.
var (
	fallbackCodes = []string{"SN001", "SN002", "SN005"}
)

// ScenarioCache caches resolved code sets keyed by the request's activity and
// sector selection. Implementations are free to drop entries at any time.
type ScenarioCache interface {
	Get(ctx context.Context, key string) ([]string, bool)
	Set(ctx context.Context, key string, codes []string)
}

// LookupRequest asks for the scenario codes applicable to a selection of
// business activities and sectors. Both fields must be present in the request
// body; an explicitly empty array is a valid (empty) selection.
type LookupRequest struct {
	BusinessActivities []string `json:"business_activities" binding:"required"`
	Sectors            []string `json:"sectors" binding:"required"`
}

// LookupResponse carries the resolved codes. Degraded is true only when the
// mapping store was unreachable and fallback values were served instead.
type LookupResponse struct {
	ScenarioCodes []string `json:"scenario_codes"`
	Degraded      bool     `json:"degraded,omitempty"`
}

// ValidateRequest asks whether a combination can support invoicing at all.
// Both fields must be present; empty arrays fail validation with a reason
// rather than a binding error.
type ValidateRequest struct {
	BusinessActivities []string `json:"business_activities" binding:"required"`
	Sectors            []string `json:"sectors" binding:"required"`
}

// ValidateResponse reports the verdict with a reason when invalid.
type ValidateResponse struct {
	Valid    bool   `json:"valid"`
	Reason   string `json:"reason,omitempty"`
	Degraded bool   `json:"degraded,omitempty"`
}

// ScenarioService resolves scenario codes from the persisted mapping table.
// When the store cannot be reached the service either fails with
// DEPENDENCY_UNAVAILABLE or, if legacy fallback is enabled, serves fixed
// fallback values marked as degraded.
type ScenarioService struct {
	repo           compliance.ScenarioMappingRepository
	cache          ScenarioCache
	logger         *zap.Logger
	legacyFallback bool
}

// NewScenarioService creates a new scenario service. Cache may be nil.
func NewScenarioService(repo compliance.ScenarioMappingRepository, cache ScenarioCache, logger *zap.Logger, legacyFallback bool) *ScenarioService {
	return &ScenarioService{
		repo:           repo,
		cache:          cache,
		logger:         logger,
		legacyFallback: legacyFallback,
	}
}

// Lookup resolves the union of scenario codes for every requested activity and
// sector pair. Empty selections resolve to an empty list, and labels with no
// mapping row contribute nothing; neither case is an error.
func (s *ScenarioService) Lookup(ctx context.Context, req LookupRequest) (*LookupResponse, error) {
	if len(req.BusinessActivities) == 0 || len(req.Sectors) == 0 {
		return &LookupResponse{ScenarioCodes: []string{}}, nil
	}

	key := cacheKey(req.BusinessActivities, req.Sectors)
	if s.cache != nil {
		if codes, ok := s.cache.Get(ctx, key); ok {
			return &LookupResponse{ScenarioCodes: codes}, nil
		}
	}

	lists, err := s.repo.FindCodes(ctx, req.BusinessActivities, req.Sectors)
	if err != nil {
		if s.legacyFallback {
			s.logger.Warn("scenario mapping store unreachable, serving fallback codes",
				zap.Error(err))
			return &LookupResponse{ScenarioCodes: append([]string{}, fallbackCodes...), Degraded: true}, nil
		}
		s.logger.Error("scenario mapping store unreachable", zap.Error(err))
		return nil, shared.ErrDependencyUnavailable
	}

	codes := unionCodeLists(lists)
	if s.cache != nil {
		s.cache.Set(ctx, key, codes)
	}
	return &LookupResponse{ScenarioCodes: codes}, nil
}

// Validate checks whether the combination yields at least one scenario.
// Reasons are checked in a fixed order so callers always see the first
// failing condition.
func (s *ScenarioService) Validate(ctx context.Context, req ValidateRequest) (*ValidateResponse, error) {
	if len(req.BusinessActivities) == 0 {
		return &ValidateResponse{Valid: false, Reason: compliance.ReasonNoActivity}, nil
	}
	if len(req.Sectors) == 0 {
		return &ValidateResponse{Valid: false, Reason: compliance.ReasonNoSector}, nil
	}

	lookup, err := s.Lookup(ctx, LookupRequest{
		BusinessActivities: req.BusinessActivities,
		Sectors:            req.Sectors,
	})
	if err != nil {
		return nil, err
	}
	if lookup.Degraded {
		// Fallback mode cannot distinguish combinations, so it accepts all of
		// them. The degraded marker tells the caller not to trust the verdict.
		return &ValidateResponse{Valid: true, Degraded: true}, nil
	}
	if len(lookup.ScenarioCodes) == 0 {
		return &ValidateResponse{Valid: false, Reason: compliance.ReasonNoScenarios}, nil
	}
	return &ValidateResponse{Valid: true}, nil
}

// Activities returns the closed enumeration of business activity labels.
func (s *ScenarioService) Activities() []string {
	activities := compliance.BusinessActivities()
	out := make([]string, len(activities))
	for i, a := range activities {
		out[i] = a.String()
	}
	return out
}

// Sectors returns the closed enumeration of sector labels.
func (s *ScenarioService) Sectors() []string {
	sectors := compliance.Sectors()
	out := make([]string, len(sectors))
	for i, sec := range sectors {
		out[i] = sec.String()
	}
	return out
}

// VerifyAgainstStore compares the persisted mapping table with the authored
// table and returns a human-readable list of differences. Run at startup to
// catch drift between code and database.
func (s *ScenarioService) VerifyAgainstStore(ctx context.Context) ([]string, error) {
	rows, err := s.repo.FindAllActive(ctx)
	if err != nil {
		return nil, err
	}

	stored := make(map[string]string, len(rows))
	for _, row := range rows {
		stored[row.BusinessActivity+"|"+row.Sector] = normalizeCSV(row.ScenarioCodes)
	}

	var drift []string
	authored := make(map[string]struct{})
	for _, m := range compliance.AuthoredMappings() {
		key := string(m.Activity) + "|" + string(m.Sector)
		authored[key] = struct{}{}

		want := make([]string, len(m.Codes))
		for i, c := range m.Codes {
			want[i] = string(c)
		}
		sort.Strings(want)

		got, ok := stored[key]
		if !ok {
			drift = append(drift, "missing row: "+key)
			continue
		}
		if got != strings.Join(want, ",") {
			drift = append(drift, "codes differ for "+key)
		}
	}
	for key := range stored {
		if _, ok := authored[key]; !ok {
			drift = append(drift, "unexpected row: "+key)
		}
	}
	sort.Strings(drift)
	return drift, nil
}

// unionCodeLists merges comma-separated code lists into a sorted, duplicate
// free slice. The result is never nil.
func unionCodeLists(lists []string) []string {
	seen := make(map[string]struct{})
	for _, list := range lists {
		for _, code := range strings.Split(list, ",") {
			code = strings.TrimSpace(code)
			if code == "" {
				continue
			}
			seen[code] = struct{}{}
		}
	}

	out := make([]string, 0, len(seen))
	for code := range seen {
		out = append(out, code)
	}
	sort.Strings(out)
	return out
}

// cacheKey builds a canonical key so that permutations and duplicates of the
// same selection share one cache entry.
func cacheKey(activities, sectors []string) string {
	return canonical(activities) + "|" + canonical(sectors)
}

func canonical(labels []string) string {
	seen := make(map[string]struct{}, len(labels))
	out := make([]string, 0, len(labels))
	for _, l := range labels {
		if _, dup := seen[l]; dup {
			continue
		}
		seen[l] = struct{}{}
		out = append(out, l)
	}
	sort.Strings(out)
	return strings.Join(out, ",")
}

func normalizeCSV(csv string) string {
	parts := strings.Split(csv, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	sort.Strings(out)
	return strings.Join(out, ",")
}
