package compliance

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func codesAsStrings(codes []ScenarioCode) []string {
	out := make([]string, len(codes))
	for i, c := range codes {
		out[i] = string(c)
	}
	return out
}

func TestResolveScenarios_KnownPairs(t *testing.T) {
	tests := []struct {
		name     string
		activity string
		sector   string
		want     []string
	}{
		{"manufacturing steel", "Manufacturing", "Steel", []string{"SN003", "SN004", "SN011"}},
		{"service provider services", "Service Provider", "Services", []string{"SN018", "SN019"}},
		{"manufacturing telecom", "Manufacturing", "Telecom", []string{"SN010"}},
		{"retailer pharmaceuticals", "Retailer", "Pharmaceuticals", []string{"SN025", "SN026"}},
		{"exporter textile", "Exporter", "Textile", []string{"SN007"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveScenarios([]string{tt.activity}, []string{tt.sector})
			assert.Equal(t, tt.want, codesAsStrings(got))
		})
	}
}

func TestResolveScenarios_EveryAuthoredPairRoundTrips(t *testing.T) {
	for _, m := range AuthoredMappings() {
		got := ResolveScenarios([]string{string(m.Activity)}, []string{string(m.Sector)})
		assert.ElementsMatch(t, m.Codes, got, "pair %s / %s", m.Activity, m.Sector)
		// Sorted ascending
		for i := 1; i < len(got); i++ {
			assert.Less(t, string(got[i-1]), string(got[i]))
		}
	}
}

func TestResolveScenarios_EmptyInputs(t *testing.T) {
	assert.Empty(t, ResolveScenarios(nil, []string{"Steel"}))
	assert.Empty(t, ResolveScenarios([]string{}, []string{"Steel"}))
	assert.Empty(t, ResolveScenarios([]string{"Manufacturing"}, nil))
	assert.Empty(t, ResolveScenarios([]string{"Manufacturing"}, []string{}))
	assert.Empty(t, ResolveScenarios(nil, nil))

	// Empty means empty slice, not nil panic fodder downstream.
	assert.NotNil(t, ResolveScenarios(nil, nil))
}

func TestResolveScenarios_UnknownPairsSilentlySkipped(t *testing.T) {
	// Unknown labels contribute nothing but do not fail the call.
	got := ResolveScenarios([]string{"Manufacturing", "Bogus"}, []string{"Steel", "Narnia"})
	assert.Equal(t, []string{"SN003", "SN004", "SN011"}, codesAsStrings(got))

	// A fully unknown selection resolves empty, indistinguishable from
	// a known but inapplicable one.
	assert.Empty(t, ResolveScenarios([]string{"Bogus"}, []string{"Narnia"}))
}

func TestResolveScenarios_OrderIndependent(t *testing.T) {
	a := ResolveScenarios([]string{"Manufacturing", "Retailer"}, []string{"Steel", "FMCG"})
	b := ResolveScenarios([]string{"Retailer", "Manufacturing"}, []string{"FMCG", "Steel"})
	assert.Equal(t, a, b)
}

func TestResolveScenarios_DuplicatesCollapse(t *testing.T) {
	a := ResolveScenarios([]string{"Manufacturing"}, []string{"Steel"})
	b := ResolveScenarios(
		[]string{"Manufacturing", "Manufacturing", "Manufacturing"},
		[]string{"Steel", "Steel"},
	)
	assert.Equal(t, a, b)
}

func TestResolveScenarios_Idempotent(t *testing.T) {
	first := ResolveScenarios([]string{"Distributor"}, []string{"Petroleum", "Telecom"})
	second := ResolveScenarios([]string{"Distributor"}, []string{"Petroleum", "Telecom"})
	assert.Equal(t, first, second)
}

func TestResolveScenarios_UnionEquality(t *testing.T) {
	// Resolving a merged activity set equals the set union of resolving the
	// parts, as an equality rather than a superset.
	a1 := []string{"Manufacturing"}
	a2 := []string{"Retailer", "Exporter"}
	sectors := []string{"Steel", "Textile"}

	merged := ResolveScenarios(append(append([]string{}, a1...), a2...), sectors)

	union := make(map[ScenarioCode]struct{})
	for _, c := range ResolveScenarios(a1, sectors) {
		union[c] = struct{}{}
	}
	for _, c := range ResolveScenarios(a2, sectors) {
		union[c] = struct{}{}
	}

	assert.Len(t, merged, len(union))
	for _, c := range merged {
		assert.Contains(t, union, c)
	}
}

func TestValidateCombination(t *testing.T) {
	tests := []struct {
		name       string
		activities []string
		sectors    []string
		valid      bool
		reason     string
	}{
		{"no activities", nil, []string{"Steel"}, false, ReasonNoActivity},
		{"no sectors", []string{"Manufacturing"}, nil, false, ReasonNoSector},
		{"both empty surfaces activity reason first", nil, nil, false, ReasonNoActivity},
		{"inapplicable combination", []string{"Service Provider"}, []string{"Steel"}, false, ReasonNoScenarios},
		{"unknown labels resolve empty", []string{"Bogus"}, []string{"Steel"}, false, ReasonNoScenarios},
		{"valid single pair", []string{"Manufacturing"}, []string{"Steel"}, true, ""},
		{"valid multi activity", []string{"Manufacturing", "Retailer"}, []string{"Steel"}, true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidateCombination(tt.activities, tt.sectors)
			assert.Equal(t, tt.valid, got.Valid)
			assert.Equal(t, tt.reason, got.Reason)
		})
	}
}

func TestValidateCombination_MultiActivityUnionIsNonEmpty(t *testing.T) {
	got := ResolveScenarios([]string{"Manufacturing", "Retailer"}, []string{"Steel"})
	assert.NotEmpty(t, got)
	// Union of both pairs, not just one side.
	assert.Subset(t, codesAsStrings(got), []string{"SN003", "SN004", "SN011"})
	assert.Subset(t, codesAsStrings(got), []string{"SN026", "SN027", "SN028"})
}

func TestIsPairApplicable(t *testing.T) {
	assert.True(t, IsPairApplicable("Manufacturing", "Steel"))
	assert.True(t, IsPairApplicable("Service Provider", "Services"))

	// Known pair with no authored codes.
	assert.False(t, IsPairApplicable("Service Provider", "Steel"))

	// Unlike the batch resolver, labels outside the closed enumerations are
	// rejected before any table lookup.
	assert.False(t, IsPairApplicable("Bogus", "Steel"))
	assert.False(t, IsPairApplicable("Manufacturing", "Narnia"))
	assert.False(t, IsPairApplicable("", ""))
}
