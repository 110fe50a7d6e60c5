package compliance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthoredMappings_TableHygiene(t *testing.T) {
	rows := AuthoredMappings()
	require.NotEmpty(t, rows)

	seenPairs := make(map[string]struct{})
	for _, row := range rows {
		key := string(row.Activity) + "|" + string(row.Sector)
		_, dup := seenPairs[key]
		assert.False(t, dup, "duplicate pair %s", key)
		seenPairs[key] = struct{}{}

		assert.True(t, row.Activity.IsValid(), "activity %q outside enumeration", row.Activity)
		assert.True(t, row.Sector.IsValid(), "sector %q outside enumeration", row.Sector)

		require.NotEmpty(t, row.Codes, "pair %s has empty code set", key)
		seenCodes := make(map[ScenarioCode]struct{})
		for _, code := range row.Codes {
			assert.True(t, code.IsWellFormed(), "malformed code %q in pair %s", code, key)
			_, dup := seenCodes[code]
			assert.False(t, dup, "duplicate code %q in pair %s", code, key)
			seenCodes[code] = struct{}{}
		}
	}
}

func TestAuthoredMappings_Deterministic(t *testing.T) {
	assert.Equal(t, AuthoredMappings(), AuthoredMappings())
}

func TestCodesFor_ReturnsCopy(t *testing.T) {
	first := CodesFor(ActivityManufacturing, SectorSteel)
	require.NotEmpty(t, first)
	first[0] = "SN999"

	second := CodesFor(ActivityManufacturing, SectorSteel)
	assert.Equal(t, ScenarioCode("SN003"), second[0])
}

func TestCodesFor_AbsentPair(t *testing.T) {
	assert.Nil(t, CodesFor(ActivityExporter, SectorTelecom))
	assert.Nil(t, CodesFor("Bogus", SectorSteel))
}

func TestEnumerations(t *testing.T) {
	assert.Len(t, BusinessActivities(), 8)
	assert.Len(t, Sectors(), 13)

	for _, a := range BusinessActivities() {
		assert.True(t, a.IsValid())
	}
	for _, s := range Sectors() {
		assert.True(t, s.IsValid())
	}

	assert.False(t, BusinessActivity("manufacturing").IsValid(), "labels are case-sensitive")
	assert.False(t, Sector("steel").IsValid())
}

func TestParseScenarioCode(t *testing.T) {
	code, err := ParseScenarioCode("SN001")
	require.NoError(t, err)
	assert.Equal(t, ScenarioCode("SN001"), code)

	for _, raw := range []string{"", "SN", "SN1", "sn001", "XX001", "SN00a"} {
		_, err := ParseScenarioCode(raw)
		assert.Error(t, err, "raw %q", raw)
	}
}
