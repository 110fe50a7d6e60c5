package compliance

// scenarioMatrix is the authored activity x sector -> scenario-code relation.
// It is the single source of truth: the persisted scenario_mappings table is
// seeded from it and checked against it at startup. A missing (activity,
// sector) key means "no applicable scenario" for that pair.
//
// Every code set here must be non-empty and duplicate-free; AuthoredMappings
// and the package tests enforce that.
var scenarioMatrix = map[BusinessActivity]map[Sector][]ScenarioCode{
	ActivityManufacturing: {
		SectorAllOther:        {"SN001", "SN002", "SN005", "SN006", "SN007", "SN008", "SN016", "SN017", "SN024"},
		SectorSteel:           {"SN003", "SN004", "SN011"},
		SectorFMCG:            {"SN001", "SN002", "SN008", "SN026"},
		SectorTextile:         {"SN001", "SN002", "SN009"},
		SectorTelecom:         {"SN010"},
		SectorPetroleum:       {"SN012"},
		SectorElectricityDist: {"SN013"},
		SectorGasDist:         {"SN014"},
		SectorAutomobile:      {"SN020"},
		SectorCNGStations:     {"SN014", "SN023"},
		SectorPharmaceuticals: {"SN025"},
		SectorWholesaleRetail: {"SN001", "SN002", "SN026", "SN027", "SN028"},
	},
	ActivityImporter: {
		SectorAllOther:        {"SN001", "SN002", "SN005", "SN006", "SN007", "SN024"},
		SectorSteel:           {"SN003", "SN011"},
		SectorFMCG:            {"SN008"},
		SectorTextile:         {"SN001", "SN002"},
		SectorTelecom:         {"SN010"},
		SectorPetroleum:       {"SN012"},
		SectorAutomobile:      {"SN020"},
		SectorCNGStations:     {"SN023"},
		SectorPharmaceuticals: {"SN025"},
		SectorWholesaleRetail: {"SN001", "SN002", "SN026", "SN027", "SN028"},
	},
	ActivityDistributor: {
		SectorAllOther:        {"SN001", "SN002", "SN005", "SN006", "SN007"},
		SectorSteel:           {"SN003"},
		SectorFMCG:            {"SN008"},
		SectorTextile:         {"SN001", "SN002"},
		SectorTelecom:         {"SN010"},
		SectorPetroleum:       {"SN012"},
		SectorElectricityDist: {"SN013"},
		SectorGasDist:         {"SN014"},
		SectorAutomobile:      {"SN020"},
		SectorPharmaceuticals: {"SN025"},
		SectorWholesaleRetail: {"SN001", "SN002", "SN026", "SN027", "SN028"},
	},
	ActivityWholesaler: {
		SectorAllOther:        {"SN001", "SN002", "SN005", "SN006", "SN007"},
		SectorSteel:           {"SN003"},
		SectorFMCG:            {"SN008", "SN026"},
		SectorTextile:         {"SN001", "SN002"},
		SectorPetroleum:       {"SN012"},
		SectorAutomobile:      {"SN020"},
		SectorPharmaceuticals: {"SN025"},
		SectorWholesaleRetail: {"SN026", "SN027", "SN028"},
	},
	ActivityExporter: {
		SectorAllOther: {"SN006", "SN007"},
		SectorSteel:    {"SN007"},
		SectorTextile:  {"SN007"},
	},
	ActivityRetailer: {
		SectorAllOther:        {"SN002", "SN008", "SN026", "SN027", "SN028"},
		SectorSteel:           {"SN026", "SN027", "SN028"},
		SectorFMCG:            {"SN008", "SN026", "SN027", "SN028"},
		SectorTextile:         {"SN002", "SN026"},
		SectorCNGStations:     {"SN023"},
		SectorPharmaceuticals: {"SN025", "SN026"},
		SectorWholesaleRetail: {"SN026", "SN027", "SN028"},
	},
	ActivityServiceProvider: {
		SectorAllOther: {"SN018", "SN019"},
		SectorTelecom:  {"SN010", "SN018"},
		SectorServices: {"SN018", "SN019"},
	},
	ActivityOther: {
		SectorAllOther: {"SN001", "SN002"},
		SectorServices: {"SN018"},
	},
}

// CodesFor returns the authored scenario codes for a single (activity, sector)
// pair, or nil when the pair has no applicable scenario. The returned slice is
// a copy; callers may mutate it freely.
func CodesFor(activity BusinessActivity, sector Sector) []ScenarioCode {
	bySector, ok := scenarioMatrix[activity]
	if !ok {
		return nil
	}
	codes, ok := bySector[sector]
	if !ok {
		return nil
	}
	out := make([]ScenarioCode, len(codes))
	copy(out, codes)
	return out
}

// Mapping is one authored (activity, sector) -> codes row, used when deriving
// the persisted table from this package.
type Mapping struct {
	Activity BusinessActivity
	Sector   Sector
	Codes    []ScenarioCode
}

// AuthoredMappings returns every authored pair in deterministic order
// (activities then sectors in declaration order). Pairs with no codes are
// omitted, matching the "absent means not applicable" contract.
func AuthoredMappings() []Mapping {
	var out []Mapping
	for _, activity := range BusinessActivities() {
		bySector, ok := scenarioMatrix[activity]
		if !ok {
			continue
		}
		for _, sector := range Sectors() {
			codes, ok := bySector[sector]
			if !ok || len(codes) == 0 {
				continue
			}
			row := Mapping{Activity: activity, Sector: sector, Codes: make([]ScenarioCode, len(codes))}
			copy(row.Codes, codes)
			out = append(out, row)
		}
	}
	return out
}
