package compliance

// Sector is the industry vertical a company operates in. Closed enumeration,
// same contract as BusinessActivity.
type Sector string

const (
	SectorAllOther        Sector = "All Other Sectors"
	SectorSteel           Sector = "Steel"
	SectorFMCG            Sector = "FMCG"
	SectorTextile         Sector = "Textile"
	SectorTelecom         Sector = "Telecom"
	SectorPetroleum       Sector = "Petroleum"
	SectorElectricityDist Sector = "Electricity Distribution"
	SectorGasDist         Sector = "Gas Distribution"
	SectorServices        Sector = "Services"
	SectorAutomobile      Sector = "Automobile"
	SectorCNGStations     Sector = "CNG Stations"
	SectorPharmaceuticals Sector = "Pharmaceuticals"
	SectorWholesaleRetail Sector = "Wholesale/Retails"
)

// Sectors returns all valid sectors in declaration order.
func Sectors() []Sector {
	return []Sector{
		SectorAllOther,
		SectorSteel,
		SectorFMCG,
		SectorTextile,
		SectorTelecom,
		SectorPetroleum,
		SectorElectricityDist,
		SectorGasDist,
		SectorServices,
		SectorAutomobile,
		SectorCNGStations,
		SectorPharmaceuticals,
		SectorWholesaleRetail,
	}
}

// IsValid reports whether the value is a member of the closed enumeration.
func (s Sector) IsValid() bool {
	switch s {
	case SectorAllOther, SectorSteel, SectorFMCG, SectorTextile,
		SectorTelecom, SectorPetroleum, SectorElectricityDist, SectorGasDist,
		SectorServices, SectorAutomobile, SectorCNGStations,
		SectorPharmaceuticals, SectorWholesaleRetail:
		return true
	default:
		return false
	}
}

// String returns the canonical label.
func (s Sector) String() string {
	return string(s)
}
