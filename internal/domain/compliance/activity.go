package compliance

// BusinessActivity is a company's declared operational role. The enumeration
// is closed: the tax authority recognizes exactly these eight labels and the
// mapping table is keyed on them verbatim.
type BusinessActivity string

const (
	ActivityManufacturing   BusinessActivity = "Manufacturing"
	ActivityImporter        BusinessActivity = "Importer"
	ActivityDistributor     BusinessActivity = "Distributor"
	ActivityWholesaler      BusinessActivity = "Wholesaler"
	ActivityExporter        BusinessActivity = "Exporter"
	ActivityRetailer        BusinessActivity = "Retailer"
	ActivityServiceProvider BusinessActivity = "Service Provider"
	ActivityOther           BusinessActivity = "Other"
)

// BusinessActivities returns all valid business activities in declaration order.
func BusinessActivities() []BusinessActivity {
	return []BusinessActivity{
		ActivityManufacturing,
		ActivityImporter,
		ActivityDistributor,
		ActivityWholesaler,
		ActivityExporter,
		ActivityRetailer,
		ActivityServiceProvider,
		ActivityOther,
	}
}

// IsValid reports whether the value is a member of the closed enumeration.
func (a BusinessActivity) IsValid() bool {
	switch a {
	case ActivityManufacturing, ActivityImporter, ActivityDistributor,
		ActivityWholesaler, ActivityExporter, ActivityRetailer,
		ActivityServiceProvider, ActivityOther:
		return true
	default:
		return false
	}
}

// String returns the canonical label.
func (a BusinessActivity) String() string {
	return string(a)
}
