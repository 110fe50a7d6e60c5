package compliance

import (
	"context"
	"time"
)

// ScenarioMapping is one persisted row of the activity x sector relation.
// Rows mirror the authored table in this package; is_active gates rows out of
// serving without deleting them. Codes are stored as a comma-separated list,
// matching the authority's published format.
type ScenarioMapping struct {
	ID               uint   `gorm:"primaryKey;autoIncrement"`
	BusinessActivity string `gorm:"type:varchar(50);not null;uniqueIndex:idx_scenario_mapping_pair,priority:1"`
	Sector           string `gorm:"type:varchar(50);not null;uniqueIndex:idx_scenario_mapping_pair,priority:2"`
	ScenarioCodes    string `gorm:"type:text;not null"`
	IsActive         bool   `gorm:"not null;default:true;index"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// TableName returns the table name for GORM
func (ScenarioMapping) TableName() string {
	return "scenario_mappings"
}

// ScenarioMappingRepository reads the persisted mapping table. Implementations
// must bind every requested value as its own query parameter; caller-supplied
// labels never reach the query text.
type ScenarioMappingRepository interface {
	// FindCodes returns the comma-separated code lists of all active rows
	// whose activity AND sector both appear in the requested slices.
	FindCodes(ctx context.Context, activities, sectors []string) ([]string, error)

	// FindAllActive returns every active row, used by the startup drift check.
	FindAllActive(ctx context.Context) ([]ScenarioMapping, error)

	// ReplaceAll replaces the table contents with the given rows (seeding).
	ReplaceAll(ctx context.Context, rows []ScenarioMapping) error
}
