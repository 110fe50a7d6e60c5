package persistence

import (
	"context"

	"github.com/invoiceflow/backend/internal/domain/compliance"
	"gorm.io/gorm"
)

// GormScenarioMappingRepository is the GORM implementation of the scenario
// mapping store. Requested labels are bound as query parameters; they never
// enter the SQL text.
type GormScenarioMappingRepository struct {
	db *gorm.DB
}

// NewGormScenarioMappingRepository creates a new repository
func NewGormScenarioMappingRepository(db *gorm.DB) *GormScenarioMappingRepository {
	return &GormScenarioMappingRepository{db: db}
}

// FindCodes returns the code lists of active rows matching any requested
// activity and sector pair
func (r *GormScenarioMappingRepository) FindCodes(ctx context.Context, activities, sectors []string) ([]string, error) {
	var codes []string
	err := r.db.WithContext(ctx).
		Model(&compliance.ScenarioMapping{}).
		Where("is_active = ? AND business_activity IN ? AND sector IN ?", true, activities, sectors).
		Pluck("scenario_codes", &codes).Error
	if err != nil {
		return nil, err
	}
	return codes, nil
}

// FindAllActive returns every active mapping row
func (r *GormScenarioMappingRepository) FindAllActive(ctx context.Context) ([]compliance.ScenarioMapping, error) {
	var rows []compliance.ScenarioMapping
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("business_activity, sector").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ReplaceAll replaces the table contents in one transaction
func (r *GormScenarioMappingRepository) ReplaceAll(ctx context.Context, rows []compliance.ScenarioMapping) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&compliance.ScenarioMapping{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.Create(&rows).Error
	})
}
