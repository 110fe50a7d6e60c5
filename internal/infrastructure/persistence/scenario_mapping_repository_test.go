package persistence

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	require.NoError(t, err)
	return db, mock
}

func TestGormScenarioMappingRepository_FindCodes_BindsEveryLabel(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewGormScenarioMappingRepository(db)

	// Two activities and one sector produce three placeholders after the
	// is_active flag. Labels never appear in the query text.
	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT "scenario_codes" FROM "scenario_mappings" WHERE is_active = $1 AND business_activity IN ($2,$3) AND sector IN ($4)`)).
		WithArgs(true, "Manufacturing", "Retailer", "Steel").
		WillReturnRows(sqlmock.NewRows([]string{"scenario_codes"}).
			AddRow("SN003,SN004,SN011").
			AddRow("SN026,SN027,SN028"))

	codes, err := repo.FindCodes(context.Background(), []string{"Manufacturing", "Retailer"}, []string{"Steel"})
	require.NoError(t, err)
	assert.Equal(t, []string{"SN003,SN004,SN011", "SN026,SN027,SN028"}, codes)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGormScenarioMappingRepository_FindCodes_HostileLabelStaysBound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewGormScenarioMappingRepository(db)

	hostile := "Steel'; DROP TABLE scenario_mappings; --"
	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT "scenario_codes" FROM "scenario_mappings" WHERE is_active = $1 AND business_activity IN ($2) AND sector IN ($3)`)).
		WithArgs(true, "Manufacturing", hostile).
		WillReturnRows(sqlmock.NewRows([]string{"scenario_codes"}))

	codes, err := repo.FindCodes(context.Background(), []string{"Manufacturing"}, []string{hostile})
	require.NoError(t, err)
	assert.Empty(t, codes)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGormScenarioMappingRepository_FindAllActive(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewGormScenarioMappingRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT * FROM "scenario_mappings" WHERE is_active = $1 ORDER BY business_activity, sector`)).
		WithArgs(true).
		WillReturnRows(sqlmock.NewRows([]string{"id", "business_activity", "sector", "scenario_codes", "is_active"}).
			AddRow(1, "Manufacturing", "Steel", "SN003,SN004,SN011", true))

	rows, err := repo.FindAllActive(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Manufacturing", rows[0].BusinessActivity)
	assert.Equal(t, "SN003,SN004,SN011", rows[0].ScenarioCodes)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGormScenarioMappingRepository_FindCodes_PropagatesErrors(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewGormScenarioMappingRepository(db)

	mock.ExpectQuery("SELECT").WillReturnError(assert.AnError)

	_, err := repo.FindCodes(context.Background(), []string{"Manufacturing"}, []string{"Steel"})
	assert.Error(t, err)
}
