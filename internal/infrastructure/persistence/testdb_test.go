package persistence

import (
	"testing"

	"github.com/jubilee-retail/backoffice/internal/infrastructure/persistence/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB opens an in-memory SQLite database with the full schema.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.UserModel{},
		&models.RoleModel{},
		&models.MenuModel{},
		&models.RoleMenuModel{},
		&models.BranchModel{},
		&models.AgentModel{},
		&models.ClientModel{},
		&models.CityModel{},
		&models.CourierModel{},
		&models.ProductModel{},
		&models.PlanModel{},
		&models.CouponModel{},
		&models.OrderModel{},
		&models.PolicySequenceModel{},
	)
	require.NoError(t, err)

	return db
}
