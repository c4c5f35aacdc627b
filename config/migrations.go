package config

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
	"p9e.in/cargotrack/models"
)

func Migrations(db *gorm.DB) error {
	m := gormigrate.New(db, gormigrate.DefaultOptions, []*gormigrate.Migration{
		{
			ID: "20250810_create_shipments",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.Shipment{})
			},
		},
		{
			ID: "20250810_create_users",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.User{})
			},
		},
		{
			ID: "20250812_create_admin_uploads",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.AdminUpload{})
			},
		},
		{
			ID: "20250815_add_lookup_indexes",
			Migrate: func(tx *gorm.DB) error {
				// Functional indexes backing the case-insensitive
				// identifier lookup.
				stmts := []string{
					"CREATE INDEX IF NOT EXISTS idx_shipments_bl_number_lower ON shipments (LOWER(bl_number))",
					"CREATE INDEX IF NOT EXISTS idx_shipments_container_no_lower ON shipments (LOWER(container_no))",
					"CREATE INDEX IF NOT EXISTS idx_shipments_chassis_no_lower ON shipments (LOWER(chassis_no))",
				}
				for _, stmt := range stmts {
					if err := tx.Exec(stmt).Error; err != nil {
						return err
					}
				}
				return nil
			},
		},
	})

	return m.Migrate()
}
