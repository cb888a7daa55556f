package database

import (
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/TheMistaKrips/autobatya-fullstack/models"
)

// AutoMigrate runs auto migration for all models
func AutoMigrate(db *gorm.DB) error {
	log.Info().Msg("running auto migration")

	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		return err
	}

	if err := CreateIndexes(db); err != nil {
		log.Warn().Err(err).Msg("some indexes could not be created")
	}

	log.Info().Msg("auto migration completed")
	return nil
}

// CreateIndexes creates performance indexes. All statements are portable
// between postgres and sqlite.
func CreateIndexes(db *gorm.DB) error {
	indexes := []struct {
		name  string
		query string
	}{
		{"idx_orders_status", "CREATE INDEX IF NOT EXISTS idx_orders_status ON orders(status)"},
		{"idx_orders_date", "CREATE INDEX IF NOT EXISTS idx_orders_date ON orders(date)"},
		{"idx_orders_employee", "CREATE INDEX IF NOT EXISTS idx_orders_employee ON orders(employee_id)"},
		{"idx_line_items_order", "CREATE INDEX IF NOT EXISTS idx_line_items_order ON order_line_items(order_id)"},
		{"idx_reservations_part_status", "CREATE INDEX IF NOT EXISTS idx_reservations_part_status ON stock_reservations(part_id, status)"},
		{"idx_salary_payments_date", "CREATE INDEX IF NOT EXISTS idx_salary_payments_date ON salary_payments(date)"},
		{"idx_expenses_date", "CREATE INDEX IF NOT EXISTS idx_expenses_date ON expenses(date)"},
		{"idx_expenses_category", "CREATE INDEX IF NOT EXISTS idx_expenses_category ON expenses(category)"},
	}

	for _, idx := range indexes {
		if err := db.Exec(idx.query).Error; err != nil {
			log.Warn().Str("index", idx.name).Err(err).Msg("failed to create index")
		}
	}

	return nil
}

// DropAll drops every table managed by the application. Used by the
// migration tool's -drop flag.
func DropAll(db *gorm.DB) error {
	all := models.AllModels()
	// Children first so foreign keys never block a drop.
	for i := len(all) - 1; i >= 0; i-- {
		if err := db.Migrator().DropTable(all[i]); err != nil {
			return err
		}
	}
	return nil
}
