package infra

import (
	"fmt"

	"crewbooks/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate to
// create / update all tables, then applies the SQL patches AutoMigrate cannot
// express (the invoice number sequence, partial indexes).
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, err
	}
	return db, nil
}

// RunMigrations applies the schema. Exposed separately so integration tests
// can run it against a throwaway database.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Sale{},
		&model.SalePayment{},
		&model.Invoice{},
		&model.InvoiceItem{},
		&model.InvoiceDocument{},
		&model.LeaveRequest{},
		&model.LeaveRequestDay{},
		&model.LeaveBalance{},
		&model.Event{},
		&model.EventDay{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent DDL that GORM cannot express.
func applySchemaPatches(db *gorm.DB) error {
	patches := []string{
		// Atomic invoice numbering
		`CREATE SEQUENCE IF NOT EXISTS invoices_number_seq START 1`,
		// Partial index for the document retry cron query
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_invoice_documents_pending_retry') THEN
		    CREATE INDEX idx_invoice_documents_pending_retry
		        ON invoice_documents (next_retry_at)
		        WHERE status = 'failed' AND next_retry_at IS NOT NULL;
		  END IF;
		END $$`,
	}
	for _, sql := range patches {
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("schema patch: %w", err)
		}
	}
	return nil
}
