package dao

import (
	"fmt"

	"gorm.io/gorm"
)

// openBeneficiaryIndex allows at most one non-terminal campaign per
// beneficiary. Drives have a NULL beneficiary and are never constrained.
const openBeneficiaryIndex = `CREATE UNIQUE INDEX IF NOT EXISTS idx_campaigns_open_beneficiary
ON campaigns (beneficiary_id)
WHERE state IN ('pending_approval', 'approved', 'active')`

func InitTables(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&Hospital{},
		&Donor{},
		&Beneficiary{},
		&Campaign{},
		&Enrollment{},
	); err != nil {
		return fmt.Errorf("db.AutoMigrate -> %w", err)
	}

	if err := db.Exec(openBeneficiaryIndex).Error; err != nil {
		return fmt.Errorf("create idx_campaigns_open_beneficiary -> %w", err)
	}

	return nil
}

// DropTables removes every table owned by the service, children first.
func DropTables(db *gorm.DB) error {
	return db.Migrator().DropTable(
		&Enrollment{},
		&Campaign{},
		&Beneficiary{},
		&Donor{},
		&Hospital{},
	)
}
