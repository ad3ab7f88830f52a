package dao

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/onedrop-app/onedrop-api/internal/domain"
)

var (
	ErrCampaignNotFound        = fmt.Errorf("campaign %w", domain.ErrNotFound)
	ErrHospitalNotFound        = fmt.Errorf("hospital %w", domain.ErrNotFound)
	ErrDonorNotFound           = fmt.Errorf("donor %w", domain.ErrNotFound)
	ErrBeneficiaryNotFound     = fmt.Errorf("beneficiary %w", domain.ErrNotFound)
	ErrCampaignNotActive       = fmt.Errorf("%w: campaign is not active", domain.ErrInvalidTransition)
	ErrStateConflict           = fmt.Errorf("%w: campaign state changed concurrently", domain.ErrInvalidTransition)
	ErrAlreadyEnrolled         = domain.ErrAlreadyEnrolled
	ErrDuplicateActiveCampaign = domain.ErrDuplicateActiveCampaign
)

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}

	return ""
}

func isUniqueViolation(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) ||
		pgCode(err) == pgerrcode.UniqueViolation ||
		strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func isForeignKeyViolation(err error) bool {
	return errors.Is(err, gorm.ErrForeignKeyViolated) ||
		pgCode(err) == pgerrcode.ForeignKeyViolation ||
		strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}

func isCheckViolation(err error) bool {
	return pgCode(err) == pgerrcode.CheckViolation ||
		strings.Contains(err.Error(), "violates check constraint") ||
		strings.Contains(err.Error(), "CHECK constraint failed")
}

// storageErr classifies a driver error nobody else recognised as a
// transient storage failure, keeping the original in the chain.
func storageErr(err error) error {
	return fmt.Errorf("%w: %w", domain.ErrStorageUnavailable, err)
}
