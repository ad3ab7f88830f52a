package dao

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/onedrop-app/onedrop-api/internal/domain"
)

type Campaign struct {
	ID                uint         `gorm:"primaryKey"`
	HospitalID        uint         `gorm:"not null;index"`
	Hospital          *Hospital    `gorm:"foreignKey:HospitalID;constraint:OnDelete:RESTRICT"`
	BeneficiaryID     *uint        `gorm:"index"`
	Beneficiary       *Beneficiary `gorm:"foreignKey:BeneficiaryID;constraint:OnDelete:RESTRICT"`
	RequiredBloodType string       `gorm:"size:3;not null"`
	EmphasisBloodType *string      `gorm:"size:3"`
	State             string       `gorm:"size:32;not null;index;check:chk_campaigns_state,state IN ('pending_approval','approved','rejected','active','finalized')"`
	Name              string       `gorm:"not null"`
	Description       string
	UnitsNeeded       int       `gorm:"not null;default:1"`
	StartDate         time.Time `gorm:"not null"`
	EndDate           time.Time `gorm:"not null;index"`
	Version           int       `gorm:"not null;default:0"`
	CreatedAt         time.Time `gorm:"not null"`
	UpdatedAt         time.Time `gorm:"not null"`
}

type CampaignDAO struct {
	db *gorm.DB
}

func NewCampaignDAO(db *gorm.DB) *CampaignDAO {
	return &CampaignDAO{
		db: db,
	}
}

// Insert stores a new campaign. The partial unique index on open
// beneficiary campaigns turns a second open request into
// ErrDuplicateActiveCampaign.
func (d *CampaignDAO) Insert(ctx context.Context, campaign Campaign) (Campaign, error) {
	result := d.db.WithContext(ctx).Create(&campaign)
	if result.Error != nil {
		switch {
		case isUniqueViolation(result.Error):
			return Campaign{}, ErrDuplicateActiveCampaign
		case isForeignKeyViolation(result.Error):
			return Campaign{}, fmt.Errorf("%w: unknown hospital or beneficiary", domain.ErrNotFound)
		case isCheckViolation(result.Error):
			return Campaign{}, fmt.Errorf("%w: campaign state %q", domain.ErrInvalidInput, campaign.State)
		}

		return Campaign{}, storageErr(result.Error)
	}

	return campaign, nil
}

func (d *CampaignDAO) FindByID(ctx context.Context, id uint) (Campaign, error) {
	var campaign Campaign

	result := d.db.WithContext(ctx).First(&campaign, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Campaign{}, fmt.Errorf("%w: id %d", ErrCampaignNotFound, id)
		}

		return Campaign{}, storageErr(result.Error)
	}

	return campaign, nil
}

// UpdateState moves a campaign from one state to another in a single
// guarded UPDATE. When another writer got there first no row matches and
// ErrStateConflict is returned; the record is left untouched.
func (d *CampaignDAO) UpdateState(ctx context.Context, id uint, from, to string) (Campaign, error) {
	result := d.db.WithContext(ctx).
		Model(&Campaign{}).
		Where("id = ? AND state = ?", id, from).
		Updates(map[string]any{
			"state":      to,
			"version":    gorm.Expr("version + 1"),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		if isCheckViolation(result.Error) {
			return Campaign{}, fmt.Errorf("%w: campaign state %q", domain.ErrInvalidInput, to)
		}

		return Campaign{}, storageErr(result.Error)
	}

	if result.RowsAffected == 0 {
		return Campaign{}, ErrStateConflict
	}

	return d.FindByID(ctx, id)
}

// FindOpen returns active campaigns whose end date is not before asOf,
// soonest deadline first.
func (d *CampaignDAO) FindOpen(ctx context.Context, asOf time.Time) ([]Campaign, error) {
	return d.find(ctx, "state = ? AND end_date >= ?", string(domain.StateActive), asOf)
}

// FindExpired returns active campaigns whose end date is before asOf.
func (d *CampaignDAO) FindExpired(ctx context.Context, asOf time.Time) ([]Campaign, error) {
	return d.find(ctx, "state = ? AND end_date < ?", string(domain.StateActive), asOf)
}

func (d *CampaignDAO) FindByHospitalID(ctx context.Context, hospitalID uint) ([]Campaign, error) {
	return d.find(ctx, "hospital_id = ?", hospitalID)
}

func (d *CampaignDAO) FindByBeneficiaryID(ctx context.Context, beneficiaryID uint) ([]Campaign, error) {
	return d.find(ctx, "beneficiary_id = ?", beneficiaryID)
}

func (d *CampaignDAO) find(ctx context.Context, query string, args ...any) ([]Campaign, error) {
	var campaigns []Campaign

	result := d.db.WithContext(ctx).
		Where(query, args...).
		Order("end_date ASC").
		Order("id ASC").
		Find(&campaigns)
	if result.Error != nil {
		return nil, storageErr(result.Error)
	}

	return campaigns, nil
}
