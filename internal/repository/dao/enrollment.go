package dao

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/onedrop-app/onedrop-api/internal/domain"
)

type Enrollment struct {
	CampaignID uint      `gorm:"primaryKey;autoIncrement:false"`
	Campaign   *Campaign `gorm:"foreignKey:CampaignID;constraint:OnDelete:CASCADE"`
	DonorID    uint      `gorm:"primaryKey;autoIncrement:false;index"`
	Donor      *Donor    `gorm:"foreignKey:DonorID;constraint:OnDelete:RESTRICT"`
	EnrolledAt time.Time `gorm:"not null"`
}

type EnrollmentDAO struct {
	db *gorm.DB
}

func NewEnrollmentDAO(db *gorm.DB) *EnrollmentDAO {
	return &EnrollmentDAO{
		db: db,
	}
}

// Insert records a donor against a campaign. The campaign row is read under
// a shared lock so a concurrent finalize cannot slip in between the state
// check and the insert; the composite primary key rejects a second
// enrollment of the same donor.
func (d *EnrollmentDAO) Insert(ctx context.Context, enrollment Enrollment) (Enrollment, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var campaign Campaign
		result := tx.Clauses(clause.Locking{Strength: "SHARE"}).
			Select("id", "state").
			First(&campaign, enrollment.CampaignID)
		if result.Error != nil {
			if errors.Is(result.Error, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: id %d", ErrCampaignNotFound, enrollment.CampaignID)
			}

			return storageErr(result.Error)
		}

		if campaign.State != string(domain.StateActive) {
			return ErrCampaignNotActive
		}

		if err := tx.Create(&enrollment).Error; err != nil {
			switch {
			case isUniqueViolation(err):
				return ErrAlreadyEnrolled
			case isForeignKeyViolation(err):
				return fmt.Errorf("%w: id %d", ErrDonorNotFound, enrollment.DonorID)
			}

			return storageErr(err)
		}

		return nil
	})
	if err != nil {
		return Enrollment{}, err
	}

	return enrollment, nil
}

func (d *EnrollmentDAO) CountByCampaignID(ctx context.Context, campaignID uint) (int64, error) {
	var count int64

	result := d.db.WithContext(ctx).
		Model(&Enrollment{}).
		Where("campaign_id = ?", campaignID).
		Count(&count)
	if result.Error != nil {
		return 0, storageErr(result.Error)
	}

	return count, nil
}

func (d *EnrollmentDAO) FindByDonorID(ctx context.Context, donorID uint) ([]Enrollment, error) {
	var enrollments []Enrollment

	result := d.db.WithContext(ctx).
		Where("donor_id = ?", donorID).
		Order("enrolled_at ASC").
		Order("campaign_id ASC").
		Find(&enrollments)
	if result.Error != nil {
		return nil, storageErr(result.Error)
	}

	return enrollments, nil
}
