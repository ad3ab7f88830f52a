package dao

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

type Hospital struct {
	ID        uint      `gorm:"primaryKey"`
	Name      string    `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`
}

type Donor struct {
	ID        uint      `gorm:"primaryKey"`
	Name      string    `gorm:"not null"`
	BloodType string    `gorm:"size:3;not null"`
	CreatedAt time.Time `gorm:"not null"`
}

type Beneficiary struct {
	ID                uint      `gorm:"primaryKey"`
	Name              string    `gorm:"not null"`
	RequiredBloodType string    `gorm:"size:3;not null"`
	Urgency           string    `gorm:"size:16;not null;default:low"`
	CreatedAt         time.Time `gorm:"not null"`
}

type ParticipantDAO struct {
	db *gorm.DB
}

func NewParticipantDAO(db *gorm.DB) *ParticipantDAO {
	return &ParticipantDAO{
		db: db,
	}
}

func (d *ParticipantDAO) InsertHospital(ctx context.Context, hospital Hospital) (Hospital, error) {
	if err := d.db.WithContext(ctx).Create(&hospital).Error; err != nil {
		return Hospital{}, storageErr(err)
	}

	return hospital, nil
}

func (d *ParticipantDAO) InsertDonor(ctx context.Context, donor Donor) (Donor, error) {
	if err := d.db.WithContext(ctx).Create(&donor).Error; err != nil {
		return Donor{}, storageErr(err)
	}

	return donor, nil
}

func (d *ParticipantDAO) InsertBeneficiary(ctx context.Context, beneficiary Beneficiary) (Beneficiary, error) {
	if err := d.db.WithContext(ctx).Create(&beneficiary).Error; err != nil {
		return Beneficiary{}, storageErr(err)
	}

	return beneficiary, nil
}

func (d *ParticipantDAO) FindHospitalByID(ctx context.Context, id uint) (Hospital, error) {
	var hospital Hospital
	if err := d.first(ctx, &hospital, id, ErrHospitalNotFound); err != nil {
		return Hospital{}, err
	}

	return hospital, nil
}

func (d *ParticipantDAO) FindDonorByID(ctx context.Context, id uint) (Donor, error) {
	var donor Donor
	if err := d.first(ctx, &donor, id, ErrDonorNotFound); err != nil {
		return Donor{}, err
	}

	return donor, nil
}

func (d *ParticipantDAO) FindBeneficiaryByID(ctx context.Context, id uint) (Beneficiary, error) {
	var beneficiary Beneficiary
	if err := d.first(ctx, &beneficiary, id, ErrBeneficiaryNotFound); err != nil {
		return Beneficiary{}, err
	}

	return beneficiary, nil
}

func (d *ParticipantDAO) first(ctx context.Context, dest any, id uint, notFound error) error {
	result := d.db.WithContext(ctx).First(dest, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: id %d", notFound, id)
		}

		return storageErr(result.Error)
	}

	return nil
}
