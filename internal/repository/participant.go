package repository

import (
	"context"
	"fmt"

	"github.com/onedrop-app/onedrop-api/internal/domain"
	"github.com/onedrop-app/onedrop-api/internal/repository/dao"
)

var (
	ErrHospitalNotFound    = dao.ErrHospitalNotFound
	ErrDonorNotFound       = dao.ErrDonorNotFound
	ErrBeneficiaryNotFound = dao.ErrBeneficiaryNotFound
)

type ParticipantDAO interface {
	InsertHospital(ctx context.Context, hospital dao.Hospital) (dao.Hospital, error)
	InsertDonor(ctx context.Context, donor dao.Donor) (dao.Donor, error)
	InsertBeneficiary(ctx context.Context, beneficiary dao.Beneficiary) (dao.Beneficiary, error)
	FindHospitalByID(ctx context.Context, id uint) (dao.Hospital, error)
	FindDonorByID(ctx context.Context, id uint) (dao.Donor, error)
	FindBeneficiaryByID(ctx context.Context, id uint) (dao.Beneficiary, error)
}

type ParticipantRepository struct {
	dao ParticipantDAO
}

func NewParticipantRepository(dao ParticipantDAO) *ParticipantRepository {
	return &ParticipantRepository{
		dao: dao,
	}
}

func (r *ParticipantRepository) CreateHospital(ctx context.Context, hospital domain.Hospital) (domain.Hospital, error) {
	created, err := r.dao.InsertHospital(ctx, dao.Hospital{Name: hospital.Name})
	if err != nil {
		return domain.Hospital{}, fmt.Errorf("r.dao.InsertHospital -> %w", err)
	}

	return domain.Hospital{ID: created.ID, Name: created.Name, CreatedAt: created.CreatedAt}, nil
}

func (r *ParticipantRepository) CreateDonor(ctx context.Context, donor domain.Donor) (domain.Donor, error) {
	created, err := r.dao.InsertDonor(ctx, dao.Donor{
		Name:      donor.Name,
		BloodType: string(donor.BloodType),
	})
	if err != nil {
		return domain.Donor{}, fmt.Errorf("r.dao.InsertDonor -> %w", err)
	}

	return r.donorDaoToDomain(created)
}

func (r *ParticipantRepository) CreateBeneficiary(ctx context.Context, beneficiary domain.Beneficiary) (domain.Beneficiary, error) {
	created, err := r.dao.InsertBeneficiary(ctx, dao.Beneficiary{
		Name:              beneficiary.Name,
		RequiredBloodType: string(beneficiary.RequiredBloodType),
		Urgency:           string(beneficiary.Urgency),
	})
	if err != nil {
		return domain.Beneficiary{}, fmt.Errorf("r.dao.InsertBeneficiary -> %w", err)
	}

	return r.beneficiaryDaoToDomain(created)
}

func (r *ParticipantRepository) FindHospitalByID(ctx context.Context, id uint) (domain.Hospital, error) {
	found, err := r.dao.FindHospitalByID(ctx, id)
	if err != nil {
		return domain.Hospital{}, fmt.Errorf("r.dao.FindHospitalByID -> %w", err)
	}

	return domain.Hospital{ID: found.ID, Name: found.Name, CreatedAt: found.CreatedAt}, nil
}

func (r *ParticipantRepository) FindDonorByID(ctx context.Context, id uint) (domain.Donor, error) {
	found, err := r.dao.FindDonorByID(ctx, id)
	if err != nil {
		return domain.Donor{}, fmt.Errorf("r.dao.FindDonorByID -> %w", err)
	}

	return r.donorDaoToDomain(found)
}

func (r *ParticipantRepository) FindBeneficiaryByID(ctx context.Context, id uint) (domain.Beneficiary, error) {
	found, err := r.dao.FindBeneficiaryByID(ctx, id)
	if err != nil {
		return domain.Beneficiary{}, fmt.Errorf("r.dao.FindBeneficiaryByID -> %w", err)
	}

	return r.beneficiaryDaoToDomain(found)
}

func (r *ParticipantRepository) donorDaoToDomain(d dao.Donor) (domain.Donor, error) {
	bt, err := domain.ParseBloodType(d.BloodType)
	if err != nil {
		return domain.Donor{}, fmt.Errorf("donor %d -> %w", d.ID, err)
	}

	return domain.Donor{
		ID:        d.ID,
		Name:      d.Name,
		BloodType: bt,
		CreatedAt: d.CreatedAt,
	}, nil
}

func (r *ParticipantRepository) beneficiaryDaoToDomain(b dao.Beneficiary) (domain.Beneficiary, error) {
	bt, err := domain.ParseBloodType(b.RequiredBloodType)
	if err != nil {
		return domain.Beneficiary{}, fmt.Errorf("beneficiary %d -> %w", b.ID, err)
	}

	return domain.Beneficiary{
		ID:                b.ID,
		Name:              b.Name,
		RequiredBloodType: bt,
		Urgency:           domain.Urgency(b.Urgency),
		CreatedAt:         b.CreatedAt,
	}, nil
}
