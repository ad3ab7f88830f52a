package repository

import (
	"context"
	"fmt"

	"github.com/onedrop-app/onedrop-api/internal/domain"
	"github.com/onedrop-app/onedrop-api/internal/repository/dao"
)

var (
	ErrAlreadyEnrolled   = dao.ErrAlreadyEnrolled
	ErrCampaignNotActive = dao.ErrCampaignNotActive
)

type EnrollmentDAO interface {
	Insert(ctx context.Context, enrollment dao.Enrollment) (dao.Enrollment, error)
	CountByCampaignID(ctx context.Context, campaignID uint) (int64, error)
	FindByDonorID(ctx context.Context, donorID uint) ([]dao.Enrollment, error)
}

type EnrollmentRepository struct {
	dao EnrollmentDAO
}

func NewEnrollmentRepository(dao EnrollmentDAO) *EnrollmentRepository {
	return &EnrollmentRepository{
		dao: dao,
	}
}

func (r *EnrollmentRepository) Create(ctx context.Context, enrollment domain.Enrollment) (domain.Enrollment, error) {
	created, err := r.dao.Insert(ctx, dao.Enrollment{
		CampaignID: enrollment.CampaignID,
		DonorID:    enrollment.DonorID,
		EnrolledAt: enrollment.EnrolledAt,
	})
	if err != nil {
		return domain.Enrollment{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *EnrollmentRepository) CountByCampaign(ctx context.Context, campaignID uint) (int64, error) {
	count, err := r.dao.CountByCampaignID(ctx, campaignID)
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountByCampaignID -> %w", err)
	}

	return count, nil
}

func (r *EnrollmentRepository) ListByDonor(ctx context.Context, donorID uint) ([]domain.Enrollment, error) {
	found, err := r.dao.FindByDonorID(ctx, donorID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByDonorID -> %w", err)
	}

	enrollments := make([]domain.Enrollment, len(found))
	for i, e := range found {
		enrollments[i] = r.daoToDomain(e)
	}

	return enrollments, nil
}

func (r *EnrollmentRepository) daoToDomain(e dao.Enrollment) domain.Enrollment {
	return domain.Enrollment{
		CampaignID: e.CampaignID,
		DonorID:    e.DonorID,
		EnrolledAt: e.EnrolledAt,
	}
}
