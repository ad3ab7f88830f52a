package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/onedrop-app/onedrop-api/internal/domain"
	"github.com/onedrop-app/onedrop-api/internal/repository/dao"
)

var (
	ErrCampaignNotFound        = dao.ErrCampaignNotFound
	ErrStateConflict           = dao.ErrStateConflict
	ErrDuplicateActiveCampaign = dao.ErrDuplicateActiveCampaign
)

type CampaignDAO interface {
	Insert(ctx context.Context, campaign dao.Campaign) (dao.Campaign, error)
	FindByID(ctx context.Context, id uint) (dao.Campaign, error)
	UpdateState(ctx context.Context, id uint, from, to string) (dao.Campaign, error)
	FindOpen(ctx context.Context, asOf time.Time) ([]dao.Campaign, error)
	FindExpired(ctx context.Context, asOf time.Time) ([]dao.Campaign, error)
	FindByHospitalID(ctx context.Context, hospitalID uint) ([]dao.Campaign, error)
	FindByBeneficiaryID(ctx context.Context, beneficiaryID uint) ([]dao.Campaign, error)
}

type CampaignRepository struct {
	dao CampaignDAO
}

func NewCampaignRepository(dao CampaignDAO) *CampaignRepository {
	return &CampaignRepository{
		dao: dao,
	}
}

func (r *CampaignRepository) Create(ctx context.Context, campaign domain.Campaign) (domain.Campaign, error) {
	created, err := r.dao.Insert(ctx, r.domainToDao(campaign))
	if err != nil {
		return domain.Campaign{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created)
}

func (r *CampaignRepository) FindByID(ctx context.Context, id uint) (domain.Campaign, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Campaign{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found)
}

// CompareAndSwapState applies from -> to only if the stored state is still
// from. A lost race surfaces as ErrStateConflict.
func (r *CampaignRepository) CompareAndSwapState(ctx context.Context, id uint, from, to domain.CampaignState) (domain.Campaign, error) {
	updated, err := r.dao.UpdateState(ctx, id, string(from), string(to))
	if err != nil {
		return domain.Campaign{}, fmt.Errorf("r.dao.UpdateState -> %w", err)
	}

	return r.daoToDomain(updated)
}

func (r *CampaignRepository) ListOpen(ctx context.Context, asOf time.Time) ([]domain.Campaign, error) {
	found, err := r.dao.FindOpen(ctx, domain.TruncateDay(asOf))
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindOpen -> %w", err)
	}

	return r.daosToDomain(found)
}

func (r *CampaignRepository) ListExpired(ctx context.Context, asOf time.Time) ([]domain.Campaign, error) {
	found, err := r.dao.FindExpired(ctx, domain.TruncateDay(asOf))
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindExpired -> %w", err)
	}

	return r.daosToDomain(found)
}

func (r *CampaignRepository) ListByHospital(ctx context.Context, hospitalID uint) ([]domain.Campaign, error) {
	found, err := r.dao.FindByHospitalID(ctx, hospitalID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByHospitalID -> %w", err)
	}

	return r.daosToDomain(found)
}

func (r *CampaignRepository) ListByBeneficiary(ctx context.Context, beneficiaryID uint) ([]domain.Campaign, error) {
	found, err := r.dao.FindByBeneficiaryID(ctx, beneficiaryID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByBeneficiaryID -> %w", err)
	}

	return r.daosToDomain(found)
}

func (r *CampaignRepository) domainToDao(c domain.Campaign) dao.Campaign {
	var emphasis *string
	if c.EmphasisBloodType != nil {
		s := string(*c.EmphasisBloodType)
		emphasis = &s
	}

	return dao.Campaign{
		ID:                c.ID,
		HospitalID:        c.HospitalID,
		BeneficiaryID:     c.BeneficiaryID,
		RequiredBloodType: string(c.RequiredBloodType),
		EmphasisBloodType: emphasis,
		State:             string(c.State),
		Name:              c.Name,
		Description:       c.Description,
		UnitsNeeded:       c.UnitsNeeded,
		StartDate:         domain.TruncateDay(c.StartDate),
		EndDate:           domain.TruncateDay(c.EndDate),
		Version:           c.Version,
		CreatedAt:         c.CreatedAt,
		UpdatedAt:         c.UpdatedAt,
	}
}

// daoToDomain rejects rows whose state or blood type falls outside the
// closed sets, rather than handing an unknown value to the state machine.
func (r *CampaignRepository) daoToDomain(c dao.Campaign) (domain.Campaign, error) {
	state, err := domain.ParseCampaignState(c.State)
	if err != nil {
		return domain.Campaign{}, fmt.Errorf("campaign %d -> %w", c.ID, err)
	}

	required, err := domain.ParseRequiredBloodType(c.RequiredBloodType)
	if err != nil {
		return domain.Campaign{}, fmt.Errorf("campaign %d -> %w", c.ID, err)
	}

	var emphasis *domain.BloodType
	if c.EmphasisBloodType != nil {
		bt, err := domain.ParseBloodType(*c.EmphasisBloodType)
		if err != nil {
			return domain.Campaign{}, fmt.Errorf("campaign %d -> %w", c.ID, err)
		}
		emphasis = &bt
	}

	return domain.Campaign{
		ID:                c.ID,
		HospitalID:        c.HospitalID,
		BeneficiaryID:     c.BeneficiaryID,
		RequiredBloodType: required,
		EmphasisBloodType: emphasis,
		State:             state,
		Name:              c.Name,
		Description:       c.Description,
		UnitsNeeded:       c.UnitsNeeded,
		StartDate:         c.StartDate.UTC(),
		EndDate:           c.EndDate.UTC(),
		Version:           c.Version,
		CreatedAt:         c.CreatedAt,
		UpdatedAt:         c.UpdatedAt,
	}, nil
}

func (r *CampaignRepository) daosToDomain(daos []dao.Campaign) ([]domain.Campaign, error) {
	campaigns := make([]domain.Campaign, 0, len(daos))
	for _, c := range daos {
		campaign, err := r.daoToDomain(c)
		if err != nil {
			return nil, err
		}
		campaigns = append(campaigns, campaign)
	}

	return campaigns, nil
}
