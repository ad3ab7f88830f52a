package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/onedrop-app/onedrop-api/internal/domain"
	"github.com/onedrop-app/onedrop-api/internal/metrics"
	"github.com/onedrop-app/onedrop-api/internal/repository"
)

var (
	ErrCampaignNotFound        = repository.ErrCampaignNotFound
	ErrStateConflict           = repository.ErrStateConflict
	ErrDuplicateActiveCampaign = repository.ErrDuplicateActiveCampaign
)

type CampaignRepository interface {
	Create(ctx context.Context, campaign domain.Campaign) (domain.Campaign, error)
	FindByID(ctx context.Context, id uint) (domain.Campaign, error)
	CompareAndSwapState(ctx context.Context, id uint, from, to domain.CampaignState) (domain.Campaign, error)
	ListOpen(ctx context.Context, asOf time.Time) ([]domain.Campaign, error)
	ListExpired(ctx context.Context, asOf time.Time) ([]domain.Campaign, error)
	ListByHospital(ctx context.Context, hospitalID uint) ([]domain.Campaign, error)
	ListByBeneficiary(ctx context.Context, beneficiaryID uint) ([]domain.Campaign, error)
}

type ParticipantLookup interface {
	FindHospitalByID(ctx context.Context, id uint) (domain.Hospital, error)
	FindDonorByID(ctx context.Context, id uint) (domain.Donor, error)
	FindBeneficiaryByID(ctx context.Context, id uint) (domain.Beneficiary, error)
}

// CampaignRequest is a beneficiary asking a hospital for a campaign.
// RequiredBloodType may be left empty to use the beneficiary's own type.
type CampaignRequest struct {
	HospitalID        uint
	BeneficiaryID     uint
	RequiredBloodType domain.BloodType
	Name              string
	Description       string
	UnitsNeeded       int
	StartDate         time.Time
	EndDate           time.Time
}

// Drive is a hospital-initiated campaign open to every donor.
type Drive struct {
	HospitalID        uint
	EmphasisBloodType *domain.BloodType
	Name              string
	Description       string
	UnitsNeeded       int
	StartDate         time.Time
	EndDate           time.Time
}

type CampaignService struct {
	repo         CampaignRepository
	participants ParticipantLookup
	metrics      *metrics.Metrics
	now          func() time.Time
}

func NewCampaignService(repo CampaignRepository, participants ParticipantLookup, m *metrics.Metrics) *CampaignService {
	return &CampaignService{
		repo:         repo,
		participants: participants,
		metrics:      m,
		now:          time.Now,
	}
}

func (s *CampaignService) RequestCampaign(ctx context.Context, actor domain.Actor, req CampaignRequest) (campaign domain.Campaign, err error) {
	defer func() { s.metrics.ObserveTransition(domain.TransitionRequest, err) }()

	beneficiaryID := req.BeneficiaryID
	candidate := domain.Campaign{
		HospitalID:    req.HospitalID,
		BeneficiaryID: &beneficiaryID,
	}
	if err = domain.Authorize(actor, domain.TransitionRequest, candidate); err != nil {
		return domain.Campaign{}, err
	}

	units, err := validateDetails(req.Name, req.UnitsNeeded, req.StartDate, req.EndDate)
	if err != nil {
		return domain.Campaign{}, err
	}

	beneficiary, err := s.participants.FindBeneficiaryByID(ctx, req.BeneficiaryID)
	if err != nil {
		return domain.Campaign{}, fmt.Errorf("s.participants.FindBeneficiaryByID -> %w", err)
	}

	required := beneficiary.RequiredBloodType
	if req.RequiredBloodType != "" && req.RequiredBloodType != required {
		return domain.Campaign{}, fmt.Errorf("%w: required blood type %s does not match beneficiary type %s",
			domain.ErrInvalidInput, req.RequiredBloodType, required)
	}

	if _, err = s.participants.FindHospitalByID(ctx, req.HospitalID); err != nil {
		return domain.Campaign{}, fmt.Errorf("s.participants.FindHospitalByID -> %w", err)
	}

	now := s.now().UTC()
	candidate.RequiredBloodType = required
	candidate.State = domain.StatePendingApproval
	candidate.Name = strings.TrimSpace(req.Name)
	candidate.Description = strings.TrimSpace(req.Description)
	candidate.UnitsNeeded = units
	candidate.StartDate = domain.TruncateDay(req.StartDate)
	candidate.EndDate = domain.TruncateDay(req.EndDate)
	candidate.CreatedAt = now
	candidate.UpdatedAt = now

	campaign, err = s.repo.Create(ctx, candidate)
	if err != nil {
		return domain.Campaign{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return campaign, nil
}

func (s *CampaignService) CreateDrive(ctx context.Context, actor domain.Actor, drive Drive) (campaign domain.Campaign, err error) {
	defer func() { s.metrics.ObserveTransition(domain.TransitionCreateDrive, err) }()

	candidate := domain.Campaign{HospitalID: drive.HospitalID}
	if err = domain.Authorize(actor, domain.TransitionCreateDrive, candidate); err != nil {
		return domain.Campaign{}, err
	}

	units, err := validateDetails(drive.Name, drive.UnitsNeeded, drive.StartDate, drive.EndDate)
	if err != nil {
		return domain.Campaign{}, err
	}
	if drive.EmphasisBloodType != nil && !drive.EmphasisBloodType.Valid() {
		return domain.Campaign{}, fmt.Errorf("%w: unknown blood type %q", domain.ErrInvalidInput, *drive.EmphasisBloodType)
	}

	if _, err = s.participants.FindHospitalByID(ctx, drive.HospitalID); err != nil {
		return domain.Campaign{}, fmt.Errorf("s.participants.FindHospitalByID -> %w", err)
	}

	now := s.now().UTC()
	candidate.RequiredBloodType = domain.Universal
	candidate.EmphasisBloodType = drive.EmphasisBloodType
	candidate.State = domain.StateActive
	candidate.Name = strings.TrimSpace(drive.Name)
	candidate.Description = strings.TrimSpace(drive.Description)
	candidate.UnitsNeeded = units
	candidate.StartDate = domain.TruncateDay(drive.StartDate)
	candidate.EndDate = domain.TruncateDay(drive.EndDate)
	candidate.CreatedAt = now
	candidate.UpdatedAt = now

	campaign, err = s.repo.Create(ctx, candidate)
	if err != nil {
		return domain.Campaign{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return campaign, nil
}

func (s *CampaignService) Approve(ctx context.Context, actor domain.Actor, campaignID uint) (domain.Campaign, error) {
	return s.transition(ctx, actor, campaignID, domain.TransitionApprove)
}

func (s *CampaignService) Reject(ctx context.Context, actor domain.Actor, campaignID uint) (domain.Campaign, error) {
	return s.transition(ctx, actor, campaignID, domain.TransitionReject)
}

func (s *CampaignService) Finalize(ctx context.Context, actor domain.Actor, campaignID uint) (domain.Campaign, error) {
	return s.transition(ctx, actor, campaignID, domain.TransitionFinalize)
}

func (s *CampaignService) transition(ctx context.Context, actor domain.Actor, campaignID uint, t domain.Transition) (domain.Campaign, error) {
	campaign, err := s.repo.FindByID(ctx, campaignID)
	if err != nil {
		err = fmt.Errorf("s.repo.FindByID -> %w", err)
		s.metrics.ObserveTransition(t, err)
		return domain.Campaign{}, err
	}

	return s.apply(ctx, actor, campaign, t)
}

// apply authorizes t, resolves the target state and commits it with a
// compare-and-swap on the state the caller observed.
func (s *CampaignService) apply(ctx context.Context, actor domain.Actor, campaign domain.Campaign, t domain.Transition) (updated domain.Campaign, err error) {
	defer func() { s.metrics.ObserveTransition(t, err) }()

	if err = domain.Authorize(actor, t, campaign); err != nil {
		return domain.Campaign{}, err
	}

	next, err := domain.NextState(campaign.State, t)
	if err != nil {
		return domain.Campaign{}, err
	}

	updated, err = s.repo.CompareAndSwapState(ctx, campaign.ID, campaign.State, next)
	if err != nil {
		return domain.Campaign{}, fmt.Errorf("s.repo.CompareAndSwapState -> %w", err)
	}

	return updated, nil
}

// ListEligible returns the active campaigns still open on asOf that the
// donor's blood type can serve, soonest deadline first.
func (s *CampaignService) ListEligible(ctx context.Context, donorID uint, asOf time.Time) ([]domain.Campaign, error) {
	donor, err := s.participants.FindDonorByID(ctx, donorID)
	if err != nil {
		return nil, fmt.Errorf("s.participants.FindDonorByID -> %w", err)
	}

	open, err := s.repo.ListOpen(ctx, asOf)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListOpen -> %w", err)
	}

	return domain.EligibleCampaignsFor(donor.BloodType, open), nil
}

// GetCampaign returns a campaign the actor is allowed to see. Campaigns
// outside the actor's view are reported as not found, so a donor cannot
// learn about pending or closed requests.
func (s *CampaignService) GetCampaign(ctx context.Context, actor domain.Actor, campaignID uint) (domain.Campaign, error) {
	campaign, err := s.repo.FindByID(ctx, campaignID)
	if err != nil {
		return domain.Campaign{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	var donorType domain.BloodType
	if actor.Role == domain.RoleDonor {
		donor, err := s.participants.FindDonorByID(ctx, actor.ID)
		if err != nil {
			return domain.Campaign{}, fmt.Errorf("s.participants.FindDonorByID -> %w", err)
		}
		donorType = donor.BloodType
	}

	if !domain.CanView(actor, donorType, campaign, s.now()) {
		return domain.Campaign{}, fmt.Errorf("%w: id %d", ErrCampaignNotFound, campaignID)
	}

	return campaign, nil
}

func (s *CampaignService) ListByHospital(ctx context.Context, hospitalID uint) ([]domain.Campaign, error) {
	campaigns, err := s.repo.ListByHospital(ctx, hospitalID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListByHospital -> %w", err)
	}

	return campaigns, nil
}

func (s *CampaignService) ListByBeneficiary(ctx context.Context, beneficiaryID uint) ([]domain.Campaign, error) {
	campaigns, err := s.repo.ListByBeneficiary(ctx, beneficiaryID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListByBeneficiary -> %w", err)
	}

	return campaigns, nil
}

// FinalizeExpired finalizes, as the system actor, every active campaign
// whose end date is before asOf. Campaigns finalized concurrently by their
// hospital are skipped. Storage failures stop the sweep so the caller can
// retry; other per-campaign failures are collected.
func (s *CampaignService) FinalizeExpired(ctx context.Context, asOf time.Time) (int, error) {
	expired, err := s.repo.ListExpired(ctx, asOf)
	if err != nil {
		return 0, fmt.Errorf("s.repo.ListExpired -> %w", err)
	}

	var (
		finalized int
		errs      []error
	)
	for _, campaign := range expired {
		_, err := s.apply(ctx, domain.SystemActor, campaign, domain.TransitionFinalize)
		switch {
		case err == nil:
			finalized++
		case errors.Is(err, ErrStateConflict):
			// finalized by its hospital in the meantime
		case domain.IsRetryable(err):
			return finalized, fmt.Errorf("finalize campaign %d -> %w", campaign.ID, err)
		default:
			errs = append(errs, fmt.Errorf("finalize campaign %d -> %w", campaign.ID, err))
		}
	}

	return finalized, errors.Join(errs...)
}

func validateDetails(name string, units int, start, end time.Time) (int, error) {
	if strings.TrimSpace(name) == "" {
		return 0, fmt.Errorf("%w: campaign name is required", domain.ErrInvalidInput)
	}
	if units < 0 {
		return 0, fmt.Errorf("%w: units needed must be positive", domain.ErrInvalidInput)
	}
	if units == 0 {
		units = 1
	}

	if err := domain.ValidateSchedule(domain.TruncateDay(start), domain.TruncateDay(end)); err != nil {
		return 0, err
	}

	return units, nil
}
