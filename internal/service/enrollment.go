package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/onedrop-app/onedrop-api/internal/domain"
	"github.com/onedrop-app/onedrop-api/internal/metrics"
	"github.com/onedrop-app/onedrop-api/internal/repository"
	"github.com/onedrop-app/onedrop-api/internal/store"
)

var (
	ErrAlreadyEnrolled   = repository.ErrAlreadyEnrolled
	ErrCampaignNotActive = repository.ErrCampaignNotActive
)

type EnrollmentRepository interface {
	Create(ctx context.Context, enrollment domain.Enrollment) (domain.Enrollment, error)
	CountByCampaign(ctx context.Context, campaignID uint) (int64, error)
	ListByDonor(ctx context.Context, donorID uint) ([]domain.Enrollment, error)
}

type CampaignFinder interface {
	FindByID(ctx context.Context, id uint) (domain.Campaign, error)
}

type DonorFinder interface {
	FindDonorByID(ctx context.Context, id uint) (domain.Donor, error)
}

type EnrollmentService struct {
	repo      EnrollmentRepository
	campaigns CampaignFinder
	donors    DonorFinder
	metrics   *metrics.Metrics
	now       func() time.Time

	// cache is optional; without it counts are always read from the store.
	cache    store.KV
	cacheTTL time.Duration
}

func NewEnrollmentService(repo EnrollmentRepository, campaigns CampaignFinder, donors DonorFinder, m *metrics.Metrics) *EnrollmentService {
	return &EnrollmentService{
		repo:      repo,
		campaigns: campaigns,
		donors:    donors,
		metrics:   m,
		now:       time.Now,
	}
}

// WithCountCache serves CountEnrollments through kv. Entries are written
// only from committed counts and dropped after every committed enrollment.
func (s *EnrollmentService) WithCountCache(kv store.KV, ttl time.Duration) *EnrollmentService {
	s.cache = kv
	s.cacheTTL = ttl
	return s
}

// Enroll records the donor's commitment to an active campaign their blood
// type can serve. A second call for the same pair fails with
// ErrAlreadyEnrolled and leaves the ledger unchanged.
func (s *EnrollmentService) Enroll(ctx context.Context, actor domain.Actor, campaignID uint) (enrollment domain.Enrollment, err error) {
	defer func() { s.metrics.ObserveEnrollment(err) }()

	campaign, err := s.campaigns.FindByID(ctx, campaignID)
	if err != nil {
		return domain.Enrollment{}, fmt.Errorf("s.campaigns.FindByID -> %w", err)
	}

	if err = domain.Authorize(actor, domain.TransitionEnroll, campaign); err != nil {
		return domain.Enrollment{}, err
	}

	if campaign.State != domain.StateActive {
		return domain.Enrollment{}, fmt.Errorf("campaign %d is %s -> %w", campaign.ID, campaign.State, ErrCampaignNotActive)
	}
	if !campaign.OpenOn(s.now()) {
		return domain.Enrollment{}, fmt.Errorf("campaign %d ended on %s -> %w",
			campaign.ID, campaign.EndDate.Format(domain.DateLayout), ErrCampaignNotActive)
	}

	donor, err := s.donors.FindDonorByID(ctx, actor.ID)
	if err != nil {
		return domain.Enrollment{}, fmt.Errorf("s.donors.FindDonorByID -> %w", err)
	}

	if !campaign.AcceptsDonor(donor.BloodType) {
		return domain.Enrollment{}, fmt.Errorf("%w: donor type %s cannot give to %s",
			domain.ErrInvalidInput, donor.BloodType, campaign.RequiredBloodType)
	}

	enrollment, err = s.repo.Create(ctx, domain.Enrollment{
		CampaignID: campaign.ID,
		DonorID:    donor.ID,
		EnrolledAt: s.now().UTC(),
	})
	if err != nil {
		return domain.Enrollment{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	s.invalidateCount(ctx, campaign.ID)

	return enrollment, nil
}

// CountEnrollments returns the number of committed enrollments for an
// existing campaign.
func (s *EnrollmentService) CountEnrollments(ctx context.Context, campaignID uint) (int64, error) {
	if count, ok := s.cachedCount(ctx, campaignID); ok {
		return count, nil
	}

	if _, err := s.campaigns.FindByID(ctx, campaignID); err != nil {
		return 0, fmt.Errorf("s.campaigns.FindByID -> %w", err)
	}

	count, err := s.repo.CountByCampaign(ctx, campaignID)
	if err != nil {
		return 0, fmt.Errorf("s.repo.CountByCampaign -> %w", err)
	}

	s.storeCount(ctx, campaignID, count)

	return count, nil
}

func (s *EnrollmentService) ListByDonor(ctx context.Context, donorID uint) ([]domain.Enrollment, error) {
	enrollments, err := s.repo.ListByDonor(ctx, donorID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListByDonor -> %w", err)
	}

	return enrollments, nil
}

// Cache failures degrade to a store read and are only logged; the ledger
// result never depends on them.

func (s *EnrollmentService) cachedCount(ctx context.Context, campaignID uint) (int64, bool) {
	if s.cache == nil {
		return 0, false
	}

	val, err := s.cache.Get(ctx, store.EnrollmentCountKey(campaignID))
	if err != nil {
		if !errors.Is(err, store.ErrMiss) {
			zap.L().Warn("enrollment count cache get failed", zap.Uint("campaign_id", campaignID), zap.Error(err))
		}
		s.metrics.ObserveCountCache(false)
		return 0, false
	}

	count, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		zap.L().Warn("enrollment count cache holds garbage", zap.Uint("campaign_id", campaignID), zap.String("value", val))
		s.metrics.ObserveCountCache(false)
		return 0, false
	}

	s.metrics.ObserveCountCache(true)
	return count, true
}

func (s *EnrollmentService) storeCount(ctx context.Context, campaignID uint, count int64) {
	if s.cache == nil {
		return
	}

	err := s.cache.Set(ctx, store.EnrollmentCountKey(campaignID), strconv.FormatInt(count, 10), s.cacheTTL)
	if err != nil {
		zap.L().Warn("enrollment count cache set failed", zap.Uint("campaign_id", campaignID), zap.Error(err))
	}
}

func (s *EnrollmentService) invalidateCount(ctx context.Context, campaignID uint) {
	if s.cache == nil {
		return
	}

	if err := s.cache.Del(ctx, store.EnrollmentCountKey(campaignID)); err != nil {
		zap.L().Warn("enrollment count cache invalidation failed", zap.Uint("campaign_id", campaignID), zap.Error(err))
	}
}
