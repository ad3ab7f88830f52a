package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/onedrop-app/onedrop-api/internal/domain"
	"github.com/onedrop-app/onedrop-api/internal/repository"
)

var (
	ErrHospitalNotFound    = repository.ErrHospitalNotFound
	ErrDonorNotFound       = repository.ErrDonorNotFound
	ErrBeneficiaryNotFound = repository.ErrBeneficiaryNotFound
)

type ParticipantRepository interface {
	CreateHospital(ctx context.Context, hospital domain.Hospital) (domain.Hospital, error)
	CreateDonor(ctx context.Context, donor domain.Donor) (domain.Donor, error)
	CreateBeneficiary(ctx context.Context, beneficiary domain.Beneficiary) (domain.Beneficiary, error)
	ParticipantLookup
}

type ParticipantService struct {
	repo ParticipantRepository
}

func NewParticipantService(repo ParticipantRepository) *ParticipantService {
	return &ParticipantService{
		repo: repo,
	}
}

func (s *ParticipantService) RegisterHospital(ctx context.Context, name string) (domain.Hospital, error) {
	name, err := requireName(name)
	if err != nil {
		return domain.Hospital{}, err
	}

	created, err := s.repo.CreateHospital(ctx, domain.Hospital{Name: name})
	if err != nil {
		return domain.Hospital{}, fmt.Errorf("s.repo.CreateHospital -> %w", err)
	}

	return created, nil
}

func (s *ParticipantService) RegisterDonor(ctx context.Context, name, bloodType string) (domain.Donor, error) {
	name, err := requireName(name)
	if err != nil {
		return domain.Donor{}, err
	}

	bt, err := domain.ParseBloodType(bloodType)
	if err != nil {
		return domain.Donor{}, err
	}

	created, err := s.repo.CreateDonor(ctx, domain.Donor{Name: name, BloodType: bt})
	if err != nil {
		return domain.Donor{}, fmt.Errorf("s.repo.CreateDonor -> %w", err)
	}

	return created, nil
}

func (s *ParticipantService) RegisterBeneficiary(ctx context.Context, name, bloodType, urgency string) (domain.Beneficiary, error) {
	name, err := requireName(name)
	if err != nil {
		return domain.Beneficiary{}, err
	}

	bt, err := domain.ParseBloodType(bloodType)
	if err != nil {
		return domain.Beneficiary{}, err
	}

	u, err := domain.ParseUrgency(urgency)
	if err != nil {
		return domain.Beneficiary{}, err
	}

	created, err := s.repo.CreateBeneficiary(ctx, domain.Beneficiary{
		Name:              name,
		RequiredBloodType: bt,
		Urgency:           u,
	})
	if err != nil {
		return domain.Beneficiary{}, fmt.Errorf("s.repo.CreateBeneficiary -> %w", err)
	}

	return created, nil
}

func (s *ParticipantService) GetDonor(ctx context.Context, id uint) (domain.Donor, error) {
	donor, err := s.repo.FindDonorByID(ctx, id)
	if err != nil {
		return domain.Donor{}, fmt.Errorf("s.repo.FindDonorByID -> %w", err)
	}

	return donor, nil
}

func requireName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}

	return name, nil
}
