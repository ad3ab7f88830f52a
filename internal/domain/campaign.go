package domain

import (
	"fmt"
	"time"
)

type CampaignState string

const (
	StatePendingApproval CampaignState = "pending_approval"
	StateApproved        CampaignState = "approved"
	StateRejected        CampaignState = "rejected"
	StateActive          CampaignState = "active"
	StateFinalized       CampaignState = "finalized"
)

// CampaignStates is the closed set of storable states.
var CampaignStates = []CampaignState{
	StatePendingApproval,
	StateApproved,
	StateRejected,
	StateActive,
	StateFinalized,
}

func ParseCampaignState(s string) (CampaignState, error) {
	for _, st := range CampaignStates {
		if string(st) == s {
			return st, nil
		}
	}

	return "", fmt.Errorf("%w: unknown campaign state %q", ErrInvalidInput, s)
}

// Terminal states accept no further transition.
func (s CampaignState) Terminal() bool {
	return s == StateRejected || s == StateFinalized
}

type Transition string

const (
	TransitionRequest     Transition = "request"
	TransitionCreateDrive Transition = "create_drive"
	TransitionApprove     Transition = "approve"
	TransitionReject      Transition = "reject"
	TransitionFinalize    Transition = "finalize"
	TransitionEnroll      Transition = "enroll"
)

type edge struct {
	from CampaignState
	via  Transition
}

var lifecycle = map[edge]CampaignState{
	{StatePendingApproval, TransitionApprove}: StateActive,
	{StatePendingApproval, TransitionReject}:  StateRejected,
	{StateActive, TransitionFinalize}:         StateFinalized,
}

// NextState returns the state reached by applying t to from, or
// ErrInvalidTransition when the move is not in the lifecycle.
func NextState(from CampaignState, t Transition) (CampaignState, error) {
	to, ok := lifecycle[edge{from, t}]
	if !ok {
		return "", fmt.Errorf("%w: cannot %s a campaign in state %s", ErrInvalidTransition, t, from)
	}

	return to, nil
}

type Campaign struct {
	ID                uint          `json:"id"`
	HospitalID        uint          `json:"hospital_id"`
	BeneficiaryID     *uint         `json:"beneficiary_id,omitempty"`
	RequiredBloodType BloodType     `json:"required_blood_type"`
	EmphasisBloodType *BloodType    `json:"emphasis_blood_type,omitempty"`
	State             CampaignState `json:"state"`
	Name              string        `json:"name"`
	Description       string        `json:"description"`
	UnitsNeeded       int           `json:"units_needed"`
	StartDate         time.Time     `json:"start_date"`
	EndDate           time.Time     `json:"end_date"`
	Version           int           `json:"version"`
	CreatedAt         time.Time     `json:"created_at"`
	UpdatedAt         time.Time     `json:"updated_at"`
}

// IsDrive reports whether the campaign is a hospital-initiated drive.
func (c Campaign) IsDrive() bool {
	return c.BeneficiaryID == nil
}

func (c Campaign) AcceptsDonor(donor BloodType) bool {
	if c.RequiredBloodType == Universal {
		return true
	}

	return CanDonorGiveTo(donor, c.RequiredBloodType)
}

// OpenOn reports whether donors may see the campaign on the given day.
func (c Campaign) OpenOn(day time.Time) bool {
	return c.State == StateActive && !c.EndDate.Before(TruncateDay(day))
}

// ValidateSchedule checks the date window of a new campaign.
func ValidateSchedule(start, end time.Time) error {
	if start.IsZero() || end.IsZero() {
		return fmt.Errorf("%w: start and end dates are required", ErrInvalidInput)
	}
	if end.Before(start) {
		return fmt.Errorf("%w: end date %s is before start date %s",
			ErrInvalidInput, end.Format(DateLayout), start.Format(DateLayout))
	}

	return nil
}

const DateLayout = "2006-01-02"

// TruncateDay drops the time of day, in UTC.
func TruncateDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

type Enrollment struct {
	CampaignID uint      `json:"campaign_id"`
	DonorID    uint      `json:"donor_id"`
	EnrolledAt time.Time `json:"enrolled_at"`
}
