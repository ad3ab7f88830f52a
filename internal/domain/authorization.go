package domain

import (
	"fmt"
	"time"
)

// CanInvoke is the authorization gate evaluated before every lifecycle
// transition and ledger write. For request and create_drive, campaign is
// the record about to be created.
func CanInvoke(actor Actor, t Transition, campaign Campaign) bool {
	switch actor.Role {
	case RoleBeneficiary:
		return t == TransitionRequest &&
			campaign.BeneficiaryID != nil && *campaign.BeneficiaryID == actor.ID
	case RoleHospital:
		switch t {
		case TransitionCreateDrive:
			return campaign.BeneficiaryID == nil && campaign.HospitalID == actor.ID
		case TransitionApprove, TransitionReject, TransitionFinalize:
			return campaign.HospitalID == actor.ID
		}
		return false
	case RoleDonor:
		return t == TransitionEnroll
	case RoleSystem:
		return t == TransitionFinalize
	}

	return false
}

// Authorize wraps CanInvoke into an ErrForbidden.
func Authorize(actor Actor, t Transition, campaign Campaign) error {
	if !CanInvoke(actor, t, campaign) {
		return fmt.Errorf("%w: %s %d may not %s campaign %d", ErrForbidden, actor.Role, actor.ID, t, campaign.ID)
	}

	return nil
}

// CanView decides whether actor may read campaign on day. Hospitals see the
// campaigns they own and beneficiaries their own requests. Donors see only
// what ListEligible would show them: active, not past its end date, and
// accepting their blood type.
func CanView(actor Actor, donorType BloodType, campaign Campaign, day time.Time) bool {
	switch actor.Role {
	case RoleHospital:
		return campaign.HospitalID == actor.ID
	case RoleBeneficiary:
		return campaign.BeneficiaryID != nil && *campaign.BeneficiaryID == actor.ID
	case RoleDonor:
		return campaign.OpenOn(day) && campaign.AcceptsDonor(donorType)
	case RoleSystem:
		return true
	}

	return false
}
