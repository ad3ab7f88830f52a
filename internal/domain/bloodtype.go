package domain

import (
	"fmt"
	"strings"
)

type BloodType string

const (
	APos  BloodType = "A+"
	ANeg  BloodType = "A-"
	BPos  BloodType = "B+"
	BNeg  BloodType = "B-"
	ABPos BloodType = "AB+"
	ABNeg BloodType = "AB-"
	OPos  BloodType = "O+"
	ONeg  BloodType = "O-"

	// Universal is only ever a campaign requirement: any donor may enroll.
	Universal BloodType = "ANY"
)

// BloodTypes lists the eight ABO/Rh types in display order.
var BloodTypes = []BloodType{APos, ANeg, BPos, BNeg, ABPos, ABNeg, OPos, ONeg}

// donorRecipients is the canonical compatibility table. Every directional
// query is derived from it.
var donorRecipients = map[BloodType][]BloodType{
	ONeg:  {APos, ANeg, BPos, BNeg, ABPos, ABNeg, OPos, ONeg},
	OPos:  {APos, BPos, ABPos, OPos},
	ANeg:  {APos, ANeg, ABPos, ABNeg},
	APos:  {APos, ABPos},
	BNeg:  {BPos, BNeg, ABPos, ABNeg},
	BPos:  {BPos, ABPos},
	ABNeg: {ABPos, ABNeg},
	ABPos: {ABPos},
}

// ParseBloodType accepts one of the eight participant blood types.
func ParseBloodType(s string) (BloodType, error) {
	bt := BloodType(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := donorRecipients[bt]; !ok {
		return "", fmt.Errorf("%w: unknown blood type %q", ErrInvalidInput, s)
	}

	return bt, nil
}

// ParseRequiredBloodType is ParseBloodType that also accepts Universal.
func ParseRequiredBloodType(s string) (BloodType, error) {
	if BloodType(strings.ToUpper(strings.TrimSpace(s))) == Universal {
		return Universal, nil
	}

	return ParseBloodType(s)
}

func (b BloodType) Valid() bool {
	_, ok := donorRecipients[b]
	return ok
}

func (b BloodType) String() string {
	return string(b)
}

func CanDonorGiveTo(donor, recipient BloodType) bool {
	for _, r := range donorRecipients[donor] {
		if r == recipient {
			return true
		}
	}

	return false
}

// RecipientsOf returns the types donor can give to.
func RecipientsOf(donor BloodType) []BloodType {
	row := donorRecipients[donor]
	out := make([]BloodType, len(row))
	copy(out, row)

	return out
}

// CompatibleDonorsFor is the inverse view: the donor types a recipient may
// accept, computed by scanning the canonical table.
func CompatibleDonorsFor(recipient BloodType) []BloodType {
	var donors []BloodType
	for _, d := range BloodTypes {
		if CanDonorGiveTo(d, recipient) {
			donors = append(donors, d)
		}
	}

	return donors
}

// EligibleCampaignsFor keeps the campaigns a donor of the given type may
// enroll in. Order is preserved.
func EligibleCampaignsFor(donor BloodType, campaigns []Campaign) []Campaign {
	eligible := make([]Campaign, 0, len(campaigns))
	for _, c := range campaigns {
		if c.AcceptsDonor(donor) {
			eligible = append(eligible, c)
		}
	}

	return eligible
}
