package domain

import (
	"fmt"
	"strings"
	"time"
)

type Role string

const (
	RoleHospital    Role = "hospital"
	RoleDonor       Role = "donor"
	RoleBeneficiary Role = "beneficiary"
	// RoleSystem is the scheduled sweep. It never logs in.
	RoleSystem Role = "system"
)

func ParseRole(s string) (Role, error) {
	switch r := Role(s); r {
	case RoleHospital, RoleDonor, RoleBeneficiary, RoleSystem:
		return r, nil
	default:
		return "", fmt.Errorf("%w: unknown role %q", ErrInvalidInput, s)
	}
}

// Actor is whoever invokes a core operation. It is always passed
// explicitly, never read from ambient state.
type Actor struct {
	Role Role `json:"role"`
	ID   uint `json:"id"`
}

// SystemActor finalizes expired campaigns on a schedule.
var SystemActor = Actor{Role: RoleSystem}

type Urgency string

const (
	UrgencyLow    Urgency = "low"
	UrgencyMedium Urgency = "medium"
	UrgencyHigh   Urgency = "high"
)

// ParseUrgency defaults an empty value to low.
func ParseUrgency(s string) (Urgency, error) {
	switch u := Urgency(strings.ToLower(strings.TrimSpace(s))); u {
	case "":
		return UrgencyLow, nil
	case UrgencyLow, UrgencyMedium, UrgencyHigh:
		return u, nil
	default:
		return "", fmt.Errorf("%w: unknown urgency %q", ErrInvalidInput, s)
	}
}

type Hospital struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type Donor struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	BloodType BloodType `json:"blood_type"`
	CreatedAt time.Time `json:"created_at"`
}

type Beneficiary struct {
	ID                uint      `json:"id"`
	Name              string    `json:"name"`
	RequiredBloodType BloodType `json:"required_blood_type"`
	Urgency           Urgency   `json:"urgency"`
	CreatedAt         time.Time `json:"created_at"`
}
