package dao

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/onedrop-app/onedrop-api/internal/db"
	"github.com/onedrop-app/onedrop-api/internal/domain"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := db.OpenSQLiteMemory(strings.ReplaceAll(t.Name(), "/", "_"))
	require.NoError(t, err)
	require.NoError(t, InitTables(gdb))

	t.Cleanup(func() {
		sqlDB, err := gdb.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	})

	return gdb
}

type fixture struct {
	hospital    Hospital
	beneficiary Beneficiary
	donor       Donor
}

func seed(t *testing.T, gdb *gorm.DB) fixture {
	t.Helper()

	ctx := context.Background()
	participants := NewParticipantDAO(gdb)

	hospital, err := participants.InsertHospital(ctx, Hospital{Name: "Hospital Central"})
	require.NoError(t, err)
	beneficiary, err := participants.InsertBeneficiary(ctx, Beneficiary{Name: "Ana", RequiredBloodType: "A+", Urgency: "high"})
	require.NoError(t, err)
	donor, err := participants.InsertDonor(ctx, Donor{Name: "Luis", BloodType: "O-"})
	require.NoError(t, err)

	return fixture{hospital: hospital, beneficiary: beneficiary, donor: donor}
}

func day(s string) time.Time {
	d, err := time.Parse(domain.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return d
}

func newCampaign(hospitalID uint, beneficiaryID *uint, state domain.CampaignState, end string) Campaign {
	required := string(domain.Universal)
	if beneficiaryID != nil {
		required = string(domain.APos)
	}

	return Campaign{
		HospitalID:        hospitalID,
		BeneficiaryID:     beneficiaryID,
		RequiredBloodType: required,
		State:             string(state),
		Name:              "campaign ending " + end,
		UnitsNeeded:       1,
		StartDate:         day("2026-01-01"),
		EndDate:           day(end),
	}
}
