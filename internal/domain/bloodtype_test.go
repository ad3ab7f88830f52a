package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanDonorGiveTo(t *testing.T) {
	expected := map[BloodType][]BloodType{
		ONeg:  {APos, ANeg, BPos, BNeg, ABPos, ABNeg, OPos, ONeg},
		OPos:  {APos, BPos, ABPos, OPos},
		ANeg:  {APos, ANeg, ABPos, ABNeg},
		APos:  {APos, ABPos},
		BNeg:  {BPos, BNeg, ABPos, ABNeg},
		BPos:  {BPos, ABPos},
		ABNeg: {ABPos, ABNeg},
		ABPos: {ABPos},
	}

	for _, donor := range BloodTypes {
		for _, recipient := range BloodTypes {
			want := contains(expected[donor], recipient)
			assert.Equal(t, want, CanDonorGiveTo(donor, recipient), "%s -> %s", donor, recipient)
		}
	}
}

func TestCanDonorGiveTo_Extremes(t *testing.T) {
	for _, recipient := range BloodTypes {
		assert.True(t, CanDonorGiveTo(ONeg, recipient), "O- gives to %s", recipient)
		assert.Equal(t, recipient == ABPos, CanDonorGiveTo(ABPos, recipient), "AB+ -> %s", recipient)
	}
}

func TestCanDonorGiveTo_UnknownTypes(t *testing.T) {
	assert.False(t, CanDonorGiveTo("C+", APos))
	assert.False(t, CanDonorGiveTo(ONeg, Universal))
}

func TestCompatibleDonorsFor_MatchesCanonicalTable(t *testing.T) {
	for _, recipient := range BloodTypes {
		donors := CompatibleDonorsFor(recipient)
		for _, donor := range BloodTypes {
			assert.Equal(t, CanDonorGiveTo(donor, recipient), contains(donors, donor),
				"donor %s for recipient %s", donor, recipient)
		}
	}

	assert.Equal(t, []BloodType{ANeg, BNeg, ABNeg, ONeg}, CompatibleDonorsFor(ABNeg))
	assert.Equal(t, []BloodType{ONeg}, CompatibleDonorsFor(ONeg))
	assert.Len(t, CompatibleDonorsFor(ABPos), 8)
}

func TestRecipientsOf_ReturnsCopy(t *testing.T) {
	row := RecipientsOf(APos)
	require.Equal(t, []BloodType{APos, ABPos}, row)

	row[0] = ONeg
	assert.Equal(t, []BloodType{APos, ABPos}, RecipientsOf(APos))
}

func TestParseBloodType(t *testing.T) {
	tests := []struct {
		in      string
		want    BloodType
		wantErr bool
	}{
		{in: "A+", want: APos},
		{in: " ab- ", want: ABNeg},
		{in: "o-", want: ONeg},
		{in: "ANY", wantErr: true},
		{in: "Cualquiera", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseBloodType(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseRequiredBloodType(t *testing.T) {
	got, err := ParseRequiredBloodType("any")
	require.NoError(t, err)
	assert.Equal(t, Universal, got)

	got, err = ParseRequiredBloodType("B+")
	require.NoError(t, err)
	assert.Equal(t, BPos, got)

	_, err = ParseRequiredBloodType("X")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestEligibleCampaignsFor(t *testing.T) {
	campaigns := []Campaign{
		{ID: 1, RequiredBloodType: APos},
		{ID: 2, RequiredBloodType: Universal},
		{ID: 3, RequiredBloodType: ONeg},
		{ID: 4, RequiredBloodType: ABPos},
	}

	ids := func(cs []Campaign) []uint {
		out := make([]uint, 0, len(cs))
		for _, c := range cs {
			out = append(out, c.ID)
		}
		return out
	}

	assert.Equal(t, []uint{1, 2, 3, 4}, ids(EligibleCampaignsFor(ONeg, campaigns)))
	assert.Equal(t, []uint{1, 2, 4}, ids(EligibleCampaignsFor(ANeg, campaigns)))
	assert.Equal(t, []uint{2, 4}, ids(EligibleCampaignsFor(BPos, campaigns)))
	assert.Equal(t, []uint{2, 4}, ids(EligibleCampaignsFor(ABPos, campaigns)))
	assert.Empty(t, EligibleCampaignsFor(BPos, nil))
}

func contains(list []BloodType, bt BloodType) bool {
	for _, b := range list {
		if b == bt {
			return true
		}
	}
	return false
}
