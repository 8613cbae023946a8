// internal/matching/snapshot_test.go

package matching

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSnapshot(t *testing.T) {
	repo := newFakeRepository()
	repo.preferences[1] = &Preference{UserID: 1, AgeMin: intPtr(25), AgeMax: intPtr(35)}
	repo.selections = []*PersonalitySelection{
		{UserID: 1, Category: CategorySocialEnergy, Option: EnergyExtroverted, Kind: TraitSelf},
		{UserID: 1, Category: CategoryIdealSocialStyle, Option: IdealSocialCalmReserved, Kind: TraitIdeal},
		{UserID: 2, Category: CategoryLifePace, Option: PacePlanned, Kind: TraitSelf},
		// Rows with blank codes are skipped rather than poisoning the maps.
		{UserID: 2, Category: "", Option: EnergyExtroverted, Kind: TraitSelf},
	}
	repo.qualities = []*QualitySelection{
		{UserID: 1, QualityID: 100},
		{UserID: 1, QualityID: 101},
		{UserID: 2, QualityID: 101},
	}
	repo.userHobbies = []*UserHobby{
		{UserID: 1, HobbyID: 10, CategoryID: SportsOutdoorCategoryID},
		{UserID: 2, HobbyID: 10, CategoryID: SportsOutdoorCategoryID},
	}

	snap, err := buildSnapshot(context.Background(), repo, []int64{1, 2})
	require.NoError(t, err)

	assert.Equal(t, EnergyExtroverted, snap.selfTraits[1][CategorySocialEnergy])
	assert.Equal(t, IdealSocialCalmReserved, snap.idealTraits[1][CategoryIdealSocialStyle])
	assert.Equal(t, PacePlanned, snap.selfTraits[2][CategoryLifePace])
	assert.Len(t, snap.selfTraits[2], 1)

	assert.True(t, snap.preferences[1].AgeBand().Bounded())
	assert.Nil(t, snap.preferences[2])

	assert.Equal(t, int64(SportsOutdoorCategoryID), snap.hobbies[2][10].CategoryID)
}

func TestQualityOverlap(t *testing.T) {
	snap := emptySnapshot().
		withQualities(1, 100, 101, 102).
		withQualities(2, 101, 102, 103, 104)

	assert.Equal(t, 2, snap.qualityOverlap(1, 2))
	assert.Equal(t, 2, snap.qualityOverlap(2, 1))
	assert.Equal(t, 0, snap.qualityOverlap(1, 99))
	assert.Equal(t, 0, snap.qualityOverlap(99, 98))
}
