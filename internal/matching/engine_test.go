// internal/matching/engine_test.go

package matching

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRepository serves everything from in-memory maps and records the
// pool limit it was asked for.
type fakeRepository struct {
	profiles       map[int64]*UserProfile
	pool           []*UserProfile
	preferences    map[int64]*Preference
	selections     []*PersonalitySelection
	qualities      []*QualitySelection
	userHobbies    []*UserHobby
	mustCodes      map[int64][]DimensionCode
	priorities     map[int64][]PriorityDimension
	lastPoolLimit  int
	poolErr        error
	preferencesErr error
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		profiles:    make(map[int64]*UserProfile),
		preferences: make(map[int64]*Preference),
		mustCodes:   make(map[int64][]DimensionCode),
		priorities:  make(map[int64][]PriorityDimension),
	}
}

func (f *fakeRepository) GetUserProfile(ctx context.Context, userID int64) (*UserProfile, error) {
	return f.profiles[userID], nil
}

func (f *fakeRepository) GetCandidatePool(ctx context.Context, excludingID int64, limit int) ([]*UserProfile, error) {
	f.lastPoolLimit = limit
	if f.poolErr != nil {
		return nil, f.poolErr
	}
	out := make([]*UserProfile, 0, len(f.pool))
	for _, p := range f.pool {
		if p.UserID != excludingID {
			out = append(out, p)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeRepository) GetPreference(ctx context.Context, userID int64) (*Preference, error) {
	return f.preferences[userID], nil
}

func (f *fakeRepository) GetPreferences(ctx context.Context, userIDs []int64) ([]*Preference, error) {
	if f.preferencesErr != nil {
		return nil, f.preferencesErr
	}
	var out []*Preference
	for _, id := range userIDs {
		if p, ok := f.preferences[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeRepository) GetPersonalitySelections(ctx context.Context, userIDs []int64) ([]*PersonalitySelection, error) {
	return f.selections, nil
}

func (f *fakeRepository) GetQualitySelections(ctx context.Context, userIDs []int64) ([]*QualitySelection, error) {
	return f.qualities, nil
}

func (f *fakeRepository) GetUserHobbies(ctx context.Context, userIDs []int64) ([]*UserHobby, error) {
	return f.userHobbies, nil
}

func (f *fakeRepository) GetMustDimensionCodes(ctx context.Context, userID int64) ([]DimensionCode, error) {
	return f.mustCodes[userID], nil
}

func (f *fakeRepository) GetPriorityDimensions(ctx context.Context, userID int64) ([]PriorityDimension, error) {
	return f.priorities[userID], nil
}

func addUser(repo *fakeRepository, id int64, nickname string) *UserProfile {
	p := &UserProfile{UserID: id, Nickname: nickname}
	repo.profiles[id] = p
	if id != 1 {
		repo.pool = append(repo.pool, p)
	}
	return p
}

func TestGetRecommendationsEmptyPool(t *testing.T) {
	repo := newFakeRepository()
	addUser(repo, 1, "requester")
	repo.pool = nil

	engine := NewEngine(repo, nil)
	records, err := engine.GetRecommendations(context.Background(), 1, 1, 20)

	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestGetRecommendationsUnknownRequester(t *testing.T) {
	repo := newFakeRepository()
	addUser(repo, 2, "someone else")

	engine := NewEngine(repo, nil)
	records, err := engine.GetRecommendations(context.Background(), 99, 1, 20)

	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestGetRecommendationsInvalidRequesterID(t *testing.T) {
	engine := NewEngine(newFakeRepository(), nil)

	for _, id := range []int64{0, -5} {
		records, err := engine.GetRecommendations(context.Background(), id, 1, 20)
		require.NoError(t, err)
		assert.Empty(t, records)
	}
}

func TestGetRecommendationsStorageErrorPropagates(t *testing.T) {
	repo := newFakeRepository()
	addUser(repo, 1, "requester")
	addUser(repo, 2, "candidate")
	repo.poolErr = errors.New("connection refused")

	engine := NewEngine(repo, nil)
	_, err := engine.GetRecommendations(context.Background(), 1, 1, 20)

	require.Error(t, err)
	assert.ErrorContains(t, err, "connection refused")
}

func TestGetRecommendationsSnapshotErrorPropagates(t *testing.T) {
	repo := newFakeRepository()
	addUser(repo, 1, "requester")
	addUser(repo, 2, "candidate")
	repo.preferencesErr = errors.New("timeout")

	engine := NewEngine(repo, nil)
	_, err := engine.GetRecommendations(context.Background(), 1, 1, 20)

	require.Error(t, err)
}

func TestGetRecommendationsOrdering(t *testing.T) {
	repo := newFakeRepository()
	addUser(repo, 1, "requester")
	for id := int64(2); id <= 12; id++ {
		addUser(repo, id, fmt.Sprintf("user-%d", id))
	}

	// Give user 7 a shared hobby so it outranks the rest, and leave the
	// others tied at the base score.
	repo.userHobbies = []*UserHobby{
		{UserID: 1, HobbyID: 10, CategoryID: 1},
		{UserID: 7, HobbyID: 10, CategoryID: 1},
	}

	engine := NewEngine(repo, nil)
	records, err := engine.GetRecommendations(context.Background(), 1, 1, 20)
	require.NoError(t, err)
	require.Len(t, records, 11)

	assert.Equal(t, int64(7), records[0].UserID)
	assert.Equal(t, 81, records[0].MatchScore)

	// Everything after is tied on score and ordered by ascending user id.
	rest := records[1:]
	assert.True(t, sort.SliceIsSorted(rest, func(i, j int) bool {
		return rest[i].UserID < rest[j].UserID
	}))
	for _, r := range rest {
		assert.Equal(t, 80, r.MatchScore)
	}
}

func TestGetRecommendationsDeterministic(t *testing.T) {
	repo := newFakeRepository()
	addUser(repo, 1, "requester")
	for id := int64(2); id <= 30; id++ {
		addUser(repo, id, fmt.Sprintf("user-%d", id))
	}

	engine := NewEngine(repo, nil)
	first, err := engine.GetRecommendations(context.Background(), 1, 1, 10)
	require.NoError(t, err)
	second, err := engine.GetRecommendations(context.Background(), 1, 1, 10)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestGetRecommendationsPagination(t *testing.T) {
	repo := newFakeRepository()
	addUser(repo, 1, "requester")
	for id := int64(2); id <= 26; id++ {
		addUser(repo, id, fmt.Sprintf("user-%d", id))
	}
	// 25 candidates, all at the base score, ordered by user id.

	engine := NewEngine(repo, nil)

	t.Run("pages partition the ranking", func(t *testing.T) {
		page1, err := engine.GetRecommendations(context.Background(), 1, 1, 10)
		require.NoError(t, err)
		page2, err := engine.GetRecommendations(context.Background(), 1, 2, 10)
		require.NoError(t, err)
		page3, err := engine.GetRecommendations(context.Background(), 1, 3, 10)
		require.NoError(t, err)

		assert.Len(t, page1, 10)
		assert.Len(t, page2, 10)
		assert.Len(t, page3, 5)
		assert.Equal(t, int64(2), page1[0].UserID)
		assert.Equal(t, int64(12), page2[0].UserID)
		assert.Equal(t, int64(22), page3[0].UserID)
	})

	t.Run("page past the end is empty not an error", func(t *testing.T) {
		page, err := engine.GetRecommendations(context.Background(), 1, 9, 10)
		require.NoError(t, err)
		assert.Empty(t, page)
	})

	t.Run("page below one becomes one", func(t *testing.T) {
		page, err := engine.GetRecommendations(context.Background(), 1, 0, 10)
		require.NoError(t, err)
		require.Len(t, page, 10)
		assert.Equal(t, int64(2), page[0].UserID)
	})

	t.Run("size below one becomes the default", func(t *testing.T) {
		page, err := engine.GetRecommendations(context.Background(), 1, 1, 0)
		require.NoError(t, err)
		assert.Len(t, page, 20)
	})

	t.Run("size above the max is clamped", func(t *testing.T) {
		_, err := engine.GetRecommendations(context.Background(), 1, 1, 500)
		require.NoError(t, err)
		assert.Equal(t, maxPageSize*poolSizeFactor, repo.lastPoolLimit)
	})
}

func TestGetRecommendationsPoolSizing(t *testing.T) {
	repo := newFakeRepository()
	addUser(repo, 1, "requester")
	addUser(repo, 2, "candidate")
	engine := NewEngine(repo, nil)

	t.Run("small pages still fetch the floor", func(t *testing.T) {
		_, err := engine.GetRecommendations(context.Background(), 1, 1, 10)
		require.NoError(t, err)
		assert.Equal(t, minPoolSize, repo.lastPoolLimit)
	})

	t.Run("large pages scale the pool", func(t *testing.T) {
		_, err := engine.GetRecommendations(context.Background(), 1, 1, 40)
		require.NoError(t, err)
		assert.Equal(t, 200, repo.lastPoolLimit)
	})
}

func TestGetRecommendationsIgnoresUnknownDimensions(t *testing.T) {
	repo := newFakeRepository()
	addUser(repo, 1, "requester")
	addUser(repo, 2, "candidate")
	repo.mustCodes[1] = []DimensionCode{"zodiac_sign", DimInterestOverlap}
	repo.priorities[1] = []PriorityDimension{{Code: "zodiac_sign", Rank: 1}}

	engine := NewEngine(repo, nil)
	records, err := engine.GetRecommendations(context.Background(), 1, 1, 20)
	require.NoError(t, err)
	require.Len(t, records, 1)

	// Only the known must (interest_overlap, unmet) applies; the unknown
	// codes neither penalize nor boost.
	assert.Equal(t, 70, records[0].MatchScore)
}

func TestSanitizePaging(t *testing.T) {
	tests := []struct {
		page, size         int
		wantPage, wantSize int
	}{
		{1, 20, 1, 20},
		{0, 20, 1, 20},
		{-3, 20, 1, 20},
		{2, 0, 2, 20},
		{2, -1, 2, 20},
		{1, 101, 1, 100},
		{1, 100, 1, 100},
		{1, 1, 1, 1},
	}
	for _, tt := range tests {
		page, size := sanitizePaging(tt.page, tt.size)
		assert.Equal(t, tt.wantPage, page)
		assert.Equal(t, tt.wantSize, size)
	}
}
