// internal/matching/snapshot.go

package matching

import (
	"context"
	"fmt"
)

// attributeSnapshot is the read-only bundle of bulk-loaded attributes for
// one recommendation request: the requester plus every candidate. It is
// assembled once and never mutated afterwards, which is what makes
// parallel scoring safe.
type attributeSnapshot struct {
	preferences map[int64]*Preference
	selfTraits  map[int64]traitMap
	idealTraits map[int64]traitMap
	qualities   map[int64]map[int64]struct{}
	hobbies     map[int64]map[int64]*Hobby
}

// buildSnapshot batch-loads every attribute kind for the given user ids.
// Any repository failure propagates; a missing attribute for a user is not
// a failure, it just leaves that user's entry empty.
func buildSnapshot(ctx context.Context, repo Repository, userIDs []int64) (*attributeSnapshot, error) {
	snap := &attributeSnapshot{
		preferences: make(map[int64]*Preference),
		selfTraits:  make(map[int64]traitMap),
		idealTraits: make(map[int64]traitMap),
		qualities:   make(map[int64]map[int64]struct{}),
		hobbies:     make(map[int64]map[int64]*Hobby),
	}

	prefs, err := repo.GetPreferences(ctx, userIDs)
	if err != nil {
		return nil, fmt.Errorf("load preferences: %w", err)
	}
	for _, p := range prefs {
		if p != nil {
			snap.preferences[p.UserID] = p
		}
	}

	selections, err := repo.GetPersonalitySelections(ctx, userIDs)
	if err != nil {
		return nil, fmt.Errorf("load personality selections: %w", err)
	}
	for _, sel := range selections {
		if sel == nil || sel.Category == "" || sel.Option == "" {
			continue
		}
		switch sel.Kind {
		case TraitSelf:
			if snap.selfTraits[sel.UserID] == nil {
				snap.selfTraits[sel.UserID] = make(traitMap)
			}
			snap.selfTraits[sel.UserID][sel.Category] = sel.Option
		case TraitIdeal:
			if snap.idealTraits[sel.UserID] == nil {
				snap.idealTraits[sel.UserID] = make(traitMap)
			}
			snap.idealTraits[sel.UserID][sel.Category] = sel.Option
		}
	}

	qualities, err := repo.GetQualitySelections(ctx, userIDs)
	if err != nil {
		return nil, fmt.Errorf("load quality selections: %w", err)
	}
	for _, q := range qualities {
		if q == nil {
			continue
		}
		if snap.qualities[q.UserID] == nil {
			snap.qualities[q.UserID] = make(map[int64]struct{})
		}
		snap.qualities[q.UserID][q.QualityID] = struct{}{}
	}

	userHobbies, err := repo.GetUserHobbies(ctx, userIDs)
	if err != nil {
		return nil, fmt.Errorf("load hobbies: %w", err)
	}
	for _, uh := range userHobbies {
		if uh == nil {
			continue
		}
		if snap.hobbies[uh.UserID] == nil {
			snap.hobbies[uh.UserID] = make(map[int64]*Hobby)
		}
		snap.hobbies[uh.UserID][uh.HobbyID] = &Hobby{
			HobbyID:    uh.HobbyID,
			CategoryID: uh.CategoryID,
		}
	}

	return snap, nil
}

// qualityOverlap counts relationship-quality ids both users selected.
func (s *attributeSnapshot) qualityOverlap(a, b int64) int {
	setA := s.qualities[a]
	setB := s.qualities[b]
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}
	// Iterate the smaller set.
	if len(setB) < len(setA) {
		setA, setB = setB, setA
	}
	overlap := 0
	for q := range setA {
		if _, ok := setB[q]; ok {
			overlap++
		}
	}
	return overlap
}
