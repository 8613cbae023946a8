// internal/matching/scorer.go
// Pure compatibility scoring: (requester attributes, candidate attributes)
// -> integer score in [0,100]. No I/O, no mutation of the snapshot.

package matching

import (
	"strings"
	"time"
)

const (
	baseScore                     = 80
	ageOutOfRangePenalty          = 10
	sameCityPenalty               = 5
	mustUnsatisfiedPenalty        = 10
	relationshipModeBonus         = 5
	communicationExpectationBonus = 3
	qualityBonusPerItem           = 2
	qualityBonusMax               = 6
	hobbyOverlapBonus             = 1
	sportsOutdoorHobbyBonus       = 2
)

// scorer evaluates candidates against one requester. Everything it reads
// is fixed at construction; Score is safe to call concurrently.
type scorer struct {
	requester    *UserProfile
	requesterAge *int
	pref         *Preference
	must         []DimensionCode
	priorities   []PriorityDimension
	snap         *attributeSnapshot
	now          time.Time
}

func newScorer(requester *UserProfile, pref *Preference, must []DimensionCode,
	priorities []PriorityDimension, snap *attributeSnapshot, now time.Time) *scorer {
	return &scorer{
		requester:    requester,
		requesterAge: ageAt(requester.Birthday, now),
		pref:         pref,
		must:         must,
		priorities:   priorities,
		snap:         snap,
		now:          now,
	}
}

// candidateFacts are the per-candidate intermediate results shared between
// the bonus steps and the must/priority dimension predicates.
type candidateFacts struct {
	hobbyOverlap             int
	hobbyBonus               int
	personality              int
	relationshipModeMatched  bool
	communicationExpectation bool
}

// Score computes the match score for one candidate.
func (s *scorer) Score(candidate *UserProfile) int {
	score := baseScore

	// Age: one-directional, the requester's stated range against the
	// candidate's age. Unlimited or incomplete bounds never penalize,
	// and neither does an unknown candidate age.
	candidateAge := ageAt(candidate.Birthday, s.now)
	if candidateAge != nil && s.pref != nil && !s.pref.AgeUnlimited &&
		s.pref.AgeMin != nil && s.pref.AgeMax != nil {
		if *candidateAge < *s.pref.AgeMin || *candidateAge > *s.pref.AgeMax {
			score -= ageOutOfRangePenalty
		}
	}

	// Distance: same-city preference penalizes a case-insensitive region
	// mismatch, but only when both regions are recorded.
	if s.pref != nil && s.pref.Distance != nil && *s.pref.Distance == DistanceSameCity {
		a := normalizeRegion(s.requester.Region)
		b := normalizeRegion(candidate.Region)
		if a != "" && b != "" && !strings.EqualFold(a, b) {
			score -= sameCityPenalty
		}
	}

	facts := s.factsFor(candidate)

	// Hobby overlap is deliberately uncapped.
	score += facts.hobbyBonus

	// Relationship-quality overlap, capped.
	qualityOverlap := s.snap.qualityOverlap(s.requester.UserID, candidate.UserID)
	qualityBonus := qualityOverlap * qualityBonusPerItem
	if qualityBonus > qualityBonusMax {
		qualityBonus = qualityBonusMax
	}
	score += qualityBonus

	if facts.relationshipModeMatched {
		score += relationshipModeBonus
	}
	if facts.communicationExpectation {
		score += communicationExpectationBonus
	}

	score += facts.personality

	// Must dimensions: each unmet code costs a flat penalty. The candidate
	// is never excluded outright.
	for _, code := range s.must {
		if !s.dimensionSatisfied(code, candidate, candidateAge, facts) {
			score -= mustUnsatisfiedPenalty
		}
	}

	// Priority dimensions: rank-weighted bonus when satisfied.
	for _, p := range s.priorities {
		if !KnownDimension(p.Code) {
			continue
		}
		if s.dimensionSatisfied(p.Code, candidate, candidateAge, facts) {
			score += priorityWeight(p.Rank)
		}
	}

	return clampScore(score)
}

// factsFor computes the shared per-candidate intermediates once.
func (s *scorer) factsFor(candidate *UserProfile) candidateFacts {
	var facts candidateFacts

	mine := s.snap.hobbies[s.requester.UserID]
	for hobbyID, hobby := range s.snap.hobbies[candidate.UserID] {
		if _, shared := mine[hobbyID]; !shared {
			continue
		}
		facts.hobbyOverlap++
		if hobby.CategoryID == SportsOutdoorCategoryID {
			facts.hobbyBonus += sportsOutdoorHobbyBonus
		} else {
			facts.hobbyBonus += hobbyOverlapBonus
		}
	}

	candidatePref := s.snap.preferences[candidate.UserID]
	if s.pref != nil && candidatePref != nil {
		if s.pref.RelationshipModeID != nil && candidatePref.RelationshipModeID != nil &&
			*s.pref.RelationshipModeID == *candidatePref.RelationshipModeID {
			facts.relationshipModeMatched = true
		}
		if s.pref.CommunicationExpectationID != nil && candidatePref.CommunicationExpectationID != nil &&
			*s.pref.CommunicationExpectationID == *candidatePref.CommunicationExpectationID {
			facts.communicationExpectation = true
		}
	}

	facts.personality = personalityScore(
		s.snap.selfTraits[s.requester.UserID],
		s.snap.selfTraits[candidate.UserID],
		s.snap.idealTraits[s.requester.UserID],
		s.snap.idealTraits[candidate.UserID],
	)

	return facts
}

// dimensionSatisfied evaluates one dimension's satisfaction predicate.
// Unknown codes are filtered out before scoring; returning false here for
// one keeps the penalty/bonus passes honest regardless.
func (s *scorer) dimensionSatisfied(code DimensionCode, candidate *UserProfile,
	candidateAge *int, facts candidateFacts) bool {
	switch code {
	case DimAgeRange:
		return s.ageSatisfiedMutual(candidate, candidateAge)
	case DimDistance:
		return s.distanceSatisfiedMutual(candidate)
	case DimInterestOverlap:
		return facts.hobbyOverlap > 0
	case DimPersonalityMatch:
		return facts.personality > 0
	case DimRelationshipMode:
		return facts.relationshipModeMatched
	case DimCommunicationStyle:
		return communicationStyleMatched(
			s.snap.selfTraits[s.requester.UserID],
			s.snap.selfTraits[candidate.UserID],
		)
	}
	return false
}

// ageSatisfiedMutual holds when the requester's band admits the candidate's
// age and the candidate's band admits the requester's. A missing preference
// on either side counts that side as satisfied; a missing age fails a
// bounded band.
func (s *scorer) ageSatisfiedMutual(candidate *UserProfile, candidateAge *int) bool {
	if !s.pref.AgeBand().Contains(candidateAge) {
		return false
	}
	return s.snap.preferences[candidate.UserID].AgeBand().Contains(s.requesterAge)
}

func (s *scorer) distanceSatisfiedMutual(candidate *UserProfile) bool {
	a := normalizeRegion(s.requester.Region)
	b := normalizeRegion(candidate.Region)
	return distanceSatisfiedOneWay(a, b, s.pref) &&
		distanceSatisfiedOneWay(b, a, s.snap.preferences[candidate.UserID])
}

// distanceSatisfiedOneWay applies one user's distance preference to the
// pair of regions. Only same_city actually constrains, and it needs both
// regions recorded.
func distanceSatisfiedOneWay(selfRegion, targetRegion string, pref *Preference) bool {
	if pref == nil || pref.Distance == nil {
		return true
	}
	switch *pref.Distance {
	case DistanceUnlimited, DistanceSameCityOrRemote:
		return true
	case DistanceSameCity:
		if selfRegion == "" || targetRegion == "" {
			return false
		}
		return strings.EqualFold(selfRegion, targetRegion)
	}
	return true
}

// priorityWeight maps a priority rank to its bonus: rank 1 weighs 3,
// rank 2 weighs 2, everything else 1.
func priorityWeight(rank int) int {
	switch {
	case rank <= 1:
		return 3
	case rank == 2:
		return 2
	default:
		return 1
	}
}

// ageAt computes whole years between birthday and now. Missing or future
// birthdays yield an unknown age.
func ageAt(birthday *time.Time, now time.Time) *int {
	if birthday == nil {
		return nil
	}
	b := *birthday
	if b.After(now) {
		return nil
	}
	years := now.Year() - b.Year()
	anniversary := b.AddDate(years, 0, 0)
	if anniversary.After(now) {
		years--
	}
	return &years
}

func normalizeRegion(region *string) string {
	if region == nil {
		return ""
	}
	return strings.TrimSpace(*region)
}

func clampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
