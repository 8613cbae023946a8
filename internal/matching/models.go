// internal/matching/models.go

package matching

import "time"

// UserProfile is the immutable profile snapshot used while scoring one
// recommendation request. It carries no credentials or contact fields.
type UserProfile struct {
	UserID    int64      `json:"user_id" db:"user_id"`
	Nickname  string     `json:"nickname" db:"nickname"`
	Gender    *string    `json:"gender,omitempty" db:"gender"`
	Birthday  *time.Time `json:"birthday,omitempty" db:"birthday"`
	Region    *string    `json:"region,omitempty" db:"region"`
	AvatarURL *string    `json:"avatar_url,omitempty" db:"avatar_url"`
	Bio       *string    `json:"bio,omitempty" db:"bio"`
}

// DistancePreference is how far away a user is willing to match.
type DistancePreference string

const (
	DistanceSameCity         DistancePreference = "same_city"
	DistanceSameCityOrRemote DistancePreference = "same_city_or_remote"
	DistanceUnlimited        DistancePreference = "unlimited"
)

// Preference is a user's matching preference row. At most one per user;
// a missing row means every constraint is treated as satisfied.
type Preference struct {
	UserID                     int64               `json:"user_id" db:"user_id"`
	AgeMin                     *int                `json:"age_min,omitempty" db:"age_min"`
	AgeMax                     *int                `json:"age_max,omitempty" db:"age_max"`
	AgeUnlimited               bool                `json:"age_unlimited" db:"age_unlimited"`
	Distance                   *DistancePreference `json:"distance_preference,omitempty" db:"distance_preference"`
	RelationshipModeID         *int64              `json:"relationship_mode_id,omitempty" db:"relationship_mode_id"`
	CommunicationExpectationID *int64              `json:"communication_expectation_id,omitempty" db:"communication_expectation_id"`
	AdditionalRequirements     *string             `json:"additional_requirements,omitempty" db:"additional_requirements"`
}

// AgeBand makes the null-as-unconstrained rule explicit: a band is either
// unconstrained (always passes) or bounded, in which case a missing target
// age fails it.
type AgeBand struct {
	bounded bool
	min     int
	max     int
}

// AgeBand derives the requester-facing age constraint from a preference.
// Nil preference, the unlimited flag, or an incomplete bound pair all yield
// the unconstrained band.
func (p *Preference) AgeBand() AgeBand {
	if p == nil || p.AgeUnlimited || p.AgeMin == nil || p.AgeMax == nil {
		return AgeBand{}
	}
	return AgeBand{bounded: true, min: *p.AgeMin, max: *p.AgeMax}
}

// Contains reports whether the band admits the given age. An unconstrained
// band admits everything, including an unknown age; a bounded band rejects
// an unknown age.
func (b AgeBand) Contains(age *int) bool {
	if !b.bounded {
		return true
	}
	if age == nil {
		return false
	}
	return *age >= b.min && *age <= b.max
}

// Bounded reports whether the band actually constrains anything.
func (b AgeBand) Bounded() bool { return b.bounded }

// TraitKind distinguishes a trait describing the user themself from one
// describing what they want in a partner.
type TraitKind string

const (
	TraitSelf  TraitKind = "self"
	TraitIdeal TraitKind = "ideal"
)

// PersonalitySelection is one (user, category, option, kind) questionnaire
// answer. A user has at most one self and one ideal option per category.
type PersonalitySelection struct {
	UserID   int64         `json:"user_id" db:"user_id"`
	Category TraitCategory `json:"category" db:"category_code"`
	Option   TraitOption   `json:"option" db:"option_code"`
	Kind     TraitKind     `json:"kind" db:"trait_type"`
}

// QualitySelection is a relationship-quality set membership.
type QualitySelection struct {
	UserID    int64 `json:"user_id" db:"user_id"`
	QualityID int64 `json:"quality_id" db:"quality_id"`
}

// SportsOutdoorCategoryID marks the hobby category that earns the higher
// overlap bonus.
const SportsOutdoorCategoryID = 3

// Hobby is a catalogue entry; UserHobby rows link users to it.
type Hobby struct {
	HobbyID    int64  `json:"hobby_id" db:"hobby_id"`
	CategoryID int64  `json:"category_id" db:"category_id"`
	Name       string `json:"name" db:"name"`
}

// UserHobby is one user's membership of a hobby, joined with the catalogue
// fields the scorer needs.
type UserHobby struct {
	UserID     int64 `json:"user_id" db:"user_id"`
	HobbyID    int64 `json:"hobby_id" db:"hobby_id"`
	CategoryID int64 `json:"category_id" db:"category_id"`
}

// DimensionCode names a compatibility axis a user can mark as must-have or
// priority-weighted.
type DimensionCode string

const (
	DimAgeRange           DimensionCode = "age_range"
	DimDistance           DimensionCode = "distance"
	DimInterestOverlap    DimensionCode = "interest_overlap"
	DimPersonalityMatch   DimensionCode = "personality_match"
	DimRelationshipMode   DimensionCode = "relationship_mode"
	DimCommunicationStyle DimensionCode = "communication_style"
)

// KnownDimension reports whether the code is one the scorer evaluates.
func KnownDimension(code DimensionCode) bool {
	switch code {
	case DimAgeRange, DimDistance, DimInterestOverlap,
		DimPersonalityMatch, DimRelationshipMode, DimCommunicationStyle:
		return true
	}
	return false
}

// PriorityDimension is a dimension the user weights preferentially.
// Rank 1 carries the highest weight.
type PriorityDimension struct {
	Code DimensionCode `json:"code" db:"code"`
	Rank int           `json:"rank" db:"priority_order"`
}

// ScoredCandidate pairs a candidate profile with its 0-100 match score.
// Created per request and discarded after response mapping.
type ScoredCandidate struct {
	Profile *UserProfile
	Score   int
}
