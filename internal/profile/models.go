// internal/profile/models.go

package profile

import (
	"time"

	"github.com/linkme-app/linkme-backend/internal/matching"
)

// Profile is the user-facing profile view.
type Profile struct {
	UserID    int64      `json:"user_id" db:"user_id"`
	Username  string     `json:"username" db:"username"`
	Nickname  string     `json:"nickname" db:"nickname"`
	Gender    *string    `json:"gender,omitempty" db:"gender"`
	Birthday  *time.Time `json:"birthday,omitempty" db:"birthday"`
	Region    *string    `json:"region,omitempty" db:"region"`
	AvatarURL *string    `json:"avatar_url,omitempty" db:"avatar_url"`
	Bio       *string    `json:"bio,omitempty" db:"bio"`
}

// UpdateProfileRequest carries the editable profile fields. Nil fields are
// left untouched.
type UpdateProfileRequest struct {
	Nickname *string    `json:"nickname,omitempty" validate:"omitempty,min=1,max=50"`
	Gender   *string    `json:"gender,omitempty" validate:"omitempty,oneof=male female other"`
	Birthday *time.Time `json:"birthday,omitempty"`
	Region   *string    `json:"region,omitempty" validate:"omitempty,max=100"`
	Bio      *string    `json:"bio,omitempty" validate:"omitempty,max=500"`
}

// PreferenceRequest upserts the user's matching preference row.
type PreferenceRequest struct {
	AgeMin                     *int    `json:"age_min,omitempty" validate:"omitempty,min=18,max=120"`
	AgeMax                     *int    `json:"age_max,omitempty" validate:"omitempty,min=18,max=120"`
	AgeUnlimited               bool    `json:"age_unlimited"`
	Distance                   *string `json:"distance_preference,omitempty" validate:"omitempty,oneof=same_city same_city_or_remote unlimited"`
	RelationshipModeID         *int64  `json:"relationship_mode_id,omitempty"`
	CommunicationExpectationID *int64  `json:"communication_expectation_id,omitempty"`
	AdditionalRequirements     *string `json:"additional_requirements,omitempty" validate:"omitempty,max=500"`
}

// PersonalityRequest replaces the user's questionnaire answers of one
// trait kind.
type PersonalityRequest struct {
	Kind       string                `json:"kind" validate:"required,oneof=self ideal"`
	Selections []TraitSelectionInput `json:"selections" validate:"required,dive"`
}

type TraitSelectionInput struct {
	Category string `json:"category" validate:"required,max=64"`
	Option   string `json:"option" validate:"required,max=64"`
}

// HobbiesRequest replaces the user's hobby set.
type HobbiesRequest struct {
	HobbyIDs []int64 `json:"hobby_ids" validate:"required,max=30"`
}

// QualitiesRequest replaces the user's relationship-quality set.
type QualitiesRequest struct {
	QualityIDs []int64 `json:"quality_ids" validate:"required,max=20"`
}

// DimensionsRequest replaces the user's must and priority dimension
// selections. Priorities are capped at three, ranked 1..3.
type DimensionsRequest struct {
	MustCodes  []string                 `json:"must_codes" validate:"max=6,dive,max=32"`
	Priorities []PriorityDimensionInput `json:"priorities" validate:"max=3,dive"`
}

type PriorityDimensionInput struct {
	Code string `json:"code" validate:"required,max=32"`
	Rank int    `json:"rank" validate:"required,min=1,max=3"`
}

func (p PriorityDimensionInput) toDomain() matching.PriorityDimension {
	return matching.PriorityDimension{Code: matching.DimensionCode(p.Code), Rank: p.Rank}
}
