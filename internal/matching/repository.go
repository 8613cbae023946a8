// internal/matching/repository.go

package matching

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// Repository is the storage contract the recommendation engine needs.
// Pool exclusion rules (self, blocked, already matched) live in SQL and
// are opaque to the scorer.
type Repository interface {
	GetUserProfile(ctx context.Context, userID int64) (*UserProfile, error)
	GetCandidatePool(ctx context.Context, excludingID int64, limit int) ([]*UserProfile, error)

	GetPreference(ctx context.Context, userID int64) (*Preference, error)
	GetPreferences(ctx context.Context, userIDs []int64) ([]*Preference, error)
	GetPersonalitySelections(ctx context.Context, userIDs []int64) ([]*PersonalitySelection, error)
	GetQualitySelections(ctx context.Context, userIDs []int64) ([]*QualitySelection, error)
	GetUserHobbies(ctx context.Context, userIDs []int64) ([]*UserHobby, error)

	GetMustDimensionCodes(ctx context.Context, userID int64) ([]DimensionCode, error)
	GetPriorityDimensions(ctx context.Context, userID int64) ([]PriorityDimension, error)
}

type postgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates the sqlx-backed matching repository.
func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

const profileColumns = `u.user_id, u.nickname, u.gender, u.birthday, u.region, u.avatar_url, u.bio`

func (r *postgresRepository) GetUserProfile(ctx context.Context, userID int64) (*UserProfile, error) {
	var profile UserProfile
	query := `SELECT ` + profileColumns + ` FROM users u WHERE u.user_id = $1`

	err := r.db.GetContext(ctx, &profile, query, userID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// GetCandidatePool returns an oversized pool of prospective matches,
// excluding the requester, blocked pairs in either direction, and users
// already matched with the requester. Ordered by user id so the pool is
// stable across identical requests.
func (r *postgresRepository) GetCandidatePool(ctx context.Context, excludingID int64, limit int) ([]*UserProfile, error) {
	query := `
        SELECT ` + profileColumns + `
        FROM users u
        WHERE u.user_id <> $1
              AND NOT EXISTS (
                  SELECT 1 FROM blocks b
                  WHERE (b.blocker_id = $1 AND b.blocked_id = u.user_id)
                     OR (b.blocker_id = u.user_id AND b.blocked_id = $1)
              )
              AND NOT EXISTS (
                  SELECT 1 FROM matches m
                  WHERE m.is_active
                        AND ((m.user1_id = $1 AND m.user2_id = u.user_id)
                          OR (m.user1_id = u.user_id AND m.user2_id = $1))
              )
        ORDER BY u.user_id
        LIMIT $2
    `

	var pool []*UserProfile
	if err := r.db.SelectContext(ctx, &pool, query, excludingID, limit); err != nil {
		return nil, err
	}
	return pool, nil
}

func (r *postgresRepository) GetPreference(ctx context.Context, userID int64) (*Preference, error) {
	var pref Preference
	query := `
        SELECT user_id, age_min, age_max, age_unlimited, distance_preference,
               relationship_mode_id, communication_expectation_id, additional_requirements
        FROM user_matching_preferences
        WHERE user_id = $1
    `

	err := r.db.GetContext(ctx, &pref, query, userID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &pref, nil
}

func (r *postgresRepository) GetPreferences(ctx context.Context, userIDs []int64) ([]*Preference, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}

	query := `
        SELECT user_id, age_min, age_max, age_unlimited, distance_preference,
               relationship_mode_id, communication_expectation_id, additional_requirements
        FROM user_matching_preferences
        WHERE user_id = ANY($1)
    `

	var prefs []*Preference
	if err := r.db.SelectContext(ctx, &prefs, query, pq.Array(userIDs)); err != nil {
		return nil, err
	}
	return prefs, nil
}

func (r *postgresRepository) GetPersonalitySelections(ctx context.Context, userIDs []int64) ([]*PersonalitySelection, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}

	query := `
        SELECT s.user_id, c.code AS category_code, o.code AS option_code, s.trait_type
        FROM user_personality_selections s
        JOIN personality_options o ON s.option_id = o.option_id
        JOIN personality_categories c ON o.category_id = c.category_id
        WHERE s.user_id = ANY($1)
    `

	var selections []*PersonalitySelection
	if err := r.db.SelectContext(ctx, &selections, query, pq.Array(userIDs)); err != nil {
		return nil, err
	}
	return selections, nil
}

func (r *postgresRepository) GetQualitySelections(ctx context.Context, userIDs []int64) ([]*QualitySelection, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}

	query := `
        SELECT user_id, quality_id
        FROM user_relationship_quality_selections
        WHERE user_id = ANY($1)
    `

	var selections []*QualitySelection
	if err := r.db.SelectContext(ctx, &selections, query, pq.Array(userIDs)); err != nil {
		return nil, err
	}
	return selections, nil
}

func (r *postgresRepository) GetUserHobbies(ctx context.Context, userIDs []int64) ([]*UserHobby, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}

	query := `
        SELECT uh.user_id, uh.hobby_id, h.category_id
        FROM user_hobbies uh
        JOIN hobbies h ON uh.hobby_id = h.hobby_id
        WHERE uh.user_id = ANY($1)
    `

	var rows []*UserHobby
	if err := r.db.SelectContext(ctx, &rows, query, pq.Array(userIDs)); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *postgresRepository) GetMustDimensionCodes(ctx context.Context, userID int64) ([]DimensionCode, error) {
	query := `
        SELECT code
        FROM user_matching_dimensions
        WHERE user_id = $1 AND is_must = TRUE
    `

	var codes []DimensionCode
	if err := r.db.SelectContext(ctx, &codes, query, userID); err != nil {
		return nil, err
	}
	return codes, nil
}

func (r *postgresRepository) GetPriorityDimensions(ctx context.Context, userID int64) ([]PriorityDimension, error) {
	query := `
        SELECT code, priority_order
        FROM user_matching_dimensions
        WHERE user_id = $1 AND priority_order IS NOT NULL
        ORDER BY priority_order
    `

	var dims []PriorityDimension
	if err := r.db.SelectContext(ctx, &dims, query, userID); err != nil {
		return nil, err
	}
	return dims, nil
}
