// internal/profile/repository.go

package profile

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/linkme-app/linkme-backend/internal/matching"
)

type Repository interface {
	GetProfile(ctx context.Context, userID int64) (*Profile, error)
	UpdateProfile(ctx context.Context, userID int64, req *UpdateProfileRequest) error
	SetAvatarURL(ctx context.Context, userID int64, url string) error

	UpsertPreference(ctx context.Context, userID int64, req *PreferenceRequest) error
	ReplacePersonalitySelections(ctx context.Context, userID int64, kind string, selections []TraitSelectionInput) error
	ReplaceHobbies(ctx context.Context, userID int64, hobbyIDs []int64) error
	ReplaceQualities(ctx context.Context, userID int64, qualityIDs []int64) error
	ReplaceDimensions(ctx context.Context, userID int64, mustCodes []string, priorities []matching.PriorityDimension) error

	ListHobbies(ctx context.Context) ([]*matching.Hobby, error)
}

type postgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) GetProfile(ctx context.Context, userID int64) (*Profile, error) {
	var profile Profile
	query := `
        SELECT user_id, username, nickname, gender, birthday, region, avatar_url, bio
        FROM users
        WHERE user_id = $1
    `

	err := r.db.GetContext(ctx, &profile, query, userID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *postgresRepository) UpdateProfile(ctx context.Context, userID int64, req *UpdateProfileRequest) error {
	query := `
        UPDATE users
        SET nickname = COALESCE($2, nickname),
            gender   = COALESCE($3, gender),
            birthday = COALESCE($4, birthday),
            region   = COALESCE($5, region),
            bio      = COALESCE($6, bio)
        WHERE user_id = $1
    `

	_, err := r.db.ExecContext(ctx, query, userID,
		req.Nickname, req.Gender, req.Birthday, req.Region, req.Bio)
	return err
}

func (r *postgresRepository) SetAvatarURL(ctx context.Context, userID int64, url string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET avatar_url = $2 WHERE user_id = $1`, userID, url)
	return err
}

func (r *postgresRepository) UpsertPreference(ctx context.Context, userID int64, req *PreferenceRequest) error {
	query := `
        INSERT INTO user_matching_preferences (
            user_id, age_min, age_max, age_unlimited, distance_preference,
            relationship_mode_id, communication_expectation_id, additional_requirements
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        ON CONFLICT (user_id)
        DO UPDATE SET
            age_min = $2, age_max = $3, age_unlimited = $4,
            distance_preference = $5, relationship_mode_id = $6,
            communication_expectation_id = $7, additional_requirements = $8,
            updated_at = CURRENT_TIMESTAMP
    `

	_, err := r.db.ExecContext(ctx, query, userID,
		req.AgeMin, req.AgeMax, req.AgeUnlimited, req.Distance,
		req.RelationshipModeID, req.CommunicationExpectationID, req.AdditionalRequirements)
	return err
}

// ReplacePersonalitySelections swaps the user's answers of one kind inside
// a transaction so concurrent reads never see half a questionnaire.
func (r *postgresRepository) ReplacePersonalitySelections(ctx context.Context, userID int64, kind string, selections []TraitSelectionInput) error {
	return r.inTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM user_personality_selections WHERE user_id = $1 AND trait_type = $2`,
			userID, kind); err != nil {
			return err
		}

		insert := `
            INSERT INTO user_personality_selections (user_id, option_id, trait_type)
            SELECT $1, o.option_id, $2
            FROM personality_options o
            JOIN personality_categories c ON o.category_id = c.category_id
            WHERE c.code = $3 AND o.code = $4
        `
		for _, sel := range selections {
			if _, err := tx.ExecContext(ctx, insert, userID, kind, sel.Category, sel.Option); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *postgresRepository) ReplaceHobbies(ctx context.Context, userID int64, hobbyIDs []int64) error {
	return r.inTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM user_hobbies WHERE user_id = $1`, userID); err != nil {
			return err
		}
		for _, hobbyID := range hobbyIDs {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO user_hobbies (user_id, hobby_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
				userID, hobbyID); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *postgresRepository) ReplaceQualities(ctx context.Context, userID int64, qualityIDs []int64) error {
	return r.inTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM user_relationship_quality_selections WHERE user_id = $1`, userID); err != nil {
			return err
		}
		for _, qualityID := range qualityIDs {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO user_relationship_quality_selections (user_id, quality_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
				userID, qualityID); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *postgresRepository) ReplaceDimensions(ctx context.Context, userID int64, mustCodes []string, priorities []matching.PriorityDimension) error {
	return r.inTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM user_matching_dimensions WHERE user_id = $1`, userID); err != nil {
			return err
		}
		for _, code := range mustCodes {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO user_matching_dimensions (user_id, code, is_must) VALUES ($1, $2, TRUE)`,
				userID, code); err != nil {
				return err
			}
		}
		for _, p := range priorities {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO user_matching_dimensions (user_id, code, is_must, priority_order)
                 VALUES ($1, $2, FALSE, $3)
                 ON CONFLICT (user_id, code) DO UPDATE SET priority_order = $3`,
				userID, string(p.Code), p.Rank); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *postgresRepository) ListHobbies(ctx context.Context) ([]*matching.Hobby, error) {
	var hobbies []*matching.Hobby
	query := `SELECT hobby_id, category_id, name FROM hobbies ORDER BY display_order`
	if err := r.db.SelectContext(ctx, &hobbies, query); err != nil {
		return nil, err
	}
	return hobbies, nil
}

func (r *postgresRepository) inTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}
