// internal/matching/dto.go

package matching

import "time"

// RecommendationRecord is the outward projection of a scored candidate.
// Only non-sensitive profile fields plus the match score.
type RecommendationRecord struct {
	UserID     int64      `json:"user_id"`
	Nickname   string     `json:"nickname"`
	Gender     *string    `json:"gender,omitempty"`
	Birthday   *time.Time `json:"birthday,omitempty"`
	Region     *string    `json:"region,omitempty"`
	AvatarURL  *string    `json:"avatar_url,omitempty"`
	Bio        *string    `json:"bio,omitempty"`
	MatchScore int        `json:"match_score"`
}

// toRecord projects a profile and its score into the response shape.
func toRecord(profile *UserProfile, score int) *RecommendationRecord {
	return &RecommendationRecord{
		UserID:     profile.UserID,
		Nickname:   profile.Nickname,
		Gender:     profile.Gender,
		Birthday:   profile.Birthday,
		Region:     profile.Region,
		AvatarURL:  profile.AvatarURL,
		Bio:        profile.Bio,
		MatchScore: score,
	}
}
