// internal/profile/service.go

package profile

import (
	"context"
	"errors"
	"fmt"
	"log"
	"mime/multipart"

	"github.com/linkme-app/linkme-backend/internal/matching"
	"github.com/linkme-app/linkme-backend/internal/notification"
)

var ErrProfileNotFound = errors.New("profile not found")

type Service interface {
	GetProfile(ctx context.Context, userID int64) (*Profile, error)
	UpdateProfile(ctx context.Context, userID int64, req *UpdateProfileRequest) (*Profile, error)
	UploadAvatar(ctx context.Context, userID int64, file multipart.File, header *multipart.FileHeader) (string, error)

	SavePreference(ctx context.Context, userID int64, req *PreferenceRequest) error
	SavePersonality(ctx context.Context, userID int64, req *PersonalityRequest) error
	SaveHobbies(ctx context.Context, userID int64, req *HobbiesRequest) error
	SaveQualities(ctx context.Context, userID int64, req *QualitiesRequest) error
	SaveDimensions(ctx context.Context, userID int64, req *DimensionsRequest) error

	ListHobbies(ctx context.Context) ([]*matching.Hobby, error)
}

type service struct {
	repo          Repository
	uploads       UploadService
	cache         *matching.ResultCache // nil when Redis is not configured
	notifications notification.Service  // nil disables pushes
}

func NewService(repo Repository, uploads UploadService, cache *matching.ResultCache, notifications notification.Service) Service {
	return &service{repo: repo, uploads: uploads, cache: cache, notifications: notifications}
}

func (s *service) GetProfile(ctx context.Context, userID int64) (*Profile, error) {
	profile, err := s.repo.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}
	return profile, nil
}

func (s *service) UpdateProfile(ctx context.Context, userID int64, req *UpdateProfileRequest) (*Profile, error) {
	if err := s.repo.UpdateProfile(ctx, userID, req); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	s.invalidateRecommendations(ctx, userID)
	return s.GetProfile(ctx, userID)
}

func (s *service) UploadAvatar(ctx context.Context, userID int64, file multipart.File, header *multipart.FileHeader) (string, error) {
	url, err := s.uploads.UploadAvatar(ctx, file, header)
	if err != nil {
		return "", err
	}
	if err := s.repo.SetAvatarURL(ctx, userID, url); err != nil {
		return "", fmt.Errorf("save avatar url: %w", err)
	}
	return url, nil
}

func (s *service) SavePreference(ctx context.Context, userID int64, req *PreferenceRequest) error {
	if err := s.repo.UpsertPreference(ctx, userID, req); err != nil {
		return fmt.Errorf("save preference: %w", err)
	}
	s.invalidateRecommendations(ctx, userID)
	return nil
}

func (s *service) SavePersonality(ctx context.Context, userID int64, req *PersonalityRequest) error {
	if err := s.repo.ReplacePersonalitySelections(ctx, userID, req.Kind, req.Selections); err != nil {
		return fmt.Errorf("save personality selections: %w", err)
	}
	s.invalidateRecommendations(ctx, userID)
	return nil
}

func (s *service) SaveHobbies(ctx context.Context, userID int64, req *HobbiesRequest) error {
	if err := s.repo.ReplaceHobbies(ctx, userID, req.HobbyIDs); err != nil {
		return fmt.Errorf("save hobbies: %w", err)
	}
	s.invalidateRecommendations(ctx, userID)
	return nil
}

func (s *service) SaveQualities(ctx context.Context, userID int64, req *QualitiesRequest) error {
	if err := s.repo.ReplaceQualities(ctx, userID, req.QualityIDs); err != nil {
		return fmt.Errorf("save qualities: %w", err)
	}
	s.invalidateRecommendations(ctx, userID)
	return nil
}

func (s *service) SaveDimensions(ctx context.Context, userID int64, req *DimensionsRequest) error {
	priorities := make([]matching.PriorityDimension, 0, len(req.Priorities))
	for _, p := range req.Priorities {
		priorities = append(priorities, p.toDomain())
	}
	if err := s.repo.ReplaceDimensions(ctx, userID, req.MustCodes, priorities); err != nil {
		return fmt.Errorf("save dimensions: %w", err)
	}
	s.invalidateRecommendations(ctx, userID)

	if s.notifications != nil {
		err := s.notifications.Notify(ctx, userID, notification.TypeRecommendation,
			"Recommendations refreshed",
			"Your matchmaking settings changed, so your recommendations were recomputed.", nil)
		if err != nil {
			log.Printf("failed to notify user %d about refreshed recommendations: %v", userID, err)
		}
	}
	return nil
}

func (s *service) ListHobbies(ctx context.Context) ([]*matching.Hobby, error) {
	return s.repo.ListHobbies(ctx)
}

// invalidateRecommendations drops cached recommendation pages after any
// write that feeds the scorer.
func (s *service) invalidateRecommendations(ctx context.Context, userID int64) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, userID)
	}
}
