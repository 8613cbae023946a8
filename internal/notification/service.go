// internal/notification/service.go

package notification

import (
	"context"
	"log"
)

type Service interface {
	Notify(ctx context.Context, userID int64, nType Type, title, body string, relatedID *int64) error
	List(ctx context.Context, userID int64, limit, offset int) ([]Notification, error)
	MarkRead(ctx context.Context, userID, notificationID int64) error
	MarkAllRead(ctx context.Context, userID int64) error
	CountUnread(ctx context.Context, userID int64) (int, error)
}

type service struct {
	repo Repository
	hub  *Hub
}

func NewService(repo Repository, hub *Hub) Service {
	return &service{repo: repo, hub: hub}
}

// Notify persists the notification and pushes it to the user's live
// connection if one exists. Push failures never fail the write.
func (s *service) Notify(ctx context.Context, userID int64, nType Type, title, body string, relatedID *int64) error {
	n := &Notification{
		UserID:    userID,
		Type:      nType,
		Title:     title,
		Body:      body,
		RelatedID: relatedID,
	}
	if err := s.repo.Create(ctx, n); err != nil {
		return err
	}

	if s.hub != nil {
		go s.hub.Push(userID, nType, n)
	} else {
		log.Printf("notification hub not running, skipping push for user %d", userID)
	}
	return nil
}

func (s *service) List(ctx context.Context, userID int64, limit, offset int) ([]Notification, error) {
	if limit < 1 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.ListByUser(ctx, userID, limit, offset)
}

func (s *service) MarkRead(ctx context.Context, userID, notificationID int64) error {
	return s.repo.MarkRead(ctx, userID, notificationID)
}

func (s *service) MarkAllRead(ctx context.Context, userID int64) error {
	return s.repo.MarkAllRead(ctx, userID)
}

func (s *service) CountUnread(ctx context.Context, userID int64) (int, error) {
	return s.repo.CountUnread(ctx, userID)
}
