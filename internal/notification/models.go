// internal/notification/models.go

package notification

import "time"

// Type classifies a notification row.
type Type string

const (
	TypeNewMatch       Type = "new_match"
	TypeRecommendation Type = "recommendation_ready"
	TypeSystem         Type = "system"
)

// Notification is one in-app notification.
type Notification struct {
	ID         int64     `json:"id" db:"id"`
	UserID     int64     `json:"user_id" db:"user_id"`
	Type       Type      `json:"type" db:"type"`
	Title      string    `json:"title" db:"title"`
	Body       string    `json:"body" db:"body"`
	RelatedID  *int64    `json:"related_id,omitempty" db:"related_id"`
	IsRead     bool      `json:"is_read" db:"is_read"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}
