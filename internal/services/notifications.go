package services

import (
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const (
	NotificationInquiryReceived = "inquiry_received"
	NotificationProjectCreated  = "project_created"
	NotificationProjectUpdated  = "project_updated"
	NotificationProjectDeleted  = "project_deleted"
)

// NotificationRecord is the hub payload and the shape returned to clients.
type NotificationRecord struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Type      string    `json:"type"`
	IsRead    bool      `json:"isRead"`
	ProjectID *string   `json:"projectId,omitempty"`
	InquiryID *string   `json:"inquiryId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// RecordNotification persists a notification row and broadcasts it on the
// event hub. Domain handlers call this inside the same request that caused
// the event; clients never synthesize notifications themselves.
func RecordNotification(db *sqlx.DB, hub *EventHub, message, notifType string, projectID, inquiryID *string) (NotificationRecord, error) {
	record := NotificationRecord{
		ID:        uuid.NewString(),
		Message:   message,
		Type:      notifType,
		ProjectID: projectID,
		InquiryID: inquiryID,
		CreatedAt: time.Now().UTC(),
	}
	_, err := db.Exec(`
INSERT INTO notifications (id, message, type, is_read, project_id, inquiry_id, created_at, updated_at)
VALUES ($1,$2,$3,FALSE,$4,$5,$6,$6)
`, record.ID, record.Message, record.Type, record.ProjectID, record.InquiryID, record.CreatedAt)
	if err != nil {
		return NotificationRecord{}, err
	}
	if hub != nil {
		hub.Broadcast("notification", record)
	}
	return record, nil
}

func IsNotificationType(value string) bool {
	switch value {
	case NotificationInquiryReceived, NotificationProjectCreated,
		NotificationProjectUpdated, NotificationProjectDeleted:
		return true
	}
	return false
}
