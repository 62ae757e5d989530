package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"buildtrack-backend-go/internal/services"

	"github.com/go-chi/chi/v5"
)

type NotificationDTO struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Type      string    `json:"type"`
	IsRead    bool      `json:"isRead"`
	ProjectID *string   `json:"projectId,omitempty"`
	InquiryID *string   `json:"inquiryId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type NotificationCreateRequest struct {
	Message   string  `json:"message"`
	Type      string  `json:"type"`
	ProjectID *string `json:"projectId"`
	InquiryID *string `json:"inquiryId"`
}

type NotificationUpdateRequest struct {
	Message *string `json:"message"`
	IsRead  *bool   `json:"isRead"`
}

func (s *Server) ListNotifications(w http.ResponseWriter, r *http.Request) {
	rows := []notificationRow{}
	query := notificationSelect + ` ORDER BY created_at DESC`
	args := []any{}
	if r.URL.Query().Get("unread") == "true" {
		query = notificationSelect + ` WHERE is_read = FALSE ORDER BY created_at DESC`
	}
	if err := s.DB.Select(&rows, query, args...); err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	items := make([]NotificationDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toDTO())
	}
	WriteJSON(w, http.StatusOK, map[string][]NotificationDTO{"items": items})
}

func (s *Server) CreateNotification(w http.ResponseWriter, r *http.Request) {
	var req NotificationCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	message := strings.TrimSpace(req.Message)
	notifType := strings.TrimSpace(req.Type)
	if message == "" {
		WriteError(w, http.StatusBadRequest, "message is required")
		return
	}
	if !services.IsNotificationType(notifType) {
		WriteError(w, http.StatusBadRequest, "type is not a known notification type")
		return
	}
	if req.ProjectID != nil {
		var exists bool
		_ = s.DB.Get(&exists, `SELECT EXISTS(SELECT 1 FROM projects WHERE id = $1)`, *req.ProjectID)
		if !exists {
			WriteError(w, http.StatusBadRequest, "projectId does not reference an existing project")
			return
		}
	}
	if req.InquiryID != nil {
		var exists bool
		_ = s.DB.Get(&exists, `SELECT EXISTS(SELECT 1 FROM inquiries WHERE id = $1)`, *req.InquiryID)
		if !exists {
			WriteError(w, http.StatusBadRequest, "inquiryId does not reference an existing inquiry")
			return
		}
	}
	record, err := services.RecordNotification(s.DB, s.Hub, message, notifType, req.ProjectID, req.InquiryID)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	row := notificationRow{}
	if err := s.DB.Get(&row, notificationSelect+` WHERE id = $1`, record.ID); err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	WriteJSON(w, http.StatusCreated, row.toDTO())
}

func (s *Server) UpdateNotification(w http.ResponseWriter, r *http.Request) {
	notificationID := chi.URLParam(r, "notificationId")
	var req NotificationUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	result, err := s.DB.Exec(`
UPDATE notifications
SET message = COALESCE($2, message),
    is_read = COALESCE($3, is_read),
    updated_at = $4
WHERE id = $1
`, notificationID, trimPtr(req.Message), req.IsRead, time.Now().UTC())
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		WriteError(w, http.StatusNotFound, "Notification not found")
		return
	}
	row := notificationRow{}
	if err := s.DB.Get(&row, notificationSelect+` WHERE id = $1`, notificationID); err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	WriteJSON(w, http.StatusOK, row.toDTO())
}

func (s *Server) DeleteNotification(w http.ResponseWriter, r *http.Request) {
	notificationID := chi.URLParam(r, "notificationId")
	result, err := s.DB.Exec(`DELETE FROM notifications WHERE id = $1`, notificationID)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		WriteError(w, http.StatusNotFound, "Notification not found")
		return
	}
	WriteMessage(w, http.StatusOK, "Notification deleted")
}

func (s *Server) MarkAllNotificationsRead(w http.ResponseWriter, r *http.Request) {
	result, err := s.DB.Exec(`UPDATE notifications SET is_read = TRUE, updated_at = $1 WHERE is_read = FALSE`, time.Now().UTC())
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	affected, _ := result.RowsAffected()
	WriteJSON(w, http.StatusOK, map[string]any{"message": "All notifications marked as read", "updated": affected})
}

const notificationSelect = `
SELECT id, message, type, is_read, project_id, inquiry_id, created_at, updated_at
FROM notifications`

type notificationRow struct {
	ID        string    `db:"id"`
	Message   string    `db:"message"`
	Type      string    `db:"type"`
	IsRead    bool      `db:"is_read"`
	ProjectID *string   `db:"project_id"`
	InquiryID *string   `db:"inquiry_id"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (row notificationRow) toDTO() NotificationDTO {
	return NotificationDTO{
		ID:        row.ID,
		Message:   row.Message,
		Type:      row.Type,
		IsRead:    row.IsRead,
		ProjectID: row.ProjectID,
		InquiryID: row.InquiryID,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}
