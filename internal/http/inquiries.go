package httpapi

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"buildtrack-backend-go/internal/services"

	"github.com/google/uuid"
)

type InquiryDTO struct {
	ID          string    `json:"id"`
	PackageType string    `json:"packageType"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Message     string    `json:"message"`
	CreatedAt   time.Time `json:"createdAt"`
}

type InquiryCreateRequest struct {
	PackageType string `json:"packageType"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Message     string `json:"message"`
}

// CreateInquiry is the one unauthenticated write endpoint, fed by the
// public landing page contact form.
func (s *Server) CreateInquiry(w http.ResponseWriter, r *http.Request) {
	var req InquiryCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	pkg := strings.TrimSpace(req.PackageType)
	name := strings.TrimSpace(req.Name)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	message := strings.TrimSpace(req.Message)
	if name == "" || email == "" || message == "" {
		WriteError(w, http.StatusBadRequest, "name, email and message are required")
		return
	}
	if !strings.Contains(email, "@") {
		WriteError(w, http.StatusBadRequest, "email is not valid")
		return
	}
	if !services.OneOf(pkg, services.InquiryPackages) {
		WriteError(w, http.StatusBadRequest, "packageType must be one of: "+strings.Join(services.InquiryPackages, ", "))
		return
	}
	inquiryID := uuid.NewString()
	now := time.Now().UTC()
	_, err := s.DB.Exec(`
INSERT INTO inquiries (id, package_type, name, email, message, created_at)
VALUES ($1,$2,$3,$4,$5,$6)
`, inquiryID, pkg, name, email, message, now)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	notifMessage := "New inquiry from " + name + " (" + pkg + ")"
	if _, err := services.RecordNotification(s.DB, s.Hub, notifMessage, services.NotificationInquiryReceived, nil, &inquiryID); err != nil {
		log.Printf("record inquiry notification: %v", err)
	}
	row := inquiryRow{}
	if err := s.DB.Get(&row, inquirySelect+` WHERE id = $1`, inquiryID); err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	WriteJSON(w, http.StatusCreated, row.toDTO())
}

func (s *Server) ListInquiries(w http.ResponseWriter, r *http.Request) {
	rows := []inquiryRow{}
	if err := s.DB.Select(&rows, inquirySelect+` ORDER BY created_at DESC`); err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	items := make([]InquiryDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toDTO())
	}
	WriteJSON(w, http.StatusOK, map[string][]InquiryDTO{"items": items})
}

const inquirySelect = `
SELECT id, package_type, name, email, message, created_at
FROM inquiries`

type inquiryRow struct {
	ID          string    `db:"id"`
	PackageType string    `db:"package_type"`
	Name        string    `db:"name"`
	Email       string    `db:"email"`
	Message     string    `db:"message"`
	CreatedAt   time.Time `db:"created_at"`
}

func (row inquiryRow) toDTO() InquiryDTO {
	return InquiryDTO{
		ID:          row.ID,
		PackageType: row.PackageType,
		Name:        row.Name,
		Email:       row.Email,
		Message:     row.Message,
		CreatedAt:   row.CreatedAt,
	}
}
