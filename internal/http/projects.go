package httpapi

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"buildtrack-backend-go/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type ProjectDTO struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Type              string    `json:"type"`
	Location          *string   `json:"location,omitempty"`
	StartDate         *string   `json:"startDate,omitempty"`
	EndDate           *string   `json:"endDate,omitempty"`
	Status            string    `json:"status"`
	Budget            *float64  `json:"budget,omitempty"`
	Manager           *string   `json:"manager,omitempty"`
	CompletionPercent int       `json:"completionPercent"`
	Description       *string   `json:"description,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

type ProjectCreateRequest struct {
	Name              string   `json:"name"`
	Type              string   `json:"type"`
	Location          *string  `json:"location"`
	StartDate         *string  `json:"startDate"`
	EndDate           *string  `json:"endDate"`
	Status            string   `json:"status"`
	Budget            *float64 `json:"budget"`
	Manager           *string  `json:"manager"`
	CompletionPercent *int     `json:"completionPercent"`
	Description       *string  `json:"description"`
}

type ProjectUpdateRequest struct {
	Name              *string  `json:"name"`
	Type              *string  `json:"type"`
	Location          *string  `json:"location"`
	StartDate         *string  `json:"startDate"`
	EndDate           *string  `json:"endDate"`
	Status            *string  `json:"status"`
	Budget            *float64 `json:"budget"`
	Manager           *string  `json:"manager"`
	CompletionPercent *int     `json:"completionPercent"`
	Description       *string  `json:"description"`
}

func (s *Server) ListProjects(w http.ResponseWriter, r *http.Request) {
	rows := []projectRow{}
	if err := s.DB.Select(&rows, projectSelect+` ORDER BY created_at DESC`); err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	items := make([]ProjectDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toDTO())
	}
	WriteJSON(w, http.StatusOK, map[string][]ProjectDTO{"items": items})
}

func (s *Server) GetProject(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "projectId")
	row := projectRow{}
	if err := s.DB.Get(&row, projectSelect+` WHERE id = $1`, projectID); err != nil {
		WriteError(w, http.StatusNotFound, "Project not found")
		return
	}
	WriteJSON(w, http.StatusOK, row.toDTO())
}

func (s *Server) CreateProject(w http.ResponseWriter, r *http.Request) {
	var req ProjectCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	name := strings.TrimSpace(req.Name)
	projectType := strings.TrimSpace(req.Type)
	if name == "" || projectType == "" {
		WriteError(w, http.StatusBadRequest, "name and type are required")
		return
	}
	status := strings.TrimSpace(req.Status)
	if status == "" {
		status = "Pending"
	}
	if !services.OneOf(status, services.ProjectStatuses) {
		WriteError(w, http.StatusBadRequest, "status must be one of: "+strings.Join(services.ProjectStatuses, ", "))
		return
	}
	startDate, err := parseDatePtr(req.StartDate)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "startDate must be YYYY-MM-DD")
		return
	}
	endDate, err := parseDatePtr(req.EndDate)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "endDate must be YYYY-MM-DD")
		return
	}
	completion := 0
	if req.CompletionPercent != nil {
		completion = *req.CompletionPercent
	}
	projectID := uuid.NewString()
	now := time.Now().UTC()
	_, err = s.DB.Exec(`
INSERT INTO projects (id, name, type, location, start_date, end_date, status, budget, manager, completion_percent, description, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$12)
`, projectID, name, projectType, trimPtr(req.Location), startDate, endDate, status, req.Budget, trimPtr(req.Manager), completion, trimPtr(req.Description), now)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	s.notifyProject(projectID, services.NotificationProjectCreated, "Project \""+name+"\" was created")
	row := projectRow{}
	if err := s.DB.Get(&row, projectSelect+` WHERE id = $1`, projectID); err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	WriteJSON(w, http.StatusCreated, row.toDTO())
}

func (s *Server) UpdateProject(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "projectId")
	var req ProjectUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	var exists bool
	_ = s.DB.Get(&exists, `SELECT EXISTS(SELECT 1 FROM projects WHERE id = $1)`, projectID)
	if !exists {
		WriteError(w, http.StatusNotFound, "Project not found")
		return
	}
	if req.Status != nil && !services.OneOf(strings.TrimSpace(*req.Status), services.ProjectStatuses) {
		WriteError(w, http.StatusBadRequest, "status must be one of: "+strings.Join(services.ProjectStatuses, ", "))
		return
	}
	startDate, err := parseDatePtr(req.StartDate)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "startDate must be YYYY-MM-DD")
		return
	}
	endDate, err := parseDatePtr(req.EndDate)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "endDate must be YYYY-MM-DD")
		return
	}
	_, err = s.DB.Exec(`
UPDATE projects
SET name = COALESCE($2, name),
    type = COALESCE($3, type),
    location = COALESCE($4, location),
    start_date = COALESCE($5, start_date),
    end_date = COALESCE($6, end_date),
    status = COALESCE($7, status),
    budget = COALESCE($8, budget),
    manager = COALESCE($9, manager),
    completion_percent = COALESCE($10, completion_percent),
    description = COALESCE($11, description),
    updated_at = $12
WHERE id = $1
`, projectID, trimPtr(req.Name), trimPtr(req.Type), trimPtr(req.Location), startDate, endDate,
		trimPtr(req.Status), req.Budget, trimPtr(req.Manager), req.CompletionPercent, trimPtr(req.Description), time.Now().UTC())
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	row := projectRow{}
	if err := s.DB.Get(&row, projectSelect+` WHERE id = $1`, projectID); err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	s.notifyProject(projectID, services.NotificationProjectUpdated, "Project \""+row.Name+"\" was updated")
	WriteJSON(w, http.StatusOK, row.toDTO())
}

func (s *Server) DeleteProject(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "projectId")
	var name string
	if err := s.DB.Get(&name, `SELECT name FROM projects WHERE id = $1`, projectID); err != nil {
		WriteError(w, http.StatusNotFound, "Project not found")
		return
	}
	// No cascade: expenses and tasks referencing the project keep their ids.
	if _, err := s.DB.Exec(`DELETE FROM projects WHERE id = $1`, projectID); err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	s.notifyProject(projectID, services.NotificationProjectDeleted, "Project \""+name+"\" was deleted")
	WriteMessage(w, http.StatusOK, "Project deleted")
}

func (s *Server) notifyProject(projectID, notifType, message string) {
	if _, err := services.RecordNotification(s.DB, s.Hub, message, notifType, &projectID, nil); err != nil {
		log.Printf("record %s notification: %v", notifType, err)
	}
}

const projectSelect = `
SELECT id, name, type, location, start_date, end_date, status, budget, manager, completion_percent, description, created_at, updated_at
FROM projects`

type projectRow struct {
	ID                string     `db:"id"`
	Name              string     `db:"name"`
	Type              string     `db:"type"`
	Location          *string    `db:"location"`
	StartDate         *time.Time `db:"start_date"`
	EndDate           *time.Time `db:"end_date"`
	Status            string     `db:"status"`
	Budget            *float64   `db:"budget"`
	Manager           *string    `db:"manager"`
	CompletionPercent int        `db:"completion_percent"`
	Description       *string    `db:"description"`
	CreatedAt         time.Time  `db:"created_at"`
	UpdatedAt         time.Time  `db:"updated_at"`
}

func (row projectRow) toDTO() ProjectDTO {
	return ProjectDTO{
		ID:                row.ID,
		Name:              row.Name,
		Type:              row.Type,
		Location:          row.Location,
		StartDate:         formatDate(row.StartDate),
		EndDate:           formatDate(row.EndDate),
		Status:            row.Status,
		Budget:            row.Budget,
		Manager:           row.Manager,
		CompletionPercent: row.CompletionPercent,
		Description:       row.Description,
		CreatedAt:         row.CreatedAt,
		UpdatedAt:         row.UpdatedAt,
	}
}
