package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"buildtrack-backend-go/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type LabourAssignmentDTO struct {
	ID                string    `json:"id"`
	ProjectCode       string    `json:"projectCode"`
	TaskCode          string    `json:"taskCode"`
	LabourType        string    `json:"labourType"`
	NumberOfLabourers int       `json:"numberOfLabourers"`
	AssignmentDate    string    `json:"assignmentDate"`
	SiteName          *string   `json:"siteName,omitempty"`
	Supervisor        *string   `json:"supervisor,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

type LabourAssignmentCreateRequest struct {
	ProjectCode       string  `json:"projectCode"`
	TaskCode          string  `json:"taskCode"`
	LabourType        string  `json:"labourType"`
	NumberOfLabourers int     `json:"numberOfLabourers"`
	AssignmentDate    string  `json:"assignmentDate"`
	SiteName          *string `json:"siteName"`
	Supervisor        *string `json:"supervisor"`
}

type LabourAssignmentUpdateRequest struct {
	ProjectCode       *string `json:"projectCode"`
	TaskCode          *string `json:"taskCode"`
	LabourType        *string `json:"labourType"`
	NumberOfLabourers *int    `json:"numberOfLabourers"`
	AssignmentDate    *string `json:"assignmentDate"`
	SiteName          *string `json:"siteName"`
	Supervisor        *string `json:"supervisor"`
}

func (s *Server) ListLabourAssignments(w http.ResponseWriter, r *http.Request) {
	rows := []labourRow{}
	if err := s.DB.Select(&rows, labourSelect+` ORDER BY created_at DESC`); err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	items := make([]LabourAssignmentDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toDTO())
	}
	WriteJSON(w, http.StatusOK, map[string][]LabourAssignmentDTO{"items": items})
}

func (s *Server) CreateLabourAssignment(w http.ResponseWriter, r *http.Request) {
	var req LabourAssignmentCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	projectCode := strings.TrimSpace(req.ProjectCode)
	taskCode := strings.TrimSpace(req.TaskCode)
	labourType := strings.TrimSpace(req.LabourType)
	if projectCode == "" || taskCode == "" {
		WriteError(w, http.StatusBadRequest, "projectCode and taskCode are required")
		return
	}
	if !services.OneOf(labourType, services.LabourTypes) {
		WriteError(w, http.StatusBadRequest, "labourType must be one of: "+strings.Join(services.LabourTypes, ", "))
		return
	}
	if req.NumberOfLabourers < 1 {
		WriteError(w, http.StatusBadRequest, "numberOfLabourers must be at least 1")
		return
	}
	assignmentDate, err := parseDate(req.AssignmentDate)
	if err != nil || assignmentDate == nil {
		WriteError(w, http.StatusBadRequest, "assignmentDate must be YYYY-MM-DD")
		return
	}
	assignmentID := uuid.NewString()
	now := time.Now().UTC()
	_, err = s.DB.Exec(`
INSERT INTO labour_assignments (id, project_code, task_code, labour_type, number_of_labourers, assignment_date, site_name, supervisor, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$9)
`, assignmentID, projectCode, taskCode, labourType, req.NumberOfLabourers, *assignmentDate, trimPtr(req.SiteName), trimPtr(req.Supervisor), now)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	row := labourRow{}
	if err := s.DB.Get(&row, labourSelect+` WHERE id = $1`, assignmentID); err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	WriteJSON(w, http.StatusCreated, row.toDTO())
}

func (s *Server) UpdateLabourAssignment(w http.ResponseWriter, r *http.Request) {
	assignmentID := chi.URLParam(r, "assignmentId")
	var req LabourAssignmentUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	var exists bool
	_ = s.DB.Get(&exists, `SELECT EXISTS(SELECT 1 FROM labour_assignments WHERE id = $1)`, assignmentID)
	if !exists {
		WriteError(w, http.StatusNotFound, "Labour assignment not found")
		return
	}
	if req.LabourType != nil && !services.OneOf(strings.TrimSpace(*req.LabourType), services.LabourTypes) {
		WriteError(w, http.StatusBadRequest, "labourType must be one of: "+strings.Join(services.LabourTypes, ", "))
		return
	}
	if req.NumberOfLabourers != nil && *req.NumberOfLabourers < 1 {
		WriteError(w, http.StatusBadRequest, "numberOfLabourers must be at least 1")
		return
	}
	assignmentDate, err := parseDatePtr(req.AssignmentDate)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "assignmentDate must be YYYY-MM-DD")
		return
	}
	_, err = s.DB.Exec(`
UPDATE labour_assignments
SET project_code = COALESCE($2, project_code),
    task_code = COALESCE($3, task_code),
    labour_type = COALESCE($4, labour_type),
    number_of_labourers = COALESCE($5, number_of_labourers),
    assignment_date = COALESCE($6, assignment_date),
    site_name = COALESCE($7, site_name),
    supervisor = COALESCE($8, supervisor),
    updated_at = $9
WHERE id = $1
`, assignmentID, trimPtr(req.ProjectCode), trimPtr(req.TaskCode), trimPtr(req.LabourType), req.NumberOfLabourers, assignmentDate, trimPtr(req.SiteName), trimPtr(req.Supervisor), time.Now().UTC())
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	row := labourRow{}
	if err := s.DB.Get(&row, labourSelect+` WHERE id = $1`, assignmentID); err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	WriteJSON(w, http.StatusOK, row.toDTO())
}

func (s *Server) DeleteLabourAssignment(w http.ResponseWriter, r *http.Request) {
	assignmentID := chi.URLParam(r, "assignmentId")
	result, err := s.DB.Exec(`DELETE FROM labour_assignments WHERE id = $1`, assignmentID)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		WriteError(w, http.StatusNotFound, "Labour assignment not found")
		return
	}
	WriteMessage(w, http.StatusOK, "Labour assignment deleted")
}

const labourSelect = `
SELECT id, project_code, task_code, labour_type, number_of_labourers, assignment_date, site_name, supervisor, created_at, updated_at
FROM labour_assignments`

type labourRow struct {
	ID                string    `db:"id"`
	ProjectCode       string    `db:"project_code"`
	TaskCode          string    `db:"task_code"`
	LabourType        string    `db:"labour_type"`
	NumberOfLabourers int       `db:"number_of_labourers"`
	AssignmentDate    time.Time `db:"assignment_date"`
	SiteName          *string   `db:"site_name"`
	Supervisor        *string   `db:"supervisor"`
	CreatedAt         time.Time `db:"created_at"`
	UpdatedAt         time.Time `db:"updated_at"`
}

func (row labourRow) toDTO() LabourAssignmentDTO {
	return LabourAssignmentDTO{
		ID:                row.ID,
		ProjectCode:       row.ProjectCode,
		TaskCode:          row.TaskCode,
		LabourType:        row.LabourType,
		NumberOfLabourers: row.NumberOfLabourers,
		AssignmentDate:    row.AssignmentDate.Format("2006-01-02"),
		SiteName:          row.SiteName,
		Supervisor:        row.Supervisor,
		CreatedAt:         row.CreatedAt,
		UpdatedAt:         row.UpdatedAt,
	}
}
