package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

type TaskDTO struct {
	ID          string    `json:"id"`
	ProjectCode string    `json:"projectCode"`
	TaskCode    string    `json:"taskCode"`
	TaskType    string    `json:"taskType"`
	Floor       *string   `json:"floor,omitempty"`
	StartDate   *string   `json:"startDate,omitempty"`
	EndDate     *string   `json:"endDate,omitempty"`
	SiteName    *string   `json:"siteName,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type TaskCreateRequest struct {
	ProjectCode string  `json:"projectCode"`
	TaskCode    string  `json:"taskCode"`
	TaskType    string  `json:"taskType"`
	Floor       *string `json:"floor"`
	StartDate   *string `json:"startDate"`
	EndDate     *string `json:"endDate"`
	SiteName    *string `json:"siteName"`
}

type TaskUpdateRequest struct {
	ProjectCode *string `json:"projectCode"`
	TaskCode    *string `json:"taskCode"`
	TaskType    *string `json:"taskType"`
	Floor       *string `json:"floor"`
	StartDate   *string `json:"startDate"`
	EndDate     *string `json:"endDate"`
	SiteName    *string `json:"siteName"`
}

func (s *Server) ListTasks(w http.ResponseWriter, r *http.Request) {
	rows := []taskRow{}
	if err := s.DB.Select(&rows, taskSelect+` ORDER BY created_at DESC`); err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	items := make([]TaskDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toDTO())
	}
	WriteJSON(w, http.StatusOK, map[string][]TaskDTO{"items": items})
}

func (s *Server) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req TaskCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	projectCode := strings.TrimSpace(req.ProjectCode)
	taskCode := strings.TrimSpace(req.TaskCode)
	taskType := strings.TrimSpace(req.TaskType)
	if projectCode == "" || taskCode == "" || taskType == "" {
		WriteError(w, http.StatusBadRequest, "projectCode, taskCode and taskType are required")
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
	taskID := uuid.NewString()
	now := time.Now().UTC()
	_, err = s.DB.Exec(`
INSERT INTO tasks (id, project_code, task_code, task_type, floor, start_date, end_date, site_name, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$9)
`, taskID, projectCode, taskCode, taskType, trimPtr(req.Floor), startDate, endDate, trimPtr(req.SiteName), now)
	if err != nil {
		if isUniqueViolation(err) {
			WriteError(w, http.StatusBadRequest, "taskCode already exists")
			return
		}
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	row := taskRow{}
	if err := s.DB.Get(&row, taskSelect+` WHERE id = $1`, taskID); err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	WriteJSON(w, http.StatusCreated, row.toDTO())
}

func (s *Server) UpdateTask(w http.ResponseWriter, r *http.Request) {
	taskID := chi.URLParam(r, "taskId")
	var req TaskUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	var exists bool
	_ = s.DB.Get(&exists, `SELECT EXISTS(SELECT 1 FROM tasks WHERE id = $1)`, taskID)
	if !exists {
		WriteError(w, http.StatusNotFound, "Task not found")
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
UPDATE tasks
SET project_code = COALESCE($2, project_code),
    task_code = COALESCE($3, task_code),
    task_type = COALESCE($4, task_type),
    floor = COALESCE($5, floor),
    start_date = COALESCE($6, start_date),
    end_date = COALESCE($7, end_date),
    site_name = COALESCE($8, site_name),
    updated_at = $9
WHERE id = $1
`, taskID, trimPtr(req.ProjectCode), trimPtr(req.TaskCode), trimPtr(req.TaskType), trimPtr(req.Floor), startDate, endDate, trimPtr(req.SiteName), time.Now().UTC())
	if err != nil {
		if isUniqueViolation(err) {
			WriteError(w, http.StatusBadRequest, "taskCode already exists")
			return
		}
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	row := taskRow{}
	if err := s.DB.Get(&row, taskSelect+` WHERE id = $1`, taskID); err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	WriteJSON(w, http.StatusOK, row.toDTO())
}

func (s *Server) DeleteTask(w http.ResponseWriter, r *http.Request) {
	taskID := chi.URLParam(r, "taskId")
	result, err := s.DB.Exec(`DELETE FROM tasks WHERE id = $1`, taskID)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		WriteError(w, http.StatusNotFound, "Task not found")
		return
	}
	WriteMessage(w, http.StatusOK, "Task deleted")
}

// isUniqueViolation matches Postgres error 23505 (unique constraint).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

const taskSelect = `
SELECT id, project_code, task_code, task_type, floor, start_date, end_date, site_name, created_at, updated_at
FROM tasks`

type taskRow struct {
	ID          string     `db:"id"`
	ProjectCode string     `db:"project_code"`
	TaskCode    string     `db:"task_code"`
	TaskType    string     `db:"task_type"`
	Floor       *string    `db:"floor"`
	StartDate   *time.Time `db:"start_date"`
	EndDate     *time.Time `db:"end_date"`
	SiteName    *string    `db:"site_name"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"`
}

func (row taskRow) toDTO() TaskDTO {
	return TaskDTO{
		ID:          row.ID,
		ProjectCode: row.ProjectCode,
		TaskCode:    row.TaskCode,
		TaskType:    row.TaskType,
		Floor:       row.Floor,
		StartDate:   formatDate(row.StartDate),
		EndDate:     formatDate(row.EndDate),
		SiteName:    row.SiteName,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}
