package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"buildtrack-backend-go/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type PagedUsersResponse struct {
	Items    []UserDTO `json:"items"`
	Total    int       `json:"total"`
	Page     int       `json:"page"`
	PageSize int       `json:"pageSize"`
}

type AdminUserCreateRequest struct {
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Address   *string `json:"address"`
	BirthDate *string `json:"birthDate"`
	Gender    *string `json:"gender"`
	Email     string  `json:"email"`
	Password  string  `json:"password"`
	Role      string  `json:"role"`
}

type UserUpdateRequest struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Address   *string `json:"address"`
	BirthDate *string `json:"birthDate"`
	Gender    *string `json:"gender"`
	Role      *string `json:"role"`
}

type ImportUsersResponse struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
}

func (s *Server) ListUsers(w http.ResponseWriter, r *http.Request) {
	page := parseInt(r.URL.Query().Get("page"), 1)
	pageSize := parseInt(r.URL.Query().Get("pageSize"), 10)
	if pageSize > 100 {
		pageSize = 100
	}
	search := strings.TrimSpace(r.URL.Query().Get("search"))
	args := []interface{}{}
	where := ""
	if search != "" {
		where = `WHERE email LIKE $1 OR lower(first_name || ' ' || last_name) LIKE $1`
		args = append(args, "%"+strings.ToLower(search)+"%")
	}
	var total int
	if err := s.DB.Get(&total, "SELECT count(*) FROM users "+where, args...); err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	offset := (page - 1) * pageSize
	query := `
SELECT id, first_name, last_name, address, birth_date, gender, email, role, created_at, updated_at
FROM users
` + where + `
ORDER BY created_at DESC
LIMIT $%d OFFSET $%d`
	args = append(args, pageSize, offset)
	query = fmt.Sprintf(query, len(args)-1, len(args))
	rows := []struct {
		ID        string     `db:"id"`
		FirstName string     `db:"first_name"`
		LastName  string     `db:"last_name"`
		Address   *string    `db:"address"`
		BirthDate *time.Time `db:"birth_date"`
		Gender    *string    `db:"gender"`
		Email     string     `db:"email"`
		Role      string     `db:"role"`
		CreatedAt time.Time  `db:"created_at"`
		UpdatedAt time.Time  `db:"updated_at"`
	}{}
	if err := s.DB.Select(&rows, query, args...); err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	items := make([]UserDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, UserDTO{
			ID:        row.ID,
			FirstName: row.FirstName,
			LastName:  row.LastName,
			Address:   row.Address,
			BirthDate: formatDate(row.BirthDate),
			Gender:    row.Gender,
			Email:     row.Email,
			Role:      row.Role,
			CreatedAt: row.CreatedAt,
			UpdatedAt: row.UpdatedAt,
		})
	}
	WriteJSON(w, http.StatusOK, PagedUsersResponse{Items: items, Total: total, Page: page, PageSize: pageSize})
}

func (s *Server) UserDetails(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	userDTO, err := s.buildUserDTO(userID)
	if err != nil {
		WriteError(w, http.StatusNotFound, "User not found")
		return
	}
	WriteJSON(w, http.StatusOK, userDTO)
}

func (s *Server) UpdateUserDetails(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	var req UserUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	var exists bool
	_ = s.DB.Get(&exists, `SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`, userID)
	if !exists {
		WriteError(w, http.StatusNotFound, "User not found")
		return
	}
	birthDate, err := parseDatePtr(req.BirthDate)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "birthDate must be YYYY-MM-DD")
		return
	}
	role := (*string)(nil)
	if req.Role != nil {
		value := strings.ToUpper(strings.TrimSpace(*req.Role))
		if !services.OneOf(value, services.UserRoles) {
			WriteError(w, http.StatusBadRequest, "role must be GENERAL or ADMIN")
			return
		}
		// Only admins may change a role, including their own.
		if CurrentRole(r) != "ADMIN" {
			WriteError(w, http.StatusForbidden, "Not allowed")
			return
		}
		role = &value
	}
	_, err = s.DB.Exec(`
UPDATE users
SET first_name = COALESCE($2, first_name),
    last_name = COALESCE($3, last_name),
    address = COALESCE($4, address),
    birth_date = COALESCE($5, birth_date),
    gender = COALESCE($6, gender),
    role = COALESCE($7, role),
    updated_at = $8
WHERE id = $1
`, userID, trimPtr(req.FirstName), trimPtr(req.LastName), trimPtr(req.Address), birthDate, trimPtr(req.Gender), role, time.Now().UTC())
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	userDTO, err := s.buildUserDTO(userID)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	WriteJSON(w, http.StatusOK, userDTO)
}

func (s *Server) DeleteUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	result, err := s.DB.Exec(`DELETE FROM users WHERE id = $1`, userID)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		WriteError(w, http.StatusNotFound, "User not found")
		return
	}
	WriteMessage(w, http.StatusOK, "User deleted")
}

func (s *Server) AdminCreateUser(w http.ResponseWriter, r *http.Request) {
	var req AdminUserCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	firstName := strings.TrimSpace(req.FirstName)
	lastName := strings.TrimSpace(req.LastName)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if firstName == "" || lastName == "" || email == "" || strings.TrimSpace(req.Password) == "" {
		WriteError(w, http.StatusBadRequest, "firstName, lastName, email and password are required")
		return
	}
	role := strings.ToUpper(strings.TrimSpace(req.Role))
	if role == "" {
		role = "GENERAL"
	}
	if !services.OneOf(role, services.UserRoles) {
		WriteError(w, http.StatusBadRequest, "role must be GENERAL or ADMIN")
		return
	}
	birthDate, err := parseDatePtr(req.BirthDate)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "birthDate must be YYYY-MM-DD")
		return
	}
	var exists bool
	_ = s.DB.Get(&exists, `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email)
	if exists {
		WriteError(w, http.StatusBadRequest, "User already exists")
		return
	}
	hash, err := s.Tokens.HashPassword(req.Password)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	userID := uuid.NewString()
	now := time.Now().UTC()
	_, err = s.DB.Exec(`
INSERT INTO users (id, first_name, last_name, address, birth_date, gender, email, password_hash, role, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$10)
`, userID, firstName, lastName, trimPtr(req.Address), birthDate, trimPtr(req.Gender), email, hash, role, now)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	userDTO, err := s.buildUserDTO(userID)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	WriteJSON(w, http.StatusCreated, userDTO)
}

// ImportUsers ingests a CSV of accounts, inserting new emails and updating
// profile fields on existing ones. The whole file is validated before any
// row is written.
func (s *Server) ImportUsers(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		WriteError(w, http.StatusBadRequest, "A CSV file is required")
		return
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		WriteError(w, http.StatusBadRequest, "A CSV file is required")
		return
	}
	defer file.Close()
	users, err := services.ParseUserCSV(file)
	if err != nil {
		var serr services.ServiceError
		if errors.As(err, &serr) {
			WriteError(w, serr.Status, serr.Message)
			return
		}
		WriteError(w, http.StatusBadRequest, "CSV could not be parsed")
		return
	}
	created := 0
	updated := 0
	now := time.Now().UTC()
	for _, user := range users {
		var existingID string
		err := s.DB.Get(&existingID, `SELECT id FROM users WHERE email = $1`, user.Email)
		if err == nil {
			_, err = s.DB.Exec(`
UPDATE users
SET first_name = $2, last_name = $3, address = COALESCE($4, address),
    birth_date = COALESCE($5, birth_date), gender = COALESCE($6, gender),
    role = $7, updated_at = $8
WHERE id = $1
`, existingID, user.FirstName, user.LastName, user.Address, user.BirthDate, user.Gender, user.Role, now)
			if err != nil {
				WriteError(w, http.StatusInternalServerError, "Internal server error")
				return
			}
			updated++
			continue
		}
		hash, err := s.Tokens.HashPassword(user.Password)
		if err != nil {
			WriteError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		_, err = s.DB.Exec(`
INSERT INTO users (id, first_name, last_name, address, birth_date, gender, email, password_hash, role, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$10)
`, uuid.NewString(), user.FirstName, user.LastName, user.Address, user.BirthDate, user.Gender, user.Email, hash, user.Role, now)
		if err != nil {
			WriteError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		created++
	}
	WriteJSON(w, http.StatusOK, ImportUsersResponse{Created: created, Updated: updated})
}
