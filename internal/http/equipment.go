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

type EquipmentDTO struct {
	ID                  string    `json:"id"`
	Name                string    `json:"name"`
	Type                string    `json:"type"`
	Status              string    `json:"status"`
	Condition           string    `json:"condition"`
	Location            *string   `json:"location,omitempty"`
	PurchaseDate        *string   `json:"purchaseDate,omitempty"`
	LastMaintenanceDate *string   `json:"lastMaintenanceDate,omitempty"`
	RentalStart         *string   `json:"rentalStart,omitempty"`
	RentalEnd           *string   `json:"rentalEnd,omitempty"`
	Vendor              *string   `json:"vendor,omitempty"`
	RentalCost          *float64  `json:"rentalCost,omitempty"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

type EquipmentCreateRequest struct {
	Name                string   `json:"name"`
	Type                string   `json:"type"`
	Status              string   `json:"status"`
	Condition           string   `json:"condition"`
	Location            *string  `json:"location"`
	PurchaseDate        *string  `json:"purchaseDate"`
	LastMaintenanceDate *string  `json:"lastMaintenanceDate"`
	RentalStart         *string  `json:"rentalStart"`
	RentalEnd           *string  `json:"rentalEnd"`
	Vendor              *string  `json:"vendor"`
	RentalCost          *float64 `json:"rentalCost"`
}

type EquipmentUpdateRequest struct {
	Name                *string  `json:"name"`
	Type                *string  `json:"type"`
	Status              *string  `json:"status"`
	Condition           *string  `json:"condition"`
	Location            *string  `json:"location"`
	PurchaseDate        *string  `json:"purchaseDate"`
	LastMaintenanceDate *string  `json:"lastMaintenanceDate"`
	RentalStart         *string  `json:"rentalStart"`
	RentalEnd           *string  `json:"rentalEnd"`
	Vendor              *string  `json:"vendor"`
	RentalCost          *float64 `json:"rentalCost"`
}

func (s *Server) ListEquipment(w http.ResponseWriter, r *http.Request) {
	rows := []equipmentRow{}
	if err := s.DB.Select(&rows, equipmentSelect+` ORDER BY created_at DESC`); err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	items := make([]EquipmentDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toDTO())
	}
	WriteJSON(w, http.StatusOK, map[string][]EquipmentDTO{"items": items})
}

func (s *Server) CreateEquipment(w http.ResponseWriter, r *http.Request) {
	var req EquipmentCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	name := strings.TrimSpace(req.Name)
	equipmentType := strings.TrimSpace(req.Type)
	status := strings.TrimSpace(req.Status)
	condition := strings.TrimSpace(req.Condition)
	if name == "" || equipmentType == "" {
		WriteError(w, http.StatusBadRequest, "name and type are required")
		return
	}
	if !services.OneOf(status, services.EquipmentStatuses) {
		WriteError(w, http.StatusBadRequest, "status must be Stocked or Rented")
		return
	}
	if !services.OneOf(condition, services.EquipmentConditions) {
		WriteError(w, http.StatusBadRequest, "condition must be one of: "+strings.Join(services.EquipmentConditions, ", "))
		return
	}
	dates, err := parseEquipmentDates(req.PurchaseDate, req.LastMaintenanceDate, req.RentalStart, req.RentalEnd)
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	equipmentID := uuid.NewString()
	now := time.Now().UTC()
	_, err = s.DB.Exec(`
INSERT INTO equipment (id, name, type, status, condition, location, purchase_date, last_maintenance_date, rental_start, rental_end, vendor, rental_cost, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$13)
`, equipmentID, name, equipmentType, status, condition, trimPtr(req.Location),
		dates[0], dates[1], dates[2], dates[3], trimPtr(req.Vendor), req.RentalCost, now)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	row := equipmentRow{}
	if err := s.DB.Get(&row, equipmentSelect+` WHERE id = $1`, equipmentID); err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	WriteJSON(w, http.StatusCreated, row.toDTO())
}

func (s *Server) UpdateEquipment(w http.ResponseWriter, r *http.Request) {
	equipmentID := chi.URLParam(r, "equipmentId")
	var req EquipmentUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	var exists bool
	_ = s.DB.Get(&exists, `SELECT EXISTS(SELECT 1 FROM equipment WHERE id = $1)`, equipmentID)
	if !exists {
		WriteError(w, http.StatusNotFound, "Equipment not found")
		return
	}
	if req.Status != nil && !services.OneOf(strings.TrimSpace(*req.Status), services.EquipmentStatuses) {
		WriteError(w, http.StatusBadRequest, "status must be Stocked or Rented")
		return
	}
	if req.Condition != nil && !services.OneOf(strings.TrimSpace(*req.Condition), services.EquipmentConditions) {
		WriteError(w, http.StatusBadRequest, "condition must be one of: "+strings.Join(services.EquipmentConditions, ", "))
		return
	}
	dates, err := parseEquipmentDates(req.PurchaseDate, req.LastMaintenanceDate, req.RentalStart, req.RentalEnd)
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	_, err = s.DB.Exec(`
UPDATE equipment
SET name = COALESCE($2, name),
    type = COALESCE($3, type),
    status = COALESCE($4, status),
    condition = COALESCE($5, condition),
    location = COALESCE($6, location),
    purchase_date = COALESCE($7, purchase_date),
    last_maintenance_date = COALESCE($8, last_maintenance_date),
    rental_start = COALESCE($9, rental_start),
    rental_end = COALESCE($10, rental_end),
    vendor = COALESCE($11, vendor),
    rental_cost = COALESCE($12, rental_cost),
    updated_at = $13
WHERE id = $1
`, equipmentID, trimPtr(req.Name), trimPtr(req.Type), trimPtr(req.Status), trimPtr(req.Condition), trimPtr(req.Location),
		dates[0], dates[1], dates[2], dates[3], trimPtr(req.Vendor), req.RentalCost, time.Now().UTC())
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	row := equipmentRow{}
	if err := s.DB.Get(&row, equipmentSelect+` WHERE id = $1`, equipmentID); err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	WriteJSON(w, http.StatusOK, row.toDTO())
}

func (s *Server) DeleteEquipment(w http.ResponseWriter, r *http.Request) {
	equipmentID := chi.URLParam(r, "equipmentId")
	result, err := s.DB.Exec(`DELETE FROM equipment WHERE id = $1`, equipmentID)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		WriteError(w, http.StatusNotFound, "Equipment not found")
		return
	}
	WriteMessage(w, http.StatusOK, "Equipment deleted")
}

func parseEquipmentDates(raws ...*string) ([]*time.Time, error) {
	names := []string{"purchaseDate", "lastMaintenanceDate", "rentalStart", "rentalEnd"}
	dates := make([]*time.Time, len(raws))
	for i, raw := range raws {
		parsed, err := parseDatePtr(raw)
		if err != nil {
			return nil, services.ErrBadRequest(names[i] + " must be YYYY-MM-DD")
		}
		dates[i] = parsed
	}
	return dates, nil
}

const equipmentSelect = `
SELECT id, name, type, status, condition, location, purchase_date, last_maintenance_date, rental_start, rental_end, vendor, rental_cost, created_at, updated_at
FROM equipment`

type equipmentRow struct {
	ID                  string     `db:"id"`
	Name                string     `db:"name"`
	Type                string     `db:"type"`
	Status              string     `db:"status"`
	Condition           string     `db:"condition"`
	Location            *string    `db:"location"`
	PurchaseDate        *time.Time `db:"purchase_date"`
	LastMaintenanceDate *time.Time `db:"last_maintenance_date"`
	RentalStart         *time.Time `db:"rental_start"`
	RentalEnd           *time.Time `db:"rental_end"`
	Vendor              *string    `db:"vendor"`
	RentalCost          *float64   `db:"rental_cost"`
	CreatedAt           time.Time  `db:"created_at"`
	UpdatedAt           time.Time  `db:"updated_at"`
}

func (row equipmentRow) toDTO() EquipmentDTO {
	return EquipmentDTO{
		ID:                  row.ID,
		Name:                row.Name,
		Type:                row.Type,
		Status:              row.Status,
		Condition:           row.Condition,
		Location:            row.Location,
		PurchaseDate:        formatDate(row.PurchaseDate),
		LastMaintenanceDate: formatDate(row.LastMaintenanceDate),
		RentalStart:         formatDate(row.RentalStart),
		RentalEnd:           formatDate(row.RentalEnd),
		Vendor:              row.Vendor,
		RentalCost:          row.RentalCost,
		CreatedAt:           row.CreatedAt,
		UpdatedAt:           row.UpdatedAt,
	}
}
