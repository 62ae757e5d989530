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

type PurchaseDTO struct {
	ID           string    `json:"id"`
	ProjectCode  string    `json:"projectCode"`
	MaterialType string    `json:"materialType"`
	Quantity     float64   `json:"quantity"`
	Unit         string    `json:"unit"`
	Price        float64   `json:"price"`
	Description  *string   `json:"description,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type PurchaseCreateRequest struct {
	ProjectCode  string  `json:"projectCode"`
	MaterialType string  `json:"materialType"`
	Quantity     float64 `json:"quantity"`
	Unit         string  `json:"unit"`
	Price        float64 `json:"price"`
	Description  *string `json:"description"`
}

func (s *Server) ListPurchases(w http.ResponseWriter, r *http.Request) {
	rows := []purchaseRow{}
	if err := s.DB.Select(&rows, purchaseSelect+` ORDER BY created_at DESC`); err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	items := make([]PurchaseDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toDTO())
	}
	WriteJSON(w, http.StatusOK, map[string][]PurchaseDTO{"items": items})
}

func (s *Server) CreatePurchase(w http.ResponseWriter, r *http.Request) {
	var req PurchaseCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	projectCode := strings.TrimSpace(req.ProjectCode)
	materialType := strings.TrimSpace(req.MaterialType)
	unit := strings.TrimSpace(req.Unit)
	if projectCode == "" || materialType == "" {
		WriteError(w, http.StatusBadRequest, "projectCode and materialType are required")
		return
	}
	if !services.OneOf(unit, services.PurchaseUnits) {
		WriteError(w, http.StatusBadRequest, "unit must be one of: "+strings.Join(services.PurchaseUnits, ", "))
		return
	}
	if req.Quantity <= 0 {
		WriteError(w, http.StatusBadRequest, "quantity must be greater than zero")
		return
	}
	if req.Price < 0 {
		WriteError(w, http.StatusBadRequest, "price must not be negative")
		return
	}
	purchaseID := uuid.NewString()
	now := time.Now().UTC()
	_, err := s.DB.Exec(`
INSERT INTO purchases (id, project_code, material_type, quantity, unit, price, description, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$8)
`, purchaseID, projectCode, materialType, req.Quantity, unit, req.Price, trimPtr(req.Description), now)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	row := purchaseRow{}
	if err := s.DB.Get(&row, purchaseSelect+` WHERE id = $1`, purchaseID); err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	WriteJSON(w, http.StatusCreated, row.toDTO())
}

func (s *Server) DeletePurchase(w http.ResponseWriter, r *http.Request) {
	purchaseID := chi.URLParam(r, "purchaseId")
	result, err := s.DB.Exec(`DELETE FROM purchases WHERE id = $1`, purchaseID)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		WriteError(w, http.StatusNotFound, "Purchase not found")
		return
	}
	WriteMessage(w, http.StatusOK, "Purchase deleted")
}

const purchaseSelect = `
SELECT id, project_code, material_type, quantity, unit, price, description, created_at, updated_at
FROM purchases`

type purchaseRow struct {
	ID           string    `db:"id"`
	ProjectCode  string    `db:"project_code"`
	MaterialType string    `db:"material_type"`
	Quantity     float64   `db:"quantity"`
	Unit         string    `db:"unit"`
	Price        float64   `db:"price"`
	Description  *string   `db:"description"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

func (row purchaseRow) toDTO() PurchaseDTO {
	return PurchaseDTO{
		ID:           row.ID,
		ProjectCode:  row.ProjectCode,
		MaterialType: row.MaterialType,
		Quantity:     row.Quantity,
		Unit:         row.Unit,
		Price:        row.Price,
		Description:  row.Description,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
}
