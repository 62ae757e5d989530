package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"buildtrack-backend-go/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type ExpenseDTO struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Amount        float64   `json:"amount"`
	Category      string    `json:"category"`
	ExpenseDate   string    `json:"date"`
	PaymentMethod string    `json:"paymentMethod"`
	ProjectID     *string   `json:"projectId,omitempty"`
	Description   *string   `json:"description,omitempty"`
	Receipt       *string   `json:"receipt,omitempty"`
	ReceiptURL    *string   `json:"receiptUrl,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

type PagedExpensesResponse struct {
	Items       []ExpenseDTO `json:"items"`
	TotalCount  int          `json:"totalCount"`
	CurrentPage int          `json:"currentPage"`
	TotalPages  int          `json:"totalPages"`
}

type ExpenseSummaryRow struct {
	Category    string  `json:"category"`
	TotalAmount float64 `json:"totalAmount"`
	Count       int     `json:"count"`
}

type ExpenseSummaryResponse struct {
	Items []ExpenseSummaryRow `json:"items"`
	Total float64             `json:"total"`
}

// expenseInput carries the fields common to create and update. On update nil
// pointers leave the stored value untouched.
type expenseInput struct {
	Title         *string
	Amount        *float64
	Category      *string
	ExpenseDate   *time.Time
	PaymentMethod *string
	ProjectID     *string
	Description   *string
}

type expenseJSONBody struct {
	Title         *string  `json:"title"`
	Amount        *float64 `json:"amount"`
	Category      *string  `json:"category"`
	Date          *string  `json:"date"`
	PaymentMethod *string  `json:"paymentMethod"`
	ProjectID     *string  `json:"projectId"`
	Description   *string  `json:"description"`
}

func (s *Server) ListExpenses(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	where, args, err := buildExpenseFilter(query.Get("category"), query.Get("startDate"), query.Get("endDate"), query.Get("projectId"))
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	page := parseInt(query.Get("page"), 1)
	limit := parseInt(query.Get("limit"), 10)
	if limit > 100 {
		limit = 100
	}
	var total int
	if err := s.DB.Get(&total, `SELECT count(*) FROM expenses `+where, args...); err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	listQuery := fmt.Sprintf(expenseSelect+`
%s
ORDER BY expense_date DESC, created_at DESC
LIMIT $%d OFFSET $%d`, where, len(args)+1, len(args)+2)
	args = append(args, limit, (page-1)*limit)
	rows := []expenseRow{}
	if err := s.DB.Select(&rows, listQuery, args...); err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	items := make([]ExpenseDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toDTO())
	}
	WriteJSON(w, http.StatusOK, PagedExpensesResponse{
		Items:       items,
		TotalCount:  total,
		CurrentPage: page,
		TotalPages:  totalPages(total, limit),
	})
}

func (s *Server) ExpenseSummary(w http.ResponseWriter, r *http.Request) {
	rows := []struct {
		Category    string  `db:"category"`
		TotalAmount float64 `db:"total_amount"`
		Count       int     `db:"count"`
	}{}
	if err := s.DB.Select(&rows, `
SELECT category, SUM(amount) AS total_amount, COUNT(*) AS count
FROM expenses
GROUP BY category
ORDER BY total_amount DESC
`); err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	items := make([]ExpenseSummaryRow, 0, len(rows))
	total := 0.0
	for _, row := range rows {
		items = append(items, ExpenseSummaryRow{Category: row.Category, TotalAmount: row.TotalAmount, Count: row.Count})
		total += row.TotalAmount
	}
	WriteJSON(w, http.StatusOK, ExpenseSummaryResponse{Items: items, Total: total})
}

func (s *Server) CreateExpense(w http.ResponseWriter, r *http.Request) {
	input, receipt, err := s.readExpenseRequest(w, r)
	if err != nil {
		return
	}
	if input.Title == nil || input.Amount == nil || input.Category == nil || input.ExpenseDate == nil || input.PaymentMethod == nil {
		WriteError(w, http.StatusBadRequest, "title, amount, category, date and paymentMethod are required")
		return
	}
	if !s.validateExpenseInput(w, input) {
		return
	}
	expenseID := uuid.NewString()
	now := time.Now().UTC()
	_, err = s.DB.Exec(`
INSERT INTO expenses (id, title, amount, category, expense_date, payment_method, project_id, description, receipt, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$10)
`, expenseID, *input.Title, *input.Amount, *input.Category, *input.ExpenseDate, *input.PaymentMethod, input.ProjectID, input.Description, receipt, now)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	row := expenseRow{}
	if err := s.DB.Get(&row, expenseSelect+` WHERE id = $1`, expenseID); err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	WriteJSON(w, http.StatusCreated, row.toDTO())
}

func (s *Server) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	expenseID := chi.URLParam(r, "expenseId")
	var exists bool
	_ = s.DB.Get(&exists, `SELECT EXISTS(SELECT 1 FROM expenses WHERE id = $1)`, expenseID)
	if !exists {
		WriteError(w, http.StatusNotFound, "Expense not found")
		return
	}
	input, receipt, err := s.readExpenseRequest(w, r)
	if err != nil {
		return
	}
	if !s.validateExpenseInput(w, input) {
		return
	}
	_, err = s.DB.Exec(`
UPDATE expenses
SET title = COALESCE($2, title),
    amount = COALESCE($3, amount),
    category = COALESCE($4, category),
    expense_date = COALESCE($5, expense_date),
    payment_method = COALESCE($6, payment_method),
    project_id = COALESCE($7, project_id),
    description = COALESCE($8, description),
    receipt = COALESCE($9, receipt),
    updated_at = $10
WHERE id = $1
`, expenseID, input.Title, input.Amount, input.Category, input.ExpenseDate, input.PaymentMethod, input.ProjectID, input.Description, receipt, time.Now().UTC())
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	row := expenseRow{}
	if err := s.DB.Get(&row, expenseSelect+` WHERE id = $1`, expenseID); err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	WriteJSON(w, http.StatusOK, row.toDTO())
}

func (s *Server) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	expenseID := chi.URLParam(r, "expenseId")
	// The receipt file is left on disk; only the row goes away.
	result, err := s.DB.Exec(`DELETE FROM expenses WHERE id = $1`, expenseID)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		WriteError(w, http.StatusNotFound, "Expense not found")
		return
	}
	WriteMessage(w, http.StatusOK, "Expense deleted")
}

// readExpenseRequest decodes either a multipart form (with optional receipt
// file) or a JSON body. On error it has already written the response and
// returns a non-nil error purely as a signal.
func (s *Server) readExpenseRequest(w http.ResponseWriter, r *http.Request) (expenseInput, *string, error) {
	input := expenseInput{}
	var storedName *string
	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		if err := r.ParseMultipartForm(20 << 20); err != nil {
			WriteError(w, http.StatusBadRequest, "Invalid multipart payload")
			return input, nil, err
		}
		formValue := func(name string) *string {
			values, ok := r.MultipartForm.Value[name]
			if !ok || len(values) == 0 {
				return nil
			}
			value := strings.TrimSpace(values[0])
			if value == "" {
				return nil
			}
			return &value
		}
		input.Title = formValue("title")
		input.Category = formValue("category")
		input.PaymentMethod = formValue("paymentMethod")
		input.ProjectID = formValue("projectId")
		input.Description = formValue("description")
		if raw := formValue("amount"); raw != nil {
			amount, err := strconv.ParseFloat(*raw, 64)
			if err != nil {
				WriteError(w, http.StatusBadRequest, "amount must be a number")
				return input, nil, err
			}
			input.Amount = &amount
		}
		if raw := formValue("date"); raw != nil {
			parsed, err := parseDate(*raw)
			if err != nil {
				WriteError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
				return input, nil, err
			}
			input.ExpenseDate = parsed
		}
		if file, header, err := r.FormFile("receipt"); err == nil {
			defer file.Close()
			name := services.ReceiptFilename("receipt", header.Filename)
			if err := services.SaveUpload(s.Config.UploadStoragePath, name, file); err != nil {
				if serr, ok := err.(services.ServiceError); ok {
					WriteError(w, serr.Status, serr.Message)
				} else {
					WriteError(w, http.StatusInternalServerError, "Internal server error")
				}
				return input, nil, err
			}
			storedName = &name
		}
		return input, storedName, nil
	}
	var body expenseJSONBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return input, nil, err
	}
	input.Title = trimPtr(body.Title)
	input.Amount = body.Amount
	input.Category = trimPtr(body.Category)
	input.PaymentMethod = trimPtr(body.PaymentMethod)
	input.ProjectID = trimPtr(body.ProjectID)
	input.Description = trimPtr(body.Description)
	if body.Date != nil {
		parsed, err := parseDatePtr(body.Date)
		if err != nil {
			WriteError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
			return input, nil, err
		}
		input.ExpenseDate = parsed
	}
	return input, nil, nil
}

// validateExpenseInput checks enums, the positive-amount rule and the soft
// project reference. It writes the error response itself and reports success.
func (s *Server) validateExpenseInput(w http.ResponseWriter, input expenseInput) bool {
	if input.Amount != nil && *input.Amount <= 0 {
		WriteError(w, http.StatusBadRequest, "amount must be greater than zero")
		return false
	}
	if input.Category != nil && !services.OneOf(*input.Category, services.ExpenseCategories) {
		WriteError(w, http.StatusBadRequest, "category must be one of: "+strings.Join(services.ExpenseCategories, ", "))
		return false
	}
	if input.PaymentMethod != nil && !services.OneOf(*input.PaymentMethod, services.PaymentMethods) {
		WriteError(w, http.StatusBadRequest, "paymentMethod must be one of: "+strings.Join(services.PaymentMethods, ", "))
		return false
	}
	if input.ProjectID != nil {
		var exists bool
		_ = s.DB.Get(&exists, `SELECT EXISTS(SELECT 1 FROM projects WHERE id = $1)`, *input.ProjectID)
		if !exists {
			WriteError(w, http.StatusBadRequest, "projectId does not reference an existing project")
			return false
		}
	}
	return true
}

// buildExpenseFilter turns list query parameters into a WHERE clause. The
// date range is inclusive on both ends.
func buildExpenseFilter(category, startDate, endDate, projectID string) (string, []interface{}, error) {
	clauses := []string{}
	args := []interface{}{}
	if category = strings.TrimSpace(category); category != "" {
		if !services.OneOf(category, services.ExpenseCategories) {
			return "", nil, services.ErrBadRequest("category must be one of: " + strings.Join(services.ExpenseCategories, ", "))
		}
		args = append(args, category)
		clauses = append(clauses, fmt.Sprintf("category = $%d", len(args)))
	}
	if start, err := parseDate(startDate); err != nil {
		return "", nil, services.ErrBadRequest("startDate must be YYYY-MM-DD")
	} else if start != nil {
		args = append(args, *start)
		clauses = append(clauses, fmt.Sprintf("expense_date >= $%d", len(args)))
	}
	if end, err := parseDate(endDate); err != nil {
		return "", nil, services.ErrBadRequest("endDate must be YYYY-MM-DD")
	} else if end != nil {
		args = append(args, *end)
		clauses = append(clauses, fmt.Sprintf("expense_date <= $%d", len(args)))
	}
	if projectID = strings.TrimSpace(projectID); projectID != "" {
		args = append(args, projectID)
		clauses = append(clauses, fmt.Sprintf("project_id = $%d", len(args)))
	}
	if len(clauses) == 0 {
		return "", args, nil
	}
	return "WHERE " + strings.Join(clauses, " AND "), args, nil
}

const expenseSelect = `
SELECT id, title, amount, category, expense_date, payment_method, project_id, description, receipt, created_at, updated_at
FROM expenses`

type expenseRow struct {
	ID            string    `db:"id"`
	Title         string    `db:"title"`
	Amount        float64   `db:"amount"`
	Category      string    `db:"category"`
	ExpenseDate   time.Time `db:"expense_date"`
	PaymentMethod string    `db:"payment_method"`
	ProjectID     *string   `db:"project_id"`
	Description   *string   `db:"description"`
	Receipt       *string   `db:"receipt"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

func (row expenseRow) toDTO() ExpenseDTO {
	var receiptURL *string
	if row.Receipt != nil {
		url := services.UploadURL(*row.Receipt)
		receiptURL = &url
	}
	return ExpenseDTO{
		ID:            row.ID,
		Title:         row.Title,
		Amount:        row.Amount,
		Category:      row.Category,
		ExpenseDate:   row.ExpenseDate.Format("2006-01-02"),
		PaymentMethod: row.PaymentMethod,
		ProjectID:     row.ProjectID,
		Description:   row.Description,
		Receipt:       row.Receipt,
		ReceiptURL:    receiptURL,
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
	}
}
