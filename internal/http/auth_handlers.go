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

type SignupRequest struct {
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Address   *string `json:"address"`
	BirthDate *string `json:"birthDate"`
	Gender    *string `json:"gender"`
	Email     string  `json:"email"`
	Password  string  `json:"password"`
}

type SigninRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SigninResponse struct {
	Token string      `json:"token"`
	User  UserSummary `json:"user"`
}

type UserSummary struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

type ResetPasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

func (s *Server) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
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
	birthDate, err := parseDatePtr(req.BirthDate)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "birthDate must be YYYY-MM-DD")
		return
	}
	var exists bool
	if err := s.DB.Get(&exists, `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email); err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
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
	// Role is always GENERAL at signup; admins are promoted via user management.
	_, err = s.DB.Exec(`
INSERT INTO users (id, first_name, last_name, address, birth_date, gender, email, password_hash, role, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,'GENERAL',$9,$9)
`, userID, firstName, lastName, trimPtr(req.Address), birthDate, trimPtr(req.Gender), email, hash, now)
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

func (s *Server) Signin(w http.ResponseWriter, r *http.Request) {
	var req SigninRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || strings.TrimSpace(req.Password) == "" {
		WriteError(w, http.StatusBadRequest, "Email and password are required")
		return
	}
	row := struct {
		ID           string `db:"id"`
		FirstName    string `db:"first_name"`
		LastName     string `db:"last_name"`
		PasswordHash string `db:"password_hash"`
		Role         string `db:"role"`
	}{}
	if err := s.DB.Get(&row, `SELECT id, first_name, last_name, password_hash, role FROM users WHERE email = $1`, email); err != nil {
		WriteError(w, http.StatusUnauthorized, "Authentication failed")
		return
	}
	if !s.Tokens.VerifyPassword(req.Password, row.PasswordHash) {
		WriteError(w, http.StatusUnauthorized, "Authentication failed")
		return
	}
	token, _, exp, err := s.Tokens.CreateAccessToken(row.ID, email, row.Role)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     TokenCookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Unix(exp, 0),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	WriteJSON(w, http.StatusOK, SigninResponse{
		Token: token,
		User: UserSummary{
			ID:    row.ID,
			Email: email,
			Name:  row.FirstName + " " + row.LastName,
			Role:  row.Role,
		},
	})
}

func (s *Server) Logout(w http.ResponseWriter, r *http.Request) {
	// Re-parse the presented token for its expiry so the revocation entry
	// lives exactly as long as the token would have.
	if tokenStr := extractToken(r); tokenStr != "" {
		if token, claims, err := s.Tokens.ParseToken(tokenStr); err == nil && token.Valid {
			jti, _ := claims["jti"].(string)
			if expiry, err := claims.GetExpirationTime(); err == nil && expiry != nil {
				if err := s.Revoked.Revoke(jti, expiry.Time); err != nil {
					log.Printf("revoke token: %v", err)
				}
			}
		}
	}
	http.SetCookie(w, &http.Cookie{
		Name:     TokenCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	WriteMessage(w, http.StatusOK, "Signed out")
}

func (s *Server) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req ForgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		WriteError(w, http.StatusBadRequest, "Email is required")
		return
	}
	var exists bool
	_ = s.DB.Get(&exists, `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email)
	if exists && s.Mailer.Enabled() {
		token, err := s.Tokens.CreateResetToken(email)
		if err == nil {
			subject, body := services.BuildResetEmail(s.Config.ResetURLBase, token)
			if err := s.Mailer.Send(email, subject, body); err != nil {
				log.Printf("reset mail to %s: %v", email, err)
			}
		}
	}
	// Same response whether or not the account exists.
	WriteMessage(w, http.StatusOK, "If the account exists, a reset link has been sent")
}

func (s *Server) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	if strings.TrimSpace(req.Token) == "" || strings.TrimSpace(req.Password) == "" {
		WriteError(w, http.StatusBadRequest, "Token and password are required")
		return
	}
	token, claims, err := s.Tokens.ParseToken(req.Token)
	if err != nil || !token.Valid || claims["typ"] != "reset" {
		WriteError(w, http.StatusUnauthorized, "Reset link is invalid or has expired")
		return
	}
	email, _ := claims["email"].(string)
	var userID string
	if err := s.DB.Get(&userID, `SELECT id FROM users WHERE email = $1`, email); err != nil {
		WriteError(w, http.StatusNotFound, "User not found")
		return
	}
	hash, err := s.Tokens.HashPassword(req.Password)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if _, err := s.DB.Exec(`UPDATE users SET password_hash = $1, updated_at = $2 WHERE id = $3`, hash, time.Now().UTC(), userID); err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	WriteMessage(w, http.StatusOK, "Password updated")
}
