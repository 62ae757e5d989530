package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"buildtrack-backend-go/internal/services"

	"github.com/alicebob/miniredis/v2"
)

func testTokens() services.TokenService {
	return services.TokenService{
		Secret:    []byte("test-secret"),
		Issuer:    "buildtrack",
		AccessTTL: time.Hour,
		ResetTTL:  15 * time.Minute,
	}
}

func protectedEcho(tokens services.TokenService, revoked *services.RevocationSet) http.Handler {
	return WithAuth(tokens, revoked)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, http.StatusOK, map[string]string{
			"userId": CurrentUserID(r),
			"email":  CurrentEmail(r),
			"role":   CurrentRole(r),
			"jti":    CurrentJTI(r),
		})
	}))
}

func TestWithAuthMissingToken(t *testing.T) {
	handler := protectedEcho(testTokens(), nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", rec.Code)
	}
	var body ErrorResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	if body.Message != "Authentication required" {
		t.Fatalf("message = %q", body.Message)
	}
}

func TestWithAuthGarbageToken(t *testing.T) {
	handler := protectedEcho(testTokens(), nil)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestWithAuthRejectsResetToken(t *testing.T) {
	tokens := testTokens()
	reset, err := tokens.CreateResetToken("ana@example.com")
	if err != nil {
		t.Fatalf("reset token: %v", err)
	}
	handler := protectedEcho(tokens, nil)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+reset)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("reset token passed auth, status = %d", rec.Code)
	}
}

func TestWithAuthRejectsExpiredToken(t *testing.T) {
	tokens := testTokens()
	tokens.AccessTTL = -time.Minute
	signed, _, _, err := tokens.CreateAccessToken("user-1", "ana@example.com", "GENERAL")
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	handler := protectedEcho(testTokens(), nil)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expired token passed auth, status = %d", rec.Code)
	}
}

func TestWithAuthRejectsRevokedToken(t *testing.T) {
	redis := miniredis.RunT(t)
	revoked := services.NewRevocationSet(redis.Addr(), "")
	tokens := testTokens()
	signed, jti, exp, err := tokens.CreateAccessToken("user-1", "ana@example.com", "GENERAL")
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	if err := revoked.Revoke(jti, time.Unix(exp, 0)); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	handler := protectedEcho(tokens, revoked)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("revoked token passed auth, status = %d", rec.Code)
	}
}

func TestWithAuthAcceptsBearerToken(t *testing.T) {
	tokens := testTokens()
	signed, jti, _, err := tokens.CreateAccessToken("user-1", "ana@example.com", "ADMIN")
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	handler := protectedEcho(tokens, nil)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var body map[string]string
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	if body["userId"] != "user-1" || body["email"] != "ana@example.com" || body["role"] != "ADMIN" || body["jti"] != jti {
		t.Fatalf("context identity wrong: %v", body)
	}
}

func TestWithAuthAcceptsCookieToken(t *testing.T) {
	tokens := testTokens()
	signed, _, _, err := tokens.CreateAccessToken("user-2", "dan@example.com", "GENERAL")
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	handler := protectedEcho(tokens, nil)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: TokenCookieName, Value: signed})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestRequireRole(t *testing.T) {
	tokens := testTokens()
	adminOnly := func(role string) int {
		signed, _, _, err := tokens.CreateAccessToken("user-1", "ana@example.com", role)
		if err != nil {
			t.Fatalf("token: %v", err)
		}
		handler := WithAuth(tokens, nil)(RequireRole("ADMIN")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		})))
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+signed)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}
	if code := adminOnly("GENERAL"); code != http.StatusForbidden {
		t.Fatalf("general role got %d", code)
	}
	if code := adminOnly("ADMIN"); code != http.StatusNoContent {
		t.Fatalf("admin role got %d", code)
	}
}
