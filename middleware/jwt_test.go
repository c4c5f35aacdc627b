package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
)

// The signing key must be read when a token is generated, not at
// package init: the .env file is only loaded at startup, after this
// package initializes.
func TestGenerateTokenUsesRuntimeSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "runtime-secret")

	token, err := GenerateToken("user-1", "admin", "Administrator", "admin@example.com")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte("runtime-secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token does not verify against the runtime secret: %v", err)
	}
	if claims.UserID != "user-1" || claims.Role != "admin" {
		t.Errorf("claims = %q/%q, expected user-1/admin", claims.UserID, claims.Role)
	}
}

func TestJWTMiddlewareRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "runtime-secret")

	token, err := GenerateToken("user-1", "supervisor", "S", "s@example.com")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	var gotRole, gotUserID string
	handler := JWTMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotRole = GetRole(r)
		gotUserID = GetUserID(r)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/shipments", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, expected %d", rec.Code, http.StatusOK)
	}
	if gotRole != "supervisor" || gotUserID != "user-1" {
		t.Errorf("claims in context = %q/%q, expected supervisor/user-1", gotRole, gotUserID)
	}
}

func TestJWTMiddlewareRejectsBadTokens(t *testing.T) {
	t.Setenv("JWT_SECRET", "runtime-secret")

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler must not run")
	})

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic abc"},
		{"garbage token", "Bearer not.a.token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/shipments", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			JWTMiddleware(next).ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, expected %d", rec.Code, http.StatusUnauthorized)
			}
		})
	}
}
