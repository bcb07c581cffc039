package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Saikat257-ui/Smart-File-Organizer/internal/domain/models"
	"github.com/Saikat257-ui/Smart-File-Organizer/internal/httputil"
)

type fakeVerifier struct {
	claims *models.SupabaseClaims
	err    error
}

func (v *fakeVerifier) VerifyToken(tokenString string) (*models.SupabaseClaims, error) {
	if v.err != nil {
		return nil, v.err
	}
	return v.claims, nil
}

func (v *fakeVerifier) Close() error { return nil }

func TestAuthMiddleware(t *testing.T) {
	claims := &models.SupabaseClaims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "user-123"},
		Role:             "authenticated",
	}

	tests := []struct {
		name       string
		path       string
		header     string
		verifier   *fakeVerifier
		wantStatus int
		wantUserID string
	}{
		{
			name:       "valid token",
			path:       "/api/files",
			header:     "Bearer good-token",
			verifier:   &fakeVerifier{claims: claims},
			wantStatus: http.StatusOK,
			wantUserID: "user-123",
		},
		{
			name:       "missing header",
			path:       "/api/files",
			verifier:   &fakeVerifier{claims: claims},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "wrong scheme",
			path:       "/api/files",
			header:     "Basic dXNlcjpwYXNz",
			verifier:   &fakeVerifier{claims: claims},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "empty bearer token",
			path:       "/api/files",
			header:     "Bearer ",
			verifier:   &fakeVerifier{claims: claims},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "rejected token",
			path:       "/api/files",
			header:     "Bearer expired",
			verifier:   &fakeVerifier{err: errors.New("token expired")},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "health is public",
			path:       "/health",
			verifier:   &fakeVerifier{err: errors.New("should not be called")},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotUserID string
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotUserID = httputil.GetUserID(r)
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			AuthMiddleware(tt.verifier)(next).ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantUserID != "" && gotUserID != tt.wantUserID {
				t.Errorf("user id = %q, want %q", gotUserID, tt.wantUserID)
			}

			if tt.wantStatus == http.StatusUnauthorized {
				var body struct {
					Error string `json:"error"`
				}
				if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
					t.Fatalf("unmarshal error body: %v", err)
				}
				if body.Error == "" {
					t.Error("error body is empty")
				}
			}
		})
	}
}
