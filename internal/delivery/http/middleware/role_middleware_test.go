package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"clinic-backend/internal/delivery/http/middleware"
	"clinic-backend/internal/domain/entity"

	"github.com/stretchr/testify/assert"
)

func roleRequest(roleID int) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	if roleID > 0 {
		r = r.WithContext(context.WithValue(r.Context(), middleware.RoleIDKey, roleID))
	}
	return r
}

func TestRequireRole(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name    string
		gate    func(http.Handler) http.Handler
		roleID  int
		status  int
	}{
		{"patient allowed", middleware.RequirePatient, entity.RoleIDPatient, http.StatusOK},
		{"provider refused by patient gate", middleware.RequirePatient, entity.RoleIDProvider, http.StatusForbidden},
		{"provider allowed", middleware.RequireProvider, entity.RoleIDProvider, http.StatusOK},
		{"admin allowed", middleware.RequireAdmin, entity.RoleIDAdmin, http.StatusOK},
		{"patient refused by admin gate", middleware.RequireAdmin, entity.RoleIDPatient, http.StatusForbidden},
		{"missing role", middleware.RequirePatient, 0, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			tt.gate(next).ServeHTTP(rec, roleRequest(tt.roleID))
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
