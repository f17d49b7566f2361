package middlewares

import (
	"net/http"
	"net/http/httptest"
	"praktis-service/internal/app/config"
	"praktis-service/internal/pkg/constvars"
	"praktis-service/internal/pkg/utils"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// The config carries a bcrypt hash of the superadmin key.
func newTestMiddlewares(t *testing.T, apiKey string) *Middlewares {
	t.Helper()
	hash, err := utils.HashPassword(apiKey)
	if err != nil {
		t.Fatalf("hashing test API key: %v", err)
	}
	return &Middlewares{
		Log: zap.NewNop(),
		InternalConfig: &config.InternalConfig{
			App: config.App{
				SuperadminAPIKey: hash,
			},
		},
	}
}

func TestAPIKeyAuth(t *testing.T) {
	testAPIKey := "test-superadmin-api-key-12345"
	middlewares := newTestMiddlewares(t, testAPIKey)

	okHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("success"))
	})

	t.Run("No API Key - Should Pass Through", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/v1/practitioners/prac-1/slots", nil)

		rr := httptest.NewRecorder()
		handler := middlewares.APIKeyAuth(okHandler)
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code, "should return 200 OK when no API key provided (optional middleware)")
		assert.Equal(t, "success", rr.Body.String())
	})

	t.Run("Valid API Key - Should Pass", func(t *testing.T) {
		req := httptest.NewRequest("PUT", "/api/v1/practitioners/prac-1/settings/policy", nil)
		req.Header.Set(constvars.HeaderXAPIKey, testAPIKey)

		rr := httptest.NewRecorder()
		handler := middlewares.APIKeyAuth(okHandler)
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code, "should return 200 OK for valid API key")
	})

	t.Run("Invalid API Key - Should Fail", func(t *testing.T) {
		req := httptest.NewRequest("PUT", "/api/v1/practitioners/prac-1/settings/policy", nil)
		req.Header.Set(constvars.HeaderXAPIKey, "invalid-api-key")

		rr := httptest.NewRecorder()
		handler := middlewares.APIKeyAuth(okHandler)
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code, "should return 401 Unauthorized for invalid API key")
	})

	t.Run("Whitespace in API Key - Should Fail", func(t *testing.T) {
		req := httptest.NewRequest("PUT", "/api/v1/practitioners/prac-1/settings/policy", nil)
		req.Header.Set(constvars.HeaderXAPIKey, " "+testAPIKey+" ")

		rr := httptest.NewRecorder()
		handler := middlewares.APIKeyAuth(okHandler)
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("Context Session Set Correctly", func(t *testing.T) {
		req := httptest.NewRequest("PUT", "/api/v1/practitioners/prac-1/settings/policy", nil)
		req.Header.Set(constvars.HeaderXAPIKey, testAPIKey)

		var capturedRole string
		var capturedOK bool
		testHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, ok := SessionFromContext(r.Context())
			capturedOK = ok
			if ok {
				capturedRole = session.Role
			}
			w.WriteHeader(http.StatusOK)
		})

		rr := httptest.NewRecorder()
		handler := middlewares.APIKeyAuth(testHandler)
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.True(t, capturedOK, "session should be set in context")
		assert.Equal(t, constvars.PraktisRoleSuperadmin, capturedRole, "role should be superadmin")
	})
}

func TestRequireRoles(t *testing.T) {
	middlewares := newTestMiddlewares(t, "superadmin-key")

	okHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("Matching Role - Should Pass", func(t *testing.T) {
		req := httptest.NewRequest("PUT", "/api/v1/practitioners/prac-1/settings/template", nil)
		req.Header.Set(constvars.HeaderXAPIKey, "superadmin-key")

		rr := httptest.NewRecorder()
		handler := middlewares.APIKeyAuth(middlewares.RequireRoles(constvars.PraktisRoleSuperadmin)(okHandler))
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code, "superadmin should pass a superadmin role check")
	})

	t.Run("Wrong Role - Should Fail", func(t *testing.T) {
		req := httptest.NewRequest("PUT", "/api/v1/practitioners/prac-1/settings/template", nil)
		req.Header.Set(constvars.HeaderXAPIKey, "superadmin-key")

		rr := httptest.NewRecorder()
		handler := middlewares.APIKeyAuth(middlewares.RequireRoles(constvars.PraktisRolePatient)(okHandler))
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusForbidden, rr.Code, "superadmin session should not pass a patient-only check")
	})

	t.Run("No Session - Should Fail", func(t *testing.T) {
		req := httptest.NewRequest("PUT", "/api/v1/practitioners/prac-1/settings/template", nil)

		rr := httptest.NewRecorder()
		handler := middlewares.RequireRoles(constvars.PraktisRolePractitioner)(okHandler)
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code, "missing session should return 401")
	})
}
