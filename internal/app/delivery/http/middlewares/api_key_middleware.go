package middlewares

import (
	"context"
	"net/http"
	"praktis-service/internal/app/models"
	"praktis-service/internal/pkg/constvars"
	"praktis-service/internal/pkg/exceptions"
	"praktis-service/internal/pkg/utils"

	"go.uber.org/zap"
)

// APIKeyAuth lets internal tooling authenticate with the superadmin API key
// instead of a user session. Requests without the header fall through to the
// regular Bearer-token flow. The config carries a bcrypt hash of the key, not
// the key itself.
func (m *Middlewares) APIKeyAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apiKey := r.Header.Get(constvars.HeaderXAPIKey)

		if apiKey == "" {
			next.ServeHTTP(w, r)
			return
		}

		if !utils.CheckPasswordHash(apiKey, m.InternalConfig.App.SuperadminAPIKey) {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrInvalidAPIKey(nil))
			return
		}

		session := &models.Session{
			SessionID: "api-key-superadmin",
			UserID:    "api-key-superadmin",
			Role:      constvars.PraktisRoleSuperadmin,
		}
		ctx := context.WithValue(r.Context(), constvars.CONTEXT_SESSION_DATA_KEY, session)

		m.Log.Info("API key authentication successful",
			zap.String("ip", r.RemoteAddr),
			zap.String(constvars.LoggingEndpointKey, r.URL.Path),
			zap.String(constvars.LoggingMethodKey, r.Method),
			zap.String(constvars.LoggingUserAgentKey, r.UserAgent()))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
