package middlewares

import (
	"context"
	"errors"
	"net/http"
	"praktis-service/internal/app/models"
	"praktis-service/internal/pkg/constvars"
	"praktis-service/internal/pkg/exceptions"
	"praktis-service/internal/pkg/utils"
	"strings"
	"time"

	"go.uber.org/zap"
)

const bearerPrefix = "Bearer "

func (m *Middlewares) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// APIKeyAuth may already have authenticated the request.
		if _, ok := SessionFromContext(r.Context()); ok {
			next.ServeHTTP(w, r)
			return
		}

		authHeader := r.Header.Get(constvars.HeaderAuthorization)
		if !strings.HasPrefix(authHeader, bearerPrefix) {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenMissing(nil))
			return
		}
		token := strings.TrimPrefix(authHeader, bearerPrefix)

		sessionID, err := utils.ParseSessionJWT(token, m.InternalConfig.JWT.Secret)
		if err != nil {
			utils.BuildErrorResponse(m.Log, w, err)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()

		sessionData, err := m.SessionService.GetSessionData(ctx, sessionID)
		if err != nil {
			utils.BuildErrorResponse(m.Log, w, err)
			return
		}

		session, err := m.SessionService.ParseSessionData(ctx, sessionData)
		if err != nil {
			utils.BuildErrorResponse(m.Log, w, err)
			return
		}

		reqCtx := context.WithValue(r.Context(), constvars.CONTEXT_SESSION_DATA_KEY, session)
		next.ServeHTTP(w, r.WithContext(reqCtx))
	})
}

func (m *Middlewares) RequireRoles(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, ok := SessionFromContext(r.Context())
			if !ok {
				utils.BuildErrorResponse(m.Log, w, exceptions.ErrInvalidSession(errors.New("session data missing from context")))
				return
			}

			for _, role := range roles {
				if session.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}

			m.Log.Warn("role check rejected request",
				zap.String(constvars.LoggingEndpointKey, r.URL.Path),
				zap.String("role", session.Role),
			)
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrPermissionDenied(nil))
		})
	}
}

// SessionFromContext pulls the authenticated session set by Authenticate or
// APIKeyAuth. Controllers use it to scope writes to the caller's own
// practitioner resources.
func SessionFromContext(ctx context.Context) (*models.Session, bool) {
	session, ok := ctx.Value(constvars.CONTEXT_SESSION_DATA_KEY).(*models.Session)
	return session, ok
}
