package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/casahub/casahub-go/errors"
	"github.com/casahub/casahub-go/models"
	"github.com/casahub/casahub-go/services"
	"github.com/casahub/casahub-go/utils"
	"go.uber.org/zap"
)

type ctxKey string

// CurrentUserKey holds the authenticated *models.User on the request
// context once the gate has allowed the request through.
const CurrentUserKey ctxKey = "current_user"

const sessionCookie = "session"

const signInPath = "/users/sign_in"

type MiddleWareHandler interface {
	RequireCasaAdmin(http.HandlerFunc) http.HandlerFunc
	Recover(http.HandlerFunc) http.HandlerFunc
}

type middlewareHandler struct {
	sessionService services.SessionService
	responder      *Responder

	log *zap.Logger
}

func NewMiddlewareHandler(session services.SessionService, responder *Responder, log *zap.Logger) MiddleWareHandler {
	return &middlewareHandler{sessionService: session, responder: responder, log: log}
}

// SessionToken extracts the access token from the Authorization header
// (JSON clients) or the session cookie (HTML clients).
func SessionToken(r *http.Request) string {
	if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	if c, err := r.Cookie(sessionCookie); err == nil {
		return c.Value
	}
	return ""
}

// RequireCasaAdmin is the single authorization point for the
// /casa_admins actions: unauthenticated requests bounce to sign-in,
// authenticated non-admins bounce to the root with a notice.
func (m *middlewareHandler) RequireCasaAdmin(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := SessionToken(r)
		if token == "" {
			m.denyUnauthenticated(w, r)
			return
		}

		user, err := m.sessionService.GetUserByAccessToken(r.Context(), token)
		if err != nil {
			m.denyUnauthenticated(w, r)
			return
		}

		if user.Role != models.CasaAdmin_Role {
			if utils.WantsJSON(r) {
				errors.NewPermissionError(NoticeNotAuthorized).Serialize(w)
				return
			}
			m.responder.RedirectWithNotice(w, r, "/", NoticeNotAuthorized)
			return
		}

		h.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), CurrentUserKey, user)))
	}
}

func (m *middlewareHandler) denyUnauthenticated(w http.ResponseWriter, r *http.Request) {
	if utils.WantsJSON(r) {
		errors.NewInvalidTokenError().Serialize(w)
		return
	}
	m.responder.Redirect(w, r, signInPath)
}

// Recover converts AppError panics raised by request binding into
// responses instead of crashing the connection.
func (m *middlewareHandler) Recover(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				var apperr errors.AppError
				switch v := rec.(type) {
				case errors.AppError:
					apperr = v
				case error:
					apperr = errors.AsAppError(v)
				default:
					apperr = errors.NewUnknownError(v)
				}
				m.log.Error("recovered handler panic", zap.String("path", r.URL.Path), zap.Error(apperr))
				if utils.WantsJSON(r) {
					apperr.Serialize(w)
					return
				}
				http.Error(w, apperr.Message, apperr.Code)
			}
		}()
		h.ServeHTTP(w, r)
	}
}
