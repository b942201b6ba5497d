package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/casahub/casahub-go/errors"
	"github.com/casahub/casahub-go/views"
	"go.uber.org/zap"
)

func TestSessionToken(t *testing.T) {
	t.Run("prefers the bearer header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer abc")
		req.AddCookie(&http.Cookie{Name: sessionCookie, Value: "def"})

		assert.Equal(t, "abc", SessionToken(req))
	})

	t.Run("falls back to the session cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: sessionCookie, Value: "def"})

		assert.Equal(t, "def", SessionToken(req))
	})

	t.Run("empty when neither is present", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		assert.Equal(t, "", SessionToken(req))
	})
}

func TestRecoverMiddleware(t *testing.T) {
	log := zap.NewNop()
	mw := NewMiddlewareHandler(&fakeSessions{}, NewResponder(views.New(), log), log)

	t.Run("serializes AppError panics for json clients", func(t *testing.T) {
		h := mw.Recover(func(w http.ResponseWriter, r *http.Request) {
			panic(errors.NewValidationError("No request body"))
		})

		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.Header.Set("Accept", "application/json")
		w := httptest.NewRecorder()
		h(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "No request body")
	})

	t.Run("degrades to a plain error page for html clients", func(t *testing.T) {
		h := mw.Recover(func(w http.ResponseWriter, r *http.Request) {
			panic(errors.NewValidationError("invalid request received"))
		})

		req := httptest.NewRequest(http.MethodPost, "/", nil)
		w := httptest.NewRecorder()
		h(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "invalid request received")
	})

	t.Run("wraps arbitrary panics as fatal errors", func(t *testing.T) {
		h := mw.Recover(func(w http.ResponseWriter, r *http.Request) {
			panic("boom")
		})

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Accept", "application/json")
		w := httptest.NewRecorder()
		h(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestFlashCookies(t *testing.T) {
	log := zap.NewNop()
	re := NewResponder(views.New(), log)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/casa_admins/a1/deactivate", nil)
	re.RedirectWithNotice(w, req, "/casa_admins/a1/edit", NoticeAdminDeactivated)

	res := w.Result()
	assert.Equal(t, http.StatusSeeOther, res.StatusCode)

	// the flash round-trips through the cookie and is cleared on read
	read := httptest.NewRequest(http.MethodGet, "/casa_admins/a1/edit", nil)
	for _, c := range res.Cookies() {
		read.AddCookie(c)
	}
	w2 := httptest.NewRecorder()
	notice, alert := re.PopFlash(w2, read)
	assert.Equal(t, NoticeAdminDeactivated, notice)
	assert.Equal(t, "", alert)

	var cleared bool
	for _, c := range w2.Result().Cookies() {
		if c.Name == flashNoticeCookie && c.MaxAge < 0 {
			cleared = true
		}
	}
	assert.True(t, cleared)
}
