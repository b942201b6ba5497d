package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignIn(t *testing.T) {
	t.Run("html sets the session cookie and redirects to root", func(t *testing.T) {
		app := newTestApp()

		form := url.Values{"email": {"admin@example.com"}, "password": {"correct horse"}}
		w := httptest.NewRecorder()
		app.mux.ServeHTTP(w, htmlRequest(http.MethodPost, "/users/sign_in", "", form))

		res := w.Result()
		assert.Equal(t, http.StatusSeeOther, res.StatusCode)
		assert.Equal(t, "/", res.Header.Get("Location"))

		var session *http.Cookie
		for _, c := range res.Cookies() {
			if c.Name == sessionCookie {
				session = c
			}
		}
		require.NotNil(t, session)
		assert.Equal(t, adminToken, session.Value)
	})

	t.Run("json returns the token envelope", func(t *testing.T) {
		app := newTestApp()

		w := httptest.NewRecorder()
		app.mux.ServeHTTP(w, jsonRequest(http.MethodPost, "/users/sign_in", "", `{"email":"admin@example.com","password":"correct horse"}`))

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), adminToken)
	})

	t.Run("wrong password is 401", func(t *testing.T) {
		app := newTestApp()

		w := httptest.NewRecorder()
		app.mux.ServeHTTP(w, jsonRequest(http.MethodPost, "/users/sign_in", "", `{"email":"admin@example.com","password":"wrong"}`))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("missing credentials fail request validation", func(t *testing.T) {
		app := newTestApp()

		w := httptest.NewRecorder()
		app.mux.ServeHTTP(w, jsonRequest(http.MethodPost, "/users/sign_in", "", `{"email":"admin@example.com"}`))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestSignOut(t *testing.T) {
	app := newTestApp()

	w := httptest.NewRecorder()
	app.mux.ServeHTTP(w, jsonRequest(http.MethodDelete, "/users/sign_out", adminToken, ""))

	assert.Equal(t, http.StatusNoContent, w.Code)

	// the revoked token no longer authenticates
	w = httptest.NewRecorder()
	app.mux.ServeHTTP(w, jsonRequest(http.MethodGet, "/casa_admins", adminToken, ""))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRootAndSignInPagesRender(t *testing.T) {
	app := newTestApp()

	w := httptest.NewRecorder()
	app.mux.ServeHTTP(w, htmlRequest(http.MethodGet, "/", "", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "CASA Hub")

	w = httptest.NewRecorder()
	app.mux.ServeHTTP(w, htmlRequest(http.MethodGet, "/users/sign_in", "", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Sign in")
}
