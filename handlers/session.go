package handlers

import (
	"net/http"

	"github.com/casahub/casahub-go/services"
	"github.com/casahub/casahub-go/types/requests"
	"github.com/casahub/casahub-go/utils"
	"github.com/casahub/casahub-go/views"
	"go.uber.org/zap"
)

type SessionHandler interface {
	Root(w http.ResponseWriter, r *http.Request)
	NewSession(w http.ResponseWriter, r *http.Request)
	SignIn(w http.ResponseWriter, r *http.Request)
	SignOut(w http.ResponseWriter, r *http.Request)

	ServeHttp(*http.ServeMux)
}

func NewSessionHandler(sessionService services.SessionService, middlewares MiddleWareHandler, v *views.Views, log *zap.Logger) SessionHandler {
	return &sessionHandler{
		handler: handler{
			sessionService: sessionService,
			middlewares:    middlewares,
			responder:      NewResponder(v, log),
			log:            log,
		},
	}
}

type sessionHandler struct {
	handler
}

func (s *sessionHandler) ServeHttp(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", s.middlewares.Recover(s.Root))
	mux.HandleFunc("GET /users/sign_in", s.middlewares.Recover(s.NewSession))
	mux.HandleFunc("POST /users/sign_in", s.middlewares.Recover(s.SignIn))
	mux.HandleFunc("DELETE /users/sign_out", s.middlewares.Recover(s.SignOut))
}

func (s *sessionHandler) Root(w http.ResponseWriter, r *http.Request) {
	notice, alert := s.responder.PopFlash(w, r)
	s.responder.Render(w, 200, "root", &ViewData{Notice: notice, Alert: alert})
}

func (s *sessionHandler) NewSession(w http.ResponseWriter, r *http.Request) {
	notice, alert := s.responder.PopFlash(w, r)
	s.responder.Render(w, 200, "sessions/new", &ViewData{Notice: notice, Alert: alert})
}

func (s *sessionHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	req := utils.Bind[requests.SignInRequest](r)

	res, err := s.sessionService.SignIn(r.Context(), req)
	if err != nil {
		s.responder.Fail(w, r, err, "", nil)
		return
	}

	if utils.WantsJSON(r) {
		utils.JSON(w, 201, res)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    res.Data.Token.Token,
		Path:     "/",
		HttpOnly: true,
	})
	s.responder.Redirect(w, r, "/")
}

func (s *sessionHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	token := SessionToken(r)
	if token != "" {
		if err := s.sessionService.SignOut(r.Context(), token); err != nil {
			s.responder.Fail(w, r, err, "", nil)
			return
		}
	}

	if utils.WantsJSON(r) {
		w.WriteHeader(204)
		w.Write(nil)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	s.responder.Redirect(w, r, signInPath)
}
