package handlers

import (
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"github.com/casahub/casahub-go/errors"
	"github.com/casahub/casahub-go/models"
	"github.com/casahub/casahub-go/utils"
	"github.com/casahub/casahub-go/views"
)

// Flash strings are part of the user-facing contract.
const (
	NoticeNotAuthorized    = "Sorry, you are not authorized to perform this action."
	NoticeAdminCreated     = "New admin created successfully"
	NoticeAdminDeactivated = "Admin was deactivated."
	AlertEmailNotSent      = "Email not sent."
)

const (
	flashNoticeCookie = "flash_notice"
	flashAlertCookie  = "flash_alert"
)

// ViewData is the payload handed to every HTML template.
type ViewData struct {
	Notice string
	Alert  string
	Errors []string

	Admin       *models.User
	Admins      []*models.User
	Email       string
	DisplayName string
}

// Responder renders the HTML half of the dual-format endpoints: 303
// redirects carrying one-shot flash cookies, and template re-renders for
// validation failures.
type Responder struct {
	views *views.Views
	log   *zap.Logger
}

func NewResponder(v *views.Views, log *zap.Logger) *Responder {
	return &Responder{views: v, log: log}
}

func (re *Responder) Redirect(w http.ResponseWriter, r *http.Request, path string) {
	http.Redirect(w, r, path, http.StatusSeeOther)
}

func (re *Responder) RedirectWithNotice(w http.ResponseWriter, r *http.Request, path, notice string) {
	setFlash(w, flashNoticeCookie, notice)
	http.Redirect(w, r, path, http.StatusSeeOther)
}

func (re *Responder) RedirectWithAlert(w http.ResponseWriter, r *http.Request, path, alert string) {
	setFlash(w, flashAlertCookie, alert)
	http.Redirect(w, r, path, http.StatusSeeOther)
}

func (re *Responder) Render(w http.ResponseWriter, code int, view string, data *ViewData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	if err := re.views.Render(w, view, data); err != nil {
		re.log.Error("rendering view", zap.String("view", view), zap.Error(err))
	}
}

// Fail resolves an operation error for both formats. HTML validation
// failures re-render the given form view with the message list; other
// HTML errors degrade to a plain status page. view may be empty for
// endpoints with no form to re-render.
func (re *Responder) Fail(w http.ResponseWriter, r *http.Request, err error, view string, data *ViewData) {
	apperr := errors.AsAppError(err)
	if utils.WantsJSON(r) {
		apperr.Serialize(w)
		return
	}
	if apperr.Type == errors.ErrUnprocessable && view != "" {
		if data == nil {
			data = &ViewData{}
		}
		data.Errors = apperr.Errors
		re.Render(w, apperr.Code, view, data)
		return
	}
	http.Error(w, apperr.Message, apperr.Code)
}

// PopFlash consumes the one-shot flash cookies set by a prior redirect.
func (re *Responder) PopFlash(w http.ResponseWriter, r *http.Request) (notice, alert string) {
	return popFlash(w, r, flashNoticeCookie), popFlash(w, r, flashAlertCookie)
}

func setFlash(w http.ResponseWriter, name, value string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    url.QueryEscape(value),
		Path:     "/",
		HttpOnly: true,
	})
}

func popFlash(w http.ResponseWriter, r *http.Request, name string) string {
	c, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	value, err := url.QueryUnescape(c.Value)
	if err != nil {
		return ""
	}
	return value
}
