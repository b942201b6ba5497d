package handlers

import (
	"fmt"
	"net/http"

	"github.com/casahub/casahub-go/errors"
	"github.com/casahub/casahub-go/models"
	"github.com/casahub/casahub-go/services"
	"github.com/casahub/casahub-go/types/requests"
	"github.com/casahub/casahub-go/types/responses"
	"github.com/casahub/casahub-go/utils"
	"github.com/casahub/casahub-go/views"
	"go.uber.org/zap"
)

type CasaAdminHandler interface {
	Index(w http.ResponseWriter, r *http.Request)
	New(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Edit(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)

	Activate(w http.ResponseWriter, r *http.Request)
	Deactivate(w http.ResponseWriter, r *http.Request)
	ResendInvitation(w http.ResponseWriter, r *http.Request)

	ServeHttp(*http.ServeMux)
}

func NewCasaAdminHandler(adminService services.AdminService, mailerService services.MailerService, middlewares MiddleWareHandler, v *views.Views, log *zap.Logger) CasaAdminHandler {
	return &casaAdminHandler{
		handler: handler{
			adminService:  adminService,
			mailerService: mailerService,
			middlewares:   middlewares,
			responder:     NewResponder(v, log),
			log:           log,
		},
	}
}

type casaAdminHandler struct {
	handler
}

func (c *casaAdminHandler) ServeHttp(mux *http.ServeMux) {
	guard := func(h http.HandlerFunc) http.HandlerFunc {
		return utils.Middleware(h, c.middlewares.Recover, c.middlewares.RequireCasaAdmin)
	}

	mux.HandleFunc("GET /casa_admins", guard(c.Index))
	mux.HandleFunc("GET /casa_admins/new", guard(c.New))
	mux.HandleFunc("POST /casa_admins", guard(c.Create))
	mux.HandleFunc("GET /casa_admins/{id}/edit", guard(c.Edit))
	mux.HandleFunc("PUT /casa_admins/{id}", guard(c.Update))
	mux.HandleFunc("PATCH /casa_admins/{id}/activate", guard(c.Activate))
	mux.HandleFunc("PATCH /casa_admins/{id}/deactivate", guard(c.Deactivate))
	mux.HandleFunc("PATCH /casa_admins/{id}/resend_invitation", guard(c.ResendInvitation))
}

func editPath(id string) string {
	return fmt.Sprintf("/casa_admins/%s/edit", id)
}

func (c *casaAdminHandler) Index(w http.ResponseWriter, r *http.Request) {
	admins, err := c.adminService.FetchAllAdmins(r.Context())
	if err != nil {
		c.responder.Fail(w, r, err, "", nil)
		return
	}

	if utils.WantsJSON(r) {
		utils.JSON(w, 200, &responses.Response[any]{Status: "successful", Data: admins})
		return
	}

	notice, alert := c.responder.PopFlash(w, r)
	c.responder.Render(w, 200, "casa_admins/index", &ViewData{Notice: notice, Alert: alert, Admins: admins})
}

func (c *casaAdminHandler) New(w http.ResponseWriter, r *http.Request) {
	notice, alert := c.responder.PopFlash(w, r)
	c.responder.Render(w, 200, "casa_admins/new", &ViewData{Notice: notice, Alert: alert})
}

func (c *casaAdminHandler) Edit(w http.ResponseWriter, r *http.Request) {
	req := utils.Bind[requests.CasaAdminIDRequest](r)

	admin, err := c.adminService.FetchAdmin(r.Context(), req.UserID)
	if err != nil {
		c.responder.Fail(w, r, err, "", nil)
		return
	}

	if utils.WantsJSON(r) {
		utils.JSON(w, 200, &responses.Response[any]{Status: "successful", Data: admin})
		return
	}

	notice, alert := c.responder.PopFlash(w, r)
	c.responder.Render(w, 200, "casa_admins/edit", &ViewData{
		Notice:      notice,
		Alert:       alert,
		Admin:       admin,
		Email:       admin.Email,
		DisplayName: admin.DisplayName,
	})
}

func (c *casaAdminHandler) Create(w http.ResponseWriter, r *http.Request) {
	req := utils.Bind[requests.CreateCasaAdminRequest](r)

	admin, err := c.adminService.CreateAdmin(r.Context(), req)
	if err != nil {
		c.responder.Fail(w, r, err, "casa_admins/new", &ViewData{Email: req.Email, DisplayName: req.DisplayName})
		return
	}

	// invitation accompanies account creation; a delivery failure must
	// not undo the create
	var mailErr error
	if admin.InvitationToken != nil {
		mailErr = c.mailerService.SendInvitationInstructions(admin, *admin.InvitationToken)
	}

	if utils.WantsJSON(r) {
		utils.JSON(w, 201, &responses.CreateCasaAdminResponseData{DisplayName: admin.DisplayName})
		return
	}

	if mailErr != nil {
		c.responder.RedirectWithAlert(w, r, "/casa_admins", AlertEmailNotSent)
		return
	}
	c.responder.RedirectWithNotice(w, r, "/casa_admins", NoticeAdminCreated)
}

func (c *casaAdminHandler) Update(w http.ResponseWriter, r *http.Request) {
	req := utils.Bind[requests.UpdateCasaAdminRequest](r)

	admin, err := c.adminService.UpdateAdmin(r.Context(), req)
	if err != nil {
		c.responder.Fail(w, r, err, "casa_admins/edit", &ViewData{
			Admin:       &models.User{ID: req.UserID},
			Email:       req.Email,
			DisplayName: req.DisplayName,
		})
		return
	}

	if utils.WantsJSON(r) {
		utils.JSON(w, 200, &responses.UpdateCasaAdminResponseData{DisplayName: admin.DisplayName, Email: admin.Email})
		return
	}

	c.responder.RedirectWithNotice(w, r, "/casa_admins", NoticeAdminCreated)
}

func (c *casaAdminHandler) Activate(w http.ResponseWriter, r *http.Request) {
	c.setActive(w, r, true)
}

func (c *casaAdminHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	c.setActive(w, r, false)
}

// setActive persists the flag first, then attempts the notification.
// A delivery failure leaves the new state in place and only downgrades
// the response.
func (c *casaAdminHandler) setActive(w http.ResponseWriter, r *http.Request, active bool) {
	req := utils.Bind[requests.CasaAdminIDRequest](r)

	admin, err := c.adminService.SetActive(r.Context(), req.UserID, active)
	if err != nil {
		c.responder.Fail(w, r, err, "", nil)
		return
	}

	var mailErr error
	if active {
		mailErr = c.mailerService.SendAccountSetup(admin)
	} else {
		mailErr = c.mailerService.SendAccountDeactivated(admin)
	}

	if mailErr != nil {
		if utils.WantsJSON(r) {
			errors.NewMailDeliveryError(mailErr).Serialize(w)
			return
		}
		c.responder.RedirectWithAlert(w, r, editPath(admin.ID), AlertEmailNotSent)
		return
	}

	if utils.WantsJSON(r) {
		utils.JSON(w, 200, &responses.ActivationResponseData{Active: admin.Active})
		return
	}

	if !active {
		c.responder.RedirectWithNotice(w, r, editPath(admin.ID), NoticeAdminDeactivated)
		return
	}
	c.responder.Redirect(w, r, editPath(admin.ID))
}

func (c *casaAdminHandler) ResendInvitation(w http.ResponseWriter, r *http.Request) {
	req := utils.Bind[requests.CasaAdminIDRequest](r)

	admin, err := c.adminService.StampInvitation(r.Context(), req.UserID)
	if err != nil {
		c.responder.Fail(w, r, err, "", nil)
		return
	}

	var mailErr error
	if admin.InvitationToken != nil {
		mailErr = c.mailerService.SendInvitationInstructions(admin, *admin.InvitationToken)
	}

	if utils.WantsJSON(r) {
		if mailErr != nil {
			errors.NewMailDeliveryError(mailErr).Serialize(w)
			return
		}
		utils.JSON(w, 200, &responses.Response[any]{Status: "successful", Data: admin})
		return
	}

	if mailErr != nil {
		c.responder.RedirectWithAlert(w, r, editPath(admin.ID), AlertEmailNotSent)
		return
	}
	c.responder.Redirect(w, r, editPath(admin.ID))
}
