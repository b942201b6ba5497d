package handlers

import (
	"net/http"

	"github.com/casahub/casahub-go/services"
	"go.uber.org/zap"
)

type handler struct {
	adminService   services.AdminService
	sessionService services.SessionService
	mailerService  services.MailerService
	middlewares    MiddleWareHandler
	responder      *Responder

	log *zap.Logger
}

type Handler interface {
	ServeHttp(*http.ServeMux)
}
