package services

import (
	"database/sql"

	"go.uber.org/zap"
)

type service struct {
	dataDB        *sql.DB
	adminService  AdminService
	mailerService MailerService
	log           *zap.Logger
}

const adminColumns = "id, email, display_name, role, active, invitation_token, invitation_created_at, created_at, updated_at"
