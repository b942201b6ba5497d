package services

import (
	"context"
	"database/sql"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/casahub/casahub-go/errors"
	"github.com/casahub/casahub-go/models"
	"github.com/casahub/casahub-go/types/requests"
	"github.com/casahub/casahub-go/utils"
)

type AdminService interface {
	CreateAdmin(context.Context, *requests.CreateCasaAdminRequest) (*models.User, error)
	UpdateAdmin(context.Context, *requests.UpdateCasaAdminRequest) (*models.User, error)
	FetchAdmin(context.Context, string) (*models.User, error)
	FetchAllAdmins(context.Context) ([]*models.User, error)

	SetActive(context.Context, string, bool) (*models.User, error)
	StampInvitation(context.Context, string) (*models.User, error)
	SweepExpiredInvitations(context.Context, time.Time) (int64, error)
}

func NewAdminService(dataDatabase *sql.DB, log *zap.Logger) AdminService {
	return &adminService{
		service{
			dataDB: dataDatabase,
			log:    log,
		},
	}
}

type adminService struct {
	service
}

// validateAdmin enforces the entity rules shared by create and update.
func validateAdmin(email string) error {
	if strings.TrimSpace(email) == "" {
		return errors.NewUnprocessableError("Email can't be blank")
	}
	return nil
}

func (a *adminService) CreateAdmin(ctx context.Context, req *requests.CreateCasaAdminRequest) (*models.User, error) {
	if err := validateAdmin(req.Email); err != nil {
		return nil, err
	}

	now := time.Now()
	token := utils.NewInvitationToken()
	admin := &models.User{
		ID:                  uuid.NewString(),
		Email:               cases.Lower(language.English).String(req.Email),
		DisplayName:         req.DisplayName,
		Role:                models.CasaAdmin_Role,
		Active:              false,
		InvitationToken:     &token,
		InvitationCreatedAt: &now,
		CreatedAt:           &now,
		UpdatedAt:           &now,
	}

	_, err := sq.
		Insert("users").
		Columns("id", "email", "display_name", "role", "active", "invitation_token", "invitation_created_at", "created_at", "updated_at").
		Values(admin.ID, admin.Email, admin.DisplayName, admin.Role, admin.Active, token, now, now, now).
		RunWith(a.dataDB).
		ExecContext(ctx)
	if err != nil {
		return nil, errors.HandleDataDBError(err)
	}

	return admin, nil
}

func (a *adminService) UpdateAdmin(ctx context.Context, req *requests.UpdateCasaAdminRequest) (*models.User, error) {
	if err := validateAdmin(req.Email); err != nil {
		return nil, err
	}

	stmt := sq.
		Update("users").
		Set("email", strings.ToLower(req.Email)).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"id": req.UserID, "role": models.CasaAdmin_Role})

	if req.DisplayName != "" {
		stmt = stmt.Set("display_name", req.DisplayName)
	}

	_, err := stmt.RunWith(a.dataDB).ExecContext(ctx)
	if err != nil {
		return nil, errors.HandleDataDBError(err)
	}

	return a.FetchAdmin(ctx, req.UserID)
}

func (a *adminService) FetchAdmin(ctx context.Context, id string) (*models.User, error) {
	row := sq.
		Select(strings.Split(adminColumns, ", ")...).
		From("users").
		Where(sq.Eq{"id": id, "role": models.CasaAdmin_Role}).
		Limit(1).
		RunWith(a.dataDB).
		QueryRowContext(ctx)

	return scanAdmin(row)
}

func (a *adminService) FetchAllAdmins(ctx context.Context) ([]*models.User, error) {
	rows, err := sq.
		Select(strings.Split(adminColumns, ", ")...).
		From("users").
		Where(sq.Eq{"role": models.CasaAdmin_Role}).
		OrderBy("created_at").
		RunWith(a.dataDB).
		QueryContext(ctx)
	if err != nil {
		return nil, errors.HandleDataDBError(err)
	}
	defer rows.Close()

	res := make([]*models.User, 0)
	for rows.Next() {
		admin, err := scanAdmin(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, admin)
	}

	return res, nil
}

// SetActive persists the flag unconditionally; the caller attempts the
// notification mail only after this returns.
func (a *adminService) SetActive(ctx context.Context, id string, active bool) (*models.User, error) {
	_, err := sq.
		Update("users").
		Set("active", active).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"id": id, "role": models.CasaAdmin_Role}).
		RunWith(a.dataDB).
		ExecContext(ctx)
	if err != nil {
		return nil, errors.HandleDataDBError(err)
	}

	// zero rows affected may just mean the flag already matched, so a
	// missing id is detected by the fetch instead
	return a.FetchAdmin(ctx, id)
}

func (a *adminService) StampInvitation(ctx context.Context, id string) (*models.User, error) {
	now := time.Now()
	token := utils.NewInvitationToken()

	_, err := sq.
		Update("users").
		Set("invitation_token", token).
		Set("invitation_created_at", now).
		Set("updated_at", now).
		Where(sq.Eq{"id": id, "role": models.CasaAdmin_Role}).
		RunWith(a.dataDB).
		ExecContext(ctx)
	if err != nil {
		return nil, errors.HandleDataDBError(err)
	}

	return a.FetchAdmin(ctx, id)
}

func (a *adminService) SweepExpiredInvitations(ctx context.Context, olderThan time.Time) (int64, error) {
	res, err := sq.
		Update("users").
		Set("invitation_token", nil).
		Where(sq.NotEq{"invitation_token": nil}).
		Where(sq.Lt{"invitation_created_at": olderThan}).
		RunWith(a.dataDB).
		ExecContext(ctx)
	if err != nil {
		return 0, errors.HandleDataDBError(err)
	}

	return res.RowsAffected()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAdmin(row rowScanner) (*models.User, error) {
	admin := &models.User{}
	err := row.Scan(&admin.ID, &admin.Email, &admin.DisplayName, &admin.Role, &admin.Active, &admin.InvitationToken, &admin.InvitationCreatedAt, &admin.CreatedAt, &admin.UpdatedAt)
	if err != nil {
		return nil, errors.HandleDataDBError(err)
	}
	return admin, nil
}
