package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/casahub/casahub-go/errors"
	"github.com/casahub/casahub-go/models"
	"github.com/casahub/casahub-go/types/requests"
	"github.com/casahub/casahub-go/types/responses"
	"github.com/casahub/casahub-go/utils"
	"github.com/casahub/casahub-go/views"
)

var errSMTPDown = fmt.Errorf("dial tcp 127.0.0.1:465: connect: connection refused")

type fakeAdminStore struct {
	admins map[string]*models.User
	order  []string

	failCreate error
	failUpdate error
	failActive error
}

func newFakeAdminStore() *fakeAdminStore {
	return &fakeAdminStore{admins: map[string]*models.User{}}
}

func (f *fakeAdminStore) seed(admin *models.User) *models.User {
	cp := *admin
	f.admins[cp.ID] = &cp
	f.order = append(f.order, cp.ID)
	return &cp
}

func (f *fakeAdminStore) count() int { return len(f.admins) }

func (f *fakeAdminStore) CreateAdmin(_ context.Context, req *requests.CreateCasaAdminRequest) (*models.User, error) {
	if f.failCreate != nil {
		return nil, f.failCreate
	}
	if req.Email == "" {
		return nil, errors.NewUnprocessableError("Email can't be blank")
	}
	for _, a := range f.admins {
		if a.Email == req.Email {
			return nil, errors.NewUnprocessableError("Email has already been taken")
		}
	}
	now := time.Now()
	token := utils.NewInvitationToken()
	admin := &models.User{
		ID:                  "admin-" + token[:8],
		Email:               req.Email,
		DisplayName:         req.DisplayName,
		Role:                models.CasaAdmin_Role,
		InvitationToken:     &token,
		InvitationCreatedAt: &now,
		CreatedAt:           &now,
		UpdatedAt:           &now,
	}
	return f.seed(admin), nil
}

func (f *fakeAdminStore) UpdateAdmin(_ context.Context, req *requests.UpdateCasaAdminRequest) (*models.User, error) {
	if f.failUpdate != nil {
		return nil, f.failUpdate
	}
	if req.Email == "" {
		return nil, errors.NewUnprocessableError("Email can't be blank")
	}
	admin, ok := f.admins[req.UserID]
	if !ok {
		return nil, errors.NewNotFoundError("resource not found")
	}
	admin.Email = req.Email
	if req.DisplayName != "" {
		admin.DisplayName = req.DisplayName
	}
	return admin, nil
}

func (f *fakeAdminStore) FetchAdmin(_ context.Context, id string) (*models.User, error) {
	admin, ok := f.admins[id]
	if !ok {
		return nil, errors.NewNotFoundError("resource not found")
	}
	return admin, nil
}

func (f *fakeAdminStore) FetchAllAdmins(context.Context) ([]*models.User, error) {
	res := make([]*models.User, 0, len(f.order))
	for _, id := range f.order {
		res = append(res, f.admins[id])
	}
	return res, nil
}

func (f *fakeAdminStore) SetActive(_ context.Context, id string, active bool) (*models.User, error) {
	if f.failActive != nil {
		return nil, f.failActive
	}
	admin, ok := f.admins[id]
	if !ok {
		return nil, errors.NewNotFoundError("resource not found")
	}
	admin.Active = active
	return admin, nil
}

func (f *fakeAdminStore) StampInvitation(_ context.Context, id string) (*models.User, error) {
	admin, ok := f.admins[id]
	if !ok {
		return nil, errors.NewNotFoundError("resource not found")
	}
	now := time.Now()
	token := utils.NewInvitationToken()
	admin.InvitationToken = &token
	admin.InvitationCreatedAt = &now
	return admin, nil
}

func (f *fakeAdminStore) SweepExpiredInvitations(context.Context, time.Time) (int64, error) {
	return 0, nil
}

type delivery struct {
	event   models.MailEvent
	subject string
	to      string
}

type fakeMailer struct {
	deliveries []delivery
	failWith   error
}

func (f *fakeMailer) record(event models.MailEvent, user *models.User) error {
	if f.failWith != nil {
		return f.failWith
	}
	f.deliveries = append(f.deliveries, delivery{event: event, subject: event.Subject(), to: user.Email})
	return nil
}

func (f *fakeMailer) SendAccountSetup(user *models.User) error {
	return f.record(models.AccountSetup_MailEvent, user)
}

func (f *fakeMailer) SendAccountDeactivated(user *models.User) error {
	return f.record(models.AccountDeactivated_MailEvent, user)
}

func (f *fakeMailer) SendInvitationInstructions(user *models.User, _ string) error {
	return f.record(models.InvitationInstructions_MailEvent, user)
}

type fakeSessions struct {
	byToken map[string]*models.User
}

func (f *fakeSessions) SignIn(_ context.Context, req *requests.SignInRequest) (*responses.Response[*responses.SignInResponseData], error) {
	for token, user := range f.byToken {
		if user.Email == req.Email && req.Password == "correct horse" {
			return &responses.Response[*responses.SignInResponseData]{
				Status: "successful",
				Data: &responses.SignInResponseData{
					User:  user,
					Token: &models.AccessToken{ID: "token-id", UserID: user.ID, Token: token},
				},
			}, nil
		}
	}
	return nil, errors.NewAuthenticationError("Invalid email or password")
}

func (f *fakeSessions) SignOut(_ context.Context, token string) error {
	delete(f.byToken, token)
	return nil
}

func (f *fakeSessions) GetUserByAccessToken(_ context.Context, token string) (*models.User, error) {
	user, ok := f.byToken[token]
	if !ok {
		return nil, errors.NewNotFoundError("resource not found")
	}
	return user, nil
}

const (
	adminToken     = "ses_admin"
	volunteerToken = "ses_volunteer"
)

type testApp struct {
	mux      *http.ServeMux
	store    *fakeAdminStore
	mailer   *fakeMailer
	sessions *fakeSessions
}

func newTestApp() *testApp {
	log := zap.NewNop()
	v := views.New()

	store := newFakeAdminStore()
	mailer := &fakeMailer{}
	sessions := &fakeSessions{byToken: map[string]*models.User{
		adminToken:     {ID: "actor-admin", Email: "admin@example.com", Role: models.CasaAdmin_Role, Active: true},
		volunteerToken: {ID: "actor-volunteer", Email: "volunteer@example.com", Role: models.Volunteer_Role, Active: true},
	}}

	middlewares := NewMiddlewareHandler(sessions, NewResponder(v, log), log)

	mux := http.NewServeMux()
	NewCasaAdminHandler(store, mailer, middlewares, v, log).ServeHttp(mux)
	NewSessionHandler(sessions, middlewares, v, log).ServeHttp(mux)

	return &testApp{mux: mux, store: store, mailer: mailer, sessions: sessions}
}
