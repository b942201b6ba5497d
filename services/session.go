package services

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/casahub/casahub-go/errors"
	"github.com/casahub/casahub-go/models"
	"github.com/casahub/casahub-go/types/requests"
	"github.com/casahub/casahub-go/types/responses"
	"github.com/casahub/casahub-go/utils"
)

type SessionService interface {
	SignIn(context.Context, *requests.SignInRequest) (*responses.Response[*responses.SignInResponseData], error)
	SignOut(context.Context, string) error
	GetUserByAccessToken(context.Context, string) (*models.User, error)
}

func NewSessionService(dataDatabase *sql.DB, log *zap.Logger) SessionService {
	return &sessionService{
		service{
			dataDB: dataDatabase,
			log:    log,
		},
	}
}

type sessionService struct {
	service
}

func (s *sessionService) SignIn(ctx context.Context, req *requests.SignInRequest) (*responses.Response[*responses.SignInResponseData], error) {
	row := sq.
		Select("id", "email", "display_name", "role", "active", "encrypted_password").
		From("users").
		Where(sq.Eq{"email": req.Email}).
		Limit(1).
		RunWith(s.dataDB).
		QueryRowContext(ctx)

	user := &models.User{}
	err := row.Scan(&user.ID, &user.Email, &user.DisplayName, &user.Role, &user.Active, &user.EncryptedPassword)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errors.NewAuthenticationError("Invalid email or password")
		}
		return nil, errors.HandleDataDBError(err)
	}

	if user.EncryptedPassword == nil ||
		bcrypt.CompareHashAndPassword([]byte(*user.EncryptedPassword), []byte(req.Password)) != nil {
		return nil, errors.NewAuthenticationError("Invalid email or password")
	}

	accessToken := &models.AccessToken{
		ID:     uuid.NewString(),
		UserID: user.ID,
		Token:  utils.NewSessionToken(),
	}

	_, err = sq.
		Insert("access_tokens").
		Columns("id", "user_id", "token").
		Values(accessToken.ID, accessToken.UserID, accessToken.Token).
		RunWith(s.dataDB).
		ExecContext(ctx)
	if err != nil {
		return nil, errors.HandleDataDBError(err)
	}

	user.EncryptedPassword = nil

	return &responses.Response[*responses.SignInResponseData]{
		Status: "successful",
		Data: &responses.SignInResponseData{
			User:  user,
			Token: accessToken,
		},
	}, nil
}

func (s *sessionService) SignOut(ctx context.Context, token string) error {
	_, err := sq.
		Delete("access_tokens").
		Where(sq.Eq{"token": token}).
		RunWith(s.dataDB).
		ExecContext(ctx)
	if err != nil {
		return errors.HandleDataDBError(err)
	}

	return nil
}

func (s *sessionService) GetUserByAccessToken(ctx context.Context, token string) (*models.User, error) {
	row := sq.
		Select("users.id", "users.email", "users.display_name", "users.role", "users.active").
		From("access_tokens").
		Join("users on access_tokens.user_id = users.id").
		Where(sq.Eq{"token": token}).
		RunWith(s.dataDB).
		QueryRowContext(ctx)

	user := &models.User{}
	err := row.Scan(&user.ID, &user.Email, &user.DisplayName, &user.Role, &user.Active)
	if err != nil {
		return nil, errors.HandleDataDBError(err)
	}

	return user, nil
}
