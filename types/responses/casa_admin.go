package responses

import "github.com/casahub/casahub-go/models"

type CreateCasaAdminResponseData struct {
	DisplayName string `json:"display_name"`
}

type UpdateCasaAdminResponseData struct {
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
}

type ActivationResponseData struct {
	Active bool `json:"active"`
}

type SignInResponseData struct {
	User  *models.User        `json:"user"`
	Token *models.AccessToken `json:"token"`
}
