package requests

type UpdateCasaAdminRequest struct {
	UserID      string `uri:"id" validate:"required"`
	Email       string `json:"email" query:"email"`
	DisplayName string `json:"display_name" query:"display_name"`
}
