package requests

type CasaAdminIDRequest struct {
	UserID string `uri:"id" validate:"required"`
}
