package requests

// Email presence is an entity-level rule checked by the admin service so
// that a blank value surfaces as "Email can't be blank" rather than a
// bind failure.
type CreateCasaAdminRequest struct {
	Email       string `json:"email" query:"email"`
	DisplayName string `json:"display_name" query:"display_name"`
}
