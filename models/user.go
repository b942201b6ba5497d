package models

import "time"

type Role string

const (
	CasaAdmin_Role Role = "casa_admin"
	Volunteer_Role Role = "volunteer"
)

type User struct {
	// ? maybe change to uuid.UUID
	ID                  string     `json:"id"`
	Email               string     `json:"email"`
	DisplayName         string     `json:"display_name"`
	Role                Role       `json:"role"`
	Active              bool       `json:"active"`
	InvitationCreatedAt *time.Time `json:"invitation_created_at,omitempty"`
	CreatedAt           *time.Time `json:"created_at,omitempty"`
	UpdatedAt           *time.Time `json:"updated_at,omitempty"`

	// internal fields
	InvitationToken   *string `json:"-"`
	EncryptedPassword *string `json:"-"`
}
