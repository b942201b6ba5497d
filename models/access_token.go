package models

type AccessToken struct {
	// ? maybe change to uuid.UUID
	ID     string `json:"id"`
	UserID string `json:"user_id"`
	Token  string `json:"token"`
}
