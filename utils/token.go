package utils

import "github.com/lucsky/cuid"

func NewSessionToken() string {
	return "ses_" + cuid.Slug()
}

func NewInvitationToken() string {
	return cuid.New()
}
