package models

import "encoding/json"

type MailEvent uint8

const (
	AccountSetup_MailEvent MailEvent = iota + 1
	AccountDeactivated_MailEvent
	InvitationInstructions_MailEvent
)

func (m MailEvent) String() string {
	switch m {
	case AccountSetup_MailEvent:
		return "account.setup"
	case AccountDeactivated_MailEvent:
		return "account.deactivated"
	case InvitationInstructions_MailEvent:
		return "invitation.instructions"
	default:
		panic("unreachable")
	}
}

func (m MailEvent) Subject() string {
	switch m {
	case AccountSetup_MailEvent:
		return "Your account has been activated"
	case AccountDeactivated_MailEvent:
		return "Your account has been deactivated"
	case InvitationInstructions_MailEvent:
		return "Invitation instructions"
	default:
		panic("unreachable")
	}
}

func (m MailEvent) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}
