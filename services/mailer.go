package services

import (
	"crypto/tls"
	"fmt"
	"net/smtp"

	"go.uber.org/zap"

	"github.com/casahub/casahub-go/config"
	"github.com/casahub/casahub-go/models"
)

type MailerService interface {
	SendAccountSetup(user *models.User) error
	SendAccountDeactivated(user *models.User) error
	SendInvitationInstructions(user *models.User, token string) error
}

func NewMailerService(conf *config.Config, log *zap.Logger) MailerService {
	return &mailerService{
		service: service{log: log},
		conf:    conf,
	}
}

type mailerService struct {
	service
	conf *config.Config
}

func (m *mailerService) SendAccountSetup(user *models.User) error {
	body := fmt.Sprintf("<p>Hello %s,</p><p>Your CASA administrator account is now active. You can sign in and manage your cases.</p>", user.DisplayName)
	return m.sendEvent(models.AccountSetup_MailEvent, user, body)
}

func (m *mailerService) SendAccountDeactivated(user *models.User) error {
	body := fmt.Sprintf("<p>Hello %s,</p><p>Your CASA administrator account has been deactivated. Contact your supervisor if you believe this is an error.</p>", user.DisplayName)
	return m.sendEvent(models.AccountDeactivated_MailEvent, user, body)
}

func (m *mailerService) SendInvitationInstructions(user *models.User, token string) error {
	body := fmt.Sprintf("<p>Hello %s,</p><p>You have been invited to administer CASA cases. Use the token below to set up your password:</p><p><code>%s</code></p>", user.DisplayName, token)
	return m.sendEvent(models.InvitationInstructions_MailEvent, user, body)
}

func (m *mailerService) sendEvent(event models.MailEvent, user *models.User, body string) error {
	m.log.Info("dispatching mail...", zap.String("Event Type", event.String()), zap.String("To", user.Email))

	if err := m.doSend(user.Email, event.Subject(), body); err != nil {
		m.log.Error("dispatching mail", zap.Error(err))
		return err
	}

	return nil
}

// doSend delivers one message over implicit-TLS SMTP.
func (m *mailerService) doSend(to, subject, body string) error {
	from := m.conf.MailFrom
	msg := []byte(
		fmt.Sprintf("From: %s\r\n", from) +
			fmt.Sprintf("To: %s\r\n", to) +
			fmt.Sprintf("Subject: %s\r\n", subject) +
			"MIME-Version: 1.0\r\n" +
			"Content-Type: text/html; charset=\"utf-8\"\r\n" +
			"\r\n" +
			body,
	)

	serverAddr := m.conf.SMTPHost + ":" + m.conf.SMTPPort

	tlsConfig := &tls.Config{
		ServerName: m.conf.SMTPHost,
	}

	conn, err := tls.Dial("tcp", serverAddr, tlsConfig)
	if err != nil {
		return err
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, m.conf.SMTPHost)
	if err != nil {
		return err
	}
	defer client.Quit()

	if m.conf.SMTPUser != "" {
		auth := smtp.PlainAuth("", m.conf.SMTPUser, m.conf.SMTPPass, m.conf.SMTPHost)
		if err := client.Auth(auth); err != nil {
			return err
		}
	}

	if err := client.Mail(from); err != nil {
		return err
	}
	if err := client.Rcpt(to); err != nil {
		return err
	}

	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		return err
	}

	return w.Close()
}
