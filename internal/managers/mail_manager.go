// Package managers wires the external collaborators of the auth engine:
// database pool, signed-token codec, outbound mail, and the audit sink.
package managers

import (
	"context"
	"fmt"
	"time"

	"github.com/mailgun/mailgun-go/v4"
	"github.com/matcornic/hermes/v2"
	log "github.com/sirupsen/logrus"

	"github.com/cycle-nutrition/server/internal/config"
)

// MailMgr is an interface that outlines the contract for email management.
// It includes methods for sending verification and password-reset emails.
// Both return a plain success flag; transport details stay inside the
// implementation.
type MailMgr interface {
	SendVerificationMail(email, link string) bool
	SendPasswordResetMail(email, link string) bool
}

// MailManager is a concrete implementation of the MailMgr interface.
// It uses the Mailgun service for sending emails and the Hermes package for
// formatting them.
type MailManager struct {
	Hermes      *hermes.Hermes
	Mailgun     *mailgun.MailgunImpl
	from        string
	environment string
}

// SendVerificationMail sends the account-verification email containing the
// emailed link. Outside production the send is skipped and reported as a
// success so local registration flows complete.
func (mm *MailManager) SendVerificationMail(email, link string) bool {
	if mm.environment != "production" {
		log.Info("Skipping verification mail in development mode")
		return true
	}

	mailBody := hermes.Email{
		Body: hermes.Body{
			Name: email,
			Intros: []string{
				"Welcome to Cycle Nutrition Assistant! We're very excited to have you on board.",
				"Please verify your email address to activate your account.",
			},
			Actions: []hermes.Action{
				{
					Instructions: "Click the button below to verify your email address:",
					Button: hermes.Button{
						Text: "Verify Email Address",
						Link: link,
					},
				},
			},
			Outros: []string{
				"If you did not create an account, you can safely ignore this email.",
			},
		},
	}

	return mm.send(email, "Verify your email address - Cycle Nutrition Assistant", mailBody)
}

// SendPasswordResetMail sends the password-reset email containing the reset
// link.
func (mm *MailManager) SendPasswordResetMail(email, link string) bool {
	if mm.environment != "production" {
		log.Info("Skipping password reset mail in development mode")
		return true
	}

	mailBody := hermes.Email{
		Body: hermes.Body{
			Name: email,
			Intros: []string{
				"We received a request to reset the password of your Cycle Nutrition Assistant account.",
			},
			Actions: []hermes.Action{
				{
					Instructions: "If you made this request, click the button below to reset your password:",
					Button: hermes.Button{
						Text: "Reset Password",
						Link: link,
					},
				},
			},
			Outros: []string{
				"If you did not request a password reset, you can safely ignore this email.",
			},
		},
	}

	return mm.send(email, "Reset your password - Cycle Nutrition Assistant", mailBody)
}

func (mm *MailManager) send(email, subject string, mailBody hermes.Email) bool {
	emailBody, err := mm.Hermes.GenerateHTML(mailBody)
	if err != nil {
		log.Warning("Error generating mail body: " + err.Error())
		return false
	}

	ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(5*time.Second))
	defer cancel()

	message := mm.Mailgun.NewMessage(mm.from, subject, "", email)
	message.SetHtml(emailBody)
	if _, _, err = mm.Mailgun.Send(ctx, message); err != nil {
		log.Warning(fmt.Sprintf("Error sending %q mail: %s", subject, err.Error()))
		return false
	}
	log.Debug("Mail sent to ", email)

	return true
}

// NewMailManager initializes a new MailManager instance with configured
// Mailgun and Hermes settings. Outside production no mail leaves the
// process.
func NewMailManager(cfg *config.Config) MailMgr {
	log.Info("Initializing mail manager")

	if cfg.Environment != "production" {
		log.Info("Running in development mode, email will not be sent to users")
	}

	mailgunInstance := mailgun.NewMailgun(cfg.MailDomain, cfg.MailgunAPIKey)
	mailgunInstance.SetAPIBase(mailgun.APIBaseEU)

	mm := &MailManager{
		Hermes: &hermes.Hermes{
			Theme:         new(hermes.Default),
			TextDirection: hermes.TDLeftToRight,
			Product: hermes.Product{
				Name:      "Cycle Nutrition Assistant",
				Link:      cfg.AppURL,
				Copyright: "© Cycle Nutrition Assistant",
			},
		},
		Mailgun:     mailgunInstance,
		from:        cfg.SenderAddress,
		environment: cfg.Environment,
	}
	log.Info("Initialized mail manager")
	return mm
}
