// Package managers handles the sending of password reset emails using the Mailgun service
// and the Hermes package for email formatting.
package managers

import (
	"context"
	"time"

	"github.com/mailgun/mailgun-go/v4"
	"github.com/matcornic/hermes/v2"
	log "github.com/sirupsen/logrus"

	"fitness-tracker/internal/config"
)

// MailMgr is an interface that outlines the contract for email management.
type MailMgr interface {
	SendPasswordResetMail(ctx context.Context, email, name, resetURL string) error
}

// MailManager is a concrete implementation of the MailMgr interface.
// Outside of production no mail leaves the process, the reset link is logged instead.
type MailManager struct {
	Hermes     *hermes.Hermes
	Mailgun    *mailgun.MailgunImpl
	from       string
	production bool
}

const mailTimeout = 5 * time.Second

// SendPasswordResetMail sends a link that lets the user choose a new password.
func (mm *MailManager) SendPasswordResetMail(ctx context.Context, email, name, resetURL string) error {
	if !mm.production {
		log.WithFields(log.Fields{
			"email":    email,
			"resetUrl": resetURL,
		}).Info("Skipping password reset mail in development mode")
		return nil
	}

	if name == "" {
		name = email
	}

	mailBody := hermes.Email{
		Body: hermes.Body{
			Name: name,
			Intros: []string{
				"You have received this email because a password reset request for your account was received.",
			},
			Actions: []hermes.Action{
				{
					Instructions: "Click the button below to reset your password. The link is valid for one hour.",
					Button: hermes.Button{
						Color: "#DC4D2F",
						Text:  "Reset your password",
						Link:  resetURL,
					},
				},
			},
			Outros: []string{
				"If you did not request a password reset, no further action is required on your part.",
			},
			Signature: "Thanks",
		},
	}

	emailBody, err := mm.Hermes.GenerateHTML(mailBody)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, mailTimeout)
	defer cancel()

	message := mm.Mailgun.NewMessage(mm.from, "Reset your password", "", email)
	message.SetHtml(emailBody)
	if _, _, err = mm.Mailgun.Send(ctx, message); err != nil {
		log.Warning("Error sending password reset mail: " + err.Error())
		return err
	}
	log.Debug("Password reset mail sent to ", email)

	return nil
}

// NewMailManager initializes a MailManager with the configured Mailgun domain and Hermes theme.
func NewMailManager(cfg *config.Config) MailMgr {
	log.Info("Initializing mail manager")

	if !cfg.IsProduction() {
		log.Info("Running in development mode, email will not be sent to users")
	}

	mailgunInstance := mailgun.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey)
	mailgunInstance.SetAPIBase(mailgun.APIBaseEU)

	mm := &MailManager{
		Hermes: &hermes.Hermes{
			Theme:         new(hermes.Default),
			TextDirection: hermes.TDLeftToRight,
			Product: hermes.Product{
				Name:        "Fitness Tracker",
				Link:        cfg.ClientURL,
				Copyright:   "© Fitness Tracker",
				TroubleText: "If you’re having trouble with the button '{ACTION}', copy and paste the URL below into your web browser.",
			},
		},
		Mailgun:    mailgunInstance,
		from:       cfg.MailFrom,
		production: cfg.IsProduction(),
	}
	log.Info("Initialized mail manager")
	return mm
}
