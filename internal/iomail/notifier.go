// Package iomail delivers the completion notification over SMTP.
package iomail

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/cdrkit/dfextract/pkg/config"
	"github.com/cdrkit/dfextract/pkg/extract"
	"github.com/wneessen/go-mail"
)

type notifier struct {
	cfg config.EmailConfig
}

// New returns an extract.Notifier sending mail per cfg. With
// Email.Enabled false the notifier is a no-op.
func New(cfg config.EmailConfig) extract.Notifier {
	return &notifier{cfg: cfg}
}

// DatasetReady mails the requesting user that the dataset file can
// be picked up. The recipient address is formed from the username
// and the configured domain. Errors are returned for logging, but
// callers must not fail the job on them.
func (n *notifier) DatasetReady(
	filename, location, summary string, req extract.Request,
) error {
	if !n.cfg.Enabled {
		slog.Info("Email notification disabled, skipping")
		return nil
	}

	recipient := fmt.Sprintf("%s@%s", req.Username, n.cfg.UserDomain)
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "localhost"
	}

	subject := fmt.Sprintf("The dataset '%s' is now available", filename)
	body := fmt.Sprintf(
		"The dataset %s is now available on %s at '%s'"+
			"\n\n====DATA SUMMARY====\n%s",
		filename, hostname, location, summary,
	)

	msg := mail.NewMsg()
	if err := msg.From(n.cfg.Sender); err != nil {
		return err
	}
	if err := msg.To(recipient); err != nil {
		return err
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	client, err := mail.NewClient(
		n.cfg.Host,
		mail.WithPort(n.cfg.Port),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	)
	if err != nil {
		return err
	}

	slog.Info("Sending completion mail",
		"from", n.cfg.Sender, "to", recipient)
	return client.DialAndSend(msg)
}
