package notify

import (
	"context"

	"burn_tokens_back/models"

	"github.com/pkg/errors"
	"gopkg.in/gomail.v2"
)

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
}

type dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTP sends burn notifications through a plain SMTP relay.
type SMTP struct {
	dialer dialer
	mail   Mail
}

func NewSMTP(cfg SMTPConfig, mail Mail) (*SMTP, error) {
	if cfg.Host == "" {
		return nil, errors.New("smtp host must be set")
	}
	return &SMTP{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		mail:   mail,
	}, nil
}

func (s *SMTP) BurnCreated(_ context.Context, burn models.BurnRecord) error {
	m, err := s.message(burn)
	if err != nil {
		return err
	}
	return errors.Wrap(s.dialer.DialAndSend(m), "smtp send")
}

func (s *SMTP) message(burn models.BurnRecord) (*gomail.Message, error) {
	body, err := renderBody(burn)
	if err != nil {
		return nil, errors.Wrap(err, "render notification")
	}
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.mail.From, s.mail.FromName)
	m.SetHeader("To", s.mail.To)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)
	return m, nil
}
