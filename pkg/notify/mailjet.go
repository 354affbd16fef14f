package notify

import (
	"context"

	"burn_tokens_back/models"

	"github.com/mailjet/mailjet-apiv3-go/v4"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Mailjet sends burn notifications through the Mailjet v3.1 send API.
type Mailjet struct {
	client *mailjet.Client
	mail   Mail
}

func NewMailjet(apiKey, secretKey string, mail Mail) (*Mailjet, error) {
	if apiKey == "" || secretKey == "" {
		return nil, errors.New("MAILJET_API_KEY and MAILJET_SECRET_KEY must be set")
	}
	return &Mailjet{
		client: mailjet.NewMailjetClient(apiKey, secretKey),
		mail:   mail,
	}, nil
}

func (m *Mailjet) BurnCreated(_ context.Context, burn models.BurnRecord) error {
	messages, err := m.messages(burn)
	if err != nil {
		return err
	}
	res, err := m.client.SendMailV31(messages)
	if err != nil {
		return errors.Wrap(err, "mailjet send")
	}
	logrus.WithField("burn_id", burn.ID).Debugf("mailjet response: %+v", res)
	return nil
}

func (m *Mailjet) messages(burn models.BurnRecord) (*mailjet.MessagesV31, error) {
	body, err := renderBody(burn)
	if err != nil {
		return nil, errors.Wrap(err, "render notification")
	}
	return &mailjet.MessagesV31{Info: []mailjet.InfoMessagesV31{
		{
			From: &mailjet.RecipientV31{
				Email: m.mail.From,
				Name:  m.mail.FromName,
			},
			To: &mailjet.RecipientsV31{
				{Email: m.mail.To},
			},
			Subject:  subject,
			HTMLPart: body,
		},
	}}, nil
}
