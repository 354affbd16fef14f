package notify

import (
	"bytes"
	"context"
	"html/template"

	"burn_tokens_back/models"

	"github.com/pkg/errors"
)

// Notifier is told about every burn after it has been stored.
type Notifier interface {
	BurnCreated(ctx context.Context, burn models.BurnRecord) error
}

type Nop struct{}

func (Nop) BurnCreated(context.Context, models.BurnRecord) error { return nil }

// Mail describes where burn notification emails come from and go to.
type Mail struct {
	From     string
	FromName string
	To       string
}

const subject = "New token burn recorded"

var bodyTemplate = template.Must(template.New("burn").Funcs(template.FuncMap{
	"timestamp": models.FormatTimestamp,
}).Parse(`<body style="margin:0;padding:0;background:#f6f6f6;">
  <table width="100%" cellpadding="0" cellspacing="0" border="0" style="max-width:600px;background:#f3f2f0;border-radius:28px;">
    <tr>
      <td style="padding:32px;font-family:Arial,sans-serif;">
        <h1 style="margin:0 0 12px 0;font-size:28px;color:#111;">Burn #{{.ID}}</h1>
        <table cellpadding="0" cellspacing="0" border="0" style="width:100%;">
          <tr><td style="color:#555;padding:6px 0;">Token address:</td><td style="color:#111;font-weight:bold;">{{.TokenAddress}}</td></tr>
          <tr><td style="color:#555;padding:6px 0;">Amount:</td><td style="color:#111;font-weight:bold;">{{.Amount}}</td></tr>
          <tr><td style="color:#555;padding:6px 0;">Reason:</td><td style="color:#111;">{{.Reason}}</td></tr>
          <tr><td style="color:#555;padding:6px 0;">Time:</td><td style="color:#111;">{{timestamp .Timestamp}}</td></tr>
          <tr><td style="color:#555;padding:6px 0;">Tx hash:</td><td style="color:#111;font-family:monospace;">{{.TxHash}}</td></tr>
        </table>
      </td>
    </tr>
  </table>
</body>`))

func renderBody(burn models.BurnRecord) (string, error) {
	var buf bytes.Buffer
	if err := bodyTemplate.Execute(&buf, burn); err != nil {
		return "", err
	}
	return buf.String(), nil
}

const (
	ProviderNone    = ""
	ProviderMailjet = "mailjet"
	ProviderSMTP    = "smtp"
)

type Config struct {
	Provider string
	Mail     Mail
	SMTP     SMTPConfig

	MailjetAPIKey    string
	MailjetSecretKey string
}

// New returns the notifier selected by cfg.Provider; an empty provider disables notifications.
func New(cfg Config) (Notifier, error) {
	switch cfg.Provider {
	case ProviderNone:
		return Nop{}, nil
	case ProviderMailjet:
		n, err := NewMailjet(cfg.MailjetAPIKey, cfg.MailjetSecretKey, cfg.Mail)
		if err != nil {
			return nil, err
		}
		return n, nil
	case ProviderSMTP:
		n, err := NewSMTP(cfg.SMTP, cfg.Mail)
		if err != nil {
			return nil, err
		}
		return n, nil
	default:
		return nil, errors.Errorf("unknown notify provider %q", cfg.Provider)
	}
}
