package email

import (
	"bytes"
	"context"
	"fmt"
	htmltemplate "html/template"
	texttemplate "text/template"

	"github.com/muhammadheryan/property-listing/cmd/config"
	"github.com/muhammadheryan/property-listing/model"
	"github.com/muhammadheryan/property-listing/utils/logger"
	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"
)

// Notifier sends account notifications. Calls are synchronous and never retried.
type Notifier interface {
	SendWelcome(ctx context.Context, user *model.UserEntity) error
}

// Sender is the subset of the SendGrid client used here.
type Sender interface {
	SendWithContext(ctx context.Context, email *mail.SGMailV3) (*rest.Response, error)
}

const welcomeSubject = "Bienvenue sur Immobilier"

var (
	welcomeText = texttemplate.Must(texttemplate.New("welcome.txt").Parse(
		`Bonjour {{.Name}},

Votre compte agence{{if .Agency}} "{{.Agency}}"{{end}} a bien été créé.
Vous pouvez dès maintenant publier vos annonces avec l'adresse {{.Email}}.
`))

	welcomeHTML = htmltemplate.Must(htmltemplate.New("welcome.html").Parse(
		`<p>Bonjour <strong>{{.Name}}</strong>,</p>
<p>Votre compte agence{{if .Agency}} « {{.Agency}} »{{end}} a bien été créé.</p>
<p>Vous pouvez dès maintenant publier vos annonces avec l'adresse {{.Email}}.</p>
`))
)

type sendgridNotifier struct {
	sender Sender
	from   *mail.Email
}

// NewNotifier returns a SendGrid notifier, or a logging no-op when no API key is set.
func NewNotifier(cfg *config.Config) Notifier {
	if cfg.Email.APIKey == "" {
		return noopNotifier{}
	}
	return NewSendGridNotifier(sendgrid.NewSendClient(cfg.Email.APIKey), cfg.Email.SenderName, cfg.Email.Sender)
}

func NewSendGridNotifier(sender Sender, senderName, senderAddress string) Notifier {
	return &sendgridNotifier{
		sender: sender,
		from:   mail.NewEmail(senderName, senderAddress),
	}
}

func (n *sendgridNotifier) SendWelcome(ctx context.Context, user *model.UserEntity) error {
	var text, html bytes.Buffer
	if err := welcomeText.Execute(&text, user); err != nil {
		return fmt.Errorf("render welcome text: %w", err)
	}
	if err := welcomeHTML.Execute(&html, user); err != nil {
		return fmt.Errorf("render welcome html: %w", err)
	}

	to := mail.NewEmail(user.Name, user.Email)
	message := mail.NewSingleEmail(n.from, welcomeSubject, to, text.String(), html.String())

	resp, err := n.sender.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("sendgrid send: %w", err)
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("sendgrid send: status %d: %s", resp.StatusCode, resp.Body)
	}

	logger.Debug("welcome email sent", zap.String("email", user.Email), zap.Int("status", resp.StatusCode))
	return nil
}

type noopNotifier struct{}

func (noopNotifier) SendWelcome(_ context.Context, user *model.UserEntity) error {
	logger.Info("email disabled, welcome email skipped", zap.String("email", user.Email))
	return nil
}
