package service

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"github.com/rs/zerolog"
	"github.com/solar-catalog-api/internal/apperr"
	"github.com/solar-catalog-api/internal/mailer"
	"github.com/solar-catalog-api/internal/models"
	"github.com/solar-catalog-api/internal/render"
	"github.com/solar-catalog-api/internal/validation"
)

var (
	notificationTemplate = template.Must(template.New("notification").Parse(
		`<h2>New contact request</h2>
<p><strong>Name:</strong> {{.Name}}</p>
<p><strong>Email:</strong> {{.Email}}</p>
{{if .Company}}<p><strong>Company:</strong> {{.Company}}</p>
{{end}}{{if .Subject}}<p><strong>Subject:</strong> {{.Subject}}</p>
{{end}}<p>{{.Message}}</p>
`))

	acknowledgementTemplate = template.Must(template.New("acknowledgement").Parse(
		`<p>Hi {{.Name}},</p>
<p>Thanks for reaching out. We received your message and will get back to you soon.</p>
<blockquote>{{.Message}}</blockquote>
`))
)

type contactService struct {
	mailer mailer.Mailer
	from   string
	inbox  string
	log    zerolog.Logger
}

// NewContactService creates a ContactService that notifies inbox and
// acknowledges the submitter, both from the from address
func NewContactService(m mailer.Mailer, from, inbox string, log zerolog.Logger) ContactService {
	return &contactService{
		mailer: m,
		from:   from,
		inbox:  inbox,
		log:    log.With().Str("service", "contact").Logger(),
	}
}

// Submit strips markup from the request, validates it, then sends the
// notification followed by the acknowledgement. The first failed send stops
// the pipeline.
func (s *contactService) Submit(ctx context.Context, req *models.ContactRequest) error {
	clean := &models.ContactRequest{
		Name:    render.PlainText(req.Name),
		Email:   render.PlainText(req.Email),
		Company: render.PlainText(req.Company),
		Subject: render.PlainText(req.Subject),
		Message: render.PlainText(req.Message),
	}
	if err := validation.ValidateContact(clean); err != nil {
		return err
	}

	subject := "New contact request from " + clean.Name
	if clean.Subject != "" {
		subject = "Contact: " + clean.Subject
	}

	notification, err := execute(notificationTemplate, clean)
	if err != nil {
		return err
	}
	if err := s.mailer.Send(ctx, mailer.Message{
		From:    s.from,
		To:      []string{s.inbox},
		Subject: subject,
		HTML:    notification,
		ReplyTo: clean.Email,
	}); err != nil {
		s.log.Error().Err(err).Msg("Failed to send contact notification")
		return fmt.Errorf("send notification: %w: %w", apperr.ErrMailDelivery, err)
	}

	ack, err := execute(acknowledgementTemplate, clean)
	if err != nil {
		return err
	}
	if err := s.mailer.Send(ctx, mailer.Message{
		From:    s.from,
		To:      []string{clean.Email},
		Subject: "We received your message",
		HTML:    ack,
	}); err != nil {
		s.log.Error().Err(err).Msg("Failed to send contact acknowledgement")
		return fmt.Errorf("send acknowledgement: %w: %w", apperr.ErrMailDelivery, err)
	}

	s.log.Info().Str("email", clean.Email).Msg("Contact request delivered")
	return nil
}

func execute(t *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render %s: %w", t.Name(), err)
	}
	return buf.String(), nil
}
