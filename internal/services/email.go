package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/mail"
	"net/smtp"
	"strings"

	"github.com/resend/resend-go/v2"

	"github.com/HammerMeetNail/babysleepoptimizer/internal/config"
	"github.com/HammerMeetNail/babysleepoptimizer/internal/logging"
	"github.com/HammerMeetNail/babysleepoptimizer/internal/models"
)

var (
	ErrInvalidEmail = errors.New("invalid email address")
	ErrMissingPlan  = errors.New("sleep plan is missing or empty")
)

const planEmailSubject = "Your Personalized Baby Sleep Plan"

// Email represents an email to be sent
type Email struct {
	To      string
	Subject string
	HTML    string
	Text    string
}

// EmailProvider is the interface for sending emails
type EmailProvider interface {
	Send(ctx context.Context, email *Email) error
}

// EmailService renders sleep plans and hands them to a provider.
type EmailService struct {
	provider EmailProvider
}

// NewEmailService creates a new email service based on configuration
func NewEmailService(cfg *config.EmailConfig) *EmailService {
	var provider EmailProvider

	from := formatFrom(cfg.FromName, cfg.FromAddress)
	switch cfg.Provider {
	case "resend":
		provider = NewResendProvider(cfg.ResendAPIKey, from)
	case "smtp":
		provider = NewSMTPProvider(cfg.SMTPHost, cfg.SMTPPort, cfg.FromAddress, from)
	default:
		provider = NewConsoleProvider()
	}

	return NewEmailServiceWithProvider(provider)
}

func NewEmailServiceWithProvider(provider EmailProvider) *EmailService {
	return &EmailService{provider: provider}
}

// SendPlan e-mails a plain text and HTML rendering of plan to the given address.
func (s *EmailService) SendPlan(ctx context.Context, to string, plan *models.SleepPlan, answers models.QuizAnswers) error {
	to = strings.TrimSpace(to)
	addr, err := mail.ParseAddress(to)
	if err != nil || addr.Address != to {
		return fmt.Errorf("%w: %q", ErrInvalidEmail, to)
	}
	if plan == nil || len(plan.Schedule) == 0 {
		return ErrMissingPlan
	}

	html, err := renderPlanHTML(plan, answers)
	if err != nil {
		return fmt.Errorf("rendering plan email: %w", err)
	}

	return s.provider.Send(ctx, &Email{
		To:      to,
		Subject: planEmailSubject,
		HTML:    html,
		Text:    renderPlanText(plan, answers),
	})
}

func formatFrom(name, address string) string {
	if name == "" {
		return address
	}
	return fmt.Sprintf("%s <%s>", name, address)
}

// Email templates

const planDisclaimer = "This sleep plan is for educational purposes only and is not medical advice. " +
	"Always consult your pediatrician about your baby's health and development."

func renderPlanText(plan *models.SleepPlan, answers models.QuizAnswers) string {
	var b strings.Builder

	b.WriteString("Your Personalized Baby Sleep Plan\n")
	b.WriteString("=================================\n\n")
	fmt.Fprintf(&b, "Created for: %s\n\n", models.AgeDescription(answers.BabyAge))

	b.WriteString("24-HOUR SCHEDULE\n----------------\n")
	for _, entry := range plan.Schedule {
		fmt.Fprintf(&b, "%s - %s\n", entry.Time, entry.Activity)
	}

	if len(plan.BedtimeRoutine.Steps) > 0 {
		b.WriteString("\nBEDTIME ROUTINE\n---------------\n")
		for i, step := range plan.BedtimeRoutine.Steps {
			fmt.Fprintf(&b, "%d. %s\n   %s\n\n", i+1, step.Title, step.Explanation)
		}
	}

	if len(plan.Expectations) > 0 {
		b.WriteString("\nWHAT TO EXPECT\n--------------\n")
		for _, e := range plan.Expectations {
			fmt.Fprintf(&b, "%s: %s\n", e.Day, e.Description)
		}
	}

	if plan.Encouragement != "" {
		fmt.Fprintf(&b, "\n%s\n", plan.Encouragement)
	}

	b.WriteString("\n\nIMPORTANT DISCLAIMER\n--------------------\n")
	b.WriteString(planDisclaimer)
	b.WriteString("\n\n--\nAI Baby Sleep Optimizer\nbabysleepoptimizer.com\n")

	return b.String()
}

var planHTMLTemplate = template.Must(template.New("plan").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>
<body style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h1 style="color: #333; font-size: 24px;">Your Personalized Baby Sleep Plan</h1>
  <p style="color: #666;">Created for: {{.Age}}</p>

  <h2 style="color: #4F46E5; font-size: 18px;">24-Hour Schedule</h2>
  <table style="border-collapse: collapse; width: 100%;">
  {{- range .Plan.Schedule}}
    <tr><td style="padding: 4px 12px 4px 0; font-weight: bold; white-space: nowrap;">{{.Time}}</td><td style="padding: 4px 0;">{{.Activity}}</td></tr>
  {{- end}}
  </table>
{{if .Plan.BedtimeRoutine.Steps}}
  <h2 style="color: #4F46E5; font-size: 18px;">Bedtime Routine</h2>
  <ol>
  {{- range .Plan.BedtimeRoutine.Steps}}
    <li><strong>{{.Title}}</strong><br>{{.Explanation}}</li>
  {{- end}}
  </ol>
{{end}}
{{- if .Plan.Expectations}}
  <h2 style="color: #4F46E5; font-size: 18px;">What to Expect</h2>
  <ul>
  {{- range .Plan.Expectations}}
    <li><strong>{{.Day}}:</strong> {{.Description}}</li>
  {{- end}}
  </ul>
{{end}}
{{- if .Plan.Encouragement}}
  <p style="background: #EEF2FF; padding: 16px; border-radius: 6px;">{{.Plan.Encouragement}}</p>
{{end}}
  <hr style="border: none; border-top: 1px solid #eee; margin: 30px 0;">
  <p style="color: #999; font-size: 12px;"><strong>Important disclaimer:</strong> {{.Disclaimer}}</p>
  <p style="color: #999; font-size: 12px;">AI Baby Sleep Optimizer - babysleepoptimizer.com</p>
</body>
</html>`))

func renderPlanHTML(plan *models.SleepPlan, answers models.QuizAnswers) (string, error) {
	var buf bytes.Buffer
	err := planHTMLTemplate.Execute(&buf, struct {
		Age        string
		Plan       *models.SleepPlan
		Disclaimer string
	}{
		Age:        models.AgeDescription(answers.BabyAge),
		Plan:       plan,
		Disclaimer: planDisclaimer,
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

// ResendProvider sends emails using the Resend API
type ResendProvider struct {
	client *resend.Client
	from   string
}

func NewResendProvider(apiKey, from string) *ResendProvider {
	return &ResendProvider{
		client: resend.NewClient(apiKey),
		from:   from,
	}
}

func (p *ResendProvider) Send(ctx context.Context, email *Email) error {
	params := &resend.SendEmailRequest{
		From:    p.from,
		To:      []string{email.To},
		Subject: email.Subject,
		Html:    email.HTML,
		Text:    email.Text,
	}

	_, err := p.client.Emails.Send(params)
	if err != nil {
		return fmt.Errorf("sending email via Resend: %w", err)
	}

	logging.Info("Email sent via Resend", map[string]interface{}{"to": email.To, "subject": email.Subject})
	return nil
}

// SMTPProvider sends emails via SMTP (for Mailpit in local dev)
type SMTPProvider struct {
	host     string
	port     int
	envelope string
	from     string
}

func NewSMTPProvider(host string, port int, envelope, from string) *SMTPProvider {
	return &SMTPProvider{host: host, port: port, envelope: envelope, from: from}
}

func (p *SMTPProvider) Send(ctx context.Context, email *Email) error {
	addr := fmt.Sprintf("%s:%d", p.host, p.port)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "From: %s\r\n", p.from)
	fmt.Fprintf(&buf, "To: %s\r\n", email.To)
	fmt.Fprintf(&buf, "Subject: %s\r\n", email.Subject)
	buf.WriteString("MIME-Version: 1.0\r\n")
	buf.WriteString("Content-Type: text/html; charset=utf-8\r\n")
	buf.WriteString("\r\n")
	buf.WriteString(email.HTML)

	err := smtp.SendMail(addr, nil, p.envelope, []string{email.To}, buf.Bytes())
	if err != nil {
		return fmt.Errorf("sending email via SMTP: %w", err)
	}

	logging.Info("Email sent via SMTP", map[string]interface{}{"to": email.To, "subject": email.Subject})
	return nil
}

// ConsoleProvider logs emails to console (for development)
type ConsoleProvider struct{}

func NewConsoleProvider() *ConsoleProvider {
	return &ConsoleProvider{}
}

func (p *ConsoleProvider) Send(ctx context.Context, email *Email) error {
	logging.Info("=== EMAIL (Console Provider) ===", map[string]interface{}{"to": email.To, "subject": email.Subject})
	fmt.Printf("\n=== EMAIL ===\n")
	fmt.Printf("To: %s\n", email.To)
	fmt.Printf("Subject: %s\n", email.Subject)
	fmt.Printf("---\n")
	fmt.Printf("%s\n", email.Text)
	fmt.Printf("=============\n\n")
	return nil
}
