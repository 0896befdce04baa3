package mailer

import (
	"bytes"
	"fmt"
	"html/template"
	"log"
	texttemplate "text/template"

	"gopkg.in/gomail.v2"
)

// Mailer is the notification channel: it renders a named template with the
// given payload and delivers it over SMTP. The dialer is constructed once
// at startup and shared.
type Mailer struct {
	dialer   *gomail.Dialer
	from     string
	subjects map[string]*texttemplate.Template
	bodies   map[string]*template.Template
}

type Config struct {
	SMTPHost string
	SMTPPort int
	From     string
	Password string
}

func New(cfg Config) (*Mailer, error) {
	m := &Mailer{
		dialer:   gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.From, cfg.Password),
		from:     cfg.From,
		subjects: make(map[string]*texttemplate.Template),
		bodies:   make(map[string]*template.Template),
	}

	for name, def := range templates {
		subject, err := texttemplate.New(name).Parse(def.subject)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s subject template: %v", name, err)
		}
		body, err := template.New(name).Parse(def.body)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s body template: %v", name, err)
		}
		m.subjects[name] = subject
		m.bodies[name] = body
	}

	return m, nil
}

// Send renders the named template and mails it. Errors surface to the
// caller so a failed delivery leaves schedules and order flows retryable.
func (m *Mailer) Send(to, templateName string, data map[string]interface{}) error {
	subject, body, err := m.Render(templateName, data)
	if err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", fmt.Sprintf("E-Jardin <%s>", m.from))
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send %s email to %s: %v", templateName, to, err)
	}

	log.Printf("Email sent: %s to %s", templateName, to)
	return nil
}

// Render produces the subject and HTML body for a template without sending.
func (m *Mailer) Render(templateName string, data map[string]interface{}) (string, string, error) {
	subjectTmpl, ok := m.subjects[templateName]
	if !ok {
		return "", "", fmt.Errorf("unknown email template: %s", templateName)
	}

	var subject bytes.Buffer
	if err := subjectTmpl.Execute(&subject, data); err != nil {
		return "", "", fmt.Errorf("failed to render %s subject: %v", templateName, err)
	}

	var body bytes.Buffer
	if err := m.bodies[templateName].Execute(&body, data); err != nil {
		return "", "", fmt.Errorf("failed to render %s body: %v", templateName, err)
	}

	return subject.String(), body.String(), nil
}
