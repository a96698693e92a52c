package mail

import (
	"bytes"
	"embed"
	"fmt"
	"text/template"

	"gopkg.in/gomail.v2"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Only two templates exist today. Every accepted language that is not
// French falls back to English until the missing translations land.
var welcomeSubjects = map[string]string{
	"en": "Welcome to The Architech! You're on the list 🚀",
	"fr": "Bienvenue chez The Architech ! Vous êtes sur la liste 🚀",
}

func NewEmailSender(host string, port int, user, password, from string) *EmailSender {
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		From:     from,
	}
}

func (s *EmailSender) SendWelcome(to, language, referralCode string) error {
	lang := templateLanguage(language)

	body, err := renderWelcomeBody(lang, WelcomeEmailData{ReferralCode: referralCode})
	if err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", welcomeSubjects[lang])
	m.SetBody("text/html", body)

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send welcome email over SMTP: %w", err)
	}

	return nil
}

func templateLanguage(language string) string {
	if language == "fr" {
		return "fr"
	}
	return "en"
}

func renderWelcomeBody(lang string, data WelcomeEmailData) (string, error) {
	name := fmt.Sprintf("templates/welcome_%s.html", lang)

	t, err := template.ParseFS(templatesFS, name)
	if err != nil {
		return "", fmt.Errorf("failed to parse welcome template %s: %w", name, err)
	}

	var body bytes.Buffer
	if err := t.Execute(&body, data); err != nil {
		return "", fmt.Errorf("failed to render welcome template: %w", err)
	}

	return body.String(), nil
}
