package services

import (
	"fmt"
	"net/url"

	"gopkg.in/gomail.v2"
)

// Mailer sends transactional mail over SMTP. An empty user disables sending,
// which keeps local development from needing credentials.
type Mailer struct {
	Host     string
	Port     int
	User     string
	Password string
}

func (m Mailer) Enabled() bool {
	return m.User != ""
}

func (m Mailer) Send(to, subject, htmlBody string) error {
	if !m.Enabled() {
		return ErrBadRequest("mail sending is not configured")
	}
	message := gomail.NewMessage()
	message.SetHeader("From", m.User)
	message.SetHeader("To", to)
	message.SetHeader("Subject", subject)
	message.SetBody("text/html", htmlBody)
	dialer := gomail.NewDialer(m.Host, m.Port, m.User, m.Password)
	return dialer.DialAndSend(message)
}

// BuildResetEmail renders the password-reset mail for the given signed token.
func BuildResetEmail(resetURLBase, token string) (string, string) {
	link := resetURLBase + "?token=" + url.QueryEscape(token)
	subject := "Reset your password"
	body := fmt.Sprintf(`<p>A password reset was requested for your account.</p>
<p><a href="%s">Click here to choose a new password.</a></p>
<p>The link expires in one hour. If you did not request this, ignore this email.</p>`, link)
	return subject, body
}
