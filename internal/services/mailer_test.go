package services

import (
	"strings"
	"testing"
)

func TestBuildResetEmail(t *testing.T) {
	subject, body := BuildResetEmail("https://app.example.com/reset", "abc+def/ghi")
	if subject == "" {
		t.Fatal("empty subject")
	}
	if !strings.Contains(body, "https://app.example.com/reset?token=abc%2Bdef%2Fghi") {
		t.Fatalf("link missing or token not escaped:\n%s", body)
	}
	if !strings.Contains(body, "expires") {
		t.Fatalf("expiry note missing:\n%s", body)
	}
}

func TestMailerDisabledWithoutUser(t *testing.T) {
	mailer := Mailer{Host: "smtp.example.com", Port: 587}
	if mailer.Enabled() {
		t.Fatal("mailer without a user should be disabled")
	}
	if err := mailer.Send("to@example.com", "subject", "<p>hi</p>"); err == nil {
		t.Fatal("disabled mailer sent without error")
	}
}

func TestMailerEnabled(t *testing.T) {
	mailer := Mailer{Host: "smtp.example.com", Port: 587, User: "app@example.com", Password: "x"}
	if !mailer.Enabled() {
		t.Fatal("configured mailer should be enabled")
	}
}
