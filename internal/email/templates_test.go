package email_test

import (
	"strings"
	"testing"

	"github.com/maxapp/site-backend/internal/email"
)

func TestConfirmationBodyEscapes(t *testing.T) {
	body := email.ConfirmationBody("Eve", `<script>alert("x")</script>`)

	if strings.Contains(body, "<script>") {
		t.Errorf("message not escaped: %s", body)
	}
	if !strings.Contains(body, "Eve") {
		t.Errorf("name missing from body: %s", body)
	}
}

func TestNotificationBodyIncludesFields(t *testing.T) {
	body := email.NotificationBody("Max", "Muster", "max@example.com", "+41 79 123 45 67", "Hello there")

	for _, want := range []string{"Max", "Muster", "max@example.com", "+41 79 123 45 67", "Hello there"} {
		if !strings.Contains(body, want) {
			t.Errorf("notification body missing %q: %s", want, body)
		}
	}
}

func TestReplyBody(t *testing.T) {
	body := email.ReplyBody("Max", "We can start next week.")

	if !strings.Contains(body, "We can start next week.") {
		t.Errorf("reply body missing message: %s", body)
	}
}
