package notify

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/resend/resend-go/v2"

	"github.com/primefit-labs/training-scheduler/internal/config"
)

// EmailSender delivers transactional email through Resend. With no API key
// configured it degrades to a no-op that only logs, which keeps local
// development free of external calls.
type EmailSender struct {
	client *resend.Client
	from   string
}

func NewEmailSender(cfg *config.Config) *EmailSender {
	s := &EmailSender{from: cfg.EmailFrom}
	if cfg.ResendAPIKey != "" {
		s.client = resend.NewClient(cfg.ResendAPIKey)
	}
	return s
}

// SendParentNotification emails a parent/guardian that a minor signed up.
// Fire-and-forget: callers run this in a goroutine and the HTTP response
// never waits on it.
func (s *EmailSender) SendParentNotification(parentEmail, athleteName string) {
	subject := "Training account created for " + athleteName
	html := fmt.Sprintf(
		"<p>Hi,</p><p>An athlete account was just created for <strong>%s</strong>. "+
			"As the listed parent or guardian you can reply to this email with any questions.</p>",
		athleteName,
	)

	if s.client == nil {
		log.Printf("email disabled, would notify %s: %s", parentEmail, subject)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	sent, err := s.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{parentEmail},
		Subject: subject,
		Html:    html,
	})
	if err != nil {
		log.Printf("parent notification to %s failed: %v", parentEmail, err)
		return
	}

	log.Printf("parent notification sent to %s (id %s)", parentEmail, sent.Id)
}
