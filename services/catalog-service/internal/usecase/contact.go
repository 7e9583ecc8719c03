package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/vasapolrittideah/course-catalog-api/shared/mailer"
)

// ContactUsecase delivers contact-form messages to the site owner.
type ContactUsecase interface {
	SendContactMessage(ctx context.Context, msg ContactMessage) error
}

// ContactMessage is a message submitted through the contact form.
type ContactMessage struct {
	Name    string
	Email   string
	Subject string
	Message string
}

var ErrMailerNotConfigured = errors.New("email service not configured")

type contactUsecase struct {
	sender    mailer.Sender
	recipient string
}

// NewContactUsecase creates a ContactUsecase. A nil sender or empty recipient
// makes every send fail with ErrMailerNotConfigured.
func NewContactUsecase(sender mailer.Sender, recipient string) ContactUsecase {
	return &contactUsecase{
		sender:    sender,
		recipient: recipient,
	}
}

func (u *contactUsecase) SendContactMessage(ctx context.Context, msg ContactMessage) error {
	if u.sender == nil || u.recipient == "" {
		return ErrMailerNotConfigured
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	subject := msg.Subject
	if subject == "" {
		subject = "New Contact Form Message"
	}

	return u.sender.Send(mailer.Email{
		To:      []string{u.recipient},
		ReplyTo: msg.Email,
		Subject: subject,
		Body:    fmt.Sprintf("From: %s <%s>\n\n%s", msg.Name, msg.Email, msg.Message),
	})
}
