package email

import (
	"context"
	"fmt"
	"html"

	"github.com/sirupsen/logrus"
)

// Sender is the outbound mail transport. There is no retry policy: a
// transport failure is returned to the caller as is.
type Sender interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// Service renders the fixed notification templates and hands them to the
// transport. All caller-supplied fields are HTML-escaped before rendering.
type Service struct {
	sender Sender
}

func NewService(sender Sender) *Service {
	return &Service{sender: sender}
}

func (s *Service) SendUserRegistrationEmail(ctx context.Context, to, name string) error {
	body := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
    <title>Welcome to Event Management App</title>
</head>
<body>
    <h1>Welcome %s!</h1>
    <p>Thank you for registering with our Event Management App.</p>
</body>
</html>`, html.EscapeString(name))

	return s.sender.Send(ctx, to, "Welcome to Event Management App", body)
}

func (s *Service) SendEventRegistrationEmail(ctx context.Context, to, name, eventTitle, eventDate string) error {
	body := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
    <title>Event Registration Confirmation</title>
</head>
<body>
    <h1>Event Registration Confirmation</h1>
    <p>Dear %s,</p>
    <p>You have successfully registered for the event:</p>
    <h2>%s</h2>
    <p>Event Date: %s</p>
    <p>We look forward to seeing you there!</p>
</body>
</html>`,
		html.EscapeString(name),
		html.EscapeString(eventTitle),
		html.EscapeString(eventDate),
	)

	return s.sender.Send(ctx, to, "Event Registration Confirmation", body)
}

func (s *Service) SendEventUpdateEmail(ctx context.Context, to, name, eventTitle, changes string) error {
	body := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
    <title>Event Update Notification</title>
</head>
<body>
    <h1>Event Update Notification</h1>
    <p>Dear %s,</p>
    <p>There have been changes to the event you registered for:</p>
    <h2>%s</h2>
    <p>Changes made:</p>
    <p>%s</p>
    <p>Please review these changes and contact us if you have any questions.</p>
</body>
</html>`,
		html.EscapeString(name),
		html.EscapeString(eventTitle),
		html.EscapeString(changes),
	)

	return s.sender.Send(ctx, to, "Event Update Notification", body)
}

// NoopSender is used when outbound email is not configured. Notifications
// are logged and dropped.
type NoopSender struct{}

func (NoopSender) Send(_ context.Context, to, subject, _ string) error {
	logrus.WithFields(logrus.Fields{
		"to":      to,
		"subject": subject,
	}).Info("Email sending disabled, dropping message")
	return nil
}
