package domain

import "context"

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// WelcomeEmailData holds data for the welcome email sent on registration.
type WelcomeEmailData struct {
	Email    string
	Username string
}

// InviteEmailData holds data for the invite and reminder emails.
type InviteEmailData struct {
	Email      string
	GuestName  string
	ShaadiName string
	BrideName  string
	GroomName  string
	InviteLink string
	InviteCode string
}

// EmailService defines the contract for sending domain-level emails.
type EmailService interface {
	SendWelcome(ctx context.Context, data *WelcomeEmailData) error
	SendInvite(ctx context.Context, data *InviteEmailData) error
	SendReminder(ctx context.Context, data *InviteEmailData) error
}
