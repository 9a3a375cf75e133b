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

// TripInvitationEmailData holds data for the trip invitation email.
type TripInvitationEmailData struct {
	Email       string
	OwnerName   string
	TripName    string
	Destination string
	StartDate   string
	EndDate     string
}

// EmailService defines the contract for sending domain-level emails.
type EmailService interface {
	SendTripInvitation(ctx context.Context, data *TripInvitationEmailData) error
}
