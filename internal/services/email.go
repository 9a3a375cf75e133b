package services

import (
	"context"
	"fmt"
	"log"

	"triporganizer/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
}

// NewEmailService returns an EmailService that uses the given Mailer and template renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer) domain.EmailService {
	return &emailService{mailer: mailer, renderer: renderer}
}

// SendTripInvitation sends a trip invitation email using the "trip_invitation" template.
func (s *emailService) SendTripInvitation(ctx context.Context, data *domain.TripInvitationEmailData) error {
	if data == nil {
		return fmt.Errorf("trip invitation data is nil")
	}
	subject, htmlBody, textBody, err := s.renderer.Render("trip_invitation", data)
	if err != nil {
		return fmt.Errorf("failed to render trip_invitation template: %w", err)
	}
	if err := s.mailer.Send(data.Email, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send trip invitation email: %w", err)
	}
	log.Printf("[EMAIL] Trip invitation sent to %s", data.Email)
	return nil
}
