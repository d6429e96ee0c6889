package domain

import "context"

// ContactRequest represents a contact form submission. Presence and email
// shape are checked by the usecase; the handler only guarantees the JSON shape.
type ContactRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,contact_email"`
	Message string `json:"message" validate:"required"`
}

// ContactReceipt is returned once the notification email was accepted by the transport.
type ContactReceipt struct {
	MessageID string
}

// ContactUsecase defines the interface for contact form operations
type ContactUsecase interface {
	// SendContactMessage validates the submission and emails it to the site owner.
	SendContactMessage(ctx context.Context, req *ContactRequest) (*ContactReceipt, error)
	// EmailConfigured reports whether SMTP credentials are present.
	EmailConfigured() bool
}
