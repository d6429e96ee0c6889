package usecase

import (
	"context"
	"errors"

	"portfolio-backend/config"
	"portfolio-backend/internal/domain"
	"portfolio-backend/pkg/apperror"
	"portfolio-backend/pkg/email"
	"portfolio-backend/pkg/logger"
	"portfolio-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
)

type contactUsecase struct {
	cfg       *config.Config
	newSender email.Factory
	validate  *validator.Validate
}

// NewContactUsecase creates a new contact usecase. A fresh sender is built
// from factory for every submission.
func NewContactUsecase(cfg *config.Config, factory email.Factory, validate *validator.Validate) domain.ContactUsecase {
	validation.RegisterValidators(validate)
	return &contactUsecase{
		cfg:       cfg,
		newSender: factory,
		validate:  validate,
	}
}

func (uc *contactUsecase) EmailConfigured() bool {
	return uc.cfg.IsEmailConfigured()
}

// SendContactMessage validates the contact request and sends the email.
// Verification always completes before sending; neither step is retried.
func (uc *contactUsecase) SendContactMessage(ctx context.Context, req *domain.ContactRequest) (*domain.ContactReceipt, error) {
	if err := uc.validate.Struct(req); err != nil {
		logger.Log.Debug("Contact validation failed", "errors", validation.FormatValidationErrors(err))
		switch {
		case validation.HasTag(err, "required"):
			return nil, apperror.BadRequest(apperror.MsgMissingFields)
		case validation.HasTag(err, "contact_email"):
			return nil, apperror.BadRequest(apperror.MsgInvalidEmail)
		default:
			return nil, apperror.Internal(err)
		}
	}

	if !uc.cfg.IsEmailConfigured() {
		logger.Log.Error("SMTP credentials not configured")
		return nil, apperror.NotConfigured()
	}

	sender := uc.newSender(uc.cfg.SMTP())

	if err := sender.Verify(ctx); err != nil {
		logger.Log.Error("SMTP verification failed", "error", err)
		return nil, mapSendError(err)
	}

	htmlBody, textBody, err := email.RenderContact(email.ContactData{
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
	})
	if err != nil {
		return nil, apperror.SendFailed(err)
	}

	messageID, err := sender.Send(ctx, email.Message{
		FromName: uc.cfg.SMTPFromName,
		From:     uc.cfg.SMTPUsername,
		To:       uc.cfg.Recipient(),
		ReplyTo:  req.Email,
		Subject:  email.ContactSubject(req.Name),
		HTMLBody: htmlBody,
		TextBody: textBody,
	})
	if err != nil {
		logger.Log.Error("Error sending email", "error", err)
		return nil, mapSendError(err)
	}

	logger.Log.Info("Email sent successfully", "message_id", messageID)
	return &domain.ContactReceipt{MessageID: messageID}, nil
}

func mapSendError(err error) *apperror.AppError {
	switch {
	case errors.Is(err, email.ErrAuth):
		return apperror.TransportAuth(err)
	case errors.Is(err, email.ErrConnection):
		return apperror.TransportConnection(err)
	default:
		return apperror.SendFailed(err)
	}
}
