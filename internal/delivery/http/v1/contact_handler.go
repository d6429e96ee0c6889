package v1

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"portfolio-backend/internal/delivery/http/middleware"
	"portfolio-backend/internal/delivery/http/response"
	"portfolio-backend/internal/domain"
	"portfolio-backend/pkg/apperror"
	"portfolio-backend/pkg/security"

	"github.com/gin-gonic/gin"
)

const (
	// ContactPath is the endpoint the portfolio page posts to.
	ContactPath = "/api/contact"
	// LegacyContactPath keeps the original page script working unchanged.
	LegacyContactPath = "/.netlify/functions/contact"

	maxContactBodyBytes = 64 << 10
)

type ContactHandler struct {
	contactUC domain.ContactUsecase
	events    *security.EventLogger
}

// NewContactHandler registers the contact routes (public, no auth required).
// Every method is routed to the handler so that it owns preflight and 405.
func NewContactHandler(public *gin.RouterGroup, contactUC domain.ContactUsecase, events *security.EventLogger) {
	handler := &ContactHandler{
		contactUC: contactUC,
		events:    events,
	}

	public.Any(ContactPath, handler.SubmitContact)
	public.Any(LegacyContactPath, handler.SubmitContact)
}

// SubmitContact godoc
// @Summary      Submit Contact Form
// @Description  Emails a contact form submission to the site owner. OPTIONS answers the CORS preflight.
// @Tags         contact
// @Accept       json
// @Produce      json
// @Param        contact  body      domain.ContactRequest  true  "Contact Form Data"
// @Success      200      {object}  response.SendResult
// @Failure      400      {object}  response.ErrorBody
// @Failure      405      {object}  response.ErrorBody
// @Failure      500      {object}  response.ErrorBody
// @Router       /api/contact [post]
func (h *ContactHandler) SubmitContact(c *gin.Context) {
	switch c.Request.Method {
	case http.MethodOptions:
		response.Message(c, http.StatusOK, "CORS preflight successful")
		return
	case http.MethodPost:
	default:
		h.logOutcome(c, security.EventMethodRejected, "", map[string]interface{}{"method": c.Request.Method})
		c.Error(apperror.MethodNotAllowed())
		return
	}

	body := http.MaxBytesReader(c.Writer, c.Request.Body, maxContactBodyBytes)
	req, err := decodeContactRequest(body)
	if err != nil {
		h.logFailure(c, "", err)
		c.Error(err)
		return
	}

	receipt, err := h.contactUC.SendContactMessage(c.Request.Context(), req)
	if err != nil {
		h.logFailure(c, req.Email, err)
		c.Error(err)
		return
	}

	h.logOutcome(c, security.EventContactSent, req.Email, map[string]interface{}{"message_id": receipt.MessageID})
	response.Success(c, http.StatusOK, "Email sent successfully!", receipt.MessageID)
}

// contactFields are the only keys a contact body may carry. encoding/json
// matches struct fields case-insensitively, so the keys are checked first.
var contactFields = map[string]bool{"name": true, "email": true, "message": true}

// decodeContactRequest parses the body into a ContactRequest. Wrong types and
// unknown or differently cased fields are client mistakes (400); anything that
// is not JSON at all takes the internal error path (500).
func decodeContactRequest(body io.Reader) (*domain.ContactRequest, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, apperror.Internal(fmt.Errorf("read contact body: %w", err))
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	var fields map[string]json.RawMessage
	if err := dec.Decode(&fields); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, apperror.BadRequest(apperror.MsgInvalidBody)
		}
		return nil, apperror.Internal(fmt.Errorf("malformed contact body: %w", err))
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, apperror.Internal(errors.New("malformed contact body: trailing data"))
	}
	for key := range fields {
		if !contactFields[key] {
			return nil, apperror.BadRequest(apperror.MsgInvalidBody)
		}
	}

	var req domain.ContactRequest
	if err := json.Unmarshal(data, &req); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, apperror.BadRequest(apperror.MsgInvalidBody)
		}
		return nil, apperror.Internal(fmt.Errorf("malformed contact body: %w", err))
	}
	return &req, nil
}

func (h *ContactHandler) logFailure(c *gin.Context, submitter string, err error) {
	event := security.EventSendFailed
	details := map[string]interface{}{}

	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		details["kind"] = appErr.Kind
		switch appErr.Kind {
		case apperror.KindValidation:
			event = security.EventValidationFailed
			details["reason"] = appErr.Message
		case apperror.KindConfiguration:
			event = security.EventConfigMissing
		case apperror.KindInternal:
			if submitter == "" {
				event = security.EventMalformedBody
			}
		}
	}
	h.logOutcome(c, event, submitter, details)
}

func (h *ContactHandler) logOutcome(c *gin.Context, event security.EventType, submitter string, details map[string]interface{}) {
	if h.events == nil {
		return
	}
	h.events.LogOutcome(
		c.Request.Context(),
		event,
		submitter,
		c.ClientIP(),
		c.GetHeader("User-Agent"),
		c.GetString(middleware.RequestIDKey),
		details,
	)
}
