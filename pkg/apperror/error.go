package apperror

import "net/http"

// Kind classifies an AppError for logging and for callers that need to
// branch on the failure without comparing message text.
type Kind string

const (
	KindValidation          Kind = "validation"
	KindConfiguration       Kind = "configuration"
	KindTransportAuth       Kind = "transport_auth"
	KindTransportConnection Kind = "transport_connection"
	KindSendFailed          Kind = "send_failed"
	KindMethodNotAllowed    Kind = "method_not_allowed"
	KindInternal            Kind = "internal"
)

// User-facing messages of the contact endpoint.
const (
	MsgMissingFields    = "Missing required fields: name, email, and message are required"
	MsgInvalidEmail     = "Invalid email format"
	MsgInvalidBody      = "Invalid request body"
	MsgMethodNotAllowed = "Method not allowed"
	MsgNotConfigured    = "Email service not configured. Please contact the administrator."
	MsgAuthFailed       = "Authentication failed. Please check SMTP credentials."
	MsgConnectionFailed = "Connection failed. Please check SMTP settings."
	MsgSendFailed       = "Failed to send email. Please try again later."
)

type AppError struct {
	Code    int    `json:"code"`
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code int, kind Kind, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

func BadRequest(message string) *AppError {
	return New(http.StatusBadRequest, KindValidation, message, nil)
}

func MethodNotAllowed() *AppError {
	return New(http.StatusMethodNotAllowed, KindMethodNotAllowed, MsgMethodNotAllowed, nil)
}

func NotConfigured() *AppError {
	return New(http.StatusInternalServerError, KindConfiguration, MsgNotConfigured, nil)
}

func TransportAuth(err error) *AppError {
	return New(http.StatusInternalServerError, KindTransportAuth, MsgAuthFailed, err)
}

func TransportConnection(err error) *AppError {
	return New(http.StatusInternalServerError, KindTransportConnection, MsgConnectionFailed, err)
}

func SendFailed(err error) *AppError {
	return New(http.StatusInternalServerError, KindSendFailed, MsgSendFailed, err)
}

func Internal(err error) *AppError {
	return New(http.StatusInternalServerError, KindInternal, MsgSendFailed, err)
}
