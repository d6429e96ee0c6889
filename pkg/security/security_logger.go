package security

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// EventType represents the type of contact event
type EventType string

const (
	EventContactSent      EventType = "contact_sent"
	EventValidationFailed EventType = "contact_validation_failed"
	EventConfigMissing    EventType = "contact_config_missing"
	EventSendFailed       EventType = "contact_send_failed"
	EventMethodRejected   EventType = "contact_method_rejected"
	EventMalformedBody    EventType = "contact_malformed_body"
)

// ContactEvent represents one contact endpoint outcome to be logged
type ContactEvent struct {
	Service      string                 `json:"service"`
	Environment  string                 `json:"env"`
	Event        EventType              `json:"event"`
	SubjectValue string                 `json:"subject_value,omitempty"` // masked submitter address
	IP           string                 `json:"ip,omitempty"`
	UserAgent    string                 `json:"user_agent,omitempty"`
	RequestID    string                 `json:"request_id,omitempty"`
	Details      map[string]interface{} `json:"details,omitempty"`
}

// EventLogger provides structured logging for contact events. Message bodies
// are never logged and submitter addresses are always masked.
type EventLogger struct {
	zapLogger   *zap.Logger
	serviceName string
	environment string
}

// NewEventLogger builds a production Zap logger writing to stdout.
func NewEventLogger(serviceName, environment string) *EventLogger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.LevelKey = "level"
	config.EncoderConfig.MessageKey = "message"

	// Set output to stdout for container environments
	config.OutputPaths = []string{"stdout"}
	config.ErrorOutputPaths = []string{"stderr"}

	logger, err := config.Build(zap.AddCaller())
	if err != nil {
		// Fallback to a basic logger if config fails
		logger, _ = zap.NewProduction()
	}

	return NewEventLoggerWithZap(logger, serviceName, environment)
}

// NewEventLoggerWithZap wraps an existing Zap logger.
func NewEventLoggerWithZap(logger *zap.Logger, serviceName, environment string) *EventLogger {
	return &EventLogger{
		zapLogger:   logger,
		serviceName: serviceName,
		environment: environment,
	}
}

// NewNopEventLogger discards every event.
func NewNopEventLogger() *EventLogger {
	return NewEventLoggerWithZap(zap.NewNop(), "", "")
}

// Log logs a contact event
func (el *EventLogger) Log(ctx context.Context, event ContactEvent) {
	event.Service = el.serviceName
	event.Environment = el.environment

	level := levelFor(event.Event)

	fields := []zap.Field{
		zap.String("service", event.Service),
		zap.String("env", event.Environment),
		zap.String("event", string(event.Event)),
	}
	if event.SubjectValue != "" {
		fields = append(fields, zap.String("subject_value", event.SubjectValue))
	}
	if event.IP != "" {
		fields = append(fields, zap.String("ip", event.IP))
	}
	if event.UserAgent != "" {
		fields = append(fields, zap.String("user_agent", event.UserAgent))
	}
	if event.RequestID != "" {
		fields = append(fields, zap.String("request_id", event.RequestID))
	}
	if len(event.Details) > 0 {
		detailsJSON, _ := json.Marshal(event.Details)
		fields = append(fields, zap.String("details", string(detailsJSON)))
	}

	el.zapLogger.Log(level, string(event.Event), fields...)
}

func levelFor(event EventType) zapcore.Level {
	switch event {
	case EventContactSent:
		return zapcore.InfoLevel
	case EventConfigMissing, EventSendFailed:
		return zapcore.ErrorLevel
	default:
		return zapcore.WarnLevel
	}
}

// LogOutcome logs the outcome of one contact request. submitter is masked
// before it reaches the log.
func (el *EventLogger) LogOutcome(ctx context.Context, event EventType, submitter, ip, userAgent, requestID string, details map[string]interface{}) {
	var subject string
	if submitter != "" {
		subject = MaskEmail(submitter)
	}
	el.Log(ctx, ContactEvent{
		Event:        event,
		SubjectValue: subject,
		IP:           ip,
		UserAgent:    userAgent,
		RequestID:    requestID,
		Details:      details,
	})
}

// Sync flushes any buffered log entries
func (el *EventLogger) Sync() error {
	return el.zapLogger.Sync()
}

// --- Helper Functions ---

// MaskEmail masks an email for logging (e.g., "j***@example.com")
func MaskEmail(email string) string {
	if utf8.RuneCountInString(email) < 3 {
		return "***"
	}
	atIndex := strings.IndexByte(email, '@')
	if atIndex < 0 {
		return HashValue(email)
	}
	first, size := utf8.DecodeRuneInString(email)
	if atIndex <= size {
		return "***" + email[atIndex:]
	}
	return string(first) + "***" + email[atIndex:]
}

// HashValue creates a SHA256 hash of a value (for logging without PII)
func HashValue(value string) string {
	hash := sha256.Sum256([]byte(value))
	return hex.EncodeToString(hash[:8]) // First 16 chars of hex
}
