// Package contactform drives one contact form: inline field errors, the busy
// state of the submit control, and the notification shown for each outcome.
package contactform

import (
	"context"
	"errors"
	"sync"

	"portfolio-backend/pkg/contactclient"
	"portfolio-backend/pkg/notify"
	"portfolio-backend/pkg/validation"
)

const (
	MsgFixErrors  = "Please fix the errors above."
	MsgSent       = "Message sent successfully! I'll get back to you soon."
	MsgRejected   = "Failed to send message. Please try again."
	MsgUnexpected = "An error occurred. Please try again later."
)

// ErrInvalid is returned by Submit when a field fails validation; FieldError
// has the details.
var ErrInvalid = errors.New("contact form has invalid fields")

type Submitter interface {
	Submit(ctx context.Context, s contactclient.Submission) (*contactclient.Result, error)
}

type Notifier interface {
	Notify(message string, kind notify.Kind) notify.Notification
}

// Control is the submit button: disabled with a busy indicator while a
// submission is in flight.
type Control interface {
	SetBusy(busy bool)
}

type Form struct {
	submitter Submitter
	notifier  Notifier
	control   Control

	mu     sync.Mutex
	errors map[validation.FieldKind]string
}

func New(submitter Submitter, notifier Notifier, control Control) *Form {
	return &Form{
		submitter: submitter,
		notifier:  notifier,
		control:   control,
		errors:    make(map[validation.FieldKind]string),
	}
}

// ValidateField checks one field and records or clears its inline error.
func (f *Form) ValidateField(kind validation.FieldKind, value string) validation.FieldResult {
	res := validation.ValidateField(kind, value)

	f.mu.Lock()
	defer f.mu.Unlock()
	if res.Valid {
		delete(f.errors, kind)
	} else {
		f.errors[kind] = res.Message
	}
	return res
}

// EditField clears the inline error of a field the user is changing.
func (f *Form) EditField(kind validation.FieldKind) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.errors, kind)
}

func (f *Form) FieldError(kind validation.FieldKind) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	msg, ok := f.errors[kind]
	return msg, ok
}

func (f *Form) HasErrors() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.errors) > 0
}

// Validate runs every field check, replacing the recorded inline errors.
func (f *Form) Validate(s contactclient.Submission) bool {
	failures := validation.ValidateSubmission(s.Name, s.Email, s.Message)

	f.mu.Lock()
	defer f.mu.Unlock()
	clear(f.errors)
	for _, r := range failures {
		f.errors[r.Field] = r.Message
	}
	return len(failures) == 0
}

// Submit validates s, sends it, and reports the outcome through the notifier.
// The control is released on every path, including a panicking submitter.
func (f *Form) Submit(ctx context.Context, s contactclient.Submission) (*contactclient.Result, error) {
	if !f.Validate(s) {
		f.notifier.Notify(MsgFixErrors, notify.KindError)
		return nil, ErrInvalid
	}

	f.control.SetBusy(true)
	defer f.control.SetBusy(false)

	res, err := f.submitter.Submit(ctx, s)
	if err != nil {
		var serverErr *contactclient.ServerError
		switch {
		case errors.As(err, &serverErr) && serverErr.Message != "":
			f.notifier.Notify(serverErr.Message, notify.KindError)
		case errors.As(err, &serverErr):
			f.notifier.Notify(MsgRejected, notify.KindError)
		default:
			f.notifier.Notify(MsgUnexpected, notify.KindError)
		}
		return nil, err
	}

	f.notifier.Notify(MsgSent, notify.KindSuccess)
	f.clearErrors()
	return res, nil
}

func (f *Form) clearErrors() {
	f.mu.Lock()
	defer f.mu.Unlock()
	clear(f.errors)
}
