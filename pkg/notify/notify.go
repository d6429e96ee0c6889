// Package notify shows one transient notification at a time and dismisses it
// automatically after a timeout.
package notify

import (
	"sync"
	"time"
)

type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindInfo    Kind = "info"
	KindWarning Kind = "warning"
)

// DefaultTimeout is how long a notification stays visible.
const DefaultTimeout = 5 * time.Second

// Notification is a single displayed message.
type Notification struct {
	ID      uint64
	Message string
	Kind    Kind
	ShownAt time.Time
}

// Display renders notifications. Its methods are called with the presenter
// lock held and must not call back into the Presenter.
type Display interface {
	Show(n Notification)
	Hide(n Notification)
}

// Timer is the part of *time.Timer the presenter needs.
type Timer interface {
	Stop() bool
}

// Scheduler runs f once after d.
type Scheduler func(d time.Duration, f func()) Timer

type Option func(*Presenter)

// WithTimeout overrides the auto-dismiss delay.
func WithTimeout(d time.Duration) Option {
	return func(p *Presenter) {
		if d > 0 {
			p.timeout = d
		}
	}
}

// WithScheduler replaces time.AfterFunc, mainly for tests.
func WithScheduler(s Scheduler) Option {
	return func(p *Presenter) {
		if s != nil {
			p.schedule = s
		}
	}
}

type Presenter struct {
	mu       sync.Mutex
	display  Display
	timeout  time.Duration
	schedule Scheduler
	now      func() time.Time

	nextID  uint64
	current *Notification
	timer   Timer
}

func New(display Display, opts ...Option) *Presenter {
	p := &Presenter{
		display: display,
		timeout: DefaultTimeout,
		schedule: func(d time.Duration, f func()) Timer {
			return time.AfterFunc(d, f)
		},
		now: time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Notify replaces whatever is on screen with message and arms its
// auto-dismiss timer. Unknown kinds are shown as info.
func (p *Presenter) Notify(message string, kind Kind) Notification {
	switch kind {
	case KindSuccess, KindError, KindInfo, KindWarning:
	default:
		kind = KindInfo
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.clearLocked()

	p.nextID++
	n := Notification{ID: p.nextID, Message: message, Kind: kind, ShownAt: p.now()}
	p.current = &n
	p.display.Show(n)

	id := n.ID
	p.timer = p.schedule(p.timeout, func() { p.Dismiss(id) })
	return n
}

// Dismiss hides notification id if it is still the one on screen. It returns
// false when id was already dismissed or replaced, so a late timer is harmless.
func (p *Presenter) Dismiss(id uint64) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.current == nil || p.current.ID != id {
		return false
	}
	p.clearLocked()
	return true
}

// Current returns the visible notification, if any.
func (p *Presenter) Current() (Notification, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.current == nil {
		return Notification{}, false
	}
	return *p.current, true
}

func (p *Presenter) clearLocked() {
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
	if p.current != nil {
		p.display.Hide(*p.current)
		p.current = nil
	}
}
