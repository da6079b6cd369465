// Package contact simulates the contact form submission: it validates the
// form, waits an artificial delay and answers with a single notification.
// Nothing is sent anywhere.
package contact

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"songdeming.dev/portfolio-web/internal/i18n"
)

// DefaultDelay is the artificial latency of a submission.
const DefaultDelay = time.Second

const maxMessageRunes = 5000

// ErrInvalid is matched by every ValidationError.
var ErrInvalid = errors.New("contact: invalid form")

// Notification is the toast shown after a successful submission.
var Notification = Message{
	Title:       i18n.P("Message sent!", "消息已发送！"),
	Description: i18n.P("Thank you for reaching out. I'll get back to you soon.", "感谢您的联系。我会尽快回复您。"),
}

// Message is a localized title and description pair.
type Message struct {
	Title       i18n.Pair
	Description i18n.Pair
}

// Form holds the three contact inputs.
type Form struct {
	Name    string
	Email   string
	Message string
}

// Empty reports whether every field is blank.
func (f Form) Empty() bool {
	return f.Name == "" && f.Email == "" && f.Message == ""
}

// FieldError explains why one field was rejected.
type FieldError struct {
	Field   string
	Message i18n.Pair
}

// ValidationError lists every rejected field.
type ValidationError struct {
	Fields []FieldError
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		names = append(names, f.Field)
	}
	return fmt.Sprintf("contact: invalid fields [%s]", strings.Join(names, ", "))
}

// Unwrap lets errors.Is match ErrInvalid.
func (e *ValidationError) Unwrap() error { return ErrInvalid }

// For returns the error for field, if any.
func (e *ValidationError) For(field string) (i18n.Pair, bool) {
	if e == nil {
		return i18n.Pair{}, false
	}
	for _, f := range e.Fields {
		if f.Field == field {
			return f.Message, true
		}
	}
	return i18n.Pair{}, false
}

var (
	errRequired = i18n.P("This field is required.", "此项为必填项。")
	errEmail    = i18n.P("Please enter a valid email address.", "请输入有效的邮箱地址。")
	errTooLong  = i18n.P("Message is too long.", "留言内容过长。")
)

// Normalize trims surrounding whitespace from every field.
func (f Form) Normalize() Form {
	return Form{
		Name:    strings.TrimSpace(f.Name),
		Email:   strings.TrimSpace(f.Email),
		Message: strings.TrimSpace(f.Message),
	}
}

// Validate checks the normalized form. Name, email and message are required
// and the email must parse as a bare address.
func (f Form) Validate() error {
	f = f.Normalize()
	var fields []FieldError
	if f.Name == "" {
		fields = append(fields, FieldError{Field: "name", Message: errRequired})
	}
	switch {
	case f.Email == "":
		fields = append(fields, FieldError{Field: "email", Message: errRequired})
	case !validEmail(f.Email):
		fields = append(fields, FieldError{Field: "email", Message: errEmail})
	}
	switch {
	case f.Message == "":
		fields = append(fields, FieldError{Field: "message", Message: errRequired})
	case utf8.RuneCountInString(f.Message) > maxMessageRunes:
		fields = append(fields, FieldError{Field: "message", Message: errTooLong})
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

func validEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	if err != nil {
		return false
	}
	return addr.Address == s && strings.Contains(addr.Address[strings.LastIndex(addr.Address, "@")+1:], ".")
}

// Receipt is the result of a successful submission. Form is always the
// reset, empty form.
type Receipt struct {
	ID           string
	Notification Message
	Form         Form
}

// ServiceDeps wires a Service.
type ServiceDeps struct {
	Delay       time.Duration
	Logger      *zap.Logger
	IDGenerator func() string
	// After defaults to time.After.
	After func(time.Duration) <-chan time.Time
}

// Service performs simulated submissions.
type Service struct {
	delay  time.Duration
	logger *zap.Logger
	newID  func() string
	after  func(time.Duration) <-chan time.Time
}

// NewService builds a Service. A negative delay is treated as zero.
func NewService(deps ServiceDeps) *Service {
	s := &Service{
		delay:  deps.Delay,
		logger: deps.Logger,
		newID:  deps.IDGenerator,
		after:  deps.After,
	}
	if s.delay < 0 {
		s.delay = 0
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.newID == nil {
		s.newID = func() string { return ulid.Make().String() }
	}
	if s.after == nil {
		s.after = time.After
	}
	return s
}

// Submit validates form, waits the configured delay and returns exactly one
// notification with a reset form. It returns ctx.Err() if ctx ends first.
func (s *Service) Submit(ctx context.Context, form Form) (Receipt, error) {
	form = form.Normalize()
	if err := form.Validate(); err != nil {
		return Receipt{}, err
	}
	if s.delay > 0 {
		select {
		case <-ctx.Done():
			return Receipt{}, ctx.Err()
		case <-s.after(s.delay):
		}
	} else if err := ctx.Err(); err != nil {
		return Receipt{}, err
	}

	id := s.newID()
	s.logger.Info("contact form submitted",
		zap.String("submission_id", id),
		zap.Int("message_runes", utf8.RuneCountInString(form.Message)),
	)
	return Receipt{ID: id, Notification: Notification}, nil
}
