package handlers

import (
	"errors"

	"songdeming.dev/portfolio-web/internal/contact"
	"songdeming.dev/portfolio-web/internal/content"
	"songdeming.dev/portfolio-web/internal/i18n"
)

var submitFailed = i18n.P("Your message could not be sent. Please try again.", "消息发送失败，请重试。")

// ContactView is the contact section. It also renders on its own as the
// htmx response to a submission.
type ContactView struct {
	Lang      i18n.Locale
	CSRFToken string
	Section   content.Section
	Copy      content.ContactText
	Email     string
	GitHub    string
	LinkedIn  string

	Form   contact.Form
	Errors map[string]string
	// Notification is set exactly once, on the response to a successful
	// submission.
	Notification *NotificationView
}

// NotificationView is a rendered toast.
type NotificationView struct {
	ID          string
	Title       string
	Description string
}

// NewContactView returns the section with an empty form.
func NewContactView(l i18n.Locale, csrf string) ContactView {
	return ContactView{
		Lang:      l,
		CSRFToken: csrf,
		Section:   content.Contact,
		Copy:      content.ContactCopy,
		Email:     content.Owner.ContactEmail,
		GitHub:    content.Owner.GitHub,
		LinkedIn:  content.Owner.LinkedIn,
	}
}

// Succeeded shows the notification and resets every field.
func (v ContactView) Succeeded(r contact.Receipt) ContactView {
	v.Form = r.Form
	v.Errors = nil
	v.Notification = &NotificationView{
		ID:          r.ID,
		Title:       r.Notification.Title.Pick(v.Lang),
		Description: r.Notification.Description.Pick(v.Lang),
	}
	return v
}

// Failed keeps the submitted values and explains what went wrong.
func (v ContactView) Failed(form contact.Form, err error) ContactView {
	v.Form = form.Normalize()
	v.Notification = nil
	v.Errors = map[string]string{}
	var verr *contact.ValidationError
	if errors.As(err, &verr) {
		for _, f := range verr.Fields {
			v.Errors[f.Field] = f.Message.Pick(v.Lang)
		}
		return v
	}
	v.Errors["form"] = submitFailed.Pick(v.Lang)
	return v
}
