package models

import "errors"

// Method selects how a reminder is delivered.
type Method string

const (
	MethodSMS   Method = "SMS"
	MethodEmail Method = "Email"
)

var ErrMissingContact = errors.New("contact field required for the selected method")

// Reminder is a server-owned reminder row. Exactly one of Email/Phone is
// populated, selected by Method. Date and Time are kept in the server's
// wire form ("2006-01-02", "15:04[:05]"); the client never does arithmetic
// on them.
type Reminder struct {
	ID      int64  `json:"id"`
	Title   string `json:"title"`
	Date    string `json:"date"`
	Time    string `json:"time"`
	Message string `json:"message"`
	Method  Method `json:"reminder_method"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone_number,omitempty"`
}

// ReminderDraft is the client-composed payload for create and update.
// ID and timestamps are server-assigned and absent here.
type ReminderDraft struct {
	Title   string `json:"title"`
	Date    string `json:"date"`
	Time    string `json:"time"`
	Message string `json:"message"`
	Method  Method `json:"reminder_method"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone_number,omitempty"`
}

// Normalized returns a copy carrying only the contact field relevant to
// Method, so the wire payload never contains both.
func (d ReminderDraft) Normalized() ReminderDraft {
	switch d.Method {
	case MethodEmail:
		d.Phone = ""
	case MethodSMS:
		d.Email = ""
	}
	return d
}

// Validate checks required-field presence. Format checks are the server's
// job.
func (d ReminderDraft) Validate() error {
	if d.Title == "" || d.Date == "" || d.Time == "" || d.Message == "" {
		return errors.New("title, date, time and message are required")
	}
	switch d.Method {
	case MethodEmail:
		if d.Email == "" {
			return ErrMissingContact
		}
	case MethodSMS:
		if d.Phone == "" {
			return ErrMissingContact
		}
	default:
		return errors.New("reminder method must be SMS or Email")
	}
	return nil
}
