package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	"remindcli/internal/client/api"
	"remindcli/internal/client/models"
)

// reportReminderError prints a reminder CRUD failure, preferring the
// server's own validation message.
func reportReminderError(err error) {
	var vErr *api.ValidationError
	switch {
	case errors.As(err, &vErr):
		printlnFn(vErr.Message)
	case errors.Is(err, api.ErrNotFound):
		printlnFn("Reminder not found.")
	case errors.Is(err, api.ErrUnavailable):
		printlnFn("Server unavailable, try again later.")
	default:
		printlnFn("Error:", err.Error())
	}
}

// List prints the reminders for the current user, one per line.
func (a *App) List(ctx context.Context) error {
	if !a.ensureSession(ctx) {
		return nil
	}

	items := a.reminders.List(ctx)
	if len(items) == 0 {
		printlnFn("No reminders.")
		return nil
	}

	for _, item := range items {
		printlnFn(formatReminder(item))
	}
	return nil
}

func formatReminder(r models.Reminder) string {
	contact := r.Email
	if r.Method == models.MethodSMS {
		contact = r.Phone
	}
	return fmt.Sprintf("[%d] %s | %s %s | %s to %s | %s",
		r.ID, r.Title, r.Date, r.Time, r.Method, contact, r.Message)
}

// promptField asks for a value, showing the current one; an empty answer
// keeps it.
func (a *App) promptField(label, current string) (string, error) {
	prompt := label
	if current != "" {
		prompt = fmt.Sprintf("%s [%s]", label, current)
	}
	answer, err := getSimpleText(a.reader, prompt, os.Stdout)
	if err != nil {
		return "", err
	}
	if answer == "" {
		return current, nil
	}
	return answer, nil
}

// promptDraft walks the user through a reminder form. base supplies the
// defaults shown at each field, so edit prefills and add starts blank.
func (a *App) promptDraft(base models.ReminderDraft) (models.ReminderDraft, error) {
	var d models.ReminderDraft
	var err error

	if d.Title, err = a.promptField("Title", base.Title); err != nil {
		return d, err
	}
	if d.Date, err = a.promptField("Date (YYYY-MM-DD)", base.Date); err != nil {
		return d, err
	}
	if d.Time, err = a.promptField("Time (HH:MM)", base.Time); err != nil {
		return d, err
	}
	if d.Message, err = a.promptField("Message", base.Message); err != nil {
		return d, err
	}

	method, err := a.promptField("Method (SMS or Email)", string(base.Method))
	if err != nil {
		return d, err
	}
	d.Method = models.Method(method)

	switch d.Method {
	case models.MethodEmail:
		if d.Email, err = a.promptField("Email", base.Email); err != nil {
			return d, err
		}
	case models.MethodSMS:
		if d.Phone, err = a.promptField("Phone number", base.Phone); err != nil {
			return d, err
		}
	}

	return d.Normalized(), nil
}

// Add creates a reminder from an interactive form.
func (a *App) Add(ctx context.Context) error {
	if !a.ensureSession(ctx) {
		return nil
	}

	draft, err := a.promptDraft(models.ReminderDraft{Method: models.MethodEmail})
	if err != nil {
		return err
	}

	if err := a.reminders.Create(ctx, draft); err != nil {
		reportReminderError(err)
		return err
	}

	printlnFn("Reminder created.")
	return nil
}

// Edit updates an existing reminder. The form is prefilled with the current
// values; pressing Enter keeps a field.
func (a *App) Edit(ctx context.Context, idArg string) error {
	if !a.ensureSession(ctx) {
		return nil
	}

	id, err := strconv.ParseInt(idArg, 10, 64)
	if err != nil {
		printlnFn("Usage: edit <id>")
		return nil
	}

	current, ok := a.findReminder(ctx, id)
	if !ok {
		printlnFn("Reminder not found.")
		return nil
	}

	draft, err := a.promptDraft(models.ReminderDraft{
		Title:   current.Title,
		Date:    current.Date,
		Time:    current.Time,
		Message: current.Message,
		Method:  current.Method,
		Email:   current.Email,
		Phone:   current.Phone,
	})
	if err != nil {
		return err
	}

	if err := a.reminders.Update(ctx, id, draft); err != nil {
		reportReminderError(err)
		return err
	}

	printlnFn("Reminder updated.")
	return nil
}

// Delete removes a reminder after an explicit confirmation.
func (a *App) Delete(ctx context.Context, idArg string) error {
	if !a.ensureSession(ctx) {
		return nil
	}

	id, err := strconv.ParseInt(idArg, 10, 64)
	if err != nil {
		printlnFn("Usage: delete <id>")
		return nil
	}

	current, ok := a.findReminder(ctx, id)
	if !ok {
		printlnFn("Reminder not found.")
		return nil
	}

	ok, err = confirm(a.reader, fmt.Sprintf("Delete reminder '%s'?", current.Title), os.Stdout)
	if err != nil {
		return err
	}
	if !ok {
		printlnFn("Cancelled.")
		return nil
	}

	if err := a.reminders.Delete(ctx, id); err != nil {
		reportReminderError(err)
		return err
	}

	printlnFn("Reminder deleted.")
	return nil
}

// findReminder looks the id up in the cached snapshot, refetching once when
// the cache is cold.
func (a *App) findReminder(ctx context.Context, id int64) (models.Reminder, bool) {
	items := a.reminders.Cached()
	if len(items) == 0 {
		items = a.reminders.List(ctx)
	}
	for _, item := range items {
		if item.ID == id {
			return item, true
		}
	}
	return models.Reminder{}, false
}
