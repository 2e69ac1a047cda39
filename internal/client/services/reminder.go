package services

import (
	"context"
	"sync"

	"remindcli/internal/client/api"
	"remindcli/internal/client/models"
	"remindcli/internal/client/session"
	"remindcli/internal/logging"
)

// ReminderService is the authenticated reminder CRUD. Callers are expected
// to have passed the session guard first; an expired token mid-flight
// simply fails the call, and the failure handling below is the safety net.
//
// The service keeps a local snapshot of the server's list. The snapshot is
// invalidated and refetched wholesale after create/update (server assigns ids
// and ordering); delete prunes it in place.
type ReminderService interface {
	List(ctx context.Context) []models.Reminder
	Cached() []models.Reminder
	Create(ctx context.Context, draft models.ReminderDraft) error
	Update(ctx context.Context, id int64, draft models.ReminderDraft) error
	Delete(ctx context.Context, id int64) error
}

type reminderService struct {
	client api.Client
	state  *session.State
	log    logging.Logger

	mu    sync.Mutex
	cache []models.Reminder
}

func NewReminderService(client api.Client, state *session.State, log logging.Logger) ReminderService {
	return &reminderService{client: client, state: state, log: log}
}

func (r *reminderService) setCache(list []models.Reminder) {
	r.mu.Lock()
	r.cache = list
	r.mu.Unlock()
}

// Cached returns a copy of the current snapshot without touching the
// network.
func (r *reminderService) Cached() []models.Reminder {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Reminder, len(r.cache))
	copy(out, r.cache)
	return out
}

// List refetches the snapshot. It fails open: any error is logged and an
// empty list is returned, never an error.
func (r *reminderService) List(ctx context.Context) []models.Reminder {
	list, err := r.client.Reminders(ctx, r.state.AccessToken())
	if err != nil {
		r.log.Warn(ctx, "reminder list failed, showing empty", "error", err)
		r.setCache(nil)
		return []models.Reminder{}
	}

	r.setCache(list)
	return r.Cached()
}

// Create sends the draft and, on success, refetches the full list to pick
// up the server-assigned id and ordering. On failure the snapshot is left
// untouched and the server's validation message is returned verbatim.
func (r *reminderService) Create(ctx context.Context, draft models.ReminderDraft) error {
	if err := draft.Validate(); err != nil {
		return err
	}

	if _, err := r.client.CreateReminder(ctx, r.state.AccessToken(), draft); err != nil {
		return err
	}

	r.List(ctx)
	return nil
}

// Update mirrors Create for an existing reminder.
func (r *reminderService) Update(ctx context.Context, id int64, draft models.ReminderDraft) error {
	if err := draft.Validate(); err != nil {
		return err
	}

	if _, err := r.client.UpdateReminder(ctx, r.state.AccessToken(), id, draft); err != nil {
		return err
	}

	r.List(ctx)
	return nil
}

// Delete removes the reminder remotely and prunes it from the snapshot
// without a refetch. On failure the snapshot is untouched and the error is
// reported to the caller.
func (r *reminderService) Delete(ctx context.Context, id int64) error {
	if err := r.client.DeleteReminder(ctx, r.state.AccessToken(), id); err != nil {
		return err
	}

	r.mu.Lock()
	kept := r.cache[:0]
	for _, item := range r.cache {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	r.cache = kept
	r.mu.Unlock()
	return nil
}
