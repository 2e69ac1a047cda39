package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDraft() ReminderDraft {
	return ReminderDraft{
		Title:   "Dentist",
		Date:    "2026-10-01",
		Time:    "09:30",
		Message: "Annual checkup",
		Method:  MethodEmail,
		Email:   "me@example.com",
	}
}

func TestDraftNormalized_EmailDropsPhone(t *testing.T) {
	d := validDraft()
	d.Phone = "+15551234567"

	n := d.Normalized()
	assert.Equal(t, "me@example.com", n.Email)
	assert.Empty(t, n.Phone)
}

func TestDraftNormalized_SMSDropsEmail(t *testing.T) {
	d := validDraft()
	d.Method = MethodSMS
	d.Phone = "+15551234567"

	n := d.Normalized()
	assert.Equal(t, "+15551234567", n.Phone)
	assert.Empty(t, n.Email)
}

func TestDraftNormalized_WirePayloadOmitsIrrelevantContact(t *testing.T) {
	d := validDraft()
	d.Phone = "+15551234567"

	b, err := json.Marshal(d.Normalized())
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(b, &m))
	assert.Contains(t, m, "email")
	assert.NotContains(t, m, "phone_number")
	assert.Equal(t, "Email", m["reminder_method"])
}

func TestDraftValidate(t *testing.T) {
	require.NoError(t, validDraft().Validate())

	d := validDraft()
	d.Title = ""
	assert.Error(t, d.Validate())

	d = validDraft()
	d.Email = ""
	assert.ErrorIs(t, d.Validate(), ErrMissingContact)

	d = validDraft()
	d.Method = MethodSMS
	assert.ErrorIs(t, d.Validate(), ErrMissingContact)

	d = validDraft()
	d.Method = "Pigeon"
	assert.Error(t, d.Validate())
}

func TestReminder_UnmarshalNullableContacts(t *testing.T) {
	raw := `{"id":7,"title":"T","date":"2026-10-01","time":"09:30:00",
		"message":"m","reminder_method":"SMS","email":null,"phone_number":"+15551234567"}`

	var r Reminder
	require.NoError(t, json.Unmarshal([]byte(raw), &r))
	assert.Equal(t, int64(7), r.ID)
	assert.Equal(t, MethodSMS, r.Method)
	assert.Empty(t, r.Email)
	assert.Equal(t, "+15551234567", r.Phone)
}
