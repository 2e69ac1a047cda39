package cli

import (
	"bufio"
	"context"
	"database/sql"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"remindcli/internal/client/api"
	"remindcli/internal/client/models"
	"remindcli/internal/client/repositories/tokens"
	"remindcli/internal/client/session"
	"remindcli/internal/logging"

	_ "modernc.org/sqlite"
)

// ---- fakes ----

type fakeAuthSvc struct {
	loginPair models.TokenPair
	loginErr  error
	loginUser string
	loginPass string

	regErr   error
	regUser  string
	regEmail string
	regPass  string

	probeErr     error
	probeCalls   int
	refreshRet   string
	refreshErr   error
	logoutCalled bool
}

func (f *fakeAuthSvc) Login(_ context.Context, username, password string) (models.TokenPair, error) {
	f.loginUser, f.loginPass = username, password
	return f.loginPair, f.loginErr
}
func (f *fakeAuthSvc) Register(_ context.Context, username, email, password string) error {
	f.regUser, f.regEmail, f.regPass = username, email, password
	return f.regErr
}
func (f *fakeAuthSvc) FetchProfile(context.Context, string) (*models.UserProfile, error) {
	return nil, nil
}
func (f *fakeAuthSvc) RefreshAccessToken(context.Context) (string, error) {
	return f.refreshRet, f.refreshErr
}
func (f *fakeAuthSvc) Probe(context.Context, string) error {
	f.probeCalls++
	return f.probeErr
}
func (f *fakeAuthSvc) Logout(context.Context) error {
	f.logoutCalled = true
	return nil
}
func (f *fakeAuthSvc) Close() error { return nil }

type fakeReminderSvc struct {
	listRet   []models.Reminder
	listCalls int

	createDraft models.ReminderDraft
	createErr   error
	createCalls int

	updateID    int64
	updateDraft models.ReminderDraft
	updateErr   error

	deleteID    int64
	deleteErr   error
	deleteCalls int
}

func (f *fakeReminderSvc) List(context.Context) []models.Reminder {
	f.listCalls++
	return f.listRet
}
func (f *fakeReminderSvc) Cached() []models.Reminder { return f.listRet }
func (f *fakeReminderSvc) Create(_ context.Context, draft models.ReminderDraft) error {
	f.createCalls++
	f.createDraft = draft
	return f.createErr
}
func (f *fakeReminderSvc) Update(_ context.Context, id int64, draft models.ReminderDraft) error {
	f.updateID, f.updateDraft = id, draft
	return f.updateErr
}
func (f *fakeReminderSvc) Delete(_ context.Context, id int64) error {
	f.deleteCalls++
	f.deleteID = id
	return f.deleteErr
}

// ---- fixtures ----

func newTestState(t *testing.T) *session.State {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	_, err = db.Exec(`CREATE TABLE tokens (key TEXT PRIMARY KEY, value TEXT NOT NULL);`)
	require.NoError(t, err)
	return session.NewState(tokens.NewSQLiteRepository(db))
}

func newTestApp(t *testing.T, auth *fakeAuthSvc, reminders *fakeReminderSvc, loggedIn bool) *App {
	t.Helper()
	log := logging.New(io.Discard, "error")
	state := newTestState(t)

	if loggedIn {
		require.NoError(t, state.SetSession(context.Background(), models.TokenPair{Access: "A", Refresh: "R"}))
		state.SetUser(&models.UserProfile{ID: 1, Username: "alice", Email: "a@b.c"})
	}

	return &App{
		log:       log,
		auth:      auth,
		reminders: reminders,
		state:     state,
		guard:     session.NewGuard(state, auth, log),
		reader:    bufio.NewReader(strings.NewReader("")),
	}
}

func muteOutput(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(args ...any) (int, error) {
		line := ""
		for i, a := range args {
			if i > 0 {
				line += " "
			}
			line += toString(a)
		}
		lines = append(lines, line)
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

func toString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	if e, ok := v.(error); ok {
		return e.Error()
	}
	return ""
}

// stubTextInputs scripts consecutive GetSimpleText answers.
func stubTextInputs(t *testing.T, answers ...string) {
	t.Helper()
	orig := getSimpleText
	i := 0
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		if i >= len(answers) {
			t.Fatalf("unexpected extra prompt (%d answers scripted)", len(answers))
		}
		a := answers[i]
		i++
		return a, nil
	}
	t.Cleanup(func() { getSimpleText = orig })
}

func stubPassword(t *testing.T, pw string) {
	t.Helper()
	orig := getPassword
	getPassword = func(_ io.Writer) (string, error) { return pw, nil }
	t.Cleanup(func() { getPassword = orig })
}

func stubConfirm(t *testing.T, answer bool) {
	t.Helper()
	orig := confirm
	confirm = func(_ *bufio.Reader, _ string, _ io.Writer) (bool, error) { return answer, nil }
	t.Cleanup(func() { confirm = orig })
}

// ---- auth commands ----

func TestLoginCommand_PassesCredentials(t *testing.T) {
	muteOutput(t)
	auth := &fakeAuthSvc{loginPair: models.TokenPair{Access: "A", Refresh: "R"}}
	a := newTestApp(t, auth, &fakeReminderSvc{}, false)

	stubTextInputs(t, "alice")
	stubPassword(t, "s3cret")

	require.NoError(t, a.Login(context.Background()))
	assert.Equal(t, "alice", auth.loginUser)
	assert.Equal(t, "s3cret", auth.loginPass)
}

func TestLoginCommand_PrintsServerMessageOnRejection(t *testing.T) {
	lines := muteOutput(t)
	auth := &fakeAuthSvc{loginErr: &api.AuthError{Kind: api.KindInvalidCredentials, Message: "Invalid username or password."}}
	a := newTestApp(t, auth, &fakeReminderSvc{}, false)

	stubTextInputs(t, "alice")
	stubPassword(t, "nope")

	err := a.Login(context.Background())
	require.Error(t, err)
	assert.Contains(t, *lines, "Invalid username or password.")
}

func TestRegisterCommand_PassesAllFields(t *testing.T) {
	muteOutput(t)
	auth := &fakeAuthSvc{}
	a := newTestApp(t, auth, &fakeReminderSvc{}, false)

	stubTextInputs(t, "alice", "a@b.c")
	stubPassword(t, "s3cret")

	require.NoError(t, a.Register(context.Background()))
	assert.Equal(t, "alice", auth.regUser)
	assert.Equal(t, "a@b.c", auth.regEmail)
	assert.Equal(t, "s3cret", auth.regPass)
}

func TestLogoutCommand(t *testing.T) {
	muteOutput(t)
	auth := &fakeAuthSvc{}
	a := newTestApp(t, auth, &fakeReminderSvc{}, true)

	require.NoError(t, a.Logout(context.Background()))
	assert.True(t, auth.logoutCalled)
}

// ---- reminder commands ----

func TestListCommand_RequiresSession(t *testing.T) {
	lines := muteOutput(t)
	reminders := &fakeReminderSvc{}
	a := newTestApp(t, &fakeAuthSvc{}, reminders, false)

	require.NoError(t, a.List(context.Background()))
	assert.Zero(t, reminders.listCalls)
	assert.Contains(t, *lines, "Not logged in. Use 'login' or 'register' first.")
}

func TestListCommand_WarmSessionSkipsProbe(t *testing.T) {
	muteOutput(t)
	auth := &fakeAuthSvc{}
	reminders := &fakeReminderSvc{listRet: []models.Reminder{
		{ID: 1, Title: "dentist", Date: "2026-09-15", Time: "09:30", Method: models.MethodEmail, Email: "a@b.c", Message: "checkup"},
	}}
	a := newTestApp(t, auth, reminders, true)

	require.NoError(t, a.List(context.Background()))
	assert.Equal(t, 1, reminders.listCalls)
	assert.Zero(t, auth.probeCalls)
}

func TestAddCommand_BuildsNormalizedDraft(t *testing.T) {
	muteOutput(t)
	reminders := &fakeReminderSvc{}
	a := newTestApp(t, &fakeAuthSvc{}, reminders, true)

	// title, date, time, message, method, phone
	stubTextInputs(t, "dentist", "2026-09-15", "09:30", "checkup", "SMS", "+15550001")

	require.NoError(t, a.Add(context.Background()))
	require.Equal(t, 1, reminders.createCalls)
	assert.Equal(t, models.MethodSMS, reminders.createDraft.Method)
	assert.Equal(t, "+15550001", reminders.createDraft.Phone)
	assert.Empty(t, reminders.createDraft.Email)
}

func TestEditCommand_PrefillsAndKeepsFieldsOnEmptyAnswer(t *testing.T) {
	muteOutput(t)
	reminders := &fakeReminderSvc{listRet: []models.Reminder{
		{ID: 3, Title: "dentist", Date: "2026-09-15", Time: "09:30", Message: "checkup", Method: models.MethodEmail, Email: "a@b.c"},
	}}
	a := newTestApp(t, &fakeAuthSvc{}, reminders, true)

	// keep everything except the title
	stubTextInputs(t, "dentist (moved)", "", "", "", "", "")

	require.NoError(t, a.Edit(context.Background(), "3"))
	assert.Equal(t, int64(3), reminders.updateID)
	assert.Equal(t, "dentist (moved)", reminders.updateDraft.Title)
	assert.Equal(t, "2026-09-15", reminders.updateDraft.Date)
	assert.Equal(t, "a@b.c", reminders.updateDraft.Email)
}

func TestEditCommand_BadID(t *testing.T) {
	lines := muteOutput(t)
	reminders := &fakeReminderSvc{}
	a := newTestApp(t, &fakeAuthSvc{}, reminders, true)

	require.NoError(t, a.Edit(context.Background(), "abc"))
	assert.Contains(t, *lines, "Usage: edit <id>")
}

func TestDeleteCommand_ConfirmedDeletes(t *testing.T) {
	muteOutput(t)
	reminders := &fakeReminderSvc{listRet: []models.Reminder{{ID: 5, Title: "rent"}}}
	a := newTestApp(t, &fakeAuthSvc{}, reminders, true)

	stubConfirm(t, true)

	require.NoError(t, a.Delete(context.Background(), "5"))
	assert.Equal(t, 1, reminders.deleteCalls)
	assert.Equal(t, int64(5), reminders.deleteID)
}

func TestDeleteCommand_DeclinedDoesNothing(t *testing.T) {
	lines := muteOutput(t)
	reminders := &fakeReminderSvc{listRet: []models.Reminder{{ID: 5, Title: "rent"}}}
	a := newTestApp(t, &fakeAuthSvc{}, reminders, true)

	stubConfirm(t, false)

	require.NoError(t, a.Delete(context.Background(), "5"))
	assert.Zero(t, reminders.deleteCalls)
	assert.Contains(t, *lines, "Cancelled.")
}

func TestStatusCommand_NoSession(t *testing.T) {
	lines := muteOutput(t)
	a := newTestApp(t, &fakeAuthSvc{}, &fakeReminderSvc{}, false)

	require.NoError(t, a.Status(context.Background()))
	assert.Contains(t, *lines, "No session.")
}
