package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"remindcli/internal/client/models"
	"remindcli/internal/logging"
)

const (
	pathLogin     = "/api/login/"
	pathRegister  = "/api/register/"
	pathRefresh   = "/api/token/refresh/"
	pathProfile   = "/api/profile/"
	pathReminders = "/api/reminders/"
)

// HTTPClient talks JSON over HTTP to the reminder service.
type HTTPClient struct {
	baseURL string
	hc      *http.Client
	log     logging.Logger
}

// NewHTTPClient builds a client for the given base URL. A zero timeout
// means requests have no deadline beyond the caller's context.
func NewHTTPClient(baseURL string, timeout time.Duration, log logging.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		hc:      &http.Client{Timeout: timeout},
		log:     log,
	}
}

func (c *HTTPClient) Close() error {
	c.hc.CloseIdleConnections()
	return nil
}

// do performs one request and returns the status code and raw body.
// Transport-level failures come back wrapped in ErrUnavailable.
func (c *HTTPClient) do(ctx context.Context, method, path, accessToken string, payload any) (int, []byte, error) {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return 0, nil, fmt.Errorf("encoding request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return 0, nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}
	reqID := uuid.NewString()
	req.Header.Set("X-Request-ID", reqID)

	resp, err := c.hc.Do(req)
	if err != nil {
		c.log.Warn(ctx, "request failed", "method", method, "path", path, "request_id", reqID, "error", err)
		return 0, nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("reading response: %w", err)
	}

	c.log.Debug(ctx, "request done", "method", method, "path", path, "request_id", reqID, "status", resp.StatusCode)
	return resp.StatusCode, data, nil
}

// errorMessage extracts the server's top-level {"error": "..."} message.
func errorMessage(body []byte) string {
	var v struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &v); err != nil {
		return ""
	}
	return v.Error
}

// firstFieldError returns the first message found in body under any of the
// given keys. DRF emits either a string or a list of strings per field.
func firstFieldError(body []byte, keys ...string) string {
	var m map[string]any
	if err := json.Unmarshal(body, &m); err != nil {
		return ""
	}
	for _, k := range keys {
		switch v := m[k].(type) {
		case string:
			if v != "" {
				return v
			}
		case []any:
			for _, item := range v {
				if s, ok := item.(string); ok && s != "" {
					return s
				}
			}
		}
	}
	return ""
}

func (c *HTTPClient) Login(ctx context.Context, username, password string) (models.TokenPair, error) {
	payload := map[string]string{"username": username, "password": password}
	status, body, err := c.do(ctx, http.MethodPost, pathLogin, "", payload)
	if err != nil {
		return models.TokenPair{}, err
	}
	if status != http.StatusOK {
		msg := errorMessage(body)
		if msg == "" {
			msg = fmt.Sprintf("login failed (status %d)", status)
		}
		return models.TokenPair{}, &AuthError{Kind: KindInvalidCredentials, Message: msg}
	}

	var pair models.TokenPair
	if err := json.Unmarshal(body, &pair); err != nil {
		return models.TokenPair{}, fmt.Errorf("decoding token pair: %w", err)
	}
	return pair, nil
}

func (c *HTTPClient) Register(ctx context.Context, username, email, password string) error {
	payload := map[string]string{"username": username, "email": email, "password": password}
	status, body, err := c.do(ctx, http.MethodPost, pathRegister, "", payload)
	if err != nil {
		return err
	}
	if status != http.StatusCreated && status != http.StatusOK {
		msg := firstFieldError(body, "username", "email", "password")
		if msg == "" {
			msg = errorMessage(body)
		}
		if msg == "" {
			msg = fmt.Sprintf("registration failed (status %d)", status)
		}
		return &AuthError{Kind: KindRegistrationRejected, Message: msg}
	}
	return nil
}

func (c *HTTPClient) Refresh(ctx context.Context, refreshToken string) (string, error) {
	payload := map[string]string{"refresh": refreshToken}
	status, body, err := c.do(ctx, http.MethodPost, pathRefresh, "", payload)
	if err != nil {
		return "", err
	}
	if status != http.StatusOK {
		return "", fmt.Errorf("%w: refresh rejected (status %d)", ErrUnauthorized, status)
	}

	var v struct {
		Access string `json:"access"`
	}
	if err := json.Unmarshal(body, &v); err != nil {
		return "", fmt.Errorf("decoding refresh response: %w", err)
	}
	return v.Access, nil
}

func (c *HTTPClient) Profile(ctx context.Context, accessToken string) (*models.UserProfile, error) {
	status, body, err := c.do(ctx, http.MethodGet, pathProfile, accessToken, nil)
	if err != nil {
		return nil, err
	}
	switch {
	case status == http.StatusOK:
	case status == http.StatusUnauthorized:
		return nil, fmt.Errorf("%w: profile fetch rejected", ErrUnauthorized)
	default:
		return nil, fmt.Errorf("profile fetch failed (status %d)", status)
	}

	var profile models.UserProfile
	if err := json.Unmarshal(body, &profile); err != nil {
		return nil, fmt.Errorf("decoding profile: %w", err)
	}
	return &profile, nil
}

func (c *HTTPClient) Reminders(ctx context.Context, accessToken string) ([]models.Reminder, error) {
	status, body, err := c.do(ctx, http.MethodGet, pathReminders, accessToken, nil)
	if err != nil {
		return nil, err
	}
	switch {
	case status == http.StatusOK:
	case status == http.StatusUnauthorized:
		return nil, fmt.Errorf("%w: reminder list rejected", ErrUnauthorized)
	default:
		return nil, fmt.Errorf("reminder list failed (status %d)", status)
	}

	var reminders []models.Reminder
	if err := json.Unmarshal(body, &reminders); err != nil {
		return nil, fmt.Errorf("decoding reminders: %w", err)
	}
	return reminders, nil
}

// mutationError maps a rejected create/update response. Field-validation
// messages surface verbatim, first of email/phone_number/message.
func mutationError(status int, body []byte) error {
	switch status {
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: reminder mutation rejected", ErrUnauthorized)
	case http.StatusNotFound:
		return fmt.Errorf("%w: reminder", ErrNotFound)
	}
	msg := firstFieldError(body, "email", "phone_number", "message")
	if msg == "" {
		msg = "Failed to save reminder"
	}
	return &ValidationError{Message: msg}
}

func (c *HTTPClient) CreateReminder(ctx context.Context, accessToken string, draft models.ReminderDraft) (*models.Reminder, error) {
	status, body, err := c.do(ctx, http.MethodPost, pathReminders, accessToken, draft.Normalized())
	if err != nil {
		return nil, err
	}
	if status != http.StatusCreated {
		return nil, mutationError(status, body)
	}

	var created models.Reminder
	if err := json.Unmarshal(body, &created); err != nil {
		return nil, fmt.Errorf("decoding created reminder: %w", err)
	}
	return &created, nil
}

func (c *HTTPClient) UpdateReminder(ctx context.Context, accessToken string, id int64, draft models.ReminderDraft) (*models.Reminder, error) {
	path := fmt.Sprintf("%s%d/", pathReminders, id)
	status, body, err := c.do(ctx, http.MethodPut, path, accessToken, draft.Normalized())
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, mutationError(status, body)
	}

	var updated models.Reminder
	if err := json.Unmarshal(body, &updated); err != nil {
		return nil, fmt.Errorf("decoding updated reminder: %w", err)
	}
	return &updated, nil
}

func (c *HTTPClient) DeleteReminder(ctx context.Context, accessToken string, id int64) error {
	path := fmt.Sprintf("%s%d/", pathReminders, id)
	status, _, err := c.do(ctx, http.MethodDelete, path, accessToken, nil)
	if err != nil {
		return err
	}
	switch status {
	case http.StatusNoContent, http.StatusOK:
		return nil
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: reminder delete rejected", ErrUnauthorized)
	case http.StatusNotFound:
		return fmt.Errorf("%w: reminder %d", ErrNotFound, id)
	default:
		return fmt.Errorf("reminder delete failed (status %d)", status)
	}
}
