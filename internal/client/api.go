// Package client is the Go API client the CLI uses to talk to the
// NeuroWatch server.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"neurowatch/internal/history"
	"neurowatch/internal/models"
)

var (
	ErrUnauthorized = errors.New("client: unauthorized")
	ErrConflict     = errors.New("client: already exists")
	ErrUnavailable  = errors.New("client: server unavailable")
)

// API talks to one NeuroWatch server. Token may be empty for the auth
// endpoints.
type API struct {
	base   string
	token  string
	client *http.Client
}

func New(base, token string) *API {
	return &API{
		base:   strings.TrimRight(base, "/"),
		token:  token,
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

func (a *API) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, a.base+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if a.token != "" {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}
	resp, err := a.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", ErrUnauthorized, strings.TrimSpace(string(data)))
	case resp.StatusCode == http.StatusConflict:
		return fmt.Errorf("%w: %s", ErrConflict, strings.TrimSpace(string(data)))
	case resp.StatusCode >= 400:
		return fmt.Errorf("server said %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}
	if out == nil || len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, out)
}

// AuthResponse is what signup and login return.
type AuthResponse struct {
	Token string          `json:"token"`
	User  models.Identity `json:"user"`
}

func (a *API) Signup(ctx context.Context, username, email, password, fullName string) (AuthResponse, error) {
	var resp AuthResponse
	err := a.do(ctx, http.MethodPost, "/api/auth/signup", map[string]string{
		"username": username, "email": email, "password": password, "full_name": fullName,
	}, &resp)
	return resp, err
}

func (a *API) Login(ctx context.Context, usernameOrEmail, password string) (AuthResponse, error) {
	var resp AuthResponse
	err := a.do(ctx, http.MethodPost, "/api/auth/login", map[string]string{
		"username_or_email": usernameOrEmail, "password": password,
	}, &resp)
	return resp, err
}

// ForgotPassword requests reset instructions and returns the server's
// acknowledgement message.
func (a *API) ForgotPassword(ctx context.Context, email string) (string, error) {
	var resp struct {
		Message string `json:"message"`
	}
	err := a.do(ctx, http.MethodPost, "/api/auth/forgot-password", map[string]string{"email": email}, &resp)
	return resp.Message, err
}

func (a *API) Me(ctx context.Context) (models.Identity, error) {
	var identity models.Identity
	err := a.do(ctx, http.MethodGet, "/api/me", nil, &identity)
	return identity, err
}

func (a *API) UpdateNotifications(ctx context.Context, enabled bool) error {
	return a.do(ctx, http.MethodPut, "/api/me/notifications", map[string]bool{"enabled": enabled}, nil)
}

// VitalsResponse mirrors the server's vitals payload.
type VitalsResponse struct {
	Snapshot  models.VitalMetricsSnapshot `json:"snapshot"`
	RiskLevel string                      `json:"risk_level"`
	HasData   bool                        `json:"has_data"`
}

func (a *API) Vitals(ctx context.Context) (VitalsResponse, error) {
	var resp VitalsResponse
	err := a.do(ctx, http.MethodGet, "/api/vitals", nil, &resp)
	return resp, err
}

func (a *API) SaveLifestyle(ctx context.Context, record models.LifestyleRecord) error {
	return a.do(ctx, http.MethodPost, "/api/lifestyle", record, nil)
}

func (a *API) Lifestyle(ctx context.Context) ([]models.LifestyleRecord, error) {
	var records []models.LifestyleRecord
	err := a.do(ctx, http.MethodGet, "/api/lifestyle", nil, &records)
	return records, err
}

func (a *API) History(ctx context.Context) ([]history.Entry, error) {
	var entries []history.Entry
	err := a.do(ctx, http.MethodGet, "/api/history", nil, &entries)
	return entries, err
}

// ExportHistory downloads the rendered report.
func (a *API) ExportHistory(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.base+"/api/history/export", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+a.token)
	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusUnauthorized {
		return nil, ErrUnauthorized
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("server said %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

type analyzeResponse struct {
	Score int    `json:"score"`
	Label string `json:"label"`
}

func (a *API) AnalyzeVoice(ctx context.Context, filename string) (int, error) {
	var resp analyzeResponse
	err := a.do(ctx, http.MethodPost, "/api/analysis/voice", map[string]string{"filename": filename}, &resp)
	return resp.Score, err
}

func (a *API) AnalyzeGait(ctx context.Context, filename string) (int, error) {
	var resp analyzeResponse
	err := a.do(ctx, http.MethodPost, "/api/analysis/gait", map[string]string{"filename": filename}, &resp)
	return resp.Score, err
}

func (a *API) BookAppointment(ctx context.Context, appt models.Appointment) (models.Appointment, error) {
	var booked models.Appointment
	err := a.do(ctx, http.MethodPost, "/api/appointments", appt, &booked)
	return booked, err
}

func (a *API) Appointments(ctx context.Context) ([]models.Appointment, error) {
	var appts []models.Appointment
	err := a.do(ctx, http.MethodGet, "/api/appointments", nil, &appts)
	return appts, err
}

func (a *API) Doctors(ctx context.Context) ([]string, error) {
	var doctors []string
	err := a.do(ctx, http.MethodGet, "/api/appointments/doctors", nil, &doctors)
	return doctors, err
}
