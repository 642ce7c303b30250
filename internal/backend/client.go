// Package backend is the REST client the web app uses to reach the garage API.
// Every payload is normalized here into the canonical types of this package;
// callers never see raw backend shapes.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

const maxBodyBytes = 4 << 20

type Client struct {
	baseURL string
	http    *http.Client
	log     *zap.Logger
	token   string
}

// New builds a client for baseURL. A zero timeout leaves requests bounded only by their context.
func New(baseURL string, timeout time.Duration, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		baseURL: baseURL,
		http: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		log: log,
	}
}

// WithToken returns a copy that authenticates with token. An empty token sends no header.
func (c *Client) WithToken(token string) *Client {
	cp := *c
	cp.token = token
	return &cp
}

// ======================================================
// AUTH
// ======================================================

func (c *Client) Login(ctx context.Context, in Credentials) (*AuthResult, error) {
	return c.auth(ctx, "/api/login", in)
}

func (c *Client) RegisterCustomer(ctx context.Context, in RegisterCustomerInput) (*AuthResult, error) {
	return c.auth(ctx, "/api/register/customer", in)
}

func (c *Client) RegisterGarage(ctx context.Context, in RegisterGarageInput) (*AuthResult, error) {
	return c.auth(ctx, "/api/register/garage", in)
}

func (c *Client) auth(ctx context.Context, path string, in any) (*AuthResult, error) {
	var out wireAuth
	if err := c.do(ctx, http.MethodPost, path, in, &out); err != nil {
		return nil, err
	}
	return &AuthResult{Token: out.Token, User: out.User.toUser()}, nil
}

// ======================================================
// GARAGES
// ======================================================

func (c *Client) ListGarages(ctx context.Context) ([]Garage, error) {
	return c.garages(ctx, "/api/garages")
}

func (c *Client) SearchGarages(ctx context.Context, term string) ([]Garage, error) {
	return c.garages(ctx, "/api/garages/search/"+url.PathEscape(term))
}

func (c *Client) garages(ctx context.Context, path string) ([]Garage, error) {
	var raw []wireGarage
	if err := c.do(ctx, http.MethodGet, path, nil, &raw); err != nil {
		return nil, err
	}

	out := make([]Garage, 0, len(raw))
	for i := range raw {
		out = append(out, raw[i].toGarage())
	}
	return out, nil
}

func (c *Client) GetGarage(ctx context.Context, id int64) (*Garage, error) {
	var raw wireGarage
	if err := c.do(ctx, http.MethodGet, "/api/garages/"+strconv.FormatInt(id, 10), nil, &raw); err != nil {
		return nil, err
	}
	g := raw.toGarage()
	return &g, nil
}

// ======================================================
// APPOINTMENTS
// ======================================================

// ListAppointments lists appointments visible to the token; an empty status lists all.
func (c *Client) ListAppointments(ctx context.Context, status string) ([]Appointment, error) {
	path := "/api/appointments"
	if status != "" {
		path += "?status=" + url.QueryEscape(status)
	}

	var raw []wireAppointment
	if err := c.do(ctx, http.MethodGet, path, nil, &raw); err != nil {
		return nil, err
	}

	out := make([]Appointment, 0, len(raw))
	for i := range raw {
		out = append(out, raw[i].toAppointment())
	}
	return out, nil
}

func (c *Client) CreateAppointment(ctx context.Context, in CreateAppointmentInput) (*Appointment, error) {
	if in.GarageID == 0 || in.CustomerID == 0 {
		return nil, &Error{Kind: KindValidation, Message: "Garage and customer are required"}
	}

	var raw wireAppointment
	if err := c.do(ctx, http.MethodPost, "/api/appointments", in, &raw); err != nil {
		return nil, err
	}
	ap := raw.toAppointment()
	if ap.ID == 0 {
		c.log.Warn("backend.create_without_id", zap.Int64("garage_id", in.GarageID))
		return nil, &Error{Kind: KindBackend, Err: errMissingAppointment}
	}
	return &ap, nil
}

func (c *Client) UpdateAppointmentStatus(ctx context.Context, id int64, status string) (*StatusUpdate, error) {
	body := map[string]string{"status": status}
	path := fmt.Sprintf("/api/appointments/%d/status", id)

	var raw wireStatusUpdate
	if err := c.do(ctx, http.MethodPatch, path, body, &raw); err != nil {
		return nil, err
	}

	out := &StatusUpdate{NotificationSent: raw.NotificationSent}
	if raw.Appointment != nil {
		ap := raw.Appointment.toAppointment()
		out.Appointment = &ap
	}
	return out, nil
}

// ======================================================
// TRANSPORT
// ======================================================

func (c *Client) do(ctx context.Context, method, path string, in any, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return &Error{Kind: KindValidation, Err: err}
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return &Error{Kind: KindTransport, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			c.log.Warn("backend.request_failed",
				zap.String("method", method),
				zap.String("path", path),
				zap.Error(err),
			)
		}
		return &Error{Kind: KindTransport, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return &Error{Kind: KindTransport, Status: resp.StatusCode, Err: err}
	}

	if resp.StatusCode >= http.StatusBadRequest {
		c.log.Info("backend.request_rejected",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
		)
		return &Error{Kind: KindBackend, Status: resp.StatusCode, Message: errorMessage(raw)}
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}

	if err := json.Unmarshal(raw, out); err != nil {
		c.log.Warn("backend.decode_failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return &Error{Kind: KindBackend, Status: resp.StatusCode, Err: err}
	}

	return nil
}
