// Package hospital is the HTTP client for the hospital management backend.
//
// It covers the calls the doctor sign-up flow needs: issuing and verifying an
// email OTP, listing the hospital's departments and registering a doctor.
// Every call returns an explicit result or error; nothing is swallowed here.
// Callers decide what to show the user, see UserMessage.
package hospital

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

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/rounds/internal/log"
	"github.com/zjrosen/rounds/internal/registration"
)

// Endpoint paths, relative to the backend base URL.
const (
	PathSendOTP     = "/api/sendotp"
	PathVerifyOTP   = "/api/verifyotp"
	PathDepartments = "/api/hospital/getdepartments"
	PathRegister    = "/api/doctor/register"
)

// HospitalCodeHeader carries the tenant identifier on hospital-scoped calls.
const HospitalCodeHeader = "code"

// VerifiedMessage is the message the backend returns for an accepted OTP.
const VerifiedMessage = "OTP verified"

const (
	defaultTimeout = 10 * time.Second
	maxBodyBytes   = 1 << 20
	tracerName     = "github.com/zjrosen/rounds/internal/hospital"
)

// API is the set of backend calls used by the registration flow.
type API interface {
	SendOTP(ctx context.Context, email string) error
	VerifyOTP(ctx context.Context, email, otp string) (registration.VerifyResult, error)
	Departments(ctx context.Context) ([]registration.Department, error)
	RegisterDoctor(ctx context.Context, req registration.RegisterRequest) (string, error)
}

// Config configures a Client.
type Config struct {
	BaseURL      string
	HospitalCode string
	Timeout      time.Duration
	HTTPClient   *http.Client
	Tracer       trace.Tracer
}

// Client talks to the hospital backend over JSON/HTTP.
type Client struct {
	baseURL      string
	hospitalCode string
	http         *http.Client
	tracer       trace.Tracer
}

var _ API = (*Client)(nil)

// NewClient builds a backend client. BaseURL and HospitalCode are required.
func NewClient(cfg Config) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, errors.New("hospital base url is required")
	}
	code := strings.TrimSpace(cfg.HospitalCode)
	if code == "" {
		return nil, errors.New("hospital code is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: timeout}
	}
	tracer := cfg.Tracer
	if tracer == nil {
		tracer = otel.Tracer(tracerName)
	}

	return &Client{
		baseURL:      baseURL,
		hospitalCode: code,
		http:         hc,
		tracer:       tracer,
	}, nil
}

// HospitalCode returns the tenant identifier sent on scoped calls.
func (c *Client) HospitalCode() string {
	return c.hospitalCode
}

type sendOTPRequest struct {
	Email string `json:"email"`
}

type verifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

type verifyOTPResponse struct {
	Message  string `json:"message"`
	Verified *bool  `json:"verified,omitempty"`
}

type departmentsResponse struct {
	Departments []registration.Department `json:"departments"`
}

type registerResponse struct {
	Token string `json:"token"`
}

// SendOTP asks the backend to email a one-time passcode to email.
// The response body is ignored; any 2xx status is success.
func (c *Client) SendOTP(ctx context.Context, email string) error {
	_, err := c.do(ctx, "send_otp", http.MethodPost, PathSendOTP, sendOTPRequest{Email: email}, false, nil)
	return err
}

// VerifyOTP submits the passcode for email.
//
// A rejection from the backend is a result, not an error: when the response
// carries a message it is returned with Verified=false. Errors are reserved
// for transport failures and unreadable responses.
func (c *Client) VerifyOTP(ctx context.Context, email, otp string) (registration.VerifyResult, error) {
	var resp verifyOTPResponse
	status, err := c.do(ctx, "verify_otp", http.MethodPost, PathVerifyOTP, verifyOTPRequest{Email: email, OTP: otp}, false, &resp)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Message != "" {
			return registration.VerifyResult{Verified: false, Message: apiErr.Message}, nil
		}
		return registration.VerifyResult{}, err
	}

	verified := resp.Message == VerifiedMessage
	if resp.Verified != nil {
		verified = *resp.Verified
	}
	log.Debug(log.CatAPI, "otp verification result", "status", status, "verified", verified)
	return registration.VerifyResult{Verified: verified, Message: resp.Message}, nil
}

// Departments lists the departments of the configured hospital.
func (c *Client) Departments(ctx context.Context) ([]registration.Department, error) {
	var resp departmentsResponse
	if _, err := c.do(ctx, "get_departments", http.MethodGet, PathDepartments, nil, true, &resp); err != nil {
		return nil, err
	}
	if resp.Departments == nil {
		return []registration.Department{}, nil
	}
	return resp.Departments, nil
}

// RegisterDoctor creates the doctor account and returns the issued session token.
func (c *Client) RegisterDoctor(ctx context.Context, req registration.RegisterRequest) (string, error) {
	var resp registerResponse
	if _, err := c.do(ctx, "register_doctor", http.MethodPost, PathRegister, req, true, &resp); err != nil {
		return "", err
	}
	if resp.Token == "" {
		return "", fmt.Errorf("register doctor: %w", ErrEmptyToken)
	}
	return resp.Token, nil
}

// do performs one JSON round trip inside a span named hospital.<op>.
// out may be nil when the response body is not needed.
func (c *Client) do(ctx context.Context, op, method, path string, in any, scoped bool, out any) (int, error) {
	ctx, span := c.tracer.Start(ctx, "hospital."+op,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.method", method),
			attribute.String("http.path", path),
		),
	)
	defer span.End()

	status, err := c.roundTrip(ctx, op, method, path, in, scoped, out)
	if status != 0 {
		span.SetAttributes(attribute.Int("http.status_code", status))
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		log.ErrorErr(log.CatAPI, "request failed", err, "op", op, "path", path, "status", status)
		return status, err
	}
	span.SetStatus(codes.Ok, "")
	log.Debug(log.CatAPI, "request ok", "op", op, "path", path, "status", status)
	return status, nil
}

func (c *Client) roundTrip(ctx context.Context, op, method, path string, in any, scoped bool, out any) (int, error) {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return 0, fmt.Errorf("encode %s request: %w", op, err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return 0, fmt.Errorf("create %s request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if scoped {
		req.Header.Set(HospitalCodeHeader, c.hospitalCode)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return resp.StatusCode, fmt.Errorf("read %s response: %w", op, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return resp.StatusCode, &APIError{
			Op:         op,
			StatusCode: resp.StatusCode,
			Message:    errorMessage(raw),
		}
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return resp.StatusCode, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return resp.StatusCode, fmt.Errorf("decode %s response: %w", op, err)
	}
	return resp.StatusCode, nil
}
