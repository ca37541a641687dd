// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/MKhiriev/voxclone-client/internal/config"
	"github.com/MKhiriev/voxclone-client/internal/logger"
	"github.com/MKhiriev/voxclone-client/internal/utils"
)

// HeaderRequestID carries the correlation id of every outgoing request.
const HeaderRequestID = "X-Request-ID"

// PayloadKind tells how a successful response body was classified.
type PayloadKind int

const (
	// PayloadEmpty is a 204 or an empty body. Data is nil.
	PayloadEmpty PayloadKind = iota
	// PayloadJSON is a body that parses as JSON.
	PayloadJSON
	// PayloadBinary is an audio/* or application/octet-stream body.
	PayloadBinary
)

// Payload is a classified successful response.
type Payload struct {
	Kind        PayloadKind
	Status      int
	ContentType string
	Data        []byte
}

// Decode unmarshals a JSON payload into v. Any other kind, or a body that
// does not fit v, is reported as [ErrMalformed].
func (p *Payload) Decode(v any) error {
	if p == nil || p.Kind != PayloadJSON {
		status := 0
		if p != nil {
			status = p.Status
		}
		return &APIError{Kind: ErrMalformed, Status: status, Message: "expected a JSON body"}
	}
	if err := json.Unmarshal(p.Data, v); err != nil {
		return &APIError{Kind: ErrMalformed, Status: p.Status, Message: err.Error()}
	}
	return nil
}

// File is one file part of a multipart request.
type File struct {
	Param    string
	FileName string
	Data     []byte
}

// Request describes one call. Exactly one body style is used, checked in
// this order: multipart (Multipart or Files), Form, Body (JSON).
type Request struct {
	Method string
	// Endpoint is relative to the base URL, or absolute.
	Endpoint string
	Query    url.Values

	Body      any
	Form      map[string]string
	Multipart map[string]string
	Files     []File

	// Timeout overrides the configured timeout when positive.
	Timeout time.Duration
	// Long selects the long (upload/synthesis) timeout.
	Long bool
	// UserScoped appends the user_id query parameter of the session user.
	UserScoped bool
}

// Transport performs authenticated HTTP calls against the service and
// classifies the outcome. It holds no state besides the bearer token and the
// id of the user it belongs to.
type Transport struct {
	client  *utils.HTTPClient
	baseURL *url.URL
	limiter *rate.Limiter
	ids     *utils.UUIDGenerator

	timeout     time.Duration
	longTimeout time.Duration

	logger *logger.Logger

	mu     sync.RWMutex
	token  string
	userID int64
}

// NewTransport builds a [Transport] from the adapter config. A zero
// RequestsPerSecond disables client-side rate limiting.
func NewTransport(cfg config.Adapter, logger *logger.Logger) (*Transport, error) {
	base, err := config.NormalizeBaseURL(cfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	limiter := rate.NewLimiter(rate.Inf, 0)
	if cfg.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), max(cfg.Burst, 1))
	}

	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	longTimeout := cfg.LongRequestTimeout
	if longTimeout <= 0 {
		longTimeout = 120 * time.Second
	}

	client := utils.NewHTTPClient()
	client.SetBaseURL(base)

	return &Transport{
		client:      client,
		baseURL:     baseURL,
		limiter:     limiter,
		ids:         utils.NewUUIDGenerator(),
		timeout:     timeout,
		longTimeout: longTimeout,
		logger:      logger,
	}, nil
}

// SetToken stores the bearer token attached to subsequent requests. An empty
// token stops sending the Authorization header and forgets the user id.
func (t *Transport) SetToken(token string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.token = strings.TrimSpace(token)
	if t.token == "" {
		t.userID = 0
	}
}

// SetUserID stores the id sent with user-scoped requests.
func (t *Transport) SetUserID(id int64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.userID = max(id, 0)
}

// UserID returns the stored user id, or 0 when none is known.
func (t *Transport) UserID() int64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.userID
}

// Token returns the current bearer token.
func (t *Transport) Token() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.token
}

// BaseURL returns the normalized service base URL.
func (t *Transport) BaseURL() string {
	return t.baseURL.String()
}

// ResolveURL turns a service-provided reference into an absolute URL.
// Absolute references are returned unchanged; "/x" is resolved against the
// service origin and "x" against the base URL path.
func (t *Transport) ResolveURL(ref string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(ref))
	if err != nil || ref == "" {
		return "", &APIError{Kind: ErrMalformed, Message: fmt.Sprintf("invalid resource url %q", ref)}
	}
	if u.IsAbs() {
		return u.String(), nil
	}

	base := *t.baseURL
	if !strings.HasSuffix(base.Path, "/") {
		base.Path += "/"
	}
	return base.ResolveReference(u).String(), nil
}

// Do executes req and classifies the result. It never retries.
func (t *Transport) Do(ctx context.Context, req Request) (*Payload, error) {
	timeout := t.timeoutFor(req)
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	query := req.Query
	if req.UserScoped {
		userID := t.UserID()
		if userID == 0 {
			return nil, ErrNoUserID
		}
		query = cloneValues(req.Query)
		query.Set("user_id", strconv.FormatInt(userID, 10))
	}

	requestID, ok := utils.GetRequestIDFromContext(ctx)
	if !ok {
		requestID = t.ids.Generate()
	}
	log := t.logger.With().
		Str("request_id", requestID).
		Str("method", req.Method).
		Str("endpoint", req.Endpoint).
		Logger()

	if err := t.limiter.Wait(callCtx); err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("request cancelled: %w", ctx.Err())
		}
		// Wait fails early when the next slot lies beyond the deadline
		return nil, &APIError{
			Kind:    ErrTimeout,
			Status:  http.StatusRequestTimeout,
			Message: fmt.Sprintf("rate limit delay exceeds %s", timeout),
		}
	}

	r := t.client.R().
		SetContext(callCtx).
		SetHeader(HeaderRequestID, requestID)
	if token := t.Token(); token != "" {
		r.SetHeader("Authorization", "Bearer "+token)
	}
	if len(query) > 0 {
		r.SetQueryParamsFromValues(query)
	}

	switch {
	case req.Multipart != nil || len(req.Files) > 0:
		// resty computes the multipart boundary and content type
		r.SetMultipartFormData(req.Multipart)
		for _, f := range req.Files {
			r.SetFileReader(f.Param, f.FileName, bytes.NewReader(f.Data))
		}
	case req.Form != nil:
		r.SetFormData(req.Form)
	case req.Body != nil:
		r.SetHeader("Content-Type", "application/json").SetBody(req.Body)
	}

	start := time.Now()
	resp, err := r.Execute(req.Method, req.Endpoint)
	if err != nil {
		failure := t.classifyFailure(ctx, callCtx, timeout, err)
		log.Warn().Err(failure).Dur("elapsed", time.Since(start)).Msg("request failed")
		return nil, failure
	}

	if err = mapHTTPError(resp); err != nil {
		log.Warn().Err(err).Int("status", resp.StatusCode()).Dur("elapsed", time.Since(start)).Msg("request rejected")
		return nil, err
	}

	payload, err := classifyPayload(resp.StatusCode(), resp.Header().Get("Content-Type"), resp.Body())
	if err != nil {
		log.Warn().Err(err).Int("status", resp.StatusCode()).Msg("unexpected response body")
		return nil, err
	}

	log.Debug().Int("status", resp.StatusCode()).Dur("elapsed", time.Since(start)).Msg("request completed")
	return payload, nil
}

func cloneValues(v url.Values) url.Values {
	out := make(url.Values, len(v)+1)
	for k, vals := range v {
		out[k] = append([]string(nil), vals...)
	}
	return out
}

func (t *Transport) timeoutFor(req Request) time.Duration {
	switch {
	case req.Timeout > 0:
		return req.Timeout
	case req.Long:
		return t.longTimeout
	default:
		return t.timeout
	}
}

// classifyFailure maps a failed exchange without a response. Cancellation by
// the caller is returned as the context error so it is not mistaken for an
// outage.
func (t *Transport) classifyFailure(parent, call context.Context, timeout time.Duration, err error) error {
	if parent.Err() != nil {
		return fmt.Errorf("request cancelled: %w", parent.Err())
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(call.Err(), context.DeadlineExceeded) {
		return &APIError{
			Kind:    ErrTimeout,
			Status:  http.StatusRequestTimeout,
			Message: fmt.Sprintf("no response within %s", timeout),
		}
	}
	return &APIError{Kind: ErrUnreachable, Status: 0, Message: err.Error()}
}

func classifyPayload(status int, contentType string, body []byte) (*Payload, error) {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = ""
	}

	p := &Payload{Status: status, ContentType: mediaType}
	switch {
	case status == http.StatusNoContent || len(body) == 0:
		p.Kind = PayloadEmpty
	case strings.HasPrefix(mediaType, "audio/") || mediaType == "application/octet-stream":
		p.Kind = PayloadBinary
		p.Data = body
	case json.Valid(body):
		p.Kind = PayloadJSON
		p.Data = body
	default:
		return nil, &APIError{
			Kind:    ErrMalformed,
			Status:  status,
			Message: fmt.Sprintf("unexpected %q body", mediaType),
		}
	}
	return p, nil
}
