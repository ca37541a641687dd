// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/voxclone-client/internal/config"
	"github.com/MKhiriev/voxclone-client/internal/logger"
	"github.com/MKhiriev/voxclone-client/internal/utils"
)

func newTestTransport(t *testing.T, cfg config.Adapter) *Transport {
	t.Helper()
	tr, err := NewTransport(cfg, logger.Nop())
	require.NoError(t, err)
	return tr
}

// ── Failure classification ──────────────────────────────────────────────────

func TestDo_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	tr := newTestTransport(t, config.Adapter{HTTPAddress: srv.URL})
	_, err := tr.Do(context.Background(), Request{Method: http.MethodGet, Endpoint: "/slow", Timeout: 50 * time.Millisecond})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTimeout)
	assert.Equal(t, http.StatusRequestTimeout, StatusOf(err))
}

func TestDo_Unreachable(t *testing.T) {
	// свободный порт: слушатель закрывается сразу
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	tr := newTestTransport(t, config.Adapter{HTTPAddress: "http://" + addr})
	_, err = tr.Do(context.Background(), Request{Method: http.MethodGet, Endpoint: "/health"})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnreachable)
	assert.Equal(t, 0, StatusOf(err))
}

func TestDo_CallerCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(20*time.Millisecond, cancel)

	tr := newTestTransport(t, config.Adapter{HTTPAddress: srv.URL})
	_, err := tr.Do(ctx, Request{Method: http.MethodGet, Endpoint: "/slow"})

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, -1, StatusOf(err))
}

func TestDo_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html>oops</html>"))
	}))
	defer srv.Close()

	tr := newTestTransport(t, config.Adapter{HTTPAddress: srv.URL})
	_, err := tr.Do(context.Background(), Request{Method: http.MethodGet, Endpoint: "/"})

	assert.ErrorIs(t, err, ErrMalformed)
}

// ── Error envelope ──────────────────────────────────────────────────────────

func TestDo_ErrorMessages(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		contentType string
		body        string
		wantKind    error
		wantMessage string
	}{
		{
			name:        "detail string",
			status:      http.StatusBadRequest,
			contentType: "application/json",
			body:        `{"detail":"Text is required"}`,
			wantKind:    ErrValidation,
			wantMessage: "Text is required",
		},
		{
			name:        "validation list",
			status:      http.StatusUnprocessableEntity,
			contentType: "application/json",
			body:        `{"detail":[{"loc":["body","email"],"msg":"value is not a valid email address"},{"loc":["body","password"],"msg":"field required"}]}`,
			wantKind:    ErrValidation,
			wantMessage: "email: value is not a valid email address; password: field required",
		},
		{
			name:        "detail object",
			status:      http.StatusForbidden,
			contentType: "application/json",
			body:        `{"detail":{"message":"Account disabled"}}`,
			wantKind:    ErrForbidden,
			wantMessage: "Account disabled",
		},
		{
			name:        "top level message",
			status:      http.StatusServiceUnavailable,
			contentType: "application/json",
			body:        `{"message":"GPU busy"}`,
			wantKind:    ErrServerFault,
			wantMessage: "GPU busy",
		},
		{
			name:        "plain text",
			status:      http.StatusInternalServerError,
			contentType: "text/plain",
			body:        "boom",
			wantKind:    ErrServerFault,
			wantMessage: "boom",
		},
		{
			name:        "no body",
			status:      http.StatusTooManyRequests,
			wantKind:    ErrValidation,
			wantMessage: http.StatusText(http.StatusTooManyRequests),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if tt.contentType != "" {
					w.Header().Set("Content-Type", tt.contentType)
				}
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			tr := newTestTransport(t, config.Adapter{HTTPAddress: srv.URL})
			_, err := tr.Do(context.Background(), Request{Method: http.MethodGet, Endpoint: "/x"})

			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantKind)
			assert.Equal(t, tt.status, StatusOf(err))

			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.wantMessage, apiErr.Message)
		})
	}
}

func TestDo_PlainTextIsTruncated(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(strings.Repeat("x", 500)))
	}))
	defer srv.Close()

	tr := newTestTransport(t, config.Adapter{HTTPAddress: srv.URL})
	_, err := tr.Do(context.Background(), Request{Method: http.MethodGet, Endpoint: "/x"})

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Len(t, apiErr.Message, maxPlainErrorLen+len("..."))
}

func TestDo_PlainTextTruncationKeepsRunesWhole(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusBadGateway)
		// "x" сдвигает границу так, что лимит попадает в середину символа
		_, _ = w.Write([]byte("x" + strings.Repeat("ж", 300)))
	}))
	defer srv.Close()

	tr := newTestTransport(t, config.Adapter{HTTPAddress: srv.URL})
	_, err := tr.Do(context.Background(), Request{Method: http.MethodGet, Endpoint: "/x"})

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.True(t, utf8.ValidString(apiErr.Message))
	assert.True(t, strings.HasSuffix(apiErr.Message, "ж..."))
	assert.LessOrEqual(t, len(apiErr.Message), maxPlainErrorLen+len("..."))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abc...", truncate("abcdef", 3))
	// "é" занимает два байта: срез по 2 байтам оставляет только "a"
	assert.Equal(t, "a...", truncate("aéb", 2))
	assert.Equal(t, "aé...", truncate("aébc", 3))
}

func TestIsTokenInvalidating(t *testing.T) {
	assert.True(t, IsTokenInvalidating(&APIError{Kind: ErrUnauthorized, Status: 401}))
	assert.True(t, IsTokenInvalidating(&APIError{Kind: ErrForbidden, Status: 403}))
	assert.False(t, IsTokenInvalidating(&APIError{Kind: ErrServerFault, Status: 500}))
	assert.False(t, IsTokenInvalidating(&APIError{Kind: ErrUnreachable}))
	assert.False(t, IsTokenInvalidating(errors.New("other")))
}

// ── Headers & payloads ──────────────────────────────────────────────────────

func TestDo_RequestIDFromContext(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get(HeaderRequestID)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	tr := newTestTransport(t, config.Adapter{HTTPAddress: srv.URL})
	ctx := utils.WithRequestID(context.Background(), "req-42")
	payload, err := tr.Do(ctx, Request{Method: http.MethodDelete, Endpoint: "/x"})

	require.NoError(t, err)
	assert.Equal(t, PayloadEmpty, payload.Kind)
	assert.Equal(t, "req-42", got)
}

func TestDo_GeneratesRequestID(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get(HeaderRequestID)
		_, _ = writeJSON(w, map[string]any{}, http.StatusOK)
	}))
	defer srv.Close()

	tr := newTestTransport(t, config.Adapter{HTTPAddress: srv.URL})
	_, err := tr.Do(context.Background(), Request{Method: http.MethodGet, Endpoint: "/x"})

	require.NoError(t, err)
	assert.Len(t, got, 36)
}

func TestDo_TokenHeader(t *testing.T) {
	var headers []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		headers = append(headers, r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	tr := newTestTransport(t, config.Adapter{HTTPAddress: srv.URL})
	tr.SetToken(" tok ")
	_, err := tr.Do(context.Background(), Request{Method: http.MethodGet, Endpoint: "/x"})
	require.NoError(t, err)

	tr.SetToken("")
	_, err = tr.Do(context.Background(), Request{Method: http.MethodGet, Endpoint: "/x"})
	require.NoError(t, err)

	assert.Equal(t, []string{"Bearer tok", ""}, headers)
}

func TestDo_OctetStreamIsBinary(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = writeAudio(w, "application/octet-stream", []byte{0x01, 0x02})
	}))
	defer srv.Close()

	tr := newTestTransport(t, config.Adapter{HTTPAddress: srv.URL})
	payload, err := tr.Do(context.Background(), Request{Method: http.MethodGet, Endpoint: "/x"})

	require.NoError(t, err)
	assert.Equal(t, PayloadBinary, payload.Kind)
	assert.Error(t, payload.Decode(&struct{}{}))
}

func TestDo_RateLimited(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	tr := newTestTransport(t, config.Adapter{HTTPAddress: srv.URL, RequestsPerSecond: 1, Burst: 1})

	_, err := tr.Do(context.Background(), Request{Method: http.MethodGet, Endpoint: "/x"})
	require.NoError(t, err)

	// второй запрос ждёт токен дольше, чем позволяет таймаут
	_, err = tr.Do(context.Background(), Request{Method: http.MethodGet, Endpoint: "/x", Timeout: 100 * time.Millisecond})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTimeout)
	assert.Equal(t, int32(1), calls.Load())
}

// ── URLs ────────────────────────────────────────────────────────────────────

func TestResolveURL(t *testing.T) {
	tr := newTestTransport(t, config.Adapter{HTTPAddress: "http://svc:8000/api/v1/"})

	tests := []struct {
		ref  string
		want string
	}{
		{ref: "https://cdn.example.com/a.wav", want: "https://cdn.example.com/a.wav"},
		{ref: "/static/a.wav", want: "http://svc:8000/static/a.wav"},
		{ref: "audio/a.wav", want: "http://svc:8000/api/v1/audio/a.wav"},
	}
	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			got, err := tr.ResolveURL(tt.ref)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	assert.Equal(t, "http://svc:8000/api/v1", tr.BaseURL())
}
