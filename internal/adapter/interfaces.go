// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the transport layer for communicating with the
// voice-cloning service.
//
// [Transport] performs authenticated calls with per-call timeouts and
// classifies every outcome into a [Payload] or an [*APIError]. The
// [ServerAdapter] abstraction maps the service endpoints onto typed
// methods so that the service layer never deals with URLs or wire shapes.
//
// Error kinds defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic
// error handling (e.g. [ErrUnauthorized] for 401, [ErrServerFault] for 5xx).
package adapter

import (
	"context"

	"github.com/MKhiriev/voxclone-client/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// ServerAdapter defines typed communication with the voice-cloning service.
// Implementations are responsible for serialisation, the authentication
// header and mapping transport-level errors to the kinds defined in this
// package.
type ServerAdapter interface {
	// SetToken stores the bearer token attached to all subsequent requests.
	// An empty token makes requests anonymous.
	SetToken(token string)

	// Token returns the bearer token currently stored in the adapter, or an
	// empty string if none is set.
	Token() string

	// SetUserID stores the id of the session user. Profile mutations,
	// synthesis and the per-user ledger endpoints need it and fail with
	// [ErrNoUserID] while it is unset. SetToken("") clears it.
	SetUserID(id int64)

	// Health calls GET /health at the service root.
	Health(ctx context.Context) (models.HealthResponse, error)

	// DetailedHealth calls GET /health/detailed at the service root; it
	// reports the GPU.
	DetailedHealth(ctx context.Context) (models.HealthResponse, error)

	// Login exchanges credentials for a token (form-encoded). It does not
	// store the token; the caller decides when to.
	Login(ctx context.Context, email, password string) (models.AuthResponse, error)

	// Register creates an account (JSON body) and returns the same shape as
	// Login. The token is not stored.
	Register(ctx context.Context, creds models.Credentials) (models.AuthResponse, error)

	// Me returns the profile of the token holder.
	Me(ctx context.Context) (models.User, error)

	// Credits returns the authoritative credit balance.
	Credits(ctx context.Context) (models.CreditsResponse, error)

	// Usage returns the usage totals of the session user.
	Usage(ctx context.Context) (models.UsageStats, error)

	// Transactions returns one page of the credit history of the session
	// user, newest first.
	Transactions(ctx context.Context, limit, offset int) ([]models.CreditTransaction, error)

	// GenerateAPIKey issues a new API key, replacing the previous one.
	GenerateAPIKey(ctx context.Context) (models.APIKeyResponse, error)

	// RevokeAPIKey removes the API key.
	RevokeAPIKey(ctx context.Context) error

	// ListProfiles returns the voice profiles in server order.
	ListProfiles(ctx context.Context) ([]models.VoiceProfile, error)

	// CreateProfile uploads a new profile as multipart form data.
	CreateProfile(ctx context.Context, draft models.ProfileDraft) (models.VoiceProfile, error)

	// UpdateProfile sends a partial update and returns whatever fields the
	// server echoed. An empty patch means the server echoed nothing.
	UpdateProfile(ctx context.Context, id int64, patch models.ProfilePatch) (models.ProfilePatch, error)

	// DeleteProfile deletes a profile.
	DeleteProfile(ctx context.Context, id int64) error

	// Synthesize runs a synthesis job. The payload is either binary audio or
	// a JSON [models.SynthesisResponse].
	Synthesize(ctx context.Context, req models.SynthesisRequest) (*Payload, error)

	// CloneAsync queues a plain clone job. A cached answer carries the
	// result and no task id.
	CloneAsync(ctx context.Context, req models.SynthesisRequest) (models.TaskAccepted, error)

	// Task returns the state of a queued job.
	Task(ctx context.Context, id string) (models.Task, error)

	// CancelTask cancels a queued job that has not started yet.
	CancelTask(ctx context.Context, id string) error

	// FetchAudio downloads an audio reference returned by Synthesize.
	// Relative references are resolved against the service base URL.
	FetchAudio(ctx context.Context, ref string) (*Payload, error)

	// Emotions lists the synthesis style presets.
	Emotions(ctx context.Context) ([]models.Emotion, error)

	// Languages lists the supported synthesis languages.
	Languages(ctx context.Context) ([]models.Language, error)

	// PipelineStatus reports which synthesis stages are loaded.
	PipelineStatus(ctx context.Context) (models.PipelineStatus, error)
}
