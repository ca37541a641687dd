// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/MKhiriev/voxclone-client/models"
)

// Revisioned is implemented by every stateful client service. The revision
// grows by one on each committed state change, so readers can tell whether
// anything changed since their last look without comparing contents.
type Revisioned interface {
	Revision() uint64
}

// ClientSessionService owns the authenticated identity of the client and the
// bearer token. All state changes happen in single commits: Authenticated is
// reported if and only if a [models.Session] is held.
type ClientSessionService interface {
	Revisioned

	// Init resolves the stored token, if any. Without a token it commits
	// Anonymous and performs no network call. With a token it issues exactly
	// one GET /users/me; the first of {success, failure, safety timeout}
	// decides the terminal state. 401/403 clears the stored token, any other
	// failure keeps it. Init blocks until a terminal state is committed and
	// returns the error that decided it.
	Init(ctx context.Context) error

	// Login authenticates with email and password, persists the token and
	// fetches the user profile. Any failure leaves the previous state and
	// token in place.
	Login(ctx context.Context, email, password string) (models.Session, error)

	// Register creates an account and then behaves like Login.
	Register(ctx context.Context, creds models.Credentials) (models.Session, error)

	// Logout drops the session and the stored token. It performs no network
	// call and supersedes any resolution or login still in flight.
	Logout(ctx context.Context)

	// Invalidate logs out when err means the token is no longer accepted
	// (401/403). It reports whether the session was invalidated.
	Invalidate(ctx context.Context, err error) bool

	// RefreshProfile re-fetches the user record into the current session.
	RefreshProfile(ctx context.Context) (models.Session, error)

	// GenerateAPIKey issues a new API key and stores it in the session.
	GenerateAPIKey(ctx context.Context) (string, error)

	// RevokeAPIKey removes the API key from the account and the session.
	RevokeAPIKey(ctx context.Context) error

	// Session returns a copy of the current session and whether one is held.
	Session() (models.Session, bool)

	// State returns the current lifecycle state.
	State() models.SessionState

	// IsAuthenticated reports whether a session is held.
	IsAuthenticated() bool
}

// ClientConnectivityService watches service reachability with a self-healing
// check loop: exponential backoff on failure and an optional periodic
// re-check while healthy.
type ClientConnectivityService interface {
	Revisioned

	// Start runs the first check and arms the loop. It blocks until the first
	// check has finished. Calling Start on a running monitor is a no-op.
	Start(ctx context.Context)

	// Stop disarms every timer and cancels the check in flight.
	Stop()

	// RetryConnection cancels the pending retry, the countdown and any check
	// in flight, resets the backoff and checks immediately.
	RetryConnection()

	// Status returns the latest status snapshot.
	Status() models.SystemStatus
}

// ClientProfileService holds the voice profiles of the current user.
type ClientProfileService interface {
	Revisioned

	// FetchAll replaces the local list with the server list. On failure the
	// previous list is kept.
	FetchAll(ctx context.Context) ([]models.VoiceProfile, error)

	// Create validates draft locally, uploads it and appends the server
	// record to the list.
	Create(ctx context.Context, draft models.ProfileDraft) (models.VoiceProfile, error)

	// Update sends a partial update and merges the fields the server echoed
	// into the local entry.
	Update(ctx context.Context, id int64, patch models.ProfilePatch) (models.VoiceProfile, error)

	// Delete removes the profile on the server, then locally.
	Delete(ctx context.Context, id int64) error

	// Profiles returns a copy of the list in server order.
	Profiles() []models.VoiceProfile

	// Get returns the profile with the given id.
	Get(id int64) (models.VoiceProfile, bool)

	// LastError returns the error of the most recent failed operation, or
	// nil if the most recent operation succeeded.
	LastError() error

	// Loading reports whether any operation is in flight.
	Loading() bool

	// Reset empties the list and the error slot. Operations started before
	// Reset do not commit and return [ErrSessionSuperseded].
	Reset()
}

// ClientSynthesisService runs one synthesis job at a time and owns the audio
// resource it produces.
type ClientSynthesisService interface {
	Revisioned

	// Generate releases the previous audio resource, runs the job and
	// materializes the result into a local resource. It returns
	// [ErrSynthesisInProgress] while another job is in flight. With async
	// configured, plain clones are queued as service tasks and polled.
	Generate(ctx context.Context, req models.SynthesisRequest) (models.SynthesisJob, error)

	// Cancel stops the job in flight, which then fails with
	// [ErrSynthesisCanceled]. A queued task is canceled on the service too.
	// It returns [ErrSynthesisNotRunning] when no job is in flight.
	Cancel(ctx context.Context) error

	// Abort stops the job in flight without contacting the service. It
	// reports whether a job was stopped.
	Abort() bool

	// Job returns a copy of the current job.
	Job() models.SynthesisJob

	// Clear releases the resource and returns the runner to Idle.
	Clear() error

	// Close releases every resource the runner owns. Generate fails after
	// Close.
	Close() error
}

// ClientCreditService is the local view of the credit balance.
type ClientCreditService interface {
	Revisioned

	// FetchBalance overwrites the local balance with the server value. An
	// answer that arrives after Reset is dropped with [ErrSessionSuperseded].
	FetchBalance(ctx context.Context) (models.CreditBalance, error)

	// FetchUsage returns the usage totals of the session user.
	FetchUsage(ctx context.Context) (models.UsageStats, error)

	// FetchTransactions returns one page of the credit history, newest
	// first. limit must be within 1..[MaxTransactionsPage] and offset must
	// not be negative.
	FetchTransactions(ctx context.Context, limit, offset int) ([]models.CreditTransaction, error)

	// DeductLocally subtracts amount, flooring at zero, and returns the new
	// balance. The next FetchBalance supersedes it.
	DeductLocally(amount int64) models.CreditBalance

	// Set seeds the balance, e.g. from the session.
	Set(balance models.CreditBalance)

	// Balance returns the current balance.
	Balance() models.CreditBalance

	// Reset zeroes the balance and starts a new cycle.
	Reset()
}

// MaxTransactionsPage is the largest page the service returns.
const MaxTransactionsPage = 100

// ClientCatalogService serves the synthesis presets. Emotion and language
// lists are cached after the first successful fetch.
type ClientCatalogService interface {
	Emotions(ctx context.Context) ([]models.Emotion, error)
	Languages(ctx context.Context) ([]models.Language, error)
	PipelineStatus(ctx context.Context) (models.PipelineStatus, error)

	// Invalidate drops the cached lists.
	Invalidate()
}
