// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"errors"
	"math"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/MKhiriev/voxclone-client/internal/logger"
	"github.com/MKhiriev/voxclone-client/internal/service"
	"github.com/MKhiriev/voxclone-client/internal/utils"
	"github.com/MKhiriev/voxclone-client/internal/workers"
	"github.com/MKhiriev/voxclone-client/models"
)

const (
	defaultErrorTTL     = 5 * time.Second
	defaultPollInterval = 250 * time.Millisecond
)

// View is the composed read model of the client. A View returned by
// [Coordinator.View] is shared between callers and must not be modified.
type View struct {
	Session       models.Session
	Authenticated bool
	SessionState  models.SessionState

	Status models.SystemStatus

	Profiles        []models.VoiceProfile
	ProfilesLoading bool

	Job     models.SynthesisJob
	Credits models.CreditBalance

	// Error is the user-facing text of the last failed operation. It is
	// cleared after the configured TTL.
	Error string
	// Cause is the error behind Error.
	Cause error

	// Version grows every time the view is rebuilt.
	Version uint64
}

// Settings tune the coordinator.
type Settings struct {
	// ErrorTTL is how long a recorded error stays in the view. Zero means 5s.
	ErrorTTL time.Duration
	// CreditsRefreshInterval is passed to the refresh job while logged in.
	CreditsRefreshInterval time.Duration
	// PollInterval drives subscriber notification for changes made by
	// timers inside services. Zero means 250ms, negative disables polling.
	PollInterval time.Duration
}

// revisionKey identifies one state of every constituent of the view.
type revisionKey struct {
	session, status, profiles, job, credits, err uint64
}

// Coordinator composes the client services into one memoized view and
// funnels every failure into a single expiring error slot.
type Coordinator struct {
	session  service.ClientSessionService
	monitor  service.ClientConnectivityService
	profiles service.ClientProfileService
	runner   service.ClientSynthesisService
	credits  service.ClientCreditService
	catalog  service.ClientCatalogService
	refresh  service.ClientRefreshJob
	appInfo  service.AppInfoService

	workers   *workers.Workers
	scheduler service.Scheduler
	ids       *utils.UUIDGenerator
	settings  Settings
	logger    *logger.Logger

	mu     sync.Mutex
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	// loaded is the load-once flag of the current login cycle.
	loaded bool
	// cycle grows on every login and logout edge. Writes computed in an
	// older cycle are discarded.
	cycle uint64

	errMsg      string
	errCause    error
	errTimer    service.Timer
	errRevision uint64

	view      View
	viewKey   revisionKey
	viewBuilt bool
	published uint64

	subscribers map[int]func(View)
	nextSubID   int
}

// NewCoordinator wires the coordinator over services. scheduler owns the
// error expiry timer.
func NewCoordinator(services *service.ClientServices, scheduler service.Scheduler, settings Settings, logger *logger.Logger) *Coordinator {
	if settings.ErrorTTL <= 0 {
		settings.ErrorTTL = defaultErrorTTL
	}
	if settings.PollInterval == 0 {
		settings.PollInterval = defaultPollInterval
	}

	return &Coordinator{
		session:     services.SessionService,
		monitor:     services.ConnectivityService,
		profiles:    services.ProfileService,
		runner:      services.SynthesisService,
		credits:     services.CreditService,
		catalog:     services.CatalogService,
		refresh:     services.RefreshJob,
		appInfo:     services.AppInfoService,
		workers:     workers.NewWorkers(services.ConnectivityService),
		scheduler:   scheduler,
		ids:         utils.NewUUIDGenerator(),
		settings:    settings,
		logger:      logger.Component("coordinator"),
		ctx:         context.Background(),
		subscribers: make(map[int]func(View)),
	}
}

// Start launches the connectivity monitor in the background and resolves
// the stored session. It returns once the session reached a terminal state;
// account data is loaded before returning when the session is authenticated.
func (c *Coordinator) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	c.mu.Lock()
	c.ctx = ctx
	c.cancel = cancel
	c.mu.Unlock()

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		c.workers.Start(ctx)
		c.publish()
	}()

	if c.settings.PollInterval > 0 {
		c.wg.Add(1)
		go c.poll(ctx)
	}

	ctx = c.operation(ctx)
	if err := c.session.Init(ctx); err != nil {
		// the session manager already dropped a rejected token
		c.record(err)
	}
	c.syncAuth(ctx)
	c.publish()
}

// Stop tears down timers, background loops and audio resources.
func (c *Coordinator) Stop() {
	c.mu.Lock()
	cancel := c.cancel
	c.cancel = nil
	stopTimerLocked(&c.errTimer)
	c.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	c.wg.Wait()
	c.workers.Stop()
	c.refresh.Stop()

	if err := c.runner.Close(); err != nil {
		c.logger.Err(err).Msg("failed to release audio on shutdown")
	}
}

func (c *Coordinator) poll(ctx context.Context) {
	defer c.wg.Done()
	t := time.NewTicker(c.settings.PollInterval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			c.publish()
		}
	}
}

// ── Session ─────────────────────────────────────────────────────────────────

func (c *Coordinator) Login(ctx context.Context, email, password string) (models.Session, error) {
	ctx = c.operation(ctx)
	session, err := c.session.Login(ctx, email, password)
	if err != nil {
		c.recordLogin(err)
		return session, err
	}
	c.syncAuth(ctx)
	c.publish()
	return session, nil
}

func (c *Coordinator) Register(ctx context.Context, creds models.Credentials) (models.Session, error) {
	ctx = c.operation(ctx)
	session, err := c.session.Register(ctx, creds)
	if err != nil {
		c.recordLogin(err)
		return session, err
	}
	c.syncAuth(ctx)
	c.publish()
	return session, nil
}

// Logout never fails and issues no network call.
func (c *Coordinator) Logout(ctx context.Context) {
	c.session.Logout(ctx)
	c.syncAuth(ctx)
	c.publish()
}

func (c *Coordinator) RefreshProfile(ctx context.Context) (models.Session, error) {
	ctx = c.operation(ctx)
	cycle := c.currentCycle()
	session, err := c.session.RefreshProfile(ctx)
	if err == nil {
		c.inCycle(cycle, func() { c.credits.Set(session.CreditBalance) })
	}
	return track(ctx, c, session, err)
}

func (c *Coordinator) GenerateAPIKey(ctx context.Context) (string, error) {
	ctx = c.operation(ctx)
	key, err := c.session.GenerateAPIKey(ctx)
	return track(ctx, c, key, err)
}

func (c *Coordinator) RevokeAPIKey(ctx context.Context) error {
	ctx = c.operation(ctx)
	_, err := track(ctx, c, struct{}{}, c.session.RevokeAPIKey(ctx))
	return err
}

// ── Connectivity ────────────────────────────────────────────────────────────

func (c *Coordinator) RetryConnection() {
	c.monitor.RetryConnection()
	c.publish()
}

// ── Profiles ────────────────────────────────────────────────────────────────

func (c *Coordinator) FetchProfiles(ctx context.Context) ([]models.VoiceProfile, error) {
	ctx = c.operation(ctx)
	profiles, err := c.profiles.FetchAll(ctx)
	return track(ctx, c, profiles, err)
}

func (c *Coordinator) CreateProfile(ctx context.Context, draft models.ProfileDraft) (models.VoiceProfile, error) {
	ctx = c.operation(ctx)
	profile, err := c.profiles.Create(ctx, draft)
	return track(ctx, c, profile, err)
}

func (c *Coordinator) UpdateProfile(ctx context.Context, id int64, patch models.ProfilePatch) (models.VoiceProfile, error) {
	ctx = c.operation(ctx)
	profile, err := c.profiles.Update(ctx, id, patch)
	return track(ctx, c, profile, err)
}

func (c *Coordinator) DeleteProfile(ctx context.Context, id int64) error {
	ctx = c.operation(ctx)
	_, err := track(ctx, c, struct{}{}, c.profiles.Delete(ctx, id))
	return err
}

// ── Synthesis ───────────────────────────────────────────────────────────────

// Generate runs a synthesis job. On success the balance is lowered locally by
// the reported credits, rounded up, until the next authoritative fetch.
func (c *Coordinator) Generate(ctx context.Context, req models.SynthesisRequest) (models.SynthesisJob, error) {
	ctx = c.operation(ctx)
	cycle := c.currentCycle()
	job, err := c.runner.Generate(ctx, req)
	if err == nil && job.CreditsUsed > 0 {
		c.inCycle(cycle, func() { c.credits.DeductLocally(int64(math.Ceil(job.CreditsUsed))) })
	}
	return track(ctx, c, job, err)
}

// CancelSynthesis stops the job in flight. Canceling an idle runner is not
// recorded as an error.
func (c *Coordinator) CancelSynthesis(ctx context.Context) error {
	ctx = c.operation(ctx)
	err := c.runner.Cancel(ctx)
	if errors.Is(err, service.ErrSynthesisNotRunning) {
		c.publish()
		return err
	}
	_, err = track(ctx, c, struct{}{}, err)
	return err
}

func (c *Coordinator) ClearAudio() error {
	_, err := track(c.context(), c, struct{}{}, c.runner.Clear())
	return err
}

// ── Credits & catalog ───────────────────────────────────────────────────────

func (c *Coordinator) RefreshCredits(ctx context.Context) (models.CreditBalance, error) {
	ctx = c.operation(ctx)
	balance, err := c.credits.FetchBalance(ctx)
	return track(ctx, c, balance, err)
}

func (c *Coordinator) Usage(ctx context.Context) (models.UsageStats, error) {
	ctx = c.operation(ctx)
	usage, err := c.credits.FetchUsage(ctx)
	return track(ctx, c, usage, err)
}

func (c *Coordinator) Transactions(ctx context.Context, limit, offset int) ([]models.CreditTransaction, error) {
	ctx = c.operation(ctx)
	transactions, err := c.credits.FetchTransactions(ctx, limit, offset)
	return track(ctx, c, transactions, err)
}

func (c *Coordinator) Emotions(ctx context.Context) ([]models.Emotion, error) {
	ctx = c.operation(ctx)
	emotions, err := c.catalog.Emotions(ctx)
	return track(ctx, c, emotions, err)
}

func (c *Coordinator) Languages(ctx context.Context) ([]models.Language, error) {
	ctx = c.operation(ctx)
	languages, err := c.catalog.Languages(ctx)
	return track(ctx, c, languages, err)
}

func (c *Coordinator) PipelineStatus(ctx context.Context) (models.PipelineStatus, error) {
	ctx = c.operation(ctx)
	status, err := c.catalog.PipelineStatus(ctx)
	return track(ctx, c, status, err)
}

func (c *Coordinator) BuildInfo() models.AppBuildInfo {
	return c.appInfo.GetBuildInfo()
}

// ── Error slot ──────────────────────────────────────────────────────────────

// DismissError clears the error slot before it expires.
func (c *Coordinator) DismissError() {
	c.mu.Lock()
	if c.errMsg == "" {
		c.mu.Unlock()
		return
	}
	stopTimerLocked(&c.errTimer)
	c.errMsg = ""
	c.errCause = nil
	c.errRevision++
	c.mu.Unlock()
	c.publish()
}

// track records err (if any) and publishes the new view.
func track[T any](ctx context.Context, c *Coordinator, v T, err error) (T, error) {
	if err != nil {
		if c.session.Invalidate(ctx, err) {
			c.syncAuth(ctx)
		}
		c.record(err)
	}
	c.publish()
	return v, err
}

// recordLogin records a failed credential check. A 401 there is a wrong
// password, so the session is left alone.
func (c *Coordinator) recordLogin(err error) {
	c.setError(service.DescribeLoginError(err), err)
	c.publish()
}

func (c *Coordinator) record(err error) {
	c.setError(service.DescribeError(err), err)
}

func (c *Coordinator) setError(msg string, err error) {
	if msg == "" {
		return
	}
	c.logger.Debug().Err(err).Str("message", msg).Msg("error recorded")

	c.mu.Lock()
	defer c.mu.Unlock()
	stopTimerLocked(&c.errTimer)
	c.errMsg = msg
	c.errCause = err
	c.errRevision++
	seq := c.errRevision

	c.errTimer = c.scheduler.AfterFunc(c.settings.ErrorTTL, func() {
		c.mu.Lock()
		if c.errRevision != seq {
			c.mu.Unlock()
			return
		}
		c.errMsg = ""
		c.errCause = nil
		c.errTimer = nil
		c.errRevision++
		c.mu.Unlock()
		c.publish()
	})
}

// ── Login cycle ─────────────────────────────────────────────────────────────

// syncAuth reacts to authentication edges: account data is loaded exactly
// once after the session becomes authenticated and dropped after it ends.
func (c *Coordinator) syncAuth(ctx context.Context) {
	session, authed := c.session.Session()

	c.mu.Lock()
	load := authed && !c.loaded
	reset := !authed && c.loaded
	c.loaded = authed
	if load || reset {
		c.cycle++
	}
	cycle := c.cycle
	base := c.ctx
	c.mu.Unlock()

	switch {
	case load:
		c.inCycle(cycle, func() { c.credits.Set(session.CreditBalance) })
		c.loadAccount(ctx)
		// loading may have invalidated the session
		if c.session.IsAuthenticated() {
			c.refresh.Start(base, c.settings.CreditsRefreshInterval)
		}
	case reset:
		c.refresh.Stop()
		// the token is gone, so a queued task is only dropped locally
		c.runner.Abort()
		c.profiles.Reset()
		c.credits.Reset()
		if err := c.runner.Clear(); err != nil && !errors.Is(err, service.ErrSynthesisInProgress) {
			c.logger.Warn().Err(err).Msg("failed to clear audio after logout")
		}
	}
}

func (c *Coordinator) loadAccount(ctx context.Context) {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		_, err := c.profiles.FetchAll(gctx)
		return err
	})
	g.Go(func() error {
		_, err := c.credits.FetchBalance(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		c.logger.Warn().Err(err).Msg("failed to load account data")
		if c.session.Invalidate(ctx, err) {
			c.syncAuth(ctx)
		}
		c.record(err)
	}
}

// ── View ────────────────────────────────────────────────────────────────────

// View returns the composed read model, rebuilding it only when one of its
// constituents changed.
func (c *Coordinator) View() View {
	view, _ := c.current()
	return view
}

// Subscribe registers fn to be called with every new view. The returned
// function removes the subscription.
func (c *Coordinator) Subscribe(fn func(View)) (unsubscribe func()) {
	c.mu.Lock()
	id := c.nextSubID
	c.nextSubID++
	c.subscribers[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.subscribers, id)
		c.mu.Unlock()
	}
}

func (c *Coordinator) current() (View, revisionKey) {
	key := c.revisions()

	c.mu.Lock()
	if c.viewBuilt && key == c.viewKey {
		view := c.view
		c.mu.Unlock()
		return view, key
	}
	errMsg, errCause := c.errMsg, c.errCause
	c.mu.Unlock()

	session, authed := c.session.Session()
	view := View{
		Session:         session,
		Authenticated:   authed,
		SessionState:    c.session.State(),
		Status:          c.monitor.Status(),
		Profiles:        c.profiles.Profiles(),
		ProfilesLoading: c.profiles.Loading(),
		Job:             c.runner.Job(),
		Credits:         c.credits.Balance(),
		Error:           errMsg,
		Cause:           errCause,
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.viewBuilt && key == c.viewKey {
		return c.view, key
	}
	view.Version = c.view.Version + 1
	c.view = view
	c.viewKey = key
	c.viewBuilt = true
	return view, key
}

// publish notifies subscribers when the view changed since the last call.
func (c *Coordinator) publish() {
	view, _ := c.current()

	c.mu.Lock()
	if view.Version == c.published {
		c.mu.Unlock()
		return
	}
	c.published = view.Version
	subscribers := make([]func(View), 0, len(c.subscribers))
	for _, fn := range c.subscribers {
		subscribers = append(subscribers, fn)
	}
	c.mu.Unlock()

	for _, fn := range subscribers {
		fn(view)
	}
}

func (c *Coordinator) revisions() revisionKey {
	c.mu.Lock()
	errRevision := c.errRevision
	c.mu.Unlock()

	return revisionKey{
		session:  c.session.Revision(),
		status:   c.monitor.Revision(),
		profiles: c.profiles.Revision(),
		job:      c.runner.Revision(),
		credits:  c.credits.Revision(),
		err:      errRevision,
	}
}

// operation tags ctx with one request id shared by every call the operation
// makes, unless the caller already set one.
func (c *Coordinator) operation(ctx context.Context) context.Context {
	if _, ok := utils.GetRequestIDFromContext(ctx); ok {
		return ctx
	}
	return utils.WithRequestID(ctx, c.ids.Generate())
}

func (c *Coordinator) currentCycle() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cycle
}

// inCycle runs write only if no login edge happened since cycle was read.
func (c *Coordinator) inCycle(cycle uint64, write func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cycle == cycle {
		write()
	}
}

func (c *Coordinator) context() context.Context {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ctx
}

func stopTimerLocked(t *service.Timer) {
	if *t != nil {
		(*t).Stop()
		*t = nil
	}
}
