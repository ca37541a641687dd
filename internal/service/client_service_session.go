// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MKhiriev/voxclone-client/internal/adapter"
	"github.com/MKhiriev/voxclone-client/internal/logger"
	"github.com/MKhiriev/voxclone-client/internal/store"
	"github.com/MKhiriev/voxclone-client/internal/utils"
	"github.com/MKhiriev/voxclone-client/internal/validators"
	"github.com/MKhiriev/voxclone-client/models"
)

const defaultResolveTimeout = 3 * time.Second

type clientSessionService struct {
	adapter        adapter.ServerAdapter
	tokens         store.TokenRepository
	validator      validators.Validator
	scheduler      Scheduler
	resolveTimeout time.Duration
	logger         *logger.Logger

	mu      sync.RWMutex
	state   models.SessionState
	session *models.Session
	// epoch grows on every logout so that commits started before it are
	// dropped.
	epoch    uint64
	revision uint64
}

// NewClientSessionService creates the session manager in the Unknown state.
// resolveTimeout bounds Init; zero means 3 seconds.
func NewClientSessionService(
	serverAdapter adapter.ServerAdapter,
	tokens store.TokenRepository,
	validator validators.Validator,
	scheduler Scheduler,
	resolveTimeout time.Duration,
	logger *logger.Logger,
) ClientSessionService {
	if resolveTimeout <= 0 {
		resolveTimeout = defaultResolveTimeout
	}
	return &clientSessionService{
		adapter:        serverAdapter,
		tokens:         tokens,
		validator:      validator,
		scheduler:      scheduler,
		resolveTimeout: resolveTimeout,
		logger:         logger.Component("session"),
	}
}

func (s *clientSessionService) Init(ctx context.Context) error {
	token, err := s.tokens.Load(ctx)
	if err != nil && !errors.Is(err, store.ErrTokenNotFound) {
		s.logger.Err(err).Msg("failed to load stored token")
		s.commitAnonymous(s.currentEpoch())
		return fmt.Errorf("load stored token: %w", err)
	}
	if token == "" {
		s.logger.Debug().Msg("no stored token, starting anonymous")
		s.commitAnonymous(s.currentEpoch())
		return nil
	}

	s.mu.Lock()
	epoch := s.epoch
	s.state = models.SessionResolving
	s.revision++
	s.mu.Unlock()

	s.adapter.SetToken(token)

	resolveCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	// the first of {response, safety timer} claims the commit
	var claimed atomic.Bool
	done := make(chan error, 1)

	timer := s.scheduler.AfterFunc(s.resolveTimeout, func() {
		if !claimed.CompareAndSwap(false, true) {
			return
		}
		cancel()
		s.logger.Warn().Dur("timeout", s.resolveTimeout).Msg("session resolution timed out, keeping token")
		s.commitAnonymous(epoch)
		done <- ErrResolveTimeout
	})

	go func() {
		user, err := s.adapter.Me(resolveCtx)
		if !claimed.CompareAndSwap(false, true) {
			return
		}
		timer.Stop()

		if err != nil {
			s.failResolution(ctx, epoch, err)
			done <- err
			return
		}

		s.commitAuthenticated(epoch, token, user)
		s.logger.Info().Int64("user_id", user.ID).Msg("session restored")
		done <- nil
	}()

	return <-done
}

func (s *clientSessionService) failResolution(ctx context.Context, epoch uint64, err error) {
	if !adapter.IsTokenInvalidating(err) {
		s.logger.Warn().Err(err).Msg("session resolution failed, keeping token")
		s.commitAnonymous(epoch)
		return
	}

	s.logger.Info().Err(err).Msg("stored token rejected, clearing it")
	if s.commitAnonymous(epoch) {
		if clearErr := s.tokens.Clear(ctx); clearErr != nil {
			s.logger.Err(clearErr).Msg("failed to clear rejected token")
		}
	}
}

func (s *clientSessionService) Login(ctx context.Context, email, password string) (models.Session, error) {
	email = strings.TrimSpace(email)
	creds := models.Credentials{Email: email, Password: password}
	if err := s.validator.Validate(ctx, creds, validators.FieldEmail, validators.FieldPassword); err != nil {
		return models.Session{}, fmt.Errorf("login: %w", err)
	}

	epoch := s.currentEpoch()
	auth, err := s.adapter.Login(ctx, email, password)
	if err != nil {
		return models.Session{}, fmt.Errorf("login: %w", err)
	}

	return s.establish(ctx, epoch, auth.AccessToken)
}

// Register implements [ClientSessionService]. When the service answers
// without a token the same credentials are used to log in.
func (s *clientSessionService) Register(ctx context.Context, creds models.Credentials) (models.Session, error) {
	creds.Email = strings.TrimSpace(creds.Email)
	creds.Name = strings.TrimSpace(creds.Name)
	if err := s.validator.Validate(ctx, creds); err != nil {
		return models.Session{}, fmt.Errorf("register: %w", err)
	}

	epoch := s.currentEpoch()
	auth, err := s.adapter.Register(ctx, creds)
	if err != nil {
		return models.Session{}, fmt.Errorf("register: %w", err)
	}

	if auth.AccessToken == "" {
		s.logger.Debug().Msg("registration returned no token, logging in")
		auth, err = s.adapter.Login(ctx, creds.Email, creds.Password)
		if err != nil {
			return models.Session{}, fmt.Errorf("login after register: %w", err)
		}
	}

	return s.establish(ctx, epoch, auth.AccessToken)
}

// establish persists token, fetches the profile and commits. Every failure
// restores the token that was in place before.
func (s *clientSessionService) establish(ctx context.Context, epoch uint64, token string) (models.Session, error) {
	prevAdapterToken := s.adapter.Token()
	prevStored, err := s.tokens.Load(ctx)
	if err != nil && !errors.Is(err, store.ErrTokenNotFound) {
		return models.Session{}, fmt.Errorf("load stored token: %w", err)
	}

	rollback := func() {
		s.adapter.SetToken(prevAdapterToken)
		var rbErr error
		if prevStored == "" {
			rbErr = s.tokens.Clear(ctx)
		} else {
			rbErr = s.tokens.Save(ctx, prevStored)
		}
		if rbErr != nil {
			s.logger.Err(rbErr).Msg("failed to restore previous token")
		}
	}

	s.adapter.SetToken(token)
	if err = s.tokens.Save(ctx, token); err != nil {
		s.adapter.SetToken(prevAdapterToken)
		return models.Session{}, fmt.Errorf("save token: %w", err)
	}

	user, err := s.adapter.Me(ctx)
	if err != nil {
		rollback()
		return models.Session{}, fmt.Errorf("fetch profile: %w", err)
	}

	session, ok := s.commitAuthenticated(epoch, token, user)
	if !ok {
		rollback()
		return models.Session{}, ErrSessionSuperseded
	}

	s.logger.Info().Int64("user_id", user.ID).Msg("logged in")
	return session, nil
}

func (s *clientSessionService) Logout(ctx context.Context) {
	s.mu.Lock()
	s.epoch++
	s.state = models.SessionAnonymous
	s.session = nil
	s.revision++
	s.adapter.SetToken("")
	s.mu.Unlock()

	if err := s.tokens.Clear(ctx); err != nil {
		s.logger.Err(err).Msg("failed to clear stored token on logout")
	}
	s.logger.Info().Msg("logged out")
}

func (s *clientSessionService) Invalidate(ctx context.Context, err error) bool {
	if !adapter.IsTokenInvalidating(err) {
		return false
	}

	s.logger.Warn().Err(err).Msg("token rejected, invalidating session")
	s.Logout(ctx)
	return true
}

func (s *clientSessionService) RefreshProfile(ctx context.Context) (models.Session, error) {
	epoch, ok := s.authenticatedEpoch()
	if !ok {
		return models.Session{}, ErrNotAuthenticated
	}

	user, err := s.adapter.Me(ctx)
	if err != nil {
		return models.Session{}, fmt.Errorf("refresh profile: %w", err)
	}

	return s.updateSession(epoch, func(session *models.Session) {
		expiresAt := session.TokenExpiresAt
		*session = models.NewSession(user)
		session.TokenExpiresAt = expiresAt
	})
}

func (s *clientSessionService) GenerateAPIKey(ctx context.Context) (string, error) {
	epoch, ok := s.authenticatedEpoch()
	if !ok {
		return "", ErrNotAuthenticated
	}

	key, err := s.adapter.GenerateAPIKey(ctx)
	if err != nil {
		return "", fmt.Errorf("generate api key: %w", err)
	}

	if _, err = s.updateSession(epoch, func(session *models.Session) {
		session.APIKey = key.APIKey
	}); err != nil {
		return "", err
	}
	return key.APIKey, nil
}

func (s *clientSessionService) RevokeAPIKey(ctx context.Context) error {
	epoch, ok := s.authenticatedEpoch()
	if !ok {
		return ErrNotAuthenticated
	}

	if err := s.adapter.RevokeAPIKey(ctx); err != nil {
		return fmt.Errorf("revoke api key: %w", err)
	}

	_, err := s.updateSession(epoch, func(session *models.Session) {
		session.APIKey = ""
	})
	return err
}

func (s *clientSessionService) Session() (models.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return models.Session{}, false
	}
	return *s.session, true
}

func (s *clientSessionService) State() models.SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *clientSessionService) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session != nil
}

func (s *clientSessionService) Revision() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.revision
}

func (s *clientSessionService) currentEpoch() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.epoch
}

func (s *clientSessionService) authenticatedEpoch() (uint64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.epoch, s.session != nil
}

func (s *clientSessionService) commitAuthenticated(epoch uint64, token string, user models.User) (models.Session, bool) {
	session := models.NewSession(user)
	if claims, err := utils.ParseTokenClaims(token); err == nil {
		session.TokenExpiresAt = claims.ExpiresAt
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.epoch != epoch {
		return models.Session{}, false
	}
	s.state = models.SessionAuthenticated
	s.session = &session
	// user-scoped endpoints take the owner as a query parameter
	s.adapter.SetUserID(user.ID)
	s.revision++
	return session, true
}

// commitAnonymous reports false when a logout superseded the caller.
func (s *clientSessionService) commitAnonymous(epoch uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.epoch != epoch {
		return false
	}
	s.state = models.SessionAnonymous
	s.session = nil
	s.adapter.SetToken("")
	s.revision++
	return true
}

func (s *clientSessionService) updateSession(epoch uint64, update func(*models.Session)) (models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.epoch != epoch || s.session == nil {
		return models.Session{}, ErrSessionSuperseded
	}
	update(s.session)
	s.revision++
	return *s.session, nil
}
