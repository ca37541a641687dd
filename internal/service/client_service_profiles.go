// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/MKhiriev/voxclone-client/internal/adapter"
	"github.com/MKhiriev/voxclone-client/internal/logger"
	"github.com/MKhiriev/voxclone-client/internal/validators"
	"github.com/MKhiriev/voxclone-client/models"
)

type clientProfileService struct {
	adapter   adapter.ServerAdapter
	validator validators.Validator
	logger    *logger.Logger

	mu       sync.RWMutex
	profiles []models.VoiceProfile
	lastErr  error
	pending  int
	revision uint64
	// cycle grows on Reset; operations started in an older cycle do not commit.
	cycle uint64
}

// NewClientProfileService creates an empty profile store.
func NewClientProfileService(serverAdapter adapter.ServerAdapter, validator validators.Validator, logger *logger.Logger) ClientProfileService {
	return &clientProfileService{
		adapter:   serverAdapter,
		validator: validator,
		logger:    logger.Component("profiles"),
		profiles:  []models.VoiceProfile{},
	}
}

func (s *clientProfileService) FetchAll(ctx context.Context) ([]models.VoiceProfile, error) {
	cycle := s.begin()
	defer s.end()

	profiles, err := s.adapter.ListProfiles(ctx)
	if err != nil {
		return nil, s.failIn(cycle, fmt.Errorf("fetch profiles: %w", err))
	}

	s.mu.Lock()
	if s.cycle != cycle {
		s.mu.Unlock()
		return nil, s.superseded("fetch profiles")
	}
	s.profiles = slices.Clone(profiles)
	s.lastErr = nil
	s.revision++
	s.mu.Unlock()

	s.logger.Debug().Int("count", len(profiles)).Msg("profiles fetched")
	return slices.Clone(profiles), nil
}

func (s *clientProfileService) Create(ctx context.Context, draft models.ProfileDraft) (models.VoiceProfile, error) {
	if err := s.validator.Validate(ctx, draft); err != nil {
		return models.VoiceProfile{}, s.fail(fmt.Errorf("invalid profile: %w", err))
	}

	cycle := s.begin()
	defer s.end()

	profile, err := s.adapter.CreateProfile(ctx, draft)
	if err != nil {
		return models.VoiceProfile{}, s.failIn(cycle, fmt.Errorf("create profile: %w", err))
	}

	s.mu.Lock()
	if s.cycle != cycle {
		s.mu.Unlock()
		return models.VoiceProfile{}, s.superseded("create profile")
	}
	s.profiles = append(s.profiles, profile)
	s.lastErr = nil
	s.revision++
	s.mu.Unlock()

	s.logger.Info().Int64("profile_id", profile.ID).Msg("profile created")
	return profile, nil
}

// Update implements [ClientProfileService]. When the server echoes nothing,
// the request patch itself is merged.
func (s *clientProfileService) Update(ctx context.Context, id int64, patch models.ProfilePatch) (models.VoiceProfile, error) {
	if id <= 0 {
		return models.VoiceProfile{}, s.fail(validators.ErrInvalidProfileID)
	}
	if err := s.validator.Validate(ctx, patch); err != nil {
		return models.VoiceProfile{}, s.fail(fmt.Errorf("invalid profile update: %w", err))
	}

	cycle := s.begin()
	defer s.end()

	echoed, err := s.adapter.UpdateProfile(ctx, id, patch)
	if err != nil {
		return models.VoiceProfile{}, s.failIn(cycle, fmt.Errorf("update profile %d: %w", id, err))
	}
	if echoed.IsEmpty() {
		echoed = patch
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cycle != cycle {
		return models.VoiceProfile{}, fmt.Errorf("update profile %d: %w", id, ErrSessionSuperseded)
	}
	s.lastErr = nil
	s.revision++

	i := s.indexLocked(id)
	if i < 0 {
		s.logger.Warn().Int64("profile_id", id).Msg("updated profile is not in the local list")
		return echoed.ApplyTo(models.VoiceProfile{ID: id}), nil
	}
	s.profiles[i] = echoed.ApplyTo(s.profiles[i])
	return s.profiles[i], nil
}

func (s *clientProfileService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return s.fail(validators.ErrInvalidProfileID)
	}

	cycle := s.begin()
	defer s.end()

	if err := s.adapter.DeleteProfile(ctx, id); err != nil {
		return s.failIn(cycle, fmt.Errorf("delete profile %d: %w", id, err))
	}

	s.mu.Lock()
	if s.cycle != cycle {
		s.mu.Unlock()
		return s.superseded(fmt.Sprintf("delete profile %d", id))
	}
	if i := s.indexLocked(id); i >= 0 {
		s.profiles = slices.Delete(s.profiles, i, i+1)
	}
	s.lastErr = nil
	s.revision++
	s.mu.Unlock()

	s.logger.Info().Int64("profile_id", id).Msg("profile deleted")
	return nil
}

func (s *clientProfileService) Profiles() []models.VoiceProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.profiles)
}

func (s *clientProfileService) Get(id int64) (models.VoiceProfile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexLocked(id); i >= 0 {
		return s.profiles[i], true
	}
	return models.VoiceProfile{}, false
}

func (s *clientProfileService) LastError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

func (s *clientProfileService) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pending > 0
}

func (s *clientProfileService) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles = []models.VoiceProfile{}
	s.lastErr = nil
	s.cycle++
	s.revision++
}

func (s *clientProfileService) Revision() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.revision
}

// begin counts an operation in and returns the cycle it belongs to.
func (s *clientProfileService) begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending++
	s.revision++
	return s.cycle
}

func (s *clientProfileService) end() {
	s.mu.Lock()
	s.pending--
	s.revision++
	s.mu.Unlock()
}

// fail records err in the shared slot and returns it.
func (s *clientProfileService) fail(err error) error {
	s.mu.Lock()
	s.lastErr = err
	s.revision++
	s.mu.Unlock()
	s.logger.Warn().Err(err).Msg("profile operation failed")
	return err
}

// failIn is fail for an operation of the given cycle. Failures of an older
// cycle are not recorded.
func (s *clientProfileService) failIn(cycle uint64, err error) error {
	s.mu.Lock()
	if s.cycle != cycle {
		s.mu.Unlock()
		return s.superseded(err.Error())
	}
	s.lastErr = err
	s.revision++
	s.mu.Unlock()
	s.logger.Warn().Err(err).Msg("profile operation failed")
	return err
}

func (s *clientProfileService) superseded(op string) error {
	s.logger.Debug().Str("operation", op).Msg("dropping result of a finished session")
	return fmt.Errorf("%s: %w", op, ErrSessionSuperseded)
}

func (s *clientProfileService) indexLocked(id int64) int {
	return slices.IndexFunc(s.profiles, func(p models.VoiceProfile) bool { return p.ID == id })
}
