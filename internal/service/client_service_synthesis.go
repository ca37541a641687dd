// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"net/http/httptrace"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/voxclone-client/internal/adapter"
	"github.com/MKhiriev/voxclone-client/internal/config"
	"github.com/MKhiriev/voxclone-client/internal/logger"
	"github.com/MKhiriev/voxclone-client/internal/store"
	"github.com/MKhiriev/voxclone-client/internal/utils"
	"github.com/MKhiriev/voxclone-client/internal/validators"
	"github.com/MKhiriev/voxclone-client/models"
)

type clientSynthesisService struct {
	adapter   adapter.ServerAdapter
	audio     store.AudioStorage
	validator validators.Validator
	defaults  config.Synthesis
	ids       *utils.UUIDGenerator
	logger    *logger.Logger

	mu       sync.RWMutex
	job      models.SynthesisJob
	closed   bool
	revision uint64
	// cancelJob aborts the job in flight.
	cancelJob context.CancelFunc
}

const defaultTaskPollInterval = time.Second

// NewClientSynthesisService creates an idle runner. defaults fill the
// request fields the caller leaves empty.
func NewClientSynthesisService(
	serverAdapter adapter.ServerAdapter,
	audio store.AudioStorage,
	validator validators.Validator,
	defaults config.Synthesis,
	logger *logger.Logger,
) ClientSynthesisService {
	return &clientSynthesisService{
		adapter:   serverAdapter,
		audio:     audio,
		validator: validator,
		defaults:  defaults,
		ids:       utils.NewUUIDGenerator(),
		logger:    logger.Component("synthesis"),
	}
}

func (s *clientSynthesisService) Generate(ctx context.Context, req models.SynthesisRequest) (models.SynthesisJob, error) {
	req = s.withDefaults(req)
	if err := s.validator.Validate(ctx, req); err != nil {
		return s.Job(), fmt.Errorf("invalid synthesis request: %w", err)
	}

	jobCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return models.SynthesisJob{}, ErrSynthesisRunnerClosed
	}
	if s.job.State.Busy() {
		job := s.job
		s.mu.Unlock()
		return job, ErrSynthesisInProgress
	}
	previous := s.job.Audio
	jobID := s.ids.Generate()
	s.job = models.SynthesisJob{
		ID:        jobID,
		State:     models.SynthesisSubmitting,
		Request:   req,
		StartedAt: time.Now(),
	}
	s.cancelJob = cancel
	s.revision++
	s.mu.Unlock()

	log := s.logger.With().Str("job_id", jobID).Int64("profile_id", req.ProfileID).Logger()

	// the previous handle goes before any network traffic
	if previous != nil {
		if err := s.audio.Release(previous.Ref); err != nil && !errors.Is(err, store.ErrUnknownAudioRef) {
			log.Warn().Err(err).Str("ref", previous.Ref).Msg("failed to release previous audio")
		}
	}

	render := s.renderDirect
	if s.defaults.Async && req.PlainClone() {
		render = s.renderQueued
	}
	data, contentType, resp, err := render(jobCtx, jobID, req)
	if err != nil {
		if jobCtx.Err() != nil && ctx.Err() == nil {
			err = ErrSynthesisCanceled
		}
		return s.fail(jobID, err)
	}

	resource, err := s.audio.Acquire(ctx, data, contentType)
	if err != nil {
		return s.fail(jobID, fmt.Errorf("store audio: %w", err))
	}
	s.advance(jobID, models.SynthesisRendering, models.MilestoneResourceMaterialized)

	s.mu.Lock()
	if s.closed || s.job.ID != jobID {
		s.mu.Unlock()
		_ = s.audio.Release(resource.Ref)
		return models.SynthesisJob{}, ErrSynthesisRunnerClosed
	}
	s.job.State = models.SynthesisReady
	s.job.Milestone = models.MilestoneComplete
	s.job.Audio = &resource
	s.job.CreditsUsed = resp.CreditsUsed
	s.job.DurationSeconds = resp.DurationSeconds
	s.job.FinishedAt = time.Now()
	s.cancelJob = nil
	s.revision++
	job := s.job
	s.mu.Unlock()

	log.Info().
		Str("ref", resource.Ref).
		Int64("size", resource.Size).
		Float64("credits_used", resp.CreditsUsed).
		Msg("synthesis complete")
	return job, nil
}

// renderDirect holds one request open until the audio comes back. The
// submission counts as accepted once the request was written in full.
func (s *clientSynthesisService) renderDirect(ctx context.Context, jobID string, req models.SynthesisRequest) ([]byte, string, models.SynthesisResponse, error) {
	trace := &httptrace.ClientTrace{
		WroteRequest: func(info httptrace.WroteRequestInfo) {
			if info.Err == nil {
				s.advance(jobID, models.SynthesisRendering, models.MilestoneSubmissionAccepted)
			}
		},
	}

	payload, err := s.adapter.Synthesize(httptrace.WithClientTrace(ctx, trace), req)
	if err != nil {
		return nil, "", models.SynthesisResponse{}, fmt.Errorf("synthesize: %w", err)
	}
	s.advance(jobID, models.SynthesisRendering, models.MilestoneResponseReceived)

	return s.materialize(ctx, payload)
}

// renderQueued submits a clone task and polls it. A cached answer skips
// polling.
func (s *clientSynthesisService) renderQueued(ctx context.Context, jobID string, req models.SynthesisRequest) ([]byte, string, models.SynthesisResponse, error) {
	var resp models.SynthesisResponse

	accepted, err := s.adapter.CloneAsync(ctx, req)
	if err != nil {
		return nil, "", resp, fmt.Errorf("submit clone task: %w", err)
	}

	result := accepted.Result
	if accepted.TaskID != "" {
		s.mu.Lock()
		if s.job.ID == jobID {
			s.job.TaskID = accepted.TaskID
		}
		s.mu.Unlock()
		s.advance(jobID, models.SynthesisRendering, models.MilestoneSubmissionAccepted)

		if result, err = s.await(ctx, jobID, accepted.TaskID); err != nil {
			return nil, "", resp, err
		}
	} else {
		s.advance(jobID, models.SynthesisRendering, models.MilestoneSubmissionAccepted)
	}
	s.advance(jobID, models.SynthesisRendering, models.MilestoneResponseReceived)

	if result == nil || result.AudioURL == "" {
		return nil, "", resp, ErrSynthesisNoAudio
	}
	resp = models.SynthesisResponse{Success: true, AudioURL: result.AudioURL, DurationSeconds: result.Duration}

	data, contentType, err := s.fetchAudio(ctx, result.AudioURL)
	return data, contentType, resp, err
}

// await polls the task until it reaches a terminal state.
func (s *clientSynthesisService) await(ctx context.Context, jobID, taskID string) (*models.TaskResult, error) {
	interval := s.defaults.TaskPollInterval
	if interval <= 0 {
		interval = defaultTaskPollInterval
	}
	if s.defaults.TaskTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.defaults.TaskTimeout)
		defer cancel()
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil, s.awaitError(ctx, taskID, ctx.Err())
		case <-ticker.C:
		}

		task, err := s.adapter.Task(ctx, taskID)
		if err != nil {
			return nil, s.awaitError(ctx, taskID, err)
		}

		s.mu.Lock()
		if s.job.ID == jobID && s.job.TaskProgress != task.Progress {
			s.job.TaskProgress = task.Progress
			s.revision++
		}
		s.mu.Unlock()

		switch task.Status {
		case models.TaskCompleted:
			return task.Result, nil
		case models.TaskFailed:
			return nil, fmt.Errorf("%w: %s", ErrSynthesisTaskFailed, task.Error)
		case models.TaskCancelled:
			return nil, ErrSynthesisCanceled
		}
	}
}

// awaitError reports an expired task timeout as a timeout, everything else
// as a polling failure.
func (s *clientSynthesisService) awaitError(ctx context.Context, taskID string, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return &adapter.APIError{
			Kind:    adapter.ErrTimeout,
			Status:  http.StatusRequestTimeout,
			Message: fmt.Sprintf("task %s did not finish within %s", taskID, s.defaults.TaskTimeout),
		}
	}
	return fmt.Errorf("poll task %s: %w", taskID, err)
}

// Cancel implements [ClientSynthesisService]. A queued task is also canceled
// on the service; the service refuses once the task has started, which is
// only logged since the local job stops either way.
func (s *clientSynthesisService) Cancel(ctx context.Context) error {
	taskID, ok := s.stop()
	if !ok {
		return ErrSynthesisNotRunning
	}
	if taskID == "" {
		return nil
	}
	if err := s.adapter.CancelTask(ctx, taskID); err != nil {
		s.logger.Warn().Err(err).Str("task_id", taskID).Msg("service did not cancel the task")
	}
	return nil
}

func (s *clientSynthesisService) Abort() bool {
	_, ok := s.stop()
	return ok
}

// stop cancels the job context and returns the task id of a queued job.
func (s *clientSynthesisService) stop() (string, bool) {
	s.mu.Lock()
	if !s.job.State.Busy() || s.cancelJob == nil {
		s.mu.Unlock()
		return "", false
	}
	cancel := s.cancelJob
	jobID, taskID := s.job.ID, s.job.TaskID
	s.mu.Unlock()

	cancel()
	s.logger.Info().Str("job_id", jobID).Str("task_id", taskID).Msg("synthesis canceled")
	return taskID, true
}

func (s *clientSynthesisService) Job() models.SynthesisJob {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.job
}

func (s *clientSynthesisService) Clear() error {
	s.mu.Lock()
	if s.job.State.Busy() {
		s.mu.Unlock()
		return ErrSynthesisInProgress
	}
	audio := s.job.Audio
	s.job = models.SynthesisJob{}
	s.revision++
	s.mu.Unlock()

	if audio == nil {
		return nil
	}
	if err := s.audio.Release(audio.Ref); err != nil && !errors.Is(err, store.ErrUnknownAudioRef) {
		return fmt.Errorf("release audio: %w", err)
	}
	return nil
}

func (s *clientSynthesisService) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.job = models.SynthesisJob{}
	cancel := s.cancelJob
	s.cancelJob = nil
	s.revision++
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}

	if err := s.audio.ReleaseAll(); err != nil {
		return fmt.Errorf("release audio: %w", err)
	}
	return nil
}

func (s *clientSynthesisService) Revision() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.revision
}

func (s *clientSynthesisService) withDefaults(req models.SynthesisRequest) models.SynthesisRequest {
	req.Text = strings.TrimSpace(req.Text)
	if req.Emotion == "" {
		req.Emotion = s.defaults.DefaultEmotion
	}
	if req.Speed == 0 {
		req.Speed = s.defaults.DefaultSpeed
	}
	if req.Language == "" {
		req.Language = s.defaults.DefaultLanguage
	}
	req.ApplyConversion = req.ApplyConversion || s.defaults.EnableConversion
	return req
}

// materialize turns any of the three answer shapes into raw audio bytes.
func (s *clientSynthesisService) materialize(ctx context.Context, payload *adapter.Payload) ([]byte, string, models.SynthesisResponse, error) {
	var resp models.SynthesisResponse

	switch payload.Kind {
	case adapter.PayloadBinary:
		return payload.Data, payload.ContentType, resp, nil

	case adapter.PayloadJSON:
		if err := payload.Decode(&resp); err != nil {
			return nil, "", resp, fmt.Errorf("decode synthesis response: %w", err)
		}

		switch {
		case resp.AudioBase64 != "":
			data, contentType, err := decodeAudioBase64(resp.AudioBase64)
			return data, contentType, resp, err

		case resp.AudioURL != "":
			data, contentType, err := s.fetchAudio(ctx, resp.AudioURL)
			return data, contentType, resp, err

		case resp.Message != "":
			return nil, "", resp, fmt.Errorf("%w: %s", ErrSynthesisRejected, resp.Message)
		}
	}

	return nil, "", resp, ErrSynthesisNoAudio
}

func (s *clientSynthesisService) fetchAudio(ctx context.Context, ref string) ([]byte, string, error) {
	audio, err := s.adapter.FetchAudio(ctx, ref)
	if err != nil {
		return nil, "", fmt.Errorf("fetch synthesized audio: %w", err)
	}
	if audio.Kind != adapter.PayloadBinary {
		return nil, "", &adapter.APIError{
			Kind:    adapter.ErrMalformed,
			Status:  audio.Status,
			Message: "audio url did not return audio",
		}
	}
	return audio.Data, audio.ContentType, nil
}

// decodeAudioBase64 accepts plain base64 (padded or not) or a data URI.
func decodeAudioBase64(raw string) ([]byte, string, error) {
	raw = strings.TrimSpace(raw)
	contentType := ""

	if rest, ok := strings.CutPrefix(raw, "data:"); ok {
		header, body, found := strings.Cut(rest, ",")
		if !found || !strings.HasSuffix(header, ";base64") {
			return nil, "", fmt.Errorf("%w: unsupported data uri", ErrSynthesisBadAudioData)
		}
		if mediaType, _, err := mime.ParseMediaType(strings.TrimSuffix(header, ";base64")); err == nil {
			contentType = mediaType
		}
		raw = body
	}

	data, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		data, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(raw, "="))
	}
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrSynthesisBadAudioData, err)
	}
	if len(data) == 0 {
		return nil, "", ErrSynthesisNoAudio
	}
	return data, contentType, nil
}

// advance moves the job forward. Milestones never go back.
func (s *clientSynthesisService) advance(jobID string, state models.SynthesisState, milestone models.SynthesisMilestone) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.job.ID != jobID || !s.job.State.Busy() || milestone <= s.job.Milestone {
		return
	}
	s.job.State = state
	s.job.Milestone = milestone
	s.revision++
}

func (s *clientSynthesisService) fail(jobID string, err error) (models.SynthesisJob, error) {
	s.mu.Lock()
	if s.job.ID == jobID {
		s.job.State = models.SynthesisFailed
		s.job.Audio = nil
		s.job.Err = err
		s.job.FinishedAt = time.Now()
		s.cancelJob = nil
		s.revision++
	}
	job := s.job
	s.mu.Unlock()

	s.logger.Warn().Err(err).Str("job_id", jobID).Msg("synthesis failed")
	return job, err
}
