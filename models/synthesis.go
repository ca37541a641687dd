// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// SynthesisState is the lifecycle state of the synthesis runner.
type SynthesisState int

const (
	SynthesisIdle SynthesisState = iota
	SynthesisSubmitting
	SynthesisRendering
	SynthesisReady
	SynthesisFailed
)

func (s SynthesisState) String() string {
	switch s {
	case SynthesisIdle:
		return "idle"
	case SynthesisSubmitting:
		return "submitting"
	case SynthesisRendering:
		return "rendering"
	case SynthesisReady:
		return "ready"
	case SynthesisFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Busy reports whether a job is in flight.
func (s SynthesisState) Busy() bool {
	return s == SynthesisSubmitting || s == SynthesisRendering
}

// SynthesisMilestone is a coarse progress marker. The service does not stream
// progress, so these are the only observable steps. A submission counts as
// accepted once the request was written in full or, for queued jobs, once the
// service returned a task id.
type SynthesisMilestone int

const (
	MilestoneNone SynthesisMilestone = iota
	MilestoneSubmissionAccepted
	MilestoneResponseReceived
	MilestoneResourceMaterialized
	MilestoneComplete
)

func (m SynthesisMilestone) String() string {
	switch m {
	case MilestoneSubmissionAccepted:
		return "submission accepted"
	case MilestoneResponseReceived:
		return "response received"
	case MilestoneResourceMaterialized:
		return "resource materialized"
	case MilestoneComplete:
		return "complete"
	default:
		return "none"
	}
}

// Percent maps the milestone to a display percentage.
func (m SynthesisMilestone) Percent() int {
	return int(m) * 25
}

// Percent is the display progress of the job. While a queued task renders,
// its own progress fills the step after submission.
func (j SynthesisJob) Percent() int {
	p := j.Milestone.Percent()
	if j.TaskID != "" && j.Milestone == MilestoneSubmissionAccepted {
		p += int(min(max(j.TaskProgress, 0), 100) * 25 / 100)
	}
	return p
}

// SynthesisRequest is the input of one synthesis job.
type SynthesisRequest struct {
	ProfileID int64   `json:"profile_id"`
	Text      string  `json:"text"`
	Emotion   string  `json:"emotion,omitempty"`
	Speed     float64 `json:"speed,omitempty"`
	Language  string  `json:"language,omitempty"`

	// PitchShift in semitones, only honored by the conversion stage.
	PitchShift *int `json:"pitch_shift,omitempty"`

	// ApplyConversion enables the voice-conversion post-processing stage.
	ApplyConversion bool `json:"apply_rvc"`
}

// PlainClone reports whether the request needs neither an emotion nor the
// conversion stage, so the plain clone endpoints can serve it.
func (r SynthesisRequest) PlainClone() bool {
	return r.Emotion == "" && !r.ApplyConversion
}

// SynthesisResponse is the JSON form of a synthesis answer. Exactly one of
// AudioURL and AudioBase64 is expected when the service does not answer with
// a raw binary body.
type SynthesisResponse struct {
	Success         bool     `json:"success"`
	PipelineID      string   `json:"pipeline_id,omitempty"`
	AudioURL        string   `json:"audio_url,omitempty"`
	AudioBase64     string   `json:"audio_base64,omitempty"`
	DurationSeconds float64  `json:"duration_seconds,omitempty"`
	CreditsUsed     float64  `json:"credits_used,omitempty"`
	StagesCompleted []string `json:"stages_completed,omitempty"`
	Message         string   `json:"message,omitempty"`
}

// AudioResource is a locally resolvable binary audio handle. It is created
// and released only by the synthesis runner.
type AudioResource struct {
	// Ref is the opaque handle, e.g. "audio://1f0c2a9e".
	Ref string
	// Path is the local file holding the bytes.
	Path        string
	ContentType string
	Size        int64
}

// SynthesisJob is the single tracked job of the synthesis runner.
type SynthesisJob struct {
	ID        string
	State     SynthesisState
	Milestone SynthesisMilestone
	Request   SynthesisRequest

	// TaskID is the service task of a queued job.
	TaskID string
	// TaskProgress is the last progress (0-100) reported for TaskID.
	TaskProgress float64

	// Audio is set only in the Ready state.
	Audio *AudioResource
	// Err is set only in the Failed state.
	Err error

	CreditsUsed     float64
	DurationSeconds float64
	StartedAt       time.Time
	FinishedAt      time.Time
}
