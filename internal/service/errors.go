// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import "errors"

var (
	ErrNotAuthenticated   = errors.New("not authenticated")
	ErrSessionSuperseded  = errors.New("session changed while the request was in flight")
	ErrResolveTimeout     = errors.New("session resolution timed out")
	ErrInvalidPage        = errors.New("page limit must be 1 to 100 with a non-negative offset")

	ErrSynthesisInProgress   = errors.New("a synthesis job is already in progress")
	ErrSynthesisRunnerClosed = errors.New("synthesis runner is closed")
	ErrSynthesisRejected     = errors.New("synthesis rejected by the service")
	ErrSynthesisNoAudio      = errors.New("synthesis response carries no audio")
	ErrSynthesisBadAudioData = errors.New("synthesis response carries invalid audio data")
	ErrSynthesisNotRunning   = errors.New("no synthesis job is running")
	ErrSynthesisCanceled     = errors.New("synthesis canceled")
	ErrSynthesisTaskFailed   = errors.New("synthesis task failed")
)
