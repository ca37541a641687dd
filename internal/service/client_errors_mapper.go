// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"net/http"

	"github.com/MKhiriev/voxclone-client/internal/adapter"
	"github.com/MKhiriev/voxclone-client/internal/app"
	"github.com/MKhiriev/voxclone-client/internal/validators"
)

// DescribeError translates an error returned by a client service into the
// text shown to the user. Validation failures and server-supplied messages
// are passed through since they are already meant for humans.
func DescribeError(err error) string {
	if err == nil {
		return ""
	}

	if msg, ok := validationMessage(err); ok {
		return msg
	}

	switch {
	case errors.Is(err, ErrSynthesisInProgress):
		return app.MsgSynthesisInProgress
	case errors.Is(err, ErrResolveTimeout):
		return app.MsgRequestTimedOut
	case errors.Is(err, context.Canceled), errors.Is(err, ErrSessionSuperseded), errors.Is(err, ErrSynthesisCanceled):
		return ""
	case errors.Is(err, adapter.ErrNoUserID):
		return app.MsgSignInRequired
	case errors.Is(err, adapter.ErrUnreachable):
		return app.MsgServiceUnreachable
	case errors.Is(err, adapter.ErrTimeout):
		return app.MsgRequestTimedOut
	case errors.Is(err, adapter.ErrUnauthorized):
		return app.MsgSessionExpired
	case errors.Is(err, adapter.ErrForbidden):
		return app.MsgAccessDenied
	case errors.Is(err, adapter.ErrServerFault):
		return withDetail(app.MsgServerFault, err)
	case errors.Is(err, adapter.ErrMalformed):
		return app.MsgMalformedResponse
	case errors.Is(err, adapter.ErrValidation):
		return describeRejection(err)
	}

	return withDetail(app.MsgUnexpectedError, err)
}

// DescribeLoginError is [DescribeError] for credential checks, where 401
// means wrong credentials rather than an expired session.
func DescribeLoginError(err error) string {
	if errors.Is(err, adapter.ErrUnauthorized) {
		return app.MsgInvalidLoginPassword
	}
	return DescribeError(err)
}

func describeRejection(err error) string {
	switch adapter.StatusOf(err) {
	case http.StatusPaymentRequired:
		return app.MsgInsufficientCredits
	case http.StatusNotFound:
		return app.MsgNotFound
	case http.StatusConflict:
		return withDetail(app.MsgAlreadyExists, err)
	case http.StatusTooManyRequests:
		return app.MsgRateLimited
	}

	var apiErr *adapter.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return app.MsgUnexpectedError
}

// withDetail appends the server-supplied message when there is one.
func withDetail(base string, err error) string {
	var apiErr *adapter.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" && apiErr.Message != http.StatusText(apiErr.Status) {
		return base + " (" + apiErr.Message + ")"
	}
	return base
}

func validationMessage(err error) (string, bool) {
	for _, target := range []error{
		validators.ErrEmptyEmail, validators.ErrInvalidEmail, validators.ErrEmptyPassword, validators.ErrNameTooLong,
		validators.ErrEmptyProfileName, validators.ErrProfileNameTooLong, validators.ErrDescriptionTooLong,
		validators.ErrEmptyTranscript, validators.ErrTranscriptTooLong, validators.ErrEmptyReferenceAudio,
		validators.ErrReferenceAudioNotAudio, validators.ErrInvalidColor, validators.ErrTagsTooLong,
		validators.ErrNoFieldsToUpdate, validators.ErrInvalidProfileID, validators.ErrEmptyText,
		validators.ErrTextTooLong, validators.ErrInvalidSpeed, validators.ErrInvalidPitch,
		ErrSynthesisRejected, ErrSynthesisNoAudio, ErrNotAuthenticated, ErrSynthesisNotRunning,
		ErrSynthesisTaskFailed, ErrInvalidPage,
	} {
		if errors.Is(err, target) {
			return capitalize(target.Error()) + ".", true
		}
	}
	return "", false
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	if c := s[0]; c >= 'a' && c <= 'z' {
		return string(c-'a'+'A') + s[1:]
	}
	return s
}
