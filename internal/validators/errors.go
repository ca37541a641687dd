// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrEmptyEmail    = errors.New("email is required")
	ErrInvalidEmail  = errors.New("email is not valid")
	ErrEmptyPassword = errors.New("password is required")
	ErrNameTooLong   = errors.New("name is too long")

	ErrEmptyProfileName       = errors.New("profile name is required")
	ErrProfileNameTooLong     = errors.New("profile name is too long")
	ErrDescriptionTooLong     = errors.New("description is too long")
	ErrEmptyTranscript        = errors.New("reference transcript is required")
	ErrTranscriptTooLong      = errors.New("reference transcript is too long")
	ErrEmptyReferenceAudio    = errors.New("reference audio is required")
	ErrReferenceAudioNotAudio = errors.New("reference audio is not a recognized audio file")
	ErrInvalidColor           = errors.New("color must be a hex value like #7c3aed")
	ErrTagsTooLong            = errors.New("tags are too long")
	ErrNoFieldsToUpdate       = errors.New("at least one field must be provided for update")

	ErrInvalidProfileID = errors.New("invalid profile id")
	ErrEmptyText        = errors.New("text to synthesize is required")
	ErrTextTooLong      = errors.New("text to synthesize is too long")
	ErrInvalidSpeed     = errors.New("speed must be between 0.5 and 2.0")
	ErrInvalidPitch     = errors.New("pitch shift must be between -12 and 12 semitones")
)
