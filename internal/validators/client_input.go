// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"net/mail"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/h2non/filetype"

	"github.com/MKhiriev/voxclone-client/models"
)

// Field name constants used to specify which fields should be validated.
// These constants are passed to Validate to restrict validation to a subset
// of fields (field-level scoping).
const (
	FieldEmail    = "email"
	FieldPassword = "password"
	FieldUserName = "user_name"

	FieldName           = "name"
	FieldDescription    = "description"
	FieldTranscript     = "reference_text"
	FieldReferenceAudio = "reference_audio"
	FieldColor          = "color"
	FieldTags           = "tags"
	// FieldAnyUpdate requires a patch to change at least one field.
	FieldAnyUpdate = "any_update"

	FieldProfileID = "profile_id"
	FieldText      = "text"
	FieldSpeed     = "speed"
	FieldPitch     = "pitch_shift"
)

// Limits accepted by the service.
const (
	MaxUserNameLength    = 100
	MaxProfileNameLength = 100
	MaxDescriptionLength = 500
	MaxTranscriptLength  = 5000
	MaxTagsLength        = 200
	MaxTextLength        = 5000

	MinSpeed = 0.5
	MaxSpeed = 2.0
	MaxPitch = 12
)

var colorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// ClientInputValidator implements the Validator interface for user input
// sent to the service: Credentials, ProfileDraft, ProfilePatch and
// SynthesisRequest.
//
// It supports both value and pointer receivers for every model type
// and allows optional field-level scoping via variadic field name arguments.
type ClientInputValidator struct {
}

// NewClientInputValidator constructs a new ClientInputValidator
// and returns it as the Validator interface.
func NewClientInputValidator() Validator {
	return &ClientInputValidator{}
}

// Validate dispatches validation to the appropriate type-specific method
// based on the dynamic type of obj.
//
// Returns ErrUnsupportedType if obj does not match any known model.
// Optional fields restrict validation to the named subset; when omitted,
// a sensible default set of fields is validated.
func (v *ClientInputValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.Credentials:
		return v.validateCredentials(value, fields...)
	case *models.Credentials:
		return v.validateCredentials(*value, fields...)

	case models.ProfileDraft:
		return v.validateDraft(value, fields...)
	case *models.ProfileDraft:
		return v.validateDraft(*value, fields...)

	case models.ProfilePatch:
		return v.validatePatch(value, fields...)
	case *models.ProfilePatch:
		return v.validatePatch(*value, fields...)

	case models.SynthesisRequest:
		return v.validateSynthesis(value, fields...)
	case *models.SynthesisRequest:
		return v.validateSynthesis(*value, fields...)

	default:
		return ErrUnsupportedType
	}
}

// validateCredentials checks login and registration input.
//
// Default validated fields: Email, Password, UserName.
func (v *ClientInputValidator) validateCredentials(creds models.Credentials, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldEmail, FieldPassword, FieldUserName}
	}

	for _, f := range fields {
		switch f {
		case FieldEmail:
			email := strings.TrimSpace(creds.Email)
			if email == "" {
				return ErrEmptyEmail
			}
			if _, err := mail.ParseAddress(email); err != nil {
				return ErrInvalidEmail
			}
		case FieldPassword:
			if creds.Password == "" {
				return ErrEmptyPassword
			}
		case FieldUserName:
			if utf8.RuneCountInString(creds.Name) > MaxUserNameLength {
				return ErrNameTooLong
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateDraft checks a new profile.
//
// Default validated fields: Name, Description, Transcript, ReferenceAudio,
// Color, Tags. The reference audio must be sniffed as audio.
func (v *ClientInputValidator) validateDraft(draft models.ProfileDraft, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldName, FieldDescription, FieldTranscript, FieldReferenceAudio, FieldColor, FieldTags}
	}

	for _, f := range fields {
		switch f {
		case FieldName:
			if err := checkProfileName(draft.Name); err != nil {
				return err
			}
		case FieldDescription:
			if utf8.RuneCountInString(draft.Description) > MaxDescriptionLength {
				return ErrDescriptionTooLong
			}
		case FieldTranscript:
			if strings.TrimSpace(draft.ReferenceTranscript) == "" {
				return ErrEmptyTranscript
			}
			if utf8.RuneCountInString(draft.ReferenceTranscript) > MaxTranscriptLength {
				return ErrTranscriptTooLong
			}
		case FieldReferenceAudio:
			if draft.ReferenceAudio == nil || len(draft.ReferenceAudio.Data) == 0 {
				return ErrEmptyReferenceAudio
			}
			if !filetype.IsAudio(draft.ReferenceAudio.Data) {
				return ErrReferenceAudioNotAudio
			}
		case FieldColor:
			if draft.ColorTag != "" && !colorPattern.MatchString(draft.ColorTag) {
				return ErrInvalidColor
			}
		case FieldTags:
			if len(draft.StyleTags.String()) > MaxTagsLength {
				return ErrTagsTooLong
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validatePatch checks a partial profile update. Nil fields are skipped
// (partial update semantics: nil means "do not touch").
//
// Default validated fields: AnyUpdate, Name, Description, Transcript, Color,
// Tags.
func (v *ClientInputValidator) validatePatch(patch models.ProfilePatch, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldAnyUpdate, FieldName, FieldDescription, FieldTranscript, FieldColor, FieldTags}
	}

	for _, f := range fields {
		switch f {
		case FieldAnyUpdate:
			if patch.IsEmpty() {
				return ErrNoFieldsToUpdate
			}
		case FieldName:
			if patch.Name != nil {
				if err := checkProfileName(*patch.Name); err != nil {
					return err
				}
			}
		case FieldDescription:
			if patch.Description != nil && utf8.RuneCountInString(*patch.Description) > MaxDescriptionLength {
				return ErrDescriptionTooLong
			}
		case FieldTranscript:
			if patch.ReferenceTranscript != nil && utf8.RuneCountInString(*patch.ReferenceTranscript) > MaxTranscriptLength {
				return ErrTranscriptTooLong
			}
		case FieldColor:
			if patch.ColorTag != nil && !colorPattern.MatchString(*patch.ColorTag) {
				return ErrInvalidColor
			}
		case FieldTags:
			if patch.StyleTags != nil && len(patch.StyleTags.String()) > MaxTagsLength {
				return ErrTagsTooLong
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateSynthesis checks a synthesis request. Zero speed and nil pitch
// mean "use the preset".
//
// Default validated fields: ProfileID, Text, Speed, Pitch.
func (v *ClientInputValidator) validateSynthesis(req models.SynthesisRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldProfileID, FieldText, FieldSpeed, FieldPitch}
	}

	for _, f := range fields {
		switch f {
		case FieldProfileID:
			if req.ProfileID <= 0 {
				return ErrInvalidProfileID
			}
		case FieldText:
			if strings.TrimSpace(req.Text) == "" {
				return ErrEmptyText
			}
			if utf8.RuneCountInString(req.Text) > MaxTextLength {
				return ErrTextTooLong
			}
		case FieldSpeed:
			if req.Speed != 0 && (req.Speed < MinSpeed || req.Speed > MaxSpeed) {
				return ErrInvalidSpeed
			}
		case FieldPitch:
			if req.PitchShift != nil && (*req.PitchShift < -MaxPitch || *req.PitchShift > MaxPitch) {
				return ErrInvalidPitch
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func checkProfileName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyProfileName
	}
	if utf8.RuneCountInString(name) > MaxProfileNameLength {
		return ErrProfileNameTooLong
	}
	return nil
}
