// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// VoiceProfile is a saved cloning target: reference audio, its transcript and
// descriptive metadata. The list of profiles is owned by the profile store.
type VoiceProfile struct {
	// ID is assigned by the server on creation.
	ID int64 `json:"id"`

	// UserID is the owner of the profile.
	UserID int64 `json:"user_id,omitempty"`

	Name        string `json:"name"`
	Description string `json:"description,omitempty"`

	// ColorTag is a hex color (#rrggbb) used as the profile avatar.
	ColorTag string `json:"color,omitempty"`

	// StyleTags describe the voice (e.g. "warm", "narrator").
	StyleTags TagSet `json:"tags"`

	// LanguageCode is a BCP-47 code such as "pt-BR".
	LanguageCode string `json:"language,omitempty"`

	// ReferenceAudioRef is the server-side location of the reference audio.
	ReferenceAudioRef string `json:"reference_audio_url,omitempty"`

	// ReferenceTranscript is the text spoken in the reference audio.
	ReferenceTranscript string `json:"reference_text,omitempty"`

	IsPublic  bool       `json:"is_public,omitempty"`
	CreatedAt *Timestamp `json:"created_at,omitempty"`
}

// AudioUpload is an in-memory audio file sent as a multipart part.
type AudioUpload struct {
	FileName string
	Data     []byte
}

// ProfileDraft is the input of profile creation. Name, ReferenceTranscript
// and ReferenceAudio are required.
type ProfileDraft struct {
	Name                string
	Description         string
	ColorTag            string
	StyleTags           TagSet
	LanguageCode        string
	ReferenceTranscript string
	ReferenceAudio      *AudioUpload
}

// ProfilePatch is a partial update of a profile. Nil fields are left
// untouched; it is also used to decode partial server responses.
type ProfilePatch struct {
	Name                *string `json:"name,omitempty"`
	Description         *string `json:"description,omitempty"`
	ColorTag            *string `json:"color,omitempty"`
	StyleTags           *TagSet `json:"tags,omitempty"`
	LanguageCode        *string `json:"language,omitempty"`
	ReferenceTranscript *string `json:"reference_text,omitempty"`
	ReferenceAudioRef   *string `json:"reference_audio_url,omitempty"`
	IsPublic            *bool   `json:"is_public,omitempty"`
}

// IsEmpty reports whether the patch changes nothing.
func (p ProfilePatch) IsEmpty() bool {
	return p.Name == nil && p.Description == nil && p.ColorTag == nil &&
		p.StyleTags == nil && p.LanguageCode == nil && p.ReferenceTranscript == nil &&
		p.ReferenceAudioRef == nil && p.IsPublic == nil
}

// ApplyTo merges the non-nil fields of p into profile and returns the result.
func (p ProfilePatch) ApplyTo(profile VoiceProfile) VoiceProfile {
	if p.Name != nil {
		profile.Name = *p.Name
	}
	if p.Description != nil {
		profile.Description = *p.Description
	}
	if p.ColorTag != nil {
		profile.ColorTag = *p.ColorTag
	}
	if p.StyleTags != nil {
		profile.StyleTags = NewTagSet(p.StyleTags.Values()...)
	}
	if p.LanguageCode != nil {
		profile.LanguageCode = *p.LanguageCode
	}
	if p.ReferenceTranscript != nil {
		profile.ReferenceTranscript = *p.ReferenceTranscript
	}
	if p.ReferenceAudioRef != nil {
		profile.ReferenceAudioRef = *p.ReferenceAudioRef
	}
	if p.IsPublic != nil {
		profile.IsPublic = *p.IsPublic
	}
	return profile
}
