// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"github.com/MKhiriev/voxclone-client/internal/client"
	"github.com/MKhiriev/voxclone-client/models"
)

// NavigateTo switches the active page. Payload, if set, is delivered to the
// new page as its first message.
type NavigateTo struct {
	Page    string
	Payload any
}

// viewMsg carries a new coordinator view.
type viewMsg struct {
	view client.View
}

type loginResultMsg struct {
	err error
}

type registerResultMsg struct {
	err error
}

// editProfileMsg opens the profile form; a nil profile means create.
type editProfileMsg struct {
	profile *models.VoiceProfile
}

type profileSavedMsg struct {
	err error
}

type profileDeletedMsg struct {
	err error
}

// synthesizeProfileMsg opens the synthesis page for a profile.
type synthesizeProfileMsg struct {
	profile models.VoiceProfile
}

type synthesisDoneMsg struct {
	job models.SynthesisJob
	err error
}

type emotionsLoadedMsg struct {
	emotions []models.Emotion
}

type apiKeyMsg struct {
	key string
	err error
}

type refreshDoneMsg struct{}

type clearStatusMsg struct{}
