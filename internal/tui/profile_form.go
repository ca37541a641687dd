// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/voxclone-client/models"
)

const (
	fieldName = iota
	fieldDescription
	fieldColor
	fieldTags
	fieldLanguage
	fieldTranscript
	fieldAudioPath
)

var profileFieldLabels = []string{
	fieldName:        "Name       ",
	fieldDescription: "Description",
	fieldColor:       "Color      ",
	fieldTags:        "Tags       ",
	fieldLanguage:    "Language   ",
	fieldTranscript:  "Transcript ",
	fieldAudioPath:   "Audio file ",
}

// ProfileFormModel creates a profile or edits an existing one. Editing sends
// only the fields that changed.
type ProfileFormModel struct {
	ctx        context.Context
	controller Controller

	original *models.VoiceProfile
	inputs   []textinput.Model
	focus    int

	submitting bool
	errMsg     string
}

func NewProfileFormModel(ctx context.Context, controller Controller) *ProfileFormModel {
	m := &ProfileFormModel{ctx: ctx, controller: controller}
	m.reset(nil)
	return m
}

func (m *ProfileFormModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *ProfileFormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case editProfileMsg:
		m.reset(msg.profile)
		return m, nil
	case profileSavedMsg:
		m.submitting = false
		if msg.err != nil {
			return m, nil
		}
		return m, func() tea.Msg { return NavigateTo{Page: pageProfiles} }
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch {
		case key.Matches(keyMsg, keys.esc):
			return m, func() tea.Msg { return NavigateTo{Page: pageProfiles} }
		case key.Matches(keyMsg, keys.tab):
			m.focus = cycleFocus(m.inputs, m.focus, 1)
			return m, nil
		case key.Matches(keyMsg, keys.backtab):
			m.focus = cycleFocus(m.inputs, m.focus, -1)
			return m, nil
		case key.Matches(keyMsg, keys.enter):
			if m.submitting {
				return m, nil
			}
			return m.submit()
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *ProfileFormModel) View() string {
	var b strings.Builder
	for i, input := range m.inputs {
		b.WriteString(profileFieldLabels[i])
		b.WriteString(" │ [")
		b.WriteString(input.View())
		b.WriteString("]\n")
	}

	if m.submitting {
		b.WriteString("\n[Saving...]\n")
	} else {
		b.WriteString("\n[Save]\n")
	}
	if m.errMsg != "" {
		b.WriteString("\nError: ")
		b.WriteString(m.errMsg)
		b.WriteString("\n")
	}

	title := "NEW VOICE PROFILE"
	if m.original != nil {
		title = "EDIT: " + m.original.Name
	}
	return renderPage(title, strings.TrimRight(b.String(), "\n"), "esc: cancel │ tab: next field │ enter: save")
}

func (m *ProfileFormModel) values() []string {
	values := make([]string, len(m.inputs))
	for i, input := range m.inputs {
		values[i] = input.Value()
	}
	return values
}

func (m *ProfileFormModel) submit() (tea.Model, tea.Cmd) {
	ctx, controller := m.ctx, m.controller
	values := m.values()

	if m.original != nil {
		patch := patchFromForm(*m.original, values)
		if patch.IsEmpty() {
			return m, func() tea.Msg { return NavigateTo{Page: pageProfiles} }
		}
		id := m.original.ID
		m.errMsg = ""
		m.submitting = true
		return m, func() tea.Msg {
			_, err := controller.UpdateProfile(ctx, id, patch)
			return profileSavedMsg{err: err}
		}
	}

	audio, err := readAudioUpload(values[fieldAudioPath])
	if err != nil {
		m.errMsg = err.Error()
		return m, nil
	}
	draft := draftFromForm(values, audio)

	m.errMsg = ""
	m.submitting = true
	return m, func() tea.Msg {
		_, err := controller.CreateProfile(ctx, draft)
		return profileSavedMsg{err: err}
	}
}

func (m *ProfileFormModel) reset(profile *models.VoiceProfile) {
	m.original = profile
	m.submitting = false
	m.errMsg = ""
	m.focus = 0

	count := fieldAudioPath + 1
	if profile != nil {
		// the reference audio of an existing profile is kept as is
		count = fieldAudioPath
	}

	m.inputs = make([]textinput.Model, count)
	placeholders := []string{"My narrator", "optional", "#7c3aed", "warm, calm", "en", "words spoken in the reference audio", "/path/to/reference.wav"}
	for i := range m.inputs {
		m.inputs[i] = textinput.New()
		m.inputs[i].Placeholder = placeholders[i]
		m.inputs[i].Width = 48
	}
	m.inputs[fieldName].CharLimit = 100
	m.inputs[fieldTranscript].CharLimit = 5000
	m.inputs[fieldName].Focus()

	if profile != nil {
		m.inputs[fieldName].SetValue(profile.Name)
		m.inputs[fieldDescription].SetValue(profile.Description)
		m.inputs[fieldColor].SetValue(profile.ColorTag)
		m.inputs[fieldTags].SetValue(profile.StyleTags.String())
		m.inputs[fieldLanguage].SetValue(profile.LanguageCode)
		m.inputs[fieldTranscript].SetValue(profile.ReferenceTranscript)
	}
}

func draftFromForm(values []string, audio *models.AudioUpload) models.ProfileDraft {
	return models.ProfileDraft{
		Name:                strings.TrimSpace(values[fieldName]),
		Description:         strings.TrimSpace(values[fieldDescription]),
		ColorTag:            strings.TrimSpace(values[fieldColor]),
		StyleTags:           models.ParseTagSet(values[fieldTags]),
		LanguageCode:        strings.TrimSpace(values[fieldLanguage]),
		ReferenceTranscript: strings.TrimSpace(values[fieldTranscript]),
		ReferenceAudio:      audio,
	}
}

// patchFromForm sets only the fields whose value differs from original.
func patchFromForm(original models.VoiceProfile, values []string) models.ProfilePatch {
	var patch models.ProfilePatch

	changed := func(current, value string) *string {
		value = strings.TrimSpace(value)
		if value == current {
			return nil
		}
		return &value
	}

	patch.Name = changed(original.Name, values[fieldName])
	patch.Description = changed(original.Description, values[fieldDescription])
	patch.ColorTag = changed(original.ColorTag, values[fieldColor])
	patch.LanguageCode = changed(original.LanguageCode, values[fieldLanguage])
	patch.ReferenceTranscript = changed(original.ReferenceTranscript, values[fieldTranscript])

	if tags := models.ParseTagSet(values[fieldTags]); !tags.Equal(original.StyleTags) {
		patch.StyleTags = &tags
	}
	return patch
}

// readAudioUpload loads the reference recording; an empty path yields nil
// and is reported by validation.
func readAudioUpload(path string) (*models.AudioUpload, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read reference audio: %w", err)
	}
	return &models.AudioUpload{FileName: filepath.Base(path), Data: data}, nil
}
