// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/voxclone-client/internal/client"
	"github.com/MKhiriev/voxclone-client/internal/service"
	"github.com/MKhiriev/voxclone-client/models"
)

var errInvalidSpeed = errors.New("speed must be a number like 1.0")

// SynthesisModel renders text with the selected voice profile and follows
// the job through its milestones.
type SynthesisModel struct {
	ctx        context.Context
	controller Controller

	profile models.VoiceProfile
	view    client.View

	text       textarea.Model
	inputs     []textinput.Model // emotion, speed, language
	focus      int               // 0 is the text area
	conversion bool

	emotions []models.Emotion
	errMsg   string
	status   string
}

func NewSynthesisModel(ctx context.Context, controller Controller) *SynthesisModel {
	text := textarea.New()
	text.Placeholder = "Text to speak..."
	text.CharLimit = 5000
	text.SetWidth(60)
	text.SetHeight(5)
	text.Focus()

	inputs := make([]textinput.Model, 3)
	for i, placeholder := range []string{"neutral", "1.0", "en"} {
		inputs[i] = textinput.New()
		inputs[i].Placeholder = placeholder
		inputs[i].Width = 20
	}

	return &SynthesisModel{ctx: ctx, controller: controller, text: text, inputs: inputs}
}

func (m *SynthesisModel) setView(v client.View) {
	m.view = v
}

func (m *SynthesisModel) Init() tea.Cmd {
	ctx, controller := m.ctx, m.controller
	return tea.Batch(textarea.Blink, func() tea.Msg {
		emotions, _ := controller.Emotions(ctx)
		return emotionsLoadedMsg{emotions: emotions}
	})
}

func (m *SynthesisModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case synthesizeProfileMsg:
		m.profile = msg.profile
		m.errMsg = ""
		m.status = ""
		if msg.profile.LanguageCode != "" && m.inputs[2].Value() == "" {
			m.inputs[2].SetValue(msg.profile.LanguageCode)
		}
		return m, nil
	case emotionsLoadedMsg:
		m.emotions = msg.emotions
		return m, nil
	case synthesisDoneMsg:
		if msg.err == nil && msg.job.Audio != nil {
			m.status = "Saved to " + msg.job.Audio.Path
		}
		return m, nil
	case clearStatusMsg:
		m.status = ""
		return m, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch {
		case key.Matches(keyMsg, keys.esc):
			return m, func() tea.Msg { return NavigateTo{Page: pageProfiles} }
		case key.Matches(keyMsg, keys.tab):
			m.moveFocus(1)
			return m, nil
		case key.Matches(keyMsg, keys.backtab):
			m.moveFocus(-1)
			return m, nil
		case key.Matches(keyMsg, keys.conversion):
			m.conversion = !m.conversion
			return m, nil
		case key.Matches(keyMsg, keys.generate):
			return m, m.cmdGenerate()
		case key.Matches(keyMsg, keys.cancelJob):
			return m, m.cmdCancel()
		case key.Matches(keyMsg, keys.clearAudio):
			return m, m.cmdClear()
		case key.Matches(keyMsg, keys.copyPath):
			if audio := m.view.Job.Audio; audio != nil {
				if err := clipboard.WriteAll(audio.Path); err != nil {
					m.status = "Copy failed: " + err.Error()
				} else {
					m.status = "Audio path copied"
				}
				return m, tea.Tick(statusTTL, func(time.Time) tea.Msg { return clearStatusMsg{} })
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	if m.focus == 0 {
		m.text, cmd = m.text.Update(msg)
	} else {
		m.inputs[m.focus-1], cmd = m.inputs[m.focus-1].Update(msg)
	}
	return m, cmd
}

func (m *SynthesisModel) View() string {
	var b strings.Builder

	b.WriteString("Voice: ")
	b.WriteString(m.profile.Name)
	b.WriteString("\n\n")
	b.WriteString(m.text.View())
	b.WriteString("\n\n")

	labels := []string{"Emotion ", "Speed   ", "Language"}
	for i, input := range m.inputs {
		b.WriteString(labels[i])
		b.WriteString(" │ [")
		b.WriteString(input.View())
		b.WriteString("]\n")
	}
	conversion := "off"
	if m.conversion {
		conversion = "on"
	}
	b.WriteString("Voice conversion: ")
	b.WriteString(conversion)
	b.WriteString("\n")

	if len(m.emotions) > 0 {
		names := make([]string, 0, len(m.emotions))
		for _, e := range m.emotions {
			names = append(names, e.Name)
		}
		b.WriteString(helpStyle.Render("Emotions: " + strings.Join(names, ", ")))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(renderJob(m.view.Job))

	if m.errMsg != "" {
		b.WriteString("\nError: ")
		b.WriteString(m.errMsg)
		b.WriteString("\n")
	}
	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(m.status)
		b.WriteString("\n")
	}

	return renderPage("SYNTHESIZE", strings.TrimRight(b.String(), "\n"),
		"ctrl+s: generate │ ctrl+k: cancel │ ctrl+t: conversion │ ctrl+l: clear audio │ ctrl+y: copy path │ tab: next field │ esc: back")
}

func (m *SynthesisModel) moveFocus(step int) {
	if m.focus == 0 {
		m.text.Blur()
	} else {
		m.inputs[m.focus-1].Blur()
	}

	total := len(m.inputs) + 1
	m.focus = (m.focus + step + total) % total

	if m.focus == 0 {
		m.text.Focus()
	} else {
		m.inputs[m.focus-1].Focus()
	}
}

func (m *SynthesisModel) cmdGenerate() tea.Cmd {
	if m.view.Job.State.Busy() {
		return nil
	}
	req, err := buildSynthesisRequest(m.profile.ID, m.text.Value(), m.inputs[0].Value(), m.inputs[1].Value(), m.inputs[2].Value(), m.conversion)
	if err != nil {
		m.errMsg = err.Error()
		return nil
	}
	m.errMsg = ""
	m.status = ""

	ctx, controller := m.ctx, m.controller
	return func() tea.Msg {
		job, err := controller.Generate(ctx, req)
		return synthesisDoneMsg{job: job, err: err}
	}
}

func (m *SynthesisModel) cmdCancel() tea.Cmd {
	if !m.view.Job.State.Busy() {
		return nil
	}
	ctx, controller := m.ctx, m.controller
	return func() tea.Msg {
		_ = controller.CancelSynthesis(ctx)
		return nil
	}
}

func (m *SynthesisModel) cmdClear() tea.Cmd {
	m.status = ""
	controller := m.controller
	return func() tea.Msg {
		_ = controller.ClearAudio()
		return nil
	}
}

// buildSynthesisRequest leaves blank options empty so configured defaults
// apply.
func buildSynthesisRequest(profileID int64, text, emotion, speed, language string, conversion bool) (models.SynthesisRequest, error) {
	req := models.SynthesisRequest{
		ProfileID:       profileID,
		Text:            strings.TrimSpace(text),
		Emotion:         strings.TrimSpace(emotion),
		Language:        strings.TrimSpace(language),
		ApplyConversion: conversion,
	}

	if speed = strings.TrimSpace(speed); speed != "" {
		v, err := strconv.ParseFloat(speed, 64)
		if err != nil {
			return models.SynthesisRequest{}, errInvalidSpeed
		}
		req.Speed = v
	}
	return req, nil
}

func renderJob(job models.SynthesisJob) string {
	switch job.State {
	case models.SynthesisIdle:
		return helpStyle.Render("Nothing generated yet.") + "\n"
	case models.SynthesisFailed:
		if errors.Is(job.Err, service.ErrSynthesisCanceled) {
			return helpStyle.Render("Generation canceled.") + "\n"
		}
		return errorStyle.Render("Generation failed.") + "\n"
	case models.SynthesisReady:
		var b strings.Builder
		b.WriteString(progressBar(job.Milestone.Percent(), 30))
		b.WriteString(" ready\n")
		if job.Audio != nil {
			b.WriteString(fmt.Sprintf("Audio: %s (%d bytes)\n", job.Audio.Path, job.Audio.Size))
		}
		b.WriteString(fmt.Sprintf("Duration: %.1fs │ credits used: %.1f\n", job.DurationSeconds, job.CreditsUsed))
		return b.String()
	default:
		line := progressBar(job.Percent(), 30) + " " + job.Milestone.String()
		if job.TaskID != "" {
			line += fmt.Sprintf(" │ task %s %.0f%%", job.TaskID, job.TaskProgress)
		}
		return line + "\n"
	}
}
