// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/voxclone-client/internal/client"
	"github.com/MKhiriev/voxclone-client/models"
)

const statusTTL = 3 * time.Second

// ProfilesModel lists the voice profiles of the signed-in user and is the
// home page after login.
type ProfilesModel struct {
	ctx        context.Context
	controller Controller

	view    client.View
	idx     int
	spinner spinner.Model

	confirmDelete bool
	busy          bool
	status        string
	apiKeyShown   bool
}

func NewProfilesModel(ctx context.Context, controller Controller) *ProfilesModel {
	s := spinner.New()
	s.Spinner = spinner.MiniDot
	return &ProfilesModel{ctx: ctx, controller: controller, spinner: s}
}

func (m *ProfilesModel) setView(v client.View) {
	m.view = v
	if m.idx >= len(v.Profiles) {
		m.idx = len(v.Profiles) - 1
	}
	if m.idx < 0 {
		m.idx = 0
	}
}

func (m *ProfilesModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m *ProfilesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case profileDeletedMsg:
		m.busy = false
		if msg.err == nil {
			return m.flash("Profile deleted")
		}
		return m, nil
	case refreshDoneMsg:
		m.busy = false
		return m, nil
	case apiKeyMsg:
		m.busy = false
		if msg.err != nil {
			return m, nil
		}
		if msg.key == "" {
			m.apiKeyShown = false
			return m.flash("API key revoked")
		}
		m.apiKeyShown = true
		if err := clipboard.WriteAll(msg.key); err != nil {
			return m.flash("API key generated")
		}
		return m.flash("API key generated and copied")
	case clearStatusMsg:
		m.status = ""
		return m, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.confirmDelete {
		switch {
		case key.Matches(keyMsg, keys.yes):
			m.confirmDelete = false
			profile, ok := m.current()
			if !ok {
				return m, nil
			}
			m.busy = true
			return m, m.cmdDelete(profile.ID)
		case key.Matches(keyMsg, keys.no):
			m.confirmDelete = false
		}
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.up):
		if m.idx > 0 {
			m.idx--
		}
	case key.Matches(keyMsg, keys.down):
		if m.idx < len(m.view.Profiles)-1 {
			m.idx++
		}
	case key.Matches(keyMsg, keys.enter):
		profile, ok := m.current()
		if !ok {
			return m.flash("No profiles yet")
		}
		return m, func() tea.Msg {
			return NavigateTo{Page: pageSynthesize, Payload: synthesizeProfileMsg{profile: profile}}
		}
	case key.Matches(keyMsg, keys.newItem):
		return m, func() tea.Msg {
			return NavigateTo{Page: pageProfile, Payload: editProfileMsg{}}
		}
	case key.Matches(keyMsg, keys.edit):
		profile, ok := m.current()
		if !ok {
			return m.flash("No profiles yet")
		}
		return m, func() tea.Msg {
			return NavigateTo{Page: pageProfile, Payload: editProfileMsg{profile: &profile}}
		}
	case key.Matches(keyMsg, keys.delete):
		if _, ok := m.current(); ok && !m.busy {
			m.confirmDelete = true
		}
	case key.Matches(keyMsg, keys.refresh):
		if m.busy {
			return m, nil
		}
		m.busy = true
		return m, m.cmdRefresh()
	case key.Matches(keyMsg, keys.copyKey):
		if m.view.Session.APIKey == "" {
			return m.flash("No API key, press g to generate one")
		}
		if err := clipboard.WriteAll(m.view.Session.APIKey); err != nil {
			return m.flash("Copy failed: " + err.Error())
		}
		return m.flash("API key copied")
	case key.Matches(keyMsg, keys.newKey):
		if m.busy {
			return m, nil
		}
		m.busy = true
		return m, m.cmdGenerateKey()
	case key.Matches(keyMsg, keys.revokeKey):
		if m.busy || m.view.Session.APIKey == "" {
			return m, nil
		}
		m.busy = true
		return m, m.cmdRevokeKey()
	case key.Matches(keyMsg, keys.logout):
		return m, m.cmdLogout()
	}

	return m, nil
}

func (m *ProfilesModel) View() string {
	var b strings.Builder

	switch {
	case m.view.ProfilesLoading && len(m.view.Profiles) == 0:
		b.WriteString(m.spinner.View())
		b.WriteString(" Loading profiles...\n")
	case len(m.view.Profiles) == 0:
		b.WriteString("No voice profiles yet. Press n to create one.\n")
	default:
		b.WriteString(fmt.Sprintf("  %-4s │ %-24s │ %-5s │ %s\n", "ID", "Name", "Lang", "Tags"))
		b.WriteString("───────┼──────────────────────────┼───────┼────────────────────\n")
		for i, p := range m.view.Profiles {
			cursor := " "
			if i == m.idx {
				cursor = ">"
			}
			b.WriteString(fmt.Sprintf("%s %-4d │ %-24s │ %-5s │ %s\n",
				cursor, p.ID, fitText(p.Name, 24), valueOrDash(p.LanguageCode), fitText(valueOrDash(p.StyleTags.String()), 30)))
		}
		if m.view.ProfilesLoading {
			b.WriteString("\n")
			b.WriteString(m.spinner.View())
			b.WriteString(" Syncing...\n")
		}
	}

	if profile, ok := m.current(); ok && strings.TrimSpace(profile.Description) != "" {
		b.WriteString("\n")
		b.WriteString(helpStyle.Render(fitText(profile.Description, 80)))
		b.WriteString("\n")
	}

	b.WriteString("\nAPI key: ")
	b.WriteString(maskAPIKey(m.view.Session.APIKey, m.apiKeyShown))
	b.WriteString("\n")

	if m.confirmDelete {
		if profile, ok := m.current(); ok {
			b.WriteString("\n")
			b.WriteString(overlayBoxStyle.Render("Delete \"" + profile.Name + "\"?\n\ny: yes    n: no"))
			b.WriteString("\n")
		}
	}

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(m.status)
		b.WriteString("\n")
	}

	hotKeys := "enter: synthesize │ n: new │ e: edit │ d: delete │ r: refresh\n" +
		"  c: copy API key │ g: new API key │ x: revoke API key │ L: log out │ v: version"
	return renderPage("VOICE PROFILES", strings.TrimRight(b.String(), "\n"), hotKeys)
}

func (m *ProfilesModel) current() (models.VoiceProfile, bool) {
	if len(m.view.Profiles) == 0 || m.idx < 0 || m.idx >= len(m.view.Profiles) {
		return models.VoiceProfile{}, false
	}
	return m.view.Profiles[m.idx], true
}

func (m *ProfilesModel) flash(status string) (tea.Model, tea.Cmd) {
	m.status = status
	return m, tea.Tick(statusTTL, func(time.Time) tea.Msg { return clearStatusMsg{} })
}

func (m *ProfilesModel) cmdDelete(id int64) tea.Cmd {
	ctx, controller := m.ctx, m.controller
	return func() tea.Msg {
		return profileDeletedMsg{err: controller.DeleteProfile(ctx, id)}
	}
}

func (m *ProfilesModel) cmdRefresh() tea.Cmd {
	ctx, controller := m.ctx, m.controller
	return func() tea.Msg {
		_, _ = controller.FetchProfiles(ctx)
		_, _ = controller.RefreshCredits(ctx)
		return refreshDoneMsg{}
	}
}

func (m *ProfilesModel) cmdGenerateKey() tea.Cmd {
	ctx, controller := m.ctx, m.controller
	return func() tea.Msg {
		k, err := controller.GenerateAPIKey(ctx)
		return apiKeyMsg{key: k, err: err}
	}
}

func (m *ProfilesModel) cmdRevokeKey() tea.Cmd {
	ctx, controller := m.ctx, m.controller
	return func() tea.Msg {
		return apiKeyMsg{err: controller.RevokeAPIKey(ctx)}
	}
}

func (m *ProfilesModel) cmdLogout() tea.Cmd {
	ctx, controller := m.ctx, m.controller
	return func() tea.Msg {
		controller.Logout(ctx)
		return nil
	}
}

// maskAPIKey keeps the last four characters unless shown is set.
func maskAPIKey(apiKey string, shown bool) string {
	switch {
	case apiKey == "":
		return "-"
	case shown || len(apiKey) <= 4:
		return apiKey
	default:
		return strings.Repeat("•", 8) + apiKey[len(apiKey)-4:]
	}
}
