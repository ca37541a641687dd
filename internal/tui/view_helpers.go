// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"fmt"
	"strings"

	"github.com/MKhiriev/voxclone-client/internal/client"
	"github.com/MKhiriev/voxclone-client/models"
)

const uiDivider = "──────────────────────────────────────────────────────"

func renderPage(title, data, hotKeys string) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")
	b.WriteString("  ")
	b.WriteString(uiDivider)
	b.WriteString("\n\n")

	if strings.TrimSpace(data) != "" {
		lines := strings.Split(data, "\n")
		for _, line := range lines {
			b.WriteString("  ")
			b.WriteString(line)
			b.WriteString("\n")
		}
	} else {
		b.WriteString("  -\n")
	}

	b.WriteString("\n")
	b.WriteString("  ")
	b.WriteString(uiDivider)
	b.WriteString("\n")

	if strings.TrimSpace(hotKeys) != "" {
		b.WriteString("  ")
		b.WriteString(helpStyle.Render(hotKeys))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("  ctrl+r: retry connection │ ctrl+x: dismiss error │ ctrl+c: quit"))

	return b.String()
}

// renderStatusBar shows connectivity, the signed-in user with the balance,
// and the global error if there is one.
func renderStatusBar(v client.View) string {
	var b strings.Builder

	b.WriteString("  ")
	b.WriteString(connectivityLine(v.Status))

	if v.Authenticated {
		b.WriteString(" │ ")
		b.WriteString(v.Session.DisplayName)
		b.WriteString(fmt.Sprintf(" │ credits: %d", v.Credits))
	}

	if v.Error != "" {
		b.WriteString("\n  ")
		b.WriteString(errorStyle.Render("! " + v.Error))
	}
	return b.String()
}

func connectivityLine(s models.SystemStatus) string {
	switch {
	case s.CheckedAt.IsZero():
		return helpStyle.Render("… checking service")
	case s.Reachable:
		gpu := "CPU only"
		if s.GPUAvailable {
			gpu = "GPU"
			if s.GPULabel != "" {
				gpu += ": " + s.GPULabel
			}
		}
		return onlineStyle.Render("● online · " + gpu)
	default:
		line := fmt.Sprintf("○ offline (%d failed)", s.ConsecutiveFailures)
		if s.SecondsUntilNextRetry > 0 {
			line += fmt.Sprintf(" · retry in %ds", s.SecondsUntilNextRetry)
		}
		return offlineStyle.Render(line)
	}
}

// progressBar renders a milestone percentage as a fixed-width bar.
func progressBar(percent, width int) string {
	percent = max(0, min(percent, 100))
	filled := width * percent / 100
	return "[" + strings.Repeat("█", filled) + strings.Repeat("·", width-filled) + fmt.Sprintf("] %3d%%", percent)
}

func valueOrDash(v string) string {
	if strings.TrimSpace(v) == "" {
		return "-"
	}
	return v
}

func fitText(v string, max int) string {
	if max <= 0 || len(v) <= max {
		return v
	}
	if max <= 3 {
		return v[:max]
	}
	return v[:max-3] + "..."
}
