// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package tui is the terminal front end of the voxclone client. It renders
// the coordinator's view and turns key presses into coordinator calls.
package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/voxclone-client/internal/client"
	"github.com/MKhiriev/voxclone-client/internal/logger"
)

// Page names used with [NavigateTo].
const (
	pageMenu       = "menu"
	pageLogin      = "login"
	pageRegister   = "register"
	pageProfiles   = "profiles"
	pageProfile    = "profile"
	pageSynthesize = "synthesize"
)

type TUI struct {
	controller Controller
	logger     *logger.Logger
}

func New(controller Controller, logger *logger.Logger) *TUI {
	return &TUI{controller: controller, logger: logger.Component("tui")}
}

// Run blocks in the terminal program until the user quits or ctx is done.
func (t *TUI) Run(ctx context.Context) error {
	view := t.controller.View()
	start := pageMenu
	if view.Authenticated {
		start = pageProfiles
	}

	root := NewRootModel(t.pages(ctx), start, view, t.controller)
	p := tea.NewProgram(root, tea.WithAltScreen(), tea.WithContext(ctx))

	unsubscribe := t.controller.Subscribe(func(v client.View) {
		go p.Send(viewMsg{view: v})
	})
	defer unsubscribe()

	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return ctx.Err()
		}
		t.logger.Err(err).Msg("terminal program failed")
		return err
	}
	return nil
}

func (t *TUI) pages(ctx context.Context) map[string]tea.Model {
	return map[string]tea.Model{
		pageMenu:       NewMenuModel(),
		pageLogin:      NewLoginModel(ctx, t.controller),
		pageRegister:   NewRegisterModel(ctx, t.controller),
		pageProfiles:   NewProfilesModel(ctx, t.controller),
		pageProfile:    NewProfileFormModel(ctx, t.controller),
		pageSynthesize: NewSynthesisModel(ctx, t.controller),
	}
}
