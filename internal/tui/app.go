// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/voxclone-client/internal/client"
)

// viewAware pages receive every new coordinator view, active or not.
type viewAware interface {
	setView(v client.View)
}

// RootModel is a TUI router:
// 1) keeps active page
// 2) handles global hotkeys (quit, retry connection, dismiss error)
// 3) handles NavigateTo messages
// 4) follows authentication edges of the view
// 5) delegates all other messages to the active page
type RootModel struct {
	pages       map[string]tea.Model
	current     tea.Model
	currentName string

	controller Controller
	view       client.View

	showBuildInfo bool
}

// NewRootModel registers all pages and opens startPage.
func NewRootModel(pages map[string]tea.Model, startPage string, view client.View, controller Controller) RootModel {
	r := RootModel{
		pages:       pages,
		current:     pages[startPage],
		currentName: startPage,
		controller:  controller,
		view:        view,
	}
	r.broadcast(view)
	return r
}

func (r RootModel) Init() tea.Cmd {
	if r.current == nil {
		return nil
	}
	return r.current.Init()
}

func (r RootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Global hotkeys for every page.
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, keys.quit):
			return r, tea.Quit
		case key.Matches(keyMsg, keys.retry):
			return r, r.cmdRetry()
		case key.Matches(keyMsg, keys.dismiss):
			return r, r.cmdDismiss()
		case key.Matches(keyMsg, keys.buildInfo) && r.isBrowsingPage():
			r.showBuildInfo = !r.showBuildInfo
			return r, nil
		case key.Matches(keyMsg, keys.esc) && r.showBuildInfo:
			r.showBuildInfo = false
			return r, nil
		}

		if r.showBuildInfo {
			return r, nil
		}
	}

	switch msg := msg.(type) {
	case NavigateTo:
		return r.navigate(msg)

	case viewMsg:
		// subscribers are notified from goroutines, late views are dropped
		if msg.view.Version < r.view.Version {
			return r, nil
		}
		prev := r.view
		r.view = msg.view
		r.broadcast(msg.view)

		switch {
		case msg.view.Authenticated && !prev.Authenticated:
			return r.navigate(NavigateTo{Page: pageProfiles})
		case !msg.view.Authenticated && prev.Authenticated:
			return r.navigate(NavigateTo{Page: pageMenu})
		}
		return r, nil
	}

	if r.current == nil {
		return r, nil
	}

	updated, cmd := r.current.Update(msg)
	r.current = updated
	r.pages[r.currentName] = updated
	return r, cmd
}

func (r RootModel) View() string {
	var body string
	switch {
	case r.showBuildInfo:
		body = renderBuildInfoWindow(r.controller.BuildInfo())
	case r.current == nil:
		body = renderPage("VOXCLONE", "", "")
	default:
		body = r.current.View()
	}
	return body + "\n\n" + renderStatusBar(r.view)
}

func (r RootModel) navigate(nav NavigateTo) (tea.Model, tea.Cmd) {
	next, exists := r.pages[nav.Page]
	if !exists {
		return r, nil
	}

	r.showBuildInfo = false
	r.current = next
	r.currentName = nav.Page

	if nav.Payload != nil {
		return r, tea.Batch(r.current.Init(), func() tea.Msg { return nav.Payload })
	}
	return r, r.current.Init()
}

func (r RootModel) broadcast(v client.View) {
	for _, page := range r.pages {
		if aware, ok := page.(viewAware); ok {
			aware.setView(v)
		}
	}
}

func (r RootModel) isBrowsingPage() bool {
	return r.currentName == pageMenu || r.currentName == pageProfiles
}

func (r RootModel) cmdRetry() tea.Cmd {
	controller := r.controller
	return func() tea.Msg {
		controller.RetryConnection()
		return nil
	}
}

func (r RootModel) cmdDismiss() tea.Cmd {
	controller := r.controller
	return func() tea.Msg {
		controller.DismissError()
		return nil
	}
}
