// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	up         key.Binding
	down       key.Binding
	enter      key.Binding
	esc        key.Binding
	tab        key.Binding
	backtab    key.Binding
	quit       key.Binding
	retry      key.Binding
	dismiss    key.Binding
	buildInfo  key.Binding
	logout     key.Binding
	newItem    key.Binding
	edit       key.Binding
	delete     key.Binding
	refresh    key.Binding
	copyKey    key.Binding
	newKey     key.Binding
	revokeKey  key.Binding
	yes        key.Binding
	no         key.Binding
	generate   key.Binding
	clearAudio key.Binding
	copyPath   key.Binding
	conversion key.Binding
	cancelJob  key.Binding
}

var keys = keyMap{
	up:         key.NewBinding(key.WithKeys("up", "k")),
	down:       key.NewBinding(key.WithKeys("down", "j")),
	enter:      key.NewBinding(key.WithKeys("enter")),
	esc:        key.NewBinding(key.WithKeys("esc")),
	tab:        key.NewBinding(key.WithKeys("tab")),
	backtab:    key.NewBinding(key.WithKeys("shift+tab")),
	quit:       key.NewBinding(key.WithKeys("ctrl+c")),
	retry:      key.NewBinding(key.WithKeys("ctrl+r")),
	dismiss:    key.NewBinding(key.WithKeys("ctrl+x")),
	buildInfo:  key.NewBinding(key.WithKeys("v")),
	logout:     key.NewBinding(key.WithKeys("L")),
	newItem:    key.NewBinding(key.WithKeys("n")),
	edit:       key.NewBinding(key.WithKeys("e")),
	delete:     key.NewBinding(key.WithKeys("d")),
	refresh:    key.NewBinding(key.WithKeys("r")),
	copyKey:    key.NewBinding(key.WithKeys("c")),
	newKey:     key.NewBinding(key.WithKeys("g")),
	revokeKey:  key.NewBinding(key.WithKeys("x")),
	yes:        key.NewBinding(key.WithKeys("y")),
	no:         key.NewBinding(key.WithKeys("n", "esc")),
	generate:   key.NewBinding(key.WithKeys("ctrl+s")),
	clearAudio: key.NewBinding(key.WithKeys("ctrl+l")),
	copyPath:   key.NewBinding(key.WithKeys("ctrl+y")),
	conversion: key.NewBinding(key.WithKeys("ctrl+t")),
	cancelJob:  key.NewBinding(key.WithKeys("ctrl+k")),
}
