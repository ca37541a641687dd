// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"errors"
)

var (
	ErrNilCoordinator = errors.New("client: coordinator is required")
	ErrNilUI          = errors.New("client: ui is required")
)

// Client defines the minimal lifecycle contract for runnable client
// applications.
type Client interface {
	// Run starts the client application and blocks until exit.
	Run() error
}

// UI is the interactive front end driven by the [Coordinator]. Run blocks
// until the user quits or ctx is done.
type UI interface {
	Run(ctx context.Context) error
}

// Closer releases a resource owned by the application.
type Closer interface {
	Close() error
}
