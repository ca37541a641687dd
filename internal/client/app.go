// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/voxclone-client/internal/logger"
)

// App runs the coordinator for as long as the user interface is open.
type App struct {
	coordinator *Coordinator
	ui          UI
	closers     []Closer
	logger      *logger.Logger
}

// NewApp assembles the runtime. closers are closed in order after the
// coordinator has stopped.
func NewApp(coordinator *Coordinator, ui UI, logger *logger.Logger, closers ...Closer) (*App, error) {
	if coordinator == nil {
		return nil, ErrNilCoordinator
	}
	if ui == nil {
		return nil, ErrNilUI
	}

	return &App{
		coordinator: coordinator,
		ui:          ui,
		closers:     closers,
		logger:      logger.Component("app"),
	}, nil
}

// Run starts the coordinator, blocks in the user interface and tears
// everything down on exit or on SIGINT/SIGTERM.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return a.run(ctx)
}

func (a *App) run(ctx context.Context) (err error) {
	a.logger.Info().Msg("client starting")

	a.coordinator.Start(ctx)
	defer func() {
		a.coordinator.Stop()
		for _, c := range a.closers {
			if closeErr := c.Close(); closeErr != nil {
				a.logger.Err(closeErr).Msg("failed to close resource")
				err = errors.Join(err, closeErr)
			}
		}
		a.logger.Info().Msg("client stopped")
	}()

	if uiErr := a.ui.Run(ctx); uiErr != nil && !errors.Is(uiErr, context.Canceled) {
		return fmt.Errorf("ui: %w", uiErr)
	}
	return nil
}
