// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/MKhiriev/voxclone-client/internal/adapter"
	"github.com/MKhiriev/voxclone-client/internal/client"
	"github.com/MKhiriev/voxclone-client/internal/config"
	"github.com/MKhiriev/voxclone-client/internal/logger"
	"github.com/MKhiriev/voxclone-client/internal/service"
	"github.com/MKhiriev/voxclone-client/internal/store"
	"github.com/MKhiriev/voxclone-client/internal/tui"
	"github.com/MKhiriev/voxclone-client/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	fmt.Println(buildInfo.String())

	cfg, err := config.GetClientConfig(os.Args[1:])
	if err != nil {
		logger.NewLogger("voxclone-client", os.Stderr).Fatal().Err(err).Msg("error getting configs")
	}

	log := logger.NewClientLogger("voxclone-client", cfg.Log.Dir, cfg.Log.Level)

	storages, err := store.NewClientStorages(context.Background(), cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create local storage")
	}

	serverAdapter, err := adapter.NewHTTPServerAdapter(cfg.Adapter, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create server adapter")
	}

	services := service.NewClientServices(cfg, storages, serverAdapter, buildInfo, log)
	coordinator := client.NewCoordinator(services, service.NewScheduler(), client.Settings{
		ErrorTTL:               cfg.App.ErrorTTL,
		CreditsRefreshInterval: cfg.Workers.CreditsRefreshInterval,
	}, log)

	app, err := client.NewApp(coordinator, tui.New(coordinator, log), log, storages)
	if err != nil {
		log.Fatal().Err(err).Msg("init client app error")
	}

	if err = app.Run(); err != nil {
		log.Fatal().Err(err).Msg("client run error")
	}
}
