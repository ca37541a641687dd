// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"github.com/MKhiriev/voxclone-client/internal/adapter"
	"github.com/MKhiriev/voxclone-client/internal/config"
	"github.com/MKhiriev/voxclone-client/internal/logger"
	"github.com/MKhiriev/voxclone-client/internal/store"
	"github.com/MKhiriev/voxclone-client/internal/validators"
	"github.com/MKhiriev/voxclone-client/models"
)

type ClientServices struct {
	SessionService      ClientSessionService
	ConnectivityService ClientConnectivityService
	ProfileService      ClientProfileService
	SynthesisService    ClientSynthesisService
	CreditService       ClientCreditService
	CatalogService      ClientCatalogService
	RefreshJob          ClientRefreshJob
	AppInfoService      AppInfoService
}

func NewClientServices(
	cfg *config.ClientConfig,
	storages *store.ClientStorages,
	serverAdapter adapter.ServerAdapter,
	buildInfo models.AppBuildInfo,
	logger *logger.Logger,
) *ClientServices {
	scheduler := NewScheduler()
	validator := validators.NewClientInputValidator()
	creditSvc := NewClientCreditService(serverAdapter, logger)

	return &ClientServices{
		SessionService:      NewClientSessionService(serverAdapter, storages.Tokens, validator, scheduler, cfg.App.AuthSafetyTimeout, logger),
		ConnectivityService: NewClientConnectivityService(serverAdapter, cfg.Workers, scheduler, logger),
		ProfileService:      NewClientProfileService(serverAdapter, validator, logger),
		SynthesisService:    NewClientSynthesisService(serverAdapter, storages.Audio, validator, cfg.Synthesis, logger),
		CreditService:       creditSvc,
		CatalogService:      NewClientCatalogService(serverAdapter, logger),
		RefreshJob:          NewClientRefreshJob(creditSvc, logger),
		AppInfoService:      NewAppInfoService(buildInfo, logger),
	}
}
