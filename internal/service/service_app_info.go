// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"github.com/MKhiriev/voxclone-client/internal/logger"
	"github.com/MKhiriev/voxclone-client/models"
)

// AppInfoService exposes build metadata of the running client.
type AppInfoService interface {
	GetBuildInfo() models.AppBuildInfo
}

type appInfoService struct {
	buildInfo models.AppBuildInfo

	logger *logger.Logger
}

func NewAppInfoService(buildInfo models.AppBuildInfo, logger *logger.Logger) AppInfoService {
	logger.Info().Str("build", buildInfo.String()).Msg("client build")
	return &appInfoService{
		buildInfo: buildInfo,
		logger:    logger,
	}
}

func (s *appInfoService) GetBuildInfo() models.AppBuildInfo {
	return s.buildInfo
}
