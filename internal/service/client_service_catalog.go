// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/MKhiriev/voxclone-client/internal/adapter"
	"github.com/MKhiriev/voxclone-client/internal/logger"
	"github.com/MKhiriev/voxclone-client/models"
)

type clientCatalogService struct {
	adapter adapter.ServerAdapter
	logger  *logger.Logger

	mu        sync.Mutex
	emotions  []models.Emotion
	languages []models.Language
}

// NewClientCatalogService creates a catalog with empty caches.
func NewClientCatalogService(serverAdapter adapter.ServerAdapter, logger *logger.Logger) ClientCatalogService {
	return &clientCatalogService{
		adapter: serverAdapter,
		logger:  logger.Component("catalog"),
	}
}

func (s *clientCatalogService) Emotions(ctx context.Context) ([]models.Emotion, error) {
	s.mu.Lock()
	cached := s.emotions
	s.mu.Unlock()
	if cached != nil {
		return slices.Clone(cached), nil
	}

	emotions, err := s.adapter.Emotions(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch emotions: %w", err)
	}
	if emotions == nil {
		emotions = []models.Emotion{}
	}

	s.mu.Lock()
	s.emotions = emotions
	s.mu.Unlock()
	return slices.Clone(emotions), nil
}

func (s *clientCatalogService) Languages(ctx context.Context) ([]models.Language, error) {
	s.mu.Lock()
	cached := s.languages
	s.mu.Unlock()
	if cached != nil {
		return slices.Clone(cached), nil
	}

	languages, err := s.adapter.Languages(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch languages: %w", err)
	}
	if languages == nil {
		languages = []models.Language{}
	}

	s.mu.Lock()
	s.languages = languages
	s.mu.Unlock()
	return slices.Clone(languages), nil
}

// PipelineStatus is never cached; models load and unload on the server.
func (s *clientCatalogService) PipelineStatus(ctx context.Context) (models.PipelineStatus, error) {
	status, err := s.adapter.PipelineStatus(ctx)
	if err != nil {
		return models.PipelineStatus{}, fmt.Errorf("fetch pipeline status: %w", err)
	}
	return status, nil
}

func (s *clientCatalogService) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.emotions = nil
	s.languages = nil
	s.logger.Debug().Msg("catalog cache dropped")
}
