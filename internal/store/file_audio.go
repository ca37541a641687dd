// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/h2non/filetype"

	"github.com/MKhiriev/voxclone-client/internal/logger"
	"github.com/MKhiriev/voxclone-client/internal/utils"
	"github.com/MKhiriev/voxclone-client/models"
)

// AudioRefScheme prefixes every audio resource ref.
const AudioRefScheme = "audio://"

// audioFileStorage keeps generated audio as files in one directory and maps
// opaque refs to them. Only files it created are ever removed.
type audioFileStorage struct {
	dir    string
	ids    *utils.UUIDGenerator
	logger *logger.Logger

	mu        sync.RWMutex
	resources map[string]models.AudioResource
}

// NewAudioFileStorage creates dir if needed and returns an [AudioStorage]
// writing into it.
func NewAudioFileStorage(dir string, logger *logger.Logger) (AudioStorage, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create audio dir: %w", err)
	}

	return &audioFileStorage{
		dir:       dir,
		ids:       utils.NewUUIDGenerator(),
		logger:    logger,
		resources: make(map[string]models.AudioResource),
	}, nil
}

func (s *audioFileStorage) Acquire(ctx context.Context, data []byte, contentType string) (models.AudioResource, error) {
	if len(data) == 0 {
		return models.AudioResource{}, ErrEmptyAudio
	}
	if err := ctx.Err(); err != nil {
		return models.AudioResource{}, err
	}

	contentType, ext := detectAudioType(data, contentType)
	id := s.ids.Short()
	path := filepath.Join(s.dir, id+ext)

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return models.AudioResource{}, fmt.Errorf("write audio file: %w", err)
	}

	res := models.AudioResource{
		Ref:         AudioRefScheme + id,
		Path:        path,
		ContentType: contentType,
		Size:        int64(len(data)),
	}

	s.mu.Lock()
	s.resources[res.Ref] = res
	s.mu.Unlock()

	s.logger.Debug().Str("ref", res.Ref).Str("content_type", contentType).Int64("size", res.Size).Msg("audio acquired")
	return res, nil
}

func (s *audioFileStorage) Resolve(ref string) (models.AudioResource, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	res, ok := s.resources[ref]
	if !ok {
		return models.AudioResource{}, fmt.Errorf("%w: %s", ErrUnknownAudioRef, ref)
	}
	return res, nil
}

func (s *audioFileStorage) Release(ref string) error {
	s.mu.Lock()
	res, ok := s.resources[ref]
	delete(s.resources, ref)
	s.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownAudioRef, ref)
	}

	if err := os.Remove(res.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove audio file: %w", err)
	}

	s.logger.Debug().Str("ref", ref).Msg("audio released")
	return nil
}

func (s *audioFileStorage) ReleaseAll() error {
	s.mu.Lock()
	resources := s.resources
	s.resources = make(map[string]models.AudioResource)
	s.mu.Unlock()

	var errs []error
	for _, res := range resources {
		if err := os.Remove(res.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (s *audioFileStorage) Live() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.resources)
}

// detectAudioType prefers the sniffed type over the declared one, since the
// service labels some bodies application/octet-stream.
func detectAudioType(data []byte, declared string) (contentType, ext string) {
	if kind, err := filetype.Match(data); err == nil && kind != filetype.Unknown {
		return kind.MIME.Value, "." + kind.Extension
	}

	declared = strings.TrimSpace(strings.Split(declared, ";")[0])
	if declared == "" {
		declared = "application/octet-stream"
	}
	if exts, err := mime.ExtensionsByType(declared); err == nil && len(exts) > 0 {
		return declared, exts[0]
	}
	return declared, ".bin"
}

// IsAudio reports whether data looks like a supported audio container.
func IsAudio(data []byte) bool {
	return filetype.IsAudio(data)
}
