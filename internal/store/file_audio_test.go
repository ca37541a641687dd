// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/voxclone-client/internal/config"
	"github.com/MKhiriev/voxclone-client/internal/logger"
)

// minimal RIFF/WAVE header followed by a few samples
var testWAV = append([]byte("RIFF\x24\x00\x00\x00WAVEfmt \x10\x00\x00\x00\x01\x00\x01\x00\x40\x1f\x00\x00\x80\x3e\x00\x00\x02\x00\x10\x00data\x00\x00\x00\x00"), 1, 2, 3, 4)

func testStorageConfig(t *testing.T, dsn string) config.Storage {
	t.Helper()
	return config.Storage{
		DB:    config.DB{DSN: dsn},
		Audio: config.Audio{Dir: t.TempDir()},
	}
}

func newTestAudioStorage(t *testing.T) (AudioStorage, string) {
	t.Helper()
	dir := t.TempDir()
	s, err := NewAudioFileStorage(dir, logger.Nop())
	require.NoError(t, err)
	return s, dir
}

func TestAudioStorage_AcquireResolveRelease(t *testing.T) {
	s, dir := newTestAudioStorage(t)

	res, err := s.Acquire(context.Background(), testWAV, "")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(res.Ref, AudioRefScheme))
	assert.True(t, strings.HasPrefix(res.Path, dir))
	assert.True(t, strings.HasSuffix(res.Path, ".wav"))
	assert.Equal(t, "audio/x-wav", res.ContentType)
	assert.Equal(t, int64(len(testWAV)), res.Size)
	assert.Equal(t, 1, s.Live())

	onDisk, err := os.ReadFile(res.Path)
	require.NoError(t, err)
	assert.Equal(t, testWAV, onDisk)

	resolved, err := s.Resolve(res.Ref)
	require.NoError(t, err)
	assert.Equal(t, res, resolved)

	require.NoError(t, s.Release(res.Ref))
	assert.Equal(t, 0, s.Live())
	_, err = os.Stat(res.Path)
	assert.True(t, os.IsNotExist(err))

	_, err = s.Resolve(res.Ref)
	assert.ErrorIs(t, err, ErrUnknownAudioRef)
}

func TestAudioStorage_ReleaseTwice(t *testing.T) {
	s, _ := newTestAudioStorage(t)

	res, err := s.Acquire(context.Background(), testWAV, "audio/wav")
	require.NoError(t, err)

	require.NoError(t, s.Release(res.Ref))
	assert.ErrorIs(t, s.Release(res.Ref), ErrUnknownAudioRef)
}

func TestAudioStorage_EmptyData(t *testing.T) {
	s, _ := newTestAudioStorage(t)

	_, err := s.Acquire(context.Background(), nil, "audio/wav")

	assert.ErrorIs(t, err, ErrEmptyAudio)
	assert.Equal(t, 0, s.Live())
}

func TestAudioStorage_CancelledContext(t *testing.T) {
	s, _ := newTestAudioStorage(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Acquire(ctx, testWAV, "")

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, s.Live())
}

func TestAudioStorage_UnsniffableUsesDeclaredType(t *testing.T) {
	s, _ := newTestAudioStorage(t)

	res, err := s.Acquire(context.Background(), []byte{0x00, 0x01, 0x02}, "application/octet-stream")

	require.NoError(t, err)
	assert.Equal(t, "application/octet-stream", res.ContentType)
	assert.NoError(t, s.Release(res.Ref))
}

func TestAudioStorage_DistinctRefs(t *testing.T) {
	s, _ := newTestAudioStorage(t)

	a, err := s.Acquire(context.Background(), testWAV, "")
	require.NoError(t, err)
	b, err := s.Acquire(context.Background(), testWAV, "")
	require.NoError(t, err)

	assert.NotEqual(t, a.Ref, b.Ref)
	assert.NotEqual(t, a.Path, b.Path)
	assert.Equal(t, 2, s.Live())
}

func TestAudioStorage_ReleaseAll(t *testing.T) {
	s, _ := newTestAudioStorage(t)

	var paths []string
	for range 3 {
		res, err := s.Acquire(context.Background(), testWAV, "")
		require.NoError(t, err)
		paths = append(paths, res.Path)
	}

	require.NoError(t, s.ReleaseAll())
	assert.Equal(t, 0, s.Live())
	for _, p := range paths {
		_, err := os.Stat(p)
		assert.True(t, os.IsNotExist(err))
	}
}

func TestIsAudio(t *testing.T) {
	assert.True(t, IsAudio(testWAV))
	assert.False(t, IsAudio([]byte("hello world, not audio")))
	assert.False(t, IsAudio(nil))
}
