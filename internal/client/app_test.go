// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/voxclone-client/internal/logger"
	"github.com/MKhiriev/voxclone-client/models"
)

type fakeUI struct {
	err error
}

func (u *fakeUI) Run(context.Context) error {
	return u.err
}

type fakeCloser struct {
	err    error
	closed int
}

func (c *fakeCloser) Close() error {
	c.closed++
	return c.err
}

func TestNewApp_Validation(t *testing.T) {
	_, err := NewApp(nil, &fakeUI{}, logger.Nop())
	assert.ErrorIs(t, err, ErrNilCoordinator)

	_, err = NewApp(&Coordinator{}, nil, logger.Nop())
	assert.ErrorIs(t, err, ErrNilUI)
}

func TestApp_Run_StopsAndClosesAfterUI(t *testing.T) {
	tests := []struct {
		name     string
		uiErr    error
		closeErr error
		wantErr  []error
	}{
		{name: "clean exit"},
		{name: "ui canceled", uiErr: context.Canceled},
		{name: "ui failure", uiErr: errors.New("terminal gone"), wantErr: []error{}},
		{name: "close failure", closeErr: errors.New("database is locked"), wantErr: []error{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			h := newHarness(t, ctrl)
			h.expectHealthy()
			h.tokens.EXPECT().Load(gomock.Any()).Return("", nil)
			h.adapter.EXPECT().SetToken("")
			// Stop всегда освобождает аудио
			h.audio.EXPECT().ReleaseAll().Return(nil)

			closer := &fakeCloser{err: tt.closeErr}
			a, err := NewApp(h.coord, &fakeUI{err: tt.uiErr}, logger.Nop(), closer)
			require.NoError(t, err)

			err = a.run(context.Background())
			assert.Equal(t, 1, closer.closed)

			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			if tt.uiErr != nil {
				assert.ErrorIs(t, err, tt.uiErr)
			}
			if tt.closeErr != nil {
				assert.ErrorIs(t, err, tt.closeErr)
			}
			assert.Equal(t, models.SessionAnonymous, h.coord.View().SessionState)
		})
	}
}
