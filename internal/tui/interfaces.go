// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"

	"github.com/MKhiriev/voxclone-client/internal/client"
	"github.com/MKhiriev/voxclone-client/models"
)

// Controller is the part of [client.Coordinator] the terminal UI drives.
// Every failed call is already recorded in the view's error slot, so pages
// only use the returned error to leave their busy state.
type Controller interface {
	View() client.View
	Subscribe(fn func(client.View)) (unsubscribe func())
	BuildInfo() models.AppBuildInfo

	Login(ctx context.Context, email, password string) (models.Session, error)
	Register(ctx context.Context, creds models.Credentials) (models.Session, error)
	Logout(ctx context.Context)
	GenerateAPIKey(ctx context.Context) (string, error)
	RevokeAPIKey(ctx context.Context) error

	RetryConnection()
	DismissError()

	FetchProfiles(ctx context.Context) ([]models.VoiceProfile, error)
	CreateProfile(ctx context.Context, draft models.ProfileDraft) (models.VoiceProfile, error)
	UpdateProfile(ctx context.Context, id int64, patch models.ProfilePatch) (models.VoiceProfile, error)
	DeleteProfile(ctx context.Context, id int64) error

	Generate(ctx context.Context, req models.SynthesisRequest) (models.SynthesisJob, error)
	CancelSynthesis(ctx context.Context) error
	ClearAudio() error
	RefreshCredits(ctx context.Context) (models.CreditBalance, error)
	Emotions(ctx context.Context) ([]models.Emotion, error)
}
