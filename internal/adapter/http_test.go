// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/voxclone-client/internal/config"
	"github.com/MKhiriev/voxclone-client/internal/logger"
	"github.com/MKhiriev/voxclone-client/models"
)

const testAPIPrefix = "/api/v1"

// newTestAdapter создаёт httpServerAdapter, направленный на тестовый сервер
func newTestAdapter(t *testing.T, serverURL string) *httpServerAdapter {
	t.Helper()
	adapterCfg := config.Adapter{HTTPAddress: serverURL + testAPIPrefix}

	a, err := NewHTTPServerAdapter(adapterCfg, logger.Nop())
	require.NoError(t, err)
	return a.(*httpServerAdapter)
}

// newTestServer поднимает chi-роутер с префиксом API
func newTestServer(t *testing.T, routes func(r chi.Router)) *httptest.Server {
	t.Helper()
	return newRootedTestServer(t, func(chi.Router) {}, routes)
}

// newRootedTestServer монтирует root в корень сервиса, а api под префикс API,
// как это делает сам сервис для /health
func newRootedTestServer(t *testing.T, root, api func(r chi.Router)) *httptest.Server {
	t.Helper()
	r := chi.NewRouter()
	root(r)
	r.Route(testAPIPrefix, api)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

// newUserAdapter создаёт адаптер с уже известным id пользователя
func newUserAdapter(t *testing.T, serverURL string, userID int64) *httpServerAdapter {
	t.Helper()
	a := newTestAdapter(t, serverURL)
	a.SetToken("tok")
	a.SetUserID(userID)
	return a
}

// ── Auth ────────────────────────────────────────────────────────────────────

func TestLogin_Success(t *testing.T) {
	srv := newTestServer(t, func(r chi.Router) {
		r.Post("/users/login", func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
			require.NoError(t, r.ParseForm())
			assert.Equal(t, "alice@example.com", r.PostForm.Get("username"))
			assert.Equal(t, "secret", r.PostForm.Get("password"))
			assert.Empty(t, r.Header.Get("Authorization"))

			_, _ = writeJSON(w, map[string]any{
				"access_token": "tok-1",
				"token_type":   "bearer",
				"user":         map[string]any{"id": 7, "email": "alice@example.com", "name": "Alice", "credits": 99.9},
			}, http.StatusOK)
		})
	})

	a := newTestAdapter(t, srv.URL)
	got, err := a.Login(context.Background(), "alice@example.com", "secret")

	require.NoError(t, err)
	assert.Equal(t, "tok-1", got.AccessToken)
	assert.Equal(t, int64(7), got.User.ID)
	assert.Equal(t, models.CreditBalance(99), got.User.Credits)
	assert.Empty(t, a.Token(), "login must not store the token")
}

func TestLogin_Unauthorized(t *testing.T) {
	srv := newTestServer(t, func(r chi.Router) {
		r.Post("/users/login", func(w http.ResponseWriter, r *http.Request) {
			_, _ = writeDetail(w, "Incorrect email or password", http.StatusUnauthorized)
		})
	})

	a := newTestAdapter(t, srv.URL)
	_, err := a.Login(context.Background(), "alice@example.com", "wrong")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, http.StatusUnauthorized, StatusOf(err))
	assert.Contains(t, err.Error(), "Incorrect email or password")
}

func TestLogin_MissingToken(t *testing.T) {
	srv := newTestServer(t, func(r chi.Router) {
		r.Post("/users/login", func(w http.ResponseWriter, r *http.Request) {
			_, _ = writeJSON(w, map[string]any{"user": map[string]any{"id": 1}}, http.StatusOK)
		})
	})

	a := newTestAdapter(t, srv.URL)
	_, err := a.Login(context.Background(), "a@b.c", "x")

	assert.ErrorIs(t, err, ErrMalformed)
}

func TestRegister_Success(t *testing.T) {
	srv := newTestServer(t, func(r chi.Router) {
		r.Post("/users/register", func(w http.ResponseWriter, r *http.Request) {
			var creds models.Credentials
			require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
			assert.Equal(t, "bob@example.com", creds.Email)
			assert.Equal(t, "Bob", creds.Name)

			_, _ = writeJSON(w, map[string]any{
				"access_token": "tok-2",
				"user":         map[string]any{"id": 8, "email": creds.Email, "name": creds.Name},
			}, http.StatusOK)
		})
	})

	a := newTestAdapter(t, srv.URL)
	got, err := a.Register(context.Background(), models.Credentials{Email: "bob@example.com", Password: "pw", Name: "Bob"})

	require.NoError(t, err)
	assert.Equal(t, "tok-2", got.AccessToken)
	assert.Equal(t, "Bob", got.User.Name)
}

func TestRegister_BareUserRecord(t *testing.T) {
	srv := newTestServer(t, func(r chi.Router) {
		r.Post("/users/register", func(w http.ResponseWriter, r *http.Request) {
			_, _ = writeJSON(w, map[string]any{"id": 9, "email": "carol@example.com"}, http.StatusOK)
		})
	})

	a := newTestAdapter(t, srv.URL)
	got, err := a.Register(context.Background(), models.Credentials{Email: "carol@example.com", Password: "pw"})

	require.NoError(t, err)
	assert.Empty(t, got.AccessToken)
	assert.Equal(t, int64(9), got.User.ID)
}

func TestRegister_Conflict(t *testing.T) {
	srv := newTestServer(t, func(r chi.Router) {
		r.Post("/users/register", func(w http.ResponseWriter, r *http.Request) {
			_, _ = writeDetail(w, "Email already registered", http.StatusConflict)
		})
	})

	a := newTestAdapter(t, srv.URL)
	_, err := a.Register(context.Background(), models.Credentials{Email: "a@b.c"})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
	assert.True(t, IsConflict(err))
}

func TestMe_SendsBearerToken(t *testing.T) {
	srv := newTestServer(t, func(r chi.Router) {
		r.Get("/users/me", func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "Bearer tok-3", r.Header.Get("Authorization"))
			_, _ = writeJSON(w, map[string]any{"id": 3, "email": "d@e.f", "credits": 12}, http.StatusOK)
		})
	})

	a := newTestAdapter(t, srv.URL)
	a.SetToken("tok-3")
	got, err := a.Me(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(3), got.ID)
	assert.Equal(t, models.CreditBalance(12), got.Credits)
}

func TestCredits_Success(t *testing.T) {
	srv := newTestServer(t, func(r chi.Router) {
		r.Get("/users/credits", func(w http.ResponseWriter, r *http.Request) {
			_, _ = writeJSON(w, map[string]any{"user_id": 3, "credits": 41.7, "plan": "pro"}, http.StatusOK)
		})
	})

	a := newTestAdapter(t, srv.URL)
	got, err := a.Credits(context.Background())

	require.NoError(t, err)
	assert.Equal(t, models.CreditBalance(41), got.Credits)
	assert.Equal(t, "pro", got.Plan)
}

func TestAPIKey_GenerateAndRevoke(t *testing.T) {
	revoked := false
	srv := newTestServer(t, func(r chi.Router) {
		r.Post("/users/api-key/generate", func(w http.ResponseWriter, r *http.Request) {
			_, _ = writeJSON(w, map[string]any{"api_key": "vk_123"}, http.StatusOK)
		})
		r.Delete("/users/api-key", func(w http.ResponseWriter, r *http.Request) {
			revoked = true
			w.WriteHeader(http.StatusNoContent)
		})
	})

	a := newTestAdapter(t, srv.URL)
	key, err := a.GenerateAPIKey(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "vk_123", key.APIKey)

	require.NoError(t, a.RevokeAPIKey(context.Background()))
	assert.True(t, revoked)
}

// ── Profiles ────────────────────────────────────────────────────────────────

func TestListProfiles_Success(t *testing.T) {
	srv := newTestServer(t, func(r chi.Router) {
		r.Get("/voice/profiles", func(w http.ResponseWriter, r *http.Request) {
			_, _ = writeJSON(w, []map[string]any{
				{"id": 2, "name": "Narrator", "tags": "warm,deep"},
				{"id": 1, "name": "Casual", "tags": []string{"bright"}},
			}, http.StatusOK)
		})
	})

	a := newTestAdapter(t, srv.URL)
	got, err := a.ListProfiles(context.Background())

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, int64(2), got[0].ID)
	assert.Equal(t, []string{"warm", "deep"}, got[0].StyleTags.Values())
	assert.Equal(t, []string{"bright"}, got[1].StyleTags.Values())
}

func TestListProfiles_NullIsEmpty(t *testing.T) {
	srv := newTestServer(t, func(r chi.Router) {
		r.Get("/voice/profiles", func(w http.ResponseWriter, r *http.Request) {
			_, _ = writeJSON(w, nil, http.StatusOK)
		})
	})

	a := newTestAdapter(t, srv.URL)
	got, err := a.ListProfiles(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestCreateProfile_Multipart(t *testing.T) {
	audio := []byte("RIFF\x24\x00\x00\x00WAVEfmt ")
	srv := newTestServer(t, func(r chi.Router) {
		r.Post("/voice/profiles", func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "7", r.URL.Query().Get("user_id"))
			require.NoError(t, r.ParseMultipartForm(1<<20))
			assert.Equal(t, "Narrator", r.FormValue("name"))
			assert.Equal(t, "hello there", r.FormValue("reference_text"))
			assert.Equal(t, "warm,deep", r.FormValue("tags"))
			_, hasColor := r.MultipartForm.Value["color"]
			assert.False(t, hasColor, "unset optional fields are not sent")

			file, header, err := r.FormFile("reference_audio")
			require.NoError(t, err)
			defer file.Close()
			data, _ := io.ReadAll(file)
			assert.Equal(t, "ref.wav", header.Filename)
			assert.Equal(t, audio, data)

			_, _ = writeJSON(w, map[string]any{"id": 5, "name": "Narrator", "tags": "warm,deep"}, http.StatusCreated)
		})
	})

	a := newUserAdapter(t, srv.URL, 7)
	got, err := a.CreateProfile(context.Background(), models.ProfileDraft{
		Name:                "Narrator",
		ReferenceTranscript: "hello there",
		StyleTags:           models.NewTagSet("warm", "deep"),
		ReferenceAudio:      &models.AudioUpload{FileName: "ref.wav", Data: audio},
	})

	require.NoError(t, err)
	assert.Equal(t, int64(5), got.ID)
}

func TestUpdateProfile_EchoedFields(t *testing.T) {
	srv := newTestServer(t, func(r chi.Router) {
		r.Patch("/voice/profiles/{id}", func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "4", chi.URLParam(r, "id"))
			assert.Equal(t, "7", r.URL.Query().Get("user_id"))
			var body map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, map[string]any{"name": "Renamed"}, body)

			_, _ = writeJSON(w, map[string]any{"name": "Renamed"}, http.StatusOK)
		})
	})

	name := "Renamed"
	a := newUserAdapter(t, srv.URL, 7)
	got, err := a.UpdateProfile(context.Background(), 4, models.ProfilePatch{Name: &name})

	require.NoError(t, err)
	require.NotNil(t, got.Name)
	assert.Equal(t, "Renamed", *got.Name)
	assert.Nil(t, got.Description)
}

func TestUpdateProfile_NoContent(t *testing.T) {
	srv := newTestServer(t, func(r chi.Router) {
		r.Patch("/voice/profiles/{id}", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		})
	})

	name := "x"
	a := newUserAdapter(t, srv.URL, 7)
	got, err := a.UpdateProfile(context.Background(), 4, models.ProfilePatch{Name: &name})

	require.NoError(t, err)
	assert.True(t, got.IsEmpty())
}

func TestDeleteProfile_NotFound(t *testing.T) {
	srv := newTestServer(t, func(r chi.Router) {
		r.Delete("/voice/profiles/{id}", func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "7", r.URL.Query().Get("user_id"))
			_, _ = writeDetail(w, "Voice profile not found", http.StatusNotFound)
		})
	})

	a := newUserAdapter(t, srv.URL, 7)
	err := a.DeleteProfile(context.Background(), 42)

	require.Error(t, err)
	assert.True(t, IsNotFound(err))
	assert.Contains(t, err.Error(), "Voice profile not found")
}

// ── Synthesis ───────────────────────────────────────────────────────────────

func TestSynthesize_CloneEndpointWithoutEmotion(t *testing.T) {
	srv := newTestServer(t, func(r chi.Router) {
		r.Post("/voice/clone", func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "7", r.URL.Query().Get("user_id"))
			var body map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "hi", body["text"])
			assert.NotContains(t, body, "apply_rvc")
			_, _ = writeAudio(w, "audio/wav", []byte("RIFFdata"))
		})
	})

	a := newUserAdapter(t, srv.URL, 7)
	payload, err := a.Synthesize(context.Background(), models.SynthesisRequest{ProfileID: 1, Text: "hi"})

	require.NoError(t, err)
	assert.Equal(t, PayloadBinary, payload.Kind)
	assert.Equal(t, "audio/wav", payload.ContentType)
	assert.Equal(t, []byte("RIFFdata"), payload.Data)
}

func TestSynthesize_PipelineEndpointWithEmotion(t *testing.T) {
	srv := newTestServer(t, func(r chi.Router) {
		r.Post("/voice/pipeline", func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "7", r.URL.Query().Get("user_id"))
			var req models.SynthesisRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "happy", req.Emotion)
			assert.True(t, req.ApplyConversion)
			_, _ = writeJSON(w, models.SynthesisResponse{Success: true, AudioURL: "/audio/x.wav", CreditsUsed: 2.5}, http.StatusOK)
		})
	})

	a := newUserAdapter(t, srv.URL, 7)
	payload, err := a.Synthesize(context.Background(), models.SynthesisRequest{
		ProfileID: 1, Text: "hi", Emotion: "happy", ApplyConversion: true,
	})

	require.NoError(t, err)
	require.Equal(t, PayloadJSON, payload.Kind)
	var resp models.SynthesisResponse
	require.NoError(t, payload.Decode(&resp))
	assert.Equal(t, "/audio/x.wav", resp.AudioURL)
}

func TestSynthesize_InsufficientCredits(t *testing.T) {
	srv := newTestServer(t, func(r chi.Router) {
		r.Post("/voice/clone", func(w http.ResponseWriter, r *http.Request) {
			_, _ = writeDetail(w, "Insufficient credits", http.StatusPaymentRequired)
		})
	})

	a := newUserAdapter(t, srv.URL, 7)
	_, err := a.Synthesize(context.Background(), models.SynthesisRequest{ProfileID: 1, Text: "hi"})

	require.Error(t, err)
	assert.True(t, IsInsufficientCredits(err))
}

func TestFetchAudio_RelativeReference(t *testing.T) {
	srv := newTestServer(t, func(r chi.Router) {
		r.Get("/audio/{name}", func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "out.wav", chi.URLParam(r, "name"))
			_, _ = writeAudio(w, "audio/wav", []byte("RIFF"))
		})
	})

	a := newTestAdapter(t, srv.URL)
	payload, err := a.FetchAudio(context.Background(), "audio/out.wav")

	require.NoError(t, err)
	assert.Equal(t, PayloadBinary, payload.Kind)
}

func TestFetchAudio_InvalidReference(t *testing.T) {
	a := newTestAdapter(t, "http://127.0.0.1:1")
	_, err := a.FetchAudio(context.Background(), "")

	assert.ErrorIs(t, err, ErrMalformed)
}

func TestUserScopedRequests_WithoutUserID(t *testing.T) {
	var hits int
	srv := newTestServer(t, func(r chi.Router) {
		r.HandleFunc("/*", func(w http.ResponseWriter, r *http.Request) {
			hits++
			w.WriteHeader(http.StatusOK)
		})
	})

	a := newTestAdapter(t, srv.URL)
	a.SetToken("tok")
	ctx := context.Background()

	_, err := a.Synthesize(ctx, models.SynthesisRequest{ProfileID: 1, Text: "hi"})
	assert.ErrorIs(t, err, ErrNoUserID)
	_, err = a.CreateProfile(ctx, models.ProfileDraft{Name: "n", ReferenceTranscript: "t"})
	assert.ErrorIs(t, err, ErrNoUserID)
	assert.ErrorIs(t, a.DeleteProfile(ctx, 1), ErrNoUserID)
	_, err = a.Usage(ctx)
	assert.ErrorIs(t, err, ErrNoUserID)
	_, err = a.Transactions(ctx, 10, 0)
	assert.ErrorIs(t, err, ErrNoUserID)

	assert.Zero(t, hits, "nothing is sent without a user id")
}

func TestSetToken_EmptyForgetsUserID(t *testing.T) {
	a := newUserAdapter(t, "http://127.0.0.1:1", 7)
	require.Equal(t, int64(7), a.transport.UserID())

	a.SetToken("")

	assert.Zero(t, a.transport.UserID())
}

// ── Async tasks ─────────────────────────────────────────────────────────────

func TestCloneAsync_Queued(t *testing.T) {
	srv := newTestServer(t, func(r chi.Router) {
		r.Post("/voice/clone-async", func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "7", r.URL.Query().Get("user_id"))
			var body map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "hi", body["text"])
			assert.NotContains(t, body, "emotion")
			_, _ = writeJSON(w, map[string]any{"task_id": "t-1", "status": "processing", "message": "queued"}, http.StatusOK)
		})
	})

	a := newUserAdapter(t, srv.URL, 7)
	got, err := a.CloneAsync(context.Background(), models.SynthesisRequest{ProfileID: 1, Text: "hi"})

	require.NoError(t, err)
	assert.Equal(t, "t-1", got.TaskID)
	assert.Equal(t, models.TaskProcessing, got.Status)
	assert.Nil(t, got.Result)
}

func TestCloneAsync_CachedResult(t *testing.T) {
	srv := newTestServer(t, func(r chi.Router) {
		r.Post("/voice/clone-async", func(w http.ResponseWriter, r *http.Request) {
			_, _ = writeJSON(w, map[string]any{
				"task_id": nil,
				"status":  "completed",
				"cached":  true,
				"result":  map[string]any{"audio_url": "/outputs/c.wav", "duration": 1.5},
			}, http.StatusOK)
		})
	})

	a := newUserAdapter(t, srv.URL, 7)
	got, err := a.CloneAsync(context.Background(), models.SynthesisRequest{ProfileID: 1, Text: "hi"})

	require.NoError(t, err)
	assert.Empty(t, got.TaskID)
	assert.True(t, got.Cached)
	require.NotNil(t, got.Result)
	assert.Equal(t, "/outputs/c.wav", got.Result.AudioURL)
}

func TestCloneAsync_EmptyAnswerIsMalformed(t *testing.T) {
	srv := newTestServer(t, func(r chi.Router) {
		r.Post("/voice/clone-async", func(w http.ResponseWriter, r *http.Request) {
			_, _ = writeJSON(w, map[string]any{"status": "processing"}, http.StatusOK)
		})
	})

	a := newUserAdapter(t, srv.URL, 7)
	_, err := a.CloneAsync(context.Background(), models.SynthesisRequest{ProfileID: 1, Text: "hi"})

	assert.ErrorIs(t, err, ErrMalformed)
}

func TestTask_Completed(t *testing.T) {
	srv := newTestServer(t, func(r chi.Router) {
		r.Get("/tasks/{id}", func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "t-1", chi.URLParam(r, "id"))
			_, _ = writeJSON(w, map[string]any{
				"task_id":      "t-1",
				"status":       "completed",
				"progress":     100,
				"created_at":   "2026-10-18T10:00:00.123456",
				"completed_at": "2026-10-18T10:00:04.5",
				"result":       map[string]any{"audio_url": "/outputs/t.wav", "duration": 2.0, "sample_rate": 24000, "format": "wav"},
			}, http.StatusOK)
		})
	})

	a := newTestAdapter(t, srv.URL)
	got, err := a.Task(context.Background(), "t-1")

	require.NoError(t, err)
	assert.Equal(t, models.TaskCompleted, got.Status)
	assert.True(t, got.Status.Terminal())
	assert.Equal(t, float64(100), got.Progress)
	require.NotNil(t, got.Result)
	assert.Equal(t, 24000, got.Result.SampleRate)
}

func TestCancelTask_NotPending(t *testing.T) {
	srv := newTestServer(t, func(r chi.Router) {
		r.Post("/tasks/{id}/cancel", func(w http.ResponseWriter, r *http.Request) {
			_, _ = writeDetail(w, "Task is not pending", http.StatusBadRequest)
		})
	})

	a := newTestAdapter(t, srv.URL)
	err := a.CancelTask(context.Background(), "t-1")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, http.StatusBadRequest, StatusOf(err))
}

// ── Ledger ──────────────────────────────────────────────────────────────────

func TestUsage_Success(t *testing.T) {
	srv := newTestServer(t, func(r chi.Router) {
		r.Get("/users/{id}/usage", func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "7", chi.URLParam(r, "id"))
			_, _ = writeJSON(w, map[string]any{
				"user_id":              7,
				"total_clones":         3,
				"total_conversions":    1,
				"total_credits_used":   4.5,
				"total_audio_seconds":  12.25,
				"voice_profiles_count": 2,
			}, http.StatusOK)
		})
	})

	a := newUserAdapter(t, srv.URL, 7)
	got, err := a.Usage(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 3, got.TotalClones)
	assert.Equal(t, 4.5, got.TotalCreditsUsed)
	assert.Equal(t, 2, got.VoiceProfilesCount)
}

func TestTransactions_Paging(t *testing.T) {
	srv := newTestServer(t, func(r chi.Router) {
		r.Get("/users/{id}/transactions", func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "7", chi.URLParam(r, "id"))
			assert.Equal(t, "20", r.URL.Query().Get("limit"))
			assert.Equal(t, "40", r.URL.Query().Get("offset"))
			_, _ = writeJSON(w, []map[string]any{
				{"id": 9, "operation": "clone", "credits_used": -1.5, "balance_after": 8.5, "description": "voice clone"},
				{"id": 8, "operation": "purchase", "credits_used": 10, "balance_after": 10},
			}, http.StatusOK)
		})
	})

	a := newUserAdapter(t, srv.URL, 7)
	got, err := a.Transactions(context.Background(), 20, 40)

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "clone", got[0].Operation)
	assert.True(t, got[0].IsCharge())
	assert.False(t, got[1].IsCharge())
}

func TestTransactions_NullIsEmpty(t *testing.T) {
	srv := newTestServer(t, func(r chi.Router) {
		r.Get("/users/{id}/transactions", func(w http.ResponseWriter, r *http.Request) {
			_, _ = writeJSON(w, nil, http.StatusOK)
		})
	})

	a := newUserAdapter(t, srv.URL, 7)
	got, err := a.Transactions(context.Background(), 50, 0)

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

// ── Catalog & health ────────────────────────────────────────────────────────

func TestCatalog_Success(t *testing.T) {
	srv := newTestServer(t, func(r chi.Router) {
		r.Get("/voice/pipeline/emotions", func(w http.ResponseWriter, r *http.Request) {
			_, _ = writeJSON(w, map[string]any{"emotions": []map[string]any{
				{"name": "happy", "pitch_shift": 2, "speed": 1.1},
			}}, http.StatusOK)
		})
		r.Get("/voice/pipeline/languages", func(w http.ResponseWriter, r *http.Request) {
			_, _ = writeJSON(w, map[string]any{"languages": []map[string]any{
				{"code": "en", "name": "English"},
			}}, http.StatusOK)
		})
		r.Get("/voice/pipeline/status", func(w http.ResponseWriter, r *http.Request) {
			_, _ = writeJSON(w, map[string]any{"tts_loaded": true, "rvc_loaded": false, "ready": true}, http.StatusOK)
		})
	})

	a := newTestAdapter(t, srv.URL)

	emotions, err := a.Emotions(context.Background())
	require.NoError(t, err)
	require.Len(t, emotions, 1)
	assert.Equal(t, "happy", emotions[0].Name)

	languages, err := a.Languages(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []models.Language{{Code: "en", Name: "English"}}, languages)

	status, err := a.PipelineStatus(context.Background())
	require.NoError(t, err)
	assert.True(t, status.TTSLoaded)
	assert.False(t, status.ConversionLoaded)
}

func TestDetailedHealth_Success(t *testing.T) {
	srv := newRootedTestServer(t, func(r chi.Router) {
		r.Get("/health/detailed", func(w http.ResponseWriter, r *http.Request) {
			_, _ = writeJSON(w, map[string]any{
				"status": "healthy",
				"gpu":    map[string]any{"available": true, "name": "A100"},
			}, http.StatusOK)
		})
	}, func(chi.Router) {})

	a := newTestAdapter(t, srv.URL)
	got, err := a.DetailedHealth(context.Background())

	require.NoError(t, err)
	require.NotNil(t, got.GPU)
	assert.True(t, got.GPU.Available)
	assert.Equal(t, "A100", got.GPU.Name)
}

func TestHealth_ServerFault(t *testing.T) {
	srv := newRootedTestServer(t, func(r chi.Router) {
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		})
	}, func(chi.Router) {})

	a := newTestAdapter(t, srv.URL)
	_, err := a.Health(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrServerFault)
	assert.Equal(t, http.StatusBadGateway, StatusOf(err))
}

func TestHealth_ServedAtServiceRoot(t *testing.T) {
	var prefixedHits int
	srv := newRootedTestServer(t, func(r chi.Router) {
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/health", r.URL.Path)
			_, _ = writeJSON(w, map[string]any{"status": "healthy", "version": "1.4.0"}, http.StatusOK)
		})
	}, func(r chi.Router) {
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			prefixedHits++
			w.WriteHeader(http.StatusNotFound)
		})
	})

	a := newTestAdapter(t, srv.URL)
	got, err := a.Health(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "healthy", got.Status)
	assert.Zero(t, prefixedHits, "health must not go through the API prefix")
}

func TestNewHTTPServerAdapter_InvalidAddress(t *testing.T) {
	_, err := NewHTTPServerAdapter(config.Adapter{HTTPAddress: ""}, logger.Nop())
	assert.Error(t, err)
}
