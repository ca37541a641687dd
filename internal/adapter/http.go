// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/MKhiriev/voxclone-client/internal/config"
	"github.com/MKhiriev/voxclone-client/internal/logger"
	"github.com/MKhiriev/voxclone-client/models"
)

// Health endpoints live at the service root, outside the API prefix.
const (
	endpointHealth         = "/health"
	endpointHealthDetailed = "/health/detailed"
)

// Service endpoints, relative to the base URL (which carries the API prefix).
const (
	endpointLogin          = "/users/login"
	endpointRegister       = "/users/register"
	endpointMe             = "/users/me"
	endpointCredits        = "/users/credits"
	endpointAPIKeyGenerate = "/users/api-key/generate"
	endpointAPIKey         = "/users/api-key"
	endpointProfiles       = "/voice/profiles"
	endpointPipeline       = "/voice/pipeline"
	endpointClone          = "/voice/clone"
	endpointCloneAsync     = "/voice/clone-async"
	endpointTasks          = "/tasks"
	endpointEmotions       = "/voice/pipeline/emotions"
	endpointLanguages      = "/voice/pipeline/languages"
	endpointPipelineStatus = "/voice/pipeline/status"
)

type httpServerAdapter struct {
	transport *Transport
	logger    *logger.Logger
}

// NewHTTPServerAdapter constructs an HTTP/REST implementation of
// [ServerAdapter] on top of a fresh [Transport].
//
// Returns an error if adapterCfg.HTTPAddress is empty or cannot be parsed as
// a valid URL.
func NewHTTPServerAdapter(adapterCfg config.Adapter, logger *logger.Logger) (ServerAdapter, error) {
	transport, err := NewTransport(adapterCfg, logger)
	if err != nil {
		return nil, err
	}

	return &httpServerAdapter{transport: transport, logger: logger}, nil
}

// SetToken implements [ServerAdapter].
func (h *httpServerAdapter) SetToken(token string) {
	h.transport.SetToken(token)
}

// Token implements [ServerAdapter].
func (h *httpServerAdapter) Token() string {
	return h.transport.Token()
}

// SetUserID implements [ServerAdapter].
func (h *httpServerAdapter) SetUserID(id int64) {
	h.transport.SetUserID(id)
}

func (h *httpServerAdapter) Health(ctx context.Context) (models.HealthResponse, error) {
	return h.rootHealth(ctx, endpointHealth)
}

func (h *httpServerAdapter) DetailedHealth(ctx context.Context) (models.HealthResponse, error) {
	return h.rootHealth(ctx, endpointHealthDetailed)
}

func (h *httpServerAdapter) rootHealth(ctx context.Context, endpoint string) (models.HealthResponse, error) {
	target, err := h.transport.ResolveURL(endpoint)
	if err != nil {
		return models.HealthResponse{}, err
	}

	var health models.HealthResponse
	err = h.getJSON(ctx, target, &health)
	return health, err
}

// Login implements [ServerAdapter]. The service follows the OAuth2 password
// form, so the email travels as "username".
func (h *httpServerAdapter) Login(ctx context.Context, email, password string) (models.AuthResponse, error) {
	payload, err := h.transport.Do(ctx, Request{
		Method:   http.MethodPost,
		Endpoint: endpointLogin,
		Form:     map[string]string{"username": email, "password": password},
	})
	if err != nil {
		return models.AuthResponse{}, fmt.Errorf("login request: %w", err)
	}

	var auth models.AuthResponse
	if err = payload.Decode(&auth); err != nil {
		return models.AuthResponse{}, fmt.Errorf("decode login response: %w", err)
	}
	if auth.AccessToken == "" {
		return models.AuthResponse{}, fmt.Errorf("login response: %w", &APIError{Kind: ErrMalformed, Status: payload.Status, Message: "missing access_token"})
	}
	return auth, nil
}

// Register implements [ServerAdapter]. Some service versions answer with the
// bare user record; AccessToken is then empty and the caller logs in.
func (h *httpServerAdapter) Register(ctx context.Context, creds models.Credentials) (models.AuthResponse, error) {
	payload, err := h.transport.Do(ctx, Request{
		Method:   http.MethodPost,
		Endpoint: endpointRegister,
		Body:     creds,
	})
	if err != nil {
		return models.AuthResponse{}, fmt.Errorf("register request: %w", err)
	}

	var auth models.AuthResponse
	if err = payload.Decode(&auth); err != nil {
		return models.AuthResponse{}, fmt.Errorf("decode register response: %w", err)
	}
	if auth.AccessToken == "" {
		var user models.User
		if err = payload.Decode(&user); err == nil {
			auth.User = user
		}
	}
	return auth, nil
}

func (h *httpServerAdapter) Me(ctx context.Context) (models.User, error) {
	var user models.User
	err := h.getJSON(ctx, endpointMe, &user)
	return user, err
}

func (h *httpServerAdapter) Credits(ctx context.Context) (models.CreditsResponse, error) {
	var credits models.CreditsResponse
	err := h.getJSON(ctx, endpointCredits, &credits)
	return credits, err
}

func (h *httpServerAdapter) GenerateAPIKey(ctx context.Context) (models.APIKeyResponse, error) {
	payload, err := h.transport.Do(ctx, Request{Method: http.MethodPost, Endpoint: endpointAPIKeyGenerate})
	if err != nil {
		return models.APIKeyResponse{}, fmt.Errorf("generate api key request: %w", err)
	}

	var key models.APIKeyResponse
	if err = payload.Decode(&key); err != nil {
		return models.APIKeyResponse{}, fmt.Errorf("decode api key response: %w", err)
	}
	return key, nil
}

func (h *httpServerAdapter) RevokeAPIKey(ctx context.Context) error {
	_, err := h.transport.Do(ctx, Request{Method: http.MethodDelete, Endpoint: endpointAPIKey})
	if err != nil {
		return fmt.Errorf("revoke api key request: %w", err)
	}
	return nil
}

func (h *httpServerAdapter) ListProfiles(ctx context.Context) ([]models.VoiceProfile, error) {
	var profiles []models.VoiceProfile
	if err := h.getJSON(ctx, endpointProfiles, &profiles); err != nil {
		return nil, err
	}
	if profiles == nil {
		profiles = []models.VoiceProfile{}
	}
	return profiles, nil
}

// CreateProfile implements [ServerAdapter]. Optional fields are only sent
// when set, so server defaults apply.
func (h *httpServerAdapter) CreateProfile(ctx context.Context, draft models.ProfileDraft) (models.VoiceProfile, error) {
	fields := map[string]string{
		"name":           draft.Name,
		"reference_text": draft.ReferenceTranscript,
	}
	optional := map[string]string{
		"description": draft.Description,
		"language":    draft.LanguageCode,
		"color":       draft.ColorTag,
		"tags":        draft.StyleTags.String(),
	}
	for k, v := range optional {
		if v != "" {
			fields[k] = v
		}
	}

	req := Request{
		Method:     http.MethodPost,
		Endpoint:   endpointProfiles,
		Multipart:  fields,
		Long:       true,
		UserScoped: true,
	}
	if draft.ReferenceAudio != nil {
		req.Files = []File{{
			Param:    "reference_audio",
			FileName: draft.ReferenceAudio.FileName,
			Data:     draft.ReferenceAudio.Data,
		}}
	}

	payload, err := h.transport.Do(ctx, req)
	if err != nil {
		return models.VoiceProfile{}, fmt.Errorf("create profile request: %w", err)
	}

	var profile models.VoiceProfile
	if err = payload.Decode(&profile); err != nil {
		return models.VoiceProfile{}, fmt.Errorf("decode created profile: %w", err)
	}
	return profile, nil
}

func (h *httpServerAdapter) UpdateProfile(ctx context.Context, id int64, patch models.ProfilePatch) (models.ProfilePatch, error) {
	payload, err := h.transport.Do(ctx, Request{
		Method:     http.MethodPatch,
		Endpoint:   profileEndpoint(id),
		Body:       patch,
		UserScoped: true,
	})
	if err != nil {
		return models.ProfilePatch{}, fmt.Errorf("update profile request: %w", err)
	}
	if payload.Kind == PayloadEmpty {
		return models.ProfilePatch{}, nil
	}

	var echoed models.ProfilePatch
	if err = payload.Decode(&echoed); err != nil {
		return models.ProfilePatch{}, fmt.Errorf("decode updated profile: %w", err)
	}
	return echoed, nil
}

func (h *httpServerAdapter) DeleteProfile(ctx context.Context, id int64) error {
	_, err := h.transport.Do(ctx, Request{
		Method:     http.MethodDelete,
		Endpoint:   profileEndpoint(id),
		UserScoped: true,
	})
	if err != nil {
		return fmt.Errorf("delete profile request: %w", err)
	}
	return nil
}

// Synthesize implements [ServerAdapter]. The plain clone endpoint is used
// when neither an emotion nor the conversion stage is requested.
func (h *httpServerAdapter) Synthesize(ctx context.Context, req models.SynthesisRequest) (*Payload, error) {
	endpoint := endpointPipeline
	var body any = req
	if req.PlainClone() {
		endpoint = endpointClone
		body = newCloneBody(req)
	}

	payload, err := h.transport.Do(ctx, Request{
		Method:     http.MethodPost,
		Endpoint:   endpoint,
		Body:       body,
		Long:       true,
		UserScoped: true,
	})
	if err != nil {
		return nil, fmt.Errorf("synthesis request: %w", err)
	}
	return payload, nil
}

// CloneAsync implements [ServerAdapter].
func (h *httpServerAdapter) CloneAsync(ctx context.Context, req models.SynthesisRequest) (models.TaskAccepted, error) {
	payload, err := h.transport.Do(ctx, Request{
		Method:     http.MethodPost,
		Endpoint:   endpointCloneAsync,
		Body:       newCloneBody(req),
		UserScoped: true,
	})
	if err != nil {
		return models.TaskAccepted{}, fmt.Errorf("async clone request: %w", err)
	}

	var accepted models.TaskAccepted
	if err = payload.Decode(&accepted); err != nil {
		return models.TaskAccepted{}, fmt.Errorf("decode async clone response: %w", err)
	}
	if accepted.TaskID == "" && accepted.Result == nil {
		return models.TaskAccepted{}, fmt.Errorf("async clone response: %w", &APIError{Kind: ErrMalformed, Status: payload.Status, Message: "neither task_id nor result"})
	}
	return accepted, nil
}

func (h *httpServerAdapter) Task(ctx context.Context, id string) (models.Task, error) {
	var task models.Task
	err := h.getJSON(ctx, taskEndpoint(id), &task)
	return task, err
}

func (h *httpServerAdapter) CancelTask(ctx context.Context, id string) error {
	_, err := h.transport.Do(ctx, Request{Method: http.MethodPost, Endpoint: taskEndpoint(id) + "/cancel"})
	if err != nil {
		return fmt.Errorf("cancel task request: %w", err)
	}
	return nil
}

func (h *httpServerAdapter) Usage(ctx context.Context) (models.UsageStats, error) {
	endpoint, err := h.userEndpoint("usage")
	if err != nil {
		return models.UsageStats{}, err
	}

	var usage models.UsageStats
	err = h.getJSON(ctx, endpoint, &usage)
	return usage, err
}

// Transactions implements [ServerAdapter]. Newest entries come first.
func (h *httpServerAdapter) Transactions(ctx context.Context, limit, offset int) ([]models.CreditTransaction, error) {
	endpoint, err := h.userEndpoint("transactions")
	if err != nil {
		return nil, err
	}

	payload, err := h.transport.Do(ctx, Request{
		Method:   http.MethodGet,
		Endpoint: endpoint,
		Query: url.Values{
			"limit":  {strconv.Itoa(limit)},
			"offset": {strconv.Itoa(offset)},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", endpoint, err)
	}

	var txs []models.CreditTransaction
	if err = payload.Decode(&txs); err != nil {
		return nil, fmt.Errorf("decode %s: %w", endpoint, err)
	}
	if txs == nil {
		txs = []models.CreditTransaction{}
	}
	return txs, nil
}

func (h *httpServerAdapter) FetchAudio(ctx context.Context, ref string) (*Payload, error) {
	target, err := h.transport.ResolveURL(ref)
	if err != nil {
		return nil, err
	}

	payload, err := h.transport.Do(ctx, Request{Method: http.MethodGet, Endpoint: target, Long: true})
	if err != nil {
		return nil, fmt.Errorf("fetch audio request: %w", err)
	}
	return payload, nil
}

func (h *httpServerAdapter) Emotions(ctx context.Context) ([]models.Emotion, error) {
	var resp models.EmotionsResponse
	err := h.getJSON(ctx, endpointEmotions, &resp)
	return resp.Emotions, err
}

func (h *httpServerAdapter) Languages(ctx context.Context) ([]models.Language, error) {
	var resp models.LanguagesResponse
	err := h.getJSON(ctx, endpointLanguages, &resp)
	return resp.Languages, err
}

func (h *httpServerAdapter) PipelineStatus(ctx context.Context) (models.PipelineStatus, error) {
	var status models.PipelineStatus
	err := h.getJSON(ctx, endpointPipelineStatus, &status)
	return status, err
}

func (h *httpServerAdapter) getJSON(ctx context.Context, endpoint string, v any) error {
	payload, err := h.transport.Do(ctx, Request{Method: http.MethodGet, Endpoint: endpoint})
	if err != nil {
		return fmt.Errorf("GET %s: %w", endpoint, err)
	}
	if err = payload.Decode(v); err != nil {
		return fmt.Errorf("decode %s: %w", endpoint, err)
	}
	return nil
}

// userEndpoint builds /users/{id}/<leaf> for the session user.
func (h *httpServerAdapter) userEndpoint(leaf string) (string, error) {
	userID := h.transport.UserID()
	if userID == 0 {
		return "", ErrNoUserID
	}
	return "/users/" + strconv.FormatInt(userID, 10) + "/" + leaf, nil
}

// cloneBody is the request of POST /voice/clone and /voice/clone-async,
// which know nothing about emotions or the conversion stage.
type cloneBody struct {
	Text      string  `json:"text"`
	ProfileID int64   `json:"profile_id"`
	Language  string  `json:"language,omitempty"`
	Speed     float64 `json:"speed,omitempty"`
}

func newCloneBody(req models.SynthesisRequest) cloneBody {
	return cloneBody{
		Text:      req.Text,
		ProfileID: req.ProfileID,
		Language:  req.Language,
		Speed:     req.Speed,
	}
}

func profileEndpoint(id int64) string {
	return endpointProfiles + "/" + strconv.FormatInt(id, 10)
}

func taskEndpoint(id string) string {
	return endpointTasks + "/" + url.PathEscape(id)
}
