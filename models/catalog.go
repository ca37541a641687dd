// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Emotion is a synthesis style preset.
type Emotion struct {
	Name       string  `json:"name"`
	PitchShift int     `json:"pitch_shift"`
	Speed      float64 `json:"speed"`
}

// Language is a language supported by the synthesis stage.
type Language struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// PipelineStatus reports which synthesis stages are loaded on the service.
type PipelineStatus struct {
	TTSLoaded         bool     `json:"tts_loaded"`
	ConversionLoaded  bool     `json:"rvc_loaded"`
	AvailableEmotions []string `json:"available_emotions"`
	Ready             bool     `json:"ready"`
}

// EmotionsResponse is the body of GET /voice/pipeline/emotions.
type EmotionsResponse struct {
	Emotions []Emotion `json:"emotions"`
}

// LanguagesResponse is the body of GET /voice/pipeline/languages.
type LanguagesResponse struct {
	Languages []Language `json:"languages"`
}
