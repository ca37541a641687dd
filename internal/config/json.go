// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [ClientConfig] for the JSON file format.
// Durations are written as strings ("30s") or nanosecond numbers.
type StructuredJSONConfig struct {
	App struct {
		ErrorTTL          Duration `json:"error_ttl"`
		AuthSafetyTimeout Duration `json:"auth_safety_timeout"`
	} `json:"app,omitempty"`

	Adapter struct {
		HTTPAddress        string   `json:"http_address"`
		RequestTimeout     Duration `json:"request_timeout"`
		LongRequestTimeout Duration `json:"long_request_timeout"`
		RequestsPerSecond  float64  `json:"rps"`
		Burst              int      `json:"burst"`
	} `json:"adapter,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`

		Audio struct {
			Dir string `json:"dir"`
		} `json:"audio,omitempty"`
	} `json:"storage,omitempty"`

	Workers struct {
		HealthInitialDelay      Duration `json:"health_initial_delay"`
		HealthMaxDelay          Duration `json:"health_max_delay"`
		HealthBackoffMultiplier float64  `json:"health_backoff_multiplier"`
		HealthInterval          Duration `json:"health_interval"`
		CreditsRefreshInterval  Duration `json:"credits_refresh_interval"`
	} `json:"workers,omitempty"`

	Synthesis struct {
		EnableConversion bool     `json:"enable_conversion"`
		DefaultEmotion   string   `json:"default_emotion"`
		DefaultSpeed     float64  `json:"default_speed"`
		DefaultLanguage  string   `json:"default_language"`
		Async            bool     `json:"async"`
		TaskPollInterval Duration `json:"task_poll_interval"`
		TaskTimeout      Duration `json:"task_timeout"`
	} `json:"synthesis,omitempty"`

	Log struct {
		Dir   string `json:"dir"`
		Level string `json:"level"`
	} `json:"log,omitempty"`
}

func parseJSON(jsonFilePath string) (*ClientConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &ClientConfig{
		App: App{
			ErrorTTL:          time.Duration(jsonCfg.App.ErrorTTL),
			AuthSafetyTimeout: time.Duration(jsonCfg.App.AuthSafetyTimeout),
		},
		Adapter: Adapter{
			HTTPAddress:        jsonCfg.Adapter.HTTPAddress,
			RequestTimeout:     time.Duration(jsonCfg.Adapter.RequestTimeout),
			LongRequestTimeout: time.Duration(jsonCfg.Adapter.LongRequestTimeout),
			RequestsPerSecond:  jsonCfg.Adapter.RequestsPerSecond,
			Burst:              jsonCfg.Adapter.Burst,
		},
		Storage: Storage{
			DB:    DB{DSN: jsonCfg.Storage.DB.DSN},
			Audio: Audio{Dir: jsonCfg.Storage.Audio.Dir},
		},
		Workers: Workers{
			HealthInitialDelay:      time.Duration(jsonCfg.Workers.HealthInitialDelay),
			HealthMaxDelay:          time.Duration(jsonCfg.Workers.HealthMaxDelay),
			HealthBackoffMultiplier: jsonCfg.Workers.HealthBackoffMultiplier,
			HealthInterval:          time.Duration(jsonCfg.Workers.HealthInterval),
			CreditsRefreshInterval:  time.Duration(jsonCfg.Workers.CreditsRefreshInterval),
		},
		Synthesis: Synthesis{
			EnableConversion: jsonCfg.Synthesis.EnableConversion,
			DefaultEmotion:   jsonCfg.Synthesis.DefaultEmotion,
			DefaultSpeed:     jsonCfg.Synthesis.DefaultSpeed,
			DefaultLanguage:  jsonCfg.Synthesis.DefaultLanguage,
			Async:            jsonCfg.Synthesis.Async,
			TaskPollInterval: time.Duration(jsonCfg.Synthesis.TaskPollInterval),
			TaskTimeout:      time.Duration(jsonCfg.Synthesis.TaskTimeout),
		},
		Log: Log{
			Dir:   jsonCfg.Log.Dir,
			Level: jsonCfg.Log.Level,
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
