// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"flag"
	"fmt"
	"io"
	"time"
)

// parseFlags parses the client flags from args (without the program name).
//
// Flags:
//
//	-a/-address service base URL, e.g. http://localhost:8000/api/v1
//	-c/-config json file path with configs
//	-d database DSN (SQLite file)
//	-audio-dir directory for generated audio
//	-request-timeout default request timeout (e.g., "30s")
//	-long-request-timeout upload and synthesis timeout (e.g., "2m")
//	-rps outbound requests per second, 0 disables limiting
//	-conversion enable the voice-conversion stage by default
//	-emotion default synthesis emotion
//	-async queue plain clones as background tasks
//	-log-dir log file directory
//	-log-level log level
func parseFlags(args []string) (*ClientConfig, error) {
	var (
		address            string
		jsonConfigPath     string
		databaseDSN        string
		audioDir           string
		requestTimeout     time.Duration
		longRequestTimeout time.Duration
		rps                float64
		conversion         bool
		emotion            string
		async              bool
		logDir             string
		logLevel           string
	)

	fs := flag.NewFlagSet("voxclone", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&address, "a", "", "Service base URL")
	fs.StringVar(&address, "address", "", "Service base URL (alias)")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&databaseDSN, "d", "", "Database DSN")
	fs.StringVar(&audioDir, "audio-dir", "", "Generated audio directory")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s)")
	fs.DurationVar(&longRequestTimeout, "long-request-timeout", 0, "Upload and synthesis timeout (e.g., 2m)")
	fs.Float64Var(&rps, "rps", 0, "Outbound requests per second")
	fs.BoolVar(&conversion, "conversion", false, "Enable voice conversion by default")
	fs.StringVar(&emotion, "emotion", "", "Default synthesis emotion")
	fs.BoolVar(&async, "async", false, "Queue plain clones as background tasks")
	fs.StringVar(&logDir, "log-dir", "", "Log file directory")
	fs.StringVar(&logLevel, "log-level", "", "Log level")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return &ClientConfig{
		Adapter: Adapter{
			HTTPAddress:        address,
			RequestTimeout:     requestTimeout,
			LongRequestTimeout: longRequestTimeout,
			RequestsPerSecond:  rps,
		},
		Storage: Storage{
			DB:    DB{DSN: databaseDSN},
			Audio: Audio{Dir: audioDir},
		},
		Synthesis: Synthesis{
			EnableConversion: conversion,
			DefaultEmotion:   emotion,
			Async:            async,
		},
		Log: Log{
			Dir:   logDir,
			Level: logLevel,
		},
		JSONFilePath: jsonConfigPath,
	}, nil
}
