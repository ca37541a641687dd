// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/go-resty/resty/v2"
)

// mapHTTPError turns a non-2xx response into an [*APIError]. It returns nil
// for 2xx answers.
func mapHTTPError(resp *resty.Response) error {
	status := resp.StatusCode()
	if status >= http.StatusOK && status < http.StatusMultipleChoices {
		return nil
	}

	data := decodeErrorBody(resp.Body())
	message := errorMessage(data)
	if message == "" && data == nil && isText(resp.Header().Get("Content-Type")) {
		message = truncate(strings.TrimSpace(string(resp.Body())), maxPlainErrorLen)
	}
	if message == "" {
		message = http.StatusText(status)
	}

	return &APIError{
		Kind:    kindForStatus(status),
		Status:  status,
		Message: message,
		Data:    data,
	}
}

func kindForStatus(status int) error {
	switch {
	case status == http.StatusUnauthorized:
		return ErrUnauthorized
	case status == http.StatusForbidden:
		return ErrForbidden
	case status == http.StatusRequestTimeout:
		return ErrTimeout
	case status >= 500:
		return ErrServerFault
	case status >= 400:
		return ErrValidation
	default:
		// 1xx/3xx that resty did not follow
		return ErrMalformed
	}
}

func decodeErrorBody(body []byte) map[string]any {
	if len(body) == 0 {
		return nil
	}
	var data map[string]any
	if err := json.Unmarshal(body, &data); err != nil {
		return nil
	}
	return data
}

// errorMessage extracts the human-readable text from the error envelope:
// "detail" as a string, "detail" as a validation list, "detail.message", or
// a top-level "message".
func errorMessage(data map[string]any) string {
	if data == nil {
		return ""
	}

	switch detail := data["detail"].(type) {
	case string:
		return detail
	case []any:
		parts := make([]string, 0, len(detail))
		for _, item := range detail {
			parts = append(parts, validationItemMessage(item))
		}
		return strings.Join(parts, "; ")
	case map[string]any:
		if msg, ok := detail["message"].(string); ok {
			return msg
		}
	}

	if msg, ok := data["message"].(string); ok {
		return msg
	}
	return ""
}

func validationItemMessage(item any) string {
	obj, ok := item.(map[string]any)
	if !ok {
		return fmt.Sprint(item)
	}

	msg, _ := obj["msg"].(string)
	loc, ok := obj["loc"].([]any)
	if !ok || len(loc) == 0 {
		return msg
	}

	// drop the "body"/"query" prefix, keep the field path
	fields := make([]string, 0, len(loc))
	for i, part := range loc {
		if i == 0 && len(loc) > 1 {
			if s, ok := part.(string); ok && (s == "body" || s == "query" || s == "path") {
				continue
			}
		}
		fields = append(fields, fmt.Sprint(part))
	}
	return strings.Join(fields, ".") + ": " + msg
}

const maxPlainErrorLen = 200

func isText(contentType string) bool {
	return strings.HasPrefix(contentType, "text/")
}

// truncate limits s to n bytes without splitting a multi-byte rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	cut := n
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
