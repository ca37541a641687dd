// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"encoding/json"
	"net/http"
)

// writeJSON отдаёт data как JSON с указанным статусом, как это делает сервис
func writeJSON(w http.ResponseWriter, data any, statusCode int) (int, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "error writing data to JSON", http.StatusInternalServerError)
		return 0, err
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return w.Write(jsonData)
}

// writeDetail отдаёт конверт ошибки сервиса {"detail": detail}
func writeDetail(w http.ResponseWriter, detail any, statusCode int) (int, error) {
	return writeJSON(w, map[string]any{"detail": detail}, statusCode)
}

// writeAudio отдаёт сырое аудио с заданным Content-Type
func writeAudio(w http.ResponseWriter, contentType string, data []byte) (int, error) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	return w.Write(data)
}
