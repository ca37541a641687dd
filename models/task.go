// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// TaskState is the status of a background task on the service.
type TaskState string

const (
	TaskPending    TaskState = "pending"
	TaskProcessing TaskState = "processing"
	TaskCompleted  TaskState = "completed"
	TaskFailed     TaskState = "failed"
	TaskCancelled  TaskState = "cancelled"
)

// Terminal reports whether the task will not change any more.
func (s TaskState) Terminal() bool {
	return s == TaskCompleted || s == TaskFailed || s == TaskCancelled
}

// TaskResult is the payload of a completed synthesis task.
type TaskResult struct {
	AudioURL   string  `json:"audio_url"`
	Duration   float64 `json:"duration"`
	SampleRate int     `json:"sample_rate,omitempty"`
	Format     string  `json:"format,omitempty"`
}

// TaskAccepted is the body of POST /voice/clone-async. A cached answer has
// no TaskID and carries the Result directly.
type TaskAccepted struct {
	TaskID  string      `json:"task_id"`
	Status  TaskState   `json:"status"`
	Cached  bool        `json:"cached,omitempty"`
	Result  *TaskResult `json:"result,omitempty"`
	Message string      `json:"message,omitempty"`
}

// Task is the body of GET /tasks/{id}.
type Task struct {
	ID       string      `json:"task_id"`
	Status   TaskState   `json:"status"`
	Progress float64     `json:"progress"`
	Result   *TaskResult `json:"result,omitempty"`
	Error    string      `json:"error,omitempty"`
	// Timestamps are kept as sent; the service writes them without a zone.
	CreatedAt   string `json:"created_at,omitempty"`
	CompletedAt string `json:"completed_at,omitempty"`
}
