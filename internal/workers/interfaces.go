// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package workers runs the background loops of the client (the
// connectivity monitor) as a single unit with a shared lifetime.
package workers

import "context"

// Worker is a background loop owned by the client.
//
// Start may block until the first iteration has finished; further
// iterations run on timers owned by the worker. Stop cancels pending timers
// and in-flight work and must be safe to call more than once.
//
// Example implementation:
//
//	type MyWorker struct{}
//
//	func (w *MyWorker) Start(ctx context.Context) {
//	    // first iteration, then schedule the next one
//	}
//
//	func (w *MyWorker) Stop() {}
type Worker interface {
	Start(ctx context.Context)
	Stop()
}
