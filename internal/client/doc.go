// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the client runtime of voxclone.
//
// [Coordinator] composes the session manager, connectivity monitor, profile
// store, synthesis runner and credit ledger into a single memoized [View]
// with one expiring error slot. [App] ties the coordinator to a user
// interface and to the process lifecycle.
package client
