// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used across the
// voxclone client.
//
// All Msg* constants are human-readable message strings shown to the user in
// the global error slot or written into log entries. Keeping them in one
// place ensures consistent wording throughout the client.
package app

const (
	// MsgServiceUnreachable is shown when no response was received at all.
	MsgServiceUnreachable = "The voice service is unreachable. Check your connection."

	// MsgRequestTimedOut is shown when a request exceeded its client-side
	// deadline.
	MsgRequestTimedOut = "The voice service did not answer in time."

	// MsgSessionExpired is shown when the service rejects the bearer token.
	MsgSessionExpired = "Your session has expired. Please log in again."

	// MsgInvalidLoginPassword is shown when login fails with 401.
	MsgInvalidLoginPassword = "Incorrect email or password."

	// MsgAccessDenied is shown on 403 answers.
	MsgAccessDenied = "You do not have access to this resource."

	// MsgInsufficientCredits is shown on 402 answers.
	MsgInsufficientCredits = "Not enough credits for this operation."

	// MsgNotFound is shown on 404 answers.
	MsgNotFound = "The requested item no longer exists."

	// MsgAlreadyExists is shown on 409 answers, e.g. a registered email.
	MsgAlreadyExists = "This item already exists."

	// MsgRateLimited is shown on 429 answers.
	MsgRateLimited = "Too many requests. Please wait a moment."

	// MsgServerFault is shown on 5xx answers.
	MsgServerFault = "The voice service failed to process the request."

	// MsgMalformedResponse is shown when a successful answer could not be
	// interpreted.
	MsgMalformedResponse = "The voice service sent an unexpected response."

	// MsgSynthesisInProgress is shown when a second job is requested while
	// one is running.
	MsgSynthesisInProgress = "A synthesis is already running."

	// MsgSignInRequired is shown when an account operation is attempted
	// without a session.
	MsgSignInRequired = "Please log in first."

	// MsgUnexpectedError is the fallback for everything else.
	MsgUnexpectedError = "Something went wrong."
)
