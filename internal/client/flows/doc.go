// Package flows implements the multi-step authentication flows of the ForKa
// client: registration with email verification, and password reset. Each
// flow is a small state machine advanced only by successful server round
// trips; recoverable failures keep the current step and its entered state.
//
// A flow instance owns a context cancelled by Abandon, so a response that
// arrives after the user walked away is discarded instead of being applied
// to stale state. A per-instance busy flag rejects overlapping submissions.
package flows
