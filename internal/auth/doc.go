// Package auth implements the session credential store and the token
// refresh protocol for the identity provider's authorization code flow.
//
// A [Credential] is created by the one-time code exchange, mutated only by
// refresh, and cleared when a refresh fails terminally. The [Scheduler]
// keeps at most one pending timer that fires shortly before expiry and
// re-authenticates in the background.
package auth
