// Package session persists the login session between runs.
//
// Two pieces of state survive a process exit, mirroring how a browser keeps
// them:
//
//   - the bearer token with its server-declared expiry (a cookie analogue),
//     stored as a small JSON file. An expired token loads as absent.
//   - a "has an active session" flag, consulted on restore so that a valid
//     but stale token does not silently re-authenticate a session that never
//     logged in.
//
// Both live behind small interfaces (TokenStore, Flag) with file-backed
// implementations for the CLI and in-memory ones for tests.
//
// TokenExpiry additionally peeks at the token's exp claim without verifying
// the signature. The hosted API's tokens happen to be JWTs; the client
// otherwise treats them as opaque.
package session
