// Package console is the session and request-lifecycle controller behind
// the catalog admin surface.
//
// # State machine
//
// The session moves between three states:
//
//	Unauthenticated -> Checking -> Authenticated
//
// SignIn and RestoreSession enter Checking and verify the token against the
// API; any 401/403 on any authenticated call forces the session back to
// Unauthenticated, clearing the stored token and all catalog state.
//
// # Epochs
//
// Every session reset advances a monotonic epoch. Each asynchronous
// operation captures the epoch at its start and discards its effect, without
// surfacing an error, when the epoch has moved on by the time it completes.
// This is the sole ordering mechanism: completion order of concurrent
// requests is never assumed, and at most one epoch is live at any time.
//
// # Mutations
//
// Create, update and delete serialize through a single saving flag. Each
// mutation captures the page intent (page 1 for create, the currently
// displayed page otherwise) once at its start and re-fetches that page on
// success. Updates additionally flag the edited id for a timed highlight.
//
// # Notices
//
// Transient failures surface through two independent single-slot notices,
// page-scoped and modal-scoped, that expire on their own. Stale results and
// forced-logout classification never show up as operation failures.
package console
