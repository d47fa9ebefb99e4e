// Package acl translates between the quotes API wire format and domain types.
//
// The HTTP client in package clients knows nothing about quotes; this package
// owns the external DTOs and turns every failure into a domain error:
//
//   - 404 Not Found → [domain.ErrNotFound]
//   - 400/422 → [domain.ErrValidation], using the envelope's field details when present
//   - 5xx, rate limiting and transport failures → [domain.ErrUnavailable]
//
// Client-level errors ([clients.ErrCircuitOpen], [clients.ErrMaxRetriesExceeded],
// [clients.StatusError]) are also reported as [domain.ErrUnavailable].
package acl
