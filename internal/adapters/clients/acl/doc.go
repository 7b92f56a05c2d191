// Package acl adapts third-party providers to the application's ports.
//
// Provider DTOs stay unexported inside this package. Every failure leaving
// it is a domain error:
//
//   - 400/422 → [domain.ErrValidation]
//   - 409 → [domain.ErrConflict]
//   - 401/403, 404, 429, 5xx and transport failures → [domain.ErrUnavailable]
//
// 401 and 403 mean the service's own API key was rejected; the caller sees
// a 503.
//
// [BaseAdapter] wraps a [clients.Client] and performs that mapping; concrete
// adapters such as [ResendNotifier] embed it and only translate payloads.
package acl
