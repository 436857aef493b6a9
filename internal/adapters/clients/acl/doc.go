// Package acl is the anti-corruption layer between the hosted guest endpoint
// and the domain.
//
// External DTOs stay unexported in this package. Adapters embed [BaseAdapter],
// decode with [DecodeResponse] or [DecodeResponseForService], and translate
// records with a [Translator]. [TranslateValid] keeps a list usable when a
// few records are malformed.
//
// # Error Mapping
//
// Every failure leaving this package is a domain error:
//   - 404 Not Found → [domain.ErrNotFound]
//   - 409 Conflict → [domain.ErrConflict]
//   - 400/422 → [domain.ErrValidation]
//   - 401/403/405, 429, 5xx and transport failures → [domain.ErrUnavailable]
//
// Client-level errors ([clients.ErrCircuitOpen], [clients.ErrMaxRetriesExceeded])
// stay in the chain of the resulting [domain.UnavailableError].
//
// The guest endpoint answers errors as {"error": "text"}; [ErrorResponse]
// also reads the nested {"error": {"code", "message"}} shape.
//
// See [GuestClient] for the adapter serving ports.GuestStore.
package acl
