// Package core provides the foundational domain types used by TripMesh. It
// defines the core abstractions for:
//
//   - Messages (role-tagged, ordered sequences of heterogeneous parts)
//   - Sessions (conversational containers with history and free-form state)
//   - The SessionStore contract for pluggable session backends
//
// The package intentionally keeps implementation concerns (storage backends,
// provider adapters, the conversation loop) out of scope, exposing small
// types so higher layers stay decoupled from one another.
package core
