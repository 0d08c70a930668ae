package util

import "github.com/google/uuid"

// NewID returns a fresh opaque identifier. Conversation ids and tool-use
// correlation ids both use this helper so id shape stays uniform.
func NewID() string {
	return uuid.NewString()
}
