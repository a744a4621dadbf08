package id

import "crypto/rand"

const chars = "abcdefghijklmnopqrstuvwxyz0123456789"

// New creates a prefixed 16-character alphanumeric ID, e.g. "q_x3f8...".
// The prefix makes IDs self-describing in logs and API payloads.
func New(prefix string) string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		panic("crypto/rand failed: " + err.Error())
	}
	for i := range b {
		b[i] = chars[b[i]%byte(len(chars))]
	}
	if prefix == "" {
		return string(b)
	}
	return prefix + "_" + string(b)
}
