package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/google/uuid"
)

// NewVisitorID generates a fresh client-persisted visitor identifier.
// It is created once per browser and reused across sessions via cookie.
func NewVisitorID() string {
	return uuid.New().String()
}

// signVisitorID creates an HMAC-SHA256 tag over the visitor identifier so
// clients cannot inflate unique-visitor counts with forged ids.
func signVisitorID(id, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(id))
	return hex.EncodeToString(mac.Sum(nil))
}

// EncodeVisitorCookie packs a visitor id and its signature into one cookie
// value ("id.signature").
func EncodeVisitorCookie(id, secret string) string {
	return id + "." + signVisitorID(id, secret)
}

// DecodeVisitorCookie validates a cookie value and returns the visitor id.
// Returns false for malformed or tampered values.
func DecodeVisitorCookie(value, secret string) (string, bool) {
	id, sig, found := strings.Cut(value, ".")
	if !found || id == "" {
		return "", false
	}
	expected := signVisitorID(id, secret)
	if !hmac.Equal([]byte(sig), []byte(expected)) {
		return "", false
	}
	return id, true
}
