package utils

import (
	"strings"
	"testing"
)

func TestVisitorCookieRoundtrip(t *testing.T) {
	id := NewVisitorID()
	cookie := EncodeVisitorCookie(id, "secret-a")

	got, ok := DecodeVisitorCookie(cookie, "secret-a")
	if !ok {
		t.Fatal("valid cookie rejected")
	}
	if got != id {
		t.Fatalf("decoded id = %q, want %q", got, id)
	}
}

func TestVisitorCookieRejectsTampering(t *testing.T) {
	cookie := EncodeVisitorCookie(NewVisitorID(), "secret-a")

	// Swap the id but keep the original signature.
	_, sig, _ := strings.Cut(cookie, ".")
	forged := NewVisitorID() + "." + sig
	if _, ok := DecodeVisitorCookie(forged, "secret-a"); ok {
		t.Fatal("forged id accepted")
	}

	// Signature under a different secret.
	if _, ok := DecodeVisitorCookie(cookie, "secret-b"); ok {
		t.Fatal("cookie accepted under wrong secret")
	}

	for _, malformed := range []string{"", "no-separator", ".sig-only", "id-only."} {
		if _, ok := DecodeVisitorCookie(malformed, "secret-a"); ok {
			t.Fatalf("malformed value %q accepted", malformed)
		}
	}
}

func TestNewVisitorIDUnique(t *testing.T) {
	a := NewVisitorID()
	b := NewVisitorID()
	if a == b {
		t.Fatal("visitor ids must be unique")
	}
}
