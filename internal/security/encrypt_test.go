// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package security

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// fastSealer avoids the full PBKDF2 cost in unit tests.
func fastSealer(t *testing.T, secret string) *Sealer {
	t.Helper()
	s, err := NewSealer([]byte(secret), bytes.Repeat([]byte{7}, SaltSize), 1000)
	if err != nil {
		t.Fatalf("NewSealer() error = %v", err)
	}
	return s
}

func TestSealer_RoundTrip(t *testing.T) {
	s := fastSealer(t, "secret")

	sealed, err := s.Seal("eyJhbGciOiJIUzI1NiJ9.token")
	if err != nil {
		t.Fatalf("Seal() error = %v", err)
	}
	if !IsSealed(sealed) {
		t.Errorf("sealed value %q lacks prefix", sealed)
	}
	if strings.Contains(sealed, "token") {
		t.Error("sealed value leaks plaintext")
	}

	got, err := s.Open(sealed)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if got != "eyJhbGciOiJIUzI1NiJ9.token" {
		t.Errorf("Open() = %q", got)
	}
}

func TestSealer_FreshNonceEachTime(t *testing.T) {
	s := fastSealer(t, "secret")
	a, _ := s.Seal("same")
	b, _ := s.Seal("same")
	if a == b {
		t.Error("two seals of the same plaintext should differ")
	}
}

func TestSealer_PlaintextPassthrough(t *testing.T) {
	s := fastSealer(t, "secret")
	got, err := s.Open("legacy-token")
	if err != nil || got != "legacy-token" {
		t.Errorf("Open(plain) = %q, %v; want passthrough", got, err)
	}
}

func TestSealer_WrongKey(t *testing.T) {
	sealed, _ := fastSealer(t, "one").Seal("token")
	_, err := fastSealer(t, "two").Open(sealed)
	if !errors.Is(err, ErrDecryptionFailed) {
		t.Errorf("Open with wrong key error = %v, want ErrDecryptionFailed", err)
	}
}

func TestSealer_Malformed(t *testing.T) {
	s := fastSealer(t, "secret")
	for _, v := range []string{"ENC:!!!not-base64", "ENC:AAAA"} {
		if _, err := s.Open(v); !errors.Is(err, ErrInvalidCiphertext) {
			t.Errorf("Open(%q) error = %v, want ErrInvalidCiphertext", v, err)
		}
	}
}

func TestOpenSealer_CreatesAndReusesKeyFile(t *testing.T) {
	if testing.Short() {
		t.Skip("full PBKDF2 derivation")
	}
	keyPath := filepath.Join(t.TempDir(), "token.key")

	first, err := OpenSealer(keyPath)
	if err != nil {
		t.Fatalf("OpenSealer() error = %v", err)
	}
	sealed, err := first.Seal("token")
	if err != nil {
		t.Fatalf("Seal() error = %v", err)
	}

	info, err := os.Stat(keyPath)
	if err != nil {
		t.Fatalf("key file missing: %v", err)
	}
	if info.Size() != SaltSize+secretSize {
		t.Errorf("key file size = %d", info.Size())
	}

	second, err := OpenSealer(keyPath)
	if err != nil {
		t.Fatalf("second OpenSealer() error = %v", err)
	}
	if got, err := second.Open(sealed); err != nil || got != "token" {
		t.Errorf("Open with reloaded key = %q, %v", got, err)
	}
}

func TestOpenSealer_BadKeyFile(t *testing.T) {
	keyPath := filepath.Join(t.TempDir(), "token.key")
	if err := os.WriteFile(keyPath, []byte("short"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := OpenSealer(keyPath); !errors.Is(err, ErrInvalidKeyFile) {
		t.Errorf("OpenSealer(bad) error = %v, want ErrInvalidKeyFile", err)
	}
}
