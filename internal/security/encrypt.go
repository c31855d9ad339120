// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package security protects the session token at rest.
//
// Tokens are sealed with AES-256-GCM under a key derived with PBKDF2-SHA-256
// from a per-user secret kept in the studysync home directory (0600).
// Sealed values look like "ENC:" + base64(nonce || ciphertext || tag).
package security

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/crypto/pbkdf2"

	"github.com/jeranaias/studysync-tui/internal/util"
)

// =============================================================================
// CONSTANTS
// =============================================================================

// EncryptedPrefix marks a sealed value.
const EncryptedPrefix = "ENC:"

// NonceSize is the AES-GCM nonce size (96 bits).
const NonceSize = 12

// KeySize is the AES-256 key size.
const KeySize = 32

// SaltSize is the PBKDF2 salt size.
const SaltSize = 32

// secretSize is the size of the random secret stored in the key file.
const secretSize = 32

// PBKDF2Iterations follows the OWASP 2023 guidance for PBKDF2-SHA-256.
const PBKDF2Iterations = 600000

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrInvalidCiphertext indicates a sealed value is malformed.
	ErrInvalidCiphertext = errors.New("invalid ciphertext format")
	// ErrDecryptionFailed indicates a wrong key or tampered data.
	ErrDecryptionFailed = errors.New("decryption failed: authentication tag mismatch")
	// ErrInvalidKeyFile indicates the key file has the wrong size.
	ErrInvalidKeyFile = errors.New("invalid key file")
)

// =============================================================================
// SEALER
// =============================================================================

// Sealer seals and opens short secrets such as bearer tokens.
type Sealer struct {
	aead cipher.AEAD
}

// OpenSealer loads the key file at keyPath, creating it with a fresh random
// secret and salt on first use.
func OpenSealer(keyPath string) (*Sealer, error) {
	material, err := os.ReadFile(keyPath)
	if errors.Is(err, os.ErrNotExist) {
		material = make([]byte, SaltSize+secretSize)
		if _, err := io.ReadFull(rand.Reader, material); err != nil {
			return nil, fmt.Errorf("failed to generate key material: %w", err)
		}
		if err := util.AtomicWriteFile(keyPath, material, 0600); err != nil {
			return nil, fmt.Errorf("failed to store key file: %w", err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("failed to read key file: %w", err)
	}

	if len(material) != SaltSize+secretSize {
		return nil, fmt.Errorf("%w: %s has %d bytes", ErrInvalidKeyFile, keyPath, len(material))
	}
	return NewSealer(material[SaltSize:], material[:SaltSize], PBKDF2Iterations)
}

// NewSealer derives the sealing key from secret and salt.
func NewSealer(secret, salt []byte, iterations int) (*Sealer, error) {
	key := pbkdf2.Key(secret, salt, iterations, KeySize, sha256.New)
	defer zeroBytes(key)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}
	return &Sealer{aead: aead}, nil
}

// Seal encrypts plaintext and returns the prefixed, base64 encoded result.
func (s *Sealer) Seal(plaintext string) (string, error) {
	nonce := make([]byte, NonceSize)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}
	sealed := s.aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return EncryptedPrefix + base64.StdEncoding.EncodeToString(sealed), nil
}

// Open reverses Seal. Values without the prefix are returned unchanged so
// tokens written before sealing was enabled keep working.
func (s *Sealer) Open(value string) (string, error) {
	if !IsSealed(value) {
		return value, nil
	}

	data, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(value, EncryptedPrefix))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidCiphertext, err)
	}
	if len(data) < NonceSize+s.aead.Overhead() {
		return "", ErrInvalidCiphertext
	}

	plaintext, err := s.aead.Open(nil, data[:NonceSize], data[NonceSize:], nil)
	if err != nil {
		return "", ErrDecryptionFailed
	}
	return string(plaintext), nil
}

// IsSealed reports whether value carries the sealed prefix.
func IsSealed(value string) bool {
	return strings.HasPrefix(value, EncryptedPrefix)
}

// zeroBytes clears key material once the cipher holds its own copy.
func zeroBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
