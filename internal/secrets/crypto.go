// Package secrets stores notifier credentials encrypted at rest with NaCl
// secretbox, keyed by a locally generated passphrase file.
package secrets

import (
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"io"

	"golang.org/x/crypto/nacl/secretbox"
)

const (
	// keySize is the secretbox key length
	keySize = 32
	// nonceSize is the secretbox nonce length
	nonceSize = 24
)

// deriveKey derives a secretbox key from a passphrase via SHA-256
func deriveKey(passphrase string) [keySize]byte {
	return sha256.Sum256([]byte(passphrase))
}

// seal encrypts plaintext and prepends the random nonce to the ciphertext
func seal(plaintext []byte, key *[keySize]byte) ([]byte, error) {
	var nonce [nonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	return secretbox.Seal(nonce[:], plaintext, &nonce, key), nil
}

// open decrypts data produced by seal
func open(encrypted []byte, key *[keySize]byte) ([]byte, error) {
	if len(encrypted) < nonceSize {
		return nil, fmt.Errorf("encrypted data too short (minimum %d bytes)", nonceSize)
	}

	var nonce [nonceSize]byte
	copy(nonce[:], encrypted[:nonceSize])

	plaintext, ok := secretbox.Open(nil, encrypted[nonceSize:], &nonce, key)
	if !ok {
		return nil, fmt.Errorf("decryption failed (wrong key or corrupted data)")
	}

	return plaintext, nil
}
