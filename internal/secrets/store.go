package secrets

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrNotFound is returned by Get for a secret that was never stored
var ErrNotFound = errors.New("secret not found")

// Store is an encrypted file-per-secret store. Secrets are sealed with a
// key derived from a passphrase file that is generated on first use.
type Store struct {
	dir string
	key [keySize]byte
}

// Open opens (creating if necessary) the store rooted at dir. The
// passphrase file lives alongside the secrets with mode 0600.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create secrets directory: %w", err)
	}

	passphrase, err := loadOrGeneratePassphrase(filepath.Join(dir, ".passphrase"))
	if err != nil {
		return nil, fmt.Errorf("failed to load passphrase: %w", err)
	}

	return &Store{
		dir: dir,
		key: deriveKey(passphrase),
	}, nil
}

// Put stores a secret under name, replacing any previous value
func (s *Store) Put(name string, value []byte) error {
	encrypted, err := seal(value, &s.key)
	if err != nil {
		return fmt.Errorf("encryption failed: %w", err)
	}

	path := filepath.Join(s.dir, name+".enc")
	if err := os.WriteFile(path, encrypted, 0o600); err != nil {
		return fmt.Errorf("failed to write secret: %w", err)
	}

	return nil
}

// Get retrieves and decrypts a secret. Returns ErrNotFound when no secret
// was stored under name.
func (s *Store) Get(name string) ([]byte, error) {
	path := filepath.Join(s.dir, name+".enc")

	encrypted, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return nil, fmt.Errorf("failed to read secret: %w", err)
	}

	value, err := open(encrypted, &s.key)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt %s: %w", name, err)
	}

	return value, nil
}

// loadOrGeneratePassphrase reads the passphrase file, generating a random
// one on first use
func loadOrGeneratePassphrase(path string) (string, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err == nil {
		return string(data), nil
	}
	if !os.IsNotExist(err) {
		return "", err
	}

	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("failed to generate passphrase: %w", err)
	}
	passphrase := hex.EncodeToString(raw)

	if err := os.WriteFile(path, []byte(passphrase), 0o600); err != nil {
		return "", fmt.Errorf("failed to write passphrase file: %w", err)
	}

	return passphrase, nil
}
