package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"envseal/internal/crypto"
	"envseal/internal/envfile"
)

const (
	// FilePermSecure is the mode for the sealed file and any scratch
	// plaintext: owner read/write only.
	FilePermSecure = 0600
)

var (
	ErrNotFound       = errors.New("sealed file not found")
	ErrAlreadyExists  = errors.New("sealed file already exists")
	ErrEmptyPlaintext = errors.New("refusing to use empty content")
)

// Store is one encrypted env file on disk, identified by its path. It holds
// no state between operations; every operation is a full
// decrypt-mutate-reencrypt-commit cycle. Concurrent invocations against the
// same path race — there is no locking protocol, an accepted limitation for
// single-developer and single-CI-job usage.
type Store struct {
	path string
}

// New creates a Store for the sealed file at path.
func New(path string) *Store {
	return &Store{path: path}
}

// Path returns the sealed file's path.
func (s *Store) Path() string {
	return s.path
}

// Exists reports whether the sealed file is present on disk.
func (s *Store) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// LoadRaw decrypts the sealed file and returns its plaintext bytes.
// The caller should clear the returned bytes after use.
func (s *Store) LoadRaw(passphrase []byte) ([]byte, error) {
	ciphertext, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read %s: %w", s.path, err)
	}

	plaintext, err := crypto.Decrypt(ciphertext, passphrase)
	if err != nil {
		return nil, err
	}

	if len(plaintext) == 0 {
		return nil, ErrEmptyPlaintext
	}

	return plaintext, nil
}

// Load decrypts the sealed file and parses it into entries.
func (s *Store) Load(passphrase []byte) (envfile.Entries, error) {
	plaintext, err := s.LoadRaw(passphrase)
	if err != nil {
		return nil, err
	}
	defer crypto.ClearBytes(plaintext)

	return envfile.Parse(plaintext), nil
}

// SaveRaw encrypts plaintext with the passphrase and atomically replaces the
// sealed file. Empty plaintext is refused: persisting it over existing
// content would be silent data loss.
func (s *Store) SaveRaw(passphrase, plaintext []byte) error {
	if len(bytes.TrimSpace(plaintext)) == 0 {
		return ErrEmptyPlaintext
	}

	ciphertext, err := crypto.Encrypt(plaintext, passphrase)
	if err != nil {
		return err
	}

	return s.commit(ciphertext)
}

// Save serializes entries and encrypts them in place of the sealed file.
func (s *Store) Save(passphrase []byte, entries envfile.Entries) error {
	plaintext := envfile.Serialize(entries)
	defer crypto.ClearBytes(plaintext)

	return s.SaveRaw(passphrase, plaintext)
}

// InitFromPlaintext creates the sealed file from an existing plaintext env
// file. Refuses to overwrite: if the sealed file already exists it is left
// byte-identical and ErrAlreadyExists is returned.
func (s *Store) InitFromPlaintext(sourcePath string, passphrase []byte) error {
	if s.Exists() {
		return ErrAlreadyExists
	}

	plaintext, err := os.ReadFile(sourcePath)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("plaintext source %s not found", sourcePath)
		}
		return fmt.Errorf("failed to read %s: %w", sourcePath, err)
	}
	defer crypto.ClearBytes(plaintext)

	return s.SaveRaw(passphrase, plaintext)
}

// Rotate re-encrypts the sealed file under a new passphrase. The file is
// only replaced after the old passphrase decrypted it successfully.
func (s *Store) Rotate(oldPassphrase, newPassphrase []byte) error {
	plaintext, err := s.LoadRaw(oldPassphrase)
	if err != nil {
		return err
	}
	defer crypto.ClearBytes(plaintext)

	return s.SaveRaw(newPassphrase, plaintext)
}

// Edit decrypts the sealed file into a scratch plaintext file, hands it to
// the user's editor, and re-encrypts the result under the same passphrase.
// The scratch file is removed on every exit path. An editing session that
// produces empty content aborts without touching the sealed file.
func (s *Store) Edit(ctx context.Context, passphrase []byte) error {
	plaintext, err := s.LoadRaw(passphrase)
	if err != nil {
		return err
	}
	defer crypto.ClearBytes(plaintext)

	edited, err := editInScratchFile(ctx, plaintext)
	if err != nil {
		return err
	}
	defer crypto.ClearBytes(edited)

	return s.SaveRaw(passphrase, edited)
}

// commit atomically replaces the sealed file's bytes. The ciphertext is
// written to a scratch file in the destination directory and renamed into
// place, so an interruption mid-write leaves the prior content intact.
func (s *Store) commit(ciphertext []byte) error {
	dir := filepath.Dir(s.path)

	tmp, err := os.CreateTemp(dir, ".envseal-commit-*")
	if err != nil {
		return fmt.Errorf("failed to create scratch file: %w", err)
	}
	tmpPath := tmp.Name()

	if err := tmp.Chmod(FilePermSecure); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to set scratch file permissions: %w", err)
	}

	if _, err := tmp.Write(ciphertext); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write ciphertext: %w", err)
	}

	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to sync ciphertext: %w", err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close scratch file: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace %s: %w", s.path, err)
	}

	return nil
}
