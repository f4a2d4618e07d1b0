package store

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"envseal/internal/crypto"
	"envseal/internal/envfile"
)

func writePlaintext(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

func TestInitFromPlaintext(t *testing.T) {
	dir := t.TempDir()
	source := writePlaintext(t, dir, ".env", "API_KEY=abc123\n")
	s := New(filepath.Join(dir, ".env.sealed"))
	passphrase := []byte("test123")

	if err := s.InitFromPlaintext(source, passphrase); err != nil {
		t.Fatalf("InitFromPlaintext failed: %v", err)
	}

	if !s.Exists() {
		t.Fatal("Sealed file should exist after init")
	}

	plaintext, err := s.LoadRaw(passphrase)
	if err != nil {
		t.Fatalf("LoadRaw failed: %v", err)
	}
	if string(plaintext) != "API_KEY=abc123\n" {
		t.Errorf("Decrypted content mismatch: %q", plaintext)
	}
}

func TestInitRefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	source := writePlaintext(t, dir, ".env", "A=1\n")
	s := New(filepath.Join(dir, ".env.sealed"))
	passphrase := []byte("test123")

	if err := s.InitFromPlaintext(source, passphrase); err != nil {
		t.Fatalf("InitFromPlaintext failed: %v", err)
	}

	before, err := os.ReadFile(s.Path())
	if err != nil {
		t.Fatalf("Failed to read sealed file: %v", err)
	}

	if err := s.InitFromPlaintext(source, passphrase); !errors.Is(err, ErrAlreadyExists) {
		t.Errorf("Expected ErrAlreadyExists, got %v", err)
	}

	after, err := os.ReadFile(s.Path())
	if err != nil {
		t.Fatalf("Failed to read sealed file: %v", err)
	}
	if !bytes.Equal(before, after) {
		t.Error("Refused init must leave existing ciphertext byte-identical")
	}
}

func TestInitEmptySource(t *testing.T) {
	dir := t.TempDir()
	source := writePlaintext(t, dir, ".env", "")
	s := New(filepath.Join(dir, ".env.sealed"))

	if err := s.InitFromPlaintext(source, []byte("test123")); !errors.Is(err, ErrEmptyPlaintext) {
		t.Errorf("Expected ErrEmptyPlaintext, got %v", err)
	}
	if s.Exists() {
		t.Error("No sealed file should be created from an empty source")
	}
}

func TestLoadNotFound(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), ".env.sealed"))

	if _, err := s.LoadRaw([]byte("test123")); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestLoadWrongPassphrase(t *testing.T) {
	dir := t.TempDir()
	source := writePlaintext(t, dir, ".env", "SECRET=value\n")
	s := New(filepath.Join(dir, ".env.sealed"))

	if err := s.InitFromPlaintext(source, []byte("correct")); err != nil {
		t.Fatalf("InitFromPlaintext failed: %v", err)
	}

	if _, err := s.LoadRaw([]byte("wrong")); !errors.Is(err, crypto.ErrDecryptFailed) {
		t.Errorf("Expected ErrDecryptFailed, got %v", err)
	}
}

func TestLoadCorruptCiphertext(t *testing.T) {
	dir := t.TempDir()
	s := New(writePlaintext(t, dir, ".env.sealed", "this is not an openpgp blob"))

	if _, err := s.LoadRaw([]byte("test123")); !errors.Is(err, crypto.ErrDecryptFailed) {
		t.Errorf("Expected ErrDecryptFailed for corrupt input, got %v", err)
	}
}

func TestSaveLoadEntries(t *testing.T) {
	dir := t.TempDir()
	s := New(filepath.Join(dir, ".env.sealed"))
	passphrase := []byte("test123")

	entries := envfile.Entries{
		envfile.Variable{Key: "A", Value: "1", Leading: []envfile.Comment{{Text: "first"}}},
		envfile.Variable{Key: "B", Value: "two words", Quote: '"'},
	}

	if err := s.Save(passphrase, entries); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := s.Load(passphrase)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(loaded) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(loaded))
	}
	a := loaded[0].(envfile.Variable)
	if a.Key != "A" || a.Value != "1" || len(a.Leading) != 1 {
		t.Errorf("Entry A did not survive the round trip: %#v", a)
	}
	b := loaded[1].(envfile.Variable)
	if b.Key != "B" || b.Value != "two words" || b.Quote != '"' {
		t.Errorf("Entry B did not survive the round trip: %#v", b)
	}
}

func TestSaveRawRefusesEmpty(t *testing.T) {
	dir := t.TempDir()
	source := writePlaintext(t, dir, ".env", "A=1\n")
	s := New(filepath.Join(dir, ".env.sealed"))
	passphrase := []byte("test123")

	if err := s.InitFromPlaintext(source, passphrase); err != nil {
		t.Fatalf("InitFromPlaintext failed: %v", err)
	}

	before, _ := os.ReadFile(s.Path())

	if err := s.SaveRaw(passphrase, []byte("  \n\t\n")); !errors.Is(err, ErrEmptyPlaintext) {
		t.Errorf("Expected ErrEmptyPlaintext, got %v", err)
	}

	after, _ := os.ReadFile(s.Path())
	if !bytes.Equal(before, after) {
		t.Error("Refused save must leave existing ciphertext untouched")
	}
}

func TestRotate(t *testing.T) {
	dir := t.TempDir()
	source := writePlaintext(t, dir, ".env", "TOKEN=xyz\n")
	s := New(filepath.Join(dir, ".env.sealed"))
	oldPass := []byte("old-pass")
	newPass := []byte("new-pass")

	if err := s.InitFromPlaintext(source, oldPass); err != nil {
		t.Fatalf("InitFromPlaintext failed: %v", err)
	}

	if err := s.Rotate(oldPass, newPass); err != nil {
		t.Fatalf("Rotate failed: %v", err)
	}

	if _, err := s.LoadRaw(oldPass); !errors.Is(err, crypto.ErrDecryptFailed) {
		t.Errorf("Old passphrase should no longer decrypt, got %v", err)
	}

	plaintext, err := s.LoadRaw(newPass)
	if err != nil {
		t.Fatalf("New passphrase should decrypt: %v", err)
	}
	if string(plaintext) != "TOKEN=xyz\n" {
		t.Errorf("Content changed during rotation: %q", plaintext)
	}
}

func TestRotateWrongOldPassphrase(t *testing.T) {
	dir := t.TempDir()
	source := writePlaintext(t, dir, ".env", "TOKEN=xyz\n")
	s := New(filepath.Join(dir, ".env.sealed"))

	if err := s.InitFromPlaintext(source, []byte("correct")); err != nil {
		t.Fatalf("InitFromPlaintext failed: %v", err)
	}

	before, _ := os.ReadFile(s.Path())

	if err := s.Rotate([]byte("wrong"), []byte("new")); !errors.Is(err, crypto.ErrDecryptFailed) {
		t.Errorf("Expected ErrDecryptFailed, got %v", err)
	}

	after, _ := os.ReadFile(s.Path())
	if !bytes.Equal(before, after) {
		t.Error("Failed rotation must leave ciphertext untouched")
	}
}

func TestCommitLeavesNoScratchFiles(t *testing.T) {
	dir := t.TempDir()
	source := writePlaintext(t, dir, ".env", "A=1\n")
	s := New(filepath.Join(dir, ".env.sealed"))

	if err := s.InitFromPlaintext(source, []byte("test123")); err != nil {
		t.Fatalf("InitFromPlaintext failed: %v", err)
	}

	matches, err := filepath.Glob(filepath.Join(dir, ".envseal-commit-*"))
	if err != nil {
		t.Fatalf("Glob failed: %v", err)
	}
	if len(matches) != 0 {
		t.Errorf("Scratch files left behind: %v", matches)
	}
}
