package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"envseal/internal/credentials"
	"envseal/internal/crypto"
	"envseal/internal/keyring"
	"envseal/internal/store"
)

// SetPass verifies a passphrase against the sealed file and caches it in
// the OS keyring. This is the one sanctioned way a passphrase reaches
// durable storage, and it is called out loudly.
func SetPass(sealedPath string) {
	s := store.New(sealedPath)

	if !s.Exists() {
		HandleError(store.ErrNotFound)
	}

	passphrase, err := credentials.ReadPassphrase("Enter passphrase: ")
	if err != nil {
		HandleError(err)
	}
	defer crypto.ClearBytes(passphrase)

	// Verify before caching: a wrong passphrase in the keyring would turn
	// every later command into a confusing decrypt failure.
	if _, err := s.LoadRaw(passphrase); err != nil {
		HandleError(err)
	}

	abs, err := filepath.Abs(sealedPath)
	if err != nil {
		HandleError(err)
	}

	fmt.Println("warning: the passphrase will be stored in the OS keyring")
	if err := keyring.SavePassphrase(abs, string(passphrase)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to save to keyring: %s\n", err)
		os.Exit(1)
	}

	fmt.Println("✓ Passphrase saved to keyring")
}

// ForgetPass removes the sealed file's passphrase from the OS keyring
func ForgetPass(sealedPath string) {
	abs, err := filepath.Abs(sealedPath)
	if err != nil {
		HandleError(err)
	}

	if err := keyring.DeletePassphrase(abs); err != nil {
		fmt.Println("No passphrase stored in keyring")
		return
	}

	fmt.Println("✓ Passphrase removed from keyring")
}

// PassStatus reports whether a passphrase is cached for the sealed file
func PassStatus(sealedPath string) {
	abs, err := filepath.Abs(sealedPath)
	if err != nil {
		HandleError(err)
	}

	if keyring.HasPassphrase(abs) {
		fmt.Println("Passphrase: stored in keyring")
	} else {
		fmt.Println("Passphrase: not stored")
	}
}
