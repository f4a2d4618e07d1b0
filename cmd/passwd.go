package cmd

import (
	"fmt"

	"envseal/internal/credentials"
	"envseal/internal/crypto"
	"envseal/internal/store"
)

// UpdatePass rotates the sealed file's passphrase. Both passphrases are
// always read interactively — a cached credential never stands in for
// either — and the new one must be entered twice with an exact match.
func UpdatePass(sealedPath string) {
	s := store.New(sealedPath)

	if !s.Exists() {
		HandleError(store.ErrNotFound)
	}

	current, err := credentials.ReadPassphrase("Enter current passphrase: ")
	if err != nil {
		HandleError(err)
	}
	defer crypto.ClearBytes(current)

	next, err := credentials.ReadPassphraseConfirm()
	if err != nil {
		HandleError(err)
	}
	defer crypto.ClearBytes(next)

	if err := s.Rotate(current, next); err != nil {
		HandleError(err)
	}

	refreshRegistry(".", sealedPath)

	fmt.Println("✓ Passphrase changed successfully")
	fmt.Println("Cached credentials (keyring, ENVSEAL_PASSPHRASE) now need updating")
}
