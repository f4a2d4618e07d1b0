package cmd

import (
	"context"
	"fmt"

	"envseal/internal/crypto"
	"envseal/internal/store"
)

// Edit decrypts the sealed file into a scratch plaintext, opens $VISUAL or
// $EDITOR on it, and re-encrypts the result under the same passphrase. The
// scratch plaintext is removed whatever happens.
func Edit(ctx context.Context, sealedPath string) {
	s := store.New(sealedPath)

	passphrase := ObtainPassphraseOrExit(sealedPath, "Enter passphrase: ")
	defer crypto.ClearBytes(passphrase)

	if err := s.Edit(ctx, passphrase); err != nil {
		HandleError(err)
	}

	refreshRegistry(".", sealedPath)

	fmt.Printf("✓ Updated %s\n", sealedPath)
}
