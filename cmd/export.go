package cmd

import (
	"fmt"

	"envseal/internal/crypto"
	"envseal/internal/envfile"
	"envseal/internal/store"
)

// Export decrypts the sealed file and prints shell-safe export statements
// for eval. With a selector key, exactly the first matching variable is
// printed; without one, every variable in order (duplicates included — the
// shell's evaluation order makes the last occurrence win).
func Export(sealedPath, key string) {
	s := store.New(sealedPath)

	passphrase := ObtainPassphraseOrExit(sealedPath, "Enter passphrase: ")
	defer crypto.ClearBytes(passphrase)

	entries, err := s.Load(passphrase)
	if err != nil {
		HandleError(err)
	}

	lines, err := envfile.Project(entries, key)
	if err != nil {
		HandleError(err)
	}

	for _, line := range lines {
		fmt.Println(line)
	}
}
