package cmd

import (
	"fmt"

	"envseal/internal/crypto"
	"envseal/internal/envfile"
	"envseal/internal/store"
)

// View decrypts the sealed file and prints its canonical text form, or a
// single key's value when a selector is given (first occurrence wins).
func View(sealedPath, key string) {
	s := store.New(sealedPath)

	passphrase := ObtainPassphraseOrExit(sealedPath, "Enter passphrase: ")
	defer crypto.ClearBytes(passphrase)

	entries, err := s.Load(passphrase)
	if err != nil {
		HandleError(err)
	}

	if key != "" {
		v, err := entries.Lookup(key)
		if err != nil {
			HandleError(err)
		}
		fmt.Println(v.Value)
		return
	}

	fmt.Print(string(envfile.Serialize(entries)))
}
