package cmd

import (
	"fmt"

	"envseal/internal/credentials"
	"envseal/internal/crypto"
	"envseal/internal/store"
)

// Init creates a sealed env file from an existing plaintext env file.
// Refuses to overwrite an existing sealed file.
func Init(sourcePath, sealedPath string) {
	s := store.New(sealedPath)

	if s.Exists() {
		HandleError(store.ErrAlreadyExists)
	}

	// Pre-set credential or prompt-with-confirmation for a new store.
	passphrase, err := credentials.Chain{credentials.Env{}}.Obtain()
	if err != nil {
		passphrase, err = credentials.ReadPassphraseConfirm()
		if err != nil {
			HandleError(err)
		}
	}
	defer crypto.ClearBytes(passphrase)

	if err := s.InitFromPlaintext(sourcePath, passphrase); err != nil {
		HandleError(err)
	}

	if err := trackSealedFile(".", sealedPath); err != nil {
		fmt.Printf("warning: sealed file created but not tracked: %v\n", err)
	}

	fmt.Printf("✓ Sealed %s into %s\n", sourcePath, sealedPath)
	fmt.Printf("Remember to keep %s out of version control\n", sourcePath)
}
