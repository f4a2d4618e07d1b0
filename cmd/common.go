package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"envseal/internal/credentials"
	"envseal/internal/crypto"
	"envseal/internal/envfile"
	"envseal/internal/registry"
	"envseal/internal/security"
	"envseal/internal/store"
)

// DefaultSealedFile is the sealed file a command operates on when no -f
// flag is given. DefaultSourceFile is the plaintext init reads by default.
const (
	DefaultSealedFile = ".env.sealed"
	DefaultSourceFile = ".env"
)

// storeProvider builds the passphrase resolution chain for a sealed file:
// a pre-set credential (environment variable, then OS keyring) takes
// priority over interactive prompting.
func storeProvider(sealedPath, prompt string) credentials.Provider {
	abs, err := filepath.Abs(sealedPath)
	if err != nil {
		abs = sealedPath
	}
	return credentials.Chain{
		credentials.Env{},
		credentials.Keyring{StorePath: abs},
		credentials.Terminal{Prompt: prompt},
	}
}

// ObtainPassphraseOrExit resolves a passphrase for the sealed file or exits.
// The caller is responsible for calling crypto.ClearBytes on the result.
func ObtainPassphraseOrExit(sealedPath, prompt string) []byte {
	passphrase, err := storeProvider(sealedPath, prompt).Obtain()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
	return passphrase
}

// HandleError handles common errors consistently
func HandleError(err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		fmt.Fprintf(os.Stderr, "Error: sealed env file not found\n")
		fmt.Fprintf(os.Stderr, "Run 'envseal init' to create one from a plaintext env file\n")
	case errors.Is(err, store.ErrAlreadyExists):
		fmt.Fprintf(os.Stderr, "Error: sealed env file already exists\n")
		fmt.Fprintf(os.Stderr, "Use 'envseal edit' to change it; it will not be overwritten\n")
	case errors.Is(err, crypto.ErrDecryptFailed):
		fmt.Fprintf(os.Stderr, "Error: wrong passphrase or corrupted file\n")
	case errors.Is(err, store.ErrEmptyPlaintext):
		fmt.Fprintf(os.Stderr, "Error: content is empty, refusing to continue\n")
	case errors.Is(err, envfile.ErrKeyNotFound):
		fmt.Fprintf(os.Stderr, "Error: no such key in the sealed env file\n")
	case errors.Is(err, credentials.ErrPassphraseMismatch):
		fmt.Fprintf(os.Stderr, "Error: passphrases do not match, nothing changed\n")
	default:
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
	os.Exit(1)
}

// trackSealedFile adds or refreshes the sealed file's registry entry,
// creating the registry when absent. Used by init and track.
func trackSealedFile(projectDir, sealedPath string) error {
	validator, err := security.New(projectDir)
	if err != nil {
		return err
	}
	defer validator.Close()

	relPath, err := relToProject(projectDir, sealedPath)
	if err != nil {
		return err
	}

	validPath, err := validator.ValidateAndNormalize(relPath)
	if err != nil {
		return err
	}

	reg, err := registry.Open(filepath.Join(projectDir, registry.RegistryFile))
	if err != nil {
		return err
	}
	defer reg.Close()

	initialized, err := reg.IsInitialized()
	if err != nil {
		return err
	}
	if !initialized {
		if err := reg.Initialize(); err != nil {
			return err
		}
	}

	entry, err := registry.EntryFromFile(validPath, filepath.Join(projectDir, filepath.FromSlash(validPath)))
	if err != nil {
		return err
	}

	return reg.Track(entry)
}

// refreshRegistry updates a sealed file's hash after a successful commit,
// but only when the file is already tracked. Failures are non-fatal: the
// registry is a convenience index, not part of the transaction.
func refreshRegistry(projectDir, sealedPath string) {
	registryPath := filepath.Join(projectDir, registry.RegistryFile)
	if _, err := os.Stat(registryPath); err != nil {
		return
	}

	relPath, err := relToProject(projectDir, sealedPath)
	if err != nil {
		return
	}

	reg, err := registry.Open(registryPath)
	if err != nil {
		return
	}
	defer reg.Close()

	existing, err := reg.Get(filepath.ToSlash(relPath))
	if err != nil || existing == nil {
		return
	}

	entry, err := registry.EntryFromFile(existing.Path, sealedPath)
	if err != nil {
		return
	}
	if err := reg.Track(entry); err != nil {
		fmt.Printf("warning: failed to refresh registry entry: %v\n", err)
	}
}

// relToProject converts a possibly absolute sealed-file path to a path
// relative to the project directory.
func relToProject(projectDir, path string) (string, error) {
	if !filepath.IsAbs(path) {
		return path, nil
	}
	absDir, err := filepath.Abs(projectDir)
	if err != nil {
		return "", err
	}
	relPath, err := filepath.Rel(absDir, path)
	if err != nil {
		return "", fmt.Errorf("path %s is outside the project directory", path)
	}
	return relPath, nil
}
