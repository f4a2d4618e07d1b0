package credentials

import (
	"errors"
	"fmt"
	"os"
	"syscall"

	"envseal/internal/crypto"
	"envseal/internal/keyring"

	"golang.org/x/term"
)

// EnvVar is the environment variable checked before any interactive prompt.
const EnvVar = "ENVSEAL_PASSPHRASE"

var (
	// ErrPassphraseMismatch is returned when a confirmation prompt does not
	// byte-exactly match the first entry.
	ErrPassphraseMismatch = errors.New("passphrases do not match")

	// ErrNoPassphrase is returned by a provider that has nothing to offer.
	ErrNoPassphrase = errors.New("no passphrase available")
)

// Provider supplies the passphrase for one store operation. Callers thread a
// Provider through explicitly instead of caching credentials in process-wide
// state. The caller owns the returned bytes and should clear them after use.
type Provider interface {
	Obtain() ([]byte, error)
}

// Static returns a pre-supplied passphrase.
type Static []byte

func (s Static) Obtain() ([]byte, error) {
	if len(s) == 0 {
		return nil, ErrNoPassphrase
	}
	out := make([]byte, len(s))
	copy(out, s)
	return out, nil
}

// Env reads the passphrase from an environment variable (EnvVar by default).
type Env struct {
	Var string
}

func (e Env) Obtain() ([]byte, error) {
	name := e.Var
	if name == "" {
		name = EnvVar
	}
	value := os.Getenv(name)
	if value == "" {
		return nil, ErrNoPassphrase
	}
	// Copy so clearing the result cannot disturb the process environment.
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

// Keyring reads a passphrase previously cached by set-pass for the sealed
// file at StorePath (absolute path).
type Keyring struct {
	StorePath string
}

func (k Keyring) Obtain() ([]byte, error) {
	passphrase, err := keyring.GetPassphrase(k.StorePath)
	if err != nil || passphrase == "" {
		return nil, ErrNoPassphrase
	}
	return []byte(passphrase), nil
}

// Terminal prompts on the controlling terminal with echo disabled.
type Terminal struct {
	Prompt string
}

func (t Terminal) Obtain() ([]byte, error) {
	return ReadPassphrase(t.Prompt)
}

// Chain tries each provider in order and returns the first passphrase found.
// Providers failing with ErrNoPassphrase are skipped; any other error stops
// the chain.
type Chain []Provider

func (c Chain) Obtain() ([]byte, error) {
	for _, p := range c {
		passphrase, err := p.Obtain()
		if err == nil {
			return passphrase, nil
		}
		if !errors.Is(err, ErrNoPassphrase) {
			return nil, err
		}
	}
	return nil, ErrNoPassphrase
}

// ReadPassphrase reads a passphrase from the terminal without echoing
func ReadPassphrase(prompt string) ([]byte, error) {
	fmt.Print(prompt)

	passphrase, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()

	if err != nil {
		return nil, fmt.Errorf("failed to read passphrase: %w", err)
	}

	return passphrase, nil
}

// ReadPassphraseConfirm reads a passphrase twice and requires a byte-exact
// match before returning it.
func ReadPassphraseConfirm() ([]byte, error) {
	first, err := ReadPassphrase("Enter new passphrase: ")
	if err != nil {
		return nil, err
	}
	defer crypto.ClearBytes(first)

	second, err := ReadPassphrase("Confirm new passphrase: ")
	if err != nil {
		return nil, err
	}
	defer crypto.ClearBytes(second)

	if !crypto.ConstantTimeCompare(first, second) {
		return nil, ErrPassphraseMismatch
	}

	result := make([]byte, len(first))
	copy(result, first)
	return result, nil
}
