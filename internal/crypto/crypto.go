package crypto

import (
	"bytes"
	"crypto/subtle"
	"errors"
	"fmt"
	"io"

	"github.com/ProtonMail/go-crypto/openpgp"
	"github.com/ProtonMail/go-crypto/openpgp/packet"
)

// ErrDecryptFailed covers both a wrong passphrase and corrupted ciphertext.
// The two cases are indistinguishable at this layer and reported identically.
var ErrDecryptFailed = errors.New("wrong passphrase or corrupted data")

func pgpConfig() *packet.Config {
	return &packet.Config{
		DefaultCipher: packet.CipherAES256,
	}
}

// Encrypt produces an OpenPGP symmetrically encrypted blob (AES-256) that any
// standard OpenPGP-capable tool can decrypt given the same passphrase.
func Encrypt(plaintext, passphrase []byte) ([]byte, error) {
	var buf bytes.Buffer

	w, err := openpgp.SymmetricallyEncrypt(&buf, passphrase, nil, pgpConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to start encryption: %w", err)
	}

	if _, err := w.Write(plaintext); err != nil {
		w.Close()
		return nil, fmt.Errorf("failed to encrypt: %w", err)
	}

	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize encryption: %w", err)
	}

	return buf.Bytes(), nil
}

// Decrypt decrypts an OpenPGP symmetrically encrypted blob with the given
// passphrase. Returns ErrDecryptFailed for a wrong passphrase or any form of
// corruption, including a failed integrity check on the decrypted body.
func Decrypt(ciphertext, passphrase []byte) ([]byte, error) {
	attempted := false
	prompt := func(keys []openpgp.Key, symmetric bool) ([]byte, error) {
		// ReadMessage re-invokes the prompt when the previous passphrase
		// failed to produce a valid session key. One attempt only.
		if attempted {
			return nil, ErrDecryptFailed
		}
		attempted = true
		return passphrase, nil
	}

	md, err := openpgp.ReadMessage(bytes.NewReader(ciphertext), nil, prompt, pgpConfig())
	if err != nil {
		return nil, ErrDecryptFailed
	}

	plaintext, err := io.ReadAll(md.UnverifiedBody)
	if err != nil {
		return nil, ErrDecryptFailed
	}

	return plaintext, nil
}

// ClearBytes securely clears a byte slice
func ClearBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// ConstantTimeCompare performs a constant-time comparison of two byte slices
func ConstantTimeCompare(a, b []byte) bool {
	return subtle.ConstantTimeCompare(a, b) == 1
}
