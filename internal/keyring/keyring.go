package keyring

import (
	"github.com/zalando/go-keyring"
)

const serviceName = "envseal"

// SavePassphrase stores a sealed file's passphrase in the OS keyring.
// The account is the file's absolute path, so each store caches separately.
func SavePassphrase(storePath string, passphrase string) error {
	return keyring.Set(serviceName, storePath, passphrase)
}

// GetPassphrase retrieves a passphrase from the OS keyring
func GetPassphrase(storePath string) (string, error) {
	return keyring.Get(serviceName, storePath)
}

// DeletePassphrase removes a passphrase from the OS keyring
func DeletePassphrase(storePath string) error {
	return keyring.Delete(serviceName, storePath)
}

// HasPassphrase checks if a passphrase is stored in the keyring
func HasPassphrase(storePath string) bool {
	_, err := keyring.Get(serviceName, storePath)
	return err == nil
}
