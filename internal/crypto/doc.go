// Package crypto provides the symmetric cipher gateway for envseal.
//
// Encryption produces an OpenPGP symmetrically encrypted blob using AES-256,
// so a sealed file is decryptable by any standard OpenPGP tool:
//
//	gpg --decrypt .env.sealed
//
// The passphrase is handed to the OpenPGP string-to-key machinery as-is;
// envseal performs no key derivation of its own.
//
// Memory safety:
//   - Use ClearBytes() to zero sensitive data after use
package crypto
