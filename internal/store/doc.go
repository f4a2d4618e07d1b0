// Package store implements the encrypted-file transaction every mutating
// operation follows: decrypt with a passphrase, hand the plaintext to the
// caller (view, edit, export), optionally re-encrypt with a same-or-new
// passphrase, and atomically replace the on-disk ciphertext.
//
// The commit path writes to a scratch file in the destination directory and
// renames it into place; a crash mid-write never corrupts or truncates the
// previously committed ciphertext. Scratch plaintext handed to an external
// editor is removed on every exit path.
//
// Empty content is treated as a failure signal, not a valid state: a decrypt
// or an editing session yielding nothing aborts before any write.
package store
