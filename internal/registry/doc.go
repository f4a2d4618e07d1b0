// Package registry provides the BBolt index of tracked sealed files.
//
// Database structure uses two buckets:
//   - config: version and timestamps
//   - index: per sealed file: path, size, mtime, ciphertext hash
//
// Nothing in the registry is secret — it indexes ciphertext files — so
// status and ls work without a passphrase. BBolt provides ACID
// transactions, file locking, and corruption detection.
package registry
