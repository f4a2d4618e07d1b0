// Package envfile implements the plaintext configuration format that lives
// inside a sealed file: an ordered sequence of comment lines and key=value
// assignments.
//
// Parsing is deliberately tolerant: lines without '=' or with an empty key
// are skipped. Blank lines and comments not followed by a variable are
// dropped; re-serialization produces the compacted canonical form. This
// normalization is lossy by design — downstream commands rely on it.
//
// The export projector renders variables as `export KEY=VALUE` statements
// quoted to survive POSIX shell evaluation.
package envfile
