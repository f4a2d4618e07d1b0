// Package git shells out to git for hygiene checks: a sealed file should be
// committed, while its plaintext twin must never be tracked and should be
// ignored. Used by the status command; absence of git degrades gracefully.
package git
