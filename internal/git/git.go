package git

import (
	"os/exec"
	"path/filepath"
	"strings"
)

// Hygiene reports how a project's sealed files and their plaintext twins
// interact with git. The sealed ciphertext is safe to commit; the plaintext
// twin never is.
type Hygiene struct {
	IsRepo             bool
	UncommittedSealed  []string // Sealed files not tracked by git (warning)
	TrackedPlaintext   []string // Plaintext twins tracked by git (bad)
	IgnoredPlaintext   []string // Plaintext twins in .gitignore (good)
	UnignoredPlaintext []string // Plaintext twins not ignored (warning)
}

// IsGitRepo checks if the working directory is inside a git repository
func IsGitRepo(workDir string) bool {
	cmd := exec.Command("git", "rev-parse", "--is-inside-work-tree")
	cmd.Dir = workDir
	err := cmd.Run()
	return err == nil
}

// IsTracked checks if a file is tracked by git
func IsTracked(workDir, path string) bool {
	cmd := exec.Command("git", "ls-files", "--", path)
	cmd.Dir = workDir
	output, err := cmd.Output()

	if err != nil {
		return false
	}

	return len(strings.TrimSpace(string(output))) > 0
}

// IsIgnored checks if a file is ignored by git (handles all .gitignore files)
func IsIgnored(workDir, path string) bool {
	cmd := exec.Command("git", "check-ignore", "-q", "--", path)
	cmd.Dir = workDir
	err := cmd.Run()

	// git check-ignore returns exit code 0 if file is ignored
	return err == nil
}

// PlaintextTwin returns the plaintext path a sealed file corresponds to:
// the ".sealed" suffix stripped, so ".env.sealed" pairs with ".env".
// Sealed files without the suffix have no derivable twin and return "".
func PlaintextTwin(sealedPath string) string {
	if strings.HasSuffix(sealedPath, ".sealed") {
		return strings.TrimSuffix(sealedPath, ".sealed")
	}
	return ""
}

// CheckHygiene inspects each tracked sealed file and its plaintext twin.
func CheckHygiene(workDir string, sealedPaths []string) *Hygiene {
	h := &Hygiene{IsRepo: IsGitRepo(workDir)}
	if !h.IsRepo {
		return h
	}

	for _, sealed := range sealedPaths {
		if !IsTracked(workDir, sealed) {
			h.UncommittedSealed = append(h.UncommittedSealed, sealed)
		}

		twin := PlaintextTwin(sealed)
		if twin == "" {
			continue
		}
		twinPath := filepath.FromSlash(twin)

		if IsTracked(workDir, twinPath) {
			h.TrackedPlaintext = append(h.TrackedPlaintext, twin)
			continue
		}
		if IsIgnored(workDir, twinPath) {
			h.IgnoredPlaintext = append(h.IgnoredPlaintext, twin)
		} else {
			h.UnignoredPlaintext = append(h.UnignoredPlaintext, twin)
		}
	}

	return h
}
