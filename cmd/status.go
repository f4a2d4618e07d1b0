package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"envseal/internal/git"
	"envseal/internal/registry"
	"envseal/internal/security"
)

// Status lists every tracked sealed file and whether its ciphertext changed
// since it was last tracked or committed. Works entirely from the registry
// hashes, so no passphrase is needed.
func Status(projectDir string) {
	registryPath := filepath.Join(projectDir, registry.RegistryFile)
	if _, err := os.Stat(registryPath); err != nil {
		fmt.Println("No tracked sealed files")
		fmt.Println("Run 'envseal track <file>' or 'envseal init' first")
		return
	}

	reg, err := registry.Open(registryPath)
	if err != nil {
		HandleError(err)
	}
	defer reg.Close()

	entries, err := reg.List()
	if err != nil {
		HandleError(err)
	}

	if len(entries) == 0 {
		fmt.Println("No tracked sealed files")
		return
	}

	validator, err := security.New(projectDir)
	if err != nil {
		HandleError(err)
	}
	defer validator.Close()

	var missing, modified, unchanged int
	var sealedPaths []string

	for _, entry := range entries {
		if _, err := validator.ValidateIndexedPath(entry.Path); err != nil {
			fmt.Printf("  !  %s (invalid registry path: %v)\n", entry.Path, err)
			continue
		}
		sealedPaths = append(sealedPaths, entry.Path)

		absPath := filepath.Join(projectDir, filepath.FromSlash(entry.Path))
		hash, err := registry.HashFile(absPath)
		switch {
		case err != nil:
			fmt.Printf("  ?  %s (missing)\n", entry.Path)
			missing++
		case hash != entry.Hash:
			fmt.Printf("  M  %s (modified since last seal)\n", entry.Path)
			modified++
		default:
			fmt.Printf("     %s\n", entry.Path)
			unchanged++
		}
	}

	fmt.Printf("\n%d tracked, %d unchanged, %d modified, %d missing\n",
		len(entries), unchanged, modified, missing)

	printHygiene(git.CheckHygiene(projectDir, sealedPaths))
}

func printHygiene(h *git.Hygiene) {
	if !h.IsRepo {
		return
	}

	for _, path := range h.TrackedPlaintext {
		fmt.Printf("warning: plaintext %s is tracked by git, remove it from the index\n", path)
	}
	for _, path := range h.UnignoredPlaintext {
		fmt.Printf("warning: plaintext %s is not in .gitignore\n", path)
	}
	for _, path := range h.UncommittedSealed {
		fmt.Printf("note: sealed %s is not committed to git\n", path)
	}
}
