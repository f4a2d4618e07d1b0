package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"envseal/internal/registry"
	"envseal/internal/security"
)

// Track adds an existing sealed file to the project registry so status can
// report on it.
func Track(sealedPath string) {
	if _, err := os.Stat(sealedPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot track %s: %s\n", sealedPath, err)
		os.Exit(1)
	}

	if err := trackSealedFile(".", sealedPath); err != nil {
		HandleError(err)
	}

	fmt.Printf("✓ Tracking %s\n", sealedPath)
}

// Untrack removes a sealed file from the project registry. The sealed file
// itself is left alone.
func Untrack(sealedPath string) {
	registryPath := filepath.Join(".", registry.RegistryFile)
	if _, err := os.Stat(registryPath); err != nil {
		fmt.Println("No tracked sealed files")
		return
	}

	validator, err := security.New(".")
	if err != nil {
		HandleError(err)
	}
	defer validator.Close()

	relPath, err := relToProject(".", sealedPath)
	if err != nil {
		HandleError(err)
	}

	validPath, err := validator.ValidateAndNormalize(relPath)
	if err != nil {
		HandleError(err)
	}

	reg, err := registry.Open(registryPath)
	if err != nil {
		HandleError(err)
	}
	defer reg.Close()

	removed, err := reg.Untrack(validPath)
	if err != nil {
		HandleError(err)
	}

	if !removed {
		fmt.Printf("%s was not tracked\n", sealedPath)
		return
	}

	fmt.Printf("✓ Stopped tracking %s\n", sealedPath)
}
