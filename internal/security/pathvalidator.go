package security

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	ErrPathEscapes  = errors.New("path escapes project directory")
	ErrAbsolutePath = errors.New("absolute paths are not allowed")
	ErrEmptyPath    = errors.New("empty path not allowed")
)

// PathValidator confines registry paths to the project directory using
// os.Root. Sealed-file paths enter the registry from the command line and
// come back out of the index; both directions are validated so a tampered
// index cannot point status or track at files outside the project.
type PathValidator struct {
	projectRoot *os.Root
	projectPath string
}

// New creates a PathValidator for the project at the given path.
func New(projectPath string) (*PathValidator, error) {
	absPath, err := filepath.Abs(projectPath)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path: %w", err)
	}

	root, err := os.OpenRoot(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open project root: %w", err)
	}

	return &PathValidator{
		projectRoot: root,
		projectPath: absPath,
	}, nil
}

// Close releases resources held by the PathValidator.
func (pv *PathValidator) Close() error {
	if pv.projectRoot != nil {
		return pv.projectRoot.Close()
	}
	return nil
}

// ValidateAndNormalize validates a user-provided path and returns a
// normalized relative path suitable for the registry index. It rejects
// empty paths, absolute paths, paths escaping the project (..), and
// anything filepath.IsLocal refuses (Windows reserved names included).
func (pv *PathValidator) ValidateAndNormalize(userPath string) (string, error) {
	if userPath == "" {
		return "", ErrEmptyPath
	}

	if !filepath.IsLocal(userPath) {
		if filepath.IsAbs(userPath) {
			return "", fmt.Errorf("%w: %s", ErrAbsolutePath, userPath)
		}
		return "", fmt.Errorf("%w: %s", ErrPathEscapes, userPath)
	}

	cleanPath := filepath.Clean(userPath)
	if !filepath.IsLocal(cleanPath) {
		return "", fmt.Errorf("%w: %s", ErrPathEscapes, cleanPath)
	}

	// Containment double-check after lexical cleaning.
	absPath := filepath.Join(pv.projectPath, cleanPath)
	relPath, err := filepath.Rel(pv.projectPath, absPath)
	if err != nil {
		return "", fmt.Errorf("failed to compute relative path: %w", err)
	}
	if strings.HasPrefix(relPath, "..") || filepath.IsAbs(relPath) {
		return "", fmt.Errorf("%w: %s", ErrPathEscapes, userPath)
	}

	// Forward slashes in the index, platform-independent.
	return filepath.ToSlash(relPath), nil
}

// ValidateIndexedPath validates a path read back from the registry index,
// applying the same rules as ValidateAndNormalize so tampered index entries
// are filtered out rather than followed.
func (pv *PathValidator) ValidateIndexedPath(storedPath string) (string, error) {
	return pv.ValidateAndNormalize(filepath.FromSlash(storedPath))
}

// StatInRoot stats a validated path without ever leaving the project root.
func (pv *PathValidator) StatInRoot(path string) (os.FileInfo, error) {
	platformPath := filepath.FromSlash(path)
	if _, err := pv.ValidateAndNormalize(platformPath); err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}
	return pv.projectRoot.Stat(platformPath)
}
