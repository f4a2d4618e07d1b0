package store

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"runtime"
)

// getEditor returns the editor to use, checking environment variables with fallback
func getEditor() string {
	// Check VISUAL first (modern best practice)
	if editor := os.Getenv("VISUAL"); editor != "" {
		return editor
	}
	// Fall back to EDITOR
	if editor := os.Getenv("EDITOR"); editor != "" {
		return editor
	}
	// Platform-specific defaults
	if runtime.GOOS == "windows" {
		return "notepad"
	}
	return "vi"
}

// editInScratchFile writes plaintext to a 0600 scratch file, blocks on the
// user's editor, and returns the edited content. The scratch file is removed
// on every exit path; empty results are refused before anything is
// persisted.
func editInScratchFile(ctx context.Context, plaintext []byte) ([]byte, error) {
	tmp, err := os.CreateTemp("", "envseal-edit-*.env")
	if err != nil {
		return nil, fmt.Errorf("failed to create scratch file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if err := tmp.Chmod(FilePermSecure); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("failed to set scratch file permissions: %w", err)
	}

	if _, err := tmp.Write(plaintext); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("failed to write scratch file: %w", err)
	}

	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("failed to close scratch file: %w", err)
	}

	if err := invokeEditor(ctx, tmpPath); err != nil {
		return nil, err
	}

	edited, err := os.ReadFile(tmpPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read edited content: %w", err)
	}

	if len(bytes.TrimSpace(edited)) == 0 {
		return nil, ErrEmptyPlaintext
	}

	return edited, nil
}

// invokeEditor opens the specified file in the user's editor and waits for
// the editor process to exit.
func invokeEditor(ctx context.Context, filename string) error {
	editor := getEditor()

	if _, err := exec.LookPath(editor); err != nil {
		return fmt.Errorf("editor '%s' not found: %w\nPlease set VISUAL or EDITOR environment variable", editor, err)
	}

	cmd := exec.CommandContext(ctx, editor, filename)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("editor exited with error: %w", err)
	}

	return nil
}
