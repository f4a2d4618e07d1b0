package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"envseal/internal/crypto"
	"envseal/internal/git"
	"envseal/internal/store"
)

// Diff compares the sealed file's decrypted content against its plaintext
// twin (".env.sealed" against ".env") and prints a line diff. Lines only in
// the sealed file are prefixed "-", lines only in the plaintext "+".
func Diff(sealedPath string) {
	s := store.New(sealedPath)

	twin := git.PlaintextTwin(sealedPath)
	if twin == "" {
		fmt.Fprintf(os.Stderr, "Error: %s has no plaintext twin to compare against\n", sealedPath)
		os.Exit(1)
	}

	plaintext, err := os.ReadFile(twin)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot read %s: %s\n", twin, err)
		os.Exit(1)
	}

	passphrase := ObtainPassphraseOrExit(sealedPath, "Enter passphrase: ")
	defer crypto.ClearBytes(passphrase)

	sealed, err := s.LoadRaw(passphrase)
	if err != nil {
		HandleError(err)
	}

	if string(sealed) == string(plaintext) {
		fmt.Println("No changes detected")
		return
	}

	dmp := diffmatchpatch.New()
	a, b, lineIndex := dmp.DiffLinesToChars(string(sealed), string(plaintext))
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lineIndex)

	fmt.Printf("--- %s (decrypted)\n", sealedPath)
	fmt.Printf("+++ %s\n", twin)
	for _, d := range diffs {
		prefix := "  "
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "- "
		case diffmatchpatch.DiffInsert:
			prefix = "+ "
		}
		for _, line := range strings.Split(strings.TrimSuffix(d.Text, "\n"), "\n") {
			fmt.Println(prefix + line)
		}
	}
}
