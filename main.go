package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"envseal/cmd"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "init":
		runInit(ctx, os.Args[2:])
	case "view":
		runView(ctx, os.Args[2:])
	case "export":
		runExport(ctx, os.Args[2:])
	case "edit":
		runEdit(ctx, os.Args[2:])
	case "update-pass":
		runUpdatePass(ctx, os.Args[2:])
	case "set-pass":
		runSetPass(ctx, os.Args[2:])
	case "forget-pass":
		runForgetPass(ctx, os.Args[2:])
	case "diff":
		runDiff(ctx, os.Args[2:])
	case "status", "ls":
		runStatus(ctx, os.Args[2:])
	case "track":
		runTrack(ctx, os.Args[2:])
	case "untrack":
		runUntrack(ctx, os.Args[2:])
	case "completion":
		runCompletion(ctx, os.Args[2:])
	case "help", "-h", "--help":
		if len(os.Args) <= 2 {
			printUsage()
			return
		}
		printCommandHelp(os.Args[2])
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func sealedFlag(fs *flag.FlagSet) *string {
	return fs.String("f", cmd.DefaultSealedFile, "Sealed env file to operate on")
}

func runInit(_ context.Context, args []string) {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	sealed := sealedFlag(fs)
	source := fs.String("s", cmd.DefaultSourceFile, "Plaintext env file to seal")
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	cmd.Init(*source, *sealed)
}

func runView(_ context.Context, args []string) {
	fs := flag.NewFlagSet("view", flag.ExitOnError)
	sealed := sealedFlag(fs)
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	key := ""
	if len(fs.Args()) > 0 {
		key = fs.Args()[0]
	}
	cmd.View(*sealed, key)
}

func runExport(_ context.Context, args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	sealed := sealedFlag(fs)
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	key := ""
	if len(fs.Args()) > 0 {
		key = fs.Args()[0]
	}
	cmd.Export(*sealed, key)
}

func runEdit(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("edit", flag.ExitOnError)
	sealed := sealedFlag(fs)
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	cmd.Edit(ctx, *sealed)
}

func runUpdatePass(_ context.Context, args []string) {
	fs := flag.NewFlagSet("update-pass", flag.ExitOnError)
	sealed := sealedFlag(fs)
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	cmd.UpdatePass(*sealed)
}

func runSetPass(_ context.Context, args []string) {
	fs := flag.NewFlagSet("set-pass", flag.ExitOnError)
	sealed := sealedFlag(fs)
	check := fs.Bool("check", false, "Report whether a passphrase is cached, without storing one")
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	if *check {
		cmd.PassStatus(*sealed)
		return
	}
	cmd.SetPass(*sealed)
}

func runForgetPass(_ context.Context, args []string) {
	fs := flag.NewFlagSet("forget-pass", flag.ExitOnError)
	sealed := sealedFlag(fs)
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	cmd.ForgetPass(*sealed)
}

func runDiff(_ context.Context, args []string) {
	fs := flag.NewFlagSet("diff", flag.ExitOnError)
	sealed := sealedFlag(fs)
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	cmd.Diff(*sealed)
}

func runStatus(_ context.Context, args []string) {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	cmd.Status(".")
}

func runTrack(_ context.Context, args []string) {
	fs := flag.NewFlagSet("track", flag.ExitOnError)
	sealed := sealedFlag(fs)
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	path := *sealed
	if len(fs.Args()) > 0 {
		path = fs.Args()[0]
	}
	cmd.Track(path)
}

func runUntrack(_ context.Context, args []string) {
	fs := flag.NewFlagSet("untrack", flag.ExitOnError)
	sealed := sealedFlag(fs)
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	path := *sealed
	if len(fs.Args()) > 0 {
		path = fs.Args()[0]
	}
	cmd.Untrack(path)
}

func runCompletion(_ context.Context, args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: envseal completion <bash|zsh|fish>")
		os.Exit(1)
	}
	cmd.Completion(args[0])
}

func printUsage() {
	fmt.Println("envseal - Encrypted env files that live in your repo")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  envseal <command> [arguments]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  init         Seal a plaintext env file into an encrypted one")
	fmt.Println("  view         Decrypt and print the sealed env file (or one key)")
	fmt.Println("  export       Print shell export statements for eval")
	fmt.Println("  edit         Edit the sealed env file in $EDITOR")
	fmt.Println("  update-pass  Change the passphrase")
	fmt.Println("  set-pass     Cache the passphrase in the OS keyring")
	fmt.Println("  forget-pass  Remove the passphrase from the OS keyring")
	fmt.Println("  diff         Compare sealed content with the plaintext twin")
	fmt.Println("  status, ls   Show tracked sealed files and git hygiene")
	fmt.Println("  track        Start tracking a sealed file")
	fmt.Println("  untrack      Stop tracking a sealed file")
	fmt.Println("  completion   Generate shell completions")
	fmt.Println("  help         Show help for a command")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  envseal init                     # Seal .env into .env.sealed")
	fmt.Println("  eval \"$(envseal export)\"         # Load variables into the shell")
	fmt.Println("  envseal view DATABASE_URL        # Print a single value")
	fmt.Println("  envseal edit                     # Edit without leaving plaintext behind")
	fmt.Println()
	fmt.Println("Use 'envseal help <command>' for more information about a command.")
}

func printCommandHelp(command string) {
	switch command {
	case "init":
		fmt.Println("envseal init [-s <plaintext>] [-f <sealed>]")
		fmt.Println()
		fmt.Println("Encrypts a plaintext env file into a sealed file that is safe to")
		fmt.Println("commit. Refuses to overwrite an existing sealed file.")
		fmt.Println("Prompts twice for a passphrase unless ENVSEAL_PASSPHRASE is set.")
		fmt.Println()
		fmt.Println("Examples:")
		fmt.Println("  envseal init                     # .env -> .env.sealed")
		fmt.Println("  envseal init -s prod.env -f prod.env.sealed")
	case "view":
		fmt.Println("envseal view [-f <sealed>] [<key>]")
		fmt.Println()
		fmt.Println("Decrypts the sealed file and prints it. With a key argument, prints")
		fmt.Println("only that variable's value (first occurrence on duplicates).")
		fmt.Println()
		fmt.Println("Examples:")
		fmt.Println("  envseal view")
		fmt.Println("  envseal view DATABASE_URL")
	case "export":
		fmt.Println("envseal export [-f <sealed>] [<key>]")
		fmt.Println()
		fmt.Println("Prints 'export KEY=value' statements with shell-safe quoting,")
		fmt.Println("meant to be eval'd. With a key argument, exports only that variable.")
		fmt.Println()
		fmt.Println("Examples:")
		fmt.Println("  eval \"$(envseal export)\"")
		fmt.Println("  eval \"$(envseal export DATABASE_URL)\"")
	case "edit":
		fmt.Println("envseal edit [-f <sealed>]")
		fmt.Println()
		fmt.Println("Decrypts into a temporary file, opens $VISUAL or $EDITOR on it,")
		fmt.Println("and re-encrypts the result. The temporary plaintext is removed")
		fmt.Println("whether the edit succeeds or not. An emptied file is rejected.")
		fmt.Println()
		fmt.Println("Example:")
		fmt.Println("  envseal edit")
	case "update-pass":
		fmt.Println("envseal update-pass [-f <sealed>]")
		fmt.Println()
		fmt.Println("Changes the passphrase. Always prompts for the current passphrase")
		fmt.Println("and for the new one twice, even when a passphrase is cached.")
		fmt.Println("Cached credentials are not updated automatically.")
		fmt.Println()
		fmt.Println("Example:")
		fmt.Println("  envseal update-pass")
	case "set-pass":
		fmt.Println("envseal set-pass [-f <sealed>] [-check]")
		fmt.Println()
		fmt.Println("Verifies a passphrase against the sealed file and stores it in the")
		fmt.Println("OS keyring so later commands do not prompt. Storing a passphrase")
		fmt.Println("is opt-in; nothing else ever writes it to disk.")
		fmt.Println()
		fmt.Println("Flags:")
		fmt.Println("  -check    Report whether a passphrase is cached, without storing one")
		fmt.Println()
		fmt.Println("Examples:")
		fmt.Println("  envseal set-pass")
		fmt.Println("  envseal set-pass -check")
	case "forget-pass":
		fmt.Println("envseal forget-pass [-f <sealed>]")
		fmt.Println()
		fmt.Println("Removes the sealed file's passphrase from the OS keyring.")
		fmt.Println()
		fmt.Println("Example:")
		fmt.Println("  envseal forget-pass")
	case "diff":
		fmt.Println("envseal diff [-f <sealed>]")
		fmt.Println()
		fmt.Println("Decrypts the sealed file and compares it line by line against its")
		fmt.Println("plaintext twin (the path with the .sealed suffix stripped).")
		fmt.Println()
		fmt.Println("Example:")
		fmt.Println("  envseal diff")
	case "status", "ls":
		fmt.Println("envseal status")
		fmt.Println()
		fmt.Println("Lists tracked sealed files and whether each changed since it was")
		fmt.Println("last sealed, using stored content hashes. Also warns when a")
		fmt.Println("plaintext twin is tracked by git or missing from .gitignore.")
		fmt.Println()
		fmt.Println("Does not require a passphrase.")
		fmt.Println()
		fmt.Println("Example:")
		fmt.Println("  envseal status")
	case "track":
		fmt.Println("envseal track <sealed-file>")
		fmt.Println()
		fmt.Println("Adds an existing sealed file to the project registry so status")
		fmt.Println("can report on it. init tracks its sealed file automatically.")
		fmt.Println()
		fmt.Println("Example:")
		fmt.Println("  envseal track prod.env.sealed")
	case "untrack":
		fmt.Println("envseal untrack <sealed-file>")
		fmt.Println()
		fmt.Println("Removes a sealed file from the project registry. The file itself")
		fmt.Println("is not touched.")
		fmt.Println()
		fmt.Println("Example:")
		fmt.Println("  envseal untrack prod.env.sealed")
	case "completion":
		fmt.Println("envseal completion <bash|zsh|fish>")
		fmt.Println()
		fmt.Println("Outputs shell completion script for the specified shell.")
		fmt.Println()
		fmt.Println("Setup:")
		fmt.Println("  # Bash - add to ~/.bashrc")
		fmt.Println("  eval \"$(envseal completion bash)\"")
		fmt.Println()
		fmt.Println("  # Zsh - add to ~/.zshrc")
		fmt.Println("  eval \"$(envseal completion zsh)\"")
		fmt.Println()
		fmt.Println("  # Fish - add to ~/.config/fish/config.fish")
		fmt.Println("  envseal completion fish | source")
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
	}
}
