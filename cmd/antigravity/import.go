// Package main is the entry point for the antigravity application.
// This file contains the import subcommand handler.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/lightningx004/habit-antigravity/internal/backup"
	"github.com/lightningx004/habit-antigravity/internal/config"
	"github.com/lightningx004/habit-antigravity/internal/tracker"
)

// importHelpText is the help message for the import subcommand.
const importHelpText = `antigravity import - Replace all data from an exported document

USAGE:
    antigravity import [OPTIONS] FILE

OPTIONS:
    --force, -f    Skip confirmation prompt
    -h, --help     Show this help message

ARGUMENTS:
    FILE           A JSON document produced by 'antigravity export'.
                   Documents from older versions of the app are migrated
                   on the way in.

DESCRIPTION:
    Replaces every habit, completion record, and task with the contents of
    the given document. Current data is snapshotted first so the import can
    be undone with 'antigravity restore --latest'.

EXAMPLES:
    # Import from an exported document
    antigravity import habits-export.json

    # Import without confirmation prompt
    antigravity import --force habits-export.json
`

// runImport handles the "antigravity import" subcommand.
func runImport(args []string) {
	fs := flag.NewFlagSet("import", flag.ExitOnError)

	forceFlag := fs.Bool("force", false, "skip confirmation prompt")
	fs.BoolVar(forceFlag, "f", false, "skip confirmation prompt (shorthand)")

	helpFlag := fs.Bool("help", false, "show help message")
	fs.BoolVar(helpFlag, "h", false, "show help message (shorthand)")

	fs.Usage = func() {
		fmt.Fprint(os.Stderr, importHelpText)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if *helpFlag {
		fmt.Print(importHelpText)
		os.Exit(0)
	}

	if fs.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Error: missing file argument\n\n")
		fmt.Fprintf(os.Stderr, "Usage: antigravity import FILE\n")
		fmt.Fprintf(os.Stderr, "\nRun 'antigravity import --help' for more information.\n")
		os.Exit(1)
	}
	filePath := fs.Arg(0)

	raw, err := os.ReadFile(filePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	tr, err := openTracker(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading data: %v\n", err)
		os.Exit(1)
	}

	// Confirm unless --force is set
	if !*forceFlag {
		fmt.Printf("Importing %s\n", filePath)
		fmt.Println("⚠ This will replace your current data.")
		fmt.Print("Continue? [y/N] ")

		reader := bufio.NewReader(os.Stdin)
		response, err := reader.ReadString('\n')
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading input: %v\n", err)
			os.Exit(1)
		}

		response = strings.TrimSpace(strings.ToLower(response))
		if response != "y" && response != "yes" {
			fmt.Println("Import cancelled.")
			os.Exit(0)
		}
	}

	// Snapshot current data so the import can be undone.
	manager := backup.NewManager(cfg.GetDataDir(), version)
	if name, err := manager.Create(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not create safety backup: %v\n", err)
	} else {
		fmt.Printf("✓ Safety backup created: %s\n", name)
	}

	if err := tr.Import(raw); err != nil {
		if errors.Is(err, tracker.ErrNotBackup) {
			fmt.Fprintf(os.Stderr, "Error: %s does not look like an antigravity export\n", filePath)
		} else {
			fmt.Fprintf(os.Stderr, "Error importing: %v\n", err)
		}
		os.Exit(1)
	}

	doc := tr.Export()
	fmt.Printf("✓ Imported %d habit(s) across %d tracked day(s)\n",
		len(doc.Habits), len(doc.Completions))
}
