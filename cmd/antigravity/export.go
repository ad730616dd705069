// Package main is the entry point for the antigravity application.
// This file contains the export subcommand handler.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/lightningx004/habit-antigravity/internal/config"
	"github.com/lightningx004/habit-antigravity/internal/fsutil"
)

// exportHelpText is the help message for the export subcommand.
const exportHelpText = `antigravity export - Write all data as a portable document

USAGE:
    antigravity export [OPTIONS]

OPTIONS:
    -o, --output FILE  Write to file instead of stdout
    -h, --help         Show this help message

DESCRIPTION:
    Writes every habit, completion record, and task as one JSON document,
    stamped with the export time. The document can be moved to another
    machine and loaded back with 'antigravity import'.

EXAMPLES:
    # Print the document to stdout
    antigravity export

    # Save to a file
    antigravity export --output habits-export.json
`

// runExport handles the "antigravity export" subcommand.
func runExport(args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)

	outputFlag := fs.String("output", "", "write to file instead of stdout")
	fs.StringVar(outputFlag, "o", "", "write to file (shorthand)")

	helpFlag := fs.Bool("help", false, "show help message")
	fs.BoolVar(helpFlag, "h", false, "show help message (shorthand)")

	fs.Usage = func() {
		fmt.Fprint(os.Stderr, exportHelpText)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if *helpFlag {
		fmt.Print(exportHelpText)
		os.Exit(0)
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

	data, err := tr.ExportJSON()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error exporting data: %v\n", err)
		os.Exit(1)
	}

	if *outputFlag != "" {
		if dir := filepath.Dir(*outputFlag); dir != "." {
			if err := os.MkdirAll(dir, 0700); err != nil {
				fmt.Fprintf(os.Stderr, "Error creating output directory: %v\n", err)
				os.Exit(1)
			}
		}
		if err := fsutil.WriteFileAtomic(*outputFlag, data, 0600); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing to file: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Exported to %s\n", *outputFlag)
	} else {
		fmt.Println(string(data))
	}
}
