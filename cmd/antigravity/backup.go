// Package main is the entry point for the antigravity application.
// This file contains the backup subcommand handler.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/lightningx004/habit-antigravity/internal/backup"
	"github.com/lightningx004/habit-antigravity/internal/config"
)

// backupHelpText is the help message for the backup subcommand.
const backupHelpText = `antigravity backup - Create and manage snapshots

USAGE:
    antigravity backup [OPTIONS]

OPTIONS:
    -l, --list       List available snapshots
    --prune N        Delete all but the N most recent snapshots
    -h, --help       Show this help message

DESCRIPTION:
    Creates a timestamped snapshot of all your data files (habits,
    completions, tasks). Snapshots are stored in ~/.antigravity/backups/
    and can be restored later.

EXAMPLES:
    # Create a new snapshot
    antigravity backup

    # List all available snapshots
    antigravity backup --list

    # Keep only the ten most recent snapshots
    antigravity backup --prune 10
`

// runBackup handles the "antigravity backup" subcommand.
func runBackup(args []string) {
	fs := flag.NewFlagSet("backup", flag.ExitOnError)

	listFlag := fs.Bool("list", false, "list available snapshots")
	fs.BoolVar(listFlag, "l", false, "list available snapshots (shorthand)")

	pruneFlag := fs.Int("prune", 0, "delete all but the N most recent snapshots")

	helpFlag := fs.Bool("help", false, "show help message")
	fs.BoolVar(helpFlag, "h", false, "show help message (shorthand)")

	fs.Usage = func() {
		fmt.Fprint(os.Stderr, backupHelpText)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if *helpFlag {
		fmt.Print(backupHelpText)
		os.Exit(0)
	}

	// Load config to get data directory
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	manager := backup.NewManager(cfg.GetDataDir(), version)

	switch {
	case *listFlag:
		listBackups(manager)
	case *pruneFlag > 0:
		pruneBackups(manager, *pruneFlag)
	default:
		createBackup(manager)
	}
}

// createBackup creates a new snapshot and displays the result.
func createBackup(manager *backup.Manager) {
	name, err := manager.Create()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating backup: %v\n", err)
		os.Exit(1)
	}

	info, err := manager.GetBackup(name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading backup info: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✓ Backup created: %s\n", name)
	fmt.Printf("  Habits: %d, Tracked days: %d, Task days: %d\n",
		info.Stats["habits"], info.Stats["completion_days"], info.Stats["task_days"])
	fmt.Printf("  Location: %s\n", info.Path)
}

// listBackups lists all available snapshots.
func listBackups(manager *backup.Manager) {
	backups, err := manager.List()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error listing backups: %v\n", err)
		os.Exit(1)
	}

	if len(backups) == 0 {
		fmt.Println("No backups available.")
		fmt.Println("Run 'antigravity backup' to create one.")
		return
	}

	fmt.Println("Available backups:")
	for _, b := range backups {
		age := formatAge(b.CreatedAt)
		fmt.Printf("  %s  (%s)   Habits: %d, Tracked days: %d\n",
			b.Name, age, b.Stats["habits"], b.Stats["completion_days"])
	}
}

// pruneBackups deletes all but the keepCount newest snapshots.
func pruneBackups(manager *backup.Manager, keepCount int) {
	deleted, err := manager.Prune(keepCount)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error pruning backups: %v\n", err)
		os.Exit(1)
	}
	if deleted == 0 {
		fmt.Printf("Nothing to prune; %d or fewer backups exist.\n", keepCount)
		return
	}
	fmt.Printf("✓ Pruned %d old backup(s), kept the %d most recent.\n", deleted, keepCount)
}

// formatAge returns a human-readable age string.
func formatAge(t time.Time) string {
	d := time.Since(t)

	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		mins := int(d.Minutes())
		if mins == 1 {
			return "1 minute ago"
		}
		return fmt.Sprintf("%d minutes ago", mins)
	case d < 24*time.Hour:
		hours := int(d.Hours())
		if hours == 1 {
			return "1 hour ago"
		}
		return fmt.Sprintf("%d hours ago", hours)
	case d < 7*24*time.Hour:
		days := int(d.Hours() / 24)
		if days == 1 {
			return "1 day ago"
		}
		return fmt.Sprintf("%d days ago", days)
	default:
		weeks := int(d.Hours() / 24 / 7)
		if weeks == 1 {
			return "1 week ago"
		}
		return fmt.Sprintf("%d weeks ago", weeks)
	}
}
