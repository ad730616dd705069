// Package main is the entry point for the antigravity application.
// It loads configuration, initializes storage, and starts the TUI.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/lightningx004/habit-antigravity/internal/config"
	"github.com/lightningx004/habit-antigravity/internal/kv"
	"github.com/lightningx004/habit-antigravity/internal/tracker"
	"github.com/lightningx004/habit-antigravity/internal/ui"
)

// Version information - set by GoReleaser during build
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const helpText = `antigravity - A habit and task tracker for your terminal

USAGE:
    antigravity [OPTIONS]
    antigravity <command> [ARGS]

COMMANDS:
    backup           Create a snapshot of all data
    backup --list    List available snapshots
    restore NAME     Restore from a specific snapshot
    restore --latest Restore from the most recent snapshot
    export           Write all data as a portable JSON document
    import FILE      Replace all data from an exported document
    report           Generate a daily report (Markdown)
    report --monthly Generate a monthly report
    report -f json   Output report as JSON

OPTIONS:
    -h, --help       Show this help message
    -v, --version    Show version information

DESCRIPTION:
    antigravity tracks daily habits and one-off tasks on a calendar. Habits
    recur every day from their creation date onward; tasks belong to a single
    day. Past days are read-only, future days are open for planning ahead.

KEYBINDINGS:
    Global:
        Tab          Switch between panes
        1, 2, 3      Jump to specific pane
        ?            Show help overlay
        q            Quit

    Calendar Pane:
        h/l, ←/→     Previous/next day
        j/k, ↓/↑     Next/previous week
        [ / ]        Previous/next month
        t            Jump to today

    Day Pane:
        j/k, ↓/↑     Navigate
        a            Add task
        A            Add habit
        d/Space      Toggle done
        x            Delete
        J/K          Move habit down/up
        g/G          Go to top/bottom

DATA STORAGE:
    All data is stored in ~/.antigravity/ as plain JSON files:
        habits.json      - Habit definitions
        completions.json - Per-day completion records
        localTasks.json  - Per-day one-off tasks

CONFIGURATION:
    Optional config file: ~/.config/antigravity/config.yaml
    See documentation for configuration options.

EXAMPLES:
    # Start the app
    antigravity

    # Create a snapshot
    antigravity backup

    # Restore from the latest snapshot
    antigravity restore --latest

    # Export everything to one file
    antigravity export --output habits-export.json

    # Today's report
    antigravity report

    # Monthly report as JSON
    antigravity report --monthly --format json

    # Show version
    antigravity --version
`

func main() {
	// Check for subcommands first (before flag parsing)
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "backup":
			runBackup(os.Args[2:])
			return
		case "restore":
			runRestore(os.Args[2:])
			return
		case "export":
			runExport(os.Args[2:])
			return
		case "import":
			runImport(os.Args[2:])
			return
		case "report":
			runReport(os.Args[2:])
			return
		}
	}

	// Define flags
	showVersion := flag.Bool("version", false, "show version information")
	flag.BoolVar(showVersion, "v", false, "show version information (shorthand)")

	showHelp := flag.Bool("help", false, "show help message")
	flag.BoolVar(showHelp, "h", false, "show help message (shorthand)")

	// Custom usage message
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, helpText)
	}

	flag.Parse()

	// Handle version flag
	if *showVersion {
		fmt.Printf("antigravity version %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built:  %s\n", date)
		os.Exit(0)
	}

	// Handle help flag
	if *showHelp {
		fmt.Print(helpText)
		os.Exit(0)
	}

	// Reject unknown arguments
	if flag.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "Error: unknown arguments: %v\n\n", flag.Args())
		flag.Usage()
		os.Exit(1)
	}

	// Load configuration (from ~/.config/antigravity/config.yaml or defaults)
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

	// Create styles from theme config
	styles := ui.NewStylesFromTheme(&cfg.Theme)

	// Create app config with keys and UX settings
	appCfg := &ui.AppConfig{
		Keys:                  &cfg.Keys,
		ConfirmDeletions:      cfg.UX.ConfirmDeletions,
		ShowStreaks:           cfg.UX.ShowStreaks,
		NarrowLayoutThreshold: cfg.UX.NarrowLayoutThreshold,
	}

	if err := ui.Run(tr, styles, appCfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error running app: %v\n", err)
		os.Exit(1)
	}
}

// openTracker initializes the file store and loads the tracker from it.
func openTracker(cfg *config.Config) (*tracker.Tracker, error) {
	store, err := kv.NewFileStore(cfg.GetDataDir())
	if err != nil {
		return nil, fmt.Errorf("initializing storage: %w", err)
	}
	return tracker.New(store)
}
