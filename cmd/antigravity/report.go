// Package main is the entry point for the antigravity application.
// This file contains the report subcommand handler.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/lightningx004/habit-antigravity/internal/config"
	"github.com/lightningx004/habit-antigravity/internal/fsutil"
	"github.com/lightningx004/habit-antigravity/internal/reports"
)

// reportHelpText is the help message for the report subcommand.
const reportHelpText = `antigravity report - Generate habit reports

USAGE:
    antigravity report [OPTIONS] [DATE]

OPTIONS:
    -d, --daily        Generate daily report (default)
    -m, --monthly      Generate monthly report
    -f, --format FMT   Output format: markdown (default) or json
    -o, --output FILE  Write to file instead of stdout
    -h, --help         Show this help message

ARGUMENTS:
    DATE               Date for report (YYYY-MM-DD). Defaults to today.
                       For monthly reports, any day of the month works.

DESCRIPTION:
    Summarizes habit completions, streaks, and tasks. Reports can be output
    as Markdown (human-readable) or JSON (machine-readable).

EXAMPLES:
    # Today's report in Markdown
    antigravity report

    # Specific date
    antigravity report 2025-12-14

    # Monthly report
    antigravity report --monthly

    # JSON format
    antigravity report --format json

    # Monthly JSON report to file
    antigravity report --monthly --format json --output december.json
`

// runReport handles the "antigravity report" subcommand.
func runReport(args []string) {
	fs := flag.NewFlagSet("report", flag.ExitOnError)

	dailyFlag := fs.Bool("daily", false, "generate daily report")
	fs.BoolVar(dailyFlag, "d", false, "generate daily report (shorthand)")

	monthlyFlag := fs.Bool("monthly", false, "generate monthly report")
	fs.BoolVar(monthlyFlag, "m", false, "generate monthly report (shorthand)")

	formatFlag := fs.String("format", "markdown", "output format: markdown or json")
	fs.StringVar(formatFlag, "f", "markdown", "output format (shorthand)")

	outputFlag := fs.String("output", "", "write to file instead of stdout")
	fs.StringVar(outputFlag, "o", "", "write to file (shorthand)")

	helpFlag := fs.Bool("help", false, "show help message")
	fs.BoolVar(helpFlag, "h", false, "show help message (shorthand)")

	fs.Usage = func() {
		fmt.Fprint(os.Stderr, reportHelpText)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if *helpFlag {
		fmt.Print(reportHelpText)
		os.Exit(0)
	}

	// Validate format
	format := *formatFlag
	if format != "markdown" && format != "json" && format != "md" {
		fmt.Fprintf(os.Stderr, "Error: invalid format %q. Use 'markdown' or 'json'.\n", format)
		os.Exit(1)
	}
	if format == "md" {
		format = "markdown"
	}

	// Parse date argument
	date := time.Now()
	if fs.NArg() > 0 {
		parsedDate, err := time.ParseInLocation("2006-01-02", fs.Arg(0), time.Local)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid date %q. Use YYYY-MM-DD format.\n", fs.Arg(0))
			os.Exit(1)
		}
		date = parsedDate
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

	gen := reports.NewGenerator(tr)

	// Generate report (default to daily)
	var output string
	if *monthlyFlag {
		report := gen.GenerateMonthly(date)
		if format == "json" {
			data, err := reports.FormatMonthlyJSON(report)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error formatting JSON: %v\n", err)
				os.Exit(1)
			}
			output = string(data)
		} else {
			output = reports.FormatMonthlyMarkdown(report)
		}
	} else {
		report := gen.GenerateDaily(date)
		if format == "json" {
			data, err := reports.FormatDailyJSON(report)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error formatting JSON: %v\n", err)
				os.Exit(1)
			}
			output = string(data)
		} else {
			output = reports.FormatDailyMarkdown(report)
		}
	}

	// Write output
	if *outputFlag != "" {
		if dir := filepath.Dir(*outputFlag); dir != "." {
			if err := os.MkdirAll(dir, 0700); err != nil {
				fmt.Fprintf(os.Stderr, "Error creating output directory: %v\n", err)
				os.Exit(1)
			}
		}
		if err := fsutil.WriteFileAtomic(*outputFlag, []byte(output), 0600); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing to file: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Report written to %s\n", *outputFlag)
	} else {
		fmt.Print(output)
	}
}
