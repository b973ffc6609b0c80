package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/harmolab/mixprep/internal/analyze"
	"github.com/harmolab/mixprep/internal/config"
	"github.com/harmolab/mixprep/internal/report"
)

func main() {
	// Command line flags
	var (
		folderFlag   = flag.String("folder", "", "Music folder to analyze")
		configFlag   = flag.String("config", "", "Path to config file")
		noRenameFlag = flag.Bool("no-rename", false, "Analyze only, do not rename files")
		notationFlag = flag.String("notation", "", "Key notation: classic or alphanumeric")
		removeFlag   = flag.String("remove", "", "Comma-separated substrings to strip from names (e.g. \"Official Video, [HD]\")")
		replaceFlag  = flag.String("replace", "", "Comma-separated old:new pairs applied to names (e.g. \"_: \")")
		formatFlag   = flag.String("format", "", "Report format: csv or json")
		setlistFlag  = flag.Bool("setlist", false, "Create a BPM-ordered M3U set list")
		workersFlag  = flag.Int("workers", 0, "Number of parallel analysis workers")
		verboseFlag  = flag.Bool("verbose", false, "Show verbose output")
	)

	flag.Parse()

	// CLI mode - require folder
	folder := *folderFlag
	if folder == "" && flag.NArg() > 0 {
		folder = flag.Arg(0)
	}
	if folder == "" {
		fmt.Println("mixprep - Classify tracks by key and BPM, rename and retag them")
		fmt.Println()
		fmt.Println("Usage:")
		fmt.Println("  mixprep -folder <path> [options]")
		fmt.Println("  mixprep <path> [options]")
		fmt.Println()
		fmt.Println("For interactive mode, use: mixprep-tui")
		fmt.Println()
		flag.PrintDefaults()
		os.Exit(1)
	}

	// Load config
	settings := config.DefaultSettings()
	if *configFlag != "" {
		var err error
		settings, err = config.Load(*configFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// Apply flags
	if *noRenameFlag {
		settings.RenameEnabled = false
	}
	if *notationFlag != "" {
		settings.KeyNotation = *notationFlag
	}
	if *removeFlag != "" {
		settings.RemoveLiterals = config.ParseRemoveList(*removeFlag)
	}
	if *replaceFlag != "" {
		settings.ReplacePairs = config.ParseReplaceList(*replaceFlag)
	}
	if *formatFlag != "" {
		settings.ReportFormat = *formatFlag
	}
	if *setlistFlag {
		settings.CreateSetList = true
	}
	if *workersFlag > 0 {
		settings.Workers = *workersFlag
	}
	if *verboseFlag {
		settings.Verbose = true
	}

	// Handle interrupts
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Println("\nInterrupted, cancelling...")
		cancel()
	}()

	// Create manager with progress callback
	manager := analyze.NewManager(settings, func(event analyze.ProgressEvent) {
		if event.Level == analyze.LevelVerbose && !settings.Verbose {
			return
		}

		prefix := "   "
		switch event.Level {
		case analyze.LevelError:
			prefix = " ✗ "
		case analyze.LevelWarning:
			prefix = " ! "
		case analyze.LevelSuccess:
			prefix = " ✓ "
		case analyze.LevelInfo:
			prefix = " › "
		}

		fmt.Println(prefix + event.Message)
	})

	fmt.Println("mixprep - key & BPM analyzer")
	fmt.Printf("Folder: %s\n", folder)
	fmt.Printf("Rename: %v | Notation: %s | Report: %s\n",
		settings.RenameEnabled, settings.KeyNotation, settings.ReportFormat)
	fmt.Println()

	results, err := manager.Run(ctx, folder)
	if err != nil {
		switch {
		case errors.Is(err, analyze.ErrFolderNotFound):
			fmt.Fprintf(os.Stderr, "Folder not found: %s\n", folder)
			os.Exit(1)
		case errors.Is(err, analyze.ErrNoAudioFiles):
			fmt.Fprintf(os.Stderr, "No supported audio files in: %s\n", folder)
			os.Exit(1)
		case ctx.Err() != nil:
			fmt.Println("\nRun cancelled.")
			os.Exit(130)
		default:
			fmt.Fprintf(os.Stderr, "Error during analysis: %v\n", err)
			os.Exit(1)
		}
	}

	fmt.Println()
	report.WriteSummary(os.Stdout, results, manager.Statistics())
}
