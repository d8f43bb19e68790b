package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/gookit/color"
	"github.com/spf13/cobra"

	"github.com/dbsmedya/setmaker/internal/lock"
)

var (
	createNoProgress bool
	createForce      bool
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create training/validation or generic sets",
	Long: `Create plans every requested set, then writes them with as few
sequential scans of the original file as the open file limit allows.

Each set gets a data file and a row ordinal file; validation and generic
sets also get a column ordinal file.

The original file must have been indexed first (see 'setmaker index').

Examples:
  setmaker create -i data.csv --sc 100 --tp 0.7 --trc 5000 --vrc 2000 --cc 20 --cn 1 --oc 2
  setmaker create -i data.csv.gz --grc 1000 --cc 10 --sc 50 -o out/`,
	RunE: runCreate,
}

func init() {
	addSetFlags(createCmd)
	createCmd.Flags().BoolVar(&createNoProgress, "no-progress", false,
		"Do not draw scan progress bars")
	createCmd.Flags().BoolVar(&createForce, "force", false,
		"Write even if another run holds the output directory lock (use with caution)")

	rootCmd.AddCommand(createCmd)
}

func runCreate(cmd *cobra.Command, args []string) error {
	r, err := prepareRun(cmd)
	if err != nil {
		return err
	}
	defer r.log.Sync()

	r.log.Infow("Starting set creation",
		"config", GetConfigFile(),
		"input", r.cfg.Input.File,
		"output", r.cfg.Output.Dir,
	)

	// Lock the output directory to prevent two runs from mixing set files
	if !createForce {
		if err := os.MkdirAll(r.cfg.Output.Dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
		dirLock := lock.NewDirLock(r.cfg.Output.Dir)
		if err := dirLock.AcquireOrFail(); err != nil {
			if errors.Is(err, lock.ErrLocked) {
				return fmt.Errorf("output directory %s is in use by another run (use --force to override)", r.cfg.Output.Dir)
			}
			return fmt.Errorf("failed to acquire output directory lock: %w", err)
		}
		defer dirLock.ReleaseLock()
		r.log.Debugw("Acquired output directory lock", "lock", dirLock.Path())
	} else {
		r.log.Warnw("Skipping output directory lock (--force flag used)", "output", r.cfg.Output.Dir)
	}

	if !createNoProgress {
		r.generator.SetProgress(newPassProgress(os.Stderr, r.info.Rows))
	}

	ctx, stop := setupSignalHandler(func(sig os.Signal) {
		r.log.Warnw("Received shutdown signal - finishing current pass...", "signal", sig.String())
	})
	defer stop()

	result, err := r.generator.Execute(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			r.log.Warnw("Set creation cancelled by user",
				"completed_passes", len(result.Passes))
			return nil
		}
		return fmt.Errorf("set creation failed: %w", err)
	}

	// Display results
	fmt.Fprintln(outputWriter)
	printHeader("Sets Complete")
	printField("Mode", result.Mode)
	printField("Seed", result.Seed)
	printField("Sets", result.Sets)
	printField("Passes", len(result.Passes))
	printField("Rows scanned", humanize.Comma(result.RowsScanned))
	printField("Output", r.cfg.Output.Dir)
	printField("Duration", result.Duration)
	fmt.Fprintln(outputWriter, color.Green.Sprint("  Success"))

	return nil
}
