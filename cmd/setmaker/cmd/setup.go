package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"time"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/setmaker/internal/config"
	"github.com/dbsmedya/setmaker/internal/limits"
	"github.com/dbsmedya/setmaker/internal/logger"
	"github.com/dbsmedya/setmaker/internal/sets"
	"github.com/dbsmedya/setmaker/internal/source"
)

// loadConfig reads the config file and applies CLI overrides. A missing file
// is only an error when --config was given explicitly.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if cmd.Flags().Changed("config") {
		cfg, err = config.Load(GetConfigFile())
	} else {
		cfg, err = config.LoadOptional(GetConfigFile())
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	cfg.ApplyOverrides(GetCLIOverrides())
	return cfg, nil
}

// loadInfo reads the original file's info and warns when it looks stale.
func loadInfo(cfg *config.Config, log *logger.Logger) (source.Info, error) {
	path := cfg.InfoFile()
	info, err := source.LoadInfo(path)
	if errors.Is(err, fs.ErrNotExist) {
		return source.Info{}, fmt.Errorf("file info %s not found (run 'setmaker index' first): %w", path, err)
	}
	if err != nil {
		return source.Info{}, err
	}

	stale, err := info.Stale()
	if err != nil {
		log.Warnw("Could not check file info freshness", "info", path, "error", err)
	} else if stale {
		log.Warnw("Original file changed since it was indexed; re-run 'setmaker index' if counts differ",
			"file", info.Path, "info", path)
	}

	log.Debugw("Loaded file info", "info", path, "rows", info.Rows, "columns", info.Columns)
	return info, nil
}

func optionalColumn(ordinal int) sets.OptionalColumn {
	if ordinal == 0 {
		return sets.NoColumn
	}
	return sets.Column(ordinal)
}

// buildParams translates configuration and file info into plan parameters.
func buildParams(cfg *config.Config, info source.Info) (sets.Params, error) {
	s := cfg.Sets
	params := sets.Params{
		Mode:             sets.ModeTraining,
		Rows:             info.Rows,
		Columns:          info.Columns,
		SetCount:         s.Count,
		FirstSet:         s.First,
		TrainingFraction: s.TrainingPercent,
		TrainingRows:     s.TrainingRows,
		ValidationRows:   s.ValidationRows,
		GenericRows:      s.GenericRows,
		ColumnCount:      s.ColumnCount,
		Case:             optionalColumn(s.CaseColumn),
		Outcome:          optionalColumn(s.OutcomeColumn),
	}
	if s.Mode == config.ModeGeneric {
		params.Mode = sets.ModeGeneric
	}

	if cfg.Ascending() {
		priority, err := sets.ParsePriorityFile(s.ColumnSetFile)
		if err != nil {
			return sets.Params{}, err
		}
		if len(priority) == 0 {
			return sets.Params{}, &sets.ConfigError{
				Field:   "column_set_file",
				Message: fmt.Sprintf("%s lists no columns", s.ColumnSetFile),
			}
		}
		params.Priority = priority
		params.PriorityStart = s.ColumnSetStart
	}

	return params, nil
}

// resolveSeed returns the configured seed, or a clock-derived one.
func resolveSeed(cfg *config.Config) int64 {
	if cfg.Sets.Seed != 0 {
		return cfg.Sets.Seed
	}
	return time.Now().UnixNano()
}

// run bundles everything create and plan need.
type run struct {
	cfg       *config.Config
	log       *logger.Logger
	info      source.Info
	seed      int64
	capacity  int
	generator *sets.Generator
}

// prepareRun loads and validates configuration, then plans the sets. No
// output file exists when it returns.
func prepareRun(cmd *cobra.Command) (*run, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log, err := logger.New(&cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	info, err := loadInfo(cfg, log)
	if err != nil {
		return nil, err
	}

	params, err := buildParams(cfg, info)
	if err != nil {
		return nil, err
	}

	capacity, err := limits.Resolve(cfg.Output.MaxOpenFiles, cfg.Output.ReservedFiles)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", sets.ErrResource, err)
	}

	r := &run{
		cfg:      cfg,
		log:      log,
		info:     info,
		seed:     resolveSeed(cfg),
		capacity: capacity,
	}
	log.Infow("Using random seed", "seed", r.seed)

	input := cfg.Input.File
	r.generator, err = sets.NewGenerator(sets.GeneratorConfig{
		Params:    params,
		Seed:      r.seed,
		Capacity:  capacity,
		OutputDir: cfg.Output.Dir,
		Delimiter: cfg.DelimiterByte(),
		Header:    cfg.Output.Header,
		Open:      func() (io.ReadCloser, error) { return source.Open(input) },
	}, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create generator: %w", err)
	}

	if err := r.generator.Initialize(); err != nil {
		return nil, err
	}
	return r, nil
}
