package sets

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/dbsmedya/setmaker/internal/logger"
)

// GeneratorConfig carries everything a Generator needs.
type GeneratorConfig struct {
	Params    Params
	Seed      int64
	Capacity  int // maximum data files open at once
	OutputDir string
	Delimiter byte
	Header    bool
	Open      OpenFunc
}

// Result contains statistics of a completed run.
type Result struct {
	Seed        int64
	Mode        Mode
	Sets        int
	Passes      []PassStats
	RowsScanned int64
	StartedAt   time.Time
	CompletedAt time.Time
	Duration    time.Duration
}

// Generator plans and writes a full run. Initialize resolves every random
// choice and the pass schedule; Execute performs the scans.
type Generator struct {
	cfg         GeneratorConfig
	logger      *logger.Logger
	progress    Progress
	create      CreateFunc
	plan        *Plan
	passes      []Pass
	initialized bool
}

// NewGenerator creates a Generator. It must be initialized with Initialize
// before Execute.
func NewGenerator(cfg GeneratorConfig, log *logger.Logger) (*Generator, error) {
	if cfg.Open == nil {
		return nil, fmt.Errorf("original file opener is nil")
	}
	if cfg.OutputDir == "" {
		return nil, configErrorf("output.dir", "output directory is required")
	}
	if cfg.Delimiter == 0 {
		cfg.Delimiter = ','
	}
	if log == nil {
		log = logger.NewDefault()
	}

	return &Generator{
		cfg:      cfg,
		logger:   log,
		progress: nopProgress{},
		create:   createFile,
	}, nil
}

// SetProgress sets the scan progress receiver.
func (g *Generator) SetProgress(p Progress) {
	if p == nil {
		p = nopProgress{}
	}
	g.progress = p
}

// SetCreateFunc replaces os.Create for every output file.
func (g *Generator) SetCreateFunc(create CreateFunc) {
	g.create = create
}

// Initialize computes the plan and the pass schedule. All ConfigError and
// ResourceError conditions are reported here, before any file exists.
func (g *Generator) Initialize() error {
	if g.initialized {
		return nil
	}

	g.logger.Infow("Planning sets",
		"mode", g.cfg.Params.Mode,
		"sets", g.cfg.Params.SetCount,
		"rows", g.cfg.Params.Rows,
		"columns", g.cfg.Params.Columns,
		"seed", g.cfg.Seed,
	)

	plan, err := NewPlanner(NewRand(g.cfg.Seed)).Plan(g.cfg.Params)
	if err != nil {
		return fmt.Errorf("failed to plan sets: %w", err)
	}

	passes, err := Schedule(plan.Groups, g.cfg.Capacity)
	if err != nil {
		return fmt.Errorf("failed to schedule passes: %w", err)
	}

	g.plan = plan
	g.passes = passes
	g.initialized = true

	g.logger.Infow("Plan ready",
		"data_files", plan.DataFiles(),
		"capacity", g.cfg.Capacity,
		"passes", len(passes),
	)
	return nil
}

// Plan returns the computed plan.
func (g *Generator) Plan() (*Plan, error) {
	if !g.initialized {
		return nil, fmt.Errorf("generator not initialized")
	}
	return g.plan, nil
}

// Passes returns the computed pass schedule.
func (g *Generator) Passes() ([]Pass, error) {
	if !g.initialized {
		return nil, fmt.Errorf("generator not initialized")
	}
	return g.passes, nil
}

// Execute writes every pass and, after each pass, the sidecars of its sets.
func (g *Generator) Execute(ctx context.Context) (*Result, error) {
	if !g.initialized {
		return nil, fmt.Errorf("generator not initialized")
	}
	if ctx == nil {
		return nil, fmt.Errorf("context is nil")
	}

	if err := os.MkdirAll(g.cfg.OutputDir, 0755); err != nil {
		return nil, &IOError{Op: "mkdir", Path: g.cfg.OutputDir, Err: err}
	}

	result := &Result{
		Seed:      g.cfg.Seed,
		Mode:      g.plan.Mode,
		StartedAt: time.Now(),
	}

	emitter := NewEmitter(g.cfg.OutputDir, g.create)
	writer := NewWriter(g.cfg.Open, g.cfg.OutputDir, g.cfg.Delimiter, g.cfg.Params.Rows, g.cfg.Params.Columns,
		WithCreateFunc(g.create),
		WithHeader(g.cfg.Header),
		WithLogger(g.logger),
		WithProgress(g.progress),
		WithPassHook(func(p Pass) error {
			if err := emitter.EmitPass(p); err != nil {
				return err
			}
			result.Sets += len(p.Sets)
			return nil
		}),
	)

	stats, err := writer.Run(ctx, g.passes)
	result.Passes = stats
	for _, st := range stats {
		result.RowsScanned += int64(st.RowsScanned)
	}
	result.CompletedAt = time.Now()
	result.Duration = result.CompletedAt.Sub(result.StartedAt)

	if err != nil {
		g.logger.Errorw("Set generation aborted",
			"completed_passes", len(stats),
			"total_passes", len(g.passes),
			"error", err,
		)
		return result, err
	}

	g.logger.Infow("Set generation complete",
		"sets", result.Sets,
		"passes", len(stats),
		"rows_scanned", result.RowsScanned,
		"duration", result.Duration,
	)
	return result, nil
}
