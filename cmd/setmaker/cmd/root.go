package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/setmaker/internal/config"
)

// Version information (set via ldflags at build time)
var (
	Version = "0.0.1-dev"
	Commit  = "unknown"
)

const defaultConfigFile = "setmaker.yaml"

// CLI flags that override config file values
var (
	cfgFile      string
	logLevel     string
	logFormat    string
	seed         int64
	outputDir    string
	maxOpenFiles int
)

// Set flags shared by create and plan. The short names follow the original
// set creation tool.
var (
	inputFile       string
	infoFile        string
	delimiter       string
	mode            string
	setCount        int
	firstSet        int
	trainingPercent float64
	trainingRows    int
	validationRows  int
	genericRows     int
	columnCount     int
	caseColumn      int
	outcomeColumn   int
	columnSetFile   string
	columnSetStart  int
	header          bool
)

var rootCmd = &cobra.Command{
	Use:   "setmaker",
	Short: "Training, validation and generic set generator",
	Long: `A CLI tool that draws many random training/validation or generic
sample sets from one large delimited data file.

Features:
  - Disjoint training and validation row pools
  - Random or priority-ranked (ascending) column selection
  - Minimal number of sequential scans under the open file limit
  - Row and column ordinal sidecars for every set
  - Reproducible runs from a logged seed`,
	Version:      Version,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Config file flag
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", defaultConfigFile,
		"Path to configuration file")

	// Logging overrides
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"Override log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "",
		"Override log format (json, text)")

	// Run overrides
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 0,
		"Random seed (0 derives one from the clock)")
	rootCmd.PersistentFlags().StringVarP(&outputDir, "output-dir", "o", "",
		"Override output directory")
	rootCmd.PersistentFlags().IntVar(&maxOpenFiles, "max-open-files", 0,
		"Override maximum number of set files open at once (0 probes the OS limit)")
}

// addSetFlags registers the set selection flags on cmd.
func addSetFlags(cmd *cobra.Command) {
	f := cmd.Flags()

	f.StringVarP(&inputFile, "input", "i", "", "Original data file (.csv, .gz or .zip)")
	f.StringVar(&infoFile, "info", "", "Original file info (default <input>.info.yaml)")
	f.StringVar(&delimiter, "delimiter", "", "Field delimiter of the original file")
	f.StringVar(&mode, "mode", "", "Set mode (training, generic)")

	f.IntVar(&setCount, "sc", 0, "Number of sets (pairs in training mode)")
	f.IntVar(&firstSet, "first", 0, "Number of the first set")
	f.Float64Var(&trainingPercent, "tp", 0, "Fraction of rows in the training pool, between 0 and 1")
	f.IntVar(&trainingRows, "trc", 0, "Rows per training set")
	f.IntVar(&validationRows, "vrc", 0, "Rows per validation set")
	f.IntVar(&genericRows, "grc", 0, "Rows per generic set (selects generic mode)")
	f.IntVar(&columnCount, "cc", 0, "Randomly selected columns per set")
	f.IntVar(&caseColumn, "cn", 0, "Case column ordinal (1-based)")
	f.IntVar(&outcomeColumn, "oc", 0, "Outcome column ordinal (1-based)")
	f.StringVar(&columnSetFile, "cs", "", "Column priority file for ascending column sets")
	f.IntVar(&columnSetStart, "css", 0, "Column count of the first ascending set")
	f.BoolVar(&header, "header", false, "Write a header line to every set file")
}

// GetConfigFile returns the config file path
func GetConfigFile() string {
	return cfgFile
}

// GetCLIOverrides returns the CLI flag override values
func GetCLIOverrides() config.Overrides {
	return config.Overrides{
		LogLevel:        logLevel,
		LogFormat:       logFormat,
		InputFile:       inputFile,
		InfoFile:        infoFile,
		Delimiter:       delimiter,
		Mode:            mode,
		SetCount:        setCount,
		FirstSet:        firstSet,
		Seed:            seed,
		TrainingPercent: trainingPercent,
		TrainingRows:    trainingRows,
		ValidationRows:  validationRows,
		GenericRows:     genericRows,
		ColumnCount:     columnCount,
		CaseColumn:      caseColumn,
		OutcomeColumn:   outcomeColumn,
		ColumnSetFile:   columnSetFile,
		ColumnSetStart:  columnSetStart,
		OutputDir:       outputDir,
		MaxOpenFiles:    maxOpenFiles,
		Header:          header,
	}
}
