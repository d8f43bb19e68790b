package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"
	"strings"

	"github.com/spf13/viper"
)

// Load reads configuration from the specified file path.
// It supports YAML files and performs environment variable substitution.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return LoadFromViper(v)
}

// LoadOptional behaves like Load but returns the defaults when the file does
// not exist. Every set option can also be given on the command line, so a
// config file is not mandatory.
func LoadOptional(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); errors.Is(err, fs.ErrNotExist) {
		cfg := DefaultConfig()
		substituteEnvVars(cfg)
		return cfg, nil
	}
	return Load(configPath)
}

// LoadFromViper creates a Config from an existing Viper instance.
// Useful for testing or when Viper is configured externally.
func LoadFromViper(v *viper.Viper) (*Config, error) {
	cfg := DefaultConfig()

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	substituteEnvVars(cfg)
	return cfg, nil
}

// envVarPattern matches ${VAR_NAME} or $VAR_NAME patterns
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}|\$([A-Za-z_][A-Za-z0-9_]*)`)

// substituteEnvVars expands environment variables in path-like settings.
func substituteEnvVars(cfg *Config) {
	cfg.Input.File = expandEnvVar(cfg.Input.File)
	cfg.Input.InfoFile = expandEnvVar(cfg.Input.InfoFile)
	cfg.Sets.ColumnSetFile = expandEnvVar(cfg.Sets.ColumnSetFile)
	cfg.Output.Dir = expandEnvVar(cfg.Output.Dir)
	cfg.Logging.Output = expandEnvVar(cfg.Logging.Output)
}

// expandEnvVar expands environment variables in the format ${VAR} or $VAR.
func expandEnvVar(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		var varName string
		if strings.HasPrefix(match, "${") {
			varName = match[2 : len(match)-1]
		} else {
			varName = match[1:]
		}

		if value, exists := os.LookupEnv(varName); exists {
			return value
		}
		// Return original if env var not found
		return match
	})
}

// Overrides carries command line values that take precedence over the file.
// Zero values leave the file setting untouched.
type Overrides struct {
	LogLevel        string
	LogFormat       string
	InputFile       string
	InfoFile        string
	Delimiter       string
	Mode            string
	SetCount        int
	FirstSet        int
	Seed            int64
	TrainingPercent float64
	TrainingRows    int
	ValidationRows  int
	GenericRows     int
	ColumnCount     int
	CaseColumn      int
	OutcomeColumn   int
	ColumnSetFile   string
	ColumnSetStart  int
	OutputDir       string
	MaxOpenFiles    int
	Header          bool
}

// ApplyOverrides applies CLI flag overrides to the configuration.
// Only non-zero/non-empty values are applied.
func (c *Config) ApplyOverrides(o Overrides) {
	if o.LogLevel != "" {
		c.Logging.Level = o.LogLevel
	}
	if o.LogFormat != "" {
		c.Logging.Format = o.LogFormat
	}
	if o.InputFile != "" {
		c.Input.File = o.InputFile
	}
	if o.InfoFile != "" {
		c.Input.InfoFile = o.InfoFile
	}
	if o.Delimiter != "" {
		c.Input.Delimiter = o.Delimiter
	}
	if o.SetCount > 0 {
		c.Sets.Count = o.SetCount
	}
	if o.FirstSet > 0 {
		c.Sets.First = o.FirstSet
	}
	if o.Seed != 0 {
		c.Sets.Seed = o.Seed
	}
	if o.TrainingPercent > 0 {
		c.Sets.TrainingPercent = o.TrainingPercent
	}
	if o.TrainingRows > 0 {
		c.Sets.TrainingRows = o.TrainingRows
	}
	if o.ValidationRows > 0 {
		c.Sets.ValidationRows = o.ValidationRows
	}
	if o.GenericRows > 0 {
		c.Sets.GenericRows = o.GenericRows
		// Asking for generic rows on the command line selects generic mode,
		// the same way the generic row count did in earlier tooling.
		if o.Mode == "" {
			c.Sets.Mode = ModeGeneric
		}
	}
	if o.Mode != "" {
		c.Sets.Mode = o.Mode
	}
	if o.ColumnCount > 0 {
		c.Sets.ColumnCount = o.ColumnCount
	}
	if o.CaseColumn > 0 {
		c.Sets.CaseColumn = o.CaseColumn
	}
	if o.OutcomeColumn > 0 {
		c.Sets.OutcomeColumn = o.OutcomeColumn
	}
	if o.ColumnSetFile != "" {
		c.Sets.ColumnSetFile = o.ColumnSetFile
	}
	if o.ColumnSetStart > 0 {
		c.Sets.ColumnSetStart = o.ColumnSetStart
	}
	if o.OutputDir != "" {
		c.Output.Dir = o.OutputDir
	}
	if o.MaxOpenFiles > 0 {
		c.Output.MaxOpenFiles = o.MaxOpenFiles
	}
	if o.Header {
		c.Output.Header = true
	}
}
