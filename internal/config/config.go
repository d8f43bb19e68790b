// Package config provides configuration structures and loading for setmaker.
package config

// Set generation modes.
const (
	ModeTraining = "training"
	ModeGeneric  = "generic"
)

// Config represents the complete application configuration.
type Config struct {
	Input   InputConfig   `yaml:"input" mapstructure:"input"`
	Sets    SetsConfig    `yaml:"sets" mapstructure:"sets"`
	Output  OutputConfig  `yaml:"output" mapstructure:"output"`
	Logging LoggingConfig `yaml:"logging" mapstructure:"logging"`
}

// InputConfig describes the original data file and its precomputed info file.
type InputConfig struct {
	File      string `yaml:"file" mapstructure:"file"`
	InfoFile  string `yaml:"info_file" mapstructure:"info_file"` // defaults to <file>.info.yaml
	Delimiter string `yaml:"delimiter" mapstructure:"delimiter"` // single byte
}

// SetsConfig describes which sets to create.
//
// Column ordinals are 1-based; a zero case or outcome column means the column
// is absent.
type SetsConfig struct {
	Mode            string  `yaml:"mode" mapstructure:"mode"` // training or generic
	Count           int     `yaml:"count" mapstructure:"count"`
	First           int     `yaml:"first" mapstructure:"first"`
	Seed            int64   `yaml:"seed" mapstructure:"seed"` // 0 derives a seed from the clock
	TrainingPercent float64 `yaml:"training_percent" mapstructure:"training_percent"`
	TrainingRows    int     `yaml:"training_rows" mapstructure:"training_rows"`
	ValidationRows  int     `yaml:"validation_rows" mapstructure:"validation_rows"`
	GenericRows     int     `yaml:"generic_rows" mapstructure:"generic_rows"`
	ColumnCount     int     `yaml:"column_count" mapstructure:"column_count"`
	CaseColumn      int     `yaml:"case_column" mapstructure:"case_column"`
	OutcomeColumn   int     `yaml:"outcome_column" mapstructure:"outcome_column"`
	ColumnSetFile   string  `yaml:"column_set_file" mapstructure:"column_set_file"`
	ColumnSetStart  int     `yaml:"column_set_start" mapstructure:"column_set_start"`
}

// OutputConfig controls where sets are written and how many files may be open.
type OutputConfig struct {
	Dir           string `yaml:"dir" mapstructure:"dir"`
	MaxOpenFiles  int    `yaml:"max_open_files" mapstructure:"max_open_files"` // 0 probes the OS limit
	ReservedFiles int    `yaml:"reserved_files" mapstructure:"reserved_files"`
	Header        bool   `yaml:"header" mapstructure:"header"`
}

// LoggingConfig represents logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`   // debug, info, warn, error
	Format string `yaml:"format" mapstructure:"format"` // json or text
	Output string `yaml:"output" mapstructure:"output"` // stdout, stderr, or file path
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() *Config {
	return &Config{
		Input: InputConfig{
			Delimiter: ",",
		},
		Sets: SetsConfig{
			Mode:  ModeTraining,
			First: 1,
		},
		Output: OutputConfig{
			Dir:           ".",
			ReservedFiles: 8,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: "stderr",
		},
	}
}

// InfoFile returns the info file path, falling back to <input>.info.yaml.
func (c *Config) InfoFile() string {
	if c.Input.InfoFile != "" {
		return c.Input.InfoFile
	}
	if c.Input.File == "" {
		return ""
	}
	return c.Input.File + ".info.yaml"
}

// DelimiterByte returns the field delimiter as a single byte.
func (c *Config) DelimiterByte() byte {
	if len(c.Input.Delimiter) == 0 {
		return ','
	}
	if c.Input.Delimiter == `\t` {
		return '\t'
	}
	return c.Input.Delimiter[0]
}

// Ascending reports whether column selection follows a priority file.
func (c *Config) Ascending() bool {
	return c.Sets.ColumnSetFile != ""
}
