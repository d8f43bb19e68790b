package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "test.yaml")

	configContent := `
input:
  file: /data/original.csv
  delimiter: ";"

sets:
  mode: training
  count: 20
  seed: 42
  training_percent: 0.75
  training_rows: 100
  validation_rows: 40
  column_count: 12
  case_column: 1
  outcome_column: 2

output:
  dir: /tmp/sets
  max_open_files: 256
  header: true

logging:
  level: debug
  format: json
  output: stdout
`
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644))

	cfg, err := Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, "/data/original.csv", cfg.Input.File)
	assert.Equal(t, ";", cfg.Input.Delimiter)
	assert.Equal(t, ModeTraining, cfg.Sets.Mode)
	assert.Equal(t, 20, cfg.Sets.Count)
	assert.Equal(t, int64(42), cfg.Sets.Seed)
	assert.Equal(t, 0.75, cfg.Sets.TrainingPercent)
	assert.Equal(t, 100, cfg.Sets.TrainingRows)
	assert.Equal(t, 40, cfg.Sets.ValidationRows)
	assert.Equal(t, 12, cfg.Sets.ColumnCount)
	assert.Equal(t, 1, cfg.Sets.CaseColumn)
	assert.Equal(t, 2, cfg.Sets.OutcomeColumn)
	assert.Equal(t, "/tmp/sets", cfg.Output.Dir)
	assert.Equal(t, 256, cfg.Output.MaxOpenFiles)
	assert.True(t, cfg.Output.Header)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)

	// Defaults survive for keys the file leaves out
	assert.Equal(t, 1, cfg.Sets.First)
	assert.Equal(t, 8, cfg.Output.ReservedFiles)

	require.NoError(t, cfg.Validate())
}

func TestLoadNonexistentFile(t *testing.T) {
	_, err := Load("/nonexistent/path/config.yaml")
	assert.Error(t, err)
}

func TestLoadInvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("sets: [unclosed"), 0644))

	_, err := Load(configPath)
	assert.Error(t, err)
}

func TestLoadOptional(t *testing.T) {
	cfg, err := LoadOptional(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestEnvVarSubstitution(t *testing.T) {
	t.Setenv("SETMAKER_DATA", "/mnt/data")
	t.Setenv("SETMAKER_OUT", "/mnt/out")

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "env.yaml")
	configContent := `
input:
  file: ${SETMAKER_DATA}/original.csv
sets:
  column_set_file: $SETMAKER_DATA/priorities.csv
output:
  dir: ${SETMAKER_OUT}
  max_open_files: 10
logging:
  output: ${SETMAKER_UNSET_VAR}
`
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644))

	cfg, err := Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, "/mnt/data/original.csv", cfg.Input.File)
	assert.Equal(t, "/mnt/data/priorities.csv", cfg.Sets.ColumnSetFile)
	assert.Equal(t, "/mnt/out", cfg.Output.Dir)
	// Unknown variables are left untouched
	assert.Equal(t, "${SETMAKER_UNSET_VAR}", cfg.Logging.Output)
}

func TestLoadFromViper(t *testing.T) {
	v := viper.New()
	v.Set("input.file", "data.csv")
	v.Set("sets.mode", ModeGeneric)
	v.Set("sets.count", 3)
	v.Set("sets.generic_rows", 10)
	v.Set("sets.column_count", 4)

	cfg, err := LoadFromViper(v)
	require.NoError(t, err)
	assert.Equal(t, ModeGeneric, cfg.Sets.Mode)
	assert.Equal(t, 10, cfg.Sets.GenericRows)
	assert.NoError(t, cfg.Validate())
}

func TestApplyOverrides(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Sets.Count = 5
	cfg.Sets.TrainingRows = 10

	cfg.ApplyOverrides(Overrides{
		LogLevel:        "debug",
		InputFile:       "in.csv",
		SetCount:        7,
		Seed:            99,
		TrainingPercent: 0.6,
		CaseColumn:      3,
		OutputDir:       "out",
		MaxOpenFiles:    64,
		Header:          true,
	})

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format, "empty override keeps file value")
	assert.Equal(t, "in.csv", cfg.Input.File)
	assert.Equal(t, 7, cfg.Sets.Count)
	assert.Equal(t, int64(99), cfg.Sets.Seed)
	assert.Equal(t, 0.6, cfg.Sets.TrainingPercent)
	assert.Equal(t, 10, cfg.Sets.TrainingRows, "zero override keeps file value")
	assert.Equal(t, 3, cfg.Sets.CaseColumn)
	assert.Equal(t, "out", cfg.Output.Dir)
	assert.Equal(t, 64, cfg.Output.MaxOpenFiles)
	assert.True(t, cfg.Output.Header)
}

func TestApplyOverridesGenericRowsSelectsGenericMode(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ApplyOverrides(Overrides{GenericRows: 25})
	assert.Equal(t, ModeGeneric, cfg.Sets.Mode)
	assert.Equal(t, 25, cfg.Sets.GenericRows)

	cfg = DefaultConfig()
	cfg.ApplyOverrides(Overrides{GenericRows: 25, Mode: ModeTraining})
	assert.Equal(t, ModeTraining, cfg.Sets.Mode, "explicit mode wins")
}
