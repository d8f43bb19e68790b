package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetConfigFile(t *testing.T) {
	originalCfgFile := cfgFile
	defer func() {
		cfgFile = originalCfgFile
	}()

	for _, path := range []string{"", "/path/to/custom.yaml", "/path/to/my config.yaml"} {
		cfgFile = path
		assert.Equal(t, path, GetConfigFile())
	}
}

func TestGetCLIOverrides(t *testing.T) {
	resetCLIState(t)

	logLevel = "debug"
	seed = 42
	outputDir = "out"
	maxOpenFiles = 64
	inputFile = "data.csv"
	setCount = 10
	trainingPercent = 0.7
	caseColumn = 1
	outcomeColumn = 2
	columnSetFile = "ranks.csv"
	columnSetStart = 3
	header = true

	o := GetCLIOverrides()
	assert.Equal(t, "debug", o.LogLevel)
	assert.Equal(t, int64(42), o.Seed)
	assert.Equal(t, "out", o.OutputDir)
	assert.Equal(t, 64, o.MaxOpenFiles)
	assert.Equal(t, "data.csv", o.InputFile)
	assert.Equal(t, 10, o.SetCount)
	assert.Equal(t, 0.7, o.TrainingPercent)
	assert.Equal(t, 1, o.CaseColumn)
	assert.Equal(t, 2, o.OutcomeColumn)
	assert.Equal(t, "ranks.csv", o.ColumnSetFile)
	assert.Equal(t, 3, o.ColumnSetStart)
	assert.True(t, o.Header)
}

func TestRootCommandStructure(t *testing.T) {
	assert.NotNil(t, rootCmd)
	assert.Equal(t, "setmaker", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
	assert.Equal(t, Version, rootCmd.Version)
}

func TestRootCommandPersistentFlags(t *testing.T) {
	flags := rootCmd.PersistentFlags()

	configFlag := flags.Lookup("config")
	if assert.NotNil(t, configFlag) {
		assert.Equal(t, "c", configFlag.Shorthand)
		assert.Equal(t, "setmaker.yaml", configFlag.DefValue)
	}

	for _, name := range []string{"log-level", "log-format", "seed", "output-dir", "max-open-files"} {
		assert.NotNil(t, flags.Lookup(name), "missing persistent flag %s", name)
	}
}

func TestSetFlagsOnCreateAndPlan(t *testing.T) {
	names := []string{"input", "info", "delimiter", "mode", "sc", "first", "tp", "trc", "vrc",
		"grc", "cc", "cn", "oc", "cs", "css", "header"}

	for _, c := range []string{"create", "plan"} {
		cmd, _, err := rootCmd.Find([]string{c})
		if !assert.NoError(t, err) {
			continue
		}
		for _, name := range names {
			assert.NotNil(t, cmd.Flags().Lookup(name), "%s is missing --%s", c, name)
		}
	}
}

func TestRootCommandSubcommands(t *testing.T) {
	var names []string
	for _, cmd := range rootCmd.Commands() {
		names = append(names, cmd.Name())
	}

	for _, want := range []string{"create", "generate", "index", "plan", "verify", "version"} {
		assert.Contains(t, names, want)
	}
}
