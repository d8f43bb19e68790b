package cmd

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/dbsmedya/setmaker/internal/source"
	"github.com/dbsmedya/setmaker/internal/synth"
)

var (
	generateRows  int
	generateCols  int
	generateIndex bool
)

var generateCmd = &cobra.Command{
	Use:   "generate <file>",
	Short: "Write a synthetic original file for testing",
	Long: `Generate writes a header line c1..cN followed by data rows in which
the cell at row r, column c holds "r.c". Sets created from such a file show
at a glance which rows and columns they were drawn from.

Example:
  setmaker generate test.csv --rows 100000 --cols 50 --index`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func init() {
	f := generateCmd.Flags()
	f.IntVar(&generateRows, "rows", 1000, "Number of data rows")
	f.IntVar(&generateCols, "cols", 10, "Number of columns")
	f.BoolVar(&generateIndex, "index", false, "Also write the file's info")
	f.StringVar(&delimiter, "delimiter", "", "Field delimiter")

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	path := args[0]
	delim := cfg.DelimiterByte()

	if err := synth.GenerateFile(path, generateRows, generateCols, delim); err != nil {
		return err
	}
	fmt.Fprintf(outputWriter, "Wrote %s: %s rows, %d columns\n",
		path, humanize.Comma(int64(generateRows)), generateCols)

	if !generateIndex {
		return nil
	}

	info, err := source.IndexFile(path, delim)
	if err != nil {
		return err
	}
	infoPath := path + ".info.yaml"
	if err := source.SaveInfo(infoPath, info); err != nil {
		return err
	}
	fmt.Fprintf(outputWriter, "Wrote %s\n", infoPath)
	return nil
}
