package cmd

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/dbsmedya/setmaker/internal/logger"
	"github.com/dbsmedya/setmaker/internal/source"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Count the rows and columns of the original file",
	Long: `Index scans the original file once, checks that every line has as
many fields as the header and records the row and column counts in an info
file. 'create' and 'plan' read the counts from that file instead of scanning.

Example:
  setmaker index -i data.csv
  setmaker index -i data.zip --info data.info.yaml`,
	RunE: runIndex,
}

func init() {
	f := indexCmd.Flags()
	f.StringVarP(&inputFile, "input", "i", "", "Original data file (.csv, .gz or .zip)")
	f.StringVar(&infoFile, "info", "", "Info file to write (default <input>.info.yaml)")
	f.StringVar(&delimiter, "delimiter", "", "Field delimiter of the original file")

	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.Input.File == "" {
		return fmt.Errorf("input.file: original data file is required")
	}

	log, err := logger.New(&cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer log.Sync()

	log = log.WithFile(cfg.Input.File)
	log.Info("Indexing original file")

	info, err := source.IndexFile(cfg.Input.File, cfg.DelimiterByte())
	if err != nil {
		return err
	}

	path := cfg.InfoFile()
	if err := source.SaveInfo(path, info); err != nil {
		return err
	}
	log.Infow("File info written", "info", path, "rows", info.Rows, "columns", info.Columns)

	printHeader("File Info: %s", info.Path)
	printField("Rows", humanize.Comma(int64(info.Rows)))
	printField("Columns", info.Columns)
	printField("Size", humanize.Bytes(uint64(info.Size)))
	printField("Info file", path)
	return nil
}
