package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gookit/color"
	"github.com/spf13/cobra"

	"github.com/dbsmedya/setmaker/internal/sets"
)

var planShowSets bool

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Show the set plan and pass schedule",
	Long: `Plan computes every set's rows and columns and the pass schedule
exactly as 'create' would with the same seed, prints them and writes nothing.

The plan shows:
  - Original file shape and selected mode
  - Output capacity and number of scans
  - Sets written in each pass
  - Per-set row and column counts (with --sets)

Example:
  setmaker plan -i data.csv --sc 100 --tp 0.7 --trc 5000 --vrc 2000 --cc 20 --cn 1 --oc 2 --seed 42`,
	RunE: runPlan,
}

func init() {
	addSetFlags(planCmd)
	planCmd.Flags().BoolVar(&planShowSets, "sets", false,
		"List every set with its columns")

	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	r, err := prepareRun(cmd)
	if err != nil {
		return err
	}
	defer r.log.Sync()

	plan, err := r.generator.Plan()
	if err != nil {
		return err
	}
	passes, err := r.generator.Passes()
	if err != nil {
		return err
	}

	printHeader("Set Plan: %s", r.cfg.Input.File)

	fmt.Fprintln(outputWriter)
	printSection("Original File")
	printField("Rows", humanize.Comma(int64(r.info.Rows)))
	printField("Columns", r.info.Columns)
	if r.info.Size > 0 {
		printField("Size", humanize.Bytes(uint64(r.info.Size)))
	}

	fmt.Fprintln(outputWriter)
	printSection("Selection")
	printField("Mode", plan.Mode)
	printField("Seed", r.seed)
	printField("Case column", plan.Columns.Case)
	printField("Outcome column", plan.Columns.Outcome)
	printField("Candidates", len(plan.Columns.Candidates))
	if plan.Assignment != nil {
		printField("Training pool", humanize.Comma(int64(len(plan.Assignment.Training))))
		printField("Validation pool", humanize.Comma(int64(len(plan.Assignment.Validation))))
	}
	if r.cfg.Ascending() {
		printField("Column set file", r.cfg.Sets.ColumnSetFile)
	}

	fmt.Fprintln(outputWriter)
	printSection("Schedule")
	printField("Data files", plan.DataFiles())
	printField("Capacity", r.capacity)
	printField("Scans", color.Cyan.Sprint(len(passes)))

	fmt.Fprintln(outputWriter)
	passTable := newTable("PASS", "FILES", "FIRST", "LAST", "ROWS SAMPLED")
	for _, p := range passes {
		passTable.add(
			strconv.Itoa(p.Number),
			strconv.Itoa(p.Files()),
			p.Sets[0].ID,
			p.Sets[len(p.Sets)-1].ID,
			humanize.Comma(sampledRows(p.Sets)),
		)
	}
	passTable.print()

	if planShowSets {
		fmt.Fprintln(outputWriter)
		printSection("Sets")
		setTable := newTable("SET", "ROWS", "FIELDS", "COLUMNS")
		for _, s := range plan.Sets() {
			setTable.add(
				s.ID,
				strconv.Itoa(len(s.Rows)),
				strconv.Itoa(s.Fields()),
				truncate(joinOrdinals(s.Columns), 60),
			)
		}
		setTable.style = func(row, col int, cell string) string {
			if col == 0 {
				return color.Cyan.Sprint(cell)
			}
			return cell
		}
		setTable.print()
	}

	return nil
}

func sampledRows(specs []*sets.SetSpec) int64 {
	var n int64
	for _, s := range specs {
		n += int64(len(s.Rows))
	}
	return n
}

func joinOrdinals(ordinals []int) string {
	parts := make([]string, len(ordinals))
	for i, o := range ordinals {
		parts[i] = strconv.Itoa(o)
	}
	return strings.Join(parts, ",")
}
