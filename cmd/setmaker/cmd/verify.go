package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/gookit/color"
	"github.com/spf13/cobra"

	"github.com/dbsmedya/setmaker/internal/logger"
	"github.com/dbsmedya/setmaker/internal/verifier"
)

var (
	verifyMethod string
	verifyHeader bool
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check generated sets against their ordinal files",
	Long: `Verify reads every set in the output directory and checks that:
  - the data file has one line per row ordinal
  - row ordinals are ascending and unique
  - every data line has the same number of fields
  - column ordinals are unique and exclude the case and outcome columns
  - a training set and its validation set share no rows

With --method sha256 a digest of every data file is printed as well.

Example:
  setmaker verify -o out/ --cn 1 --oc 2`,
	RunE: runVerify,
}

func init() {
	f := verifyCmd.Flags()
	f.StringVar(&verifyMethod, "method", string(verifier.MethodCount), "Verification method (count, sha256)")
	f.BoolVar(&verifyHeader, "header", false, "Set files start with a header line")
	f.IntVar(&caseColumn, "cn", 0, "Case column ordinal used when the sets were created")
	f.IntVar(&outcomeColumn, "oc", 0, "Outcome column ordinal used when the sets were created")

	rootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	log, err := logger.New(&cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer log.Sync()

	v, err := verifier.NewVerifier(cfg.Output.Dir, verifier.VerificationMethod(verifyMethod), verifier.Options{
		Case:    cfg.Sets.CaseColumn,
		Outcome: cfg.Sets.OutcomeColumn,
		Header:  verifyHeader || cfg.Output.Header,
	}, log)
	if err != nil {
		return err
	}

	report, stats, verifyErr := v.Verify(context.Background())
	if report == nil {
		return verifyErr
	}

	printHeader("Verification: %s", cfg.Output.Dir)
	fmt.Fprintln(outputWriter)

	headers := []string{"SET", "LINES", "FIELDS", "STATUS", "DETAIL"}
	if stats.Method == verifier.MethodSHA256 {
		headers = append(headers, "SHA256")
	}
	t := newTable(headers...)
	for el := report.Front(); el != nil; el = el.Next() {
		r := el.Value
		status := "PASS"
		if !r.Match {
			status = "FAIL"
		}
		cells := []string{el.Key, strconv.Itoa(r.Lines), strconv.Itoa(r.Fields), status, truncate(r.ErrorMessage, 60)}
		if stats.Method == verifier.MethodSHA256 {
			cells = append(cells, r.Hash)
		}
		t.add(cells...)
	}
	t.style = func(row, col int, cell string) string {
		if col != 3 {
			return cell
		}
		if t.rows[row][3] == "PASS" {
			return color.Green.Sprint(cell)
		}
		return color.Red.Sprint(cell)
	}
	t.print()

	fmt.Fprintln(outputWriter)
	printField("Sets verified", stats.SetsVerified)
	printField("Passed", stats.SetsPassed)
	printField("Failed", stats.SetsFailed)
	printField("Total lines", stats.TotalLines)

	return verifyErr
}
