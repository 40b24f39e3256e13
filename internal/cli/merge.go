package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"metafix/internal/dispatch"
	"metafix/internal/model"
)

var (
	rawDir    string
	outDir    string
	fixesFile string
	prefix    string
	jobs      int
)

// mergeCmd represents the merge command
var mergeCmd = &cobra.Command{
	Use:   "merge",
	Short: "Merge fixed reviews into the yearly datasets",
	Long: `Merge reconciles every <prefix>_<year>.csv under the raw directory
with the fixes file and writes the corrected files to the output
directory:
- Backfill missing or out-of-range metascores from fix rows of the same movie
- Drop placeholder rows carrying no publication, author, or score
- Append fix rows not already present, matched by normalized review identity

A year with no fix rows — or a missing fixes file — is copied through
unchanged.

Example:
  metafix merge
  metafix merge --raw-dir data/raw --out-dir data/processed
  metafix merge --fixes data/raw/metacritic_missing_fixed_reviews.csv --jobs 4`,
	Args: cobra.NoArgs,
	RunE: runMerge,
}

func init() {
	rootCmd.AddCommand(mergeCmd)

	def := model.DefaultConfig()
	mergeCmd.Flags().StringVar(&rawDir, "raw-dir", def.RawDir, "directory holding the yearly raw CSV files")
	mergeCmd.Flags().StringVar(&outDir, "out-dir", def.OutDir, "directory for corrected CSV files")
	mergeCmd.Flags().StringVar(&fixesFile, "fixes", def.FixesFile, "path to the fixes CSV (missing file means pass-through)")
	mergeCmd.Flags().StringVar(&prefix, "prefix", def.Prefix, "yearly file name prefix (<prefix>_<year>.csv)")
	mergeCmd.Flags().IntVar(&jobs, "jobs", def.Jobs, "years processed concurrently")

	// Bind flags to viper
	_ = viper.BindPFlag("raw_dir", mergeCmd.Flags().Lookup("raw-dir"))
	_ = viper.BindPFlag("out_dir", mergeCmd.Flags().Lookup("out-dir"))
	_ = viper.BindPFlag("fixes_file", mergeCmd.Flags().Lookup("fixes"))
	_ = viper.BindPFlag("prefix", mergeCmd.Flags().Lookup("prefix"))
	_ = viper.BindPFlag("jobs", mergeCmd.Flags().Lookup("jobs"))
}

func runMerge(cmd *cobra.Command, args []string) error {
	cfg := &model.Config{
		RawDir:    viper.GetString("raw_dir"),
		OutDir:    viper.GetString("out_dir"),
		FixesFile: viper.GetString("fixes_file"),
		Prefix:    viper.GetString("prefix"),
		Jobs:      viper.GetInt("jobs"),
	}

	if isatty.IsTerminal(os.Stderr.Fd()) {
		fmt.Fprintf(os.Stderr, "\n")
		fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
		fmt.Fprintf(os.Stderr, "  Metafix Merge\n")
		fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
		fmt.Fprintf(os.Stderr, "\n")
		fmt.Fprintf(os.Stderr, "  Raw dir:    %s\n", cfg.RawDir)
		fmt.Fprintf(os.Stderr, "  Output dir: %s\n", cfg.OutDir)
		fmt.Fprintf(os.Stderr, "  Fixes:      %s\n", cfg.FixesFile)
		fmt.Fprintf(os.Stderr, "  Jobs:       %d\n", cfg.Jobs)
		fmt.Fprintf(os.Stderr, "\n")
	}

	if _, err := os.Stat(cfg.FixesFile); os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "No fixes file at %s — copying raw files through unchanged\n", cfg.FixesFile)
	}

	d := dispatch.New(cfg)
	summaries, err := d.Run(context.Background())

	// Report the years that completed even when a later one failed.
	for _, s := range summaries {
		switch s.Mode {
		case model.ModeCopied:
			fmt.Fprintf(os.Stderr, "– [%d] no fixes → copied\n", s.Year)
		case model.ModeMerged:
			fmt.Fprintf(os.Stderr, "✓ [%d] added %d new rows (pruned %d, backfilled %d)\n", s.Year, s.Added, s.Pruned, s.Backfilled)
		}
	}
	if err != nil {
		return fmt.Errorf("merge failed: %w", err)
	}
	if len(summaries) == 0 {
		fmt.Fprintf(os.Stderr, "No %s_<year>.csv files found in %s\n", cfg.Prefix, cfg.RawDir)
		return nil
	}

	fmt.Println(summaryTable(summaries))
	return nil
}

// summaryTable renders the per-year outcome table.
func summaryTable(summaries []model.YearSummary) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Year", "Mode", "Added", "Pruned", "Backfilled"})
	for _, s := range summaries {
		tw.AppendRow(table.Row{s.Year, string(s.Mode), s.Added, s.Pruned, s.Backfilled})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 3, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 4, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 5, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})
	return tw.Render()
}
