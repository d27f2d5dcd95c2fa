package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "samconf",
	Short: "Per-reference alignment confidence statistics",
	Long: `samconf computes per-reference alignment statistics from a BAM file
and a companion per-position depth table (samtools depth output).

For every reference with observed coverage it reports mean depth,
average coverage, standard deviation, aligned-read abundance and
threshold coverage percentages as a tab-separated table, written to a
file and mirrored to standard output.

Example:
  samconf --bamfile sample.bam --depth sample.depth.tsv --file_out report.tsv`,
	PreRunE: setupLogging,
	RunE:    runConfidence,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("samconf version 0.1.0")
	},
}
