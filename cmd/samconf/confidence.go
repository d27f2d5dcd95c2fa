package main

import (
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jhuaplbio/samconf-go/pkg/confidence"
	"github.com/jhuaplbio/samconf-go/pkg/depth"
)

var (
	bamFile   string
	depthFile string
	fileOut   string
	logLevel  string
)

func init() {
	rootCmd.Flags().StringVar(&bamFile, "bamfile", "",
		"BAM alignment file")
	rootCmd.Flags().StringVar(&depthFile, "depth", "",
		"per-position depth table (samtools depth output, optionally gzipped)")
	rootCmd.Flags().StringVar(&fileOut, "file_out", "",
		"output TSV path")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "WARNING",
		"log level: CRITICAL, ERROR, WARNING, INFO or DEBUG")
	for _, name := range []string{"bamfile", "depth", "file_out"} {
		cobra.CheckErr(rootCmd.MarkFlagRequired(name))
	}
}

// setupLogging validates --log-level before the pipeline runs,
// rejecting a bad choice at the argument boundary.
func setupLogging(cmd *cobra.Command, args []string) error {
	level, err := parseLogLevel(logLevel)
	if err != nil {
		return err
	}
	log.SetLevel(level)
	return nil
}

func runConfidence(cmd *cobra.Command, args []string) error {
	table, err := depth.Load(depthFile)
	if err != nil {
		return fmt.Errorf("failed to load depth table: %w", err)
	}

	log.Infof("indexing %s", bamFile)
	if err := confidence.EnsureIndex(bamFile); err != nil {
		return fmt.Errorf("failed to index BAM file: %w", err)
	}

	sum, err := confidence.Aggregate(bamFile, table)
	if err != nil {
		return fmt.Errorf("failed to aggregate alignments: %w", err)
	}

	return confidence.WriteReport(fileOut, sum, table)
}

// parseLogLevel maps the CRITICAL/ERROR/WARNING/INFO/DEBUG level names
// to logrus levels.
func parseLogLevel(name string) (log.Level, error) {
	switch strings.ToUpper(name) {
	case "CRITICAL":
		return log.FatalLevel, nil
	case "ERROR":
		return log.ErrorLevel, nil
	case "WARNING":
		return log.WarnLevel, nil
	case "INFO":
		return log.InfoLevel, nil
	case "DEBUG":
		return log.DebugLevel, nil
	}
	return log.WarnLevel, fmt.Errorf("invalid log level %q", name)
}
