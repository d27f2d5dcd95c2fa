package confidence

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/jhuaplbio/samconf-go/pkg/depth"
)

// Thresholds are the depth cutoffs reported in the final column.
var Thresholds = []int{1, 10, 50, 100, 300}

var headers = []string{
	"Accession",
	"Mean Depth",
	"Average Coverage",
	"Ref Size",
	"Total Reads Aligned",
	"% Reads Aligned",
	"Stdev",
	"Abundance Aligned",
	"1:10:50:100:300X Cov.",
}

// fm renders a statistic: exact zero as "0", strictly positive values
// below 0.01 as "<0.01", anything else with two decimal digits.
func fm(x float64) string {
	switch {
	case x == 0:
		return "0"
	case x > 0 && x < 0.01:
		return "<0.01"
	default:
		return strconv.FormatFloat(x, 'f', 2, 64)
	}
}

// formatRow renders the report line for one reference. rd must hold the
// reference's depth records and totalReads the run-wide aligned total.
func formatRow(st RefStats, rd *depth.RefDepths, totalReads int64) string {
	avgCoverage := float64(st.Bases) / float64(st.Length)

	totalDepth := rd.Sum()
	avgDepth := float64(totalDepth) / float64(rd.Positions())

	bases := float64(st.Bases)
	mean := float64(totalDepth) / bases
	stdev := math.Sqrt(math.Abs(float64(st.SumSq)/bases - mean*mean))

	abundance := float64(st.Reads) / float64(totalReads)

	cov := make([]string, len(Thresholds))
	for i, t := range Thresholds {
		cov[i] = fm(100 * float64(rd.CountAbove(t)) / float64(st.Length))
	}

	return fmt.Sprintf("%s\t%s\t%s\t%d\t%d\t%s\t%s\t%s\t%s",
		st.Name, fm(avgDepth), fm(avgCoverage), st.Length, st.Reads,
		fm(100*abundance), fm(stdev), fm(abundance), strings.Join(cov, ":"))
}

// WriteReport writes one tab-separated row per qualifying reference to
// path and mirrors every row to stdout. The column header goes to
// stdout only. References absent from the depth table or with zero
// observed coverage are skipped.
func WriteReport(path string, sum *Summary, table *depth.Table) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	w := bufio.NewWriter(f)

	fmt.Println(strings.Join(headers, "\t"))

	rows := 0
	for _, st := range sum.Refs {
		rd, ok := table.Ref(st.Name)
		if !ok || st.Bases == 0 {
			continue
		}
		line := formatRow(st, rd, sum.TotalReadsAligned)
		fmt.Fprintln(w, line)
		fmt.Println(line)
		rows++
	}

	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("failed to write report: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close report: %w", err)
	}

	log.Infof("wrote %d rows to %s", rows, path)
	return nil
}
