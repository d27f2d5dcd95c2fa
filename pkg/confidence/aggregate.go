package confidence

import (
	"fmt"
	"io"
	"os"

	"github.com/biogo/hts/bam"
	"github.com/biogo/hts/sam"
	log "github.com/sirupsen/logrus"

	"github.com/jhuaplbio/samconf-go/pkg/depth"
)

// Aggregate scans every mapped record in the BAM file and accumulates,
// per reference, the aligned-read count, the aligned-base count and the
// sum of squared depths for scanned positions present in the depth
// table. Reference names and lengths come from the BAM header and are
// resolved against the depth table once, before the record scan.
func Aggregate(bamPath string, table *depth.Table) (*Summary, error) {
	f, err := os.Open(bamPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open BAM file: %w", err)
	}
	defer f.Close()

	br, err := bam.NewReader(f, 1)
	if err != nil {
		return nil, fmt.Errorf("failed to create BAM reader: %w", err)
	}
	defer br.Close()
	br.Omit(bam.AuxTags)

	refs := br.Header().Refs()
	sum := &Summary{Refs: make([]RefStats, len(refs))}
	depths := make([]*depth.RefDepths, len(refs))
	for i, ref := range refs {
		sum.Refs[i] = RefStats{Name: ref.Name(), Length: ref.Len()}
		if rd, ok := table.Ref(ref.Name()); ok {
			depths[i] = rd
		}
	}

	var scanned int64
	for {
		rec, err := br.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read BAM record: %w", err)
		}
		scanned++
		if rec.Flags&sam.Unmapped != 0 || rec.Ref == nil {
			continue
		}

		id := rec.Ref.ID()
		st := &sum.Refs[id]
		st.Reads++
		sum.TotalReadsAligned++

		rd := depths[id]
		end := rec.End()
		for pos := rec.Pos; pos < end; pos++ {
			st.Bases++
			if rd == nil {
				continue
			}
			if dp, ok := rd.Depth(pos); ok {
				st.SumSq += int64(dp) * int64(dp)
			}
		}
	}

	log.Debugf("scanned %d records, %d aligned reads across %d references",
		scanned, sum.TotalReadsAligned, len(refs))
	return sum, nil
}
