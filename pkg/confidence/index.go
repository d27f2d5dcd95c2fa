package confidence

import (
	"fmt"
	"io"
	"os"

	"github.com/biogo/hts/bam"
)

// EnsureIndex rebuilds the BAI index for bamPath, overwriting any
// existing one. Indexing fails if the file is not coordinate sorted.
func EnsureIndex(bamPath string) error {
	f, err := os.Open(bamPath)
	if err != nil {
		return fmt.Errorf("failed to open BAM file: %w", err)
	}
	defer f.Close()

	br, err := bam.NewReader(f, 1)
	if err != nil {
		return fmt.Errorf("failed to create BAM reader: %w", err)
	}
	defer br.Close()

	var bai bam.Index
	for {
		rec, err := br.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read BAM record: %w", err)
		}
		if err := bai.Add(rec, br.LastChunk()); err != nil {
			return fmt.Errorf("failed to add record to BAM index: %w", err)
		}
	}

	out, err := os.Create(bamPath + ".bai")
	if err != nil {
		return fmt.Errorf("failed to create index file: %w", err)
	}
	if err := bam.WriteIndex(out, &bai); err != nil {
		out.Close()
		return fmt.Errorf("failed to write BAM index: %w", err)
	}
	return out.Close()
}
