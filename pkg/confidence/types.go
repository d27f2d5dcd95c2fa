package confidence

// RefStats accumulates alignment statistics for one reference sequence.
// The fields are filled during the BAM scan and never mutated afterwards.
type RefStats struct {
	Name   string
	Length int
	Reads  int64 // mapped reads aligned to this reference
	Bases  int64 // aligned-base count (per-base coverage increments)
	SumSq  int64 // sum of squared recorded depths over scanned positions
}

// Summary holds the per-reference accumulators, addressed by BAM
// reference ID, plus the run-wide aligned-read total.
type Summary struct {
	Refs              []RefStats
	TotalReadsAligned int64
}
