package depth

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"
	log "github.com/sirupsen/logrus"
)

// RefDepths holds the recorded per-position depths for a single reference.
type RefDepths struct {
	depths    map[int]int
	positions int
}

// Depth returns the recorded depth at pos.
func (r *RefDepths) Depth(pos int) (int, bool) {
	d, ok := r.depths[pos]
	return d, ok
}

// Positions returns the number of depth records loaded for the reference.
func (r *RefDepths) Positions() int {
	return r.positions
}

// Sum returns the total of all recorded depths.
func (r *RefDepths) Sum() int {
	total := 0
	for _, d := range r.depths {
		total += d
	}
	return total
}

// CountAbove returns the number of recorded positions whose depth is
// strictly greater than threshold.
func (r *RefDepths) CountAbove(threshold int) int {
	n := 0
	for _, d := range r.depths {
		if d > threshold {
			n++
		}
	}
	return n
}

// Table maps reference names to their recorded per-position depths.
// It is built once by Load and read-only afterwards.
type Table struct {
	refs map[string]*RefDepths
}

// Ref looks up the depths recorded for a reference.
func (t *Table) Ref(name string) (*RefDepths, bool) {
	r, ok := t.refs[name]
	return r, ok
}

// Refs returns the number of references in the table.
func (t *Table) Refs() int {
	return len(t.refs)
}

// Load reads a whitespace-delimited depth table with one
// "reference position depth" record per line, as produced by
// samtools depth. Positions are kept as given. Files ending in .gz
// are decompressed on the fly. A repeated (reference, position) pair
// overwrites the stored depth but still counts as a record.
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open depth file: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		zr, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("failed to open gzip depth file: %w", err)
		}
		defer zr.Close()
		r = zr
	}

	t := &Table{refs: make(map[string]*RefDepths)}
	records := 0
	lineNo := 0
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 3 {
			return nil, fmt.Errorf("depth file %s line %d: expected 3 columns, got %d", path, lineNo, len(fields))
		}
		pos, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, fmt.Errorf("depth file %s line %d: bad position: %w", path, lineNo, err)
		}
		dp, err := strconv.Atoi(fields[2])
		if err != nil {
			return nil, fmt.Errorf("depth file %s line %d: bad depth: %w", path, lineNo, err)
		}

		rd, ok := t.refs[fields[0]]
		if !ok {
			rd = &RefDepths{depths: make(map[int]int)}
			t.refs[fields[0]] = rd
		}
		rd.depths[pos] = dp
		rd.positions++
		records++
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read depth file: %w", err)
	}

	log.Debugf("loaded %d depth records for %d references from %s", records, len(t.refs), path)
	return t, nil
}
