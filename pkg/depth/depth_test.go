package depth

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDepthFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeDepthFile(t, "sample.depth.tsv",
		"chr1\t1\t20\n"+
			"chr1\t2\t25\n"+
			"chr1\t3\t15\n"+
			"chr2\t10\t5\n"+
			"chr2\t11\t7\n")

	table, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, table.Refs())

	chr1, ok := table.Ref("chr1")
	require.True(t, ok)
	assert.Equal(t, 3, chr1.Positions())
	assert.Equal(t, 60, chr1.Sum())

	d, ok := chr1.Depth(2)
	require.True(t, ok)
	assert.Equal(t, 25, d)
	_, ok = chr1.Depth(4)
	assert.False(t, ok)

	chr2, ok := table.Ref("chr2")
	require.True(t, ok)
	assert.Equal(t, 2, chr2.Positions())
	assert.Equal(t, 12, chr2.Sum())

	// Recorded positions across references account for every line.
	assert.Equal(t, 5, chr1.Positions()+chr2.Positions())

	_, ok = table.Ref("chrM")
	assert.False(t, ok)
}

func TestLoadGzip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.depth.tsv.gz")
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := gzip.NewWriter(f)
	_, err = zw.Write([]byte("chr1\t1\t20\nchr1\t2\t30\n"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	table, err := Load(path)
	require.NoError(t, err)

	chr1, ok := table.Ref("chr1")
	require.True(t, ok)
	assert.Equal(t, 2, chr1.Positions())
	assert.Equal(t, 50, chr1.Sum())
}

func TestLoadMalformed(t *testing.T) {
	for name, content := range map[string]string{
		"missing column": "chr1\t1\n",
		"extra column":   "chr1\t1\t20\tx\n",
		"bad position":   "chr1\tone\t20\n",
		"bad depth":      "chr1\t1\tdeep\n",
	} {
		path := writeDepthFile(t, "bad.tsv", content)
		_, err := Load(path)
		assert.Error(t, err, name)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.tsv"))
	assert.Error(t, err)
}

func TestLoadDuplicatePosition(t *testing.T) {
	path := writeDepthFile(t, "dup.tsv",
		"chr1\t5\t10\nchr1\t5\t30\n")

	table, err := Load(path)
	require.NoError(t, err)

	chr1, ok := table.Ref("chr1")
	require.True(t, ok)
	// Last value wins, but both lines count as records.
	d, ok := chr1.Depth(5)
	require.True(t, ok)
	assert.Equal(t, 30, d)
	assert.Equal(t, 2, chr1.Positions())
}

func TestCountAbove(t *testing.T) {
	path := writeDepthFile(t, "cov.tsv",
		"chr1\t1\t1\n"+
			"chr1\t2\t11\n"+
			"chr1\t3\t60\n"+
			"chr1\t4\t200\n"+
			"chr1\t5\t400\n")

	table, err := Load(path)
	require.NoError(t, err)
	chr1, ok := table.Ref("chr1")
	require.True(t, ok)

	// Strictly-greater comparison: depth 1 does not qualify at cutoff 1,
	// while 11, 60, 200 and 400 all qualify at cutoff 10.
	assert.Equal(t, 4, chr1.CountAbove(1))
	assert.Equal(t, 4, chr1.CountAbove(10))
	assert.Equal(t, 3, chr1.CountAbove(50))
	assert.Equal(t, 2, chr1.CountAbove(100))
	assert.Equal(t, 1, chr1.CountAbove(300))

	// Qualifying sets shrink as the cutoff grows.
	prev := chr1.CountAbove(0)
	for _, cutoff := range []int{1, 10, 50, 100, 300} {
		n := chr1.CountAbove(cutoff)
		assert.LessOrEqual(t, n, prev)
		prev = n
	}
}
