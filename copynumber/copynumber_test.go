package copynumber

import (
	"strings"
	"testing"

	"github.com/ascendo/LACHESIS/interval"
	"github.com/ascendo/LACHESIS/textio"
	"github.com/grailbio/base/vcontext"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func iv(chrom string, start, stop interval.PosType) interval.Interval {
	return interval.Interval{Chrom: chrom, Start: start, Stop: stop}
}

func call(chrom string, start, stop interval.PosType, cn int) Call {
	return Call{Interval: iv(chrom, start, stop), CN: cn}
}

func TestParse(t *testing.T) {
	idx, err := Parse(vcontext.Background(), "testdata/cn.bedgraph", interval.ParseOpts{})
	require.NoError(t, err)
	assert.Equal(t, 5, idx.Len())
	assert.Equal(t, []string{"chr1", "chr2", "chr10"}, idx.Chroms())
	assert.Equal(t, []Call{
		call("chr1", 0, 100, 2),
		call("chr1", 0, 100, 4),
		call("chr1", 50, 150, 3),
		call("chr2", 0, 10, 1),
		call("chr10", 5, 5, 2),
	}, idx.Entries())
	assert.Equal(t, []int{2, 4}, idx.Lookup(iv("chr1", 0, 100)))
	assert.Nil(t, idx.Lookup(iv("chr1", 0, 99)))
}

func TestChromFilter(t *testing.T) {
	ctx := vcontext.Background()
	idx, err := Parse(ctx, "testdata/cn.bedgraph", interval.ParseOpts{Chrom: "chr2"})
	require.NoError(t, err)
	for _, c := range idx.Entries() {
		assert.Equal(t, "chr2", c.Chrom)
	}
	assert.Equal(t, 1, idx.Len())

	order := interval.NewChromOrder([]string{"chr1", "chr2", "chr10"})
	_, err = Parse(ctx, "testdata/cn.bedgraph", interval.ParseOpts{Chrom: "chr3", Order: order})
	assert.True(t, errors.Is(err, interval.ErrUnknownChromosome))
}

func TestExplicitOrder(t *testing.T) {
	order := interval.NewChromOrder([]string{"chr10", "chr2", "chr1"})
	idx, err := Parse(vcontext.Background(), "testdata/cn.bedgraph", interval.ParseOpts{Order: order})
	require.NoError(t, err)
	entries := idx.Entries()
	assert.Equal(t, "chr10", entries[0].Chrom)
	assert.Equal(t, "chr1", entries[len(entries)-1].Chrom)
	assert.Equal(t, []string{"chr10", "chr2", "chr1"}, idx.Chroms())
}

func TestOverlapping(t *testing.T) {
	idx, err := Parse(vcontext.Background(), "testdata/cn.bedgraph", interval.ParseOpts{})
	require.NoError(t, err)
	assert.Equal(t, []Call{call("chr1", 0, 100, 2), call("chr1", 0, 100, 4), call("chr1", 50, 150, 3)},
		idx.At("chr1", 60))
	assert.Equal(t, []Call{call("chr1", 50, 150, 3)}, idx.At("chr1", 120))
	assert.Empty(t, idx.At("chr1", 150))
	assert.Empty(t, idx.Overlapping(iv("chr2", 10, 20)))
	assert.Equal(t, []Call{call("chr2", 0, 10, 1)}, idx.Overlapping(iv("chr2", 9, 20)))
	// Empty calls are indexed but overlap nothing.
	assert.Empty(t, idx.At("chr10", 5))
	assert.Empty(t, idx.At("chrY", 5))
}

func TestReadMalformed(t *testing.T) {
	for _, input := range []string{
		"chr1\t0\t5\n",
		"chr1\t0\t5\ttwo\n",
		"chr1\t0\t5\t2.5\n",
		"chr1\t0\t5\t-1\n",
		"chr1\t9\t5\t2\n",
	} {
		_, err := Read(strings.NewReader(input), "bad.cn", interval.ParseOpts{})
		assert.True(t, errors.Is(err, textio.ErrMalformedLine), input)
	}
}

func TestEmpty(t *testing.T) {
	idx, err := Read(strings.NewReader("# nothing\n"), "empty.cn", interval.ParseOpts{})
	require.NoError(t, err)
	assert.Equal(t, 0, idx.Len())
	assert.Empty(t, idx.Entries())
	assert.Empty(t, idx.Chroms())
}
