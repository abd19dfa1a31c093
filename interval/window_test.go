package interval

import (
	"testing"

	"github.com/grailbio/testutil/assert"
	"github.com/grailbio/testutil/expect"
	"github.com/pkg/errors"
)

func sevenIntervals(chrom string) []Interval {
	var ivs []Interval
	for i := PosType(0); i < 7; i++ {
		ivs = append(ivs, iv(chrom, i*10, i*10+5))
	}
	return ivs
}

func TestPartitionSizes(t *testing.T) {
	merged := map[string][]Interval{"chr1": sevenIntervals("chr1")}
	ws, err := Partition(merged, 3, nil)
	assert.NoError(t, err)
	expect.EQ(t, ws.Chroms, []string{"chr1"})
	windows := ws.ByChrom["chr1"]
	assert.EQ(t, len(windows), 3)
	expect.EQ(t, []int{windows[0].Len(), windows[1].Len(), windows[2].Len()}, []int{3, 3, 1})
	expect.EQ(t, ws.Intervals("chr1"), merged["chr1"])
	expect.EQ(t, windows[1].Span(), iv("chr1", 30, 55))
	expect.EQ(t, ws.Len(), 3)
}

func TestPartitionPerChromosome(t *testing.T) {
	merged := map[string][]Interval{
		"chr10": sevenIntervals("chr10")[:2],
		"chr2":  sevenIntervals("chr2"),
		"chr3":  nil,
	}
	ws, err := Partition(merged, 4, nil)
	assert.NoError(t, err)
	expect.EQ(t, ws.Chroms, []string{"chr2", "chr10"})
	expect.EQ(t, len(ws.ByChrom["chr2"]), 2)
	expect.EQ(t, len(ws.ByChrom["chr10"]), 1)
	expect.EQ(t, ws.ByChrom["chr10"][0].Len(), 2)

	ws, err = Partition(merged, 1, NewChromOrder([]string{"chr10", "chr2"}))
	assert.NoError(t, err)
	expect.EQ(t, ws.Chroms, []string{"chr10", "chr2"})
	expect.EQ(t, ws.Len(), 9)
}

func TestPartitionWindowsDontAlias(t *testing.T) {
	merged := map[string][]Interval{"chr1": sevenIntervals("chr1")}
	ws, err := Partition(merged, 3, nil)
	assert.NoError(t, err)
	w := ws.ByChrom["chr1"][0]
	w.Intervals = append(w.Intervals, iv("chr1", 1000, 1001))
	expect.EQ(t, ws.ByChrom["chr1"][1].Intervals[0], iv("chr1", 30, 35))
}

func TestPartitionInvalidWindowSize(t *testing.T) {
	merged := map[string][]Interval{"chr1": sevenIntervals("chr1")}
	for _, k := range []int{0, -1} {
		_, err := Partition(merged, k, nil)
		expect.True(t, errors.Is(err, ErrInvalidWindowSize), "k=%d", k)
		_, err = Partition(nil, k, nil)
		expect.True(t, errors.Is(err, ErrInvalidWindowSize), "k=%d", k)
	}
}

func TestPartitionRejectsUnmerged(t *testing.T) {
	_, err := Partition(map[string][]Interval{"chr1": {iv("chr1", 0, 10), iv("chr1", 10, 20)}}, 2, nil)
	expect.True(t, errors.Is(err, ErrNotMerged))
	_, err = Partition(map[string][]Interval{"chr1": {iv("chr2", 0, 10)}}, 2, nil)
	expect.True(t, errors.Is(err, ErrMixedChromosomes))
}

func TestEmptyInputs(t *testing.T) {
	merged, err := Merge(nil)
	assert.NoError(t, err)
	expect.EQ(t, len(merged), 0)

	ws, err := Partition(map[string][]Interval{}, 3, nil)
	assert.NoError(t, err)
	expect.EQ(t, ws.Len(), 0)
	expect.EQ(t, len(ws.Chroms), 0)

	ws, err = MergeAndPartition(nil, 3, nil)
	assert.NoError(t, err)
	expect.EQ(t, ws.Len(), 0)
}
