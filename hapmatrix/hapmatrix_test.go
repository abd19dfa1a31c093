package hapmatrix

import (
	"strings"
	"testing"

	"github.com/ascendo/LACHESIS/interval"
	"github.com/ascendo/LACHESIS/textio"
	"github.com/ascendo/LACHESIS/variant"
	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/testutil/assert"
	"github.com/grailbio/testutil/expect"
	"github.com/pkg/errors"
)

func TestParseSim(t *testing.T) {
	m, err := ParseSim(vcontext.Background(), "testdata/sim.txt")
	assert.NoError(t, err)
	expect.EQ(t, m, SimMatrix{
		NClones:   3,
		NLoci:     6,
		FragSize:  3,
		Frags:     []string{"01-", "110", "-01"},
		Offsets:   []int{0, 2, 3},
		FragTruth: []variant.Tribool{variant.True, variant.False, variant.Unknown},
		LociTruth: "010110",
	})
}

func TestReadSimMalformed(t *testing.T) {
	const hdr = "CLONES 1\nLOCI 4\nFRAGSIZE 2\n"
	tests := []struct {
		input string
		line  int
	}{
		{"CLONES 1\nLOCI 4\nFRAG 0 01 1\nTRUTH 0101\n", 3},
		{"CLONES 1\nCLONES 2\n", 2},
		{"CLONES x\n", 1},
		{"CLONES 0\n", 1},
		{"CLONES 1 2\n", 1},
		{"CLONES 1\nLOCI 4\nFRAGSIZE 5\nFRAG 0 01 1\n", 4},
		{hdr + "FRAG 3 01 1\nTRUTH 0101\n", 4},
		{hdr + "FRAG -1 01 1\nTRUTH 0101\n", 4},
		{hdr + "FRAG 0 012 1\nTRUTH 0101\n", 4},
		{hdr + "FRAG 0 0x 1\nTRUTH 0101\n", 4},
		{hdr + "FRAG 0 01 maybe\nTRUTH 0101\n", 4},
		{hdr + "FRAG 0 01\nTRUTH 0101\n", 4},
		{hdr + "FRAG 0 01 1\nFRAG 1 01 1\nTRUTH 0101\n", 5},
		{hdr + "FRAG 0 01 1\nLOCI 4\n", 5},
		{hdr + "FRAG 0 01 1\nTRUTH 010\n", 5},
		{hdr + "FRAG 0 01 1\nTRUTH 01-1\n", 5},
		{hdr + "FRAG 0 01 1\nTRUTH 0101\nTRUTH 0101\n", 6},
		{hdr + "FRAG 0 01 1\n", 4},
		{hdr + "TRUTH 0101\n", 4},
		{"CLONES 2\nLOCI 4\nFRAGSIZE 2\nFRAG 0 01 1\nTRUTH 0101\n", 5},
		{hdr, 3},
		{hdr + "BOGUS 1\n", 4},
	}
	for _, test := range tests {
		m, err := ReadSim(strings.NewReader(test.input), "sim")
		expect.True(t, errors.Is(err, textio.ErrMalformedLine), test.input)
		if lerr, ok := err.(*textio.LineError); ok {
			expect.EQ(t, lerr.Line, test.line, test.input)
		}
		expect.EQ(t, m.NClones, 0)
		expect.True(t, m.Frags == nil)
	}
}

func TestParseReal(t *testing.T) {
	m, err := ParseReal(vcontext.Background(), "testdata/real.txt")
	assert.NoError(t, err)
	expect.EQ(t, m.NFrags, 2)
	expect.EQ(t, m.NLoci, 4)
	expect.EQ(t, m.VarCalls, map[string][]CloneCall{
		"chr1_100_A_G": {{Clone: 0, Het: true}, {Clone: 1, Het: false}},
		"chr1_250_C_T": {{Clone: 1, Het: true}},
		"chr2_5_G_A":   {},
	})
	expect.EQ(t, m.CloneCalls, []map[int]string{
		{0: "G", 1: "C"},
		{1: "T", 2: "A", 3: "G"},
	})
	expect.EQ(t, m.CloneIntervals, []interval.Interval{
		{Chrom: "chr1", Start: 90, Stop: 300},
		{Chrom: "chr1", Start: 200, Stop: 400},
	})
	expect.EQ(t, m.CloneQuals, []float64{35.5, 12})
}

func TestReadRealMalformed(t *testing.T) {
	const hdr = "FRAGS 1\nLOCI 2\n"
	for _, input := range []string{
		"FRAGS 1\nVAR x 0:1\n",
		"LOCI 2\nLOCI 2\n",
		hdr + "VAR x 1:1\nCLONE 0 chr1 0 5 1\n",
		hdr + "VAR x 0:2\nCLONE 0 chr1 0 5 1\n",
		hdr + "VAR x 01\nCLONE 0 chr1 0 5 1\n",
		hdr + "VAR\nCLONE 0 chr1 0 5 1\n",
		hdr + "CLONE 0 chr1 0 5\n",
		hdr + "CLONE 1 chr1 0 5 1\n",
		hdr + "CLONE 0 chr1 5 0 1\n",
		hdr + "CLONE 0 chr1 a 5 1\n",
		hdr + "CLONE 0 chr1 0 5 hi\n",
		hdr + "CLONE 0 chr1 0 5 1 2=A\n",
		hdr + "CLONE 0 chr1 0 5 1 0=A 0=C\n",
		hdr + "CLONE 0 chr1 0 5 1 0=\n",
		hdr + "CLONE 0 chr1 0 5 1\nCLONE 0 chr1 0 5 1\n",
		hdr + "CLONE 0 chr1 0 5 1\nFRAGS 1\n",
		"FRAGS 2\nLOCI 2\nCLONE 0 chr1 0 5 1\n",
		hdr,
		hdr + "SNP x\n",
	} {
		m, err := ReadReal(strings.NewReader(input), "real")
		expect.True(t, errors.Is(err, textio.ErrMalformedLine), input)
		expect.True(t, m.VarCalls == nil, input)
	}
}

func TestParseMissing(t *testing.T) {
	ctx := vcontext.Background()
	_, err := ParseSim(ctx, "testdata/nonexistent.txt")
	expect.True(t, errors.Is(err, textio.ErrFileNotFound))
	_, err = ParseReal(ctx, "testdata/nonexistent.txt")
	expect.True(t, errors.Is(err, textio.ErrFileNotFound))
}
