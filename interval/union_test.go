package interval

import (
	"reflect"
	"testing"

	"github.com/grailbio/testutil/assert"
	"github.com/grailbio/testutil/expect"
	"github.com/pkg/errors"
)

func TestNewUnion(t *testing.T) {
	u, err := NewUnion([]Interval{
		iv("chr1", 30, 40), iv("chr1", 10, 20), iv("chr1", 15, 25), iv("chr2", 5, 5), iv("chr2", 0, 3),
	})
	assert.NoError(t, err)
	want := map[string][]PosType{
		"chr1": {10, 25, 30, 40},
		"chr2": {0, 3},
	}
	if !reflect.DeepEqual(u.ends, want) {
		t.Errorf("Wanted: %v  Got: %v", want, u.ends)
	}
	expect.EQ(t, u.Chroms(), 2)
}

func TestUnionContainsByName(t *testing.T) {
	u, err := NewUnion([]Interval{iv("chr1", 10, 25), iv("chr1", 30, 40), iv("chr2", 0, 3)})
	assert.NoError(t, err)
	tests := []struct {
		chrom string
		pos   PosType
		want  bool
	}{
		// Sequential queries exercise the exponential-search path.
		{"chr1", 9, false},
		{"chr1", 10, true},
		{"chr1", 24, true},
		{"chr1", 25, false},
		{"chr1", 30, true},
		{"chr1", 39, true},
		{"chr1", 40, false},
		// Out of order.
		{"chr1", 11, true},
		{"chr1", 29, false},
		{"chr2", 2, true},
		{"chr3", 2, false},
		{"chr3", 3, false},
		{"chr1", 12, true},
	}
	for _, tt := range tests {
		expect.EQ(t, u.ContainsByName(tt.chrom, tt.pos), tt.want, "%s:%d", tt.chrom, tt.pos)
	}

	clone := u.Clone()
	expect.True(t, clone.ContainsByName("chr2", 0))
	expect.False(t, clone.ContainsByName("chr2", 3))
}

func TestUnionIntersects(t *testing.T) {
	u, err := NewUnion([]Interval{iv("chr1", 10, 25), iv("chr1", 30, 40)})
	assert.NoError(t, err)
	tests := []struct {
		q    Interval
		want bool
	}{
		{iv("chr1", 0, 10), false},
		{iv("chr1", 0, 11), true},
		{iv("chr1", 24, 26), true},
		{iv("chr1", 25, 30), false},
		{iv("chr1", 26, 35), true},
		{iv("chr1", 40, 50), false},
		{iv("chr1", 12, 12), false},
		{iv("chr9", 0, 100), false},
	}
	for _, tt := range tests {
		expect.EQ(t, u.Intersects(tt.q), tt.want, "%v", tt.q)
	}
}

func TestCountUpToFrom(t *testing.T) {
	ends := []PosType{2, 5, 5, 9, 14, 20, 21, 40}
	for pos := PosType(0); pos < 45; pos++ {
		want := countUpTo(ends, pos)
		for from := 0; from <= want; from++ {
			expect.EQ(t, countUpToFrom(ends, pos, from), want, "pos %d from %d", pos, from)
		}
	}
	expect.EQ(t, countUpToFrom(nil, 3, 0), 0)
}

func TestParseRegionString(t *testing.T) {
	tests := []struct {
		region string
		want   Interval
	}{
		{"chr1:1-1000", iv("chr1", 0, 1000)},
		{"chr1:1000", iv("chr1", 999, 1000)},
		{"chr1:7-7", iv("chr1", 6, 7)},
		{"chr1", iv("chr1", 0, PosTypeMax-1)},
	}
	for _, tt := range tests {
		result, err := ParseRegionString(tt.region)
		expect.NoError(t, err)
		expect.EQ(t, result, tt.want)
	}
	for _, bad := range []string{
		"", ":5", "chr1:", "chr1:0", "chr1:-5", "chr1:10-5", "chr1:9-5", "chr1:a-b", "chr1:x-5", "chr1:5-",
		"chr1:5-2147483647", "chr1:99999999999",
	} {
		_, err := ParseRegionString(bad)
		expect.True(t, errors.Is(err, ErrInvalidInterval), bad)
	}
}
