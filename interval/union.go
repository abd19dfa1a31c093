package interval

import (
	"sort"
)

// Union is an interval-union for point and range lookups, e.g. restricting
// variants to target regions.
//
// Each chromosome maps to a flat, increasing endpoint list: merged interval k
// spans [ends[2k], ends[2k+1]).  A position p is covered iff the number of
// endpoints <= p is odd.
//
// A Union remembers where its last point query landed so that queries in
// nondecreasing order walk forward instead of searching from scratch.  It
// must therefore not be queried concurrently; use Clone to give each
// goroutine its own.
type Union struct {
	ends map[string][]PosType
	cur  cursor
}

// cursor is the position of the most recent ContainsByName query.
type cursor struct {
	chrom string
	ends  []PosType
	// pos is the last queried position and idx the number of endpoints <= pos.
	pos PosType
	idx int
	// valid is false until the first query on chrom.
	valid bool
}

// NewUnion returns the union of ivs, which may span chromosomes, overlap, and
// be in any order.  Empty intervals contribute nothing.
func NewUnion(ivs []Interval) (*Union, error) {
	var nonEmpty []Interval
	for _, iv := range ivs {
		if !iv.Empty() {
			nonEmpty = append(nonEmpty, iv)
		}
	}
	groups, _ := GroupByChrom(nonEmpty, nil)
	merged, err := MergeAll(groups)
	if err != nil {
		return nil, err
	}
	u := &Union{ends: make(map[string][]PosType, len(merged))}
	for chrom, m := range merged {
		ends := make([]PosType, 0, 2*len(m))
		for _, iv := range m {
			ends = append(ends, iv.Start, iv.Stop)
		}
		u.ends[chrom] = ends
	}
	return u, nil
}

// countUpTo returns the number of elements of ends that are <= pos.
func countUpTo(ends []PosType, pos PosType) int {
	return sort.Search(len(ends), func(i int) bool { return ends[i] > pos })
}

// countUpToFrom is countUpTo for a caller that knows the answer is >= from.
// It gallops forward from from, doubling its stride, then bisects the last
// stride.
func countUpToFrom(ends []PosType, pos PosType, from int) int {
	lo, stride := from, 1
	for lo+stride <= len(ends) && ends[lo+stride-1] <= pos {
		lo += stride
		stride *= 2
	}
	hi := lo + stride
	if hi > len(ends) {
		hi = len(ends)
	}
	return lo + countUpTo(ends[lo:hi], pos)
}

// ContainsByName reports whether the base at the 0-based position pos of
// chrom is covered.
func (u *Union) ContainsByName(chrom string, pos PosType) bool {
	c := &u.cur
	if !c.valid || c.chrom != chrom {
		*c = cursor{chrom: chrom, ends: u.ends[chrom], pos: pos, valid: true}
		c.idx = countUpTo(c.ends, pos)
		return c.idx&1 == 1
	}
	if pos < c.pos {
		// Out-of-order query; leave the cursor where it was.
		return countUpTo(c.ends, pos)&1 == 1
	}
	c.idx = countUpToFrom(c.ends, pos, c.idx)
	c.pos = pos
	return c.idx&1 == 1
}

// Intersects checks whether iv shares at least one base with the Union.
// Empty intervals never intersect.
func (u *Union) Intersects(iv Interval) bool {
	if iv.Empty() {
		return false
	}
	ends := u.ends[iv.Chrom]
	i := countUpTo(ends, iv.Start)
	if i&1 == 1 {
		return true
	}
	// iv.Start is in a gap; iv reaches the next interval iff it extends past
	// that interval's start.
	return i < len(ends) && iv.Stop > ends[i]
}

// Chroms returns the number of chromosomes with at least one interval.
func (u *Union) Chroms() int { return len(u.ends) }

// Clone returns a new Union which shares the interval set, but has its own
// query cursor.
func (u *Union) Clone() *Union {
	return &Union{ends: u.ends}
}
