package copynumber

import (
	"sort"

	"github.com/ascendo/LACHESIS/interval"
	ivtree "github.com/biogo/store/interval"
	"github.com/biogo/store/llrb"
)

// Index is a multi-valued association from interval to copy number.  Entries
// iterate in interval order; the copy numbers of one interval keep their
// insertion order.  Overlap queries go through one interval tree per
// chromosome.  An Index is read-only once built.
type Index struct {
	order *interval.ChromOrder
	// byInterval holds one *entry per distinct interval.
	byInterval llrb.Tree
	// trees holds the non-empty calls of each chromosome; tree IDs index
	// calls.
	trees map[string]*ivtree.IntTree
	calls []Call
}

type entry struct {
	iv    interval.Interval
	order *interval.ChromOrder
	cns   []int
}

// Compare compares two entry objects for use in llrb.
func (e *entry) Compare(c llrb.Comparable) int {
	return e.order.Compare(e.iv, c.(*entry).iv)
}

// treeCall adapts a call to the biogo interval tree.
type treeCall struct {
	start, stop int
	id          uintptr
}

func (c treeCall) Overlap(b ivtree.IntRange) bool {
	// Half-open interval indexing.
	return c.stop > b.Start && c.start < b.End
}
func (c treeCall) ID() uintptr            { return c.id }
func (c treeCall) Range() ivtree.IntRange { return ivtree.IntRange{Start: c.start, End: c.stop} }

type treeQuery struct {
	start, stop int
}

func (q treeQuery) Overlap(b ivtree.IntRange) bool {
	return q.stop > b.Start && q.start < b.End
}

// NewIndex indexes calls.  order sets the chromosome order of Entries and
// query results; nil means natural order.
func NewIndex(calls []Call, order *interval.ChromOrder) *Index {
	idx := &Index{
		order: order,
		trees: make(map[string]*ivtree.IntTree),
		calls: calls,
	}
	for i, c := range calls {
		key := &entry{iv: c.Interval, order: order}
		if found := idx.byInterval.Get(key); found != nil {
			e := found.(*entry)
			e.cns = append(e.cns, c.CN)
		} else {
			key.cns = []int{c.CN}
			idx.byInterval.Insert(key)
		}
		if c.Empty() {
			// Empty ranges are rejected by the tree and overlap nothing.
			continue
		}
		tree := idx.trees[c.Chrom]
		if tree == nil {
			tree = &ivtree.IntTree{}
			idx.trees[c.Chrom] = tree
		}
		if err := tree.Insert(treeCall{start: int(c.Start), stop: int(c.Stop), id: uintptr(i)}, true); err != nil {
			panic(err)
		}
	}
	for _, tree := range idx.trees {
		tree.AdjustRanges()
	}
	return idx
}

// Len returns the number of calls, counting repeated intervals once per call.
func (idx *Index) Len() int { return len(idx.calls) }

// Chroms returns the chromosomes with at least one call, in order.
func (idx *Index) Chroms() []string {
	seen := make(map[string]bool)
	var chroms []string
	for _, c := range idx.calls {
		if !seen[c.Chrom] {
			seen[c.Chrom] = true
			chroms = append(chroms, c.Chrom)
		}
	}
	idx.order.SortChroms(chroms)
	return chroms
}

// Entries returns every call in interval order.
func (idx *Index) Entries() []Call {
	out := make([]Call, 0, len(idx.calls))
	idx.byInterval.Do(func(c llrb.Comparable) bool {
		e := c.(*entry)
		for _, cn := range e.cns {
			out = append(out, Call{Interval: e.iv, CN: cn})
		}
		return false
	})
	return out
}

// Lookup returns the copy numbers recorded for exactly iv, or nil.
func (idx *Index) Lookup(iv interval.Interval) []int {
	found := idx.byInterval.Get(&entry{iv: iv, order: idx.order})
	if found == nil {
		return nil
	}
	cns := found.(*entry).cns
	return append([]int(nil), cns...)
}

// Overlapping returns the calls sharing at least one base with iv, in
// interval order.
func (idx *Index) Overlapping(iv interval.Interval) []Call {
	tree := idx.trees[iv.Chrom]
	if tree == nil || iv.Empty() {
		return nil
	}
	hits := tree.Get(treeQuery{start: int(iv.Start), stop: int(iv.Stop)})
	ids := make([]int, len(hits))
	for i, h := range hits {
		ids[i] = int(h.ID())
	}
	sort.Slice(ids, func(i, j int) bool {
		if c := idx.order.Compare(idx.calls[ids[i]].Interval, idx.calls[ids[j]].Interval); c != 0 {
			return c < 0
		}
		return ids[i] < ids[j]
	})
	out := make([]Call, len(ids))
	for i, id := range ids {
		out[i] = idx.calls[id]
	}
	return out
}

// At returns the calls covering position pos of chrom.
func (idx *Index) At(chrom string, pos interval.PosType) []Call {
	return idx.Overlapping(interval.Interval{Chrom: chrom, Start: pos, Stop: pos + 1})
}
