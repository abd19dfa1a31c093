package interval

import (
	"sort"

	"github.com/pkg/errors"
)

// Merge returns the interval union of ivs, which must all lie on one
// chromosome: a sequence of disjoint, non-abutting intervals sorted by Start.
// ivs itself is not modified.  Nested intervals collapse into the outer one,
// and an already-merged input comes back unchanged.
func Merge(ivs []Interval) ([]Interval, error) {
	if len(ivs) == 0 {
		return nil, nil
	}
	chrom := ivs[0].Chrom
	sorted := make([]Interval, len(ivs))
	copy(sorted, ivs)
	for _, iv := range sorted {
		if iv.Chrom != chrom {
			return nil, errors.Wrapf(ErrMixedChromosomes, "interval.Merge: %s and %s", chrom, iv.Chrom)
		}
		if !iv.valid() {
			return nil, errors.Wrapf(ErrInvalidInterval, "interval.Merge: %v", iv)
		}
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Start != sorted[j].Start {
			return sorted[i].Start < sorted[j].Start
		}
		return sorted[i].Stop < sorted[j].Stop
	})

	merged := make([]Interval, 0, len(sorted))
	span := sorted[0]
	for _, iv := range sorted[1:] {
		if iv.Start <= span.Stop {
			// Overlapping or abutting; extend the running span.
			if iv.Stop > span.Stop {
				span.Stop = iv.Stop
			}
			continue
		}
		merged = append(merged, span)
		span = iv
	}
	return append(merged, span), nil
}

// GroupByChrom partitions ivs by chromosome, preserving input order within
// each group.  The chromosome names are returned sorted by order.
func GroupByChrom(ivs []Interval, order *ChromOrder) (map[string][]Interval, []string) {
	groups := make(map[string][]Interval)
	var chroms []string
	for _, iv := range ivs {
		if _, found := groups[iv.Chrom]; !found {
			chroms = append(chroms, iv.Chrom)
		}
		groups[iv.Chrom] = append(groups[iv.Chrom], iv)
	}
	order.SortChroms(chroms)
	return groups, chroms
}

// MergeAll merges every chromosome group independently.
func MergeAll(groups map[string][]Interval) (map[string][]Interval, error) {
	merged := make(map[string][]Interval, len(groups))
	for chrom, ivs := range groups {
		m, err := Merge(ivs)
		if err != nil {
			return nil, err
		}
		if len(m) > 0 {
			merged[chrom] = m
		}
	}
	return merged, nil
}

// coveredBases sums the lengths of already-merged intervals.
func coveredBases(merged map[string][]Interval) int {
	total := 0
	for _, ivs := range merged {
		for _, iv := range ivs {
			total += iv.Len()
		}
	}
	return total
}
