package interval

import (
	"github.com/pkg/errors"
)

// Window is a run of consecutive merged intervals on one chromosome.
type Window struct {
	Chrom     string
	Intervals []Interval
}

// Len returns the number of intervals in the window.
func (w Window) Len() int { return len(w.Intervals) }

// Span returns the interval from the first interval's Start to the last
// interval's Stop.  It covers the gaps between them.
func (w Window) Span() Interval {
	if len(w.Intervals) == 0 {
		return Interval{Chrom: w.Chrom}
	}
	return Interval{
		Chrom: w.Chrom,
		Start: w.Intervals[0].Start,
		Stop:  w.Intervals[len(w.Intervals)-1].Stop,
	}
}

// Windows holds the windows of every chromosome.  Chroms lists the
// chromosomes that have at least one window, in chromosome order.
type Windows struct {
	Chroms  []string
	ByChrom map[string][]Window
}

// Len returns the total number of windows.
func (ws Windows) Len() int {
	n := 0
	for _, w := range ws.ByChrom {
		n += len(w)
	}
	return n
}

// Intervals concatenates the windows of chrom, in order.
func (ws Windows) Intervals(chrom string) []Interval {
	var ivs []Interval
	for _, w := range ws.ByChrom[chrom] {
		ivs = append(ivs, w.Intervals...)
	}
	return ivs
}

// Partition groups each chromosome's merged intervals into windows of k
// consecutive intervals.  The last window of a chromosome holds the remainder
// when the count isn't a multiple of k.  Window sizes of different chromosomes
// are independent.
//
// merged[chrom] must be the output of Merge: on chrom, sorted, and neither
// overlapping nor abutting.  k <= 0 fails with ErrInvalidWindowSize whatever
// the input.
func Partition(merged map[string][]Interval, k int, order *ChromOrder) (Windows, error) {
	if k <= 0 {
		return Windows{}, errors.Wrapf(ErrInvalidWindowSize, "interval.Partition: %d", k)
	}
	ws := Windows{ByChrom: make(map[string][]Window)}
	for chrom, ivs := range merged {
		if len(ivs) == 0 {
			continue
		}
		if err := checkMerged(chrom, ivs); err != nil {
			return Windows{}, err
		}
		windows := make([]Window, 0, (len(ivs)+k-1)/k)
		for start := 0; start < len(ivs); start += k {
			end := start + k
			if end > len(ivs) {
				end = len(ivs)
			}
			windows = append(windows, Window{Chrom: chrom, Intervals: ivs[start:end:end]})
		}
		ws.ByChrom[chrom] = windows
		ws.Chroms = append(ws.Chroms, chrom)
	}
	order.SortChroms(ws.Chroms)
	return ws, nil
}

func checkMerged(chrom string, ivs []Interval) error {
	for i, iv := range ivs {
		if iv.Chrom != chrom {
			return errors.Wrapf(ErrMixedChromosomes, "interval.Partition: %v filed under %s", iv, chrom)
		}
		if !iv.valid() {
			return errors.Wrapf(ErrInvalidInterval, "interval.Partition: %v", iv)
		}
		if i > 0 && iv.Start <= ivs[i-1].Stop {
			return errors.Wrapf(ErrNotMerged, "interval.Partition: %v follows %v", iv, ivs[i-1])
		}
	}
	return nil
}
