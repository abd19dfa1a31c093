package interval

import (
	"context"
	"io"
	"strconv"

	"github.com/ascendo/LACHESIS/textio"
	"github.com/grailbio/base/log"
	gunsafe "github.com/grailbio/base/unsafe"
)

// ParseOpts controls the BED-family readers.
type ParseOpts struct {
	// Chrom, if nonempty, restricts the result to lines on that chromosome.
	Chrom string
	// Order, if set, is the chromosome order of the output, and Chrom must be
	// one of its chromosomes (ErrUnknownChromosome otherwise).
	Order *ChromOrder
	// OneBasedInput interprets the interval boundaries as one-based [start,
	// end] instead of the usual zero-based [start, end).
	OneBasedInput bool
}

// bedCommentPrefixes are the first-token prefixes of BED lines that carry no
// interval.
var bedCommentPrefixes = []string{"#", "track", "browser"}

// ScanBED decodes whitespace-delimited BED-layout lines from r and calls fn
// for every line that passes opts.Chrom, in file order.  value is the fourth
// column, or nil when the line has only three; it aliases the read buffer and
// is only valid during the call.  A line with fewer than minCols columns, or
// with unparseable coordinates, fails with a *textio.LineError.  fn may use
// sc.Errorf to report a bad value column.  name is used only in error
// messages.
func ScanBED(r io.Reader, name string, opts ParseOpts, minCols int,
	fn func(sc *textio.Scanner, iv Interval, value []byte) error) error {
	if err := opts.Order.Validate(opts.Chrom); err != nil {
		return err
	}
	var startSubtract int
	if opts.OneBasedInput {
		startSubtract++
	}
	sc := textio.NewScanner(r, name, 4, bedCommentPrefixes...)
	for sc.Scan() {
		tokens := sc.Tokens()
		if len(tokens) < minCols {
			return sc.Errorf("expected at least %d columns, found %d", minCols, len(tokens))
		}
		// gunsafe.BytesToString is only used for very-limited-scope
		// comparisons and Atoi calls; anything retained is copied.
		if opts.Chrom != "" && gunsafe.BytesToString(tokens[0]) != opts.Chrom {
			continue
		}
		start, err := strconv.Atoi(gunsafe.BytesToString(tokens[1]))
		if err != nil {
			return sc.Errorf("invalid start coordinate %q", tokens[1])
		}
		stop, err := strconv.Atoi(gunsafe.BytesToString(tokens[2]))
		if err != nil {
			return sc.Errorf("invalid stop coordinate %q", tokens[2])
		}
		iv, err := New(string(tokens[0]), start-startSubtract, stop)
		if err != nil {
			return sc.Errorf("%v", err)
		}
		var value []byte
		if len(tokens) > 3 {
			value = tokens[3]
		}
		if err := fn(sc, iv, value); err != nil {
			return err
		}
	}
	return sc.Err()
}

// ReadBED returns the intervals in the first three columns of a BED or
// BEDgraph stream, in file order.
func ReadBED(r io.Reader, name string, opts ParseOpts) ([]Interval, error) {
	var ivs []Interval
	err := ScanBED(r, name, opts, 3, func(_ *textio.Scanner, iv Interval, _ []byte) error {
		ivs = append(ivs, iv)
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Debug.Printf("%s: %d interval(s) read", name, len(ivs))
	return ivs, nil
}

// ParseBED is ReadBED on a path.
func ParseBED(ctx context.Context, path string, opts ParseOpts) (ivs []Interval, err error) {
	err = textio.ReadFile(ctx, path, func(r io.Reader) error {
		ivs, err = ReadBED(r, path, opts)
		return err
	})
	return
}

// ReadBEDgraph is like ReadBED, but also returns the numeric fourth column.
func ReadBEDgraph(r io.Reader, name string, opts ParseOpts) ([]Valued, error) {
	var vals []Valued
	err := ScanBED(r, name, opts, 4, func(sc *textio.Scanner, iv Interval, value []byte) error {
		v, err := strconv.ParseFloat(gunsafe.BytesToString(value), 64)
		if err != nil {
			return sc.Errorf("invalid value %q", value)
		}
		vals = append(vals, Valued{Interval: iv, Value: v})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return vals, nil
}

// ParseBEDgraph is ReadBEDgraph on a path.
func ParseBEDgraph(ctx context.Context, path string, opts ParseOpts) (vals []Valued, err error) {
	err = textio.ReadFile(ctx, path, func(r io.Reader) error {
		vals, err = ReadBEDgraph(r, path, opts)
		return err
	})
	return
}

// MergeAndPartition groups ivs by chromosome, merges each group, and cuts the
// merged intervals into windows of k.
func MergeAndPartition(ivs []Interval, k int, order *ChromOrder) (Windows, error) {
	if k <= 0 {
		return Partition(nil, k, order)
	}
	groups, _ := GroupByChrom(ivs, order)
	merged, err := MergeAll(groups)
	if err != nil {
		return Windows{}, err
	}
	ws, err := Partition(merged, k, order)
	if err != nil {
		return Windows{}, err
	}
	log.Printf("%d merged interval(s) in %d window(s), %d base(s) covered",
		countIntervals(merged), ws.Len(), coveredBases(merged))
	return ws, nil
}

// ParseAndMergeBED reads a BED/BEDgraph file, merges its intervals, and
// returns the merged intervals grouped into windows of k per chromosome.
func ParseAndMergeBED(ctx context.Context, path string, k int, opts ParseOpts) (Windows, error) {
	if k <= 0 {
		return Partition(nil, k, opts.Order)
	}
	ivs, err := ParseBED(ctx, path, opts)
	if err != nil {
		return Windows{}, err
	}
	return MergeAndPartition(ivs, k, opts.Order)
}

func countIntervals(groups map[string][]Interval) int {
	n := 0
	for _, ivs := range groups {
		n += len(ivs)
	}
	return n
}
