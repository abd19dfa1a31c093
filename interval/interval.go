package interval

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
)

var (
	// ErrInvalidInterval is returned for start > stop or out-of-range
	// coordinates.
	ErrInvalidInterval = errors.New("invalid interval")
	// ErrInvalidWindowSize is returned when a window size is not positive.
	ErrInvalidWindowSize = errors.New("invalid window size")
	// ErrUnknownChromosome is returned when a chromosome filter names a
	// chromosome absent from an explicit ChromOrder.
	ErrUnknownChromosome = errors.New("unknown chromosome")
	// ErrMixedChromosomes is returned by Merge when its input spans more than
	// one chromosome.
	ErrMixedChromosomes = errors.New("intervals on more than one chromosome")
	// ErrNotMerged is returned by Partition when its input overlaps or is out
	// of order.
	ErrNotMerged = errors.New("intervals are not merged")
)

// PosType is the type used to represent interval coordinates.  int32 should be
// wide enough for some time to come, since that's what BAM is limited to.
type PosType int32

// PosTypeMax is the maximum value that can be represented by a PosType.  No
// interval may end at or beyond it.
const PosTypeMax = math.MaxInt32

// Interval is the half-open range [Start, Stop) on chromosome Chrom.
type Interval struct {
	Chrom string
	Start PosType
	Stop  PosType
}

// New returns the interval [start, stop) on chrom.  It fails with
// ErrInvalidInterval if start > stop, start < 0, or stop >= PosTypeMax.
func New(chrom string, start, stop int) (Interval, error) {
	if start < 0 || start > stop || stop >= PosTypeMax {
		return Interval{}, errors.Wrapf(ErrInvalidInterval, "%s:[%d, %d)", chrom, start, stop)
	}
	return Interval{Chrom: chrom, Start: PosType(start), Stop: PosType(stop)}, nil
}

// valid is New's check, for Interval values built as literals.
func (iv Interval) valid() bool {
	return iv.Start >= 0 && iv.Start <= iv.Stop
}

// Len returns the number of bases covered.
func (iv Interval) Len() int { return int(iv.Stop - iv.Start) }

// Empty reports whether the interval covers no bases.
func (iv Interval) Empty() bool { return iv.Start == iv.Stop }

// Contains reports whether pos lies in [Start, Stop).
func (iv Interval) Contains(pos PosType) bool {
	return iv.Start <= pos && pos < iv.Stop
}

// Overlaps reports whether iv and o are on the same chromosome and their
// ranges intersect or abut.  This is the merge predicate: [10, 20) and
// [20, 30) overlap in this sense even though they share no base.
func (iv Interval) Overlaps(o Interval) bool {
	return iv.Chrom == o.Chrom && iv.Start <= o.Stop && o.Start <= iv.Stop
}

// Compare orders intervals by natural chromosome order, then Start, then
// Stop.  Use ChromOrder.Compare for a caller-supplied chromosome order.
func (iv Interval) Compare(o Interval) int {
	return (*ChromOrder)(nil).Compare(iv, o)
}

func (iv Interval) String() string {
	return fmt.Sprintf("%s:%d-%d", iv.Chrom, iv.Start, iv.Stop)
}

// Valued is an interval with an attached BEDgraph value.
type Valued struct {
	Interval
	Value float64
}
