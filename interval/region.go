package interval

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ParseRegionString converts a samtools-style region to an Interval.  The
// accepted forms are "chrom", "chrom:pos" and "chrom:first-last", with
// 1-based closed positions.  A bare chromosome yields [0, PosTypeMax-1).
// Every failure wraps ErrInvalidInterval.
func ParseRegionString(region string) (Interval, error) {
	chrom, span, hasSpan := strings.Cut(region, ":")
	if chrom == "" {
		return Interval{}, errors.Wrapf(ErrInvalidInterval, "region %q: no chromosome", region)
	}
	if !hasSpan {
		return Interval{Chrom: chrom, Stop: PosTypeMax - 1}, nil
	}
	firstStr, lastStr, isRange := strings.Cut(span, "-")
	if !isRange {
		lastStr = firstStr
	}
	first, err := strconv.Atoi(firstStr)
	if err != nil {
		return Interval{}, errors.Wrapf(ErrInvalidInterval, "region %q: bad position %q", region, firstStr)
	}
	last, err := strconv.Atoi(lastStr)
	if err != nil {
		return Interval{}, errors.Wrapf(ErrInvalidInterval, "region %q: bad position %q", region, lastStr)
	}
	if first < 1 || last < first {
		return Interval{}, errors.Wrapf(ErrInvalidInterval, "region %q: need 1 <= first <= last", region)
	}
	iv, err := New(chrom, first-1, last)
	if err != nil {
		return Interval{}, errors.Wrapf(err, "region %q", region)
	}
	return iv, nil
}
