// Package copynumber reads genome-wide copy-number (CN) profiles, BEDgraph
// files whose fourth column is an integer copy number, and indexes the calls
// by interval.
//
// No merging happens: every admitted line becomes one Call, and an interval
// that appears on several lines keeps every copy number reported for it.
package copynumber

import (
	"context"
	"io"
	"strconv"

	"github.com/ascendo/LACHESIS/interval"
	"github.com/ascendo/LACHESIS/textio"
	"github.com/grailbio/base/log"
	gunsafe "github.com/grailbio/base/unsafe"
)

// Call is an integer copy-number call on an interval.
type Call struct {
	interval.Interval
	CN int
}

// ReadCalls returns the calls of a CN profile in file order.  opts.Chrom
// restricts the result to one chromosome; with opts.Order set, an unknown
// opts.Chrom fails with interval.ErrUnknownChromosome.
func ReadCalls(r io.Reader, name string, opts interval.ParseOpts) ([]Call, error) {
	var calls []Call
	err := interval.ScanBED(r, name, opts, 4, func(sc *textio.Scanner, iv interval.Interval, value []byte) error {
		cn, err := strconv.Atoi(gunsafe.BytesToString(value))
		if err != nil {
			return sc.Errorf("invalid copy number %q", value)
		}
		if cn < 0 {
			return sc.Errorf("negative copy number %d", cn)
		}
		calls = append(calls, Call{Interval: iv, CN: cn})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return calls, nil
}

// ParseCalls is ReadCalls on a path.
func ParseCalls(ctx context.Context, path string, opts interval.ParseOpts) (calls []Call, err error) {
	err = textio.ReadFile(ctx, path, func(r io.Reader) error {
		calls, err = ReadCalls(r, path, opts)
		return err
	})
	return
}

// Read indexes the calls of a CN profile.
func Read(r io.Reader, name string, opts interval.ParseOpts) (*Index, error) {
	calls, err := ReadCalls(r, name, opts)
	if err != nil {
		return nil, err
	}
	return NewIndex(calls, opts.Order), nil
}

// Parse indexes the calls of the CN profile at path.
func Parse(ctx context.Context, path string, opts interval.ParseOpts) (*Index, error) {
	calls, err := ParseCalls(ctx, path, opts)
	if err != nil {
		return nil, err
	}
	idx := NewIndex(calls, opts.Order)
	log.Printf("%s: %d copy-number call(s) on %d chromosome(s)", path, idx.Len(), len(idx.Chroms()))
	return idx, nil
}
