package variant

import (
	"context"

	"github.com/grailbio/base/log"
)

// AggregateFrequencies returns, for every variant seen in any file, the
// fraction of files reporting it, keyed by Tag.  A file counts a variant at
// most once.  No files yields an empty map.
func AggregateFrequencies(files [][]Record) map[string]float64 {
	freqs := make(map[string]float64)
	if len(files) == 0 {
		return freqs
	}
	counts := make(map[Key]int)
	for _, recs := range files {
		seen := make(map[Key]struct{}, len(recs))
		for i := range recs {
			k := recs[i].Key()
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			counts[k]++
		}
	}
	n := float64(len(files))
	for k, c := range counts {
		freqs[k.Tag()] = float64(c) / n
	}
	return freqs
}

// PanelFrequencies decodes every file in paths and aggregates their variant
// frequencies.  Any file failure fails the whole call since the denominator
// would be wrong.
func PanelFrequencies(ctx context.Context, paths []string, opts ParseOpts) (map[string]float64, error) {
	files, errs := parseFiles(ctx, paths, opts)
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	freqs := AggregateFrequencies(files)
	log.Printf("panel frequencies: %d distinct variant(s) across %d file(s)", len(freqs), len(paths))
	return freqs, nil
}
