package variant

import (
	"context"

	"github.com/dgryski/go-farm"
	"github.com/grailbio/base/log"
)

// panelIndex maps the fingerprint of a variant tag to the panel keys sharing
// it.  Buckets are compared by full key, so fingerprint collisions never
// produce false matches.
type panelIndex map[uint64][]Key

func fingerprint(k Key) uint64 {
	return farm.Fingerprint64([]byte(k.Tag()))
}

func newPanelIndex(panel []Record) panelIndex {
	idx := make(panelIndex, len(panel))
	for i := range panel {
		k := panel[i].Key()
		if !idx.contains(k) {
			fp := fingerprint(k)
			idx[fp] = append(idx[fp], k)
		}
	}
	return idx
}

func (idx panelIndex) contains(k Key) bool {
	for _, pk := range idx[fingerprint(k)] {
		if pk == k {
			return true
		}
	}
	return false
}

// SetPanelFlags sets InPanel on every variant: True when a panel record has
// the same key, False otherwise.  It returns the number of variants found in
// the panel.  Genotype and dbSNP fields play no part in matching.
func SetPanelFlags(variants, panel []Record) int {
	idx := newPanelIndex(panel)
	n := 0
	for i := range variants {
		found := idx.contains(variants[i].Key())
		variants[i].InPanel = Bool(found)
		if found {
			n++
		}
	}
	return n
}

// SetPanelFlagsFromFile loads the panel VCF at panelPath, restricted to chrom
// when chrom is nonempty, and calls SetPanelFlags.
func SetPanelFlagsFromFile(ctx context.Context, variants []Record, panelPath, chrom string) (int, error) {
	panel, err := ParseVCFFile(ctx, panelPath, ParseOpts{Filter: Filter{Chrom: chrom}})
	if err != nil {
		return 0, err
	}
	n := SetPanelFlags(variants, panel)
	log.Printf("%s: %d of %d variant(s) found among %d panel record(s)", panelPath, n, len(variants), len(panel))
	return n, nil
}
