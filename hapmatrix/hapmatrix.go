// Package hapmatrix reads the haplotype-matrix files exchanged with the
// upstream phasing tools: the simulated matrix, which carries ground truth
// for every fragment and locus, and the real matrix, which ties variant calls
// to clones with genomic coordinates and qualities.
//
// Both formats are whitespace-delimited lines led by a keyword.  Blank lines
// and lines starting with '#' are skipped.  Readers are all-or-nothing: on
// any error the zero matrix is returned.
package hapmatrix

import (
	"strconv"

	"github.com/ascendo/LACHESIS/textio"
	gunsafe "github.com/grailbio/base/unsafe"
)

// header collects the keyword-led count lines at the top of a matrix file.
type header struct {
	names  []string
	values map[string]int
}

func newHeader(names ...string) *header {
	return &header{names: names, values: make(map[string]int, len(names))}
}

// has reports whether keyword is one of h's count keywords.
func (h *header) has(keyword string) bool {
	for _, n := range h.names {
		if n == keyword {
			return true
		}
	}
	return false
}

// set records a count line.  Counts must be positive and appear once.
func (h *header) set(sc *textio.Scanner, keyword string, tokens [][]byte) error {
	if _, ok := h.values[keyword]; ok {
		return sc.Errorf("duplicate %s line", keyword)
	}
	if len(tokens) != 2 {
		return sc.Errorf("%s takes one value", keyword)
	}
	n, err := atoi(tokens[1])
	if err != nil || n <= 0 {
		return sc.Errorf("invalid %s count %q", keyword, tokens[1])
	}
	h.values[keyword] = n
	return nil
}

// complete returns nil once every count has been seen.
func (h *header) complete(sc *textio.Scanner) error {
	for _, n := range h.names {
		if _, ok := h.values[n]; !ok {
			return sc.Errorf("missing %s line", n)
		}
	}
	return nil
}

func (h *header) get(keyword string) int { return h.values[keyword] }

func atoi(b []byte) (int, error) {
	return strconv.Atoi(gunsafe.BytesToString(b))
}
