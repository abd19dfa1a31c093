package interval

import (
	"context"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/antzucaro/matchr"
	"github.com/ascendo/LACHESIS/textio"
	"github.com/grailbio/base/tsv"
	"github.com/grailbio/hts/sam"
	"github.com/pkg/errors"
)

// maxSuggestDistance bounds the edit distance of the "did you mean" hint in
// ErrUnknownChromosome messages.
const maxSuggestDistance = 2

// ChromOrder is an explicit chromosome ordering, e.g. the contig order of a
// reference.  Chromosomes it doesn't list sort after all listed ones, in
// natural order.  A nil *ChromOrder is valid and means natural order
// throughout.
type ChromOrder struct {
	names []string
	rank  map[string]int
}

// NewChromOrder returns the order given by names.  A repeated name keeps its
// first rank.
func NewChromOrder(names []string) *ChromOrder {
	o := &ChromOrder{rank: make(map[string]int, len(names))}
	for _, name := range names {
		if _, found := o.rank[name]; found {
			continue
		}
		o.rank[name] = len(o.names)
		o.names = append(o.names, name)
	}
	return o
}

// ChromOrderFromSAMHeader returns the reference order of a SAM header.
func ChromOrderFromSAMHeader(header *sam.Header) *ChromOrder {
	refs := header.Refs()
	names := make([]string, len(refs))
	for i, ref := range refs {
		names[i] = ref.Name()
	}
	return NewChromOrder(names)
}

// ReadChromOrder reads a chromosome order from path.  A path ending in ".sam"
// contributes the @SQ order of its header.  Anything else is read as a
// tab-separated file whose first column names the chromosomes; a FASTA .fai
// index and a one-name-per-line list both qualify.
func ReadChromOrder(ctx context.Context, path string) (*ChromOrder, error) {
	var order *ChromOrder
	err := textio.ReadFile(ctx, path, func(r io.Reader) error {
		if strings.HasSuffix(path, ".sam") {
			sr, err := sam.NewReader(r)
			if err != nil {
				return &textio.LineError{Path: path, Line: 1, Reason: err.Error()}
			}
			order = ChromOrderFromSAMHeader(sr.Header())
			return nil
		}
		names, err := readChromNames(r, path)
		order = NewChromOrder(names)
		return err
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func readChromNames(r io.Reader, path string) ([]string, error) {
	tr := tsv.NewReader(r)
	tr.Comment = '#'
	tr.FieldsPerRecord = -1
	var names []string
	for {
		row, err := tr.Reader.Read()
		if err == io.EOF {
			return names, nil
		}
		if err != nil {
			return nil, &textio.LineError{Path: path, Line: lineOf(tr), Reason: err.Error()}
		}
		if name := strings.TrimSpace(row[0]); name != "" {
			names = append(names, name)
		}
	}
}

func lineOf(tr *tsv.Reader) int {
	line, _ := tr.Reader.FieldPos(0)
	return line
}

// Names returns the listed chromosomes in order.
func (o *ChromOrder) Names() []string {
	if o == nil {
		return nil
	}
	return o.names
}

// Known reports whether chrom is listed.  Every name is known to a nil order.
func (o *ChromOrder) Known(chrom string) bool {
	if o == nil {
		return true
	}
	_, found := o.rank[chrom]
	return found
}

// Validate returns ErrUnknownChromosome if chrom is nonempty and not listed.
func (o *ChromOrder) Validate(chrom string) error {
	if chrom == "" || o.Known(chrom) {
		return nil
	}
	if best := o.closest(chrom); best != "" {
		return errors.Wrapf(ErrUnknownChromosome, "%q (did you mean %q?)", chrom, best)
	}
	return errors.Wrapf(ErrUnknownChromosome, "%q", chrom)
}

func (o *ChromOrder) closest(chrom string) string {
	best, bestDist := "", maxSuggestDistance+1
	for _, name := range o.names {
		if d := matchr.Levenshtein(chrom, name); d < bestDist {
			best, bestDist = name, d
		}
	}
	return best
}

// CompareChroms returns a negative, zero or positive int as a sorts before,
// with, or after b.
func (o *ChromOrder) CompareChroms(a, b string) int {
	if a == b {
		return 0
	}
	if o != nil {
		ra, foundA := o.rank[a]
		rb, foundB := o.rank[b]
		switch {
		case foundA && foundB:
			return ra - rb
		case foundA:
			return -1
		case foundB:
			return 1
		}
	}
	return CompareNatural(a, b)
}

// Compare orders intervals by chromosome, then Start, then Stop.
func (o *ChromOrder) Compare(a, b Interval) int {
	if c := o.CompareChroms(a.Chrom, b.Chrom); c != 0 {
		return c
	}
	if a.Start != b.Start {
		if a.Start < b.Start {
			return -1
		}
		return 1
	}
	if a.Stop != b.Stop {
		if a.Stop < b.Stop {
			return -1
		}
		return 1
	}
	return 0
}

// Sort sorts ivs in place.
func (o *ChromOrder) Sort(ivs []Interval) {
	sort.SliceStable(ivs, func(i, j int) bool { return o.Compare(ivs[i], ivs[j]) < 0 })
}

// SortChroms sorts chromosome names in place.
func (o *ChromOrder) SortChroms(names []string) {
	sort.SliceStable(names, func(i, j int) bool { return o.CompareChroms(names[i], names[j]) < 0 })
}

// chromKey splits a chromosome name into a sort class, a numeric rank and a
// residual string.  Class 0 holds numbered autosomes, class 1 the sex and
// mitochondrial chromosomes, class 2 everything else.
func chromKey(name string) (class, num int, rest string) {
	s := name
	if len(s) > 3 && strings.EqualFold(s[:3], "chr") {
		s = s[3:]
	}
	if n, err := strconv.Atoi(s); err == nil && n >= 0 {
		return 0, n, ""
	}
	switch strings.ToUpper(s) {
	case "X":
		return 1, 0, ""
	case "Y":
		return 1, 1, ""
	case "M", "MT":
		return 1, 2, ""
	}
	return 2, 0, s
}

// CompareNatural compares chromosome names in karyotype order: chr1, chr2,
// ..., chr10, ..., chrX, chrY, chrM, then anything else lexically.  A leading
// "chr" is ignored, so "2" and "chr2" share a rank; ties fall back to plain
// string comparison.
func CompareNatural(a, b string) int {
	classA, numA, restA := chromKey(a)
	classB, numB, restB := chromKey(b)
	if classA != classB {
		return classA - classB
	}
	if numA != numB {
		if numA < numB {
			return -1
		}
		return 1
	}
	if c := strings.Compare(restA, restB); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}
