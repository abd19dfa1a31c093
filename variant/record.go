package variant

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Genotype is the genotype class of a called variant.  The zero value,
// GenotypeUnset, never appears on a parsed Record; in a Filter it admits every
// class.
type Genotype uint8

const (
	GenotypeUnset Genotype = iota
	// Het is a heterozygous call (0/1).
	Het
	// HomAlt is a homozygous-alternate call (1/1).
	HomAlt
	// OtherGenotype covers everything else: 0/0, no call, missing GT.
	OtherGenotype
)

func (g Genotype) String() string {
	switch g {
	case Het:
		return "HET"
	case HomAlt:
		return "HOM_ALT"
	case OtherGenotype:
		return "OTHER"
	default:
		return "UNSET"
	}
}

// ParseGenotype parses "het", "homalt" ("hom_alt") or "other", ignoring case.
func ParseGenotype(s string) (Genotype, error) {
	switch strings.ToLower(s) {
	case "het":
		return Het, nil
	case "homalt", "hom_alt":
		return HomAlt, nil
	case "other":
		return OtherGenotype, nil
	}
	return GenotypeUnset, errors.Errorf("variant.ParseGenotype: unknown genotype class %q", s)
}

// Tribool is a flag that may not have been evaluated yet.
type Tribool int8

const (
	Unknown Tribool = iota
	True
	False
)

// Bool converts a definite answer to a Tribool.
func Bool(b bool) Tribool {
	if b {
		return True
	}
	return False
}

func (t Tribool) String() string {
	switch t {
	case True:
		return "true"
	case False:
		return "false"
	default:
		return "unknown"
	}
}

// ParseTribool parses true/yes/1, false/no/0, or unknown/?/"".
func ParseTribool(s string) (Tribool, error) {
	switch strings.ToLower(s) {
	case "true", "yes", "1":
		return True, nil
	case "false", "no", "0":
		return False, nil
	case "unknown", "?", "":
		return Unknown, nil
	}
	return Unknown, errors.Errorf("variant.ParseTribool: bad value %q", s)
}

// Key is the identity of a variant.  Records with equal keys describe the same
// variant, whichever file they came from.
type Key struct {
	Chrom string
	Pos   int
	Ref   string
	Alt   string
}

// Tag returns the canonical "<chrom>_<pos>_<ref>_<alt>" string for k.  Tags
// of keys decoded from VCF are distinct for distinct keys even when Chrom
// contains '_', since REF and ALT are letters only and POS is numeric.
// Hand-built keys with '_' in Ref or Alt may collide.
func (k Key) Tag() string {
	var b strings.Builder
	b.Grow(len(k.Chrom) + len(k.Ref) + len(k.Alt) + 14)
	b.WriteString(k.Chrom)
	b.WriteByte('_')
	b.WriteString(strconv.Itoa(k.Pos))
	b.WriteByte('_')
	b.WriteString(k.Ref)
	b.WriteByte('_')
	b.WriteString(k.Alt)
	return b.String()
}

// Record is one biallelic variant call.
type Record struct {
	Chrom string
	// Pos is the 1-based VCF POS.
	Pos int
	Ref string
	Alt string

	Genotype Genotype
	// InPanel is Unknown until SetPanelFlags has run over the record.
	InPanel Tribool
	// InDB reports dbSNP membership as annotated in the source file.
	InDB Tribool

	// Qual is the QUAL column; HasQual is false when it was ".".
	Qual    float64
	HasQual bool
}

// Key returns r's identity.
func (r *Record) Key() Key {
	return Key{Chrom: r.Chrom, Pos: r.Pos, Ref: r.Ref, Alt: r.Alt}
}

// Tag returns r.Key().Tag().
func (r *Record) Tag() string { return r.Key().Tag() }
