package variant

import (
	"strconv"
	"strings"

	"github.com/ascendo/LACHESIS/interval"
	"github.com/pkg/errors"
)

// Dialect is the column interpretation of one VCF producer.  Callers differ
// in how they spell "no alternate allele" and which header lines identify
// them; everything else (genotype class, dbSNP membership) is shared.
type Dialect interface {
	// Name is the dialect's command-line name.
	Name() string
	// Sniff reports whether a "##" header line identifies this dialect.
	Sniff(headerLine string) bool
	// Extract builds a Record from the columns of one data row.  ok is false
	// for rows that carry no single alternate allele and are skipped.  A
	// non-nil error describes a malformed row.
	Extract(row []string) (rec Record, ok bool, err error)
}

var (
	// GATK reads HaplotypeCaller/UnifiedGenotyper output, gVCF included.
	GATK Dialect = gatkDialect{}
	// Samtools reads samtools mpileup / bcftools call output.
	Samtools Dialect = samtoolsDialect{}

	dialects = []Dialect{GATK, Samtools}
)

// DialectByName looks up a dialect by Name, ignoring case.  "" and "auto"
// return nil, which makes the reader sniff the header.
func DialectByName(name string) (Dialect, error) {
	switch lower := strings.ToLower(name); lower {
	case "", "auto":
		return nil, nil
	default:
		for _, d := range dialects {
			if d.Name() == lower {
				return d, nil
			}
		}
	}
	return nil, errors.Errorf("variant.DialectByName: unknown VCF dialect %q", name)
}

// DetectDialect returns the dialect named by the first header line that any
// dialect recognizes, or GATK.
func DetectDialect(headerLines []string) Dialect {
	for _, line := range headerLines {
		for _, d := range dialects {
			if d.Sniff(line) {
				return d
			}
		}
	}
	return GATK
}

type gatkDialect struct{}

func (gatkDialect) Name() string { return "gatk" }

func (gatkDialect) Sniff(line string) bool {
	return strings.HasPrefix(line, "##GATKCommandLine") ||
		strings.HasPrefix(line, "##source=GATK") ||
		strings.HasPrefix(line, "##source=HaplotypeCaller") ||
		strings.HasPrefix(line, "##UnifiedGenotyper")
}

func (gatkDialect) Extract(row []string) (Record, bool, error) {
	return extract(row, "<NON_REF>")
}

type samtoolsDialect struct{}

func (samtoolsDialect) Name() string { return "samtools" }

func (samtoolsDialect) Sniff(line string) bool {
	return strings.HasPrefix(line, "##samtoolsVersion") ||
		strings.HasPrefix(line, "##bcftoolsVersion") ||
		strings.HasPrefix(line, "##source=samtools") ||
		strings.HasPrefix(line, "##source=bcftools")
}

func (samtoolsDialect) Extract(row []string) (Record, bool, error) {
	return extract(row, "X", "<X>", "<*>")
}

// VCF column indexes.
const (
	colChrom = iota
	colPos
	colID
	colRef
	colAlt
	colQual
	colFilter
	colInfo
	colFormat
	colSample

	minColumns = colInfo + 1
)

// extract is the row decoder shared by the dialects.  placeholders are the
// ALT spellings that stand for "no alternate allele"; they are dropped from
// the ALT list before the biallelic check.
func extract(row []string, placeholders ...string) (rec Record, ok bool, err error) {
	if len(row) < minColumns {
		return rec, false, errors.Errorf("expected at least %d columns, got %d", minColumns, len(row))
	}
	alt, ok := cleanAlt(row[colAlt], placeholders)
	if !ok {
		return rec, false, nil
	}
	if rec.Pos, err = strconv.Atoi(row[colPos]); err != nil || rec.Pos < 1 || rec.Pos >= interval.PosTypeMax {
		return rec, false, errors.Errorf("invalid POS %q", row[colPos])
	}
	if row[colRef] == "" || row[colRef] == "." {
		return rec, false, errors.Errorf("missing REF")
	}
	if !isAllele(row[colRef]) {
		return rec, false, errors.Errorf("invalid REF %q", row[colRef])
	}
	if !isAllele(alt) {
		return rec, false, errors.Errorf("invalid ALT %q", alt)
	}
	if row[colChrom] == "" {
		return rec, false, errors.Errorf("missing CHROM")
	}
	if q := row[colQual]; q != "." && q != "" {
		if rec.Qual, err = strconv.ParseFloat(q, 64); err != nil {
			return rec, false, errors.Errorf("invalid QUAL %q", q)
		}
		rec.HasQual = true
	}
	rec.Chrom = row[colChrom]
	rec.Ref = row[colRef]
	rec.Alt = alt
	rec.InDB = Bool((row[colID] != "." && row[colID] != "") || hasInfoFlag(row[colInfo], "DB"))
	rec.Genotype = OtherGenotype
	if len(row) > colSample {
		rec.Genotype = classifyGT(sampleField(row[colFormat], row[colSample], "GT"))
	}
	return rec, true, nil
}

// cleanAlt drops placeholder alleles from an ALT list.  ok is false when no
// allele, more than one allele, or only a symbolic allele remains.
func cleanAlt(field string, placeholders []string) (alt string, ok bool) {
	if field == "." || field == "" {
		return "", false
	}
	n := 0
	for _, a := range strings.Split(field, ",") {
		if isPlaceholder(a, placeholders) {
			continue
		}
		alt = a
		n++
	}
	if n != 1 || strings.HasPrefix(alt, "<") {
		return "", false
	}
	return alt, true
}

// isAllele reports whether a is a base string: letters, or the "*" deletion
// allele.
func isAllele(a string) bool {
	if a == "" {
		return false
	}
	for i := 0; i < len(a); i++ {
		c := a[i] | 0x20
		if (c < 'a' || c > 'z') && a[i] != '*' {
			return false
		}
	}
	return true
}

func isPlaceholder(a string, placeholders []string) bool {
	for _, p := range placeholders {
		if a == p {
			return true
		}
	}
	return false
}

func hasInfoFlag(info, flag string) bool {
	for _, item := range strings.Split(info, ";") {
		if item == flag {
			return true
		}
	}
	return false
}

// sampleField returns the value of key in a FORMAT/sample column pair, or "".
func sampleField(format, sample, key string) string {
	keys := strings.Split(format, ":")
	vals := strings.Split(sample, ":")
	for i, k := range keys {
		if k == key {
			if i < len(vals) {
				return vals[i]
			}
			return ""
		}
	}
	return ""
}

func classifyGT(gt string) Genotype {
	sep := strings.IndexAny(gt, "/|")
	if sep < 0 {
		return OtherGenotype
	}
	a, b := gt[:sep], gt[sep+1:]
	switch {
	case (a == "0" && b == "1") || (a == "1" && b == "0"):
		return Het
	case a == "1" && b == "1":
		return HomAlt
	}
	return OtherGenotype
}
