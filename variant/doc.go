// Package variant reads biallelic variant calls from VCF files, flags the
// calls present in a reference panel, and computes how often each variant
// occurs across a set of panel samples.
//
// Records are identified by Key (chromosome, 1-based position, REF, ALT); two
// records with the same key are the same variant whatever their genotype or
// source.  Multi-allelic rows and rows with no real alternate allele are
// skipped.  VCF producers disagree on how to spell the latter, so decoding
// goes through a Dialect, chosen explicitly or sniffed from the "##" header.
package variant
