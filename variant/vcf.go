package variant

import (
	"bufio"
	"context"
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/ascendo/LACHESIS/interval"
	"github.com/ascendo/LACHESIS/textio"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/traverse"
	"github.com/grailbio/base/tsv"
)

// ParseOpts controls VCF decoding.
type ParseOpts struct {
	Filter Filter
	// Dialect, if nil, is detected per file from its header.
	Dialect Dialect
	// Regions, if set, admits only variants whose POS falls inside it.
	Regions *interval.Union
	// Parallelism bounds the number of files decoded at once; <= 0 means one
	// job per file.
	Parallelism int
}

// ReadVCF decodes the biallelic variants of one VCF stream in file order.
// Records failing opts.Filter or opts.Regions are dropped without being
// materialized.  Regions is queried with sequential access and must not be
// shared with concurrent readers.
func ReadVCF(r io.Reader, name string, opts ParseOpts) ([]Record, error) {
	br := bufio.NewReaderSize(r, 64<<10)
	var (
		header      []string
		headerLines int
	)
	for {
		b, err := br.Peek(1)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &textio.FileError{Path: name, Op: "read", Kind: textio.ErrUnreadableFile, Err: err}
		}
		if b[0] != '#' {
			break
		}
		line, err := br.ReadString('\n')
		headerLines++
		if strings.HasPrefix(line, "##") {
			header = append(header, strings.TrimRight(line, "\r\n"))
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &textio.FileError{Path: name, Op: "read", Kind: textio.ErrUnreadableFile, Err: err}
		}
	}
	dialect := opts.Dialect
	if dialect == nil {
		dialect = DetectDialect(header)
	}

	tr := tsv.NewReader(br)
	tr.Comment = '#'
	tr.LazyQuotes = true
	tr.FieldsPerRecord = -1
	tr.ReuseRecord = true

	var (
		recs    []Record
		skipped int
		chrom   = opts.Filter.Chrom
	)
	for {
		row, err := tr.Reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			if perr, ok := err.(*csv.ParseError); ok {
				return nil, &textio.LineError{Path: name, Line: headerLines + perr.Line, Reason: perr.Err.Error()}
			}
			return nil, &textio.FileError{Path: name, Op: "read", Kind: textio.ErrUnreadableFile, Err: err}
		}
		// VCF has no quoting, but csv does: an unbalanced '"' swallows the
		// rows after it into one field.
		for i, f := range row {
			if strings.IndexByte(f, '\n') >= 0 {
				line, _ := tr.Reader.FieldPos(i)
				return nil, &textio.LineError{Path: name, Line: headerLines + line, Reason: "unterminated quote in column " + strconv.Itoa(i+1)}
			}
		}
		if chrom != "" && len(row) > 0 && row[colChrom] != chrom {
			continue
		}
		rec, ok, err := dialect.Extract(row)
		if err != nil {
			line, _ := tr.Reader.FieldPos(0)
			return nil, &textio.LineError{Path: name, Line: headerLines + line, Reason: err.Error()}
		}
		if !ok {
			skipped++
			continue
		}
		if !opts.Filter.Admits(&rec) {
			continue
		}
		if opts.Regions != nil && !opts.Regions.ContainsByName(rec.Chrom, interval.PosType(rec.Pos-1)) {
			continue
		}
		recs = append(recs, rec)
	}
	if skipped > 0 {
		log.Debug.Printf("%s: skipped %d record(s) without a single alternate allele (%s dialect)", name, skipped, dialect.Name())
	}
	return recs, nil
}

// ParseVCFFile is ReadVCF on a path.
func ParseVCFFile(ctx context.Context, path string, opts ParseOpts) (recs []Record, err error) {
	err = textio.ReadFile(ctx, path, func(r io.Reader) error {
		recs, err = ReadVCF(r, path, opts)
		return err
	})
	return
}

// parseFiles decodes paths concurrently and returns their records grouped by
// file, in path order, along with each file's error.
func parseFiles(ctx context.Context, paths []string, opts ParseOpts) ([][]Record, []error) {
	var (
		nFile       = len(paths)
		parallelism = opts.Parallelism
		results     = make([][]Record, nFile)
		errs        = make([]error, nFile)
	)
	if parallelism <= 0 || parallelism > nFile {
		parallelism = nFile
	}
	_ = traverse.Each(parallelism, func(jobIdx int) error {
		startIdx := (jobIdx * nFile) / parallelism
		endIdx := ((jobIdx + 1) * nFile) / parallelism
		jobOpts := opts
		if opts.Regions != nil {
			jobOpts.Regions = opts.Regions.Clone()
		}
		for i := startIdx; i < endIdx; i++ {
			results[i], errs[i] = ParseVCFFile(ctx, paths[i], jobOpts)
		}
		return nil
	})
	return results, errs
}

// ParseVCF decodes every file in paths and concatenates their records in path
// order.  On failure it returns the records of the files before the first
// failing one together with that file's error.
func ParseVCF(ctx context.Context, paths []string, opts ParseOpts) ([]Record, error) {
	results, errs := parseFiles(ctx, paths, opts)
	var recs []Record
	for i := range paths {
		if errs[i] != nil {
			return recs, errs[i]
		}
		recs = append(recs, results[i]...)
	}
	log.Printf("read %d variant(s) from %d VCF file(s)", len(recs), len(paths))
	return recs, nil
}

// ParseVCFChrom decodes the variants of one chromosome from paths.
func ParseVCFChrom(ctx context.Context, paths []string, chrom string) ([]Record, error) {
	return ParseVCF(ctx, paths, ParseOpts{Filter: Filter{Chrom: chrom}})
}
