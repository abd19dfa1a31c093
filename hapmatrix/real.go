package hapmatrix

import (
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/ascendo/LACHESIS/interval"
	"github.com/ascendo/LACHESIS/textio"
)

// CloneCall is one clone's call on a variant.
type CloneCall struct {
	Clone int
	// Het is true for a heterozygous call.
	Het bool
}

// RealMatrix is a haplotype matrix built from sequenced clones.  Clones are
// numbered 0..NFrags-1; loci 0..NLoci-1.
type RealMatrix struct {
	NFrags int
	NLoci  int
	// VarCalls maps a variant tag to the clones calling it, in file order.
	VarCalls map[string][]CloneCall
	// CloneCalls[i] maps locus index to the allele clone i carries there.
	CloneCalls     []map[int]string
	CloneIntervals []interval.Interval
	CloneQuals     []float64
}

const (
	keyFrags = "FRAGS"
	keyVar   = "VAR"
	keyClone = "CLONE"
)

// ReadReal decodes a real matrix.
func ReadReal(r io.Reader, name string) (RealMatrix, error) {
	var (
		m       RealMatrix
		hdr     = newHeader(keyFrags, keyLoci)
		hdrDone bool
		seen    []bool
		sc      = textio.NewScanner(r, name, 3, "#")
	)
	for sc.Scan() {
		tokens := sc.Tokens()
		keyword := string(tokens[0])
		if hdr.has(keyword) {
			if hdrDone {
				return RealMatrix{}, sc.Errorf("%s after the first VAR or CLONE line", keyword)
			}
			if err := hdr.set(sc, keyword, tokens); err != nil {
				return RealMatrix{}, err
			}
			continue
		}
		if keyword != keyVar && keyword != keyClone {
			return RealMatrix{}, sc.Errorf("unknown keyword %q", keyword)
		}
		if !hdrDone {
			if err := hdr.complete(sc); err != nil {
				return RealMatrix{}, err
			}
			m.NFrags, m.NLoci = hdr.get(keyFrags), hdr.get(keyLoci)
			m.VarCalls = make(map[string][]CloneCall)
			m.CloneCalls = make([]map[int]string, m.NFrags)
			m.CloneIntervals = make([]interval.Interval, m.NFrags)
			m.CloneQuals = make([]float64, m.NFrags)
			seen = make([]bool, m.NFrags)
			hdrDone = true
		}
		var err error
		if keyword == keyVar {
			err = m.addVar(sc, sc.Fields())
		} else {
			err = m.addClone(sc, sc.Fields(), seen)
		}
		if err != nil {
			return RealMatrix{}, err
		}
	}
	if err := sc.Err(); err != nil {
		return RealMatrix{}, err
	}
	if !hdrDone {
		if err := hdr.complete(sc); err != nil {
			return RealMatrix{}, err
		}
		return RealMatrix{}, sc.Errorf("no CLONE lines")
	}
	for i, ok := range seen {
		if !ok {
			return RealMatrix{}, sc.Errorf("missing CLONE line for clone %d", i)
		}
	}
	return m, nil
}

// clone parses a clone index and checks its range.
func (m *RealMatrix) clone(sc *textio.Scanner, s string) (int, error) {
	idx, err := strconv.Atoi(s)
	if err != nil || idx < 0 || idx >= m.NFrags {
		return 0, sc.Errorf("clone index %q not in [0,%d)", s, m.NFrags)
	}
	return idx, nil
}

// addVar handles "VAR <tag> <clone>:<0|1> ...".
func (m *RealMatrix) addVar(sc *textio.Scanner, fields []string) error {
	if len(fields) < 2 {
		return sc.Errorf("VAR needs a variant tag")
	}
	tag := fields[1]
	for _, f := range fields[2:] {
		colon := strings.LastIndexByte(f, ':')
		if colon < 0 {
			return sc.Errorf("VAR call %q is not <clone>:<0|1>", f)
		}
		idx, err := m.clone(sc, f[:colon])
		if err != nil {
			return err
		}
		var het bool
		switch f[colon+1:] {
		case "1":
			het = true
		case "0":
		default:
			return sc.Errorf("VAR call %q is not <clone>:<0|1>", f)
		}
		m.VarCalls[tag] = append(m.VarCalls[tag], CloneCall{Clone: idx, Het: het})
	}
	if _, ok := m.VarCalls[tag]; !ok {
		m.VarCalls[tag] = []CloneCall{}
	}
	return nil
}

// addClone handles "CLONE <idx> <chrom> <start> <stop> <qual> <locus>=<allele> ...".
func (m *RealMatrix) addClone(sc *textio.Scanner, fields []string, seen []bool) error {
	if len(fields) < 6 {
		return sc.Errorf("CLONE needs an index, chrom, start, stop and quality")
	}
	idx, err := m.clone(sc, fields[1])
	if err != nil {
		return err
	}
	if seen[idx] {
		return sc.Errorf("duplicate CLONE line for clone %d", idx)
	}
	start, err1 := strconv.Atoi(fields[3])
	stop, err2 := strconv.Atoi(fields[4])
	if err1 != nil || err2 != nil {
		return sc.Errorf("invalid clone coordinates %q %q", fields[3], fields[4])
	}
	iv, err := interval.New(fields[2], start, stop)
	if err != nil {
		return sc.Errorf("%v", err)
	}
	qual, err := strconv.ParseFloat(fields[5], 64)
	if err != nil {
		return sc.Errorf("invalid clone quality %q", fields[5])
	}
	calls := make(map[int]string, len(fields)-6)
	for _, f := range fields[6:] {
		eq := strings.IndexByte(f, '=')
		if eq <= 0 || eq == len(f)-1 {
			return sc.Errorf("CLONE call %q is not <locus>=<allele>", f)
		}
		locus, err := strconv.Atoi(f[:eq])
		if err != nil || locus < 0 || locus >= m.NLoci {
			return sc.Errorf("locus %q not in [0,%d)", f[:eq], m.NLoci)
		}
		if _, ok := calls[locus]; ok {
			return sc.Errorf("locus %d called twice", locus)
		}
		calls[locus] = f[eq+1:]
	}
	seen[idx] = true
	m.CloneCalls[idx] = calls
	m.CloneIntervals[idx] = iv
	m.CloneQuals[idx] = qual
	return nil
}

// ParseReal is ReadReal on a path.
func ParseReal(ctx context.Context, path string) (m RealMatrix, err error) {
	err = textio.ReadFile(ctx, path, func(r io.Reader) error {
		m, err = ReadReal(r, path)
		return err
	})
	if err != nil {
		return RealMatrix{}, err
	}
	return m, nil
}
