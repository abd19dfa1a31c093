package hapmatrix

import (
	"context"
	"io"
	"strings"

	"github.com/ascendo/LACHESIS/textio"
	"github.com/ascendo/LACHESIS/variant"
)

// SimMatrix is a simulated haplotype matrix.  Fragment i covers loci
// [Offsets[i], Offsets[i]+FragSize).
type SimMatrix struct {
	NClones  int
	NLoci    int
	FragSize int
	// Frags holds one call string per clone, FragSize characters from "01-"
	// where '-' is no call.
	Frags     []string
	Offsets   []int
	FragTruth []variant.Tribool
	// LociTruth holds the true haplotype, one '0' or '1' per locus.
	LociTruth string
}

const (
	keyClones   = "CLONES"
	keyLoci     = "LOCI"
	keyFragSize = "FRAGSIZE"
	keyFrag     = "FRAG"
	keyTruth    = "TRUTH"
)

// ReadSim decodes a simulated matrix.
func ReadSim(r io.Reader, name string) (SimMatrix, error) {
	var (
		m        SimMatrix
		hdr      = newHeader(keyClones, keyLoci, keyFragSize)
		hdrDone  bool
		hasTruth bool
		sc       = textio.NewScanner(r, name, 5, "#")
	)
	for sc.Scan() {
		tokens := sc.Tokens()
		keyword := string(tokens[0])
		if hdr.has(keyword) {
			if hdrDone {
				return SimMatrix{}, sc.Errorf("%s after the first FRAG line", keyword)
			}
			if err := hdr.set(sc, keyword, tokens); err != nil {
				return SimMatrix{}, err
			}
			continue
		}
		switch keyword {
		case keyFrag:
			if !hdrDone {
				if err := hdr.complete(sc); err != nil {
					return SimMatrix{}, err
				}
				m.NClones, m.NLoci, m.FragSize = hdr.get(keyClones), hdr.get(keyLoci), hdr.get(keyFragSize)
				if m.FragSize > m.NLoci {
					return SimMatrix{}, sc.Errorf("FRAGSIZE %d exceeds LOCI %d", m.FragSize, m.NLoci)
				}
				hdrDone = true
			}
			if err := m.addFrag(sc, tokens); err != nil {
				return SimMatrix{}, err
			}
		case keyTruth:
			if !hdrDone {
				return SimMatrix{}, sc.Errorf("TRUTH before any FRAG line")
			}
			if hasTruth {
				return SimMatrix{}, sc.Errorf("duplicate TRUTH line")
			}
			if len(tokens) != 2 {
				return SimMatrix{}, sc.Errorf("TRUTH takes one value")
			}
			truth := string(tokens[1])
			if len(truth) != m.NLoci || strings.Trim(truth, "01") != "" {
				return SimMatrix{}, sc.Errorf("TRUTH must be %d characters from \"01\"", m.NLoci)
			}
			m.LociTruth = truth
			hasTruth = true
		default:
			return SimMatrix{}, sc.Errorf("unknown keyword %q", keyword)
		}
	}
	if err := sc.Err(); err != nil {
		return SimMatrix{}, err
	}
	if !hdrDone {
		if err := hdr.complete(sc); err != nil {
			return SimMatrix{}, err
		}
		return SimMatrix{}, sc.Errorf("expected %d FRAG lines, got 0", hdr.get(keyClones))
	}
	if len(m.Frags) != m.NClones {
		return SimMatrix{}, sc.Errorf("expected %d FRAG lines, got %d", m.NClones, len(m.Frags))
	}
	if !hasTruth {
		return SimMatrix{}, sc.Errorf("missing TRUTH line")
	}
	return m, nil
}

func (m *SimMatrix) addFrag(sc *textio.Scanner, tokens [][]byte) error {
	if len(m.Frags) == m.NClones {
		return sc.Errorf("more than %d FRAG lines", m.NClones)
	}
	if len(tokens) != 4 {
		return sc.Errorf("FRAG takes an offset, calls and a truth value")
	}
	offset, err := atoi(tokens[1])
	if err != nil || offset < 0 {
		return sc.Errorf("invalid FRAG offset %q", tokens[1])
	}
	if offset+m.FragSize > m.NLoci {
		return sc.Errorf("fragment [%d,%d) runs past LOCI %d", offset, offset+m.FragSize, m.NLoci)
	}
	calls := string(tokens[2])
	if len(calls) != m.FragSize || strings.Trim(calls, "01-") != "" {
		return sc.Errorf("FRAG calls must be %d characters from \"01-\"", m.FragSize)
	}
	var truth variant.Tribool
	switch string(tokens[3]) {
	case "1":
		truth = variant.True
	case "0":
		truth = variant.False
	case "?":
		truth = variant.Unknown
	default:
		return sc.Errorf("invalid FRAG truth %q", tokens[3])
	}
	m.Frags = append(m.Frags, calls)
	m.Offsets = append(m.Offsets, offset)
	m.FragTruth = append(m.FragTruth, truth)
	return nil
}

// ParseSim is ReadSim on a path.
func ParseSim(ctx context.Context, path string) (m SimMatrix, err error) {
	err = textio.ReadFile(ctx, path, func(r io.Reader) error {
		m, err = ReadSim(r, path)
		return err
	})
	if err != nil {
		return SimMatrix{}, err
	}
	return m, nil
}
