// Package textio is the line-oriented field reader shared by the BED,
// copy-number and haplotype-matrix decoders.  It knows nothing about any one
// format: it skips blank and comment lines, splits on whitespace, and turns
// grammar violations into *LineError values that carry the file and line.
package textio

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"
)

// maxLineBytes bounds a single line.  Haplotype-matrix CLONE lines can be
// long, so the bufio default (64KiB) is not enough.
const maxLineBytes = 64 << 20

// Fields stores the leading whitespace-separated columns of line in tokens
// and returns how many it found.  Bytes <= ' ' separate columns; columns past
// len(tokens) are ignored.
func Fields(tokens [][]byte, line []byte) int {
	n, i := 0, 0
	for n < len(tokens) {
		for i < len(line) && line[i] <= ' ' {
			i++
		}
		if i == len(line) {
			break
		}
		j := i + 1
		for j < len(line) && line[j] > ' ' {
			j++
		}
		tokens[n] = line[i:j]
		n++
		i = j
	}
	return n
}

// Scanner iterates over the data lines of a whitespace-delimited text
// source.  Blank lines and lines whose first token starts with one of the
// comment prefixes are skipped.
type Scanner struct {
	sc       *bufio.Scanner
	path     string
	lineIdx  int
	line     []byte
	tokens   [][]byte
	nToken   int
	prefixes [][]byte
	err      error
}

// NewScanner returns a Scanner reading r.  path is used only in error
// messages.  Tokens() exposes at most maxTokens leading columns.
func NewScanner(r io.Reader, path string, maxTokens int, commentPrefixes ...string) *Scanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64<<10), maxLineBytes)
	s := &Scanner{
		sc:     sc,
		path:   path,
		tokens: make([][]byte, maxTokens),
	}
	for _, p := range commentPrefixes {
		s.prefixes = append(s.prefixes, []byte(p))
	}
	return s
}

// Scan advances to the next data line.  It returns false at EOF or on a read
// error; Err distinguishes the two.
func (s *Scanner) Scan() bool {
	for s.sc.Scan() {
		s.lineIdx++
		s.line = s.sc.Bytes()
		s.nToken = Fields(s.tokens, s.line)
		if s.nToken == 0 || s.isComment(s.tokens[0]) {
			continue
		}
		return true
	}
	if err := s.sc.Err(); err != nil {
		s.err = &FileError{Path: s.path, Op: "read", Kind: ErrUnreadableFile, Err: err}
	}
	return false
}

func (s *Scanner) isComment(first []byte) bool {
	for _, p := range s.prefixes {
		if bytes.HasPrefix(first, p) {
			return true
		}
	}
	return false
}

// Tokens returns the leading columns of the current line.  The slices alias
// the scanner's buffer and are only valid until the next call to Scan.
func (s *Scanner) Tokens() [][]byte {
	return s.tokens[:s.nToken]
}

// Fields returns every whitespace-separated column of the current line as
// freshly allocated strings.
func (s *Scanner) Fields() []string {
	return strings.Fields(string(s.line))
}

// Line returns the 1-based number of the current line.
func (s *Scanner) Line() int { return s.lineIdx }

// Path returns the name the scanner was created with.
func (s *Scanner) Path() string { return s.path }

// Err returns the read error that stopped Scan, if any.
func (s *Scanner) Err() error { return s.err }

// Errorf returns a *LineError for the current line.
func (s *Scanner) Errorf(format string, args ...interface{}) error {
	return &LineError{Path: s.path, Line: s.lineIdx, Reason: fmt.Sprintf(format, args...)}
}
