// Package fasta contains code for reading, writing and indexing FASTA files.
// See http://www.htslib.org/doc/faidx.html.  Briefly, FASTA files consist of a
// number of named sequences whose bases may be interrupted by newlines.  For
// example:
//
// >contig7
// ACGTAC
// GAGGAC
// GCG
// >contig8
// ACGT
//
// Note: Sequence names are defined to be the stretch of characters excluding
// spaces immediately after '>'.  Any text after a space becomes the record
// description.  For example, '>tr1 assembled from 12 reads' has name 'tr1'
// and description 'assembled from 12 reads'.
package fasta

import (
	"bufio"
	"errors"
	"io"
	"strings"

	pkgerrors "github.com/pkg/errors"
)

// maxLineBytes bounds a single FASTA line. Some assemblers emit each
// sequence on one unbroken line.
const maxLineBytes = 256 * 1024 * 1024

// ErrInvalid is returned when the input is not FASTA: the first
// non-blank line does not start with '>', or a record has no name.
var ErrInvalid = errors.New("invalid FASTA file")

var errEOF = errors.New("eof")

// A Record is one FASTA sequence. Seq holds the bases with newlines
// removed and is owned by the record.
type Record struct {
	Name string
	Desc string
	Seq  []byte
}

// Scanner provides a streaming reader for FASTA data. The Scan method
// reads the next record, returning a boolean indicating whether the
// read succeeded. Scanners are not threadsafe.
//
// Scanner tolerates blank lines and carriage returns, and keeps
// sequence bytes otherwise as they appear in the input. A header
// immediately followed by another header yields a record with an
// empty sequence.
type Scanner struct {
	b      *bufio.Scanner
	hdr    string // lookahead header line, without '>'
	hasHdr bool
	err    error
}

// NewScanner constructs a Scanner that reads raw FASTA data from r.
func NewScanner(r io.Reader) *Scanner {
	b := bufio.NewScanner(r)
	b.Buffer(nil, maxLineBytes)
	return &Scanner{b: b}
}

// Scan the next record into rec. Scan returns a boolean indicating
// whether the scan succeeded. Once Scan returns false, it never
// returns true again. Upon completion, the user should check the Err
// method to determine whether scanning stopped because of an error or
// because the end of the stream was reached.
func (s *Scanner) Scan(rec *Record) bool {
	if s.err != nil {
		return false
	}
	if !s.hasHdr {
		for {
			if !s.b.Scan() {
				if s.err = s.b.Err(); s.err == nil {
					s.err = errEOF
				}
				return false
			}
			line := s.b.Text()
			if line == "" {
				continue
			}
			if line[0] != '>' {
				s.err = ErrInvalid
				return false
			}
			s.hdr = line[1:]
			break
		}
	}
	name := s.hdr
	desc := ""
	if i := strings.IndexByte(s.hdr, ' '); i >= 0 {
		name = s.hdr[:i]
		desc = strings.TrimSpace(s.hdr[i+1:])
	}
	if name == "" {
		s.err = ErrInvalid
		return false
	}
	s.hdr, s.hasHdr = "", false
	rec.Name = name
	rec.Desc = desc
	rec.Seq = nil
	for s.b.Scan() {
		line := s.b.Bytes()
		if len(line) == 0 {
			continue
		}
		if line[0] == '>' {
			s.hdr, s.hasHdr = string(line[1:]), true
			return true
		}
		rec.Seq = append(rec.Seq, line...)
	}
	if s.err = s.b.Err(); s.err == nil {
		s.err = errEOF
	}
	return true
}

// Err returns the scanning error, if any.
func (s *Scanner) Err() error {
	if s.err == errEOF {
		return nil
	}
	return s.err
}

// ReadAll reads every record from r.
func ReadAll(r io.Reader) ([]Record, error) {
	s := NewScanner(r)
	var recs []Record
	var rec Record
	for s.Scan(&rec) {
		recs = append(recs, rec)
	}
	if err := s.Err(); err != nil {
		return nil, pkgerrors.Wrap(err, "couldn't read FASTA data")
	}
	return recs, nil
}
