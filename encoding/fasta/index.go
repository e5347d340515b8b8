package fasta

import (
	"bufio"
	"bytes"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/tsv"
)

// An IndexEntry describes one sequence of a FASTA file, in the form stored in
// a *.fai index: "<name>\t<length>\t<byte offset>\t<bases per line>\t<bytes
// per line>".  The format is defined by "samtools faidx"
// (http://www.htslib.org/doc/faidx.html).
type IndexEntry struct {
	Name      string
	Length    uint64
	Offset    uint64
	LineBases uint64
	LineWidth uint64
}

var indexLineRE = regexp.MustCompile(`^(\S+)\t(\d+)\t(\d+)\t(\d+)\t(\d+)`)

// ReadIndex parses *.fai data, preserving file order.
func ReadIndex(r io.Reader) ([]IndexEntry, error) {
	scanner := bufio.NewScanner(r)
	var entries []IndexEntry
	for scanner.Scan() {
		line := scanner.Text()
		if len(line) == 0 {
			continue
		}
		matches := indexLineRE.FindStringSubmatch(line)
		if len(matches) != 6 {
			return nil, errors.E("invalid index line:", line)
		}
		ent := IndexEntry{Name: matches[1]}
		ent.Length, _ = strconv.ParseUint(matches[2], 10, 64)
		ent.Offset, _ = strconv.ParseUint(matches[3], 10, 64)
		ent.LineBases, _ = strconv.ParseUint(matches[4], 10, 64)
		ent.LineWidth, _ = strconv.ParseUint(matches[5], 10, 64)
		entries = append(entries, ent)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

// IndexLengths parses *.fai data into a sequence name to length map.  This
// doesn't require reading the FASTA file itself.
func IndexLengths(r io.Reader) (map[string]uint64, error) {
	entries, err := ReadIndex(r)
	if err != nil {
		return nil, err
	}
	lengths := make(map[string]uint64, len(entries))
	for _, ent := range entries {
		lengths[ent.Name] = ent.Length
	}
	return lengths, nil
}

// BuildIndex scans FASTA data and computes its index entries.  The line
// geometry of each sequence is taken from its first line; a final line
// without a terminating newline is accepted.
func BuildIndex(in io.Reader) ([]IndexEntry, error) {
	var (
		r       = bufio.NewReader(in)
		entries []IndexEntry
		cur     IndexEntry
		started bool
		cumByte uint64
		eof     bool
	)
	for !eof {
		fullLine, err := r.ReadBytes('\n')
		if err == io.EOF { // Process fullLine, then exit the loop.
			eof = true
		} else if err != nil {
			return nil, err
		}
		lineOff := cumByte
		cumByte += uint64(len(fullLine))
		line := bytes.TrimRight(fullLine, "\r\n")
		if len(line) == 0 {
			continue
		}
		if line[0] == '>' { // Start a new sequence.
			if started {
				entries = append(entries, cur)
			}
			name := strings.Split(string(line[1:]), " ")[0]
			if name == "" {
				return nil, errors.E("malformed FASTA file")
			}
			cur = IndexEntry{Name: name, Offset: cumByte}
			started = true
			continue
		}
		if !started {
			return nil, errors.E("malformed FASTA file")
		}
		if cur.LineWidth == 0 {
			cur.LineWidth = cumByte - lineOff
			cur.LineBases = uint64(len(line))
		}
		cur.Length += uint64(len(line))
	}
	if !started {
		return nil, errors.E("empty FASTA file")
	}
	entries = append(entries, cur)
	return entries, nil
}

// WriteIndex writes entries in *.fai format.
func WriteIndex(out io.Writer, entries []IndexEntry) error {
	w := tsv.NewWriter(out)
	for _, ent := range entries {
		w.WriteString(ent.Name)
		w.WriteInt64(int64(ent.Length))
		w.WriteInt64(int64(ent.Offset))
		w.WriteInt64(int64(ent.LineBases))
		w.WriteInt64(int64(ent.LineWidth))
		if err := w.EndLine(); err != nil {
			return err
		}
	}
	return w.Flush()
}

// GenerateIndex generates an index (*.fai) from FASTA data.  The index can
// later be read back with ReadIndex or IndexLengths to look up sequence
// lengths without touching the FASTA file.
func GenerateIndex(out io.Writer, in io.Reader) error {
	entries, err := BuildIndex(in)
	if err != nil {
		return err
	}
	return WriteIndex(out, entries)
}
