package assembly

import (
	"context"
	"io"
	"strings"

	"github.com/biogo/store/llrb"
	"github.com/grailbio/base/compress"
	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/tsv"
	"github.com/wulouis/transrate/contig"
	"github.com/wulouis/transrate/encoding/fasta"
	"github.com/wulouis/transrate/util"
)

// crbRow is one alignment in tabular BLAST outfmt6 column order, as written
// by CRB-BLAST. The file has no header row.
type crbRow struct {
	Query    string
	Target   string
	PIdent   float64
	Length   int
	Mismatch int
	GapOpen  int
	QStart   int
	QEnd     int
	TStart   int
	TEnd     int
	EValue   float64
	BitScore float64
}

// hitIval is a closed 1-based interval on a target sequence, ordered by
// start then end so an in-order walk sees overlapping intervals adjacently.
type hitIval struct {
	from, to int
}

func (v hitIval) Compare(c llrb.Comparable) int {
	w := c.(hitIval)
	if v.from != w.from {
		return v.from - w.from
	}
	return v.to - w.to
}

// contigTarget keys the per-(contig,target) interval trees.
type contigTarget struct {
	contig int
	target string
}

// coveredBases returns the number of distinct target positions covered by
// the intervals in tree.
func coveredBases(tree *llrb.Tree) int {
	total := 0
	curFrom, curTo := 0, -1
	tree.Do(func(c llrb.Comparable) bool {
		iv := c.(hitIval)
		switch {
		case curTo < 0:
			curFrom, curTo = iv.from, iv.to
		case iv.from > curTo+1:
			total += curTo - curFrom + 1
			curFrom, curTo = iv.from, iv.to
		case iv.to > curTo:
			curTo = iv.to
		}
		return false
	})
	if curTo >= 0 {
		total += curTo - curFrom + 1
	}
	return total
}

// ApplyCRB reads the CRB-BLAST hits TSV at path and records each hit on the
// contig it names, in file order. Reverse-strand hits arrive with target
// start greater than target end and are flipped before use.
//
// When targetLengths is non-nil, each contig additionally gets its
// reference coverage: hit intervals are unioned per target, and the contig
// reports the coverage of its best-covered target divided by that target's
// length. A hit target missing from targetLengths is an error. With a nil
// map only the hits themselves are recorded.
func (a *Assembly) ApplyCRB(ctx context.Context, path string, targetLengths map[string]uint64) (err error) {
	in, err := file.Open(ctx, path)
	if err != nil {
		return err
	}
	defer file.CloseAndReport(ctx, in, &err)
	r := tsv.NewReader(in.Reader(ctx))
	trees := map[contigTarget]*llrb.Tree{}
	for {
		var row crbRow
		if err := r.Read(&row); err != nil {
			if err == io.EOF {
				break
			}
			return errors.E(err, "crb hits:", path)
		}
		i, found := a.byName[row.Query]
		if !found {
			if near, ok := util.Nearest(row.Query, a.ContigNames(), maxSuggestDist); ok {
				return errors.E(path, "unknown contig name:", row.Query, "(did you mean "+near+"?)")
			}
			return errors.E(path, "unknown contig name:", row.Query)
		}
		from, to := row.TStart, row.TEnd
		if from > to {
			from, to = to, from
		}
		a.contigs[i].AddHit(contig.Hit{Target: row.Target, TargetFrom: from, TargetTo: to})
		if targetLengths == nil {
			continue
		}
		key := contigTarget{i, row.Target}
		tree := trees[key]
		if tree == nil {
			tree = &llrb.Tree{}
			trees[key] = tree
		}
		tree.Insert(hitIval{from, to})
	}
	if targetLengths == nil {
		return nil
	}

	best := map[int]float64{}
	for key, tree := range trees {
		length, found := targetLengths[key.target]
		if !found {
			return errors.E(path, "hit target missing from reference:", key.target)
		}
		if length == 0 {
			continue
		}
		frac := float64(coveredBases(tree)) / float64(length)
		if frac > best[key.contig] {
			best[key.contig] = frac
		}
	}
	for i, frac := range best {
		a.contigs[i].SetReferenceCoverage(frac)
	}
	return nil
}

// TargetLengths reads reference sequence lengths for ApplyCRB. A path
// ending in .fai is read as a faidx index; anything else is scanned as
// FASTA, plain or gzipped.
func TargetLengths(ctx context.Context, path string) (lengths map[string]uint64, err error) {
	in, err := file.Open(ctx, path)
	if err != nil {
		return nil, err
	}
	defer file.CloseAndReport(ctx, in, &err)
	if strings.HasSuffix(path, ".fai") {
		return fasta.IndexLengths(in.Reader(ctx))
	}
	r, _ := compress.NewReader(in.Reader(ctx))
	defer func() {
		if e := r.Close(); e != nil && err == nil {
			err = e
		}
	}()
	lengths = map[string]uint64{}
	sc := fasta.NewScanner(r)
	var rec fasta.Record
	for sc.Scan(&rec) {
		if _, found := lengths[rec.Name]; found {
			return nil, errors.E(path, "duplicate reference name:", rec.Name)
		}
		lengths[rec.Name] = uint64(len(rec.Seq))
	}
	if err := sc.Err(); err != nil {
		return nil, errors.E(err, "reference:", path)
	}
	return lengths, nil
}
