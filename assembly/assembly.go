package assembly

import (
	"context"
	"strings"

	"github.com/grailbio/base/compress"
	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/wulouis/transrate/contig"
	"github.com/wulouis/transrate/encoding/fasta"
)

// Assembly is one transcriptome assembly: the contigs parsed from a FASTA
// file, in file order, plus the metrics computed for them.
//
// The expected call order is Load (or New), then ApplyReadStats and
// ApplyCRB, then ComputeMetrics, then the report writers. ComputeMetrics
// releases the per-contig sequence buffers into the compressed store, so
// read- and reference-derived inputs applied after it no longer influence
// scores or stats.
type Assembly struct {
	name    string
	path    string
	contigs []*contig.Contig
	byName  map[string]int

	store    *seqStore
	stats    Stats
	opts     Opts
	computed bool
}

// New assembles contigs under one name. Contig names must be unique.
func New(name string, contigs []*contig.Contig) (*Assembly, error) {
	a := &Assembly{
		name:    name,
		contigs: contigs,
		byName:  make(map[string]int, len(contigs)),
	}
	for i, c := range contigs {
		if _, found := a.byName[c.Name()]; found {
			return nil, errors.E("assembly", name, "duplicate contig name:", c.Name())
		}
		a.byName[c.Name()] = i
	}
	return a, nil
}

// Load reads every contig from the FASTA file at path. Plain and
// gzip-compressed inputs both work, as do S3 paths. The assembly name is
// the file base name without its FASTA and compression extensions.
func Load(ctx context.Context, path string) (a *Assembly, err error) {
	in, err := file.Open(ctx, path)
	if err != nil {
		return nil, err
	}
	defer file.CloseAndReport(ctx, in, &err)
	r, _ := compress.NewReader(in.Reader(ctx))
	defer func() {
		if e := r.Close(); e != nil && err == nil {
			err = e
		}
	}()

	var contigs []*contig.Contig
	sc := fasta.NewScanner(r)
	var rec fasta.Record
	for sc.Scan(&rec) {
		contigs = append(contigs, contig.New(rec.Name, rec.Seq))
	}
	if err := sc.Err(); err != nil {
		return nil, errors.E(err, "load assembly:", path)
	}
	if len(contigs) == 0 {
		return nil, errors.E("no contigs in assembly:", path)
	}
	if a, err = New(assemblyName(path), contigs); err != nil {
		return nil, err
	}
	a.path = path
	return a, nil
}

// assemblyName derives a short assembly name from a file path.
func assemblyName(path string) string {
	name := file.Base(path)
	name = strings.TrimSuffix(name, ".gz")
	for _, ext := range []string{".fasta", ".fa", ".fna"} {
		name = strings.TrimSuffix(name, ext)
	}
	return name
}

// Name returns the assembly name.
func (a *Assembly) Name() string { return a.name }

// Path returns the FASTA path the assembly was loaded from, or "" for
// assemblies built with New.
func (a *Assembly) Path() string { return a.path }

// NumContigs returns the number of contigs.
func (a *Assembly) NumContigs() int { return len(a.contigs) }

// Contig returns the i'th contig in file order.
func (a *Assembly) Contig(i int) *contig.Contig { return a.contigs[i] }

// ContigByName looks a contig up by name.
func (a *Assembly) ContigByName(name string) (*contig.Contig, bool) {
	i, found := a.byName[name]
	if !found {
		return nil, false
	}
	return a.contigs[i], true
}

// ContigNames returns the contig names in file order.
func (a *Assembly) ContigNames() []string {
	names := make([]string, len(a.contigs))
	for i, c := range a.contigs {
		names[i] = c.Name()
	}
	return names
}

// Stats returns the assembly stats. The bool is false until ComputeMetrics
// has run.
func (a *Assembly) Stats() (Stats, bool) { return a.stats, a.computed }

// Seq returns the normalized sequence of contig i. Before ComputeMetrics it
// aliases the contig's own buffer; afterwards it is decompressed from the
// store. Callers must not modify it.
func (a *Assembly) Seq(i int) ([]byte, error) {
	if seq := a.contigs[i].Seq(); seq != nil || !a.computed {
		return seq, nil
	}
	return a.store.get(i)
}
