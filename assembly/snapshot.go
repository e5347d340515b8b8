package assembly

import (
	"bytes"
	"context"
	"encoding/gob"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/recordio"
	"github.com/grailbio/base/recordio/recordiozstd"
	"github.com/wulouis/transrate/contig"
)

// A snapshot file persists a fully computed assembly so reports can be
// inspected or regenerated without the FASTA and alignment inputs. It is a
// zstd-compressed recordio file: one gob-encoded SnapshotContig per record,
// a version header, and a gob-encoded trailer with the stats, the options
// and the input checksums.

const (
	// <snapshotVersionKey, snapshotVersion> is stored in a recordio header.
	snapshotVersionKey = "transrateversion"
	snapshotVersion    = "TRANSRATE_V1"
)

// SnapshotContig is the per-contig payload of a snapshot file.
type SnapshotContig struct {
	Name   string
	Length int
	Basic  contig.BasicMetrics
	Read   contig.ReadMetrics
	Comp   contig.ComparativeMetrics
	// Hits keeps the per-hit target positions that Comp's joined id list
	// drops.
	Hits []contig.Hit
}

// snapshotTrailer is stored in the trailer section of the recordio file.
type snapshotTrailer struct {
	Name  string
	Stats Stats
	Opts  Opts
	// Checksums maps each input path to its seahash, so a later run can
	// tell whether the snapshot still describes the same inputs.
	Checksums map[string]uint64
}

// Snapshot is a decoded snapshot file.
type Snapshot struct {
	Name      string
	Contigs   []SnapshotContig
	Stats     Stats
	Opts      Opts
	Checksums map[string]uint64
}

// WriteSnapshot writes the assembly's computed state to path. checksums may
// be nil. ComputeMetrics must have run.
func (a *Assembly) WriteSnapshot(ctx context.Context, path string, checksums map[string]uint64) (err error) {
	if !a.computed {
		return errors.E("snapshot requires computed metrics:", a.name)
	}
	recordiozstd.Init()
	out, err := file.Create(ctx, path)
	if err != nil {
		return err
	}
	defer file.CloseAndReport(ctx, out, &err)
	w := recordio.NewWriter(out.Writer(ctx), recordio.WriterOpts{
		Transformers: []string{recordiozstd.Name},
	})
	w.AddHeader(snapshotVersionKey, snapshotVersion)
	w.AddHeader(recordio.KeyTrailer, true)
	for _, c := range a.contigs {
		rec := SnapshotContig{
			Name:   c.Name(),
			Length: c.Len(),
			Basic:  c.Basic(a.opts.ComplexityK),
			Read:   c.ReadBased(),
			Comp:   c.Comparative(),
			Hits:   c.Hits(),
		}
		b := bytes.NewBuffer(nil)
		if err := gob.NewEncoder(b).Encode(rec); err != nil {
			return errors.E(err, "snapshot contig:", rec.Name)
		}
		w.Append(b.Bytes())
	}
	b := bytes.NewBuffer(nil)
	tr := snapshotTrailer{
		Name:      a.name,
		Stats:     a.stats,
		Opts:      a.opts,
		Checksums: checksums,
	}
	if err := gob.NewEncoder(b).Encode(tr); err != nil {
		return errors.E(err, "snapshot trailer:", path)
	}
	w.SetTrailer(b.Bytes())
	if err := w.Finish(); err != nil {
		return errors.E(err, "snapshot:", path)
	}
	return nil
}

// ReadSnapshot reads a snapshot file written by WriteSnapshot. Files whose
// version header is missing or names a different version are rejected.
func ReadSnapshot(ctx context.Context, path string) (snap *Snapshot, err error) {
	recordiozstd.Init()
	in, err := file.Open(ctx, path)
	if err != nil {
		return nil, err
	}
	defer file.CloseAndReport(ctx, in, &err)
	r := recordio.NewScanner(in.Reader(ctx), recordio.ScannerOpts{})
	version := ""
	for _, kv := range r.Header() {
		if kv.Key == snapshotVersionKey {
			version, _ = kv.Value.(string)
			break
		}
	}
	if version == "" {
		return nil, errors.E("not a snapshot file:", path)
	}
	if version != snapshotVersion {
		return nil, errors.E(path, "snapshot version mismatch: got", version, "want", snapshotVersion)
	}
	var tr snapshotTrailer
	if err := gob.NewDecoder(bytes.NewReader(r.Trailer())).Decode(&tr); err != nil {
		return nil, errors.E(err, "snapshot trailer:", path)
	}
	snap = &Snapshot{
		Name:      tr.Name,
		Stats:     tr.Stats,
		Opts:      tr.Opts,
		Checksums: tr.Checksums,
	}
	for r.Scan() {
		var rec SnapshotContig
		if err := gob.NewDecoder(bytes.NewReader(r.Get().([]byte))).Decode(&rec); err != nil {
			return nil, errors.E(err, "snapshot record:", path)
		}
		snap.Contigs = append(snap.Contigs, rec)
	}
	if err := r.Err(); err != nil {
		return nil, errors.E(err, "snapshot:", path)
	}
	return snap, nil
}
