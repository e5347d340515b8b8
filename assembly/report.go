package assembly

import (
	"context"
	"strconv"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/tsv"
	"github.com/grailbio/hts/bgzf"
	"github.com/wulouis/transrate/contig"
	"github.com/wulouis/transrate/encoding/fasta"
)

// Format selects the report encoding.
type Format int

const (
	// FormatTSV writes plain tab-separated text.
	FormatTSV Format = iota
	// FormatTSVBgz writes BGZF-compressed tab-separated text.
	FormatTSVBgz
)

// ParseFormat maps a -format flag value to a Format.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "tsv":
		return FormatTSV, nil
	case "tsv-bgz":
		return FormatTSVBgz, nil
	}
	return 0, errors.E("unknown format:", s)
}

// writeFloat writes one float column. NaN is written literally: it marks a
// metric that was computed but has no defined value, unlike NA, which marks
// a metric whose inputs were never supplied.
func writeFloat(w *tsv.Writer, v float64) {
	w.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
}

func writeMetric(w *tsv.Writer, m contig.Metric) {
	if !m.OK {
		w.WriteString(contig.NA)
		return
	}
	writeFloat(w, m.Value)
}

func writeIntMetric(w *tsv.Writer, m contig.IntMetric) {
	if !m.OK {
		w.WriteString(contig.NA)
		return
	}
	w.WriteInt64(int64(m.Value))
}

// WriteContigsTSV writes one row per contig with the basic, read-based and
// comparative metrics. ComputeMetrics must have run.
func (a *Assembly) WriteContigsTSV(ctx context.Context, path string, format Format) (err error) {
	if !a.computed {
		return errors.E("contigs report requires computed metrics:", a.name)
	}
	out, err := file.Create(ctx, path)
	if err != nil {
		return err
	}
	defer file.CloseAndReport(ctx, out, &err)
	var w *tsv.Writer
	if format == FormatTSVBgz {
		bgzw := bgzf.NewWriter(out.Writer(ctx), a.opts.Parallelism)
		defer func() {
			if e := bgzw.Close(); e != nil && err == nil {
				err = e
			}
		}()
		w = tsv.NewWriter(bgzw)
	} else {
		w = tsv.NewWriter(out.Writer(ctx))
	}

	w.WriteString("contig_name\tlength\tprop_gc\tgc_skew\tat_skew\tcpg_count\tcpg_ratio\torf_length\tlinguistic_complexity")
	w.WriteString("coverage\tp_unique\tp_not_segmented\tp_good\tscore\tuncovered_bases\tp_uncovered_bases\tp_bases_covered\tp_seq_true\tlow_uniqueness_bases\tbridges")
	w.WriteString("has_crb\treference_coverage\thits")
	if err := w.EndLine(); err != nil {
		return err
	}
	for _, c := range a.contigs {
		b := c.Basic(a.opts.ComplexityK)
		w.WriteString(b.Name)
		w.WriteInt64(int64(b.Length))
		writeFloat(w, b.PropGC)
		writeFloat(w, b.GCSkew)
		writeFloat(w, b.ATSkew)
		w.WriteInt64(int64(b.CpGCount))
		writeFloat(w, b.CpGRatio)
		w.WriteInt64(int64(b.ORFLength))
		writeFloat(w, b.LinguisticComplexity)

		r := c.ReadBased()
		writeFloat(w, r.Coverage)
		writeFloat(w, r.PUnique)
		writeFloat(w, r.PNotSegmented)
		writeMetric(w, r.PGood)
		writeMetric(w, r.Score)
		writeIntMetric(w, r.UncoveredBases)
		writeMetric(w, r.PUncoveredBases)
		writeMetric(w, r.PBasesCovered)
		writeMetric(w, r.PSeqTrue)
		writeIntMetric(w, r.LowUniquenessBases)
		writeIntMetric(w, r.InBridges)

		cm := c.Comparative()
		w.WriteString(strconv.FormatBool(cm.HasCRB))
		writeMetric(w, cm.ReferenceCoverage)
		w.WriteString(cm.Hits)
		if err := w.EndLine(); err != nil {
			return err
		}
	}
	return w.Flush()
}

// WriteAssembliesTSV writes the single-row assembly summary. ComputeMetrics
// must have run.
func (a *Assembly) WriteAssembliesTSV(ctx context.Context, path string, format Format) (err error) {
	if !a.computed {
		return errors.E("assembly report requires computed metrics:", a.name)
	}
	out, err := file.Create(ctx, path)
	if err != nil {
		return err
	}
	defer file.CloseAndReport(ctx, out, &err)
	var w *tsv.Writer
	if format == FormatTSVBgz {
		bgzw := bgzf.NewWriter(out.Writer(ctx), a.opts.Parallelism)
		defer func() {
			if e := bgzw.Close(); e != nil && err == nil {
				err = e
			}
		}()
		w = tsv.NewWriter(bgzw)
	} else {
		w = tsv.NewWriter(out.Writer(ctx))
	}

	w.WriteString("assembly\tn_contigs\ttotal_length\tsmallest_contig\tlargest_contig\tn_under_200\tn_over_1k\tn_over_10k")
	w.WriteString("prop_gc\tn_bases\tn_with_orf\tmean_orf_fraction")
	w.WriteString("n90\tn70\tn50\tn30\tn10")
	w.WriteString("n_duplicates\tn_good\tn_bad\tcutoff\tmean_score")
	if err := w.EndLine(); err != nil {
		return err
	}
	s := a.stats
	w.WriteString(a.name)
	w.WriteInt64(int64(s.Contigs))
	w.WriteInt64(int64(s.TotalLength))
	w.WriteInt64(int64(s.MinLength))
	w.WriteInt64(int64(s.MaxLength))
	w.WriteInt64(int64(s.Under200))
	w.WriteInt64(int64(s.Over1K))
	w.WriteInt64(int64(s.Over10K))
	writeFloat(w, s.GC())
	w.WriteInt64(int64(s.NCount()))
	w.WriteInt64(int64(s.WithORF))
	writeFloat(w, s.MeanORFFraction())
	w.WriteInt64(int64(s.N90))
	w.WriteInt64(int64(s.N70))
	w.WriteInt64(int64(s.N50))
	w.WriteInt64(int64(s.N30))
	w.WriteInt64(int64(s.N10))
	w.WriteInt64(int64(s.Duplicates))
	w.WriteInt64(int64(s.Good))
	w.WriteInt64(int64(s.Bad()))
	writeFloat(w, s.Cutoff)
	writeFloat(w, s.MeanScore())
	if err := w.EndLine(); err != nil {
		return err
	}
	return w.Flush()
}

// WriteGoodBad splits the contigs into two FASTA files by score: a contig
// is good when it was scored and its score reaches the cutoff, everything
// else is bad. Sequences come from the compressed store, wrapped at the
// standard line width. ComputeMetrics must have run.
func (a *Assembly) WriteGoodBad(ctx context.Context, goodPath, badPath string) (nGood, nBad int, err error) {
	if !a.computed {
		return 0, 0, errors.E("good/bad split requires computed metrics:", a.name)
	}
	goodOut, err := file.Create(ctx, goodPath)
	if err != nil {
		return 0, 0, err
	}
	defer file.CloseAndReport(ctx, goodOut, &err)
	badOut, err := file.Create(ctx, badPath)
	if err != nil {
		return 0, 0, err
	}
	defer file.CloseAndReport(ctx, badOut, &err)
	goodW := fasta.NewWriter(goodOut.Writer(ctx), fasta.DefaultLineWidth)
	badW := fasta.NewWriter(badOut.Writer(ctx), fasta.DefaultLineWidth)
	for i, c := range a.contigs {
		seq, err := a.store.get(i)
		if err != nil {
			return nGood, nBad, err
		}
		w := badW
		if _, ok := c.PGood(); ok && c.Score() >= a.opts.ScoreCutoff {
			w = goodW
			nGood++
		} else {
			nBad++
		}
		if err := w.Write(fasta.Record{Name: c.Name(), Seq: seq}); err != nil {
			return nGood, nBad, err
		}
	}
	if err := goodW.Flush(); err != nil {
		return nGood, nBad, err
	}
	if err := badW.Flush(); err != nil {
		return nGood, nBad, err
	}
	return nGood, nBad, nil
}
