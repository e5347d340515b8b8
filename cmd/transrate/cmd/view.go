package cmd

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/grailbio/base/vcontext"
	"github.com/wulouis/transrate/assembly"
	"github.com/wulouis/transrate/contig"
)

type viewFlags struct {
	stats   *bool
	contigs *bool
}

// formatFloat renders v the way the TSV reports do, so snapshot output and
// report output agree.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func formatMetric(m contig.Metric) string {
	if !m.OK {
		return contig.NA
	}
	return formatFloat(m.Value)
}

func view(w io.Writer, flags viewFlags, path string) error {
	ctx := vcontext.Background()
	snap, err := assembly.ReadSnapshot(ctx, path)
	if err != nil {
		return err
	}
	showStats := *flags.stats
	showContigs := *flags.contigs
	if !showStats && !showContigs {
		showStats, showContigs = true, true
	}
	if showStats {
		viewStats(w, snap)
	}
	if showContigs {
		viewContigs(w, snap)
	}
	return nil
}

func viewStats(w io.Writer, snap *assembly.Snapshot) {
	s := snap.Stats
	fmt.Fprintf(w, "assembly\t%s\n", snap.Name)
	fmt.Fprintf(w, "n_contigs\t%d\n", s.Contigs)
	fmt.Fprintf(w, "total_length\t%d\n", s.TotalLength)
	fmt.Fprintf(w, "smallest_contig\t%d\n", s.MinLength)
	fmt.Fprintf(w, "largest_contig\t%d\n", s.MaxLength)
	fmt.Fprintf(w, "n_under_200\t%d\n", s.Under200)
	fmt.Fprintf(w, "n_over_1k\t%d\n", s.Over1K)
	fmt.Fprintf(w, "n_over_10k\t%d\n", s.Over10K)
	fmt.Fprintf(w, "prop_gc\t%s\n", formatFloat(s.GC()))
	fmt.Fprintf(w, "n_bases\t%d\n", s.NCount())
	fmt.Fprintf(w, "n_with_orf\t%d\n", s.WithORF)
	fmt.Fprintf(w, "mean_orf_fraction\t%s\n", formatFloat(s.MeanORFFraction()))
	fmt.Fprintf(w, "n90\t%d\n", s.N90)
	fmt.Fprintf(w, "n70\t%d\n", s.N70)
	fmt.Fprintf(w, "n50\t%d\n", s.N50)
	fmt.Fprintf(w, "n30\t%d\n", s.N30)
	fmt.Fprintf(w, "n10\t%d\n", s.N10)
	fmt.Fprintf(w, "n_duplicates\t%d\n", s.Duplicates)
	fmt.Fprintf(w, "n_good\t%d\n", s.Good)
	fmt.Fprintf(w, "n_bad\t%d\n", s.Bad())
	fmt.Fprintf(w, "cutoff\t%s\n", formatFloat(s.Cutoff))
	fmt.Fprintf(w, "mean_score\t%s\n", formatFloat(s.MeanScore()))
	fmt.Fprintf(w, "complexity_k\t%d\n", snap.Opts.ComplexityK)
	paths := make([]string, 0, len(snap.Checksums))
	for p := range snap.Checksums {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	for _, p := range paths {
		fmt.Fprintf(w, "input\t%s\t%016x\n", p, snap.Checksums[p])
	}
}

func viewContigs(w io.Writer, snap *assembly.Snapshot) {
	for i := range snap.Contigs {
		c := &snap.Contigs[i]
		fmt.Fprintf(w, "%s\t%d\t%s\t%d\t%s\t%s\t%s\n",
			c.Name, c.Length,
			formatFloat(c.Basic.PropGC),
			c.Basic.ORFLength,
			formatFloat(c.Basic.LinguisticComplexity),
			formatMetric(c.Read.Score),
			c.Comp.Hits)
	}
}
