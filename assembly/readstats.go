package assembly

import (
	"context"
	"io"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/tsv"
	"github.com/wulouis/transrate/util"
)

// maxSuggestDist caps how far a misspelled contig name may be from a known
// name before the error stops suggesting it.
const maxSuggestDist = 5

// readStatsRow is one line of the read alignment summary TSV. The column
// order is fixed by the header names.
type readStatsRow struct {
	Contig             string  `tsv:"contig"`
	Coverage           float64 `tsv:"coverage"`
	UncoveredBases     int     `tsv:"uncovered_bases"`
	PSeqTrue           float64 `tsv:"p_seq_true"`
	PUnique            float64 `tsv:"p_unique"`
	LowUniquenessBases int     `tsv:"low_uniqueness_bases"`
	Bridges            int     `tsv:"bridges"`
	PGood              float64 `tsv:"p_good"`
	PNotSegmented      float64 `tsv:"p_not_segmented"`
}

// ApplyReadStats reads the alignment summary TSV at path and applies each
// row to the contig it names. A negative p_good means the aligner produced
// no pairing evidence for that contig; the contig is then left unscored and
// its read-based view reports the dependent fields as unavailable. Rows
// naming a contig absent from the assembly are an error; the message
// suggests the nearest known name when one is plausibly close.
//
// Call before ComputeMetrics so scores and the good/bad split see the
// applied values.
func (a *Assembly) ApplyReadStats(ctx context.Context, path string) (err error) {
	in, err := file.Open(ctx, path)
	if err != nil {
		return err
	}
	defer file.CloseAndReport(ctx, in, &err)
	r := tsv.NewReader(in.Reader(ctx))
	r.HasHeaderRow = true
	r.UseHeaderNames = true
	for {
		var row readStatsRow
		if err := r.Read(&row); err != nil {
			if err == io.EOF {
				break
			}
			return errors.E(err, "read stats:", path)
		}
		c, found := a.ContigByName(row.Contig)
		if !found {
			if near, ok := util.Nearest(row.Contig, a.ContigNames(), maxSuggestDist); ok {
				return errors.E(path, "unknown contig name:", row.Contig, "(did you mean "+near+"?)")
			}
			return errors.E(path, "unknown contig name:", row.Contig)
		}
		c.SetCoverage(row.Coverage)
		c.SetUncoveredBases(row.UncoveredBases)
		c.SetPSeqTrue(row.PSeqTrue)
		c.SetPUnique(row.PUnique)
		c.SetLowUniquenessBases(row.LowUniquenessBases)
		c.SetInBridges(row.Bridges)
		c.SetPNotSegmented(row.PNotSegmented)
		if row.PGood >= 0 {
			c.SetPGood(row.PGood)
		}
	}
	return nil
}
