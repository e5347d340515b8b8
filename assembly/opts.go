package assembly

import (
	"runtime"

	"github.com/grailbio/base/errors"
	"github.com/wulouis/transrate/contig"
)

type Opts struct {
	// ComplexityK is the window width used for linguistic complexity.
	// Must be in [1, contig.MaxComplexityK].
	ComplexityK int
	// ScoreCutoff splits scored contigs into good and bad. A contig is good
	// when its score is at least the cutoff.
	ScoreCutoff float64
	// Parallelism is the number of concurrent metric-computation tasks.
	Parallelism int
}

// DefaultOpts sets the default values to Opts.
var DefaultOpts = Opts{
	ComplexityK: contig.DefaultComplexityK, // -complexity-k
	ScoreCutoff: 0.35,                      // -cutoff
	Parallelism: runtime.NumCPU(),          // -parallelism
}

// normalize fills zero fields from DefaultOpts and validates the rest.
func (o Opts) normalize() (Opts, error) {
	if o.ComplexityK == 0 {
		o.ComplexityK = DefaultOpts.ComplexityK
	}
	if o.ComplexityK < 1 || o.ComplexityK > contig.MaxComplexityK {
		return o, errors.E("complexity width out of range:", o.ComplexityK)
	}
	if o.ScoreCutoff == 0 {
		o.ScoreCutoff = DefaultOpts.ScoreCutoff
	}
	if o.ScoreCutoff < 0 || o.ScoreCutoff > 1 {
		return o, errors.E("score cutoff out of range:", o.ScoreCutoff)
	}
	if o.Parallelism <= 0 {
		o.Parallelism = DefaultOpts.Parallelism
	}
	return o, nil
}
