package assembly

import (
	"context"
	"io"

	"github.com/blainsmith/seahash"
	"github.com/grailbio/base/file"
)

// FileChecksum returns the seahash of the raw bytes at path. Snapshots
// record the checksums of their inputs so a later run can detect that an
// input changed underneath a snapshot.
func FileChecksum(ctx context.Context, path string) (sum uint64, err error) {
	in, err := file.Open(ctx, path)
	if err != nil {
		return 0, err
	}
	defer file.CloseAndReport(ctx, in, &err)
	h := seahash.New()
	if _, err := io.Copy(h, in.Reader(ctx)); err != nil {
		return 0, err
	}
	return h.Sum64(), nil
}
