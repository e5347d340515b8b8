package assembly

import (
	"github.com/golang/snappy"
	"github.com/grailbio/base/errors"
)

// seqStore keeps the normalized contig sequences snappy-compressed in
// memory after the contigs release their buffers. Slots are preallocated
// per contig index, so concurrent writers to distinct indices need no lock.
type seqStore struct {
	blocks [][]byte
}

func newSeqStore(n int) *seqStore {
	return &seqStore{blocks: make([][]byte, n)}
}

// put compresses seq into slot i. seq is not retained.
func (s *seqStore) put(i int, seq []byte) {
	s.blocks[i] = snappy.Encode(nil, seq)
}

// get decompresses the sequence in slot i.
func (s *seqStore) get(i int) ([]byte, error) {
	if s.blocks[i] == nil {
		return nil, errors.E("sequence store: no sequence at index", i)
	}
	seq, err := snappy.Decode(nil, s.blocks[i])
	if err != nil {
		return nil, errors.E(err, "sequence store: index", i)
	}
	return seq, nil
}
