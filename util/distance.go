// Package util holds small helpers shared by the transrate packages.
package util

// matrix represents a 2 dimensional matrix.
type matrix struct {
	nRow, nCol int
	data       []int // row-major nRow*nCol array.
}

// newMatrix returns an n x m matrix.
func newMatrix(n, m int) (x matrix) {
	return matrix{
		nRow: n,
		nCol: m,
		data: make([]int, n*m),
	}
}

// Levenshtein computes the edit distance between a and b: the number of
// insertions, deletions, and substitutions it takes to transform one into
// the other. Each step in the transformation "costs" one distance point.
// Distances are computed over bytes, which is exact for ASCII identifiers.
func Levenshtein(a, b string) int {
	ra := []byte(a)
	rb := []byte(b)

	rows := len(ra)
	cols := len(rb)
	m := newMatrix(rows+1, cols+1)

	for j := 0; j <= cols; j++ {
		m.data[j] = j
	}
	for i := 1; i <= rows; i++ {
		m.data[i*m.nCol] = i
		for j := 1; j <= cols; j++ {
			if ra[i-1] == rb[j-1] {
				m.data[i*m.nCol+j] = m.data[(i-1)*m.nCol+(j-1)]
				continue
			}
			deleteValue := m.data[(i-1)*m.nCol+j] + 1
			substituteValue := m.data[(i-1)*m.nCol+(j-1)] + 1
			insertValue := m.data[i*m.nCol+(j-1)] + 1

			minValue := deleteValue
			if substituteValue < minValue {
				minValue = substituteValue
			}
			if insertValue < minValue {
				minValue = insertValue
			}
			m.data[i*m.nCol+j] = minValue
		}
	}
	return m.data[rows*m.nCol+cols]
}

// Nearest returns the candidate closest to name by edit distance, provided
// that distance is at most maxDist. It reports false when no candidate is
// close enough. Ties keep the earliest candidate.
func Nearest(name string, candidates []string, maxDist int) (string, bool) {
	best := ""
	bestDist := maxDist + 1
	for _, cand := range candidates {
		if d := Levenshtein(name, cand); d < bestDist {
			best, bestDist = cand, d
		}
	}
	return best, bestDist <= maxDist
}
