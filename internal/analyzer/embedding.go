package analyzer

import (
	"hash/fnv"
	"math"
	"strings"
)

// embeddingDims is the fixed width of the hashed bag-of-words vector.
const embeddingDims = 8

// Embed produces a deterministic hashed bag-of-words vector for a text.
// Tokens are lowercased and hashed into a fixed number of buckets and the
// result is scaled to unit length. The vectors are stored alongside context
// rows for inspection and ranking experiments; nothing compares them by
// distance.
func Embed(text string) []float64 {
	vector := make([]float64, embeddingDims)

	for _, token := range strings.Fields(strings.ToLower(text)) {
		h := fnv.New32a()
		h.Write([]byte(token))
		vector[h.Sum32()%embeddingDims]++
	}

	var norm float64
	for _, v := range vector {
		norm += v * v
	}
	if norm == 0 {
		return vector
	}
	norm = math.Sqrt(norm)
	for i := range vector {
		vector[i] /= norm
	}
	return vector
}
