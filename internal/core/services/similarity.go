package services

import "math"

// normEpsilon guards the cosine denominator against zero-norm vectors.
const normEpsilon = 1e-10

// cosine returns the cosine similarity of two vectors.
// Mismatched dimensions score 0: a vector from a different model is
// never similar to anything.
func cosine(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	return dot / (math.Sqrt(normA)*math.Sqrt(normB) + normEpsilon)
}
