package matching

import "math"

// Cosine returns the cosine similarity of u and v, in [-1, 1].
// Defined as 0 when either vector has zero norm (no signal, no direction).
func Cosine(u, v []float64) float64 {
	if len(u) != len(v) {
		return 0
	}

	var dot, normU, normV float64
	for i := range u {
		dot += u[i] * v[i]
		normU += u[i] * u[i]
		normV += v[i] * v[i]
	}
	if normU == 0 || normV == 0 {
		return 0
	}

	return dot / (math.Sqrt(normU) * math.Sqrt(normV))
}
