package bifurcation

// LocalMaxima returns the indices i with s[i] strictly greater than
// both neighbors. Boundary samples are never reported; plateaus do not
// count. Sequences shorter than 3 have no interior and yield nil.
func LocalMaxima(s []float64) []int {
	var idx []int
	for i := 1; i+1 < len(s); i++ {
		if s[i] > s[i-1] && s[i] > s[i+1] {
			idx = append(idx, i)
		}
	}
	return idx
}

// LocalMinima is the strict-less-than counterpart of LocalMaxima.
func LocalMinima(s []float64) []int {
	var idx []int
	for i := 1; i+1 < len(s); i++ {
		if s[i] < s[i-1] && s[i] < s[i+1] {
			idx = append(idx, i)
		}
	}
	return idx
}

// values maps extremum indices back to their sample values, in time order.
func values(s []float64, idx []int) []float64 {
	out := make([]float64, len(idx))
	for k, i := range idx {
		out[k] = s[i]
	}
	return out
}
