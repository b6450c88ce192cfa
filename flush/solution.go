package flush

// Solution is the outcome of a reorder pass.
type Solution struct {
	// Cost is the total flush volume over all groups.
	Cost float64 `json:"cost"`
	// Sequences holds one ordered filament list per layer when requested.
	Sequences [][]int `json:"sequences,omitempty"`
}

// MatrixFor picks the flush matrix serving group g: matrix g when present,
// matrix 0 otherwise.
func MatrixFor(matrices []*Matrix, g int) *Matrix {
	if g >= 0 && g < len(matrices) {
		return matrices[g]
	}
	return matrices[0]
}
