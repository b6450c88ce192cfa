package sequence

// permute calls visit with every permutation of items in lexicographic order
// of positions. The slice passed to visit is reused between calls.
// An empty input yields one empty permutation.
func permute(items []int, visit func([]int)) {
	n := len(items)
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	buf := make([]int, n)
	for {
		for i, p := range idx {
			buf[i] = items[p]
		}
		visit(buf)
		if !nextPermutation(idx) {
			return
		}
	}
}

// nextPermutation advances a to the next lexicographic permutation in place
// and reports false once a was the last one.
func nextPermutation(a []int) bool {
	i := len(a) - 2
	for i >= 0 && a[i] >= a[i+1] {
		i--
	}
	if i < 0 {
		return false
	}
	j := len(a) - 1
	for a[j] <= a[i] {
		j--
	}
	a[i], a[j] = a[j], a[i]
	for l, r := i+1, len(a)-1; l < r; l, r = l+1, r-1 {
		a[l], a[r] = a[r], a[l]
	}
	return true
}
