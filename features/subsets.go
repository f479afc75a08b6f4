package features

// subsequences returns every contiguous subsequence of x of length
// 1, 2, ..., min(len(x), bound), shortest lengths first and starting offsets
// ascending within each length. The emitted slices alias x.
func subsequences(x []Node, bound int) [][]Node {
	n := len(x)
	if bound > n {
		bound = n
	}
	var subs [][]Node
	for l := 1; l <= bound; l++ {
		for s := 0; s+l <= n; s++ {
			subs = append(subs, x[s:s+l])
		}
	}
	return subs
}
