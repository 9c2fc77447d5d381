package match

// Levenshtein computes the edit distance between two strings: the minimum
// number of single-byte insertions, deletions or substitutions needed to turn
// one into the other.
//
// Time complexity: O(len(a) * len(b))
// Space complexity: O(min(len(a), len(b))).
func Levenshtein(a, b string) int {
	if a == b {
		return 0
	}

	if len(a) > len(b) {
		a, b = b, a
	}

	if len(a) == 0 {
		return len(b)
	}

	// Two rolling rows over the shorter string.
	prev := make([]int, len(a)+1)
	curr := make([]int, len(a)+1)

	for i := range prev {
		prev[i] = i
	}

	for j := 1; j <= len(b); j++ {
		curr[0] = j

		for i := 1; i <= len(a); i++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}

			curr[i] = min(prev[i]+1, curr[i-1]+1, prev[i-1]+cost)
		}

		prev, curr = curr, prev
	}

	return prev[len(a)]
}

// Similarity returns 1 - distance/maxLen over the normalized forms of a and b.
// 1.0 means identical after normalization, 0.0 means nothing in common.
func Similarity(a, b string) float64 {
	normA := NormalizeIdent(a)
	normB := NormalizeIdent(b)

	if len(normA) == 0 && len(normB) == 0 {
		return 1.0
	}

	maxLen := max(len(normA), len(normB))

	return 1.0 - float64(Levenshtein(normA, normB))/float64(maxLen)
}
