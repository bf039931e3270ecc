package textnorm

// Similarity returns the Jaccard index of the two strings' token sets:
// |intersection| / |union|, in [0,1]. Word order and repetition are ignored;
// "i am happy" and "happy am i" score 1. Returns 0 when either side has no
// tokens. Symmetric in its arguments.
func Similarity(a, b string) float64 {
	setA := tokenSet(a)
	setB := tokenSet(b)
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}

	intersection := 0
	for tok := range setA {
		if _, ok := setB[tok]; ok {
			intersection++
		}
	}

	union := len(setA) + len(setB) - intersection
	return float64(intersection) / float64(union)
}

func tokenSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, tok := range Tokenize(s) {
		set[tok] = struct{}{}
	}
	return set
}
