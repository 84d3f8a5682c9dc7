package services

import "strings"

// diceCoefficient computes the Sørensen–Dice similarity of two strings
// over their character bigrams. Returns a value in [0, 1]: 1 for
// identical bigram multisets, 0 for disjoint ones.
//
// Input is case-folded and whitespace-collapsed first so that titles
// differing only in spacing or case compare as equal.
func diceCoefficient(a, b string) float64 {
	a = normaliseForSimilarity(a)
	b = normaliseForSimilarity(b)

	if a == b {
		if a == "" {
			return 0
		}
		return 1
	}
	runesA := []rune(a)
	runesB := []rune(b)
	if len(runesA) < 2 || len(runesB) < 2 {
		return 0
	}

	bigramsA := bigrams(runesA)
	bigramsB := bigrams(runesB)

	var shared int
	for bg, countA := range bigramsA {
		countB := bigramsB[bg]
		if countA < countB {
			shared += countA
		} else {
			shared += countB
		}
	}

	totalA := len(runesA) - 1
	totalB := len(runesB) - 1
	return 2 * float64(shared) / float64(totalA+totalB)
}

// bigrams returns the multiset of adjacent character pairs.
func bigrams(runes []rune) map[string]int {
	counts := make(map[string]int, len(runes))
	for i := 0; i+1 < len(runes); i++ {
		counts[string(runes[i:i+2])]++
	}
	return counts
}

// normaliseForSimilarity lower-cases and collapses runs of whitespace.
func normaliseForSimilarity(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
