// Package hint classifies a guessed word against the secret word,
// producing one code character per letter position.
package hint

import "strings"

// Hint code characters, one per letter position.
const (
	Exact   = '!' // letter matches at this position
	Present = '?' // letter occurs elsewhere in the secret, not over-allocated
	Absent  = '-' // letter does not occur, or all occurrences already consumed
)

// Compute returns the hint code string for a guess against a secret word.
// Both words must be the same length; dictionary membership guarantees
// that for every guess the session evaluates.
//
// Duplicate letters are accounted for precisely: exact matches consume an
// occurrence first, then non-exact positions are marked Present left to
// right only while unconsumed occurrences remain. A letter guessed more
// times than it occurs in the secret is marked Present only up to its true
// remaining count, with leftmost guess positions taking priority.
func Compute(secret, guess string) string {
	n := len(secret)

	secretCounts := make(map[byte]int, n)
	for i := 0; i < n; i++ {
		secretCounts[secret[i]]++
	}

	codes := make([]byte, n)
	consumed := make(map[byte]int, n)

	// First pass: exact matches consume occurrences.
	for i := 0; i < n; i++ {
		if guess[i] == secret[i] {
			codes[i] = Exact
			consumed[guess[i]]++
		}
	}

	// Second pass: present/absent for the remaining positions.
	for i := 0; i < n; i++ {
		if codes[i] == Exact {
			continue
		}
		c := guess[i]
		if consumed[c] < secretCounts[c] {
			codes[i] = Present
			consumed[c]++
		} else {
			codes[i] = Absent
		}
	}

	return string(codes)
}

// Won reports whether a hint code string is an all-exact match.
func Won(code string) bool {
	if code == "" {
		return false
	}
	return strings.Count(code, string(rune(Exact))) == len(code)
}
