package search

import (
	"strings"
	"unicode"
)

// Normalize collapses all runs of whitespace in s to a single space and
// removes leading and trailing whitespace.
func Normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Fold returns the case-folded form of s. Folding maps each rune to exactly
// one rune, so offsets in the folded text are valid in the original text.
func Fold(s string) string {
	return strings.Map(unicode.ToLower, s)
}

// FoldQueries folds all queries, the order is kept.
func FoldQueries(queries []string) []string {
	res := make([]string, 0, len(queries))
	for _, q := range queries {
		res = append(res, Fold(q))
	}

	return res
}

func foldRunes(rs []rune) []rune {
	res := make([]rune, len(rs))
	for i, r := range rs {
		res[i] = unicode.ToLower(r)
	}

	return res
}

// index returns the offset of the first occurrence of sub in s, or -1.
func index(s, sub []rune) int {
	n := len(sub)
	if n == 0 {
		return 0
	}

outer:
	for i := 0; i+n <= len(s); i++ {
		for j := 0; j < n; j++ {
			if s[i+j] != sub[j] {
				continue outer
			}
		}

		return i
	}

	return -1
}

// Snippet returns the normalized text around the match of length n at offset
// pos, with up to context runes on each side.
func Snippet(text []rune, pos, n, context int) string {
	start := pos - context
	if start < 0 {
		start = 0
	}

	end := pos + n + context
	if end > len(text) {
		end = len(text)
	}

	return Normalize(string(text[start:end]))
}
