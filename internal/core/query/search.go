package query

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"peloton/internal/core/domain"
)

// foldTransformer strips combining marks so "Pogačar" folds to "pogacar"
var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

func fold(s string) string {
	out, _, err := transform.String(foldTransformer, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(out)
}

// SearchRiders filters riders by a free-text query. A blank query returns
// everything. Otherwise the query splits on whitespace and every token
// must match the first or the last name as a case- and
// diacritic-insensitive substring.
func SearchRiders(riders []domain.Rider, query string) []domain.Rider {
	tokens := strings.Fields(query)
	if len(tokens) == 0 {
		return riders
	}
	folded := make([]string, len(tokens))
	for i, t := range tokens {
		folded[i] = fold(t)
	}

	out := make([]domain.Rider, 0, len(riders))
	for _, r := range riders {
		first := fold(r.FirstName)
		last := fold(r.LastName)
		match := true
		for _, t := range folded {
			if !strings.Contains(first, t) && !strings.Contains(last, t) {
				match = false
				break
			}
		}
		if match {
			out = append(out, r)
		}
	}
	return out
}
