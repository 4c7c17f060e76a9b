package domain

import (
	"strings"
	"unicode"
)

// SearchTerms are the tokens typed by the user in the shell.
// An empty sequence means "list everything".
type SearchTerms []string

// IsEmpty returns true if there are no terms.
func (t SearchTerms) IsEmpty() bool {
	return len(t) == 0
}

// String joins the terms with a single space.
func (t SearchTerms) String() string {
	return strings.Join(t, " ")
}

// QueryTerm is a single condition of a library query.
// Field is empty for plain terms.
type QueryTerm struct {
	Field string
	Value string
}

// Query is a parsed free-text library query. All terms must match.
type Query struct {
	Terms []QueryTerm
}

// ParseQuery splits a free-text query into terms.
// Whitespace separates terms, double quotes group a phrase and a
// "key:value" term restricts the match to one document key.
func ParseQuery(s string) Query {
	var q Query
	for _, token := range tokenize(s) {
		q.Terms = append(q.Terms, parseTerm(token))
	}
	return q
}

// IsEmpty returns true if the query has no terms.
func (q Query) IsEmpty() bool {
	return len(q.Terms) == 0
}

// PlainTerms returns the lowercased values of terms without a field.
func (q Query) PlainTerms() []string {
	var out []string
	for _, t := range q.Terms {
		if t.Field == "" {
			out = append(out, strings.ToLower(t.Value))
		}
	}
	return out
}

// FieldTerms returns the terms restricted to a document key.
func (q Query) FieldTerms() []QueryTerm {
	var out []QueryTerm
	for _, t := range q.Terms {
		if t.Field != "" {
			out = append(out, t)
		}
	}
	return out
}

// Matches reports whether doc satisfies every term of the query.
func (q Query) Matches(doc *Document) bool {
	var text string
	for _, t := range q.Terms {
		value := strings.ToLower(t.Value)
		if t.Field == "" {
			if text == "" {
				text = doc.MatchText()
			}
			if !strings.Contains(text, value) {
				return false
			}
			continue
		}

		field, ok := doc.Field(t.Field)
		if !ok || !strings.Contains(strings.ToLower(field), value) {
			return false
		}
	}
	return true
}

func parseTerm(token string) QueryTerm {
	idx := strings.Index(token, ":")
	if idx <= 0 || idx == len(token)-1 {
		return QueryTerm{Value: token}
	}
	key := token[:idx]
	if strings.ContainsFunc(key, unicode.IsSpace) {
		return QueryTerm{Value: token}
	}
	return QueryTerm{Field: strings.ToLower(key), Value: token[idx+1:]}
}

func tokenize(s string) []string {
	var tokens []string
	var current strings.Builder
	quoted := false

	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}
	}

	for _, r := range s {
		switch {
		case r == '"':
			quoted = !quoted
		case unicode.IsSpace(r) && !quoted:
			flush()
		default:
			current.WriteRune(r)
		}
	}
	flush()

	return tokens
}
