package matcher

import (
	"docsearch/internal/adapter/index"
	"docsearch/internal/domain"
	"docsearch/internal/port"
)

// Matcher finds every chunk containing any query term. The primary path is
// posting-list lookup against a built index; ScanText is the automaton
// fallback for raw text that is not indexed.
type Matcher struct {
	tokenizer port.Tokenizer
}

func New(tokenizer port.Tokenizer) *Matcher {
	return &Matcher{tokenizer: tokenizer}
}

// Terms tokenizes and deduplicates a query, preserving first-seen order.
func (m *Matcher) Terms(query string) []string {
	tokens := m.tokenizer.Tokenize(query)
	seen := make(map[string]struct{}, len(tokens))
	terms := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if _, dup := seen[tok]; dup {
			continue
		}
		seen[tok] = struct{}{}
		terms = append(terms, tok)
	}
	return terms
}

// Match looks up each distinct query term in the index and returns, for
// every touched chunk, the set of query terms it contains with their
// in-chunk frequencies. A query with zero recognized terms matches nothing.
func (m *Matcher) Match(idx *index.Index, query string) []domain.Match {
	terms := m.Terms(query)
	if len(terms) == 0 {
		return nil
	}

	byLoc := make(map[domain.Location]map[string]int)
	var order []domain.Location

	for _, term := range terms {
		for _, p := range idx.Postings(term) {
			loc := domain.Location{DocID: p.DocID, Chunk: p.Chunk}
			hits, ok := byLoc[loc]
			if !ok {
				hits = make(map[string]int)
				byLoc[loc] = hits
				order = append(order, loc)
			}
			hits[term] = p.TF
		}
	}

	matches := make([]domain.Match, 0, len(order))
	for _, loc := range order {
		matches = append(matches, domain.Match{Loc: loc, Terms: byLoc[loc]})
	}
	return matches
}

// ScanText matches the query terms against raw text in a single automaton
// pass and returns the occurrence count per term. Used for text that is not
// indexed and for exact-phrase checks.
func (m *Matcher) ScanText(query, text string) map[string]int {
	terms := m.Terms(query)
	if len(terms) == 0 {
		return nil
	}
	return NewAutomaton(terms).Scan(text)
}
