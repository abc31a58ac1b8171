package ranker

import (
	"math"

	"docsearch/internal/adapter/index"
	"docsearch/internal/domain"
)

// ScoreFunc scores one matched chunk for the current query. Scores are
// query-scoped and never persisted.
type ScoreFunc func(m domain.Match) float64

// DistinctTerms scores a chunk by its count of distinct matching query
// terms. This is the baseline scorer.
func DistinctTerms() ScoreFunc {
	return func(m domain.Match) float64 {
		return float64(len(m.Terms))
	}
}

// WeightedTerms scores a chunk by the summed in-chunk frequency of the
// matching query terms.
func WeightedTerms() ScoreFunc {
	return func(m domain.Match) float64 {
		total := 0
		for _, tf := range m.Terms {
			total += tf
		}
		return float64(total)
	}
}

// InverseDocFrequency weights each matching term by how rare it is across
// the corpus, so distinctive terms count more than ubiquitous ones.
func InverseDocFrequency(idx *index.Index) ScoreFunc {
	n := float64(idx.Stats().Documents)
	return func(m domain.Match) float64 {
		score := 0.0
		for term := range m.Terms {
			df := float64(idx.DocFrequency(term))
			if df == 0 {
				continue
			}
			score += math.Log(1 + n/df)
		}
		return score
	}
}

// Rank selects the k highest-scoring matches, descending by score with ties
// broken by (doc ID, chunk index) lexical order. No omitted candidate ever
// has a strictly higher score than a returned one.
func Rank(matches []domain.Match, k int, score ScoreFunc) []domain.Result {
	if k <= 0 || len(matches) == 0 {
		return nil
	}

	h := newTopK(k)
	for _, m := range matches {
		h.offer(domain.Result{
			DocumentID: m.Loc.DocID,
			ChunkIndex: m.Loc.Chunk,
			Score:      score(m),
		})
	}

	return h.drain()
}
