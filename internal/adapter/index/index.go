package index

import (
	"docsearch/internal/domain"
	"docsearch/internal/port"
)

// Index is an inverted index from term to posting list, built once per
// corpus load and immutable afterwards, so concurrent readers need no
// locking. A term is present iff it has at least one posting; empty posting
// lists are never retained.
type Index struct {
	postings map[string][]domain.Posting
	docFreq  map[string]int
	stats    domain.Stats
}

// Build constructs the index in a single linear pass over all chunk text.
// Rebuilding from the same chunk set yields set-equal postings.
func Build(tokenizer port.Tokenizer, chunks []domain.Chunk) *Index {
	idx := &Index{
		postings: make(map[string][]domain.Posting),
		docFreq:  make(map[string]int),
	}

	docs := make(map[string]struct{})
	termDocs := make(map[string]map[string]struct{})
	totalTokens := 0

	for _, chunk := range chunks {
		terms := tokenizer.Tokenize(chunk.Text)
		totalTokens += len(terms)
		docs[chunk.DocID] = struct{}{}

		tf := make(map[string]int, len(terms))
		for _, term := range terms {
			tf[term]++
		}

		for term, count := range tf {
			idx.postings[term] = append(idx.postings[term], domain.Posting{
				DocID: chunk.DocID,
				Chunk: chunk.Index,
				TF:    count,
			})
			if termDocs[term] == nil {
				termDocs[term] = make(map[string]struct{})
			}
			termDocs[term][chunk.DocID] = struct{}{}
		}
	}

	for term, set := range termDocs {
		idx.docFreq[term] = len(set)
	}

	avg := 0.0
	if len(chunks) > 0 {
		avg = float64(totalTokens) / float64(len(chunks))
	}
	idx.stats = domain.Stats{
		Documents:      len(docs),
		Chunks:         len(chunks),
		Terms:          len(idx.postings),
		AvgChunkTokens: avg,
	}

	return idx
}

// Postings returns the posting list for a term, or nil if the term is not
// indexed. The returned slice must not be mutated.
func (idx *Index) Postings(term string) []domain.Posting {
	return idx.postings[term]
}

// DocFrequency returns the number of distinct documents containing term.
func (idx *Index) DocFrequency(term string) int {
	return idx.docFreq[term]
}

// Stats returns the build-time statistics for this index.
func (idx *Index) Stats() domain.Stats {
	return idx.stats
}
