package analyzer

import (
	"strings"
	"unicode"
)

// Tokenizer normalizes text into terms: lower-cased words split on
// non-alphanumeric boundaries, with optional stopword removal. Unrecognized
// characters are dropped, never an error.
type Tokenizer struct {
	stopwords map[string]struct{}
}

// NewTokenizer creates a new Tokenizer. With filterStopwords set, common
// English stopwords are excluded from the term set.
func NewTokenizer(filterStopwords bool) *Tokenizer {
	t := &Tokenizer{}
	if filterStopwords {
		t.stopwords = defaultStopwords()
	}
	return t
}

// Tokenize splits text into normalized terms.
func (t *Tokenizer) Tokenize(text string) []string {
	words := splitWords(text)
	terms := make([]string, 0, len(words))

	for _, word := range words {
		word = strings.ToLower(word)
		if len(word) < 2 {
			continue
		}
		if _, isStop := t.stopwords[word]; isStop {
			continue
		}
		terms = append(terms, word)
	}

	return terms
}

// CountWords returns the number of word boundaries in text, before any
// normalization or stopword filtering. Used for chunk window sizing.
func (t *Tokenizer) CountWords(text string) int {
	return len(splitWords(text))
}

// splitWords splits text into words on non-alphanumeric boundaries.
func splitWords(text string) []string {
	var words []string
	var current strings.Builder

	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			current.WriteRune(r)
		} else {
			if current.Len() > 0 {
				words = append(words, current.String())
				current.Reset()
			}
		}
	}
	if current.Len() > 0 {
		words = append(words, current.String())
	}

	return words
}

// defaultStopwords returns a set of common English stopwords.
func defaultStopwords() map[string]struct{} {
	stops := []string{
		"a", "an", "and", "are", "as", "at", "be", "by", "for",
		"from", "has", "he", "in", "is", "it", "its", "of", "on",
		"that", "the", "to", "was", "were", "will", "with", "this",
		"have", "had", "but", "not", "you", "your", "we", "our",
		"they", "their", "she", "her", "his", "if", "or", "so",
		"no", "can", "do", "does", "did", "been", "being", "would",
		"could", "should", "may", "might", "must", "shall", "which",
		"who", "whom", "what", "when", "where", "why", "how",
	}
	m := make(map[string]struct{}, len(stops))
	for _, s := range stops {
		m[s] = struct{}{}
	}
	return m
}
