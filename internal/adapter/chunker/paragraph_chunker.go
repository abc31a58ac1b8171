package chunker

import (
	"strings"
	"unicode"

	"docsearch/internal/domain"
)

// ParagraphChunker splits document content into chunks on paragraph
// boundaries. Paragraphs longer than maxTokens words are split into
// overlapping fixed-size windows so a match spanning a window boundary is
// still captured by at least one chunk.
//
// Each paragraph span extends through its trailing blank lines to the start
// of the next paragraph, so the chunks of a document cover every byte of its
// content.
type ParagraphChunker struct {
	maxTokens int
	overlap   int
}

func NewParagraphChunker(maxTokens, overlap int) *ParagraphChunker {
	if maxTokens <= 0 {
		maxTokens = 500
	}
	if overlap < 0 || overlap >= maxTokens {
		overlap = maxTokens / 10
	}
	return &ParagraphChunker{
		maxTokens: maxTokens,
		overlap:   overlap,
	}
}

// Chunk materializes the full chunk sequence for one document. An empty
// document yields zero chunks.
func (c *ParagraphChunker) Chunk(doc domain.Document) ([]domain.Chunk, error) {
	content := doc.Content
	if len(content) == 0 {
		return nil, nil
	}

	var chunks []domain.Chunk
	for _, span := range paragraphSpans(content) {
		for _, w := range c.windows(content, span) {
			chunks = append(chunks, domain.Chunk{
				DocID: doc.ID,
				Index: len(chunks),
				Start: w.start,
				End:   w.end,
				Text:  content[w.start:w.end],
			})
		}
	}

	return chunks, nil
}

type span struct {
	start int
	end   int
}

// paragraphSpans tiles content into paragraph spans separated by blank
// lines. Spans include their trailing separator so they cover every byte.
func paragraphSpans(content string) []span {
	var spans []span
	start := 0

	for start < len(content) {
		idx := strings.Index(content[start:], "\n\n")
		if idx < 0 {
			spans = append(spans, span{start: start, end: len(content)})
			break
		}

		end := start + idx + 2
		// Absorb any further blank lines into this span.
		for end < len(content) && content[end] == '\n' {
			end++
		}
		spans = append(spans, span{start: start, end: end})
		start = end
	}

	return spans
}

// windows splits one paragraph span into overlapping word windows of at most
// maxTokens words. A window's byte range runs from the start of its first
// word (or the span start, for the first window) to the start of the first
// word past it (or the span end, for the last window), so windows of one
// span cover the span contiguously.
func (c *ParagraphChunker) windows(content string, s span) []span {
	words := wordSpans(content[s.start:s.end])
	if len(words) <= c.maxTokens {
		return []span{s}
	}

	step := c.maxTokens - c.overlap
	if step < 1 {
		step = 1
	}

	var out []span
	for i := 0; ; i += step {
		start := s.start + words[i].start
		if i == 0 {
			start = s.start
		}

		last := i + c.maxTokens
		if last >= len(words) {
			out = append(out, span{start: start, end: s.end})
			return out
		}
		out = append(out, span{start: start, end: s.start + words[last].start})
	}
}

// wordSpans returns the byte offsets of every word in text, using the same
// word boundaries as the tokenizer.
func wordSpans(text string) []span {
	var words []span
	inWord := false
	start := 0

	for i, r := range text {
		isWord := unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
		if isWord && !inWord {
			start = i
			inWord = true
		} else if !isWord && inWord {
			words = append(words, span{start: start, end: i})
			inWord = false
		}
	}
	if inWord {
		words = append(words, span{start: start, end: len(text)})
	}

	return words
}
