package domain

import "time"

// Category is the closed set of document categories the corpus is organized by.
type Category string

const (
	CategoryInvoices  Category = "invoices"
	CategoryContracts Category = "contracts"
	CategorySupport   Category = "support"
	CategoryKnowledge Category = "knowledge"
)

// Categories returns all known categories in a fixed order.
func Categories() []Category {
	return []Category{CategoryInvoices, CategoryContracts, CategorySupport, CategoryKnowledge}
}

// Dir returns the corpus subdirectory holding this category's documents.
func (c Category) Dir() string {
	switch c {
	case CategoryContracts:
		return "employment-contracts"
	case CategorySupport:
		return "customer-support"
	case CategoryKnowledge:
		return "knowledge-base"
	default:
		return "invoices"
	}
}

// ParseCategory resolves a category name or one of its directory aliases.
// Empty input defaults to invoices.
func ParseCategory(s string) (Category, error) {
	switch s {
	case "", "invoices":
		return CategoryInvoices, nil
	case "contracts", "employment-contracts":
		return CategoryContracts, nil
	case "support", "customer-support":
		return CategorySupport, nil
	case "knowledge", "knowledge-base":
		return CategoryKnowledge, nil
	}
	return "", ErrUnknownCategory
}

// Document is a corpus file loaded into memory. Immutable after load; a
// reload produces new Document values rather than mutating existing ones.
type Document struct {
	ID       string // category-qualified relative path, e.g. "invoices/invoice_1.txt"
	Name     string // base file name
	Category Category
	Content  string
	LoadedAt time.Time
}

// Chunk is a contiguous span of a document's content. Start and End are byte
// offsets into the parent content; chunks of one document may overlap.
type Chunk struct {
	DocID string
	Index int
	Start int
	End   int
	Text  string
}

// Location identifies a chunk within the corpus.
type Location struct {
	DocID string
	Chunk int
}

// Posting records that a term occurs in a chunk with the given frequency.
type Posting struct {
	DocID string
	Chunk int
	TF    int
}

// Match is one chunk touched by a query, with the distinct query terms found
// in it and their frequencies within the chunk.
type Match struct {
	Loc   Location
	Terms map[string]int
}

// Result is one ranked retrieval result.
type Result struct {
	DocumentID string   `json:"document_id"`
	Category   Category `json:"category,omitempty"`
	ChunkIndex int      `json:"chunk_index"`
	Text       string   `json:"text,omitempty"`
	Score      float64  `json:"score"`
}

// Stats describes one built index.
type Stats struct {
	Documents      int
	Chunks         int
	Terms          int
	AvgChunkTokens float64
}
