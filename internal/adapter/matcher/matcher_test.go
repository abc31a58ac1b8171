package matcher

import (
	"testing"

	"docsearch/internal/adapter/analyzer"
	"docsearch/internal/adapter/index"
	"docsearch/internal/domain"
)

func buildTestIndex(t *testing.T) *index.Index {
	t.Helper()
	tok := analyzer.NewTokenizer(true)
	chunks := []domain.Chunk{
		{DocID: "invoices/invoice_1.txt", Index: 0, Text: "Invoice INV-2025-001 total due $450 from Acme Corp"},
		{DocID: "invoices/invoice_2.txt", Index: 0, Text: "Invoice INV-2025-002 total due $90 from Widgets Ltd"},
		{DocID: "knowledge-base/faq.md", Index: 0, Text: "Refund policy: refunds are processed within 14 days"},
	}
	return index.Build(tok, chunks)
}

func TestMatch(t *testing.T) {
	idx := buildTestIndex(t)
	m := New(analyzer.NewTokenizer(true))

	matches := m.Match(idx, "total due Acme")
	if len(matches) != 2 {
		t.Fatalf("expected 2 matched chunks, got %d", len(matches))
	}

	byDoc := make(map[string]domain.Match)
	for _, match := range matches {
		byDoc[match.Loc.DocID] = match
	}

	inv1, ok := byDoc["invoices/invoice_1.txt"]
	if !ok {
		t.Fatal("expected invoice_1 to match")
	}
	if len(inv1.Terms) != 3 {
		t.Errorf("expected 3 distinct terms for invoice_1, got %d: %v", len(inv1.Terms), inv1.Terms)
	}

	inv2, ok := byDoc["invoices/invoice_2.txt"]
	if !ok {
		t.Fatal("expected invoice_2 to match")
	}
	if len(inv2.Terms) != 2 {
		t.Errorf("expected 2 distinct terms for invoice_2, got %d: %v", len(inv2.Terms), inv2.Terms)
	}
}

func TestMatchZeroTermQuery(t *testing.T) {
	idx := buildTestIndex(t)
	m := New(analyzer.NewTokenizer(true))

	for _, query := range []string{"", "the of and", "!!! ---"} {
		if matches := m.Match(idx, query); len(matches) != 0 {
			t.Errorf("expected no matches for %q, got %d", query, len(matches))
		}
	}
}

func TestMatchDeduplicatesQueryTerms(t *testing.T) {
	idx := buildTestIndex(t)
	m := New(analyzer.NewTokenizer(true))

	matches := m.Match(idx, "total total total")
	for _, match := range matches {
		if len(match.Terms) != 1 {
			t.Errorf("expected 1 distinct term, got %v", match.Terms)
		}
	}
}

func TestScanText(t *testing.T) {
	m := New(analyzer.NewTokenizer(true))

	counts := m.ScanText("total due Acme", "unindexed draft: total due soon, Acme pending, total again")
	if counts["total"] != 2 || counts["due"] != 1 || counts["acme"] != 1 {
		t.Errorf("unexpected scan counts: %v", counts)
	}

	if counts := m.ScanText("the of", "anything"); counts != nil {
		t.Errorf("expected nil for zero-term query, got %v", counts)
	}
}
