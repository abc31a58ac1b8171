package analyzer

import (
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	tok := NewTokenizer(true)

	cases := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "invoice line",
			text: "Invoice INV-2025-001 total due $450 from Acme Corp",
			want: []string{"invoice", "inv", "2025", "001", "total", "due", "450", "acme", "corp"},
		},
		{
			name: "stopwords removed",
			text: "the total of the invoice",
			want: []string{"total", "invoice"},
		},
		{
			name: "punctuation stripped",
			text: "due: $450.00 (net-30)!",
			want: []string{"due", "450", "00", "net", "30"},
		},
		{
			name: "empty",
			text: "",
			want: []string{},
		},
		{
			name: "only punctuation",
			text: "--- *** !!!",
			want: []string{},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := tok.Tokenize(tc.text)
			if len(got) == 0 && len(tc.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("Tokenize(%q) = %v, want %v", tc.text, got, tc.want)
			}
		})
	}
}

func TestTokenizeNoStopwordFilter(t *testing.T) {
	tok := NewTokenizer(false)
	got := tok.Tokenize("the total")
	want := []string{"the", "total"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokenize = %v, want %v", got, want)
	}
}

func TestCountWords(t *testing.T) {
	tok := NewTokenizer(true)
	if n := tok.CountWords("Invoice INV-2025-001 total"); n != 5 {
		t.Errorf("CountWords = %d, want 5", n)
	}
	if n := tok.CountWords(""); n != 0 {
		t.Errorf("CountWords(empty) = %d, want 0", n)
	}
}
