package matcher

import "testing"

func TestAutomatonScan(t *testing.T) {
	cases := []struct {
		name     string
		patterns []string
		text     string
		want     map[string]int
	}{
		{
			name:     "single pattern",
			patterns: []string{"total"},
			text:     "total due, total payable",
			want:     map[string]int{"total": 2},
		},
		{
			name:     "multiple patterns one pass",
			patterns: []string{"total", "due", "acme"},
			text:     "Invoice INV-2025-001 total due $450 from Acme Corp",
			want:     map[string]int{"total": 1, "due": 1, "acme": 1},
		},
		{
			name:     "overlapping patterns",
			patterns: []string{"she", "he", "hers"},
			text:     "she sells hers",
			want:     map[string]int{"she": 1, "he": 2, "hers": 1},
		},
		{
			name:     "pattern is prefix of another",
			patterns: []string{"in", "invoice"},
			text:     "invoice",
			want:     map[string]int{"in": 1, "invoice": 1},
		},
		{
			name:     "case insensitive",
			patterns: []string{"acme"},
			text:     "ACME and Acme",
			want:     map[string]int{"acme": 2},
		},
		{
			name:     "no hits",
			patterns: []string{"zebra"},
			text:     "total due",
			want:     map[string]int{},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a := NewAutomaton(tc.patterns)
			got := a.Scan(tc.text)
			if len(got) != len(tc.want) {
				t.Fatalf("Scan = %v, want %v", got, tc.want)
			}
			for p, n := range tc.want {
				if got[p] != n {
					t.Errorf("count for %q = %d, want %d", p, got[p], n)
				}
			}
		})
	}
}

func TestAutomatonContains(t *testing.T) {
	a := NewAutomaton([]string{"total due", "net 30"})
	if !a.Contains("the total due is $450") {
		t.Error("expected phrase hit")
	}
	if a.Contains("totally different") {
		t.Error("expected no phrase hit")
	}
}

func TestAutomatonDuplicateAndEmptyPatterns(t *testing.T) {
	a := NewAutomaton([]string{"total", "total", "", "Total"})
	got := a.Scan("total total")
	if got["total"] != 2 {
		t.Errorf("count = %d, want 2", got["total"])
	}
}
