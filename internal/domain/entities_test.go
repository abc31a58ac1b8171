package domain

import (
	"errors"
	"testing"
)

func TestParseCategory(t *testing.T) {
	cases := []struct {
		input string
		want  Category
	}{
		{"", CategoryInvoices},
		{"invoices", CategoryInvoices},
		{"contracts", CategoryContracts},
		{"employment-contracts", CategoryContracts},
		{"support", CategorySupport},
		{"customer-support", CategorySupport},
		{"knowledge", CategoryKnowledge},
		{"knowledge-base", CategoryKnowledge},
	}

	for _, tc := range cases {
		got, err := ParseCategory(tc.input)
		if err != nil {
			t.Errorf("ParseCategory(%q) returned error: %v", tc.input, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseCategory(%q) = %s, want %s", tc.input, got, tc.want)
		}
	}

	if _, err := ParseCategory("receipts"); !errors.Is(err, ErrUnknownCategory) {
		t.Errorf("expected ErrUnknownCategory, got %v", err)
	}
}

func TestCategoryDir(t *testing.T) {
	dirs := map[Category]string{
		CategoryInvoices:  "invoices",
		CategoryContracts: "employment-contracts",
		CategorySupport:   "customer-support",
		CategoryKnowledge: "knowledge-base",
	}
	for cat, want := range dirs {
		if got := cat.Dir(); got != want {
			t.Errorf("%s.Dir() = %s, want %s", cat, got, want)
		}
	}
}
