package matcher

import (
	"strings"
	"unicode"
)

// Automaton is an Aho-Corasick multi-pattern string matcher. It is built
// once from a set of patterns and then scans any text in a single pass,
// instead of one scan per pattern. Patterns are matched case-insensitively.
type Automaton struct {
	patterns []string
	nodes    []acNode
}

type acNode struct {
	next map[rune]int
	fail int
	out  []int // indices into patterns ending at this node
}

// NewAutomaton builds the automaton from the given patterns. Duplicate and
// empty patterns are dropped.
func NewAutomaton(patterns []string) *Automaton {
	a := &Automaton{
		nodes: []acNode{{next: make(map[rune]int)}},
	}

	seen := make(map[string]struct{}, len(patterns))
	for _, p := range patterns {
		p = strings.ToLower(p)
		if p == "" {
			continue
		}
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		a.insert(p)
	}

	a.buildFailureLinks()
	return a
}

func (a *Automaton) insert(pattern string) {
	state := 0
	for _, r := range pattern {
		next, ok := a.nodes[state].next[r]
		if !ok {
			next = len(a.nodes)
			a.nodes = append(a.nodes, acNode{next: make(map[rune]int)})
			a.nodes[state].next[r] = next
		}
		state = next
	}
	a.nodes[state].out = append(a.nodes[state].out, len(a.patterns))
	a.patterns = append(a.patterns, pattern)
}

// buildFailureLinks computes failure transitions breadth-first and merges
// each node's output with its failure node's output, so a scan reports every
// pattern ending at a position without walking the failure chain.
func (a *Automaton) buildFailureLinks() {
	queue := make([]int, 0, len(a.nodes))

	for _, child := range a.nodes[0].next {
		a.nodes[child].fail = 0
		queue = append(queue, child)
	}

	for len(queue) > 0 {
		state := queue[0]
		queue = queue[1:]

		for r, child := range a.nodes[state].next {
			queue = append(queue, child)

			f := a.nodes[state].fail
			for f != 0 {
				if _, ok := a.nodes[f].next[r]; ok {
					break
				}
				f = a.nodes[f].fail
			}
			if next, ok := a.nodes[f].next[r]; ok && next != child {
				f = next
			} else {
				f = 0
			}

			a.nodes[child].fail = f
			a.nodes[child].out = append(a.nodes[child].out, a.nodes[f].out...)
		}
	}
}

// Scan runs the automaton over text once and returns the occurrence count of
// every pattern found. Text is lower-cased rune by rune during the scan.
func (a *Automaton) Scan(text string) map[string]int {
	counts := make(map[string]int)
	state := 0

	for _, r := range text {
		r = unicode.ToLower(r)

		for {
			if next, ok := a.nodes[state].next[r]; ok {
				state = next
				break
			}
			if state == 0 {
				break
			}
			state = a.nodes[state].fail
		}

		for _, p := range a.nodes[state].out {
			counts[a.patterns[p]]++
		}
	}

	return counts
}

// Contains reports whether any pattern occurs in text.
func (a *Automaton) Contains(text string) bool {
	state := 0
	for _, r := range text {
		r = unicode.ToLower(r)

		for {
			if next, ok := a.nodes[state].next[r]; ok {
				state = next
				break
			}
			if state == 0 {
				break
			}
			state = a.nodes[state].fail
		}

		if len(a.nodes[state].out) > 0 {
			return true
		}
	}
	return false
}
