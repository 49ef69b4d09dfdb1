package extract

import (
	"reflect"
	"strings"
	"testing"
)

func TestCandidates(t *testing.T) {
	tests := []struct {
		name     string
		maxLen   int
		text     string
		expected []string
	}{
		{
			name:     "single name",
			text:     "sponsored by Acme Corp since 1998",
			expected: []string{"Acme Corp"},
		},
		{
			name:     "multiple suffixes",
			text:     "Acme Corp\nBeta LLC\nGamma Incorporated",
			expected: []string{"Acme Corp", "Beta LLC", "Gamma Incorporated"},
		},
		{
			name:     "multi word name",
			text:     "Beta Heavy Industries LLC supports local teams",
			expected: []string{"Beta Heavy Industries LLC"},
		},
		{
			name:     "duplicates within page collapse",
			text:     "Acme Corp\nsomething else\nAcme Corp",
			expected: []string{"Acme Corp"},
		},
		{
			name:     "no matches yields empty set",
			text:     "nothing that looks like a business here",
			expected: nil,
		},
		{
			name:     "lowercase fragments ignored",
			text:     "acme corp\nbeta llc",
			expected: nil,
		},
		{
			name:     "long fragments excluded before matching",
			maxLen:   40,
			text:     "Acme Corp\n" + strings.Repeat("x ", 30) + "Hidden Widgets Inc",
			expected: []string{"Acme Corp"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New(tt.maxLen)
			got := e.Candidates(tt.text)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Fatalf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestCandidatesDeterministic(t *testing.T) {
	const text = "Acme Corp\nBeta LLC\nGamma Ltd\nAcme Corp"

	e := New(0)
	first := e.Candidates(text)
	for i := 0; i < 10; i++ {
		if got := e.Candidates(text); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d: expected %v, got %v", i, first, got)
		}
	}
}

func TestCandidatesThresholdNeverExceeded(t *testing.T) {
	const maxLen = 25

	e := New(maxLen)
	text := "Tiny Co\n" + strings.Repeat("Very Long Business Name Holdings Inc ", 3)
	for _, c := range e.Candidates(text) {
		if len(c) > maxLen {
			t.Fatalf("candidate %q longer than fragment threshold %d", c, maxLen)
		}
	}
}
