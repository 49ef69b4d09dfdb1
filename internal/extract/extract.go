// Package extract turns raw page text into business-name candidates.
// Extraction is a pure function: no state, no I/O, total over its input.
package extract

import (
	"regexp"
	"strings"
)

// DefaultMaxFragmentLen is the anti-noise threshold: any text fragment
// longer than this is excluded before pattern matching.
const DefaultMaxFragmentLen = 80

// namePattern matches a capitalized run of words ending in a corporate
// suffix, e.g. "Acme Corp" or "Beta Heavy Industries LLC".
var namePattern = regexp.MustCompile(
	`\b([A-Z][A-Za-z&,.' -]*?\s(?:Inc|LLC|Ltd|Corp|Company|Co|Incorporated|Corporation))\b`)

// Extractor produces candidate business names from page text.
// The zero threshold means DefaultMaxFragmentLen.
type Extractor struct {
	maxFragmentLen int
}

// New creates an Extractor with the given fragment length threshold.
func New(maxFragmentLen int) *Extractor {
	if maxFragmentLen <= 0 {
		maxFragmentLen = DefaultMaxFragmentLen
	}
	return &Extractor{maxFragmentLen: maxFragmentLen}
}

// Candidates returns the distinct candidate names found in text, in first
// occurrence order. Duplicates within the page collapse; absence of
// matches yields an empty slice.
func (e *Extractor) Candidates(text string) []string {
	seen := make(map[string]struct{})
	var out []string

	for _, fragment := range splitFragments(text) {
		if len(fragment) > e.maxFragmentLen {
			continue
		}
		for _, m := range namePattern.FindAllStringSubmatch(fragment, -1) {
			name := strings.TrimSpace(m[1])
			if name == "" {
				continue
			}
			if _, dup := seen[name]; dup {
				continue
			}
			seen[name] = struct{}{}
			out = append(out, name)
		}
	}
	return out
}

// splitFragments breaks page text into the units the length threshold
// applies to: lines, with surrounding whitespace trimmed.
func splitFragments(text string) []string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		l = strings.TrimSpace(l)
		if l != "" {
			out = append(out, l)
		}
	}
	return out
}
