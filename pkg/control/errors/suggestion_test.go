package errors

import (
	"strings"
	"testing"
)

func TestLevenshteinDistance(t *testing.T) {
	tests := []struct {
		name string
		s1   string
		s2   string
		want int
	}{
		{name: "identical", s1: "allow", s2: "allow", want: 0},
		{name: "both empty", s1: "", s2: "", want: 0},
		{name: "one empty", s1: "", s2: "abc", want: 3},
		{name: "single substitution", s1: "alow", s2: "allow", want: 1},
		{name: "single deletion", s1: "startwith", s2: "startswith", want: 1},
		{name: "transposition costs two", s1: "ab", s2: "ba", want: 2},
		{name: "unrelated", s1: "allow", s2: "regex", want: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := levenshteinDistance(tt.s1, tt.s2); got != tt.want {
				t.Errorf("levenshteinDistance(%q, %q) = %d, want %d", tt.s1, tt.s2, got, tt.want)
			}
		})
	}
}

func TestSuggestClosest(t *testing.T) {
	valid := []string{"allow", "deny", "mask", "log"}

	tests := []struct {
		name    string
		unknown string
		want    string
	}{
		{name: "near miss", unknown: "alow", want: "Did you mean 'allow'?"},
		{name: "near miss deny", unknown: "deni", want: "Did you mean 'deny'?"},
		{name: "too far lists all", unknown: "permit", want: "Valid values: allow, deny, mask, log"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SuggestClosest(tt.unknown, valid); got != tt.want {
				t.Errorf("SuggestClosest(%q) = %q, want %q", tt.unknown, got, tt.want)
			}
		})
	}

	if got := SuggestClosest("anything", nil); got != "" {
		t.Errorf("SuggestClosest with no candidates = %q, want empty", got)
	}
}

func TestSuggestMissingField(t *testing.T) {
	withExample := SuggestMissingField("name", "'Admin Access'")
	if !strings.Contains(withExample, "'name'") || !strings.Contains(withExample, "'Admin Access'") {
		t.Errorf("SuggestMissingField with example = %q", withExample)
	}

	without := SuggestMissingField("resource_id", "")
	if !strings.Contains(without, "'resource_id'") || strings.Contains(without, "e.g.") {
		t.Errorf("SuggestMissingField without example = %q", without)
	}
}
