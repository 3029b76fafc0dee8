package errors

import (
	"fmt"
	"strings"
)

// SuggestClosest suggests the closest valid value for an unknown input,
// using Levenshtein distance. It returns an empty string when nothing is
// close enough to be a plausible typo.
func SuggestClosest(unknown string, valid []string) string {
	if len(valid) == 0 {
		return ""
	}

	minDistance := 1000
	var bestMatch string
	for _, candidate := range valid {
		dist := levenshteinDistance(unknown, candidate)
		if dist < minDistance {
			minDistance = dist
			bestMatch = candidate
		}
	}

	// Only suggest if the distance is reasonable (< 3 edits)
	if minDistance < 3 {
		return fmt.Sprintf("Did you mean '%s'?", bestMatch)
	}
	return fmt.Sprintf("Valid values: %s", strings.Join(valid, ", "))
}

// SuggestMissingField suggests setting a required draft field.
func SuggestMissingField(fieldName, exampleValue string) string {
	if exampleValue != "" {
		return fmt.Sprintf("Set '%s' (e.g. %s) before saving or deploying", fieldName, exampleValue)
	}
	return fmt.Sprintf("Set '%s' before saving or deploying", fieldName)
}

// levenshteinDistance computes the Levenshtein edit distance between two
// strings, used to find near-miss operator and effect names.
func levenshteinDistance(s1, s2 string) int {
	if s1 == s2 {
		return 0
	}

	len1 := len(s1)
	len2 := len(s2)

	matrix := make([][]int, len1+1)
	for i := range matrix {
		matrix[i] = make([]int, len2+1)
	}
	for i := 0; i <= len1; i++ {
		matrix[i][0] = i
	}
	for j := 0; j <= len2; j++ {
		matrix[0][j] = j
	}

	for i := 1; i <= len1; i++ {
		for j := 1; j <= len2; j++ {
			cost := 1
			if s1[i-1] == s2[j-1] {
				cost = 0
			}
			matrix[i][j] = min(
				matrix[i-1][j]+1,      // Deletion
				matrix[i][j-1]+1,      // Insertion
				matrix[i-1][j-1]+cost, // Substitution
			)
		}
	}

	return matrix[len1][len2]
}
