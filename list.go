package main

import "strings"

const listDelimiter = ","

// splitList splits a base-section list value. Elements are matched exactly,
// so surrounding whitespace is kept.
func splitList(value string) []string {
	return strings.Split(value, listDelimiter)
}

func deduplicateNames(names []string) []string {
	seen := make(map[string]bool, len(names))
	result := make([]string, 0, len(names))
	for _, name := range names {
		if !seen[name] {
			seen[name] = true
			result = append(result, name)
		}
	}
	return result
}
