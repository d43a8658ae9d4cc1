package tokenizer

import (
	"strings"
)

// Tokenize converts a string into a slice of lowercase tokens.
// Tokens are separated by whitespace only, so hyphenated labels like "plant-based" stay intact.
func Tokenize(text string) []string {
	fields := strings.Fields(strings.ToLower(text))

	tokens := make([]string, 0, len(fields)) // Initialize as empty slice, not nil
	for _, f := range fields {
		if f != "" {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

// UniqueTokens tokenizes text and drops repeated tokens, keeping first-seen order.
func UniqueTokens(text string) []string {
	tokens := Tokenize(text)

	result := make([]string, 0, len(tokens))
	seen := make(map[string]struct{}, len(tokens))
	for _, token := range tokens {
		if _, dup := seen[token]; dup {
			continue
		}
		seen[token] = struct{}{}
		result = append(result, token)
	}
	return result
}

// Words splits already-normalized text on whitespace without changing case.
func Words(text string) []string {
	return strings.Fields(text)
}

// Normalize lowercases and trims text for comparisons.
func Normalize(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}
