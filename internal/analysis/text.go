package analysis

import (
	"strings"
	"unicode"
)

// stopwords bound noun chunks: a chunk never extends across one of these.
var stopwords = map[string]struct{}{
	"a": {}, "an": {}, "the": {}, "this": {}, "that": {}, "these": {}, "those": {},
	"i": {}, "you": {}, "he": {}, "she": {}, "it": {}, "we": {}, "they": {},
	"my": {}, "your": {}, "his": {}, "her": {}, "its": {}, "our": {}, "their": {},
	"am": {}, "is": {}, "are": {}, "was": {}, "were": {}, "be": {}, "been": {}, "being": {},
	"have": {}, "has": {}, "had": {}, "do": {}, "does": {}, "did": {},
	"will": {}, "would": {}, "shall": {}, "should": {}, "can": {}, "could": {},
	"may": {}, "might": {}, "must": {},
	"and": {}, "or": {}, "but": {}, "nor": {}, "so": {}, "yet": {},
	"in": {}, "on": {}, "at": {}, "to": {}, "of": {}, "for": {}, "with": {},
	"by": {}, "from": {}, "as": {}, "into": {}, "over": {}, "under": {},
	"about": {}, "between": {}, "through": {}, "during": {}, "per": {},
	"not": {}, "no": {}, "if": {}, "then": {}, "than": {}, "while": {},
	"use": {}, "used": {}, "using": {}, "work": {}, "worked": {}, "working": {},
}

const maxChunkTokens = 4

// Tokenize splits text into lowercased word tokens. Characters meaningful in
// skill names (c++, c#, node.js written as node-js, ci/cd split apart) are
// kept inside tokens.
func Tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return false
		}
		switch r {
		case '+', '#', '-', '_':
			return false
		}
		return true
	})

	tokens := make([]string, 0, len(fields))
	for _, field := range fields {
		field = strings.Trim(field, "-_")
		if field == "" {
			continue
		}
		tokens = append(tokens, field)
	}

	return tokens
}

// Sentences segments text on sentence-ending punctuation and line breaks.
func Sentences(text string) []string {
	parts := strings.FieldsFunc(text, func(r rune) bool {
		switch r {
		case '.', '!', '?', '\n', '\r', ';':
			return true
		}
		return false
	})

	sentences := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		sentences = append(sentences, part)
	}

	return sentences
}

// NounChunks extracts candidate noun phrases: maximal runs of tokens within a
// sentence that are not interrupted by a stopword, capped at maxChunkTokens.
// This is a heuristic stand-in for a syntactic parse and intentionally
// over-generates rather than misses.
func NounChunks(text string) []string {
	var chunks []string

	for _, sentence := range Sentences(text) {
		tokens := Tokenize(sentence)

		run := make([]string, 0, len(tokens))
		flush := func() {
			for len(run) > maxChunkTokens {
				chunks = append(chunks, strings.Join(run[:maxChunkTokens], " "))
				run = run[maxChunkTokens:]
			}
			if len(run) > 0 {
				chunks = append(chunks, strings.Join(run, " "))
			}
			run = run[:0]
		}

		for _, token := range tokens {
			if _, stop := stopwords[token]; stop {
				flush()
				continue
			}
			run = append(run, token)
		}
		flush()
	}

	return chunks
}
