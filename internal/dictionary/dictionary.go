// Package dictionary holds the canonical skill vocabulary and its synonyms.
package dictionary

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Dictionary maps category -> canonical skill -> synonyms and provides a
// precomputed inverted index from any known token (canonical name or synonym,
// lowercased) to its canonical name. It is built once at startup and is
// immutable afterwards, so it is safe for concurrent readers.
type Dictionary struct {
	categories map[string]map[string][]string
	index      map[string]string
	tokens     []string
}

// Load reads the skill dictionary from a YAML file shaped as
// category -> canonical skill -> list of synonyms.
func Load(path string) (*Dictionary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading skill dictionary %q: %w", path, err)
	}

	var categories map[string]map[string][]string
	if err := yaml.Unmarshal(data, &categories); err != nil {
		return nil, fmt.Errorf("parsing skill dictionary %q: %w", path, err)
	}

	dict, err := FromMap(categories)
	if err != nil {
		return nil, fmt.Errorf("skill dictionary %q: %w", path, err)
	}

	return dict, nil
}

// FromMap builds a dictionary from an in-memory mapping. It fails on an empty
// mapping or blank canonical names. A synonym is expected to map to exactly
// one canonical name globally; when source data violates that, the category
// iterated first (sorted order) wins, deterministically.
func FromMap(categories map[string]map[string][]string) (*Dictionary, error) {
	if len(categories) == 0 {
		return nil, fmt.Errorf("empty mapping")
	}

	index := make(map[string]string)

	names := make([]string, 0, len(categories))
	for name := range categories {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, category := range names {
		skills := categories[category]
		if len(skills) == 0 {
			return nil, fmt.Errorf("category %q has no skills", category)
		}

		canonicals := make([]string, 0, len(skills))
		for canonical := range skills {
			canonicals = append(canonicals, canonical)
		}
		sort.Strings(canonicals)

		for _, canonical := range canonicals {
			name := strings.ToLower(strings.TrimSpace(canonical))
			if name == "" {
				return nil, fmt.Errorf("category %q has a blank canonical skill name", category)
			}

			if _, ok := index[name]; !ok {
				index[name] = name
			}

			for _, synonym := range skills[canonical] {
				token := strings.ToLower(strings.TrimSpace(synonym))
				if token == "" {
					continue
				}
				if _, ok := index[token]; !ok {
					index[token] = name
				}
			}
		}
	}

	tokens := make([]string, 0, len(index))
	for token := range index {
		tokens = append(tokens, token)
	}
	sort.Strings(tokens)

	return &Dictionary{
		categories: categories,
		index:      index,
		tokens:     tokens,
	}, nil
}

// Canonicalize resolves a token to its canonical skill name. The lookup is
// case-insensitive and O(1).
func (d *Dictionary) Canonicalize(token string) (string, bool) {
	canonical, ok := d.index[strings.ToLower(strings.TrimSpace(token))]
	return canonical, ok
}

// Tokens returns all known tokens (canonical names and synonyms), lowercased
// and sorted. The returned slice is shared and must not be mutated.
func (d *Dictionary) Tokens() []string {
	return d.tokens
}

// Len returns the number of known tokens.
func (d *Dictionary) Len() int {
	return len(d.tokens)
}

// Categories returns the names of the loaded categories, sorted.
func (d *Dictionary) Categories() []string {
	names := make([]string, 0, len(d.categories))
	for name := range d.categories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
