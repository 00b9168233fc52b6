package extraction

import "strings"

// Document is a single text prepared for extraction. Lowercasing, sentence
// segmentation and chunking are computed lazily and memoized so each scan can
// reuse them.
type Document struct {
	Text string
	IsJD bool

	lower     string
	sentences []string
	chunks    []string
}

// Lower returns the lowercased full text.
func (d *Document) Lower() string {
	if d.lower == "" {
		d.lower = strings.ToLower(d.Text)
	}
	return d.lower
}

// Sentences returns the segmented sentences of the text.
func (d *Document) Sentences(analyzer Analyzer) []string {
	if d.sentences == nil {
		d.sentences = analyzer.Sentences(d.Text)
	}
	return d.sentences
}

// Chunks returns the noun chunks of the text.
func (d *Document) Chunks(analyzer Analyzer) []string {
	if d.chunks == nil {
		d.chunks = analyzer.NounChunks(d.Text)
	}
	return d.chunks
}
