// Package ingestion loads CV and JD documents from disk and turns them into
// plain text for the extraction pipeline.
package ingestion

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"
)

const defaultMaxFileSizeMB = 10

// Reader extracts plain text from supported document files. Only size and
// format validation happen here; the extraction core never touches files.
type Reader struct {
	maxFileSizeMB int
	logger        *zap.Logger
}

// NewReader creates a reader with the given file size limit in megabytes.
// Non-positive limits fall back to the default.
func NewReader(maxFileSizeMB int, logger *zap.Logger) *Reader {
	if maxFileSizeMB <= 0 {
		maxFileSizeMB = defaultMaxFileSizeMB
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Reader{
		maxFileSizeMB: maxFileSizeMB,
		logger:        logger,
	}
}

// ExtractText returns the plain text content of the file. Supported formats
// are PDF and plain text (.txt, .md). The caller decides how to degrade on
// error; the reader only reports it.
func (r *Reader) ExtractText(path string) (string, error) {
	if err := r.validate(path); err != nil {
		return "", err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return r.extractPDF(path)
	case ".txt", ".md":
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("reading %q: %w", path, err)
		}
		return string(data), nil
	default:
		return "", fmt.Errorf("unsupported file format %q: must be pdf, txt or md", path)
	}
}

func (r *Reader) validate(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat %q: %w", path, err)
	}

	if info.Size() > int64(r.maxFileSizeMB)*1024*1024 {
		return fmt.Errorf("file %q exceeds size limit of %d MB", path, r.maxFileSizeMB)
	}

	return nil
}

func (r *Reader) extractPDF(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %q: %w", path, err)
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("parsing pdf %q: %w", path, err)
	}

	var builder strings.Builder
	pages := reader.NumPage()
	for i := 1; i <= pages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			r.logger.Debug("skipping unreadable pdf page",
				zap.String("file", path),
				zap.Int("page", i),
				zap.Error(err),
			)
			continue
		}
		builder.WriteString(text)
	}

	r.logger.Debug("extracted text from pdf",
		zap.String("file", path),
		zap.Int("pages", pages),
		zap.Int("characters", builder.Len()),
	)

	return builder.String(), nil
}
