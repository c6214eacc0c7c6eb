package pdfsource

import (
	"errors"
	"fmt"
	"io"
	"os"

	rpdf "rsc.io/pdf"

	"github.com/tsawler/strata/model"
)

// ErrPageRange is returned for a page index outside the document
var ErrPageRange = errors.New("pdfsource: page out of range")

// Config holds configuration for glyph merging
type Config struct {
	// WordGap is the horizontal gap between two glyphs, as a fraction of the
	// font size, above which a space is inserted (default: 0.15)
	WordGap float64

	// RunBreak is the horizontal gap, as a multiple of the font size, that
	// ends a text run (default: 3.0)
	RunBreak float64

	// BaselineTolerance is the largest baseline difference between glyphs of
	// the same run (default: 0.5)
	BaselineTolerance float64
}

// DefaultConfig returns sensible default configuration
func DefaultConfig() Config {
	return Config{
		WordGap:           0.15,
		RunBreak:          3.0,
		BaselineTolerance: 0.5,
	}
}

// Document is an open PDF whose pages can be decoded into fragments
type Document struct {
	file   *os.File
	reader *rpdf.Reader
	config Config
}

// Open opens a PDF file with default configuration
func Open(filename string) (*Document, error) {
	return OpenWithConfig(filename, DefaultConfig())
}

// OpenWithConfig opens a PDF file with custom configuration
func OpenWithConfig(filename string, config Config) (*Document, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to get file info: %w", err)
	}

	doc, err := NewDocument(file, info.Size(), config)
	if err != nil {
		file.Close()
		return nil, err
	}
	doc.file = file
	return doc, nil
}

// NewDocument reads a PDF of the given size from r. The caller keeps
// ownership of r.
func NewDocument(r io.ReaderAt, size int64, config Config) (doc *Document, err error) {
	defer func() {
		if p := recover(); p != nil {
			doc, err = nil, fmt.Errorf("failed to parse PDF: %v", p)
		}
	}()

	reader, err := rpdf.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("failed to parse PDF: %w", err)
	}
	return &Document{reader: reader, config: config}, nil
}

// Close releases the underlying file, if the document opened it
func (d *Document) Close() error {
	if d.file == nil {
		return nil
	}
	err := d.file.Close()
	d.file = nil
	return err
}

// PageCount returns the number of pages
func (d *Document) PageCount() int {
	return d.reader.NumPage()
}

// Page decodes the page at the 0-based index. Fragment boxes carry index
// as their page.
func (d *Document) Page(index int) (fragments []model.Fragment, err error) {
	if index < 0 || index >= d.PageCount() {
		return nil, fmt.Errorf("%w: %d of %d", ErrPageRange, index+1, d.PageCount())
	}

	// rsc.io/pdf reports malformed content by panicking
	defer func() {
		if p := recover(); p != nil {
			fragments, err = nil, fmt.Errorf("page %d: failed to decode content: %v", index+1, p)
		}
	}()

	page := d.reader.Page(index + 1)
	if page.V.IsNull() {
		return nil, fmt.Errorf("%w: page %d not found", ErrPageRange, index+1)
	}
	return d.config.fragments(index, page.Content()), nil
}

// Pages decodes every page of the document
func (d *Document) Pages() ([][]model.Fragment, error) {
	pages := make([][]model.Fragment, d.PageCount())
	for i := range pages {
		fragments, err := d.Page(i)
		if err != nil {
			return nil, err
		}
		pages[i] = fragments
	}
	return pages, nil
}
