// Package strata provides a fluent API for recovering the logical structure
// of document pages: paragraphs, headings, nested lists, captions and
// running headers and footers, built from positioned page fragments.
//
// Basic usage:
//
//	doc, err := strata.Open("document.pdf").Tree()
//	if err != nil {
//	    // handle error
//	}
//	for _, page := range doc.Pages {
//	    fmt.Print(model.FormatOutline(page.Nodes))
//	}
//
// With options:
//
//	text, err := strata.Open("report.pdf").
//	    Pages(1, 2, 3).
//	    ExcludeHeadersFooters().
//	    KeepLineBreaks().
//	    Text()
//
// Fragments produced by another decoder can be analyzed directly with
// FromPages. For finer control the layout package is also available.
package strata

import (
	"fmt"

	"github.com/tsawler/strata/format"
	"github.com/tsawler/strata/model"
)

// Open returns an Extractor for the PDF file at filename. The file is read
// by the terminal operation.
//
// Example:
//
//	outline, err := strata.Open("document.pdf").Outline()
func Open(filename string) *Extractor {
	return &Extractor{
		filename: filename,
		config:   defaultConfig(),
		options:  defaultOptions(),
	}
}

// FromPages returns an Extractor over fragments that were already decoded.
// pages[i] holds the fragments of page i in reading order; fragment boxes
// must carry i as their page.
//
// Example:
//
//	doc, err := strata.FromPages(pages).FindHiddenText().Tree()
func FromPages(pages [][]model.Fragment) *Extractor {
	if pages == nil {
		pages = [][]model.Fragment{}
	}
	return &Extractor{
		source:  pages,
		config:  defaultConfig(),
		options: defaultOptions(),
	}
}

// OpenFile returns an Extractor for a PDF or a fragment dump, chosen by the
// file's content and, failing that, its extension.
func OpenFile(filename string) (*Extractor, error) {
	f, err := format.DetectFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to detect format: %w", err)
	}
	switch f {
	case format.PDF:
		return Open(filename), nil
	case format.FragmentDump:
		return OpenJSON(filename)
	}
	return nil, fmt.Errorf("unsupported file format: %s", filename)
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	count := strata.Must(strata.Open("document.pdf").PageCount())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
