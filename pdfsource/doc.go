// Package pdfsource decodes PDF pages into positioned fragments for the
// layout pipeline.
//
// Glyphs reported by the PDF content stream are merged into text runs that
// share a font, a size and a baseline; filled and stroked rectangles become
// line art. Fragments are delivered in content-stream order, with line art
// placed before the first text run it sits above.
//
// Basic usage:
//
//	doc, err := pdfsource.Open("report.pdf")
//	if err != nil {
//	    // handle error
//	}
//	defer doc.Close()
//	pages, err := doc.Pages()
package pdfsource
