// integration.go provides one-call helpers over the Extractor
package strata

import (
	"github.com/tsawler/strata/layout"
	"github.com/tsawler/strata/model"
)

// AnalyzeDocument builds the semantic tree of every page of a PDF.
//
// Example:
//
//	doc, err := strata.AnalyzeDocument("document.pdf")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, page := range doc.Pages {
//	    fmt.Printf("Page %d: %d nodes\n", page.Number(), len(page.Nodes))
//	}
func AnalyzeDocument(path string) (*model.Document, error) {
	return AnalyzeDocumentWithConfig(path, layout.DefaultAnalyzerConfig())
}

// AnalyzeDocumentWithConfig builds the tree with custom configuration
func AnalyzeDocumentWithConfig(path string, config layout.AnalyzerConfig) (*model.Document, error) {
	return Open(path).WithConfig(config).Tree()
}

// AnalyzeFragments builds the tree of pre-decoded pages with default
// configuration
func AnalyzeFragments(pages [][]model.Fragment) (*model.Document, error) {
	return FromPages(pages).Tree()
}
