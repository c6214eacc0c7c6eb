package strata

import "github.com/tsawler/strata/layout"

// ExtractOptions holds the per-run settings of an Extractor.
type ExtractOptions struct {
	// Page selection (1-indexed in API, stored as-is)
	pages []int

	// Output filtering
	excludeHeadersFooters bool

	// Run settings passed to the layout pipeline
	keepLineBreaks bool
	findHiddenText bool
	embedImages    bool
	imageFormat    string
}

// defaultOptions returns the default extraction options.
func defaultOptions() ExtractOptions {
	return ExtractOptions{
		pages:                 nil, // nil means all pages
		excludeHeadersFooters: false,
		keepLineBreaks:        false,
		findHiddenText:        false,
		embedImages:           false,
		imageFormat:           "png",
	}
}

// clone creates a deep copy of ExtractOptions.
func (o ExtractOptions) clone() ExtractOptions {
	newOpts := o

	// Deep copy pages slice
	if o.pages != nil {
		newOpts.pages = make([]int, len(o.pages))
		copy(newOpts.pages, o.pages)
	}

	return newOpts
}

// runOptions converts the options into the settings of one layout run.
func (o ExtractOptions) runOptions() layout.RunOptions {
	return layout.RunOptions{
		FindHiddenText: o.findHiddenText,
		KeepLineBreaks: o.keepLineBreaks,
		EmbedImages:    o.embedImages,
		ImageFormat:    o.imageFormat,
	}
}
