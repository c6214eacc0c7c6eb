package layout

import "github.com/tsawler/strata/model"

// RunOptions are the caller-supplied settings of one recognition run
type RunOptions struct {
	// FindHiddenText keeps hidden and visible text apart: lines and
	// paragraphs never mix fragments with different hidden flags.
	FindHiddenText bool

	// KeepLineBreaks joins the lines of a paragraph with "\n" instead of " "
	KeepLineBreaks bool

	// EmbedImages asks renderers to inline image data rather than reference
	// image files
	EmbedImages bool

	// ImageFormat is the file extension of extracted images (default "png")
	ImageFormat string
}

// RunContext carries the mutable state of one document run: the content id
// counter, the picture index and the settings derived from RunOptions. A
// RunContext belongs to exactly one run and must not be shared between
// concurrent runs.
type RunContext struct {
	options    RunOptions
	contentID  int64
	imageIndex int
}

// NewRunContext creates a context with fresh counters
func NewRunContext(opts RunOptions) *RunContext {
	if opts.ImageFormat == "" {
		opts.ImageFormat = "png"
	}
	return &RunContext{
		options:   opts,
		contentID: 1,
	}
}

// NextContentID returns the next content id. Ids start at 1.
func (rc *RunContext) NextContentID() int64 {
	id := rc.contentID
	rc.contentID++
	return id
}

// ContentID returns the id the next call to NextContentID will return
func (rc *RunContext) ContentID() int64 {
	return rc.contentID
}

// NextImageIndex returns the next 1-based picture index
func (rc *RunContext) NextImageIndex() int {
	rc.imageIndex++
	return rc.imageIndex
}

// ImageIndex returns the number of picture indices handed out so far
func (rc *RunContext) ImageIndex() int {
	return rc.imageIndex
}

// FindHiddenText reports whether hidden text is kept apart from visible text
func (rc *RunContext) FindHiddenText() bool {
	return rc.options.FindHiddenText
}

// KeepLineBreaks reports whether paragraph line breaks are preserved
func (rc *RunContext) KeepLineBreaks() bool {
	return rc.options.KeepLineBreaks
}

// EmbedImages reports whether images are to be inlined by renderers
func (rc *RunContext) EmbedImages() bool {
	return rc.options.EmbedImages
}

// ImageFormat returns the extension used for extracted images
func (rc *RunContext) ImageFormat() string {
	return rc.options.ImageFormat
}

// LineSeparator returns the string placed between the lines of a paragraph
func (rc *RunContext) LineSeparator() string {
	if rc.options.KeepLineBreaks {
		return "\n"
	}
	return " "
}

// ImageFileName returns the file name of the picture with the given index
func (rc *RunContext) ImageFileName(index int) string {
	return model.ImageFileName(index, rc.options.ImageFormat)
}

// Options returns the settings the context was created with
func (rc *RunContext) Options() RunOptions {
	return rc.options
}
