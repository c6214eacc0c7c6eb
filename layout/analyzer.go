package layout

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/tsawler/strata/model"
)

// AnalyzerConfig holds configuration options for the tree builder. Each
// stage has its own sub-configuration, and there are flags to enable or
// disable the optional stages.
type AnalyzerConfig struct {
	LineConfig         LineConfig
	LevelConfig        LevelConfig
	ParagraphConfig    ParagraphConfig
	ListConfig         ListConfig
	HeadingConfig      HeadingConfig
	HeaderFooterConfig HeaderFooterConfig
	CaptionConfig      CaptionConfig

	// BulletGlyphs overrides the characters recognized as bullets. Empty
	// selects the default catalog.
	BulletGlyphs string

	// HeadingClassifier overrides the heading scorer. Nil selects
	// FontSizeHeadingClassifier.
	HeadingClassifier HeadingClassifier

	// DetectLists enables list assembly
	DetectLists bool

	// LinkLists connects lists continuing an earlier list on a later page
	// or after one paragraph
	LinkLists bool

	// DetectHeadings enables heading detection
	DetectHeadings bool

	// DetectHeadersFooters enables running header/footer detection
	DetectHeadersFooters bool

	// DetectCaptions enables caption association
	DetectCaptions bool

	// AssignLevels enables the structural level pass
	AssignLevels bool

	// VerifyConservation checks every page's tree against its input and
	// fails the run on a lost, duplicated or reordered fragment
	VerifyConservation bool

	// Logger receives stage diagnostics. Nil selects logrus.StandardLogger().
	Logger logrus.FieldLogger
}

// DefaultAnalyzerConfig returns a configuration with sensible defaults,
// with all stages enabled.
func DefaultAnalyzerConfig() AnalyzerConfig {
	return AnalyzerConfig{
		LineConfig:           DefaultLineConfig(),
		LevelConfig:          DefaultLevelConfig(),
		ParagraphConfig:      DefaultParagraphConfig(),
		ListConfig:           DefaultListConfig(),
		HeadingConfig:        DefaultHeadingConfig(),
		HeaderFooterConfig:   DefaultHeaderFooterConfig(),
		CaptionConfig:        DefaultCaptionConfig(),
		DetectLists:          true,
		LinkLists:            true,
		DetectHeadings:       true,
		DetectHeadersFooters: true,
		DetectCaptions:       true,
		AssignLevels:         true,
		VerifyConservation:   true,
	}
}

// Analyzer builds the semantic tree of a document from its fragments. An
// Analyzer holds only configuration and may be shared by concurrent runs;
// each Build call gets its own RunContext.
type Analyzer struct {
	config AnalyzerConfig
	log    logrus.FieldLogger

	lines        *LineAssembler
	paragraphs   *ParagraphAssembler
	lists        *ListAssembler
	linker       *ListLinker
	headings     *HeadingDetector
	headerFooter *HeaderFooterDetector
	captions     *CaptionAssociator
	levels       *LevelAssigner
}

// NewAnalyzer creates an analyzer with default configuration
func NewAnalyzer() *Analyzer {
	return NewAnalyzerWithConfig(DefaultAnalyzerConfig())
}

// NewAnalyzerWithConfig creates an analyzer with custom configuration
func NewAnalyzerWithConfig(config AnalyzerConfig) *Analyzer {
	markers := DefaultMarkerCatalog()
	if config.BulletGlyphs != "" {
		markers = NewMarkerCatalog(config.BulletGlyphs)
	}
	classifier := NewLevelClassifierWithConfig(config.LevelConfig, markers)

	log := config.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}

	return &Analyzer{
		config:       config,
		log:          log,
		lines:        NewLineAssemblerWithConfig(config.LineConfig),
		paragraphs:   NewParagraphAssemblerWithConfig(config.ParagraphConfig, classifier),
		lists:        NewListAssemblerWithConfig(config.ListConfig, classifier),
		linker:       NewListLinker(),
		headings:     NewHeadingDetectorWithConfig(config.HeadingConfig, config.HeadingClassifier),
		headerFooter: NewHeaderFooterDetectorWithConfig(config.HeaderFooterConfig),
		captions:     NewCaptionAssociatorWithConfig(config.CaptionConfig),
		levels:       NewLevelAssigner(classifier),
	}
}

// Config returns the analyzer's configuration
func (a *Analyzer) Config() AnalyzerConfig {
	return a.config
}

// Build runs the pipeline over the fragments of every page. pages[i] holds
// the fragments of page i in reading order.
func (a *Analyzer) Build(pages [][]model.Fragment, opts RunOptions) (*model.Document, error) {
	return a.BuildContext(context.Background(), pages, opts)
}

// BuildContext is Build with cancellation, checked between pages and stages
func (a *Analyzer) BuildContext(ctx context.Context, pages [][]model.Fragment, opts RunOptions) (*model.Document, error) {
	if err := validatePages(pages); err != nil {
		return nil, err
	}

	rc := NewRunContext(opts)
	log := a.log.WithField("pages", len(pages))

	// Lines and paragraphs
	nodes := make([][]*model.Node, len(pages))
	for p, fragments := range pages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		segments := a.lines.Assemble(rc, fragments)
		nodes[p] = a.paragraphs.Assemble(rc, segments)
		log.WithFields(logrus.Fields{
			"page":      p,
			"fragments": len(fragments),
			"lines":     len(Lines(segments)),
			"nodes":     len(nodes[p]),
		}).Debug("assembled paragraphs")
	}

	if a.config.DetectHeadersFooters {
		nodes = a.headerFooter.Detect(nodes)
	}

	if a.config.DetectLists {
		for p := range nodes {
			nodes[p] = a.lists.Assemble(nodes[p])
		}
	}

	if a.config.DetectHeadings {
		nodes = a.headings.Detect(nodes)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	for p := range nodes {
		assignIDs(rc, nodes[p])
	}

	if a.config.DetectLists && a.config.LinkLists {
		a.linker.Link(nodes)
	}

	if a.config.DetectCaptions {
		for p := range nodes {
			nodes[p] = a.captions.Associate(nodes[p])
		}
	}

	if a.config.AssignLevels {
		a.levels.Assign(nodes)
	}

	doc := model.NewDocument()
	for p := range nodes {
		if a.config.VerifyConservation {
			if err := model.VerifyConservation(pages[p], nodes[p]); err != nil {
				log.WithField("page", p).WithError(err).Warn("tree does not conserve page fragments")
				return nil, fmt.Errorf("page %d: %w", p, err)
			}
		}
		doc.AddPage(nodes[p])
	}
	doc.ContentID = rc.ContentID()
	doc.ImageIndex = rc.ImageIndex()
	doc.KeepLineBreaks = rc.KeepLineBreaks()
	doc.EmbedImages = rc.EmbedImages()
	doc.ImageFormat = rc.ImageFormat()

	log.WithFields(logrus.Fields{
		"content_id": doc.ContentID,
		"images":     doc.ImageIndex,
	}).Debug("built document tree")
	return doc, nil
}

// validatePages rejects nil fragments, invalid boxes and fragments whose
// box names another page
func validatePages(pages [][]model.Fragment) error {
	for p, fragments := range pages {
		for i, f := range fragments {
			if err := model.ValidateFragment(f, p); err != nil {
				return &FragmentError{Page: p, Index: i, Err: err}
			}
		}
	}
	return nil
}

// assignIDs numbers every node of a page depth-first
func assignIDs(rc *RunContext, nodes []*model.Node) {
	for _, n := range nodes {
		n.Walk(func(c *model.Node) bool {
			c.ID = rc.NextContentID()
			return true
		})
	}
}
