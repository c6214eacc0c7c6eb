package strata

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"

	"github.com/tsawler/strata/layout"
	"github.com/tsawler/strata/model"
)

func text(page int, s string, left, bottom, right, top float64) *model.TextFragment {
	return &model.TextFragment{
		Text:     s,
		FontSize: top - bottom,
		BBox:     model.NewBBox(page, left, bottom, right, top),
	}
}

// samplePages returns two pages sharing a running header
func samplePages() [][]model.Fragment {
	birds := [][2]string{{"Herring gull", "Common tern"}, {"Arctic tern", "Black skimmer"}}
	var pages [][]model.Fragment
	for p := 0; p < 2; p++ {
		pages = append(pages, []model.Fragment{
			text(p, "Field Guide", 10, 780, 100, 790),
			text(p, "Birds of the coast", 10, 700, 300, 720),
			text(p, "Gulls and terns are", 10, 670, 300, 680),
			text(p, "common all year.", 10, 660, 300, 670),
			text(p, "• "+birds[p][0], 10, 640, 150, 650),
			text(p, "• "+birds[p][1], 10, 630, 150, 640),
		})
	}
	return pages
}

func quiet(e *Extractor) *Extractor {
	logger, _ := test.NewNullLogger()
	return e.WithLogger(logger)
}

func TestOpen(t *testing.T) {
	// Test with non-existent file
	_, err := Open("nonexistent.pdf").Text()
	if err == nil {
		t.Error("expected error for non-existent file")
	}
}

func TestFromPagesTree(t *testing.T) {
	doc, err := quiet(FromPages(samplePages())).Tree()
	if err != nil {
		t.Fatalf("Tree() error = %v", err)
	}
	if doc.PageCount() != 2 {
		t.Fatalf("PageCount() = %d, want 2", doc.PageCount())
	}

	nodes := doc.Pages[0].Nodes
	want := []model.NodeKind{model.NodeKindHeaderFooter, model.NodeKindHeading, model.NodeKindParagraph, model.NodeKindList}
	if len(nodes) != len(want) {
		t.Fatalf("got %d nodes, want %d:\n%s", len(nodes), len(want), model.FormatOutline(nodes))
	}
	for i, n := range nodes {
		if n.Kind != want[i] {
			t.Errorf("node %d = %s, want %s", i, n.Kind, want[i])
		}
	}
	if len(doc.Headings()) != 2 || len(doc.Lists()) != 2 {
		t.Errorf("headings = %d, lists = %d, want 2 and 2", len(doc.Headings()), len(doc.Lists()))
	}
}

func TestFromPagesEmpty(t *testing.T) {
	doc, err := FromPages(nil).Tree()
	if err != nil {
		t.Fatalf("Tree() error = %v", err)
	}
	if doc.PageCount() != 0 {
		t.Errorf("PageCount() = %d, want 0", doc.PageCount())
	}
}

func TestText(t *testing.T) {
	base := quiet(FromPages(samplePages()))

	got, err := base.Text()
	if err != nil {
		t.Fatalf("Text() error = %v", err)
	}
	want := "Field Guide\nBirds of the coast\nGulls and terns are common all year.\n• Herring gull\n• Common tern\n" +
		"Field Guide\nBirds of the coast\nGulls and terns are common all year.\n• Arctic tern\n• Black skimmer\n"
	if got != want {
		t.Errorf("Text() = %q, want %q", got, want)
	}

	got, err = base.ExcludeHeadersFooters().KeepLineBreaks().Text()
	if err != nil {
		t.Fatalf("Text() error = %v", err)
	}
	if strings.Contains(got, "Field Guide") {
		t.Error("header should be excluded")
	}
	if !strings.Contains(got, "Gulls and terns are\ncommon all year.") {
		t.Errorf("line break not kept: %q", got)
	}
}

func TestPageSelection(t *testing.T) {
	e := quiet(FromPages(samplePages()))

	doc, err := e.Pages(2).Tree()
	if err != nil {
		t.Fatalf("Tree() error = %v", err)
	}
	if len(doc.Pages[0].Nodes) != 0 || len(doc.Pages[1].Nodes) == 0 {
		t.Errorf("only page 2 should have nodes")
	}

	if _, err := e.Pages(3).Tree(); err == nil {
		t.Error("expected error for page out of range")
	}

	count, err := e.PageCount()
	if err != nil || count != 2 {
		t.Errorf("PageCount() = %d, %v", count, err)
	}
}

func TestEmbedImages(t *testing.T) {
	pages := [][]model.Fragment{{
		text(0, "Harbour at dawn", 10, 700, 200, 710),
		&model.ImageFragment{BBox: model.NewBBox(0, 10, 400, 200, 600)},
	}}

	doc, err := quiet(FromPages(pages)).EmbedImages("jpg").Tree()
	if err != nil {
		t.Fatalf("Tree() error = %v", err)
	}
	if !doc.EmbedImages || doc.ImageFormat != "jpg" {
		t.Errorf("EmbedImages = %v, ImageFormat = %q, want true, jpg", doc.EmbedImages, doc.ImageFormat)
	}
	pictures := doc.NodesOfKind(model.NodeKindPicture)
	if len(pictures) != 1 {
		t.Fatalf("got %d pictures, want 1", len(pictures))
	}
	if got := doc.ImageFileName(pictures[0].PictureIndex); got != "imageFile1.jpg" {
		t.Errorf("ImageFileName() = %q, want imageFile1.jpg", got)
	}

	doc, err = quiet(FromPages(pages)).Tree()
	if err != nil {
		t.Fatalf("Tree() error = %v", err)
	}
	if doc.EmbedImages || doc.ImageFileName(1) != "imageFile1.png" {
		t.Errorf("default run: EmbedImages = %v, file %q", doc.EmbedImages, doc.ImageFileName(1))
	}
}

func TestExtractorImmutable(t *testing.T) {
	base := FromPages(samplePages())
	_ = base.Pages(1).KeepLineBreaks().ExcludeHeadersFooters()

	if len(base.options.pages) != 0 || base.options.keepLineBreaks || base.options.excludeHeadersFooters {
		t.Error("chain methods modified the original extractor")
	}
}

func TestOutline(t *testing.T) {
	outline, err := quiet(FromPages(samplePages())).Outline()
	if err != nil {
		t.Fatalf("Outline() error = %v", err)
	}
	if !strings.HasPrefix(outline, "page 1\n") || !strings.Contains(outline, "\npage 2\n") {
		t.Errorf("Outline() missing page sections:\n%s", outline)
	}
}

func TestWithConfig(t *testing.T) {
	config := layout.DefaultAnalyzerConfig()
	config.DetectLists = false
	config.DetectHeadings = false
	config.DetectHeadersFooters = false

	doc, err := quiet(FromPages(samplePages())).WithConfig(config).Tree()
	if err != nil {
		t.Fatalf("Tree() error = %v", err)
	}
	for _, n := range doc.Pages[0].Nodes {
		if n.Kind != model.NodeKindParagraph {
			t.Errorf("got %s with detection off", n.Kind)
		}
	}
}

func TestInvalidFragments(t *testing.T) {
	pages := [][]model.Fragment{{text(1, "wrong page", 0, 0, 10, 10)}}
	_, err := quiet(FromPages(pages)).Tree()
	if !errors.Is(err, model.ErrPageMismatch) {
		t.Errorf("error = %v, want ErrPageMismatch", err)
	}
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv(EnvGapMultiplier, "0.5")
	t.Setenv(EnvMinListItems, "3")
	t.Setenv(EnvBulletGlyphs, "§")

	config, err := ConfigFromEnv(layout.DefaultAnalyzerConfig())
	if err != nil {
		t.Fatalf("ConfigFromEnv() error = %v", err)
	}
	if config.LevelConfig.GapMultiplier != 0.5 {
		t.Errorf("GapMultiplier = %v, want 0.5", config.LevelConfig.GapMultiplier)
	}
	if config.ListConfig.MinItems != 3 {
		t.Errorf("MinItems = %d, want 3", config.ListConfig.MinItems)
	}
	if config.BulletGlyphs != "§" {
		t.Errorf("BulletGlyphs = %q", config.BulletGlyphs)
	}
	if config.LineConfig.BaselineTolerance != layout.DefaultLineConfig().BaselineTolerance {
		t.Error("unset variable changed the configuration")
	}

	t.Setenv(EnvCaptionGap, "wide")
	if _, err := ConfigFromEnv(layout.DefaultAnalyzerConfig()); err == nil || !strings.Contains(err.Error(), EnvCaptionGap) {
		t.Errorf("error = %v, want one naming %s", err, EnvCaptionGap)
	}
}

func TestFragmentDump(t *testing.T) {
	table := model.NewTableFragment(model.NewBBox(0, 10, 100, 200, 200), 1, 2)
	table.SetCell(0, 0, model.Cell{Text: "a"})
	table.SetCell(0, 1, model.Cell{Text: "b"})
	pages := [][]model.Fragment{{
		text(0, "Hello", 10, 700, 60, 710),
		&model.ImageFragment{BBox: model.NewBBox(0, 10, 300, 200, 600), Description: "map"},
		&model.LineArtFragment{BBox: model.NewBBox(0, 10, 250, 200, 251)},
		table,
	}}

	var buf bytes.Buffer
	if err := WriteFragments(&buf, pages); err != nil {
		t.Fatalf("WriteFragments() error = %v", err)
	}
	got, err := ReadFragments(&buf)
	if err != nil {
		t.Fatalf("ReadFragments() error = %v", err)
	}

	want := quietOutline(t, pages)
	if have := quietOutline(t, got); have != want {
		t.Errorf("outline after dump:\n%s\nwant:\n%s", have, want)
	}

	_, err = ReadFragments(strings.NewReader(`{"pages":[[{"kind":"sound","bbox":[0,0,1,1]}]]}`))
	if !errors.Is(err, ErrUnknownFragment) {
		t.Errorf("error = %v, want ErrUnknownFragment", err)
	}
}

func quietOutline(t *testing.T, pages [][]model.Fragment) string {
	t.Helper()
	outline, err := quiet(FromPages(pages)).Outline()
	if err != nil {
		t.Fatalf("Outline() error = %v", err)
	}
	return outline
}

func TestOpenFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pages.json")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := WriteFragments(f, samplePages()); err != nil {
		t.Fatal(err)
	}
	f.Close()

	e, err := OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile() error = %v", err)
	}
	count, err := e.PageCount()
	if err != nil || count != 2 {
		t.Errorf("PageCount() = %d, %v, want 2", count, err)
	}

	other := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(other, []byte("hello"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := OpenFile(other); err == nil {
		t.Error("expected error for unsupported file")
	}
}
