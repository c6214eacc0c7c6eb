package layout

import (
	"testing"

	"github.com/tsawler/strata/model"
)

func pictureNode(id int64, left, bottom, right, top float64) *model.Node {
	n := model.NewMediaNode(makeImage(left, bottom, right, top))
	n.ID = id
	return n
}

func TestCaptionAssociatorParagraphBelowPicture(t *testing.T) {
	para := makeParagraph("test", 10, 10, 100, 20)
	img := pictureNode(7, 10, 20, 100, 30)
	input := []*model.Node{para, img}

	out := NewCaptionAssociator().Associate(input)
	if len(out) != 2 {
		t.Fatalf("got %d nodes, want 2", len(out))
	}
	if out[0].Kind != model.NodeKindCaption {
		t.Errorf("first node = %s, want Caption", out[0].Kind)
	}
	if out[0].LinkedID != 7 {
		t.Errorf("LinkedID = %d, want 7", out[0].LinkedID)
	}
	if out[1] != img {
		t.Error("picture node should pass through unchanged")
	}
	if input[0].Kind != model.NodeKindParagraph {
		t.Error("input sequence was modified")
	}
}

func TestCaptionAssociatorNearestWins(t *testing.T) {
	before := makeParagraph("Above the figure", 10, 118, 100, 128)
	img := pictureNode(3, 10, 20, 100, 110)
	after := makeParagraph("Figure 1: below", 10, 5, 100, 15)

	out := NewCaptionAssociator().Associate([]*model.Node{before, img, after})
	if !sameKinds(out, model.NodeKindParagraph, model.NodeKindPicture, model.NodeKindCaption) {
		t.Errorf("kinds = %v, want [Paragraph Picture Caption]", kinds(out))
	}
}

func TestCaptionAssociatorTieGoesToNext(t *testing.T) {
	before := makeParagraph("Above", 10, 112, 100, 122)
	img := pictureNode(3, 10, 20, 100, 110)
	after := makeParagraph("Below", 10, 8, 100, 18)

	out := NewCaptionAssociator().Associate([]*model.Node{before, img, after})
	if !sameKinds(out, model.NodeKindParagraph, model.NodeKindPicture, model.NodeKindCaption) {
		t.Errorf("kinds = %v, want [Paragraph Picture Caption]", kinds(out))
	}
}

func TestCaptionAssociatorGapTooLarge(t *testing.T) {
	para := makeParagraph("far away", 10, 10, 100, 20)
	img := pictureNode(1, 10, 100, 100, 200)

	out := NewCaptionAssociator().Associate([]*model.Node{para, img})
	if out[0].Kind != model.NodeKindParagraph {
		t.Errorf("distant paragraph became %s", out[0].Kind)
	}
}

func TestCaptionAssociatorOneCaptionPerParagraph(t *testing.T) {
	img1 := pictureNode(1, 10, 60, 100, 100)
	para := makeParagraph("shared", 10, 50, 100, 60)
	img2 := pictureNode(2, 10, 10, 100, 50)

	out := NewCaptionAssociator().Associate([]*model.Node{img1, para, img2})
	if out[1].Kind != model.NodeKindCaption {
		t.Fatalf("middle node = %s, want Caption", out[1].Kind)
	}
	if out[1].LinkedID != 1 {
		t.Errorf("LinkedID = %d, want 1", out[1].LinkedID)
	}
}

func TestCaptionAssociatorSkipsLineArt(t *testing.T) {
	img := pictureNode(4, 10, 30, 100, 100)
	rule := model.NewMediaNode(makeLineArt(10, 25, 100, 26))
	para := makeParagraph("Caption text", 10, 15, 100, 25)

	out := NewCaptionAssociator().Associate([]*model.Node{img, rule, para})
	if out[2].Kind != model.NodeKindCaption || out[2].LinkedID != 4 {
		t.Errorf("paragraph after rule = %s linked %d, want Caption linked 4", out[2].Kind, out[2].LinkedID)
	}
}

func TestCaptionAssociatorOtherNodeInTheWay(t *testing.T) {
	img := pictureNode(4, 10, 30, 100, 100)
	heading := makeParagraph("Section", 10, 20, 100, 30).WithKind(model.NodeKindHeading)
	para := makeParagraph("Text", 10, 10, 100, 20)

	out := NewCaptionAssociator().Associate([]*model.Node{img, heading, para})
	if !sameKinds(out, model.NodeKindPicture, model.NodeKindHeading, model.NodeKindParagraph) {
		t.Errorf("kinds = %v, want [Picture Heading Paragraph]", kinds(out))
	}
}

func TestCaptionAssociatorTable(t *testing.T) {
	table := model.NewMediaNode(model.NewTableFragment(model.NewBBox(0, 10, 30, 100, 100), 2, 2))
	table.ID = 9
	para := makeParagraph("Table 1: results", 10, 100, 100, 110)

	out := NewCaptionAssociator().Associate([]*model.Node{para, table})
	if out[0].Kind != model.NodeKindCaption || out[0].LinkedID != 9 {
		t.Errorf("table caption = %s linked %d", out[0].Kind, out[0].LinkedID)
	}
}

func TestCaptionAssociatorRequireKeyword(t *testing.T) {
	config := DefaultCaptionConfig()
	config.RequireKeyword = true
	c := NewCaptionAssociatorWithConfig(config)

	img := pictureNode(1, 10, 20, 100, 30)
	out := c.Associate([]*model.Node{makeParagraph("plain text", 10, 10, 100, 20), img})
	if out[0].Kind != model.NodeKindParagraph {
		t.Errorf("paragraph without keyword became %s", out[0].Kind)
	}

	out = c.Associate([]*model.Node{makeParagraph("Figure 2. A chart", 10, 10, 100, 20), img})
	if out[0].Kind != model.NodeKindCaption {
		t.Errorf("paragraph with keyword = %s, want Caption", out[0].Kind)
	}
}

func TestCaptionAssociatorLineArt(t *testing.T) {
	para := makeParagraph("test", 10, 10, 100, 20)
	art := model.NewMediaNode(makeLineArt(10, 20, 100, 30))
	art.ID = 5

	out := NewCaptionAssociator().Associate([]*model.Node{para, art})
	if !sameKinds(out, model.NodeKindCaption, model.NodeKindLineArt) {
		t.Fatalf("kinds = %v, want [Caption LineArt]", kinds(out))
	}
	if out[0].LinkedID != 5 {
		t.Errorf("LinkedID = %d, want 5", out[0].LinkedID)
	}
}

func TestCaptionAssociatorPictureBeforeLineArt(t *testing.T) {
	para := makeParagraph("Figure 3", 10, 100, 100, 110)
	rule := model.NewMediaNode(makeLineArt(10, 99, 100, 100))
	rule.ID = 2
	img := pictureNode(3, 10, 20, 100, 98)

	out := NewCaptionAssociator().Associate([]*model.Node{para, rule, img})
	if out[0].Kind != model.NodeKindCaption || out[0].LinkedID != 3 {
		t.Errorf("paragraph = %s linked %d, want Caption linked 3", out[0].Kind, out[0].LinkedID)
	}
}

func TestCaptionAssociatorIgnoresDrawnBullets(t *testing.T) {
	bullet := makeLineArt(0, 33, 4, 37)
	art := model.NewMediaNode(bullet)
	para := makeParagraph("bulleted text", 10, 30, 100, 40)
	para.Lines[0].Bullet = bullet

	out := NewCaptionAssociator().Associate([]*model.Node{art, para})
	if out[1].Kind != model.NodeKindParagraph {
		t.Errorf("paragraph after its own bullet became %s", out[1].Kind)
	}
}
