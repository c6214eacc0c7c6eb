package layout

import (
	"github.com/tsawler/strata/model"
)

// ListLinker connects top-level lists that continue an earlier list, either
// on a following page or after a single paragraph indented at least as far
// as the list. Linked lists keep their own nodes; only ContinuesID and
// ContinuedByID are set.
type ListLinker struct{}

// NewListLinker creates a list linker
func NewListLinker() *ListLinker {
	return &ListLinker{}
}

// Link sets the continuation links across pages. Nodes must carry their
// IDs. Headers, footers, pictures and line art between two lists are
// ignored; any other node except one paragraph ends the chain.
func (l *ListLinker) Link(pages [][]*model.Node) {
	var previous, middle *model.Node
	for p, nodes := range pages {
		for _, n := range nodes {
			switch n.Kind {
			case model.NodeKindList:
				if previous != nil && continuesList(previous, n) && middleAllows(middle, n, p) {
					previous.ContinuedByID = n.ID
					n.ContinuesID = previous.ID
				}
				previous, middle = n, nil
			case model.NodeKindHeaderFooter, model.NodeKindPicture, model.NodeKindLineArt:
				// transparent
			case model.NodeKindParagraph:
				if middle == nil {
					middle = n
				} else {
					previous, middle = nil, nil
				}
			default:
				previous, middle = nil, nil
			}
		}
	}
}

// continuesList reports whether next's first item follows prev's last item:
// the next ordinal of the same style for counted lists, the same label for
// bulleted ones
func continuesList(prev, next *model.Node) bool {
	if prev.NumberingStyle != next.NumberingStyle || prev.CommonPrefix != next.CommonPrefix {
		return false
	}
	if len(prev.Children) == 0 || len(next.Children) == 0 {
		return false
	}
	last := prev.Children[len(prev.Children)-1]
	first := next.Children[0]
	if prev.NumberingStyle.IsOrdered() {
		return first.Number == last.Number+1
	}
	return first.Label == last.Label
}

// middleAllows accepts no paragraph in between, or one on the list's page
// that does not start left of the list
func middleAllows(middle, list *model.Node, page int) bool {
	if middle == nil {
		return true
	}
	box := middle.BoundingBox()
	return box.Page == page && box.LeftX >= list.BoundingBox().LeftX
}
