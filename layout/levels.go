package layout

import (
	"github.com/tsawler/strata/model"
)

// Structural levels given to headings
const (
	LevelDocTitle = "Doctitle"
	LevelSubtitle = "Subtitle"
)

// LevelAssigner gives lists, tables and bulleted paragraphs a structural
// depth across the whole document
type LevelAssigner struct {
	levels *LevelClassifier
}

// NewLevelAssigner creates a level assigner using the given classifier
func NewLevelAssigner(levels *LevelClassifier) *LevelAssigner {
	if levels == nil {
		levels = NewLevelClassifier()
	}
	return &LevelAssigner{levels: levels}
}

// Assign sets Level on the nodes of pages. A unit takes the depth of the
// first open level it matches (closing the levels below it) or opens a new
// level below the deepest one. Lists nested in an item only match levels
// deeper than their parent list. A list continuing an earlier list takes
// that list's level. The first level-1 heading is the document title; other
// headings are subtitles.
func (a *LevelAssigner) Assign(pages [][]*model.Node) {
	st := &levelStack{assigner: a, lists: make(map[int64]int)}
	for _, nodes := range pages {
		st.assign(nodes, 0)
	}
}

type levelStack struct {
	assigner   *LevelAssigner
	infos      []LevelInfo
	titleTaken bool
	lists      map[int64]int // list ID to level index
}

func (st *levelStack) assign(nodes []*model.Node, floor int) {
	for _, n := range nodes {
		if n.Kind == model.NodeKindHeading {
			if n.HeadingLevel == 1 && !st.titleTaken {
				n.Level = LevelDocTitle
				st.titleTaken = true
			} else {
				n.Level = LevelSubtitle
			}
			continue
		}
		if n.Kind != model.NodeKindParagraph && n.Kind != model.NodeKindList && n.Kind != model.NodeKindTable {
			continue
		}

		info, ok := st.assigner.levels.ForNode(n)
		if !ok || info.IsBlock() {
			continue
		}

		index, linked := st.linked(n)
		if linked {
			st.infos = append(st.infos[:index], info)
		} else if index = st.find(info, floor); index < 0 {
			st.infos = append(st.infos, info)
			index = len(st.infos) - 1
		} else {
			st.infos = st.infos[:index+1]
		}
		n.Level = levelName(index)

		if n.Kind == model.NodeKindList {
			st.lists[n.ID] = index
			for _, item := range n.Children {
				st.assign(nestedLists(item), index+1)
			}
		}
	}
}

// linked returns the level index of the list n continues, if that level is
// still open
func (st *levelStack) linked(n *model.Node) (int, bool) {
	if n.Kind != model.NodeKindList || n.ContinuesID == 0 {
		return 0, false
	}
	index, ok := st.lists[n.ContinuesID]
	if !ok || index >= len(st.infos) {
		return 0, false
	}
	return index, true
}

// find returns the index of the first open level at or below floor that
// matches info, or -1
func (st *levelStack) find(info LevelInfo, floor int) int {
	for i := floor; i < len(st.infos); i++ {
		if st.infos[i].SameLevel(info) {
			return i
		}
	}
	return -1
}

// nestedLists returns the lists inside a list item. The item's own body is
// already covered by the level of its list.
func nestedLists(item *model.Node) []*model.Node {
	var lists []*model.Node
	for _, c := range item.Children {
		if c.Kind == model.NodeKindList {
			lists = append(lists, c)
		}
	}
	return lists
}
