package model

import (
	"fmt"
	"strings"
)

// FormatOutline renders nodes as an indented outline, one node per line.
// It is meant for inspection and debugging, not as an interchange format.
func FormatOutline(nodes []*Node) string {
	var sb strings.Builder
	for _, n := range nodes {
		writeOutline(&sb, n, 0)
	}
	return sb.String()
}

func writeOutline(sb *strings.Builder, n *Node, depth int) {
	sb.WriteString(strings.Repeat("  ", depth))
	sb.WriteString(n.Kind.String())

	switch n.Kind {
	case NodeKindHeading:
		fmt.Fprintf(sb, " h%d", n.HeadingLevel)
	case NodeKindList:
		fmt.Fprintf(sb, " %s", n.NumberingStyle)
	case NodeKindListItem:
		if n.Label != "" {
			fmt.Fprintf(sb, " %q", n.Label)
		}
	case NodeKindPicture:
		fmt.Fprintf(sb, " #%d", n.PictureIndex)
	case NodeKindCaption:
		fmt.Fprintf(sb, " -> %d", n.LinkedID)
	case NodeKindHeaderFooter:
		if n.Header {
			sb.WriteString(" header")
		} else {
			sb.WriteString(" footer")
		}
	}
	if n.Level != "" {
		fmt.Fprintf(sb, " level=%s", n.Level)
	}
	if len(n.Lines) > 0 {
		fmt.Fprintf(sb, ": %q", n.Text())
	}
	sb.WriteString("\n")

	for _, c := range n.Children {
		writeOutline(sb, c, depth+1)
	}
}
