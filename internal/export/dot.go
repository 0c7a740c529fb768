package export

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/okian/skilltree/internal/domain/decay"
)

// Style maps rustiness and size onto Graphviz node attributes. Visual
// styling is configuration, not engine logic.
type Style struct {
	Shape          string
	FillFresh      string
	FillRusty      string
	FillVeryRusty  string
	FontColor      string
	FontColorRusty string
	// Border width grows with rustiness to make neglect visible.
	PenWidthFresh     float64
	PenWidthRusty     float64
	PenWidthVeryRusty float64
	// Font size scales linearly with the node's size factor.
	FontSizeMin float64
	FontSizeMax float64
}

// DefaultStyle returns the stock node styling.
func DefaultStyle() Style {
	return Style{
		Shape:             "box",
		FillFresh:         "palegreen",
		FillRusty:         "khaki",
		FillVeryRusty:     "lightsalmon",
		FontColor:         "black",
		FontColorRusty:    "gray25",
		PenWidthFresh:     1,
		PenWidthRusty:     2,
		PenWidthVeryRusty: 3,
		FontSizeMin:       10,
		FontSizeMax:       24,
	}
}

// WriteDOT renders the snapshot as a directed Graphviz document.
func (s Snapshot) WriteDOT(w io.Writer, style Style) error {
	var b strings.Builder
	b.WriteString("digraph skills {\n")
	b.WriteString("\trankdir=LR;\n")
	fmt.Fprintf(&b, "\tnode [shape=%s, style=filled];\n", style.Shape)
	for _, n := range s.Nodes {
		fmt.Fprintf(&b, "\t%s [label=%s, fillcolor=%s, fontcolor=%s, penwidth=%s, fontsize=%s];\n",
			quote(n.Name),
			quote(fmt.Sprintf("%s\\n%s", n.Label, n.Level)),
			quote(fill(style, n)),
			quote(fontColor(style, n)),
			formatFloat(penWidth(style, n)),
			formatFloat(style.FontSizeMin+(style.FontSizeMax-style.FontSizeMin)*n.Size),
		)
	}
	for _, e := range s.Edges {
		fmt.Fprintf(&b, "\t%s -> %s [label=%s];\n", quote(e.From), quote(e.To), quote(formatFloat(e.Weight)))
	}
	b.WriteString("}\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func fill(st Style, n Node) string {
	switch n.Rustiness {
	case decay.Rusty:
		return st.FillRusty
	case decay.VeryRusty:
		return st.FillVeryRusty
	default:
		return st.FillFresh
	}
}

func fontColor(st Style, n Node) string {
	if n.Rustiness == decay.Fresh {
		return st.FontColor
	}
	return st.FontColorRusty
}

func penWidth(st Style, n Node) float64 {
	switch n.Rustiness {
	case decay.Rusty:
		return st.PenWidthRusty
	case decay.VeryRusty:
		return st.PenWidthVeryRusty
	default:
		return st.PenWidthFresh
	}
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', 4, 64)
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}
