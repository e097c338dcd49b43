package ui

import (
	"sort"
	"strings"

	"keynav/internal/doctree"
	"keynav/internal/hints"
	"keynav/internal/mnemonic"
)

// LabelAttr holds a node's display text in the demo document.
const LabelAttr = "label"

// DocumentView lays out a doctree document as rows of text and composites
// the session's hint overlays on top, using each hint's page coordinates.
type DocumentView struct {
	Doc     *doctree.Document
	Session *mnemonic.Session
	Rows    int
}

// NewDocumentView creates a view and performs the initial layout pass.
func NewDocumentView(doc *doctree.Document, session *mnemonic.Session) *DocumentView {
	v := &DocumentView{Doc: doc, Session: session}
	v.Relayout()
	return v
}

// Relayout assigns page-coordinate layout boxes to every node: sections at
// column 0, items indented beneath them, one row each, a blank row between
// sections. Row 0 stays empty so first-row hints have somewhere to land.
func (v *DocumentView) Relayout() {
	row := 1
	for _, section := range v.Doc.Body().Children() {
		label, _ := section.Attr(LabelAttr)
		section.SetRect(doctree.Rect{X: 0, Y: row, W: len(label), H: 1})
		row++
		for _, item := range section.Children() {
			itemLabel, _ := item.Attr(LabelAttr)
			item.SetRect(doctree.Rect{X: 4, Y: row, W: len(itemLabel), H: 1})
			row++
		}
		row++
	}
	v.Rows = row
}

// Render produces the document area with hints composited over it.
func (v *DocumentView) Render() string {
	grid := make([][]rune, v.Rows)
	focused := v.Doc.Focused()
	v.Doc.Body().Walk(func(n *doctree.Node) {
		label, ok := n.Attr(LabelAttr)
		if !ok {
			return
		}
		rect := n.Rect()
		var line string
		switch n.Tag {
		case "section":
			line = label
		default:
			marker := "• "
			if n == focused {
				marker = "▸ "
			}
			line = strings.Repeat(" ", rect.X-2) + marker + label
		}
		if rect.Y >= 0 && rect.Y < v.Rows {
			grid[rect.Y] = []rune(line)
		}
	})

	byRow := make(map[int][]hints.Hint)
	for _, h := range v.Session.Hints() {
		byRow[h.Y] = append(byRow[h.Y], h)
	}

	var b strings.Builder
	for row := 0; row < v.Rows; row++ {
		b.WriteString(v.renderRow(grid[row], byRow[row]))
		b.WriteByte('\n')
	}
	return b.String()
}

// renderRow splices hint labels into a raw text row at their columns.
// Exiting hints render dimmed, a cheap stand-in for the fade-out.
func (v *DocumentView) renderRow(line []rune, rowHints []hints.Hint) string {
	if len(rowHints) == 0 {
		return string(line)
	}
	sort.Slice(rowHints, func(i, j int) bool { return rowHints[i].X < rowHints[j].X })
	var b strings.Builder
	col := 0
	for _, h := range rowHints {
		if h.X < col {
			continue
		}
		b.WriteString(padSlice(line, col, h.X))
		label := Styles.Hint.Render(h.Text)
		if h.Phase == hints.PhaseExiting {
			label = Styles.Muted.Render(h.Text)
		} else if len(h.Classes) == 0 {
			label = v.Session.Label(h)
		}
		b.WriteString(label)
		col = h.X + len(h.Text)
	}
	if col < len(line) {
		b.WriteString(string(line[col:]))
	}
	return b.String()
}

// padSlice returns line[from:to], space-padded when the line is shorter.
func padSlice(line []rune, from, to int) string {
	var b strings.Builder
	for i := from; i < to; i++ {
		if i < len(line) {
			b.WriteRune(line[i])
		} else {
			b.WriteByte(' ')
		}
	}
	return b.String()
}

// BuildSampleDocument assembles the demo page: sections of actionable
// items tagged with mnemonic attributes under attr. Activating an item
// (via the synthesized Enter pair) calls onActivate with its label.
func BuildSampleDocument(attr string, onActivate func(label string)) *doctree.Document {
	doc := doctree.NewDocument()
	page := []struct {
		section string
		items   []struct{ label, key string }
	}{
		{"File", []struct{ label, key string }{
			{"Save", "s"},
			{"Open…", "o"},
			{"Options", "o"},
			{"Overwrite", "o"},
		}},
		{"Edit", []struct{ label, key string }{
			{"Copy", "c"},
			{"Paste", "p"},
			{"Find", "f"},
		}},
		{"Help", []struct{ label, key string }{
			{"About", "a"},
		}},
	}
	for _, sec := range page {
		section := doctree.NewNode("section")
		section.SetAttr(LabelAttr, sec.section)
		doc.Body().Append(section)
		for _, it := range sec.items {
			item := doctree.NewNode("item")
			item.SetAttr(LabelAttr, it.label)
			item.SetAttr(attr, it.key)
			item.SetFocusable(true)
			label := it.label
			item.OnKey(func(ev doctree.KeyEvent) bool {
				if ev.Kind == doctree.KeyDown && ev.Key == mnemonic.ActivationKey {
					onActivate(label)
					return true
				}
				return false
			})
			section.Append(item)
		}
	}
	return doc
}
