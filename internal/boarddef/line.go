package boarddef

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// LineKind distinguishes properties from the layout lines around them.
type LineKind int

const (
	KindProperty LineKind = iota
	KindComment
	KindRule
	KindBlank
)

const ruleWidth = 62

// Line is one line of a boards file. Property lines render as
// "<board>.<path>=<value>".
type Line struct {
	Kind  LineKind
	Board string
	Path  string
	Value string
}

// Key returns the fully qualified property key, or "" for non-property lines.
func (l Line) Key() string {
	if l.Kind != KindProperty {
		return ""
	}
	return l.Board + "." + l.Path
}

func (l Line) String() string {
	switch l.Kind {
	case KindProperty:
		return l.Key() + "=" + l.Value
	case KindComment:
		return "# " + l.Value
	case KindRule:
		return strings.Repeat("#", ruleWidth)
	default:
		return ""
	}
}

// Write renders lines to w, one per row.
func Write(w io.Writer, lines []Line) error {
	bw := bufio.NewWriter(w)
	for _, l := range lines {
		if _, err := bw.WriteString(l.String()); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Render returns lines as a single string.
func Render(lines []Line) string {
	var sb strings.Builder
	_ = Write(&sb, lines)
	return sb.String()
}

// Properties returns only the property lines, in order.
func Properties(lines []Line) []Line {
	out := make([]Line, 0, len(lines))
	for _, l := range lines {
		if l.Kind == KindProperty {
			out = append(out, l)
		}
	}
	return out
}

// block accumulates lines for one board.
type block struct {
	board string
	lines []Line
}

func newBlock(board string) *block {
	return &block{board: board}
}

func (b *block) set(path, value string) {
	b.lines = append(b.lines, Line{Kind: KindProperty, Board: b.board, Path: path, Value: value})
}

func (b *block) setf(path, format string, args ...any) {
	b.set(path, fmt.Sprintf(format, args...))
}

func (b *block) blank() {
	b.lines = append(b.lines, Line{Kind: KindBlank})
}

func (b *block) comment(text string) {
	b.lines = append(b.lines, Line{Kind: KindComment, Value: text})
}

func (b *block) rule() {
	b.lines = append(b.lines, Line{Kind: KindRule})
}

func (b *block) menu(name string) menu {
	return menu{b: b, prefix: "menu." + name + "."}
}

// menu writes "menu.<Name>.<option>[.<sub>]" properties.
type menu struct {
	b      *block
	prefix string
}

func (m menu) option(key, label string) {
	m.b.set(m.prefix+key, label)
}

func (m menu) set(key, sub, value string) {
	m.b.set(m.prefix+key+"."+sub, value)
}
