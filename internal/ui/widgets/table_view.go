package widgets

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Viewer is anything that renders to a block of text
type Viewer interface {
	View() string
}

// SeparatorStyle controls the rule drawn between rows
type SeparatorStyle int

const (
	SeparatorSingleLine SeparatorStyle = iota
	SeparatorNone
)

// RowRenderer renders one row. The result may span several lines.
type RowRenderer[T any] func(item T, selected bool, width int) string

// TableView lays out an optional header, the visible rows of a source, an
// optional footer after the rows and, when there are no rows, an optional
// background filling the body.
type TableView[T any] struct {
	source   *TableSource[T]
	render   RowRenderer[T]
	rowLines int

	header     Viewer
	footer     Viewer
	background Viewer
	separator  SeparatorStyle

	separatorStyle lipgloss.Style
}

// NewTableView creates a view whose rows are rowLines lines tall
func NewTableView[T any](source *TableSource[T], render RowRenderer[T], rowLines int) *TableView[T] {
	if rowLines < 1 {
		rowLines = 1
	}
	return &TableView[T]{
		source:         source,
		render:         render,
		rowLines:       rowLines,
		separatorStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	}
}

func (t *TableView[T]) Source() *TableSource[T] { return t.source }

func (t *TableView[T]) Header() Viewer { return t.header }

func (t *TableView[T]) SetHeader(v Viewer) { t.header = v }

func (t *TableView[T]) Footer() Viewer { return t.footer }

func (t *TableView[T]) SetFooter(v Viewer) { t.footer = v }

func (t *TableView[T]) Background() Viewer { return t.background }

func (t *TableView[T]) SetBackground(v Viewer) { t.background = v }

func (t *TableView[T]) SeparatorStyle() SeparatorStyle { return t.separator }

func (t *TableView[T]) SetSeparatorStyle(s SeparatorStyle) { t.separator = s }

// View renders the table into width x height
func (t *TableView[T]) View(width, height int) string {
	var b strings.Builder
	used := 0

	if t.header != nil {
		h := t.header.View()
		b.WriteString(h)
		b.WriteString("\n")
		used += lipgloss.Height(h)
	}

	footerLines := 0
	if t.footer != nil {
		footerLines = lipgloss.Height(t.footer.View())
	}

	body := height - used - footerLines
	if body < 1 {
		body = 1
	}

	if t.source.Len() == 0 {
		if t.background != nil {
			b.WriteString(lipgloss.Place(width, body, lipgloss.Center, lipgloss.Center, t.background.View()))
			b.WriteString("\n")
		}
		if t.footer != nil {
			b.WriteString(t.footer.View())
		}
		return b.String()
	}

	rowHeight := t.rowLines
	if t.separator == SeparatorSingleLine {
		rowHeight++
	}
	t.source.SetVisibleRows(body / rowHeight)

	start, end := t.source.VisibleRange()
	cursor := t.source.Cursor()
	rule := t.separatorStyle.Render(strings.Repeat("─", max(width, 1)))
	for i := start; i < end; i++ {
		item, ok := t.source.items.At(i)
		if !ok {
			break
		}
		b.WriteString(t.render(item, i == cursor, width))
		b.WriteString("\n")
		if t.separator == SeparatorSingleLine && i < end-1 {
			b.WriteString(rule)
			b.WriteString("\n")
		}
	}

	if t.footer != nil {
		b.WriteString(t.footer.View())
	}
	return b.String()
}
