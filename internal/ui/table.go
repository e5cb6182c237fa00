package ui

import (
	"strings"
)

// Align type for table column alignment
type Align int

const (
	AlignLeft Align = iota
	AlignRight
	AlignCenter
)

// TableColumn defines a column in a table
type TableColumn struct {
	Header string
	Align  Align
}

// TableBorder style for tables
type TableBorder int

const (
	BorderUnicode TableBorder = iota
	BorderASCII
)

// RenderTableOptions configures table rendering. Each row holds one cell
// per column; missing cells render empty.
type RenderTableOptions struct {
	Columns []TableColumn
	Rows    [][]string
	Border  TableBorder
}

type boxChars struct {
	tl, tr, bl, br  string // corners
	h, v            string // horizontal, vertical
	t, ml, m, mr, b string // tees and crosses
}

var (
	unicodeBox = boxChars{
		tl: "┌", tr: "┐", bl: "└", br: "┘",
		h: "─", v: "│",
		t: "┬", ml: "├", m: "┼", mr: "┤", b: "┴",
	}
	asciiBox = boxChars{
		tl: "+", tr: "+", bl: "+", br: "+",
		h: "-", v: "|",
		t: "+", ml: "+", m: "+", mr: "+", b: "+",
	}
)

// RenderTable renders a formatted table. Cell widths ignore ANSI codes, so
// swatches and styled text line up.
func RenderTable(opts RenderTableOptions) string {
	box := unicodeBox
	if opts.Border == BorderASCII {
		box = asciiBox
	}

	widths := make([]int, len(opts.Columns))
	for i, col := range opts.Columns {
		widths[i] = VisibleWidth(col.Header)
		for _, row := range opts.Rows {
			if i < len(row) {
				if w := VisibleWidth(row[i]); w > widths[i] {
					widths[i] = w
				}
			}
		}
	}

	hLine := func(left, mid, right string) string {
		parts := make([]string, len(widths))
		for i, w := range widths {
			parts[i] = strings.Repeat(box.h, w+2)
		}
		return left + strings.Join(parts, mid) + right
	}

	renderRow := func(cells []string) string {
		parts := make([]string, len(opts.Columns))
		for i, col := range opts.Columns {
			var cell string
			if i < len(cells) {
				cell = cells[i]
			}
			parts[i] = " " + padCell(cell, widths[i], col.Align) + " "
		}
		return box.v + strings.Join(parts, box.v) + box.v
	}

	headers := make([]string, len(opts.Columns))
	for i, col := range opts.Columns {
		headers[i] = col.Header
	}

	lines := []string{
		hLine(box.tl, box.t, box.tr),
		renderRow(headers),
		hLine(box.ml, box.m, box.mr),
	}
	for _, row := range opts.Rows {
		lines = append(lines, renderRow(row))
	}
	lines = append(lines, hLine(box.bl, box.b, box.br))

	return strings.Join(lines, "\n") + "\n"
}

func padCell(text string, width int, align Align) string {
	pad := width - VisibleWidth(text)
	if pad <= 0 {
		return text
	}
	switch align {
	case AlignRight:
		return spaces(pad) + text
	case AlignCenter:
		left := pad / 2
		return spaces(left) + text + spaces(pad-left)
	default:
		return text + spaces(pad)
	}
}
