package ui

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Note writes a boxed message with an optional title to w
func Note(w io.Writer, message string, title string) {
	lines := strings.Split(WrapNoteMessage(message, 72), "\n")

	maxWidth := VisibleWidth(title) + 2
	for _, line := range lines {
		if lw := VisibleWidth(line); lw > maxWidth {
			maxWidth = lw
		}
	}
	boxWidth := maxWidth + 2

	if title != "" {
		fmt.Fprintf(w, "%s%s %s %s%s\n",
			Muted(boxTopLeft),
			Muted(boxHorizontal),
			Heading("%s", title),
			Muted("%s", strings.Repeat(boxHorizontal, boxWidth-3-VisibleWidth(title))),
			Muted(boxTopRight))
	} else {
		fmt.Fprintln(w, Muted("%s", boxTopLeft+strings.Repeat(boxHorizontal, boxWidth)+boxTopRight))
	}

	for _, line := range lines {
		fmt.Fprintf(w, "%s %s%s %s\n",
			Muted(boxVertical),
			line,
			spaces(boxWidth-VisibleWidth(line)-2),
			Muted(boxVertical))
	}

	fmt.Fprintln(w, Muted("%s", boxBottomLeft+strings.Repeat(boxHorizontal, boxWidth)+boxBottomRight))
}

// WrapNoteMessage wraps text to the terminal width, capped at maxWidth
func WrapNoteMessage(message string, maxWidth int) string {
	columns := 80
	if n, err := strconv.Atoi(os.Getenv("COLUMNS")); err == nil && n > 0 {
		columns = n
	}

	width := columns - 10
	if width > maxWidth {
		width = maxWidth
	}
	if width < 40 {
		width = 40
	}

	var outputLines []string
	for _, line := range strings.Split(message, "\n") {
		outputLines = append(outputLines, wrapLine(line, width)...)
	}
	return strings.Join(outputLines, "\n")
}

func wrapLine(line string, maxWidth int) []string {
	words := strings.Fields(line)
	if len(words) == 0 {
		return []string{""}
	}

	var lines []string
	current := ""
	for _, word := range words {
		candidate := word
		if current != "" {
			candidate = current + " " + word
		}
		if VisibleWidth(candidate) <= maxWidth || current == "" {
			current = candidate
			continue
		}
		lines = append(lines, current)
		current = word
	}
	return append(lines, current)
}

// WarningNote writes a warning-styled note
func WarningNote(w io.Writer, message string) {
	Note(w, message, "⚠ Warning")
}

// SuccessNote writes a success-styled note
func SuccessNote(w io.Writer, message string) {
	Note(w, message, "✓ Pass")
}
