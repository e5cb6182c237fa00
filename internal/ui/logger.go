package ui

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fatih/color"
)

var (
	clrDim    = color.New(color.FgHiBlack)
	clrSubtle = color.New(color.FgWhite)
	clrAccent = color.New(color.FgCyan, color.Bold)

	clrSuccess = color.New(color.FgGreen)
	clrError   = color.New(color.FgRed)
	clrWarning = color.New(color.FgYellow)
	clrInfo    = color.New(color.FgBlue)

	badgePrimary = color.New(color.BgMagenta, color.FgWhite, color.Bold)
)

// Box-drawing characters
const (
	boxTopLeft     = "╭"
	boxTopRight    = "╮"
	boxBottomLeft  = "╰"
	boxBottomRight = "╯"
	boxHorizontal  = "─"
	boxVertical    = "│"
)

var (
	outMu sync.Mutex
	out   io.Writer = color.Error

	debug atomic.Bool
)

// SetOutput redirects log output. Defaults to stderr.
func SetOutput(w io.Writer) {
	outMu.Lock()
	defer outMu.Unlock()
	out = w
}

// SetDebug toggles printing of "debug" status lines
func SetDebug(enabled bool) {
	debug.Store(enabled)
}

// DebugEnabled reports whether debug lines are printed
func DebugEnabled() bool {
	return debug.Load()
}

func printf(format string, a ...interface{}) {
	outMu.Lock()
	defer outMu.Unlock()
	fmt.Fprintf(out, format, a...)
}

// PrintBanner displays the boxed product header
func PrintBanner(version string) {
	badge := badgePrimary.Sprint(" ◆ PALETTE ")
	ver := clrDim.Sprint(version)
	subtitle := "Color palettes with WCAG contrast checks"

	printf("\n")
	printf("%s\n", clrDim.Sprint(boxTopLeft+strings.Repeat(boxHorizontal, 60)+boxTopRight))
	printf("%s  %s %s%s\n",
		clrDim.Sprint(boxVertical),
		badge,
		ver,
		clrDim.Sprint(strings.Repeat(" ", 60-2-VisibleWidth(badge)-1-len(version))+boxVertical))
	printf("%s  %s%s\n",
		clrDim.Sprint(boxVertical),
		clrSubtle.Sprint(subtitle),
		clrDim.Sprint(strings.Repeat(" ", 60-2-len(subtitle))+boxVertical))
	printf("%s\n\n", clrDim.Sprint(boxBottomLeft+strings.Repeat(boxHorizontal, 60)+boxBottomRight))
}

// LogStatus displays a status message with appropriate styling
func LogStatus(category, message string) {
	if category == "debug" && !debug.Load() {
		return
	}

	ts := clrDim.Sprint(time.Now().Format("15:04:05"))

	var icon string
	var styledMsg string

	switch category {
	case "success":
		icon = clrSuccess.Sprint("✔")
		styledMsg = clrSuccess.Sprint(message)
	case "error":
		icon = clrError.Sprint("✖")
		styledMsg = clrError.Sprint(message)
	case "warning", "warn":
		icon = clrWarning.Sprint("⚠")
		styledMsg = clrWarning.Sprint(message)
	case "info":
		icon = clrInfo.Sprint("ℹ")
		styledMsg = clrSubtle.Sprint(message)
	case "debug":
		icon = clrDim.Sprint("·")
		styledMsg = clrDim.Sprint(message)
	default:
		icon = clrDim.Sprint("●")
		styledMsg = clrSubtle.Sprint(message)
	}

	printf("%s  %s  %s\n", ts, icon, styledMsg)
}

// LogRequest shows one handled API request
func LogRequest(method, path string, status int, took time.Duration) {
	ts := clrDim.Sprint(time.Now().Format("15:04:05"))

	statusClr := clrSuccess
	if status >= 400 {
		statusClr = clrWarning
	}
	if status >= 500 {
		statusClr = clrError
	}

	printf("%s  %s  %s %s  %s  %s\n",
		ts,
		clrSuccess.Sprint("→"),
		clrAccent.Sprintf("%-6s", method),
		clrSubtle.Sprintf("%-22s", path),
		statusClr.Sprintf("%d", status),
		clrDim.Sprint(took.Round(time.Microsecond).String()))
}

// LogGracefulShutdown notes that the process is stopping
func LogGracefulShutdown() {
	LogStatus("warning", "Shutting down gracefully...")
}
