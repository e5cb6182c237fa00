package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"color-palette/internal/api"
	"color-palette/internal/colorutil"
	"color-palette/internal/metrics"
	"color-palette/internal/ui"
)

const swatchWidth = 8

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// swatch draws c with its own hex on top in the readable text color.
func swatch(c colorutil.RGB) string {
	t := colorutil.ReadableText(c)
	return ui.Swatch(c.R, c.G, c.B, swatchWidth+2, c.Hex(), t.R, t.G, t.B)
}

func newRandomCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "random",
		Short: "Print a random color",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			hex := colorutil.RandomColor(a.source)
			metrics.ColorsGenerated.Inc()

			out := cmd.OutOrStdout()
			if a.jsonOut {
				return printJSON(out, map[string]string{"color": hex})
			}
			fmt.Fprintln(out, swatch(colorutil.MustHex(hex)))
			return nil
		},
	}
}

func newPaletteCmd(a *app) *cobra.Command {
	var copyOut bool

	cmd := &cobra.Command{
		Use:   "palette [base]",
		Short: "Print five colors near a base color (random when omitted)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var base string
			if len(args) == 1 {
				base = args[0]
			}

			p, err := colorutil.HarmoniousPalette(a.source, base)
			if err != nil {
				return err
			}
			metrics.PalettesGenerated.Inc()

			spread, err := p.Spread()
			if err != nil {
				return err
			}
			grid, err := p.ContrastGrid()
			if err != nil {
				return err
			}

			if copyOut {
				ok := colorutil.CopyToClipboard(cmd.Context(), a.sink, strings.Join(p[:], ", "))
				metrics.ObserveClipboard(ok)
				if ok {
					ui.LogStatus("success", "Palette copied to clipboard")
				}
			}

			out := cmd.OutOrStdout()
			if a.jsonOut {
				return printJSON(out, api.PaletteResponse{Colors: p[:], Spread: spread})
			}

			rows := make([][]string, 0, len(p))
			strip := make([][3]uint8, 0, len(p))
			for i, h := range p {
				c := colorutil.MustHex(h)
				strip = append(strip, [3]uint8{c.R, c.G, c.B})
				label := "variant"
				if i == 0 {
					label = "base"
				}
				rows = append(rows, []string{
					fmt.Sprintf("%d", i+1),
					label,
					swatch(c),
					c.String(),
					fmt.Sprintf("%.4f", colorutil.Luminance(c)),
					fmt.Sprintf("%.2f:1", grid[0][i]),
				})
			}
			fmt.Fprint(out, ui.RenderTable(ui.RenderTableOptions{
				Columns: []ui.TableColumn{
					{Header: "#", Align: ui.AlignRight},
					{Header: "Role"},
					{Header: "Color", Align: ui.AlignCenter},
					{Header: "RGB"},
					{Header: "Luminance", Align: ui.AlignRight},
					{Header: "vs base", Align: ui.AlignRight},
				},
				Rows: rows,
			}))
			fmt.Fprintf(out, "  %s %s\n", ui.SwatchStrip(strip, 4), ui.Muted("around %s", p.Base()))
			fmt.Fprintf(out, "  %s %s\n", ui.Muted("spread (ΔE2000):"), ui.Bold("%.2f", spread))
			return nil
		},
	}

	cmd.Flags().BoolVar(&copyOut, "copy", false, "Copy the palette to the clipboard")
	return cmd
}

func newContrastCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "contrast <color> <color>",
		Short: "Print the WCAG contrast ratio of two colors",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ratio, err := colorutil.Contrast(args[0], args[1])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if a.jsonOut {
				return printJSON(out, api.ContrastResponse{Ratio: ratio})
			}
			fmt.Fprintf(out, "%.2f:1\n", ratio)
			return nil
		},
	}
}

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check <foreground> <background>",
		Short: "Grade a text/background pair against WCAG AA and AAA",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := colorutil.CheckAccessibility(args[0], args[1])
			if err != nil {
				return err
			}
			metrics.AccessibilityChecks.WithLabelValues(string(v.Level)).Inc()

			out := cmd.OutOrStdout()
			if a.jsonOut {
				return printJSON(out, v)
			}

			fg, bg := colorutil.MustHex(args[0]), colorutil.MustHex(args[1])
			sample := ui.Swatch(bg.R, bg.G, bg.B, 16, "Sample text", fg.R, fg.G, fg.B)
			fmt.Fprint(out, ui.RenderTable(ui.RenderTableOptions{
				Columns: []ui.TableColumn{
					{Header: "Sample", Align: ui.AlignCenter},
					{Header: "Contrast", Align: ui.AlignRight},
					{Header: "AA", Align: ui.AlignCenter},
					{Header: "AAA", Align: ui.AlignCenter},
					{Header: "Level", Align: ui.AlignCenter},
				},
				Rows: [][]string{{sample, v.Contrast + ":1", passMark(v.PassesAA), passMark(v.PassesAAA), ui.Level(string(v.Level))}},
			}))

			switch v.Level {
			case colorutil.LevelFail:
				ui.WarningNote(out, fmt.Sprintf("%s on %s is %s:1, below the %.1f:1 WCAG AA minimum for body text.",
					fg.Hex(), bg.Hex(), v.Contrast, colorutil.ThresholdAA))
			default:
				ui.SuccessNote(out, fmt.Sprintf("%s on %s is %s:1 and meets WCAG %s for body text.",
					fg.Hex(), bg.Hex(), v.Contrast, v.Level))
			}
			return nil
		},
	}
}

func passMark(ok bool) string {
	if ok {
		return ui.Success("✔")
	}
	return ui.Error("✖")
}

func newDescribeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "describe <color>",
		Short: "Show a color as hex, RGB and HSL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := colorutil.Describe(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if a.jsonOut {
				return printJSON(out, d)
			}

			fmt.Fprintln(out, swatch(d.RGB))
			for _, kv := range [][2]string{
				{"hex", d.Hex},
				{"rgb", d.RGB.String()},
				{"hsl", fmt.Sprintf("hsl(%d, %d%%, %d%%)", d.HSL.H, d.HSL.S, d.HSL.L)},
				{"luminance", fmt.Sprintf("%.4f", d.Luminance)},
				{"text", d.TextColor},
			} {
				fmt.Fprintf(out, "  %s %s\n", ui.Muted("%s", ui.PadRight(kv[0]+":", 11)), ui.Subtle("%s", kv[1]))
			}
			return nil
		},
	}
}
