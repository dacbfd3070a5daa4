package main

import (
	"fmt"
	"os"

	"github.com/metsearch/collection-client/pkg/catalog"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBold   = "\033[1m"
)

func colorize(color, text string) string {
	if noColor {
		return text
	}
	return color + text + colorReset
}

func printSuccess(format string, args ...any) {
	fmt.Fprintln(os.Stderr, colorize(colorGreen, "✓ "+fmt.Sprintf(format, args...)))
}

func printError(format string, args ...any) {
	fmt.Fprintln(os.Stderr, colorize(colorRed, "✗ "+fmt.Sprintf(format, args...)))
}

func printWarning(format string, args ...any) {
	fmt.Fprintln(os.Stderr, colorize(colorYellow, "⚠ "+fmt.Sprintf(format, args...)))
}

// rowWidths are the fixed column widths of the streaming result table.
var rowWidths = [4]int{8, 38, 26, 14}

// formatHeader renders the result table header.
func formatHeader() string {
	return fmt.Sprintf("%-*s  %-*s  %-*s  %-*s",
		rowWidths[0], "ID",
		rowWidths[1], "TITLE",
		rowWidths[2], "ARTIST",
		rowWidths[3], "DATE")
}

// formatRow renders one resolved document as a table row.
func formatRow(doc catalog.Document) string {
	return fmt.Sprintf("%-*d  %-*s  %-*s  %-*s",
		rowWidths[0], doc.ObjectID(),
		rowWidths[1], truncate(doc.Title(), rowWidths[1]),
		rowWidths[2], truncate(doc.Artist(), rowWidths[2]),
		rowWidths[3], truncate(doc.Date(), rowWidths[3]))
}

// truncate shortens s to max runes, ending with an ellipsis when cut.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 1 {
		return string(runes[:max])
	}
	return string(runes[:max-1]) + "…"
}
