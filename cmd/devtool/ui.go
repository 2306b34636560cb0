package main

import (
	"fmt"
	"io"
	"os"
)

const (
	colorGreen  = "\033[0;32m"
	colorRed    = "\033[0;31m"
	colorYellow = "\033[1;33m"
	colorBlue   = "\033[0;34m"
	colorReset  = "\033[0m"
)

// noColor follows https://no-color.org
var noColor = os.Getenv("NO_COLOR") != ""

func printLine(w io.Writer, color, symbol, format string, a ...any) {
	line := symbol + " " + fmt.Sprintf(format, a...)
	if !noColor {
		line = color + line + colorReset
	}
	fmt.Fprintln(w, line)
}

func PrintInfo(format string, a ...any)    { printLine(os.Stdout, colorBlue, "ℹ", format, a...) }
func PrintSuccess(format string, a ...any) { printLine(os.Stdout, colorGreen, "✓", format, a...) }
func PrintWarning(format string, a ...any) { printLine(os.Stdout, colorYellow, "⚠", format, a...) }
func PrintError(format string, a ...any)   { printLine(os.Stderr, colorRed, "✗", format, a...) }

func PrintHeader(title string) {
	fmt.Println()
	printLine(os.Stdout, colorYellow, "===", "%s ===", title)
}
