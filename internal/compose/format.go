package compose

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// formatNumber renders v with no decimals and thousands separators
func formatNumber(v float64) string {
	return printer.Sprintf("%d", int64(math.Round(v)))
}

// formatMultiplier renders a factor such as a time scale as "5x" or "1.4x",
// rounded to at most two decimals with trailing zeros dropped
func formatMultiplier(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64) + "x"
}

// formatPercent renders a 0.0-1.0 fraction as a whole percentage
func formatPercent(fraction float64) string {
	return formatNumber(fraction*100) + "%"
}

func formatHours(h float64) string {
	return formatNumber(h) + " h"
}

// formatDayTime renders milliseconds since midnight as HH:MM
func formatDayTime(ms int64) string {
	minutes := (ms / 60000) % (24 * 60)
	if minutes < 0 {
		minutes += 24 * 60
	}
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

func onOff(v bool) string {
	if v {
		return ValueOn
	}
	return ValueOff
}

// truncate shortens s to at most max runes, marking the cut
func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return strings.TrimSpace(string(runes[:max-1])) + ValueTruncated
}
