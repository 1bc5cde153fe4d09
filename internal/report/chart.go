package report

import (
	"math"
	"strconv"
	"strings"
)

// Bar is one row of a horizontal bar chart.
type Bar struct {
	Label string
	Value int
}

const (
	minBarWidth = 4
	barGlyph    = "█"
	barSpacing  = 2
	colorReset  = "\x1b[0m"
)

// cyan, magenta, yellow, green, blue
var colorPalette = []string{"\x1b[36m", "\x1b[35m", "\x1b[33m", "\x1b[32m", "\x1b[34m"}

var sparkGlyphs = []rune("▁▂▃▄▅▆▇█")

// BarWidthFor computes the room left for bars after the label and value columns.
func BarWidthFor(totalWidth, labelWidth, valueWidth int) int {
	if totalWidth <= 0 {
		totalWidth = terminalWidthBackup
	}
	w := totalWidth - labelWidth - valueWidth - 2*barSpacing
	if w < minBarWidth {
		w = minBarWidth
	}
	return w
}

// RenderBars lays out label, value and a bar scaled to the largest value.
func RenderBars(rows []Bar, width int, useColor bool) []string {
	if len(rows) == 0 {
		return nil
	}
	labelWidth, valueWidth, maxVal := 0, 0, 0
	for _, r := range rows {
		if w := displayWidth(r.Label); w > labelWidth {
			labelWidth = w
		}
		if w := len(strconv.Itoa(r.Value)); w > valueWidth {
			valueWidth = w
		}
		if r.Value > maxVal {
			maxVal = r.Value
		}
	}
	barWidth := BarWidthFor(width, labelWidth, valueWidth)
	gap := strings.Repeat(" ", barSpacing)

	lines := make([]string, 0, len(rows))
	for i, r := range rows {
		bar := strings.Repeat(barGlyph, barLength(r.Value, maxVal, barWidth))
		if useColor && bar != "" {
			bar = colorPalette[i%len(colorPalette)] + bar + colorReset
		}
		line := padCell(r.Label, labelWidth, false) + gap + padCell(strconv.Itoa(r.Value), valueWidth, true) + gap + bar
		lines = append(lines, strings.TrimRight(line, " "))
	}
	return lines
}

func barLength(v, maxVal, width int) int {
	if v <= 0 || maxVal <= 0 {
		return 0
	}
	n := int(math.Round(float64(v) / float64(maxVal) * float64(width)))
	if n < 1 {
		n = 1
	}
	return n
}

// Sparkline renders values on a fixed 0..maxValue scale, one glyph per value.
// Longer series are averaged down to width glyphs.
func Sparkline(values []int, maxValue, width int) string {
	if len(values) == 0 || maxValue <= 0 {
		return ""
	}
	points := resample(values, width)
	var b strings.Builder
	top := len(sparkGlyphs) - 1
	for _, v := range points {
		idx := int(math.Round(v / float64(maxValue) * float64(top)))
		if idx < 0 {
			idx = 0
		}
		if idx > top {
			idx = top
		}
		b.WriteRune(sparkGlyphs[idx])
	}
	return b.String()
}

func resample(values []int, width int) []float64 {
	if width <= 0 || len(values) <= width {
		out := make([]float64, len(values))
		for i, v := range values {
			out[i] = float64(v)
		}
		return out
	}
	out := make([]float64, width)
	for i := 0; i < width; i++ {
		start := i * len(values) / width
		end := (i + 1) * len(values) / width
		if end <= start {
			end = start + 1
		}
		var sum float64
		for _, v := range values[start:end] {
			sum += float64(v)
		}
		out[i] = sum / float64(end-start)
	}
	return out
}
