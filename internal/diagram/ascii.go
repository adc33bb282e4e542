package diagram

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/guptarohit/asciigraph"
)

// DrawCurve renders the engineering curve as a terminal chart. Stress is
// resampled onto an evenly spaced strain axis so the horizontal scale is
// linear in strain.
func DrawCurve(data CurveDiagramData, width, height int) string {
	if len(data.Stress) == 0 {
		return ""
	}

	series := resample(data.Strain, data.Stress, width)
	caption := fmt.Sprintf("%s: stress (MPa) vs strain 0 → %.3f", data.title(), data.Strain[len(data.Strain)-1])

	var sb strings.Builder
	sb.WriteString("\n")
	sb.WriteString(asciigraph.Plot(series,
		asciigraph.Height(height),
		asciigraph.Precision(0),
		asciigraph.Caption(caption),
	))
	sb.WriteString("\n")

	// Key points
	sb.WriteString("\n")
	if data.YieldFound {
		sb.WriteString(fmt.Sprintf("  ● Yield (%.1f%% offset): σ = %.1f MPa at ε = %.4f\n", data.Offset*100, data.YieldStress, data.YieldStrain))
	} else {
		sb.WriteString("  ○ Yield: offset line not crossed, last sample reported\n")
	}
	sb.WriteString(fmt.Sprintf("  ■ UTS: σ = %.1f MPa at ε = %.4f\n", data.UTS, data.UTSStrain))

	return sb.String()
}

// resample interpolates y linearly at n evenly spaced x positions between the
// first and last sample. x is expected in ascending order.
func resample(x, y []float64, n int) []float64 {
	if len(x) < 2 || n < 2 {
		return append([]float64(nil), y...)
	}

	lo, hi := x[0], x[len(x)-1]
	out := make([]float64, n)
	j := 0
	for k := range out {
		target := lo + (hi-lo)*float64(k)/float64(n-1)
		for j < len(x)-2 && x[j+1] < target {
			j++
		}

		x0, x1 := x[j], x[j+1]
		if x1 == x0 {
			out[k] = y[j]
			continue
		}
		t := min(max((target-x0)/(x1-x0), 0), 1)
		out[k] = y[j] + t*(y[j+1]-y[j])
	}
	return out
}

// DrawSummaryBox creates a summary box for results
func DrawSummaryBox(title string, lines []string) string {
	var sb strings.Builder

	maxLen := utf8.RuneCountInString(title)
	for _, line := range lines {
		if n := utf8.RuneCountInString(line); n > maxLen {
			maxLen = n
		}
	}
	maxLen += 4

	border := strings.Repeat("═", maxLen)
	sb.WriteString(fmt.Sprintf("  ╔%s╗\n", border))
	sb.WriteString(fmt.Sprintf("  ║  %-*s  ║\n", maxLen-4, title))
	sb.WriteString(fmt.Sprintf("  ╠%s╣\n", border))
	for _, line := range lines {
		sb.WriteString(fmt.Sprintf("  ║  %-*s  ║\n", maxLen-4, line))
	}
	sb.WriteString(fmt.Sprintf("  ╚%s╝\n", border))

	return sb.String()
}
