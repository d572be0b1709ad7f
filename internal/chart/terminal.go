package chart

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	pointRune     = '●'
	targetRune    = '┄'
	milestoneRune = '★'
)

var (
	savingsStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(SavingsColor)).Bold(true)
	targetStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color(TargetColor))
	milestoneStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD700")).Bold(true)
	axisStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#878580"))
	titleStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFCF0")).Bold(true)
)

// RenderTerminal draws the chart as text. width and height are the plot area
// in cells; small values are raised to a readable minimum.
func RenderTerminal(d Data, width, height int) string {
	if len(d.Savings.Y) == 0 {
		return ""
	}
	if height < 5 {
		height = 5
	}

	target := 0.0
	if len(d.Target.Y) > 0 {
		target = d.Target.Y[0]
	}
	maxVal := target
	for _, v := range d.Savings.Y {
		if v > maxVal {
			maxVal = v
		}
	}
	if maxVal <= 0 {
		maxVal = 1
	}
	tickStep := chartTickStep(maxVal)
	ceiling := math.Ceil(maxVal/tickStep) * tickStep

	yLabelW := len(formatChartLabel(ceiling)) + 1
	if yLabelW < 4 {
		yLabelW = 4
	}
	chartW := width - yLabelW - 1
	if chartW < 10 {
		chartW = 10
	}

	n := len(d.Savings.Y)
	cols := n
	if cols > chartW {
		cols = chartW
	}
	// column -> month index, sampled evenly when there are more months than columns
	colMonth := make([]int, cols)
	for c := range colMonth {
		if cols == 1 {
			colMonth[c] = 0
			continue
		}
		colMonth[c] = c * (n - 1) / (cols - 1)
	}

	rowOf := func(v float64) int {
		r := int(math.Round(v / ceiling * float64(height-1)))
		if r < 0 {
			return 0
		}
		if r > height-1 {
			return height - 1
		}
		return r
	}

	grid := make([][]rune, height)
	for r := range grid {
		grid[r] = []rune(strings.Repeat(" ", cols))
	}
	targetRow := rowOf(target)
	for c := 0; c < cols; c++ {
		grid[targetRow][c] = targetRune
	}
	for c, m := range colMonth {
		grid[rowOf(d.Savings.Y[m])][c] = pointRune
	}
	if ms := d.Milestone; ms != nil && len(ms.X) == 1 {
		col := 0
		for c, m := range colMonth {
			if m <= ms.X[0] {
				col = c
			}
		}
		grid[rowOf(ms.Y[0])][col] = milestoneRune
	}

	tickLabels := make(map[int]string)
	for v := tickStep; v <= ceiling+tickStep/2; v += tickStep {
		tickLabels[rowOf(v)] = formatChartLabel(v)
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Savings Trajectory Over Time"))
	b.WriteString("\n\n")
	for r := height - 1; r >= 0; r-- {
		b.WriteString(axisStyle.Render(fmt.Sprintf("%*s", yLabelW, tickLabels[r])))
		b.WriteString(axisStyle.Render("│"))
		for _, ch := range grid[r] {
			switch ch {
			case pointRune:
				b.WriteString(savingsStyle.Render(string(ch)))
			case targetRune:
				b.WriteString(targetStyle.Render(string(ch)))
			case milestoneRune:
				b.WriteString(milestoneStyle.Render(string(ch)))
			default:
				b.WriteRune(ch)
			}
		}
		b.WriteString("\n")
	}

	b.WriteString(axisStyle.Render(fmt.Sprintf("%*s", yLabelW, "0")))
	b.WriteString(axisStyle.Render("└" + strings.Repeat("─", cols)))
	b.WriteString("\n")

	// x-axis: first and last month
	first := "0"
	last := strconv.Itoa(n - 1)
	gap := cols - len(first) - len(last)
	axis := first
	if n > 1 && gap > 0 {
		axis += strings.Repeat(" ", gap) + last
	}
	b.WriteString(strings.Repeat(" ", yLabelW+1))
	b.WriteString(axisStyle.Render(axis))
	b.WriteString("  ")
	b.WriteString(axisStyle.Render("Months"))
	b.WriteString("\n\n")

	b.WriteString(savingsStyle.Render(string(pointRune)) + " " + d.Savings.Name + "   ")
	b.WriteString(targetStyle.Render(string(targetRune)) + " " + d.Target.Name)
	if d.Milestone != nil {
		b.WriteString("   " + milestoneStyle.Render(string(milestoneRune)) + " " + d.Milestone.Label)
	}
	b.WriteString("\n")
	return b.String()
}

// chartTickStep computes a nice tick interval targeting ~5 ticks.
func chartTickStep(maxVal float64) float64 {
	if maxVal <= 0 {
		return 1
	}
	rough := maxVal / 5
	exp := math.Floor(math.Log10(rough))
	base := math.Pow(10, exp)
	frac := rough / base

	switch {
	case frac < 1.5:
		return base
	case frac < 3.5:
		return 2 * base
	default:
		return 5 * base
	}
}

func formatChartLabel(v float64) string {
	switch {
	case v >= 1e6:
		if v == math.Trunc(v/1e6)*1e6 {
			return fmt.Sprintf("%.0fM", v/1e6)
		}
		return fmt.Sprintf("%.1fM", v/1e6)
	case v >= 1e3:
		if v == math.Trunc(v/1e3)*1e3 {
			return fmt.Sprintf("%.0fk", v/1e3)
		}
		return fmt.Sprintf("%.1fk", v/1e3)
	case v >= 1:
		return fmt.Sprintf("%.0f", v)
	default:
		return fmt.Sprintf("%.2f", v)
	}
}
