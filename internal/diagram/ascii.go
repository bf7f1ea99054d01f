package diagram

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"
)

const (
	asciiWidth     = 30
	asciiMinHeight = 8
	asciiMaxHeight = 24
)

// DrawASCIISection creates an ASCII cross-section of one station with the
// bars in place and the arrangement noted on the right
func DrawASCIISection(data SectionData) string {
	var sb strings.Builder

	height := asciiHeight(data.Width, data.Depth)
	rows := make([][]rune, height+1)
	notes := make([]string, height+1)
	for i := 1; i < height; i++ {
		rows[i] = []rune(strings.Repeat(" ", asciiWidth))
	}

	for i, l := range data.Top {
		r := 1 + i
		if r >= height/2 {
			break
		}
		placeBars(rows[r], l.Bars)
		notes[r] = fmt.Sprintf("%dT%g", l.Bars, l.Diameter)
	}
	for i, l := range data.Bottom {
		r := height - 1 - i
		if r <= height/2 {
			break
		}
		placeBars(rows[r], l.Bars)
		notes[r] = fmt.Sprintf("%dT%g", l.Bars, l.Diameter)
	}

	if data.SideBars > 0 {
		first := 1 + len(data.Top)
		last := height - 1 - len(data.Bottom)
		free := last - first + 1
		n := min(data.SideBars, free)
		for k := 1; k <= n; k++ {
			r := first + k*free/(n+1)
			rows[r][1] = '●'
			rows[r][asciiWidth-2] = '●'
			if k == 1 {
				notes[r] = data.SideLabel
			}
		}
	}

	if data.LinkLabel != "" {
		mid := height / 2
		if notes[mid] == "" {
			notes[mid] = "links " + data.LinkLabel
		}
	}

	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("  %s, %s station (%g × %g mm)\n", data.Name, data.Station, data.Width, data.Depth))
	sb.WriteString("  " + strings.Repeat("─", asciiWidth+2) + "\n")

	for i := 0; i <= height; i++ {
		switch i {
		case 0:
			sb.WriteString(fmt.Sprintf("  ┌%s┐", strings.Repeat("─", asciiWidth)))
		case height:
			sb.WriteString(fmt.Sprintf("  └%s┘", strings.Repeat("─", asciiWidth)))
		default:
			sb.WriteString(fmt.Sprintf("  │%s│", string(rows[i])))
		}
		if notes[i] != "" {
			sb.WriteString(" ◄─ " + notes[i])
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("  Top:       %s\n", data.TopLabel))
	sb.WriteString(fmt.Sprintf("  Bottom:    %s\n", data.BottomLabel))
	sb.WriteString(fmt.Sprintf("  Links:     %s\n", data.LinkLabel))
	sb.WriteString(fmt.Sprintf("  Side face: %s\n", data.SideLabel))
	if data.State != "" {
		sb.WriteString(fmt.Sprintf("  State:     %s\n", data.State))
	}

	return sb.String()
}

// asciiHeight keeps the drawn proportions, allowing for characters being
// about twice as tall as they are wide
func asciiHeight(width, depth float64) int {
	if width <= 0 || depth <= 0 {
		return asciiMinHeight
	}
	h := int(math.Round(asciiWidth * depth / width / 2))
	return min(max(h, asciiMinHeight), asciiMaxHeight)
}

// placeBars spreads n bars across one row inside the stirrups
func placeBars(row []rune, n int) {
	w := len(row)
	n = min(n, w-4)
	switch {
	case n <= 0:
		return
	case n == 1:
		row[w/2] = '●'
		return
	}
	for i := 0; i < n; i++ {
		row[2+i*(w-5)/(n-1)] = '●'
	}
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
	sb.WriteString(fmt.Sprintf("  ║  %s  ║\n", pad(title, maxLen-4)))
	sb.WriteString(fmt.Sprintf("  ╠%s╣\n", border))
	for _, line := range lines {
		sb.WriteString(fmt.Sprintf("  ║  %s  ║\n", pad(line, maxLen-4)))
	}
	sb.WriteString(fmt.Sprintf("  ╚%s╝\n", border))

	return sb.String()
}

func pad(s string, width int) string {
	if n := utf8.RuneCountInString(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}
