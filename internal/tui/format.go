package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/diogo/supportchat/internal/models"
)

// timeLayout is the 12-hour h:mm AM/PM caption format
const timeLayout = "3:04 PM"

// formatTime renders a message timestamp in local time
func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format(timeLayout)
}

// confidencePercent rounds a [0,1] confidence to a whole percentage
func confidencePercent(confidence float64) int {
	return int(math.Round(confidence * 100))
}

// Caption returns the line shown under a message bubble, for example
// "2:06 PM • 87% confidence".
func Caption(msg models.Message) string {
	return formatCaption(msg)
}

func formatCaption(msg models.Message) string {
	caption := formatTime(msg.Timestamp)
	if confidence, ok := msg.Confidence(); ok {
		suffix := fmt.Sprintf("%d%% confidence", confidencePercent(confidence))
		if caption == "" {
			return suffix
		}
		caption += " • " + suffix
	}
	return caption
}

// trimLines strips trailing padding that glamour adds to each line
func trimLines(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " ")
	}
	return strings.Join(lines, "\n")
}
