package subtitles

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/forPelevin/smartcut/internal/types"
)

// RenderSRT formats caption lines as an SRT document.
func RenderSRT(lines []types.SubtitleLine) string {
	var b strings.Builder
	for i, line := range lines {
		b.WriteString(strconv.Itoa(i + 1))
		b.WriteString("\n")
		b.WriteString(formatSRTTimestamp(line.Start))
		b.WriteString(" --> ")
		b.WriteString(formatSRTTimestamp(line.End))
		b.WriteString("\n")
		b.WriteString(line.Text)
		b.WriteString("\n\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// ParseSRT reads an SRT document back into caption lines. Malformed blocks
// are skipped.
func ParseSRT(content string) []types.SubtitleLine {
	var out []types.SubtitleLine

	content = strings.ReplaceAll(content, "\r\n", "\n")
	for _, block := range strings.Split(strings.TrimSpace(content), "\n\n") {
		rows := strings.Split(strings.TrimSpace(block), "\n")
		if len(rows) < 3 {
			continue
		}
		tsRow := rows[1]
		sep := strings.Index(tsRow, " --> ")
		if sep < 0 {
			continue
		}
		start, okS := parseSRTTimestamp(tsRow[:sep])
		end, okE := parseSRTTimestamp(tsRow[sep+len(" --> "):])
		if !okS || !okE {
			continue
		}
		out = append(out, types.SubtitleLine{
			Start: start,
			End:   end,
			Text:  strings.Join(rows[2:], " "),
		})
	}
	return out
}

func formatSRTTimestamp(sec float64) string {
	if sec < 0 {
		sec = 0
	}
	total := int(sec)
	millis := int((sec - float64(total)) * 1000)
	return fmt.Sprintf("%02d:%02d:%02d,%03d", total/3600, (total%3600)/60, total%60, millis)
}

func parseSRTTimestamp(ts string) (float64, bool) {
	ts = strings.ReplaceAll(strings.TrimSpace(ts), ",", ".")
	parts := strings.Split(ts, ":")
	if len(parts) != 3 {
		return 0, false
	}
	hours, err1 := strconv.Atoi(parts[0])
	minutes, err2 := strconv.Atoi(parts[1])
	seconds, err3 := strconv.ParseFloat(parts[2], 64)
	if err1 != nil || err2 != nil || err3 != nil {
		return 0, false
	}
	return float64(hours)*3600 + float64(minutes)*60 + seconds, true
}
