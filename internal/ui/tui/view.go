package tui

import (
	"fmt"
	"strings"
	"time"
)

func renderView(m Model, now time.Time) string {
	var b strings.Builder

	renderHeader(&b, m)
	renderProgressBar(&b, m, now)
	renderRecent(&b, m)
	if len(m.Failures) > 0 {
		renderFailures(&b, m)
	}
	renderFooter(&b, m, now)

	return b.String()
}

func renderHeader(b *strings.Builder, m Model) {
	b.WriteString(titleStyle.Render(fmt.Sprintf("ecsdeploy publish: %s -> s3://%s", m.App, m.Bucket)))

	status := " "
	switch {
	case m.Err != nil:
		status += failedStyle.Render(fmt.Sprintf("Error: %v", m.Err))
	case m.Done:
		status += readyStyle.Render("Published")
	default:
		status += activeStyle.Render(currentSpinner(m.SpinnerFrame))
	}
	b.WriteString(status)
	b.WriteString("\n")

	if m.Prefix != "" {
		b.WriteString(dimStyle.Render("  " + m.Prefix))
		b.WriteString("\n")
	}
}

func renderProgressBar(b *strings.Builder, m Model, now time.Time) {
	progress := m.Progress()
	barWidth := 40
	if m.Width > 0 && m.Width < 80 {
		barWidth = max(m.Width-30, 10)
	}
	filled := min(int(float64(barWidth)*progress), barWidth)

	bar := progressBarFull.Render(strings.Repeat("█", filled)) +
		progressBarEmpty.Render(strings.Repeat("░", barWidth-filled))

	eta := ""
	if remaining := m.EstimatedRemaining(now); remaining > 0 {
		eta = fmt.Sprintf(" ETA %s", formatDuration(remaining))
	}

	fmt.Fprintf(b, "  %s %d%%  %d/%d files  %s/%s%s\n",
		bar, int(progress*100), m.Uploaded, m.Files, formatBytes(m.BytesDone), formatBytes(m.Bytes), eta)
}

func renderRecent(b *strings.Builder, m Model) {
	if len(m.Recent) == 0 {
		return
	}
	b.WriteString(sectionStyle.Render("  Uploaded"))
	b.WriteString("\n")
	for _, key := range m.Recent {
		fmt.Fprintf(b, "    %s %s\n", readyStyle.Render(checkMark), strings.TrimPrefix(key, m.Prefix+"/"))
	}
}

func renderFailures(b *strings.Builder, m Model) {
	b.WriteString(sectionStyle.Render("  Failed"))
	b.WriteString("\n")
	for _, f := range m.Failures {
		fmt.Fprintf(b, "    %s %s %s\n", failedStyle.Render(crossMark), f.Key, dimStyle.Render(f.Err.Error()))
	}
}

func renderFooter(b *strings.Builder, m Model, now time.Time) {
	parts := []string{fmt.Sprintf("elapsed: %s", formatDuration(now.Sub(m.StartTime)))}
	if m.Latest != "" {
		parts = append(parts, "latest: "+m.Latest)
	}
	b.WriteString(footerStyle.Render(fmt.Sprintf("  %s  |  q: quit", strings.Join(parts, "  |  "))))
	b.WriteString("\n")
}

func currentSpinner(frame int) string {
	if frame < 0 {
		frame = -frame
	}
	return spinnerFrames[frame%len(spinnerFrames)]
}

func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm%ds", int(d.Minutes()), int(d.Seconds())%60)
	}
	return fmt.Sprintf("%dh%dm", int(d.Hours()), int(d.Minutes())%60)
}

func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%dB", n)
	}
	div, exp := int64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f%ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
