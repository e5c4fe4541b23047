package status

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/bnema/levent-cli/internal/application"
	"github.com/charmbracelet/lipgloss"
)

const barWidth = 20

type RenderOptions struct {
	Now time.Time
}

func renderView(status application.ProgressStatus, opts RenderOptions, s styles) string {
	lines := []string{
		s.title.Render("LeVent James Check-In"),
		s.header.Render(fmt.Sprintf("today: %s", dateLabel(status.Today.String()))),
		s.section.Render(checkInLine(status, opts, s)),
		streakLine(status, s),
		milestoneLine(status, s),
		s.section.Render(s.meta.Render(fmt.Sprintf("total check-ins: %d  total interactions: %d", status.TotalCheckIns, status.TotalInteractions))),
		s.meta.Render(fmt.Sprintf("last check-in: %s", dateLabel(status.LastCheckInDate.String()))),
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func checkInLine(status application.ProgressStatus, opts RenderOptions, s styles) string {
	done := status.TodayInteractions
	if done > status.RequiredInteractions {
		done = status.RequiredInteractions
	}

	percent := 0.0
	if status.RequiredInteractions > 0 {
		percent = float64(done) / float64(status.RequiredInteractions) * 100
	}

	parts := []string{
		s.key.Render("check-in:"),
		" ",
		renderProgressBar(percent, barWidth, s),
		" ",
		lipgloss.NewStyle().Foreground(interpolateColor(percent, 0, 100)).Render(fmt.Sprintf("%d/%d", done, status.RequiredInteractions)),
		" ",
	}
	if status.CheckInComplete {
		parts = append(parts, s.complete.Render("complete"))
	} else {
		parts = append(parts, s.detail.Render(fmt.Sprintf("(%d to go)", status.RemainingInteractions())))
	}
	if !opts.Now.IsZero() {
		parts = append(parts, " ", s.meta.Render(fmt.Sprintf("(%s)", formatDayRollover(opts.Now))))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func streakLine(status application.ProgressStatus, s styles) string {
	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.key.Render("streak:"),
		" ",
		s.highlight.Render(pluralDays(status.CurrentStreak)),
		" ",
		s.meta.Render(fmt.Sprintf("(best %s)", pluralDays(status.LongestStreak))),
	)
}

func milestoneLine(status application.ProgressStatus, s styles) string {
	if status.NextMilestone == 0 {
		return s.complete.Render("every milestone reached")
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.key.Render("next milestone:"),
		" ",
		s.detail.Render(pluralDays(status.NextMilestone)),
		" ",
		s.meta.Render(fmt.Sprintf("(%d to go)", status.NextMilestone-status.CurrentStreak)),
	)
}

func renderProgressBar(percent float64, width int, s styles) string {
	if width <= 0 {
		return ""
	}

	filled := int(math.Round(float64(width) * clampPercent(percent) / 100))
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.barBracket.Render("["),
		s.barFill.Render(strings.Repeat("=", filled)),
		s.barEmpty.Render(strings.Repeat("-", width-filled)),
		s.barBracket.Render("]"),
	)
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// formatDayRollover describes when today's counter resets.
func formatDayRollover(now time.Time) string {
	year, month, day := now.Date()
	midnight := time.Date(year, month, day+1, 0, 0, 0, 0, now.Location())

	hours := int(math.Ceil(midnight.Sub(now).Hours()))
	if hours < 1 {
		hours = 1
	}
	suffix := "hours"
	if hours == 1 {
		suffix = "hour"
	}

	return fmt.Sprintf("new day in %d %s", hours, suffix)
}

func pluralDays(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}

func dateLabel(value string) string {
	if value == "" {
		return "never"
	}
	return value
}

func interpolateColor(value, min, max float64) lipgloss.Color {
	if max == min {
		return lipgloss.Color("255")
	}

	normalized := (value - min) / (max - min)
	if normalized < 0 {
		normalized = 0
	}
	if normalized > 1 {
		normalized = 1
	}

	// ANSI 256 greyscale ramp from 240 (faded) to 255 (bright).
	baseColor := 240.0
	targetColor := 255.0
	colorCode := int(baseColor + (targetColor-baseColor)*normalized)

	return lipgloss.Color(fmt.Sprintf("%d", colorCode))
}
