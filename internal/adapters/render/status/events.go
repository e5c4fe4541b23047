package status

import (
	"fmt"
	"strings"

	"github.com/bnema/levent-cli/internal/application"
	"github.com/bnema/levent-cli/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// RenderEvents formats progress events as one line each. FirstTimeUser is
// skipped because the greeting already covers it.
func RenderEvents(events []domain.Event) string {
	s := newStyles()

	lines := make([]string, 0, len(events))
	for _, event := range events {
		switch event.Kind {
		case domain.EventStreakUpdated:
			if event.Streak == 0 {
				lines = append(lines, s.meta.Render("Streak reset. Today is a fresh tip-off."))
				continue
			}
			lines = append(lines, s.key.Render("Streak: ")+s.highlight.Render(pluralDays(event.Streak)))
		case domain.EventDailyCheckInComplete:
			lines = append(lines, s.complete.Render("Daily check-in complete!"))
		case domain.EventMilestoneReached:
			if event.Milestone == nil {
				continue
			}
			lines = append(lines, s.highlight.Render(event.Milestone.Headline)+" "+s.detail.Render(event.Milestone.Message))
		}
	}

	return strings.Join(lines, "\n")
}

// RenderEntry formats a playbook entry with numbered steps.
func RenderEntry(entry domain.PlaybookEntry) string {
	s := newStyles()

	lines := []string{
		s.title.Render(entry.Title) + " " + s.category.Render(fmt.Sprintf("[%s]", entry.Category)),
	}
	if entry.Description != "" {
		lines = append(lines, s.detail.Render(entry.Description))
	}
	for _, step := range entry.NumberedSteps() {
		lines = append(lines, "  "+s.detail.Render(step))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func RenderSuggestion(suggestion application.Suggestion) string {
	s := newStyles()

	header := s.coach.Render("LeVent suggests:")
	if suggestion.Fallback {
		header += " " + s.empty.Render("(nothing matched, try this one)")
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, RenderEntry(suggestion.Entry))
}

// RenderCatalog lists entry titles grouped by category in priority order.
func RenderCatalog(catalog domain.Catalog, only []domain.Category) string {
	s := newStyles()

	categories := only
	if len(categories) == 0 {
		categories = domain.Categories()
	}

	sections := make([]string, 0, len(categories))
	for _, category := range categories {
		lines := []string{s.category.Render(string(category))}
		entries := catalog.Entries(category)
		if len(entries) == 0 {
			lines = append(lines, "  "+s.empty.Render("(no entries)"))
		}
		for _, entry := range entries {
			lines = append(lines, "  "+s.detail.Render(entry.Title))
		}
		sections = append(sections, lipgloss.JoinVertical(lipgloss.Left, lines...))
	}

	return strings.Join(sections, "\n\n")
}

// RenderCoach prefixes a coach reply with the persona name.
func RenderCoach(text string) string {
	s := newStyles()
	return s.coach.Render("LeVent:") + " " + text
}
