package domain

import (
	"fmt"
	"strings"
)

type Category string

const (
	CategoryBreathing   Category = "Breathing"
	CategoryMindfulness Category = "Mindfulness"
	CategoryJournaling  Category = "Journaling"
	CategoryPhysical    Category = "Physical"
	CategoryMentalReset Category = "Mental Reset"
)

// Categories returns every category in classification priority order.
func Categories() []Category {
	return []Category{
		CategoryBreathing,
		CategoryMindfulness,
		CategoryJournaling,
		CategoryPhysical,
		CategoryMentalReset,
	}
}

// ParseCategory matches a category name case-insensitively.
func ParseCategory(raw string) (Category, error) {
	trimmed := strings.TrimSpace(raw)
	for _, category := range Categories() {
		if strings.EqualFold(trimmed, string(category)) {
			return category, nil
		}
	}

	return "", fmt.Errorf("%w %q", ErrUnknownCategory, raw)
}

type PlaybookEntry struct {
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Steps       []string `json:"steps"`
	Category    Category `json:"category"`
}

// NumberedSteps renders steps as "1. step" lines.
func (e PlaybookEntry) NumberedSteps() []string {
	lines := make([]string, 0, len(e.Steps))
	for i, step := range e.Steps {
		lines = append(lines, fmt.Sprintf("%d. %s", i+1, step))
	}
	return lines
}

func (e PlaybookEntry) clone() PlaybookEntry {
	e.Steps = append([]string(nil), e.Steps...)
	return e
}

// Catalog is the read-only set of playbook entries grouped by category.
type Catalog struct {
	entries map[Category][]PlaybookEntry
}

// NewCatalog copies entries into a catalog. Every entry is tagged with the
// category it is filed under.
func NewCatalog(entries map[Category][]PlaybookEntry) (Catalog, error) {
	known := make(map[Category]struct{}, len(Categories()))
	for _, category := range Categories() {
		known[category] = struct{}{}
	}

	copied := make(map[Category][]PlaybookEntry, len(entries))
	for category, list := range entries {
		if _, ok := known[category]; !ok {
			return Catalog{}, fmt.Errorf("%w %q", ErrUnknownCategory, category)
		}

		items := make([]PlaybookEntry, 0, len(list))
		for _, entry := range list {
			entry = entry.clone()
			entry.Category = category
			items = append(items, entry)
		}
		copied[category] = items
	}

	return Catalog{entries: copied}, nil
}

func (c Catalog) Entries(category Category) []PlaybookEntry {
	list := c.entries[category]
	items := make([]PlaybookEntry, 0, len(list))
	for _, entry := range list {
		items = append(items, entry.clone())
	}
	return items
}

func (c Catalog) Len(category Category) int {
	return len(c.entries[category])
}

func (c Catalog) Entry(category Category, index int) (PlaybookEntry, bool) {
	list := c.entries[category]
	if index < 0 || index >= len(list) {
		return PlaybookEntry{}, false
	}
	return list[index].clone(), true
}

func (c Catalog) IsEmpty() bool {
	for _, list := range c.entries {
		if len(list) > 0 {
			return false
		}
	}
	return true
}

// FindByTitle looks up an entry by case-insensitive title across categories.
func (c Catalog) FindByTitle(title string) (PlaybookEntry, error) {
	trimmed := strings.TrimSpace(title)
	for _, category := range Categories() {
		for _, entry := range c.entries[category] {
			if strings.EqualFold(entry.Title, trimmed) {
				return entry.clone(), nil
			}
		}
	}

	return PlaybookEntry{}, fmt.Errorf("%w: %q", ErrEntryNotFound, title)
}

var categoryKeywords = []struct {
	category Category
	keywords []string
}{
	{category: CategoryBreathing, keywords: []string{"breath", "anxious", "panic", "stress", "calm", "relax"}},
	{category: CategoryMindfulness, keywords: []string{"focus", "present", "mindful", "attention", "distract", "concentrate"}},
	{category: CategoryJournaling, keywords: []string{"write", "journal", "express", "emotions", "feelings", "thoughts"}},
	{category: CategoryPhysical, keywords: []string{"active", "exercise", "move", "energy", "tired", "physical"}},
}

// Classify maps free text to the first category whose keywords it contains.
// Unmatched or empty text falls through to Mental Reset.
func Classify(text string) Category {
	message := strings.ToLower(text)
	for _, rule := range categoryKeywords {
		if containsAny(message, rule.keywords) {
			return rule.category
		}
	}

	return CategoryMentalReset
}

func containsAny(source string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(source, keyword) {
			return true
		}
	}
	return false
}
