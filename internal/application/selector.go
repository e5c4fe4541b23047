package application

import (
	"github.com/bnema/levent-cli/internal/domain"
	"github.com/bnema/levent-cli/internal/ports"
)

// Selector picks a playbook entry matching the tone of a message.
type Selector struct {
	catalog domain.Catalog
	random  ports.Random
}

func NewSelector(catalog domain.Catalog, random ports.Random) *Selector {
	if random == nil {
		random = ports.SystemRandom{}
	}

	return &Selector{catalog: catalog, random: random}
}

func (s *Selector) Catalog() domain.Catalog {
	return s.catalog
}

// Suggest classifies text and returns a random entry from that category. An
// empty category falls back to the first entry of the first non-empty one.
func (s *Selector) Suggest(text string) (Suggestion, error) {
	if s.catalog.IsEmpty() {
		return Suggestion{}, domain.ErrNoSuggestionAvailable
	}

	category := domain.Classify(text)

	if n := s.catalog.Len(category); n > 0 {
		entry, _ := s.catalog.Entry(category, s.random.IntN(n))
		return Suggestion{Category: category, Entry: entry}, nil
	}

	for _, candidate := range domain.Categories() {
		if entry, ok := s.catalog.Entry(candidate, 0); ok {
			return Suggestion{Category: candidate, Entry: entry, Fallback: true}, nil
		}
	}

	return Suggestion{}, domain.ErrNoSuggestionAvailable
}
