// Package yaml loads the playbook catalog from YAML documents.
package yaml

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bnema/levent-cli/internal/domain"
	"github.com/bnema/levent-cli/internal/ports"
	"gopkg.in/yaml.v3"
)

//go:embed default_playbook.yaml
var defaultPlaybook []byte

type document struct {
	Categories map[string][]entrySchema `yaml:"categories"`
}

type entrySchema struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Steps       []string `yaml:"steps"`
}

// Source reads the catalog from path, or the built-in playbook when path is
// empty.
type Source struct {
	path string
}

var _ ports.CatalogSource = (*Source)(nil)

func NewSource(path string) *Source {
	return &Source{path: strings.TrimSpace(path)}
}

func (s *Source) Load(ctx context.Context) (domain.Catalog, error) {
	if err := ctx.Err(); err != nil {
		return domain.Catalog{}, err
	}

	if s.path == "" {
		return Decode(defaultPlaybook)
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return domain.Catalog{}, fmt.Errorf("read playbook %s: %w", s.path, err)
	}

	catalog, err := Decode(data)
	if err != nil {
		return domain.Catalog{}, fmt.Errorf("playbook %s: %w", s.path, err)
	}
	return catalog, nil
}

// Default returns the built-in catalog.
func Default() (domain.Catalog, error) {
	return Decode(defaultPlaybook)
}

func Decode(data []byte) (domain.Catalog, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var doc document
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return domain.Catalog{}, fmt.Errorf("decode playbook: %w", err)
	}

	entries := make(map[domain.Category][]domain.PlaybookEntry, len(doc.Categories))
	for name, list := range doc.Categories {
		category, err := domain.ParseCategory(name)
		if err != nil {
			return domain.Catalog{}, err
		}

		for i, item := range list {
			if strings.TrimSpace(item.Title) == "" {
				return domain.Catalog{}, fmt.Errorf("%s entry %d has no title", category, i+1)
			}
			entries[category] = append(entries[category], domain.PlaybookEntry{
				Title:       strings.TrimSpace(item.Title),
				Description: strings.TrimSpace(item.Description),
				Steps:       item.Steps,
			})
		}
	}

	return domain.NewCatalog(entries)
}
