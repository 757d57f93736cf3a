package config

import (
	"fmt"
	"os"

	"github.com/alexanderramin/productiviquest/internal/domain"
	"gopkg.in/yaml.v3"
)

// categoriesFile is the YAML layout of PQ_CATEGORIES_FILE:
//
//	productive: [github.com, notion.so]
//	distracting: [youtube.com]
//	neutral: [google.com]
type categoriesFile struct {
	Productive  []string `yaml:"productive"`
	Distracting []string `yaml:"distracting"`
	Neutral     []string `yaml:"neutral"`
}

// LoadCategories reads a category seed file. Entries are normalized and
// de-duplicated in file order.
func LoadCategories(path string) (domain.CategoryConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return domain.CategoryConfig{}, fmt.Errorf("categories: read %s: %w", path, err)
	}
	cfg, err := ParseCategories(raw)
	if err != nil {
		return domain.CategoryConfig{}, fmt.Errorf("categories: %s: %w", path, err)
	}
	return cfg, nil
}

// ParseCategories parses category seed YAML.
func ParseCategories(data []byte) (domain.CategoryConfig, error) {
	var f categoriesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return domain.CategoryConfig{}, fmt.Errorf("parse: %w", err)
	}

	cfg := domain.CategoryConfig{Productive: []string{}, Distracting: []string{}, Neutral: []string{}}
	lists := []struct {
		cat     domain.Category
		entries []string
	}{
		{domain.CategoryProductive, f.Productive},
		{domain.CategoryDistracting, f.Distracting},
		{domain.CategoryNeutral, f.Neutral},
	}
	for _, l := range lists {
		for _, entry := range l.entries {
			if _, err := cfg.Add(l.cat, entry); err != nil {
				return domain.CategoryConfig{}, fmt.Errorf("%s: %w", l.cat, err)
			}
		}
	}
	return cfg, nil
}
