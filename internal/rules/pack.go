package rules

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ParseErrors collects multiple parse errors when loading packs from a
// directory. Individual failures don't prevent other packs from loading.
type ParseErrors struct {
	Errors []error
}

func (e *ParseErrors) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	return fmt.Sprintf("%d rule packs failed to parse", len(e.Errors))
}

// Source indicates where a rule pack came from.
type Source string

const (
	SourceBuiltin  Source = "builtin"
	SourcePersonal Source = "personal"
	SourceProject  Source = "project"
)

// Label returns a human-readable label for the source.
func (s Source) Label() string {
	return string(s)
}

// Pack categories. Strategies pick up custom packs by category.
const (
	CategoryAbbreviation = "abbreviation"
	CategoryPhrase       = "phrase"
	CategorySymbol       = "symbol"
)

// Pack is a named set of substitution rules.
type Pack struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
	Category    string `yaml:"category"`
	Rules       []Rule `yaml:"rules"`

	Source   Source `yaml:"-"`
	FilePath string `yaml:"-"`
}

// ParsePack parses a rule pack from YAML content. All rules are compiled
// eagerly so a bad pattern is rejected at load time, not mid-substitution.
func ParsePack(content []byte, source Source, filePath string) (*Pack, error) {
	var pack Pack
	if err := yaml.Unmarshal(content, &pack); err != nil {
		return nil, fmt.Errorf("invalid pack YAML: %w", err)
	}

	if pack.Name == "" {
		return nil, fmt.Errorf("pack has no name")
	}
	if len(pack.Rules) == 0 {
		return nil, fmt.Errorf("pack %q has no rules", pack.Name)
	}
	switch pack.Category {
	case CategoryAbbreviation, CategoryPhrase, CategorySymbol:
	case "":
		pack.Category = CategoryPhrase
	default:
		return nil, fmt.Errorf("pack %q has unknown category %q", pack.Name, pack.Category)
	}

	for i := range pack.Rules {
		if err := pack.Rules[i].Compile(); err != nil {
			return nil, fmt.Errorf("pack %q: %w", pack.Name, err)
		}
	}

	pack.Source = source
	pack.FilePath = filePath
	return &pack, nil
}

// ParsePackFile parses a rule pack from a file.
func ParsePackFile(path string, source Source) (*Pack, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read pack file: %w", err)
	}
	return ParsePack(content, source, path)
}

// LoadFromDirectory loads all rule packs from a directory (recursive).
// Parse errors for individual files are collected in the returned
// ParseErrors but do not prevent other packs from loading.
func LoadFromDirectory(dir string, source Source) ([]*Pack, error) {
	var packs []*Pack
	var parseErrors []error

	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil, nil // Directory doesn't exist, return empty
	}

	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !strings.HasSuffix(d.Name(), ".yaml") && !strings.HasSuffix(d.Name(), ".yml") {
			return nil
		}

		pack, err := ParsePackFile(path, source)
		if err != nil {
			parseErrors = append(parseErrors, fmt.Errorf("failed to parse %s: %w", path, err))
			return nil
		}

		packs = append(packs, pack)
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to read rules directory: %w", err)
	}

	if len(parseErrors) > 0 {
		return packs, &ParseErrors{Errors: parseErrors}
	}

	return packs, nil
}
