package rules

import (
	"errors"
	"sort"
)

// Registry manages rule packs from multiple sources with precedence
// handling. Precedence (highest to lowest): project > personal > builtin.
// Key is the pack name.
type Registry struct {
	packs    map[string]*Pack // name -> pack (highest precedence wins)
	bySource map[Source][]*Pack
}

// NewRegistry creates an empty pack registry.
func NewRegistry() *Registry {
	return &Registry{
		packs:    make(map[string]*Pack),
		bySource: make(map[Source][]*Pack),
	}
}

// Add adds a pack to the registry. Higher precedence sources
// (project > personal > builtin) override lower ones by name.
func (r *Registry) Add(pack *Pack) {
	existing, exists := r.packs[pack.Name]

	if !exists || sourcePrecedence(pack.Source) > sourcePrecedence(existing.Source) {
		r.packs[pack.Name] = pack
	}

	r.bySource[pack.Source] = append(r.bySource[pack.Source], pack)
}

func sourcePrecedence(s Source) int {
	switch s {
	case SourceBuiltin:
		return 1
	case SourcePersonal:
		return 2
	case SourceProject:
		return 3
	default:
		return 0
	}
}

// All returns all unique packs (highest precedence version of each),
// sorted by name for deterministic ordering.
func (r *Registry) All() []*Pack {
	result := make([]*Pack, 0, len(r.packs))
	for _, pack := range r.packs {
		result = append(result, pack)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result
}

// Get returns a pack by name.
func (r *Registry) Get(name string) *Pack {
	return r.packs[name]
}

// BySource returns all packs from a specific source.
func (r *Registry) BySource(source Source) []*Pack {
	return r.bySource[source]
}

// Count returns the number of unique packs.
func (r *Registry) Count() int {
	return len(r.packs)
}

// ByCategory returns the effective rules of every registered pack with the
// given category, in pack-name order.
func (r *Registry) ByCategory(category string) []Rule {
	var out []Rule
	for _, pack := range r.All() {
		if pack.Category == category {
			out = append(out, pack.Rules...)
		}
	}
	return out
}

// builtinPacks exposes the static tables through the registry so the CLI
// can list everything from one place.
func builtinPacks() []*Pack {
	return []*Pack{
		{Name: "politeness", Description: "Polite-request wrapper removal", Category: CategoryPhrase, Rules: PolitenessWrappers(), Source: SourceBuiltin},
		{Name: "redundant-phrases", Description: "Verbose construct contraction", Category: CategoryPhrase, Rules: RedundantPhrases(), Source: SourceBuiltin},
		{Name: "simplifications", Description: "Nominalization simplification", Category: CategoryPhrase, Rules: Simplifications(), Source: SourceBuiltin},
		{Name: "abbreviations", Description: "Standard abbreviations", Category: CategoryAbbreviation, Rules: Abbreviations(), Source: SourceBuiltin},
		{Name: "contractions", Description: "Grammatical contractions", Category: CategoryAbbreviation, Rules: Contractions(), Source: SourceBuiltin},
		{Name: "symbols", Description: "Connector word to symbol", Category: CategorySymbol, Rules: SymbolSubstitutions(), Source: SourceBuiltin},
		{Name: "number-words", Description: "Spelled-out numbers to digits", Category: CategoryAbbreviation, Rules: NumberWords(), Source: SourceBuiltin},
	}
}

// LoadRegistry creates a registry holding the builtin packs plus any custom
// packs from the personal and project rules directories. Empty string for
// a directory means that source is not available. Packs that fail to parse
// are reported in a ParseErrors alongside the registry; the packs that did
// parse are still usable.
func LoadRegistry(personalDir, projectDir string) (*Registry, error) {
	registry := NewRegistry()
	var parseErrors []error

	for _, pack := range builtinPacks() {
		registry.Add(pack)
	}

	load := func(dir string, source Source) error {
		if dir == "" {
			return nil
		}
		packs, err := LoadFromDirectory(dir, source)
		if err != nil {
			var pe *ParseErrors
			if !errors.As(err, &pe) {
				return err
			}
			parseErrors = append(parseErrors, pe.Errors...)
		}
		for _, pack := range packs {
			registry.Add(pack)
		}
		return nil
	}

	if err := load(personalDir, SourcePersonal); err != nil {
		return nil, err
	}
	if err := load(projectDir, SourceProject); err != nil {
		return nil, err
	}

	if len(parseErrors) > 0 {
		return registry, &ParseErrors{Errors: parseErrors}
	}
	return registry, nil
}
