// FILE: lixenwraith/recorder/mask/loader.go
package mask

import (
	"fmt"
	"os"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// Spec is the declarative form of a rule as found in rule files
type Spec struct {
	Kind       Kind     `yaml:"kind"`
	Keys       []string `yaml:"keys,omitempty"`
	IgnoreCase bool     `yaml:"ignore_case,omitempty"`
	Pattern    string   `yaml:"pattern,omitempty"` // regex only
	Prefix     int      `yaml:"prefix,omitempty"`  // partial only
	Suffix     int      `yaml:"suffix,omitempty"`  // partial only
	Symbol     string   `yaml:"symbol,omitempty"`
}

// ruleFile is the top-level layout of a YAML rule file
type ruleFile struct {
	Rules []Spec `yaml:"rules"`
}

// Constructor builds a rule from its declarative form
type Constructor func(spec Spec, symbol rune) (Rule, error)

// Registry maps each rule kind to its constructor
var Registry = map[Kind]Constructor{
	KindFull: func(s Spec, sym rune) (Rule, error) {
		return Full(s.Keys, s.IgnoreCase, sym), nil
	},
	KindPartial: func(s Spec, sym rune) (Rule, error) {
		return Partial(s.Keys, s.IgnoreCase, s.Prefix, s.Suffix, sym), nil
	},
	KindEmail: func(s Spec, sym rune) (Rule, error) {
		return Email(s.Keys, s.IgnoreCase, sym), nil
	},
	KindUserIDNumber: func(s Spec, sym rune) (Rule, error) {
		return UserIDNumber(s.Keys, s.IgnoreCase, sym), nil
	},
	KindRegex: func(s Spec, sym rune) (Rule, error) {
		if s.Pattern == "" {
			return nil, fmt.Errorf("mask: regex rule requires a pattern")
		}
		return Regex(s.Pattern, s.IgnoreCase, sym)
	},
}

// Build constructs a rule from spec using Registry
func Build(spec Spec) (Rule, error) {
	ctor, ok := Registry[spec.Kind]
	if !ok {
		return nil, fmt.Errorf("mask: unknown rule kind %q", spec.Kind)
	}
	if spec.Kind != KindRegex && len(spec.Keys) == 0 {
		return nil, fmt.Errorf("mask: %s rule requires at least one key", spec.Kind)
	}
	symbol := DefaultSymbol
	if spec.Symbol != "" {
		r, size := utf8.DecodeRuneInString(spec.Symbol)
		if r == utf8.RuneError || size != len(spec.Symbol) {
			return nil, fmt.Errorf("mask: symbol must be a single character, got %q", spec.Symbol)
		}
		symbol = r
	}
	return ctor(spec, symbol)
}

// Parse decodes a YAML rule document and builds its rules in file order
func Parse(data []byte) ([]Rule, error) {
	var f ruleFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("mask: parse rules: %w", err)
	}
	rules := make([]Rule, 0, len(f.Rules))
	for i, spec := range f.Rules {
		r, err := Build(spec)
		if err != nil {
			return nil, fmt.Errorf("mask: rule %d: %w", i+1, err)
		}
		rules = append(rules, r)
	}
	return rules, nil
}

// LoadFile reads and parses a YAML rule file
func LoadFile(path string) ([]Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("mask: read rules file: %w", err)
	}
	return Parse(data)
}
