// Package rules applies ordered regex rewrite rules to strings. Rule sets
// are declared in YAML, compiled up front (patterns and replacement
// templates alike), and then applied as a pipeline: each rule rewrites the
// output of the previous one.
package rules

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/KromDaniel/resub"
)

// Rule is one rewrite step in a rule set.
type Rule struct {
	// Name identifies the rule in error messages. Optional.
	Name string `yaml:"name,omitempty"`
	// Pattern is the regular expression to match.
	Pattern string `yaml:"pattern"`
	// Template is the replacement template ($1, ${2}, \$, \\).
	Template string `yaml:"template"`
	// First restricts the rule to the first match instead of all matches.
	First bool `yaml:"first,omitempty"`
}

type compiledRule struct {
	name     string
	first    bool
	replacer *resub.Replacer
}

// Set is a compiled, ordered list of rewrite rules.
type Set struct {
	rules []compiledRule
}

// Load reads and compiles a YAML rule file.
func Load(path string) (*Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules file: %w", err)
	}
	return FromYAML(data)
}

// FromYAML parses and compiles a rule list from YAML data. The document is
// a sequence of rules:
//
//	- name: mask user
//	  pattern: (\w+)@(\w+)
//	  template: $1@REDACTED
//	- pattern: "\\s+"
//	  template: " "
//	  first: true
func FromYAML(data []byte) (*Set, error) {
	var rs []Rule
	if err := yaml.Unmarshal(data, &rs); err != nil {
		return nil, fmt.Errorf("parse rules yaml: %w", err)
	}
	return Compile(rs)
}

// Compile compiles every rule in order. Pattern errors, template syntax
// errors, and backreferences beyond a pattern's capture-group count are all
// reported here, before any input is processed.
func Compile(rs []Rule) (*Set, error) {
	set := &Set{rules: make([]compiledRule, 0, len(rs))}
	for i, r := range rs {
		name := r.Name
		if name == "" {
			name = fmt.Sprintf("rule %d", i+1)
		}

		re, err := regexp.Compile(r.Pattern)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}

		rep, err := resub.New(re, r.Template)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}

		if max := rep.Template().MaxBackref(); max > re.NumSubexp() {
			return nil, fmt.Errorf("%s: template references group $%d but pattern has %d capture group(s)",
				name, max, re.NumSubexp())
		}

		set.rules = append(set.rules, compiledRule{
			name:     name,
			first:    r.First,
			replacer: rep,
		})
	}
	return set, nil
}

// Len returns the number of rules in the set.
func (s *Set) Len() int {
	return len(s.rules)
}

// Apply runs every rule in order over input and returns the final result.
func (s *Set) Apply(input string) (string, error) {
	out := input
	for _, r := range s.rules {
		var err error
		if r.first {
			out, err = r.replacer.ReplaceFirstString(out)
		} else {
			out, err = r.replacer.ReplaceAllString(out)
		}
		if err != nil {
			return "", fmt.Errorf("%s: %w", r.name, err)
		}
	}
	return out, nil
}
